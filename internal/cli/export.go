package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shoppr/internal/store"
)

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collection as JSONL files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return userError(fmt.Errorf("--out is required"))
			}
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			var counts map[string]int
			err = b.View(cmd.Context(), func(tx *store.Tx) error {
				counts, err = store.Export(tx, out)
				return err
			})
			if err != nil {
				return sysError(fmt.Errorf("export: %w", err))
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), counts)
			}
			files := make([]string, 0, len(counts))
			for f := range counts {
				files = append(files, f)
			}
			sort.Strings(files)
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", f, counts[f])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "directory to write the files to")
	return cmd
}
