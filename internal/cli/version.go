package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shoppr/pkg/shoppr"
)

const modulePath = "github.com/mesh-intelligence/shoppr"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shoppr version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "shoppr v%s\nmodule: %s\n", shoppr.Version, modulePath)
			return nil
		},
	}
}
