package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shoppr/internal/store"
	"github.com/mesh-intelligence/shoppr/pkg/types"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			var (
				recipe  *types.Recipe
				created bool
			)
			err = b.Update(cmd.Context(), func(tx *store.Tx) error {
				recipe, created, err = store.Seed(tx)
				return err
			})
			if err != nil {
				return storeError(err)
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), recipe.ToDict())
			}
			verb := "Seeded"
			if !created {
				verb = "Already seeded"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q (recipe %d, %d ingredients)\n",
				verb, recipe.Name, recipe.RecipeID, len(recipe.Ingredients))
			return nil
		},
	}
}
