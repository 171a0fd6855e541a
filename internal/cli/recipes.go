package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shoppr/internal/pagination"
	"github.com/mesh-intelligence/shoppr/internal/store"
	"github.com/mesh-intelligence/shoppr/pkg/types"
)

func newRecipesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Inspect stored recipes",
	}
	cmd.AddCommand(newRecipesListCmd(a), newRecipesGetCmd(a))
	return cmd
}

func newRecipesListCmd(a *app) *cobra.Command {
	var (
		req  pagination.Request
		term string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes a page at a time",
		Long: `List recipes in the same page envelope the API returns.

Example:
  shoppr recipes list --json
  shoppr recipes list --q kibbeh --page 2 --per-page 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			var filters []store.Filter
			query := url.Values{}
			if term != "" {
				filters = append(filters, store.NameContains(term))
				query.Set("q", term)
			}
			links := pagination.LinkBuilder{Path: "/recipes", Query: query}

			var page *pagination.Page
			err = b.View(cmd.Context(), func(tx *store.Tx) error {
				page, err = pagination.Paginate[*types.Recipe](tx.Recipes().Query(filters...), req, links, func(r *types.Recipe) types.Dict {
					return r.ToDict()
				})
				return err
			})
			if err != nil {
				return storeError(err)
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), page)
			}
			out := cmd.OutOrStdout()
			for _, item := range page.Items {
				fmt.Fprintf(out, "%v\t%v\n", item["recipe_id"], item["name"])
			}
			fmt.Fprintf(out, "page %d of %d (%d recipes)\n", page.Meta.Page, page.Meta.TotalPages, page.Meta.TotalItems)
			return nil
		},
	}
	cmd.Flags().IntVar(&req.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&req.PerPage, "per-page", pagination.DefaultPerPage, "recipes per page")
	cmd.Flags().StringVar(&term, "q", "", "only recipes whose name contains this text")
	return cmd
}

func newRecipesGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one recipe with its ingredients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return userError(fmt.Errorf("invalid recipe id %q", args[0]))
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			var recipe *types.Recipe
			err = b.View(cmd.Context(), func(tx *store.Tx) error {
				recipe, err = tx.Recipes().Get(id)
				return err
			})
			if err != nil {
				return storeError(fmt.Errorf("recipe %d: %w", id, err))
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), recipe.ToDict())
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (serves %d)\n", recipe.Name, recipe.Serves)
			for _, ing := range recipe.Ingredients {
				fmt.Fprintf(out, "  %g %s %s", ing.Quantity, ing.Units, ing.Name())
				if ing.Preparation != "" {
					fmt.Fprintf(out, ", %s", ing.Preparation)
				}
				fmt.Fprintln(out)
			}
			if recipe.Instructions != "" {
				fmt.Fprintf(out, "\n%s\n", recipe.Instructions)
			}
			return nil
		},
	}
}
