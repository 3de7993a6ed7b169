package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/querygen/internal/catalog"
	"github.com/abhisek/querygen/internal/report"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse and validate template catalogs",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the templates of a catalog (optionally filtered by category)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("catalog")
		category, _ := cmd.Flags().GetString("category")

		c, err := catalog.LoadOrDefault(path)
		if err != nil {
			return err
		}

		if category != "" {
			filtered := *c
			filtered.Templates = nil
			for _, t := range c.Templates {
				if t.Category == category {
					filtered.Templates = append(filtered.Templates, t)
				}
			}
			if len(filtered.Templates) == 0 {
				return fmt.Errorf("no templates found for category %q", category)
			}
			c = &filtered
		}

		report.Print(cmd.OutOrStdout(), report.RenderCatalog(c))
		return nil
	},
}

var templatesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog file for schema and template errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d templates, %d categories)\n",
			args[0], len(c.Templates), countCategories(c))
		return nil
	},
}

func countCategories(c *catalog.Catalog) int {
	seen := make(map[string]struct{})
	for _, t := range c.Templates {
		seen[t.Category] = struct{}{}
	}
	return len(seen)
}

func init() {
	templatesListCmd.Flags().String("catalog", "", "Catalog file (default: built-in catalog)")
	templatesListCmd.Flags().String("category", "", "Filter by category (e.g. field-match, comparison)")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesValidateCmd)
}
