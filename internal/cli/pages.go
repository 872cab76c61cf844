// internal/cli/pages.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shelfwatch/harvest/internal/catalog"
	"github.com/shelfwatch/harvest/internal/ui"
)

// pagesCmd represents the pages command
var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the catalog pages a run would harvest",
	Example: `  # Show the default page map
  harvest pages

  # Show the page map for another catalog deployment
  harvest pages --catalog-url http://localhost:8080/catalog/`,
	RunE: runPages,
}

func init() {
	rootCmd.AddCommand(pagesCmd)
	pagesCmd.Flags().String("catalog-url", "", "Catalog root URL the page map is built from")
}

func runPages(cmd *cobra.Command, args []string) error {
	application := GetApp()
	if application == nil {
		return fmt.Errorf("application not initialized")
	}

	targets, err := catalog.DefaultTargets(application.Config.CatalogURL)
	if err != nil {
		return err
	}

	fmt.Printf("\n%sCatalog pages (%d)%s\n", ui.ColorBold+ui.ColorCyan, len(targets), ui.ColorReset)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	for _, t := range targets {
		fmt.Printf("  %s%-10s%s %s\n", ui.ColorCyan, t.Label, ui.ColorReset, ui.Dim(t.URL))
	}
	fmt.Println()
	return nil
}
