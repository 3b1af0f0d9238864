package commands

import (
	"fmt"
	"os"

	menufig "github.com/FredHutch/menu-driven-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema.yaml>",
	Short: "Validate a menu schema document",
	Long: `Load a YAML (or JSON) schema document and run the configuration
checks: recognized parameter types, unique elem_ids, at most one of
show_if/hide_if per item, and resolvable visibility-rule targets.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	schema, err := menufig.LoadSchema(f)
	if err != nil {
		return err
	}

	items := 0
	schemaMenus := len(schema.Menus)
	for _, menu := range schema.Menus {
		items += len(menu.Params)
	}
	items += len(schema.Header)

	color.Green("✓ %s is valid", args[0])
	fmt.Printf("  %d menus, %d parameters\n", schemaMenus, items)
	return nil
}
