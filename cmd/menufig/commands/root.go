package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "menufig",
	Short: "Menufig - menu-driven interactive figures",
	Long: `Menufig renders an interactive figure driven entirely by a declarative
configuration: menus of typed input controls, a render function mapping
the current settings to an artifact, and a reactive layer that keeps
the two in sync.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}
