package idiombench

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/idiombench/internal/appconfig"
)

// showCmd represents the 'show' command group for displaying resources.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying resources",
}

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by environment variables and flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Defaults()
		cfg := GetConfig()
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), cfg, fallback)
		if DebugEnabled() && cfg != nil {
			pp.ColoringEnabled = !cfg.NoColor
			pp.Fprintln(cmd.OutOrStdout(), *cfg)
		}
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(showCmd)
}
