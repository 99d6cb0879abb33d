// internal/commands/root.go
package idiombench

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/idiombench/internal/appconfig"
	"github.com/mwiater/idiombench/internal/logging"
	"github.com/mwiater/idiombench/internal/report"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "idiombench",
	Short:        "idiombench compares the speed of alternative Go idioms for the same task",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		cfg, err := appconfig.Decode(viper.GetViper())
		if err != nil {
			return err
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.SetDebug(currentConfig.Debug)

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// SIGINT and SIGTERM cancel the command context.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	def := appconfig.Defaults()
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/idiombench.json)")

	flags.Duration("minTime", def.MinTime, "minimum measuring time per benchmark")
	flags.Duration("warmupTime", def.WarmupTime, "minimum warm-up time per benchmark")
	flags.Int("sampleLimit", def.SampleLimit, "maximum samples per benchmark")
	flags.Int("minSamples", def.MinSamples, "minimum samples per benchmark")
	flags.Int("warmupIterations", def.WarmupIterations, "minimum warm-up invocations per benchmark")
	flags.Int("batch", def.Batch, "invocations timed together per sample")
	flags.Bool("trim", def.Trim, "drop IQR outliers before computing statistics")
	flags.Float64("trimThreshold", def.TrimThreshold, "IQR multiplier used when trimming")
	flags.Float64("confidence", def.Confidence, "confidence level of the reported interval (0.9, 0.95 or 0.99)")
	flags.String("format", def.Format, "report format: "+report.FormatNames())
	flags.String("sizes", "", "comma separated input sizes (empty uses each group's defaults)")
	flags.String("output", "", "also write the report to this file")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("noColor", false, "disable colored output")
	flags.String("logFile", "", "path to the log file")

	for _, name := range []string{
		"minTime", "warmupTime", "sampleLimit", "minSamples", "warmupIterations", "batch",
		"trim", "trimThreshold", "confidence", "format", "sizes", "output", "debug", "noColor", "logFile",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig wires environment overrides and defaults into viper.
func initConfig() {
	viper.SetEnvPrefix(appconfig.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	appconfig.SetDefaults(viper.GetViper())
}

// ensureConfigLoaded validates and reads the config file. A missing file at
// the default path is not an error.
func ensureConfigLoaded() error {
	if cfgFile == "" {
		return nil
	}
	err := appconfig.ReadConfigFile(viper.GetViper(), cfgFile)
	if errors.Is(err, os.ErrNotExist) && cfgFile == appconfig.DefaultConfigPath {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled for the current command.
func DebugEnabled() bool { return logging.DebugEnabled() }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
