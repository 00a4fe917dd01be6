package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rowbin/csvmap"
	"github.com/rowbin/csvmap/internal/config"
)

var cfg *config.Config

// SetConfig injects the loaded configuration. Called by main before
// Execute.
func SetConfig(c *config.Config) {
	cfg = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "csvmap",
	Short: "csvmap - CSV header validation, conversion, and loading",
	Long: `csvmap works with header-validated CSV files: check a file's
header against an expected column list, re-encode a file with different
separator and escaping settings, load rows into Postgres, or run the
HTTP validation server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			cfg = config.MustLoad()
		}
		if sep, _ := cmd.Flags().GetString("separator"); sep != "" {
			cfg.Codec.Separator = sep
		}
		if seq, _ := cmd.Flags().GetBool("sequential"); seq {
			cfg.Codec.ForceSequential = true
		}
		return cfg.Validate()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("separator", "s", "", "Column separator (default from config)")
	rootCmd.PersistentFlags().Bool("sequential", false, "Decode rows sequentially instead of in parallel")
}

// codecOptions returns the library options derived from the effective
// configuration.
func codecOptions() csvmap.Options {
	return cfg.CodecOptions()
}
