package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zazjoe90-oss/go-linkbio/adapter/zaplogger"
	"github.com/zazjoe90-oss/go-linkbio/config"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "linkbio",
	Short: "Link-in-bio profile service with an AI-assisted editor",
	Long: `linkbio serves a single link-in-bio profile over a JSON API.

The AI editor turns a short description into a bio and four link titles
using Gemini. Configuration comes from defaults, an optional YAML file and
the environment (API_KEY, LINKBIO_*).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			loaded.Logging.Level = "debug"
		}
		built, err := zaplogger.Build(zaplogger.Options{
			Level:       loaded.Logging.Level,
			Development: loaded.Logging.Development,
			Service:     "linkbio",
		})
		if err != nil {
			return err
		}
		cfg = loaded
		logger = built
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd, generateCmd, tipLinkCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
