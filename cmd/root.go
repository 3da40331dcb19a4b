package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tacit/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tacit",
	Short: "Practice annotating sentences with Community Cultural Wealth labels",
	Long: "TACIT: a terminal quiz that shows a sentence, lets you pick labels from the\n" +
		"Community Cultural Wealth taxonomy, and grades your choice against an expert key.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file (overrides TACIT_CONFIG)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(labelsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the file named by --config, falling back to the default
// location, with TACIT_* overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
