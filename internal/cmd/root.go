package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/picklist/internal/config"
	"github.com/taigrr/picklist/internal/log"
	"github.com/taigrr/picklist/internal/ui/common"
	"github.com/taigrr/picklist/internal/ui/model"
	"github.com/taigrr/picklist/internal/version"
)

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().IntP("count", "n", 0, "Number of generated entries")
	rootCmd.PersistentFlags().Int64("seed", 0, "Seed for the generated entries")
	rootCmd.PersistentFlags().IntP("constraint", "r", 0, "Cells per line")

	rootCmd.Flags().StringP("filter", "f", "", "Fuzzy filter applied to entry names")
	rootCmd.Flags().BoolP("multi", "m", false, "Allow picking several entries")

	rootCmd.AddCommand(simulateCmd)
}

var rootCmd = &cobra.Command{
	Use:   "picklist",
	Short: "Virtualized pick list for the terminal",
	Long: `Picklist shows a large generated data set in a virtualized grid list.
Only the cells in view are materialized; everything else is recycled.`,
	Example: `
# Run with the defaults
picklist

# Ten thousand entries, three per row, multi selection
picklist -n 10000 -r 3 --multi

# Only show entries matching "cache"
picklist --filter cache

# Use a config file
picklist -c picklist.yaml
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if multi, _ := cmd.Flags().GetBool("multi"); multi {
			cfg.Pick.MultiPickable = true
		}
		if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
			cfg.Dataset.Filter = filter
		}

		log.Setup(cfg.LogFile, cfg.Debug)

		entries := model.GenerateEntries(cfg.Dataset.Size, cfg.Dataset.Seed)
		entries = model.FilterEntries(entries, cfg.Dataset.Filter)
		slog.Info("Starting picklist", "version", version.Version, "entries", len(entries), "filter", cfg.Dataset.Filter)

		ui, err := model.New(common.DefaultCommon(cfg), entries)
		if err != nil {
			return err
		}

		program := tea.NewProgram(ui, tea.WithContext(cmd.Context()))
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("picklist crashed: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the persistent flag
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}
	if n, _ := cmd.Flags().GetInt("count"); n > 0 {
		cfg.Dataset.Size = n
	}
	if cmd.Flags().Changed("seed") {
		cfg.Dataset.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if r, _ := cmd.Flags().GetInt("constraint"); r > 0 {
		cfg.Constraint = r
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
