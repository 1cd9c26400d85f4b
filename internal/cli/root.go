package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/AsimRizwan/Med-Rem/internal/config"
	"github.com/AsimRizwan/Med-Rem/internal/update"
)

var (
	verbose    bool
	configPath string
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "medrem",
		Short: "medrem - medicine reminders in the terminal",
		Long: `medrem keeps a list of medicine reminders, tracks whether each dose was
taken or missed, and raises a one-shot notification at the next occurrence
of each reminder time.

Running medrem without a subcommand opens the interactive home screen.`,
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "Path to the YAML config file")
}

// Execute runs the root command
func Execute(version string) error {
	buildVersion = version

	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath, verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	model := update.NewModel(update.Deps{
		Tracker:      a.tracker,
		Notifier:     a.notifier,
		Engine:       a.engine,
		Deliverer:    a.deliverer,
		Settings:     &a.settings,
		SettingsPath: a.cfg.Settings.Path,
		Logger:       a.log,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("medrem failed: %w", err)
	}
	return nil
}
