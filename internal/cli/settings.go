package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AsimRizwan/Med-Rem/internal/settings"
	"github.com/AsimRizwan/Med-Rem/internal/views"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect notification and display settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE:  runSettingsShow,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath, verbose)
	if err != nil {
		return err
	}

	current, err := settings.LoadOrCreate(cfg.Settings.Path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, showing defaults\n", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), views.RenderMarkdown(settingsMarkdown(current, cfg.Settings.Path)))
	return nil
}

func settingsMarkdown(s settings.Settings, path string) string {
	var b strings.Builder
	b.WriteString("# Settings\n\n")
	b.WriteString("| Setting | Value |\n|---|---|\n")
	for _, f := range settings.Fields {
		fmt.Fprintf(&b, "| %s | %s |\n", f.Label(), s.Value(f))
	}
	fmt.Fprintf(&b, "\nFile: `%s`\n", path)
	return b.String()
}
