package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AsimRizwan/Med-Rem/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the dose history journal",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent dose events",
	RunE:  runHistoryList,
}

func init() {
	historyCmd.AddCommand(historyListCmd)

	historyListCmd.Flags().Int("limit", 20, "Number of events to show")
	historyListCmd.Flags().String("reminder", "", "Only show events for this reminder id")
	historyListCmd.Flags().String("kind", "", "Only show events of this kind (scheduled, fired, taken, missed, cleared, removed)")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	reminderID, _ := cmd.Flags().GetString("reminder")
	kind, _ := cmd.Flags().GetString("kind")

	cfg, err := loadConfig(configPath, verbose)
	if err != nil {
		return err
	}

	filter := storage.DoseEventFilter{ReminderID: reminderID, Limit: limit}
	if kind != "" {
		filter.Kind = storage.EventKind(strings.ToLower(kind))
		if !filter.Kind.IsValid() {
			return fmt.Errorf("%w: %s", storage.ErrInvalidEventKind, kind)
		}
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(cfg.History.DBPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No dose history found.")
		return nil
	}

	repo, err := storage.OpenSQLite(cfg.History.DBPath)
	if err != nil {
		return fmt.Errorf("open dose history: %w", err)
	}
	defer repo.Close()

	events, err := repo.ListEvents(cmd.Context(), filter)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(out, "No dose history found.")
		return nil
	}

	fmt.Fprintf(out, "Dose events (%d):\n\n", len(events))
	for _, e := range events {
		fmt.Fprintf(out, "  %s  %-9s  %-5s  %s\n",
			e.OccurredAt.Local().Format("2006-01-02 15:04"),
			e.Kind,
			e.ReminderTime,
			e.MedicineName)
	}
	return nil
}
