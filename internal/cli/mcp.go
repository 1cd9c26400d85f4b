package cli

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/AsimRizwan/Med-Rem/internal/mcpserver"
	"github.com/AsimRizwan/Med-Rem/internal/notify"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve reminder tools over MCP (stdio)",
	Long: `Starts an MCP server on stdin/stdout exposing add_reminder, list_reminders,
toggle_taken, toggle_missed and delete_reminder. Notifications keep firing
while the server runs.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath, verbose)
	if err != nil {
		return err
	}
	defer a.Close()
	log := a.log.With("mcp")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if _, err := a.notifier.RequestPermission(ctx); err != nil {
		log.Printf("permission request failed: %v", err)
	}

	s := mcpserver.NewServer(a.tracker, a.settings.TimeFormat, buildVersion)

	go func() {
		err := notify.Dispatch(ctx, a.engine.C(), a.deliverer, func(n notify.Notification, err error) {
			if err != nil {
				log.Printf("deliver %s failed: %v", n.ID, err)
			}
			s.Lock()
			a.tracker.Fired(ctx, n.ID)
			s.Unlock()
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("dispatch stopped: %v", err)
		}
	}()

	return server.ServeStdio(s.MCPServer())
}
