package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/AsimRizwan/Med-Rem/internal/model"
	"github.com/AsimRizwan/Med-Rem/internal/notify"
	"github.com/AsimRizwan/Med-Rem/internal/reminders"
)

const serverName = "medrem"

// Server exposes the reminder tracker as MCP tools. The transport may call
// handlers concurrently, so every handler holds mu.
type Server struct {
	mcpServer *server.MCPServer
	tracker   *reminders.Tracker
	format    model.TimeFormat
	mu        sync.Mutex
}

func NewServer(tracker *reminders.Tracker, format model.TimeFormat, version string) *Server {
	if !format.IsValid() {
		format = model.TimeFormat12Hour
	}
	s := &Server{tracker: tracker, format: format}

	s.mcpServer = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Lock serializes callers outside the tool handlers, such as the
// notification dispatcher.
func (s *Server) Lock()   { s.mu.Lock() }
func (s *Server) Unlock() { s.mu.Unlock() }

// Notifications are one-shot; a reminder fires once at its next occurrence.
const addReminderDescription = "Add a medicine reminder and schedule a one-shot notification for its next occurrence"

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription(addReminderDescription),
			mcp.WithString("medicine_name", mcp.Required(), mcp.Description("Name of the medicine")),
			mcp.WithString("time", mcp.Required(), mcp.Description("Time of day, e.g. 08:00 AM or 20:30")),
		),
		s.handleAddReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List all medicine reminders in the order they were added"),
		),
		s.handleListReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("toggle_taken",
			mcp.WithDescription("Toggle the taken flag of a reminder. Marking taken clears missed."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleToggleTaken,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("toggle_missed",
			mcp.WithDescription("Toggle the missed flag of a reminder. Marking missed clears taken."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleToggleMissed,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder and cancel its pending notification"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleDeleteReminder,
	)
}

type reminderView struct {
	ID           string `json:"id"`
	MedicineName string `json:"medicineName"`
	ReminderTime string `json:"reminderTime"`
	Taken        bool   `json:"taken"`
	Missed       bool   `json:"missed"`
	Status       string `json:"status"`
}

func (s *Server) view(r model.Reminder) reminderView {
	return reminderView{
		ID:           r.ID,
		MedicineName: r.MedicineName,
		ReminderTime: r.Time.Format(s.format),
		Taken:        r.Taken,
		Missed:       r.Missed,
		Status:       string(r.Status()),
	}
}

func (s *Server) handleAddReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("medicine_name", "")
	raw := req.GetString("time", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.tracker.Add(ctx, name, raw)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			return mcp.NewToolResultError(vErr.Error()), nil
		}
		var schedErr *notify.SchedulingError
		if errors.As(err, &schedErr) {
			return mcp.NewToolResultError(fmt.Sprintf("reminder %s saved but not scheduled: %v", r.ID, schedErr)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}

	output, _ := json.MarshalIndent(s.view(r), "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleListReminders(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.tracker.List()
	if len(list) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}
	views := make([]reminderView, 0, len(list))
	for _, r := range list {
		views = append(views, s.view(r))
	}
	output, _ := json.MarshalIndent(views, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleToggleTaken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.toggle(ctx, req, s.tracker.ToggleTaken)
}

func (s *Server) handleToggleMissed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.toggle(ctx, req, s.tracker.ToggleMissed)
}

func (s *Server) toggle(ctx context.Context, req mcp.CallToolRequest, fn func(context.Context, string) (model.Reminder, bool)) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := fn(ctx, id)
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("No reminder with id %s.", id)), nil
	}
	output, _ := json.MarshalIndent(s.view(r), "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleDeleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tracker.Remove(ctx, id); !ok {
		return mcp.NewToolResultText(fmt.Sprintf("No reminder with id %s.", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s deleted.", id)), nil
}
