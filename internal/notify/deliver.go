package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Deliverer shows a due notification to the user.
type Deliverer interface {
	Send(ctx context.Context, n Notification) error
}

type NoopDeliverer struct{}

func (NoopDeliverer) Send(context.Context, Notification) error { return nil }

// DesktopDeliverer pops a notification through notify-send or osascript.
type DesktopDeliverer struct {
	goos string
	run  func(ctx context.Context, name string, args ...string) error
}

func NewDesktopDeliverer() DesktopDeliverer {
	return DesktopDeliverer{goos: runtime.GOOS, run: runCommand}
}

func (d DesktopDeliverer) Send(ctx context.Context, n Notification) error {
	switch d.goos {
	case "linux":
		args := []string{"--app-name=medrem"}
		if n.Sound != "" {
			args = append(args, "--hint=string:sound-name:"+n.Sound)
		}
		args = append(args, n.Title, n.Body)
		return d.run(ctx, "notify-send", args...)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		if n.Sound != "" {
			script += fmt.Sprintf(` sound name "%s"`, escapeAppleScript(n.Sound))
		}
		return d.run(ctx, "osascript", "-e", script)
	default:
		return nil
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// escapeAppleScript quotes s for use inside an AppleScript string literal.
// Backslashes go first so an input \" cannot close the literal.
func escapeAppleScript(s string) string {
	return appleScriptEscaper.Replace(s)
}

// MultiDeliverer sends to every deliverer and joins their errors.
type MultiDeliverer []Deliverer

func (m MultiDeliverer) Send(ctx context.Context, n Notification) error {
	var errs []error
	for _, d := range m {
		if d == nil {
			continue
		}
		if err := d.Send(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
