package notify

import (
	"context"
	"os/exec"
	"runtime"
)

type PermissionStatus string

const (
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
	PermissionUndetermined PermissionStatus = "undetermined"
)

type PermissionService interface {
	Status(ctx context.Context) (PermissionStatus, error)
	Request(ctx context.Context) (PermissionStatus, error)
}

// StaticPermissions always answers with Value.
type StaticPermissions struct {
	Value PermissionStatus
}

func (p StaticPermissions) Status(context.Context) (PermissionStatus, error) {
	return p.Value, nil
}

func (p StaticPermissions) Request(context.Context) (PermissionStatus, error) {
	return p.Value, nil
}

// DesktopPermissions grants notifications when the platform notifier binary
// is installed.
type DesktopPermissions struct {
	goos     string
	lookPath func(string) (string, error)
}

func NewDesktopPermissions() DesktopPermissions {
	return DesktopPermissions{goos: runtime.GOOS, lookPath: exec.LookPath}
}

func (p DesktopPermissions) Status(context.Context) (PermissionStatus, error) {
	bin := desktopBinary(p.goos)
	if bin == "" {
		return PermissionDenied, nil
	}
	if _, err := p.lookPath(bin); err != nil {
		return PermissionUndetermined, nil
	}
	return PermissionGranted, nil
}

func (p DesktopPermissions) Request(ctx context.Context) (PermissionStatus, error) {
	status, err := p.Status(ctx)
	if err != nil {
		return PermissionDenied, err
	}
	if status != PermissionGranted {
		return PermissionDenied, nil
	}
	return status, nil
}

func desktopBinary(goos string) string {
	switch goos {
	case "linux":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}
