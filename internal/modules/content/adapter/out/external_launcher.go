package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	contentout "cvp/internal/modules/content/port/out"
)

// OSExternalLauncher hands a file or URL to the desktop opener. command is
// swappable for tests.
type OSExternalLauncher struct {
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

func NewOSExternalLauncher() contentout.ExternalLauncher {
	return &OSExternalLauncher{command: exec.CommandContext}
}

func openerFor(goos string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", nil, nil
	case "linux", "freebsd", "openbsd":
		return "xdg-open", nil, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}, nil
	default:
		return "", nil, fmt.Errorf("external open is not supported on %s", goos)
	}
}

func (l *OSExternalLauncher) Open(ctx context.Context, target string) error {
	name, args, err := openerFor(runtime.GOOS)
	if err != nil {
		return err
	}
	cmd := l.command(context.WithoutCancel(ctx), name, append(args, target)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
