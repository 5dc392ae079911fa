// File: internal/viewer/launcher.go
// Package viewer hands a rescaled model off to an external interactive
// viewer. The viewer itself is a pre-existing binary; this package only
// spawns it and waits.
package viewer

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"github.com/kinemorph/skelscale-cli/internal/config"
)

// Launch runs the configured viewer on modelPath and blocks until it exits
// or the context is done. With a positive Timeout the viewer is killed once
// the deadline passes.
func Launch(ctx context.Context, cfg config.ViewerConfig, modelPath string, logger *zap.Logger) error {
	if cfg.Command == "" {
		return fmt.Errorf("no viewer command configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, cfg.Args...), modelPath)
	cmd := exec.CommandContext(ctx, cfg.Command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Info("Launching viewer",
		zap.String("command", cfg.Command),
		zap.Strings("args", args),
	)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("viewer %s failed: %w", cfg.Command, err)
	}
	return nil
}
