package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/myrtille/remotesession-bridge/internal/settings"
)

// redirectDebugLog implements the MyrtilleDebugLog external interface:
// when cfg.DebugLog is set, standard output and error are redirected
// to a per-process log file under <module-parent>/log/wfreerdp.<pid>.log,
// the parent of the directory holding this executable. It returns nil
// when no redirect was requested; the caller closes the returned file
// on shutdown.
func redirectDebugLog(cfg settings.Settings) (*os.File, error) {
	if cfg.DebugLog == "" {
		return nil, nil
	}

	logDir, err := moduleParentLogDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", logDir, err)
	}

	path := filepath.Join(logDir, fmt.Sprintf("wfreerdp.%d.log", os.Getpid()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug log %s: %w", path, err)
	}

	os.Stdout = f
	os.Stderr = f
	return f, nil
}

// moduleParentLogDir resolves <module-parent>/log: the "log" sibling
// of the directory that contains this executable, matching the original client's module-relative log folder placement.
func moduleParentLogDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve module path: %w", err)
	}
	moduleDir := filepath.Dir(exe)
	moduleParent := filepath.Dir(moduleDir)
	return filepath.Join(moduleParent, "log"), nil
}
