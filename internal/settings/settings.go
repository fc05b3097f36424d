// Package settings loads the external settings facade's knobs:
// environment variables and command-line flags consumed at bridge
// startup. Command-line parsing itself is explicitly out of scope as
// a concern to design around, but the bridge still needs to read its
// two knobs the way the rest of this codebase's entrypoints do: stdlib
// flag, no config framework.
package settings

import (
	"flag"
	"fmt"
	"os"
)

// Settings holds the bridge's startup configuration.
type Settings struct {
	// SessionID is non-zero to enable the bridge; zero disables every
	// entry point as a short-circuit.
	SessionID int

	// DebugLog, when non-empty, raises the bridge's log level to debug
	// and requests that stdout/stderr be redirected to a per-process
	// log file; the redirect itself is cmd/bridge's concern
	// (redirectDebugLog), not this package's.
	DebugLog string

	// LogDir is the directory for the optional debug-artifact store,
	// used only when SaveFrames is set; empty means the OS temp
	// directory.
	LogDir string

	// SaveFrames enables the debug-artifact store: a SQLite file in
	// LogDir that records metadata of each emitted frame (index,
	// format, quality, size). The frame images themselves are not
	// written. Disabled by default.
	SaveFrames bool
}

// Enabled reports whether the bridge subsystem should run at all.
func (s Settings) Enabled() bool {
	return s.SessionID != 0
}

// Load parses flags from args (typically os.Args[1:]) falling back to
// the MyrtilleSessionId / MyrtilleDebugLog environment variables when
// the corresponding flag is not set.
func Load(args []string) (Settings, error) {
	fs := flag.NewFlagSet("remotesession-bridge", flag.ContinueOnError)
	sessionID := fs.Int("session-id", 0, "session id; 0 disables the bridge (overrides MyrtilleSessionId)")
	debugLog := fs.String("debug-log", "", "redirect stdout/stderr to a per-process log file (overrides MyrtilleDebugLog)")
	logDir := fs.String("log-dir", "", "parent directory for optional debug artifacts")
	saveFrames := fs.Bool("save-frames", false, "record emitted frame metadata in a SQLite file under log-dir for debugging")

	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}

	s := Settings{
		SessionID:  *sessionID,
		DebugLog:   *debugLog,
		LogDir:     *logDir,
		SaveFrames: *saveFrames,
	}

	if s.SessionID == 0 {
		if v, ok := os.LookupEnv("MyrtilleSessionId"); ok {
			id, err := parseSessionID(v)
			if err != nil {
				return Settings{}, err
			}
			s.SessionID = id
		}
	}
	if s.DebugLog == "" {
		s.DebugLog = os.Getenv("MyrtilleDebugLog")
	}

	return s, nil
}

func parseSessionID(v string) (int, error) {
	var id int
	if _, err := fmt.Sscanf(v, "%d", &id); err != nil {
		return 0, fmt.Errorf("settings: invalid MyrtilleSessionId %q: %w", v, err)
	}
	return id, nil
}
