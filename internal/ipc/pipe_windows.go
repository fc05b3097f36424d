//go:build windows

package ipc

import (
	"fmt"

	"github.com/Microsoft/go-winio"
)

// Listen creates the named pipe for (sessionID, name) and blocks
// until the gateway process connects to it, matching the naming
// convention recorded in the original Windows client
// (\\.\pipe\remotesession_<id>_<name>).
func Listen(sessionID int, name string) (Channel, error) {
	path := fmt.Sprintf(`\\.\pipe\remotesession_%d_%s`, sessionID, name)

	l, err := winio.ListenPipe(path, nil)
	if err != nil {
		return nil, fmt.Errorf("ipc: listen pipe %s: %w", path, err)
	}
	defer l.Close()

	conn, err := l.Accept()
	if err != nil {
		return nil, fmt.Errorf("ipc: accept pipe %s: %w", path, err)
	}
	return conn, nil
}
