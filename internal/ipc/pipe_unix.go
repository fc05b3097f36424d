//go:build !windows

package ipc

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
)

// Listen creates a Unix domain socket for (sessionID, name) under
// the OS temp directory and blocks until the gateway process connects
// to it — the POSIX analogue of the Windows named pipe this channel
// realizes there.
func Listen(sessionID int, name string) (Channel, error) {
	path := SocketPath(sessionID, name)
	_ = os.Remove(path) // stale socket left by a prior crashed run

	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("ipc: listen unix socket %s: %w", path, err)
	}
	defer l.Close()

	conn, err := l.Accept()
	if err != nil {
		return nil, fmt.Errorf("ipc: accept unix socket %s: %w", path, err)
	}
	return conn, nil
}

// SocketPath returns the filesystem path for (sessionID, name)'s
// Unix domain socket.
func SocketPath(sessionID int, name string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("remotesession_%d_%s.sock", sessionID, name))
}
