// Package ipc realizes the bridge's two named local IPC channels.
// The bridge plays the pipe/socket server role and accepts exactly
// one peer connection per channel per session, matching the original
// client's CreateNamedPipe-then-ConnectNamedPipe lifecycle.
package ipc

import "io"

// Channel is a connected duplex byte stream: the inputs or updates
// channel once a peer has connected.
type Channel interface {
	io.ReadWriteCloser
}
