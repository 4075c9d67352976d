//go:build unix

package transport

import (
	"syscall"

	"net"
)

// reusePortControl sets SO_REUSEADDR on the listening socket before bind.
// Unix-only; see reuseaddr_other.go for the no-op fallback on platforms
// without the option.
func reusePortControl(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}

var listenConfig = net.ListenConfig{Control: reusePortControl}
