//go:build !unix

package transport

import "net"

// No SO_REUSEADDR control on non-Unix platforms; plain defaults.
var listenConfig = net.ListenConfig{}
