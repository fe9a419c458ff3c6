package api

import (
	"fmt"
)

// Remote represents a cluster node listening on some remote host and port.
// They're returned by discovery, and given to Join. The cluster join protocol
// identifies peers by address, not name, so Host must be canonicalized to a
// numeric address before a Remote is sent to the cluster. See
// discovery.Canonicalize.
type Remote struct {
	Host string
	Port int
}

// Addr returns an address which can be dialled to connect to the remote.
func (r Remote) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
