package api

// LinkState is the health of the cluster bus link to a node, as reported by
// whichever node produced the topology listing. It says nothing about whether
// this client can reach the node.
type LinkState uint8

const (
	LinkUnknown LinkState = iota
	LinkConnected
	LinkDisconnected
)

func (ls LinkState) String() string {
	switch ls {
	case LinkConnected:
		return "connected"
	case LinkDisconnected:
		return "disconnected"
	}
	return "unknown"
}
