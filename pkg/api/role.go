package api

// Role is a node's role within the cluster.
type Role uint8

const (
	// Should never be in this state. Indicates a parsing error.
	RoleUnknown Role = iota

	// Primary nodes own slots and accept writes.
	RolePrimary

	// Replica nodes replicate a single primary and own no slots.
	RoleReplica
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleReplica:
		return "replica"
	}
	return "unknown"
}
