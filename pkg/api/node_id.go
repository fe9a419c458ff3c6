package api

// NodeID is the unique identity of a cluster node, as assigned by the cluster
// software itself on first boot. Opaque; treat it as a token, not an address.
type NodeID string

const ZeroNodeID NodeID = ""

func (nID NodeID) String() string {
	return string(nID)
}
