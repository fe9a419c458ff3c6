package topo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashslot/slotctl/pkg/api"
)

// Field layout of one listing line:
// <id> <host:port[@busport]> <flags> <primary> <ping> <pong> <epoch> <link> [<slot>...]
const minFields = 8

// Parse builds a Topology from a raw cluster-nodes listing: one node per
// line, CRLF tolerated, blank lines skipped. Any malformed line fails the
// whole parse with an api.ParseError; a partial topology is never returned.
func Parse(raw string) (Topology, error) {
	t := Topology{}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		n, err := parseNode(line)
		if err != nil {
			return nil, &api.ParseError{Line: line, Err: err}
		}

		t = append(t, n)
	}

	return t, nil
}

func parseNode(line string) (Node, error) {
	fields := strings.Fields(line)
	if len(fields) < minFields {
		return Node{}, fmt.Errorf("expected at least %d fields, got %d", minFields, len(fields))
	}

	n := Node{
		ID:        api.NodeID(fields[0]),
		Flags:     strings.Split(fields[2], ","),
		Migrating: map[api.Slot]api.NodeID{},
		Importing: map[api.Slot]api.NodeID{},
	}

	remote, err := parseAddr(fields[1])
	if err != nil {
		return Node{}, err
	}
	n.Remote = remote

	n.Role, err = parseRole(n.Flags)
	if err != nil {
		return Node{}, err
	}

	if fields[3] != "-" {
		n.PrimaryID = api.NodeID(fields[3])
	}

	switch fields[7] {
	case "connected":
		n.Link = api.LinkConnected
	case "disconnected":
		n.Link = api.LinkDisconnected
	default:
		return Node{}, fmt.Errorf("bad link state %q", fields[7])
	}

	for _, token := range fields[minFields:] {
		if err := parseSlotToken(&n, token); err != nil {
			return Node{}, err
		}
	}

	return n, nil
}

// parseAddr splits host:port, dropping the @busport suffix which newer
// cluster versions append to the address field.
func parseAddr(s string) (api.Remote, error) {
	s, _, _ = strings.Cut(s, "@")

	i := strings.LastIndex(s, ":")
	if i < 0 {
		return api.Remote{}, fmt.Errorf("bad address %q: no port", s)
	}

	port, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return api.Remote{}, fmt.Errorf("bad address %q: %w", s, err)
	}

	return api.Remote{Host: s[:i], Port: port}, nil
}

func parseRole(flags []string) (api.Role, error) {
	for _, f := range flags {
		switch f {
		case "master":
			return api.RolePrimary, nil
		case "slave", "replica":
			return api.RoleReplica, nil
		}
	}
	return api.RoleUnknown, fmt.Errorf("no role flag in %v", flags)
}

// parseSlotToken handles the three slot token forms: a stable range
// (start-end or a bare integer), a migrating mark [slot->-dest], and an
// importing mark [slot-<-source].
func parseSlotToken(n *Node, token string) error {
	if strings.HasPrefix(token, "[") {
		return parseTransientToken(n, token)
	}

	sr, err := api.ParseSlotRange(token)
	if err != nil {
		return err
	}

	n.Slots = append(n.Slots, sr)
	return nil
}

func parseTransientToken(n *Node, token string) error {
	inner := strings.TrimPrefix(strings.TrimSuffix(token, "]"), "[")

	var sep string
	var dest map[api.Slot]api.NodeID

	switch {
	case strings.Contains(inner, "->-"):
		sep, dest = "->-", n.Migrating
	case strings.Contains(inner, "-<-"):
		sep, dest = "-<-", n.Importing
	default:
		return fmt.Errorf("bad slot token %q", token)
	}

	s, id, _ := strings.Cut(inner, sep)
	slot, err := strconv.Atoi(s)
	if err != nil || !api.Slot(slot).Valid() || id == "" {
		return fmt.Errorf("bad slot token %q", token)
	}

	dest[api.Slot(slot)] = api.NodeID(id)
	return nil
}
