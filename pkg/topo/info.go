package topo

import (
	"fmt"
	"strings"

	"github.com/hashslot/slotctl/pkg/api"
)

// ParseInfo parses a key:value-per-line bulk response, as returned by the
// cluster info command. Same line discipline as Parse: CRLF tolerated, blank
// lines skipped, a malformed line fails the whole parse. Values containing
// colons survive intact; only the first colon splits.
func ParseInfo(raw string) (map[string]string, error) {
	out := map[string]string{}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		k, v, found := strings.Cut(line, ":")
		if !found {
			return nil, &api.ParseError{Line: line, Err: fmt.Errorf("no colon")}
		}

		out[k] = v
	}

	return out, nil
}
