package api

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is one shard of the key space. The slot space is fixed; every key
// hashes into exactly one slot, and every slot is owned by exactly one
// primary when the cluster is converged.
type Slot int

// NumSlots is the size of the slot space. This must match the managed
// cluster software, which hashes keys into the same space.
const NumSlots = 16384

// Valid returns whether s is within the slot space.
func (s Slot) Valid() bool {
	return s >= 0 && s < NumSlots
}

func (s Slot) String() string {
	return strconv.Itoa(int(s))
}

// SlotRange is a contiguous run of slots, inclusive at both ends. A single
// slot is a range where Start == End.
type SlotRange struct {
	Start Slot
	End   Slot
}

// Contains returns whether s falls within the range.
func (r SlotRange) Contains(s Slot) bool {
	return s >= r.Start && s <= r.End
}

// Count returns the number of slots in the range.
func (r SlotRange) Count() int {
	return int(r.End-r.Start) + 1
}

// String returns the range in the same form the cluster prints it: a bare
// integer for a single slot, or start-end for a run.
func (r SlotRange) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// ParseSlotRange parses a slot-range token as found in a topology listing:
// either a single integer or start-end.
func ParseSlotRange(token string) (SlotRange, error) {
	var sr SlotRange

	a, b, found := strings.Cut(token, "-")
	start, err := strconv.Atoi(a)
	if err != nil {
		return sr, fmt.Errorf("bad slot range %q: %w", token, err)
	}

	end := start
	if found {
		end, err = strconv.Atoi(b)
		if err != nil {
			return sr, fmt.Errorf("bad slot range %q: %w", token, err)
		}
	}

	sr = SlotRange{Start: Slot(start), End: Slot(end)}
	if !sr.Start.Valid() || !sr.End.Valid() || sr.End < sr.Start {
		return SlotRange{}, fmt.Errorf("bad slot range %q: out of bounds", token)
	}

	return sr, nil
}
