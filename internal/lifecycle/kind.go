// Package lifecycle measures the cost of a component's mount, update and
// unmount phases by cycling it through visible and hidden states on a
// rendering host and timing the gap between a render request and its commit.
package lifecycle

import (
	"fmt"
	"strings"
)

// Kind selects which lifecycle phase a run measures.
type Kind string

const (
	// KindMount times the render that first shows the component.
	KindMount Kind = "mount"
	// KindUpdate times re-renders of an already visible component.
	KindUpdate Kind = "update"
	// KindUnmount times the render that removes the component.
	KindUnmount Kind = "unmount"
)

// Kinds lists every supported Kind.
var Kinds = []Kind{KindMount, KindUpdate, KindUnmount}

// ParseKind parses a kind name, ignoring case and surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return k, fmt.Errorf("unknown benchmark kind: %q", s)
	}
	return k, nil
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMount, KindUpdate, KindUnmount:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}

// ShouldRender reports whether the component is visible on cycle.
//
// Mount and unmount alternate hidden and visible, showing the component on
// odd cycles. Update keeps it visible throughout. Unknown kinds never render.
func ShouldRender(kind Kind, cycle int) bool {
	switch kind {
	case KindMount, KindUnmount:
		return (cycle+1)%2 == 0
	case KindUpdate:
		return true
	default:
		return false
	}
}

// ShouldRecord reports whether cycle is timed.
//
// Mount records the cycles that show the component, unmount the cycles that
// hide it, and update every cycle after the first, which only establishes the
// baseline render.
func ShouldRecord(kind Kind, cycle int) bool {
	switch kind {
	case KindMount:
		return (cycle+1)%2 == 0
	case KindUpdate:
		return cycle != 0
	case KindUnmount:
		return cycle%2 == 0
	default:
		return false
	}
}

// IsDone reports whether cycle is the last one needed to collect n samples.
// Unknown kinds are always done.
func IsDone(kind Kind, cycle, n int) bool {
	switch kind {
	case KindMount, KindUnmount:
		return cycle >= n*2-1
	case KindUpdate:
		return cycle >= n
	default:
		return true
	}
}
