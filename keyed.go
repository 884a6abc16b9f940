package rooms

import (
	"errors"
	"fmt"
)

// ErrUnknownLabel is returned (wrapped) by Keyed.Enter when the label was not
// among those passed to NewKeyed. Check for it with errors.Is.
var ErrUnknownLabel = errors.New("unknown room label")

// Keyed is a Rooms coordinator addressed by values of a closed label set
// instead of integer indices. When the rooms are fixed and named, declaring
// them as constants and entering by label is a more self-documenting
// alternative to bare indices:
//
//	type phase string
//	const (
//		mutate   phase = "mutate"
//		snapshot phase = "snapshot"
//	)
//	var coord = rooms.NewKeyed(mutate, snapshot)
//
//	defer coord.MustEnter(mutate).Exit()
//
// Keyed adds no behavior of its own: each label maps to its position in the
// NewKeyed argument list, and Enter forwards to the underlying coordinator.
type Keyed[K comparable] struct {
	rooms *Rooms
	index map[K]int
}

// NewKeyed creates a coordinator with one room per label. It panics if no
// labels are given or if any label repeats, since either leaves some room
// unreachable or ambiguous.
func NewKeyed[K comparable](labels ...K) *Keyed[K] {
	if len(labels) == 0 {
		panic("rooms: NewKeyed requires at least one label")
	}
	index := make(map[K]int, len(labels))
	for i, label := range labels {
		if _, dup := index[label]; dup {
			panic(fmt.Sprintf("rooms: duplicate label %v", label))
		}
		index[label] = i
	}
	return &Keyed[K]{rooms: New(len(labels)), index: index}
}

// Enter is exactly Rooms.Enter with the room named by label. It returns an
// error wrapping ErrUnknownLabel for labels outside the set passed to
// NewKeyed. The returned Room must be exited exactly once.
func (k *Keyed[K]) Enter(label K) (*Room, error) {
	i, ok := k.index[label]
	if !ok {
		return nil, fmt.Errorf("rooms: cannot enter room %v: %w", label, ErrUnknownLabel)
	}
	return k.rooms.Enter(i)
}

// MustEnter is like Enter but panics on an unknown label, for call sites
// where the label is a constant from the declared set.
func (k *Keyed[K]) MustEnter(label K) *Room {
	r, err := k.Enter(label)
	if err != nil {
		panic(err)
	}
	return r
}
