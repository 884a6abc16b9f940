package rooms

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
)

// ErrOutOfRange is returned (wrapped) by Rooms.Enter when the room index is
// not in [0, n) for a coordinator of n rooms. Check for it with errors.Is.
var ErrOutOfRange = errors.New("room index out of range")

// Rooms coordinates a fixed set of rooms so that goroutines inside different
// rooms never run concurrently, while goroutines inside the same room do.
//
// A Rooms must be created with New; the zero value has no rooms and is not
// usable. Methods on Rooms are safe for concurrent use.
type Rooms struct {
	// True iff some room is currently active. Claimed with a single
	// compare-and-swap by whichever spinning goroutine gets there first.
	active atomic.Bool

	// Index of the currently active room. Meaningless while active is false.
	// Written only by the goroutine that holds the activation claim.
	activeRoom atomic.Int64

	// Fixed at construction, never resized.
	rooms []Room
}

// New creates a coordinator of n rooms, numbered 0 through n-1. It panics if
// n is not positive: a coordinator needs at least one room to admit anyone.
func New(n int) *Rooms {
	if n <= 0 {
		panic("rooms: New requires a positive number of rooms")
	}
	rs := &Rooms{rooms: make([]Room, n)}
	for i := range rs.rooms {
		rs.rooms[i].owner = rs
		rs.rooms[i].index = i
	}
	return rs
}

// Len returns the number of rooms, fixed at construction.
func (rs *Rooms) Len() int {
	return len(rs.rooms)
}

// Enter admits the caller into the given room, waiting until no other room is
// occupied. Goroutines already inside the same room are never waited for;
// arbitrarily many callers can hold the same room at once.
//
// Enter returns an error wrapping ErrOutOfRange if room is not in [0, Len()),
// without taking a ticket. On success it returns the entered Room, and the
// caller must call Exit on it exactly once, typically deferred:
//
//	room, err := rs.Enter(i)
//	if err != nil {
//		return err
//	}
//	defer room.Exit()
//
// Repeated calls with the same index return the same *Room. Waiting is a spin
// loop with a scheduler yield per iteration; a caller whose ticket is already
// granted returns without spinning at all.
func (rs *Rooms) Enter(room int) (*Room, error) {
	if room < 0 || room >= len(rs.rooms) {
		return nil, fmt.Errorf("rooms: cannot enter room %d of %d: %w", room, len(rs.rooms), ErrOutOfRange)
	}
	r := &rs.rooms[room]
	ticket := r.entries.Add(1)
	for ticket > r.grant.Load() {
		if rs.active.CompareAndSwap(false, true) {
			// We own the activation. Granting up to the current entry count
			// admits our own ticket, plus any takers that raced in behind us,
			// as one batch; no need to re-check the wait condition.
			rs.activeRoom.Store(int64(room))
			r.grant.Store(r.entries.Load())
			return r, nil
		}
		// Another room is active, or another goroutine won the claim and may
		// be about to grant our ticket. Yield and look again.
		runtime.Gosched()
	}
	return r, nil
}

// MustEnter is like Enter but panics on an out-of-range index. It is intended
// for the common case where room is a compile-time constant, so the error
// path is unreachable:
//
//	defer rs.MustEnter(update).Exit()
func (rs *Rooms) MustEnter(room int) *Room {
	r, err := rs.Enter(room)
	if err != nil {
		panic(err)
	}
	return r
}

// A Room is one of a coordinator's rooms. It is returned by Enter to be
// exited, and is the only handle on an admission: the sole meaningful
// operation on an entered Room is Exit.
//
// All admissions into the same room share the same *Room, so it can also
// serve as a stable identity for the room, e.g. as a map key.
type Room struct {
	owner *Rooms
	index int

	// Number of tickets issued for this room. Each Enter atomically takes the
	// next value as its ticket.
	entries atomic.Int64

	// Highest ticket admitted into the current batch. Tickets above grant are
	// waiting; while exits < grant, the batch is still draining. Written only
	// by the goroutine performing this room's activation.
	grant atomic.Int64

	// Number of exits from this room.
	exits atomic.Int64
}

// Exit leaves the room. It must be called exactly once per successful Enter;
// there is no second chance, and no other goroutine can compensate for a
// missed or doubled call. The last goroutine of the room's current batch to
// exit hands the coordinator to the next room with waiters, or idles it.
//
// Exit never waits.
//
// Builds with the "roomscheck" tag panic here on detectable misuse (exiting
// an inactive room, or exiting an already-drained batch). The check is
// best-effort: it cannot catch every double Exit, and under concurrent misuse
// its reads are themselves racy. Treat it as a diagnostic aid, not a safety
// net.
func (r *Room) Exit() {
	r.owner.checkExit(r)
	// If we are the last of this batch to exit, move on. Our own room is
	// deliberately tried last, so a busy room cannot starve the others.
	if r.exits.Add(1) == r.grant.Load() {
		r.owner.transition(r.index + 1)
	}
}

// transition activates the next room with waiting tickets, scanning
// round-robin from next, or clears the active flag when every room is empty.
// Called only by the goroutine that drained the previous batch, which is the
// sole owner of the activation claim at that point.
func (rs *Rooms) transition(next int) {
	for k := 0; k < len(rs.rooms); k++ {
		i := (next + k) % len(rs.rooms)
		r := &rs.rooms[i]
		if pending := r.entries.Load(); pending > r.grant.Load() {
			rs.activeRoom.Store(int64(i))
			// Admit every ticket issued so far as one batch. Tickets taken
			// after this snapshot wait for the room's next activation.
			r.grant.Store(pending)
			return
		}
	}
	// No waiters anywhere; go idle. The next Enter re-claims activation via
	// its compare-and-swap.
	rs.active.Store(false)
}
