// Package roomstest provides utilities for testing code that synchronizes
// with rooms coordinators. The package offers an occupancy ledger for
// verifying the coordinator's central guarantee that goroutines are never
// concurrently inside two different rooms, and a randomized hammer that
// stresses a coordinator from many goroutines at once.
//
// # Overview
//
// [Tracker] records entries and exits per room and detects any instant at
// which two distinct rooms are occupied simultaneously. [Hammer] drives a
// coordinator with concurrent randomized traffic, feeding a Tracker and
// failing the test on any recorded violation.
//
// # Example Usage
//
//	func TestMyRoomUsage(t *testing.T) {
//		rs := rooms.New(3)
//		roomstest.Hammer(t, rs, roomstest.HammerOptions{
//			Workers:    8,
//			Iterations: 1000,
//		})
//	}
//
// For custom scenarios, use a Tracker directly: call Tracker.Enter after the
// coordinator admits you and Tracker.Exit before you leave, then verify with
// Tracker.Check.
package roomstest

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/notorious-go/rooms"
)

// Tracker is a ledger of room occupancy. Goroutines report admissions with
// Enter and departures with Exit; the Tracker records a violation whenever it
// observes two distinct rooms occupied at the same time, or an exit from an
// empty room.
//
// Report Enter after the coordinator has admitted you and Exit before you
// leave the room. The tracked window is then strictly inside the admitted
// window, so every recorded violation is a real one (the converse does not
// hold: a tracker cannot prove the absence of violations, only fail to find
// them).
//
// A Tracker must be created with NewTracker. It is safe for concurrent use.
type Tracker struct {
	mu         sync.Mutex
	occupancy  []int
	high       []int
	violations []string
}

// NewTracker creates a Tracker for a coordinator of n rooms.
func NewTracker(n int) *Tracker {
	return &Tracker{
		occupancy: make([]int, n),
		high:      make([]int, n),
	}
}

// Enter records an admission into the given room. If any other room is
// occupied at this instant, a violation is recorded.
func (tr *Tracker) Enter(room int) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.occupancy[room]++
	if tr.occupancy[room] > tr.high[room] {
		tr.high[room] = tr.occupancy[room]
	}
	for other, n := range tr.occupancy {
		if other != room && n > 0 {
			tr.violations = append(tr.violations,
				fmt.Sprintf("rooms %d and %d occupied simultaneously (%d and %d inside)",
					other, room, n, tr.occupancy[room]))
		}
	}
}

// Exit records a departure from the given room. Exiting a room the Tracker
// believes to be empty is recorded as a violation.
func (tr *Tracker) Exit(room int) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.occupancy[room]--
	if tr.occupancy[room] < 0 {
		tr.violations = append(tr.violations,
			fmt.Sprintf("room %d exited while empty", room))
	}
}

// MaxOccupancy returns the highest number of goroutines observed inside the
// given room at once. Values above one demonstrate that the coordinator does
// not serialize admissions within a room.
func (tr *Tracker) MaxOccupancy(room int) int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.high[room]
}

// Violations returns every violation recorded so far.
func (tr *Tracker) Violations() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.violations...)
}

// Check reports each recorded violation as a test error.
func (tr *Tracker) Check(t *testing.T) {
	t.Helper()
	for _, v := range tr.Violations() {
		t.Errorf("occupancy violation: %s", v)
	}
}

// HammerOptions configures Hammer. The zero value is a usable default.
type HammerOptions struct {
	// Workers is the number of concurrent goroutines. Defaults to 8.
	Workers int

	// Iterations is the number of enter/exit cycles per worker.
	// Defaults to 1000.
	Iterations int

	// Inside, if non-nil, runs on each cycle while inside the room. Use it to
	// exercise the state your rooms protect.
	Inside func(room int)
}

// Hammer stresses the coordinator with Workers goroutines, each performing
// Iterations cycles of entering a randomly chosen room, reporting to a shared
// Tracker, and exiting. Any occupancy violation fails the test. The Tracker
// is returned for further inspection, e.g. of per-room occupancy high-water
// marks.
func Hammer(t *testing.T, rs *rooms.Rooms, opts HammerOptions) *Tracker {
	t.Helper()

	workers := opts.Workers
	if workers <= 0 {
		workers = 8
	}
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = 1000
	}

	tracker := NewTracker(rs.Len())
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < iterations; i++ {
				room := rand.Intn(rs.Len())
				r, err := rs.Enter(room)
				if err != nil {
					return err
				}
				tracker.Enter(room)
				if opts.Inside != nil {
					opts.Inside(room)
				}
				tracker.Exit(room)
				r.Exit()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("hammer worker failed: %v", err)
	}
	tracker.Check(t)
	return tracker
}
