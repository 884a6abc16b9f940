// Package rooms provides lock-free synchronization that grants exclusive
// access to logical groups of operations, which we call rooms. Any number of
// goroutines may be inside the same room at once, but goroutines can never be
// inside two different rooms at the same time. It implements the algorithm
// described in "Scalable Room Synchronizations" by Blelloch, Cheng, and Gibbons
// (https://www.cs.cmu.edu/~blelloch/papers/BCG03.pdf).
//
// # Why This Package Exists
//
// Reader/writer locks and mutexes serialize at the granularity of individual
// critical sections. Some workloads only need exclusion between *groups* of
// operations: for example, workers updating a set of atomic metrics may run
// concurrently with each other, and monitors snapshotting those metrics may run
// concurrently with each other, but an update must never interleave with a
// snapshot. Modelling the two groups as two rooms expresses exactly that
// constraint, without serializing work inside either group:
//
//	metrics := rooms.New(2)
//	const (
//		update = iota
//		snapshot
//	)
//
//	// Workers, any number concurrently:
//	room := metrics.MustEnter(update)
//	workUnits.Add(1)
//	totalTime.Add(elapsed)
//	room.Exit()
//
//	// Monitors, any number concurrently, never interleaved with workers:
//	room = metrics.MustEnter(snapshot)
//	units, time := workUnits.Load(), totalTime.Load()
//	room.Exit()
//
// # How Admission Works
//
// Each call to Enter takes a ticket for its room by atomically incrementing
// the room's entry counter. When a room is activated, every ticket issued so
// far is granted in a single batch: one atomic store admits them all. A caller
// whose ticket is already covered by the current grant returns immediately
// without waiting (the wait-free fast path). Otherwise it spins, attempting to
// claim the whole coordinator via one compare-and-swap; the winner activates
// its room and admits the current batch.
//
// When the last goroutine of a batch exits, it scans the rooms round-robin,
// starting just past the room that finished (so the finishing room is tried
// last), and activates the first room with waiting tickets, admitting all of
// them in one step. If no room has waiters, the coordinator goes idle and the
// next Enter claims it afresh.
//
// Batching is what makes the algorithm scale: contention on the shared state
// is one compare-and-swap per room switch, not per admitted goroutine.
//
// # The Exit Contract
//
// Exit must be called exactly once for each successful Enter. There is no
// enforcement beyond an opt-in diagnostic: exiting twice, or exiting without
// having entered, silently corrupts the admission counters. Building with the
// "roomscheck" tag compiles in a best-effort check that panics on detectable
// misuse; see the Room.Exit documentation.
//
// # Design Trade-offs
//
// This implementation makes deliberate trade-offs in favor of the properties
// the algorithm was designed for:
//
//   - Waiting spins (with a scheduler yield) instead of blocking on a channel
//     or futex. Admission latency stays independent of the scheduler's wake-up
//     machinery, and the already-admitted path stays wait-free.
//   - No context support, no timeouts, and no way to abandon a ticket. A
//     ticket, once taken, must be seen through: entered and then exited.
//   - Round-robin over rooms with waiters, not FIFO over goroutines. A later
//     arrival to a room can be admitted in the same batch as an earlier
//     arrival to that room, or even before it, but never after a switch to a
//     different room has been observed.
//   - No ordering guarantees inside a room. Goroutines sharing a room
//     coordinate their own state, typically with atomics (as in the metrics
//     example above).
//
// If you need exclusion between exactly two symmetric groups with blocking
// waits, sync.RWMutex may serve; if you need ordering between operations, use
// a dedicated ordering primitive. This package is for group-wise exclusion
// under high intra-group concurrency.
package rooms
