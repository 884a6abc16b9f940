//go:build roomscheck

package rooms

// checkExit panics if this Exit cannot possibly be paired with an Enter:
// nothing is active, a different room is active, or this room's batch has
// already fully drained. The three reads are not atomic as a group, so the
// check can miss violations, and under concurrent misuse it can misattribute
// them.
func (rs *Rooms) checkExit(r *Room) {
	if !rs.active.Load() || rs.activeRoom.Load() != int64(r.index) || r.exits.Load() >= r.grant.Load() {
		panic("rooms: Exit without a matching Enter, or Exit called more than once")
	}
}
