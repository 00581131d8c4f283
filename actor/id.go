package actor

import "sync/atomic"

var (
	bodyIDs  atomic.Uint64
	forceIDs atomic.Uint64
)

// nextBodyID hands out process-unique body ids; ids are never reused.
func nextBodyID() uint64 {
	return bodyIDs.Add(1)
}

func nextForceID() uint64 {
	return forceIDs.Add(1)
}
