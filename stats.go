package sandbox

import "sync/atomic"

// Stats counts the events the loops survive instead of failing on.
type Stats struct {
	Ticks            atomic.Uint64
	Frames           atomic.Uint64
	SkippedUpdates   atomic.Uint64
	SkippedZooms     atomic.Uint64
	InertiaFallbacks atomic.Uint64
	RenderErrors     atomic.Uint64
}

type StatsSnapshot struct {
	Ticks            uint64
	Frames           uint64
	SkippedUpdates   uint64
	SkippedZooms     uint64
	InertiaFallbacks uint64
	RenderErrors     uint64
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Ticks:            s.Ticks.Load(),
		Frames:           s.Frames.Load(),
		SkippedUpdates:   s.SkippedUpdates.Load(),
		SkippedZooms:     s.SkippedZooms.Load(),
		InertiaFallbacks: s.InertiaFallbacks.Load(),
		RenderErrors:     s.RenderErrors.Load(),
	}
}
