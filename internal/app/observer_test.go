package app

import (
	"errors"
	"testing"
)

func TestStatsCounters(t *testing.T) {
	var s Stats
	var _ Observer = &s

	s.OnDelivered(3)
	s.OnDelivered(0)
	s.OnDropped("a", errors.New("boom"))
	s.OnMalformed("a", errors.New("bad json"))
	s.OnMalformed("b", errors.New("bad json"))
	s.OnUnknown("a", "dance")

	got := s.Snapshot()
	want := StatsSnapshot{Delivered: 3, Dropped: 1, Malformed: 2, Unknown: 1}
	if got != want {
		t.Fatalf("Snapshot() = %+v, want %+v", got, want)
	}
}
