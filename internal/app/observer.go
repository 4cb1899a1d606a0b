package app

import (
	"sync/atomic"

	"github.com/dkeye/roomrelay/internal/core"
	"github.com/rs/zerolog/log"
)

// Observer receives delivery and protocol anomalies. Implementations must
// not call back into the orchestrator.
type Observer interface {
	OnDelivered(n int)
	OnDropped(sid core.SessionID, err error)
	OnMalformed(sid core.SessionID, err error)
	OnUnknown(sid core.SessionID, msgType string)
}

type StatsSnapshot struct {
	Delivered uint64 `json:"delivered"`
	Dropped   uint64 `json:"dropped"`
	Malformed uint64 `json:"malformed"`
	Unknown   uint64 `json:"unknown"`
}

// Stats is the default Observer: counters plus a log line per anomaly.
type Stats struct {
	delivered atomic.Uint64
	dropped   atomic.Uint64
	malformed atomic.Uint64
	unknown   atomic.Uint64
}

func (s *Stats) OnDelivered(n int) {
	if n > 0 {
		s.delivered.Add(uint64(n))
	}
}

func (s *Stats) OnDropped(sid core.SessionID, err error) {
	s.dropped.Add(1)
	log.Warn().Err(err).Str("module", "app.stats").Str("sid", string(sid)).Msg("delivery dropped")
}

func (s *Stats) OnMalformed(sid core.SessionID, err error) {
	s.malformed.Add(1)
	log.Debug().Err(err).Str("module", "app.stats").Str("sid", string(sid)).Msg("malformed frame ignored")
}

func (s *Stats) OnUnknown(sid core.SessionID, msgType string) {
	s.unknown.Add(1)
	log.Debug().Str("module", "app.stats").Str("sid", string(sid)).Str("type", msgType).Msg("unknown message type ignored")
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Delivered: s.delivered.Load(),
		Dropped:   s.dropped.Load(),
		Malformed: s.malformed.Load(),
		Unknown:   s.unknown.Load(),
	}
}
