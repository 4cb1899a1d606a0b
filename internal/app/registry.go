package app

import (
	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry tracks live sessions. It holds no lock of its own: the
// orchestrator serializes every call together with RoomManager calls.
type Registry struct {
	sessions map[core.SessionID]*core.Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*core.Session),
	}
}

// Add allocates a session with a fresh id and no room.
func (r *Registry) Add(conn core.SignalConnection) *core.Session {
	sess := core.NewSession(conn)
	r.sessions[sess.ID] = sess
	log.Info().Str("module", "app.registry").Str("sid", string(sess.ID)).Int("total", len(r.sessions)).Msg("bound session")
	return sess
}

func (r *Registry) GetSession(sid core.SessionID) (*core.Session, bool) {
	s, ok := r.sessions[sid]
	return s, ok
}

// Remove drops the session and returns it, or false if it was already gone.
func (r *Registry) Remove(sid core.SessionID) (*core.Session, bool) {
	s, ok := r.sessions[sid]
	if !ok {
		return nil, false
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("total", len(r.sessions)).Msg("unbind session")
	return s, true
}

func (r *Registry) RoomOf(sid core.SessionID) (domain.RoomID, bool) {
	s, ok := r.sessions[sid]
	if !ok || !s.InRoom() {
		return "", false
	}
	return s.Room, true
}

func (r *Registry) UpdateRoom(sid core.SessionID, room domain.RoomID) bool {
	s, ok := r.sessions[sid]
	if !ok {
		return false
	}
	s.Room = room
	log.Debug().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(room)).Msg("updated room")
	return true
}

func (r *Registry) RemoveRoom(sid core.SessionID) {
	if s, ok := r.sessions[sid]; ok {
		s.Room = ""
		log.Debug().Str("module", "app.registry").Str("sid", string(sid)).Msg("removed room association")
	}
}

func (r *Registry) Len() int { return len(r.sessions) }

// Sessions returns the live sessions in no particular order.
func (r *Registry) Sessions() []*core.Session {
	out := make([]*core.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}
