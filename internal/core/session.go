package core

import (
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/google/uuid"
)

type SessionID string

func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Session is the server-side identity of one connected client.
// Room is empty while the session belongs to no room.
type Session struct {
	ID     SessionID
	Signal SignalConnection
	Room   domain.RoomID
}

func NewSession(conn SignalConnection) *Session {
	return &Session{ID: NewSessionID(), Signal: conn}
}

func (s *Session) InRoom() bool { return s.Room != "" }
