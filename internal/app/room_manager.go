package app

import (
	"errors"
	"slices"
	"strings"

	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

const maxCodeAttempts = 100

var ErrNoRoomCode = errors.New("no free room code")

// RoomManager owns the active rooms. Like Registry it is serialized by the
// orchestrator and takes no lock itself.
type RoomManager struct {
	rooms map[domain.RoomID]*core.Room
	gen   domain.CodeGenerator
}

// NewRoomManager uses domain.RandomRoomID when gen is nil.
func NewRoomManager(gen domain.CodeGenerator) *RoomManager {
	if gen == nil {
		gen = domain.RandomRoomID
	}
	return &RoomManager{
		rooms: make(map[domain.RoomID]*core.Room),
		gen:   gen,
	}
}

// CreateRoom registers a room under a code not used by any active room,
// with owner as its only member.
func (m *RoomManager) CreateRoom(owner core.SessionID) (*core.Room, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		id := m.gen()
		if _, taken := m.rooms[id]; taken {
			log.Debug().Str("module", "app.rooms").Str("room", string(id)).Int("attempt", attempt).Msg("room code collision")
			continue
		}
		room := core.NewRoom(id)
		room.AddMember(owner)
		m.rooms[id] = room
		log.Info().Str("module", "app.rooms").Str("room", string(id)).Str("sid", string(owner)).Msg("room created")
		return room, nil
	}
	return nil, ErrNoRoomCode
}

func (m *RoomManager) GetRoom(id domain.RoomID) (*core.Room, bool) {
	r, ok := m.rooms[id]
	return r, ok
}

func (m *RoomManager) StopRoom(id domain.RoomID) {
	if _, ok := m.rooms[id]; !ok {
		return
	}
	delete(m.rooms, id)
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room destroyed")
}

func (m *RoomManager) Len() int { return len(m.rooms) }

// List returns room infos ordered by code.
func (m *RoomManager) List() []core.RoomInfo {
	out := make([]core.RoomInfo, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r.Info())
	}
	slices.SortFunc(out, func(a, b core.RoomInfo) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return out
}
