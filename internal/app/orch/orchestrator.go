package orch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dkeye/roomrelay/internal/app"
	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator is the single owner of the registry and room manager.
// Every exported method takes mu, so each connect, message or disconnect
// is applied as one atomic step and session/room back-references are never
// observed half updated.
type Orchestrator struct {
	mu       sync.Mutex
	registry *app.Registry
	rooms    *app.RoomManager
	observer app.Observer
}

func New(gen domain.CodeGenerator, obs app.Observer) *Orchestrator {
	if obs == nil {
		obs = &app.Stats{}
	}
	return &Orchestrator{
		registry: app.NewRegistry(),
		rooms:    app.NewRoomManager(gen),
		observer: obs,
	}
}

// OnConnect registers conn as a new session without a room and returns its id.
func (o *Orchestrator) OnConnect(conn core.SignalConnection) core.SessionID {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.registry.Add(conn).ID
}

// OnMessage decodes one inbound frame and applies it. Malformed frames and
// unknown types change nothing and get no reply; the returned error only
// tells the caller what was ignored.
func (o *Orchestrator) OnMessage(sid core.SessionID, raw []byte) error {
	env, err := decodeEnvelope(raw)
	if err != nil {
		o.observer.OnMalformed(sid, err)
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.registry.GetSession(sid); !ok {
		return nil
	}

	switch env.Type {
	case TypeCreate:
		_, err = o.createRoom(sid)
		if errors.Is(err, app.ErrNoRoomCode) {
			err = nil
		}
	case TypeJoin:
		var id domain.RoomID
		if id, err = decodeJoin(env); err == nil {
			o.joinRoom(sid, id)
		}
	case TypeChat:
		var text string
		if text, err = decodeChat(env); err == nil {
			o.sendMessage(sid, text)
		}
	case TypeLeave:
		if id, ok := o.leaveRoom(sid); ok {
			o.reply(sid, TypeLeft, RoomPayload{RoomID: id})
		}
	case TypePing:
		o.reply(sid, TypePong, struct{}{})
	default:
		o.observer.OnUnknown(sid, env.Type)
		return fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}

	if errors.Is(err, ErrMalformed) {
		o.observer.OnMalformed(sid, err)
	}
	return err
}

// OnDisconnect leaves the session's room, if any, forgets the session and
// closes its transport handle. Calling it for an unknown or already removed
// session is a no-op.
func (o *Orchestrator) OnDisconnect(sid core.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.registry.GetSession(sid); !ok {
		return
	}
	o.leaveRoom(sid)
	if sess, ok := o.registry.Remove(sid); ok && sess.Signal != nil {
		sess.Signal.Close()
	}
}

// CloseAll closes every live transport handle. Sessions stay registered
// until their pumps report the disconnect.
func (o *Orchestrator) CloseAll() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := 0
	for _, sess := range o.registry.Sessions() {
		if sess.Signal != nil {
			sess.Signal.Close()
			n++
		}
	}
	log.Info().Str("module", "orch").Int("closed", n).Msg("closed all sessions")
	return n
}

// reply sends a direct message to one session. Caller holds mu.
func (o *Orchestrator) reply(sid core.SessionID, msgType string, payload any) {
	sess, ok := o.registry.GetSession(sid)
	if !ok || sess.Signal == nil {
		return
	}
	frame, err := encode(msgType, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("reply encode")
		return
	}
	if err := sess.Signal.TrySend(frame); err != nil {
		o.observer.OnDropped(sid, err)
		return
	}
	o.observer.OnDelivered(1)
}

// broadcast fans one event out to every member of room. Caller holds mu.
func (o *Orchestrator) broadcast(room *core.Room, msgType string, payload any) {
	frame, err := encode(msgType, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("broadcast encode")
		return
	}
	res := room.Broadcast(o.registry.GetSession, frame)
	o.observer.OnDelivered(res.SendTo)
	for _, d := range res.Dropped {
		o.observer.OnDropped(d.SID, d.Err)
	}
}

// RoomDetail is a read-only view of one room.
type RoomDetail struct {
	core.RoomInfo
	Members []core.SessionID `json:"members"`
}

func (o *Orchestrator) ListRooms() []core.RoomInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rooms.List()
}

func (o *Orchestrator) RoomDetail(id domain.RoomID) (RoomDetail, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	room, ok := o.rooms.GetRoom(id)
	if !ok {
		return RoomDetail{}, false
	}
	return RoomDetail{RoomInfo: room.Info(), Members: room.Members()}, true
}

// Counts returns the number of live sessions and active rooms.
func (o *Orchestrator) Counts() (sessions, rooms int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.registry.Len(), o.rooms.Len()
}
