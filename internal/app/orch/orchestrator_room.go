package orch

import (
	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// The methods below assume mu is held.

// createRoom moves sid out of its current room, if any, into a new room of
// its own and replies roomCreated.
func (o *Orchestrator) createRoom(sid core.SessionID) (domain.RoomID, error) {
	if from, ok := o.leaveRoom(sid); ok {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(from)).Msg("left room before create")
	}
	room, err := o.rooms.CreateRoom(sid)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("create room")
		o.reply(sid, TypeError, ErrorPayload{Message: msgRoomFailed})
		return "", err
	}
	o.registry.UpdateRoom(sid, room.ID())
	o.reply(sid, TypeRoomCreated, RoomPayload{RoomID: room.ID()})
	return room.ID(), nil
}

// joinRoom adds sid to room id. Joining the room sid is already in keeps a
// single membership entry; joining another room leaves the current one first.
func (o *Orchestrator) joinRoom(sid core.SessionID, id domain.RoomID) {
	room, ok := o.rooms.GetRoom(id)
	if !id.Valid() || !ok {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(id)).Msg("join: room not found")
		o.reply(sid, TypeError, ErrorPayload{Message: msgRoomNotFound})
		return
	}

	if from, ok := o.registry.RoomOf(sid); ok && from != id {
		o.leaveRoom(sid)
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(from)).Msg("kicked from room")
	}

	room.AddMember(sid)
	o.registry.UpdateRoom(sid, id)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(id)).Msg("added to room")

	o.reply(sid, TypeRoomJoined, RoomPayload{RoomID: id})
	o.broadcast(room, TypeUserJoined, UserPayload{UserID: sid})
}

// leaveRoom removes sid from its room, tells the remaining members and
// destroys the room once empty. It reports the room left, if any.
func (o *Orchestrator) leaveRoom(sid core.SessionID) (domain.RoomID, bool) {
	id, ok := o.registry.RoomOf(sid)
	if !ok {
		return "", false
	}
	o.registry.RemoveRoom(sid)

	room, ok := o.rooms.GetRoom(id)
	if !ok {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("room", string(id)).Msg("session pointed at missing room")
		return id, true
	}
	room.RemoveMember(sid)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(id)).Msg("removed from room")

	if room.Empty() {
		o.rooms.StopRoom(id)
		return id, true
	}
	o.broadcast(room, TypeUserLeft, UserPayload{UserID: sid})
	return id, true
}

// sendMessage relays text to every member of sid's room, sender included.
func (o *Orchestrator) sendMessage(sid core.SessionID, text string) {
	id, ok := o.registry.RoomOf(sid)
	if !ok {
		return
	}
	room, ok := o.rooms.GetRoom(id)
	if !ok {
		return
	}
	o.broadcast(room, TypeChat, ChatPayload{UserID: sid, Message: text})
}
