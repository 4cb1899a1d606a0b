package core

import (
	"slices"

	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// PublishResult reports delivery stats of one broadcast.
type PublishResult struct {
	SendTo  int
	Dropped []Drop
}

type Drop struct {
	SID SessionID
	Err error
}

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	ID          domain.RoomID `json:"roomId"`
	MemberCount int           `json:"memberCount"`
}

// Room holds member ids in join order. It never touches transport resources
// except through Broadcast, and it is not safe for concurrent use.
type Room struct {
	id      domain.RoomID
	members []SessionID
}

func NewRoom(id domain.RoomID) *Room {
	return &Room{id: id}
}

func (r *Room) ID() domain.RoomID { return r.id }

func (r *Room) MemberCount() int { return len(r.members) }

func (r *Room) Empty() bool { return len(r.members) == 0 }

func (r *Room) Has(sid SessionID) bool {
	return slices.Contains(r.members, sid)
}

// AddMember is idempotent; it reports whether sid was newly added.
func (r *Room) AddMember(sid SessionID) bool {
	if r.Has(sid) {
		return false
	}
	r.members = append(r.members, sid)
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("sid", string(sid)).Msg("member added")
	return true
}

// RemoveMember reports whether sid was a member.
func (r *Room) RemoveMember(sid SessionID) bool {
	i := slices.Index(r.members, sid)
	if i < 0 {
		return false
	}
	r.members = slices.Delete(r.members, i, i+1)
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("sid", string(sid)).Msg("member removed")
	return true
}

func (r *Room) Members() []SessionID {
	return slices.Clone(r.members)
}

func (r *Room) Info() RoomInfo {
	return RoomInfo{ID: r.id, MemberCount: len(r.members)}
}

// Broadcast hands data to every member in join order. A failing member is
// recorded in the result and does not stop delivery to the rest.
func (r *Room) Broadcast(lookup func(SessionID) (*Session, bool), data Frame) PublishResult {
	res := PublishResult{}
	for _, sid := range r.members {
		sess, ok := lookup(sid)
		if !ok || sess.Signal == nil {
			res.Dropped = append(res.Dropped, Drop{SID: sid, Err: ErrConnClosed})
			continue
		}
		if err := sess.Signal.TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, Drop{SID: sid, Err: err})
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}
