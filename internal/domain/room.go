// Package domain contains entity ids and value types without transport logic.
package domain

import (
	"math/rand/v2"
	"strings"
)

const (
	RoomIDLen      = 6
	roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type RoomID string

// CodeGenerator produces candidate room codes. Uniqueness is the caller's job.
type CodeGenerator func() RoomID

// RandomRoomID draws RoomIDLen characters uniformly from A-Z0-9.
func RandomRoomID() RoomID {
	var b strings.Builder
	b.Grow(RoomIDLen)
	for range RoomIDLen {
		b.WriteByte(roomIDAlphabet[rand.IntN(len(roomIDAlphabet))])
	}
	return RoomID(b.String())
}

// Valid reports whether id has the shape of a room code.
func (id RoomID) Valid() bool {
	if len(id) != RoomIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(roomIDAlphabet, id[i]) < 0 {
			return false
		}
	}
	return true
}
