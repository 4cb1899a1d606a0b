package orch

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
)

// Inbound message types.
const (
	TypeCreate = "create"
	TypeJoin   = "join"
	TypeChat   = "chat"
	TypeLeave  = "leave"
	TypePing   = "ping"
)

// Outbound message types.
const (
	TypeRoomCreated = "roomCreated"
	TypeRoomJoined  = "roomJoined"
	TypeUserJoined  = "userJoined"
	TypeUserLeft    = "userLeft"
	TypeLeft        = "left"
	TypePong        = "pong"
	TypeError       = "error"
)

const (
	msgRoomNotFound = "Room not found"
	msgRoomFailed   = "Could not create room"
)

var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownType = errors.New("unknown message type")
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type joinPayload struct {
	RoomID *string `json:"roomId"`
}

type chatPayload struct {
	Message *string `json:"message"`
}

// Outbound is the server to client frame shape.
type Outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type RoomPayload struct {
	RoomID domain.RoomID `json:"roomId"`
}

type UserPayload struct {
	UserID core.SessionID `json:"userId"`
}

type ChatPayload struct {
	UserID  core.SessionID `json:"userId"`
	Message string         `json:"message"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func decodeEnvelope(raw []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Type == "" {
		return env, fmt.Errorf("%w: missing type", ErrMalformed)
	}
	return env, nil
}

func decodeJoin(env envelope) (domain.RoomID, error) {
	var p joinPayload
	if len(env.Payload) == 0 {
		return "", fmt.Errorf("%w: join without payload", ErrMalformed)
	}
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return "", fmt.Errorf("%w: join payload: %v", ErrMalformed, err)
	}
	if p.RoomID == nil || *p.RoomID == "" {
		return "", fmt.Errorf("%w: join without roomId", ErrMalformed)
	}
	return domain.RoomID(*p.RoomID), nil
}

func decodeChat(env envelope) (string, error) {
	var p chatPayload
	if len(env.Payload) == 0 {
		return "", fmt.Errorf("%w: chat without payload", ErrMalformed)
	}
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return "", fmt.Errorf("%w: chat payload: %v", ErrMalformed, err)
	}
	if p.Message == nil {
		return "", fmt.Errorf("%w: chat without message", ErrMalformed)
	}
	return *p.Message, nil
}

func encode(msgType string, payload any) (core.Frame, error) {
	b, err := json.Marshal(Outbound{Type: msgType, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msgType, err)
	}
	return core.Frame(b), nil
}
