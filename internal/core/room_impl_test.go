package core_test

import (
	"errors"
	"testing"

	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/core/mocks"
	"go.uber.org/mock/gomock"
)

func TestRoomAddMemberIdempotent(t *testing.T) {
	r := core.NewRoom("ABC123")
	if !r.AddMember("a") {
		t.Fatal("first AddMember should report true")
	}
	if r.AddMember("a") {
		t.Fatal("second AddMember should report false")
	}
	if got := r.MemberCount(); got != 1 {
		t.Fatalf("MemberCount() = %d, want 1", got)
	}
}

func TestRoomRemoveMember(t *testing.T) {
	r := core.NewRoom("ABC123")
	r.AddMember("a")
	r.AddMember("b")
	r.AddMember("c")

	if !r.RemoveMember("b") {
		t.Fatal("RemoveMember(b) should report true")
	}
	if r.RemoveMember("b") {
		t.Fatal("RemoveMember(b) twice should report false")
	}
	got := r.Members()
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("Members() = %v, want [a c]", got)
	}
	r.RemoveMember("a")
	r.RemoveMember("c")
	if !r.Empty() {
		t.Fatal("room should be empty")
	}
}

func TestRoomBroadcastIsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)

	frame := core.Frame(`{"type":"chat"}`)
	ok1 := mocks.NewMockSignalConnection(ctrl)
	broken := mocks.NewMockSignalConnection(ctrl)
	ok2 := mocks.NewMockSignalConnection(ctrl)

	gomock.InOrder(
		ok1.EXPECT().TrySend(frame).Return(nil),
		broken.EXPECT().TrySend(frame).Return(core.ErrBackpressure),
		ok2.EXPECT().TrySend(frame).Return(nil),
	)

	sessions := map[core.SessionID]*core.Session{
		"a": {ID: "a", Signal: ok1},
		"b": {ID: "b", Signal: broken},
		"c": {ID: "c", Signal: ok2},
	}
	lookup := func(sid core.SessionID) (*core.Session, bool) {
		s, ok := sessions[sid]
		return s, ok
	}

	r := core.NewRoom("ABC123")
	r.AddMember("a")
	r.AddMember("b")
	r.AddMember("c")

	res := r.Broadcast(lookup, frame)
	if res.SendTo != 2 {
		t.Errorf("SendTo = %d, want 2", res.SendTo)
	}
	if len(res.Dropped) != 1 || res.Dropped[0].SID != "b" || !errors.Is(res.Dropped[0].Err, core.ErrBackpressure) {
		t.Errorf("Dropped = %+v, want one backpressure drop for b", res.Dropped)
	}
	if r.MemberCount() != 3 {
		t.Errorf("broadcast must not mutate membership, got %d members", r.MemberCount())
	}
}

func TestRoomBroadcastUnknownSession(t *testing.T) {
	r := core.NewRoom("ABC123")
	r.AddMember("ghost")
	res := r.Broadcast(func(core.SessionID) (*core.Session, bool) { return nil, false }, core.Frame("x"))
	if res.SendTo != 0 || len(res.Dropped) != 1 || !errors.Is(res.Dropped[0].Err, core.ErrConnClosed) {
		t.Fatalf("unexpected result %+v", res)
	}
}
