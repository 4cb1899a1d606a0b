package signal

import (
	"errors"
	"testing"

	"github.com/dkeye/roomrelay/internal/core"
)

func TestTrySendBackpressure(t *testing.T) {
	c := &WsSignalConn{send: make(chan core.Frame, 1)}
	if err := c.TrySend(core.Frame("a")); err != nil {
		t.Fatalf("first TrySend: %v", err)
	}
	if err := c.TrySend(core.Frame("b")); !errors.Is(err, core.ErrBackpressure) {
		t.Fatalf("second TrySend err = %v, want ErrBackpressure", err)
	}
	if got := string(<-c.send); got != "a" {
		t.Fatalf("queued frame = %q, want a", got)
	}
}

func TestTrySendAfterClose(t *testing.T) {
	c := &WsSignalConn{send: make(chan core.Frame, 1), closed: true}
	if err := c.TrySend(core.Frame("a")); !errors.Is(err, core.ErrConnClosed) {
		t.Fatalf("TrySend err = %v, want ErrConnClosed", err)
	}
}
