// internal/app/commands_test.go
package app

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/budskip/internal/skip"
)

func TestTapTimeoutCmd_FiresAfterWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		start := time.Now()
		cmd := TapTimeoutCmd(time.Second, 7)

		msg := cmd()

		if elapsed := time.Since(start); elapsed != time.Second {
			t.Errorf("timeout fired after %v, want 1s", elapsed)
		}
		got, ok := msg.(TapTimeoutMsg)
		if !ok {
			t.Fatalf("msg = %T, want TapTimeoutMsg", msg)
		}
		if got.Generation != 7 {
			t.Errorf("Generation = %d, want 7", got.Generation)
		}
	})
}

func TestListPlayersCmd(t *testing.T) {
	gw := newFakeGateway(spotify)
	gw.listErr = errors.New("boom")

	msg, ok := ListPlayersCmd(gw)().(PlayersListedMsg)
	if !ok {
		t.Fatal("ListPlayersCmd did not return PlayersListedMsg")
	}
	if len(msg.Players) != 1 || msg.Players[0] != spotify {
		t.Errorf("Players = %v, want [%s]", msg.Players, spotify)
	}
	if msg.Err == nil {
		t.Error("Err = nil, want the listing error")
	}
}

func TestSkipCmd(t *testing.T) {
	gw := newFakeGateway(spotify)

	msg, ok := SkipCmd(skip.New(gw), spotify)().(SkipDoneMsg)
	if !ok {
		t.Fatal("SkipCmd did not return SkipDoneMsg")
	}
	if msg.Outcome != skip.Skipped || msg.Player != spotify {
		t.Errorf("SkipDoneMsg = %+v, want Skipped on %s", msg, spotify)
	}
	if gw.nexts != 1 {
		t.Errorf("Next called %d times, want 1", gw.nexts)
	}
}
