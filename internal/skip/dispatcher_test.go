package skip

import (
	"errors"
	"testing"
	"time"
)

type fakeHandle struct {
	calls int
	err   error
}

func (h *fakeHandle) Next() error {
	h.calls++
	return h.err
}

type fakeResolver struct {
	handle *fakeHandle
	err    error
	asked  []string
}

func (r *fakeResolver) ResolvePlayer(player string) (Handle, error) {
	r.asked = append(r.asked, player)
	if r.err != nil {
		return nil, r.err
	}
	return r.handle, nil
}

const vlc = "org.mpris.MediaPlayer2.vlc"

func newTestDispatcher(r Resolver, at time.Time) *Dispatcher {
	d := New(r)
	d.now = func() time.Time { return at }
	return d
}

func TestDispatch_Skipped(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	h := &fakeHandle{}
	r := &fakeResolver{handle: h}

	res := newTestDispatcher(r, at).Dispatch(vlc)

	if res.Outcome != Skipped {
		t.Fatalf("Outcome = %v, want Skipped (err %v)", res.Outcome, res.Err)
	}
	if res.Err != nil {
		t.Errorf("Err = %v, want nil", res.Err)
	}
	if !res.At.Equal(at) {
		t.Errorf("At = %v, want %v", res.At, at)
	}
	if h.calls != 1 {
		t.Errorf("Next called %d times, want 1", h.calls)
	}
	if len(r.asked) != 1 || r.asked[0] != vlc {
		t.Errorf("resolved %v, want [%s]", r.asked, vlc)
	}
}

func TestDispatch_Unresolved(t *testing.T) {
	errGone := errors.New("name has no owner")
	r := &fakeResolver{err: errGone}

	res := New(r).Dispatch(vlc)

	if res.Outcome != Unresolved {
		t.Fatalf("Outcome = %v, want Unresolved", res.Outcome)
	}
	if !errors.Is(res.Err, errGone) {
		t.Errorf("Err = %v, want wrapping %v", res.Err, errGone)
	}
}

func TestDispatch_NextFails(t *testing.T) {
	h := &fakeHandle{err: errors.New("org.freedesktop.DBus.Error.NoReply")}

	res := New(&fakeResolver{handle: h}).Dispatch(vlc)

	if res.Outcome != Failed {
		t.Fatalf("Outcome = %v, want Failed", res.Outcome)
	}
	if res.Err == nil {
		t.Error("Err = nil, want the Next error")
	}
	if h.calls != 1 {
		t.Errorf("Next called %d times, want exactly 1 (no retry)", h.calls)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{Skipped, "Skipped"},
		{Unresolved, "Unresolved"},
		{Failed, "Failed"},
		{Outcome(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}
