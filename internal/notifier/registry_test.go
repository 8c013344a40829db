package notifier

import (
	"errors"
	"testing"

	"github.com/newthinker/pulse/internal/core"
)

// fakeNotifier records sends for assertions.
type fakeNotifier struct {
	name  string
	sent  []core.Signal
	err   error
}

func (f *fakeNotifier) Name() string            { return f.name }
func (f *fakeNotifier) Init(cfg Config) error   { return nil }
func (f *fakeNotifier) Send(s core.Signal) error {
	f.sent = append(f.sent, s)
	return f.err
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&fakeNotifier{name: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&fakeNotifier{name: "a"}); err == nil {
		t.Error("expected error on duplicate registration")
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	n := &fakeNotifier{name: "telegram"}
	r.Register(n)

	got, err := r.Get("telegram")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != n {
		t.Error("Get returned wrong notifier")
	}

	if _, err := r.Get("missing"); err == nil {
		t.Error("expected error for unknown notifier")
	}
}

func TestRegistry_GetAll(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeNotifier{name: "a"})
	r.Register(&fakeNotifier{name: "b"})

	if got := len(r.GetAll()); got != 2 {
		t.Errorf("GetAll() returned %d, want 2", got)
	}
}

func TestRegistry_NotifyAll(t *testing.T) {
	r := NewRegistry()
	ok := &fakeNotifier{name: "ok"}
	bad := &fakeNotifier{name: "bad", err: errors.New("boom")}
	r.Register(ok)
	r.Register(bad)

	sig := core.Signal{Asset: "EURUSD", Status: core.StatusActive, Direction: core.DirectionCall}
	errs := r.NotifyAll(sig)

	if len(ok.sent) != 1 {
		t.Errorf("ok notifier got %d sends, want 1", len(ok.sent))
	}
	if len(bad.sent) != 1 {
		t.Error("failing notifier must still be attempted")
	}
	if len(errs) != 1 || errs["bad"] == nil {
		t.Errorf("expected one error keyed by notifier name, got %v", errs)
	}
}
