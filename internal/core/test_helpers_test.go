package core

import (
	"testing"
	"time"
)

type fakeParticipant struct {
	id     string
	name   string
	screen Screen
}

func (f *fakeParticipant) ID() string          { return f.id }
func (f *fakeParticipant) Name() string        { return f.name }
func (f *fakeParticipant) SetName(name string) { f.name = name }
func (f *fakeParticipant) Screen() Screen      { return f.screen }

func mustClose(t *testing.T, ch <-chan struct{}) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("channel was not closed in time")
	}
}
