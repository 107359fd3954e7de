package maintenance

import (
	"errors"
	"testing"

	xerrors "vms-service/internal/pkg/errors"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestApplyTransition(t *testing.T) {
	r := &Record{Status: StatusPending}
	if err := r.ApplyTransition(StatusInProgress); err != nil {
		t.Fatalf("pending -> in_progress: %v", err)
	}
	if r.Status != StatusInProgress {
		t.Fatalf("status = %s, want %s", r.Status, StatusInProgress)
	}
	if err := r.ApplyTransition(StatusCompleted); err != nil {
		t.Fatalf("in_progress -> completed: %v", err)
	}

	err := r.ApplyTransition(StatusCancelled)
	if err == nil {
		t.Fatal("expected error moving completed record")
	}
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
	if r.Status != StatusCompleted {
		t.Errorf("status changed on rejected transition: %s", r.Status)
	}
}

func TestApplyTransitionUnknownStatus(t *testing.T) {
	r := &Record{Status: StatusPending}
	if err := r.ApplyTransition(Status("archived")); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}
