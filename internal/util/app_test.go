package util

import "testing"

func TestDetermineWorkers(t *testing.T) {
	if got := DetermineWorkers(1); got != 1 {
		t.Errorf("expected 1 worker for 1 job, got %d", got)
	}
	if got := DetermineWorkers(0); got < 1 {
		t.Errorf("expected at least 1 worker, got %d", got)
	}
	if got := DetermineWorkers(1000); got > 1000 || got < 1 {
		t.Errorf("unexpected worker count %d", got)
	}
}
