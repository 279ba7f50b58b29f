package scheduler

import (
	"testing"
	"time"
)

func TestSchedulerAddJob(t *testing.T) {
	s := NewScheduler(time.UTC)
	defer s.Stop()

	err := s.AddJob("* * * * *", func() {})
	if err != nil {
		t.Errorf("expected no error adding job, got %v", err)
	}
}

func TestSchedulerAddJobInvalidExpr(t *testing.T) {
	s := NewScheduler(time.UTC)
	defer s.Stop()

	for _, expr := range []string{"", "not a cron", "61 * * * *", "* * * * * *"} {
		if err := s.AddJob(expr, func() {}); err == nil {
			t.Errorf("expected error for expression %q", expr)
		}
	}
}
