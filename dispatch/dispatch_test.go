package dispatch

import (
	"fmt"
	"sync/atomic"
	"testing"
)

func TestMailboxLevelOrdering(t *testing.T) {
	mb := NewMailbox()
	mb.Post(Job{Kind: JobBuildCube, Level: 1})
	mb.Post(Job{Kind: JobWavelet, Level: 0})
	if mb.MaxLevel() != 1 {
		t.Fatalf("MaxLevel() = %d, want 1", mb.MaxLevel())
	}
	if len(mb.GetDependentJob(0, mb.MaxLevel())) != 1 {
		t.Fatal("expected one job at level 0")
	}
	if len(mb.GetDependentJob(1, mb.MaxLevel())) != 1 {
		t.Fatal("expected one job at level 1")
	}
}

func TestDispatcherRunCallsEveryIndex(t *testing.T) {
	d := New(4, nil)
	defer d.Close()

	var count int64
	mb := NewMailbox()
	mb.Post(Job{
		Kind:       JobOutput,
		Level:      0,
		StartIndex: 0,
		EndIndex:   100,
		Run: func(i int) error {
			atomic.AddInt64(&count, 1)
			return nil
		},
	})
	if err := d.Run(mb); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if count != 100 {
		t.Fatalf("count = %d, want 100", count)
	}
}

func TestDispatcherAggregatesErrors(t *testing.T) {
	d := New(2, nil)
	defer d.Close()

	mb := NewMailbox()
	mb.Post(Job{
		Kind:       JobOutput,
		Level:      0,
		StartIndex: 0,
		EndIndex:   5,
		Run: func(i int) error {
			if i == 2 {
				return fmt.Errorf("row %d failed", i)
			}
			return nil
		},
	})
	if err := d.Run(mb); err == nil {
		t.Fatal("expected aggregated error")
	}
}

func TestDispatcherRespectsLevelDependency(t *testing.T) {
	d := New(2, nil)
	defer d.Close()

	var level0Done, level1SawLevel0 int64
	mb := NewMailbox()
	mb.Post(Job{
		Kind: JobWavelet, Level: 0, StartIndex: 0, EndIndex: 10,
		Run: func(i int) error {
			atomic.AddInt64(&level0Done, 1)
			return nil
		},
	})
	mb.Post(Job{
		Kind: JobBuildCube, Level: 1, StartIndex: 0, EndIndex: 10,
		Run: func(i int) error {
			if atomic.LoadInt64(&level0Done) == 10 {
				atomic.AddInt64(&level1SawLevel0, 1)
			}
			return nil
		},
	})
	if err := d.Run(mb); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if level1SawLevel0 != 10 {
		t.Fatalf("expected every level-1 job to observe level 0 complete, got %d/10", level1SawLevel0)
	}
}
