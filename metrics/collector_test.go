package metrics

import (
	"sync"
	"testing"
)

func TestCollector_IncrementMethods(t *testing.T) {
	c := NewCollector("max-eff-tob", "11111111-1111-1111-1111-111111111111")

	c.IncRunStarted()
	c.IncRunCompleted()
	c.IncRunFailed()
	c.IncRunFailed()
	c.IncAnalyzerRun()
	c.IncAnalyzerRun()
	c.IncAnalyzerFailed()

	s := c.Snapshot()

	if s.RunsStarted != 1 {
		t.Errorf("RunsStarted = %d, want 1", s.RunsStarted)
	}
	if s.RunsCompleted != 1 {
		t.Errorf("RunsCompleted = %d, want 1", s.RunsCompleted)
	}
	if s.RunsFailed != 2 {
		t.Errorf("RunsFailed = %d, want 2", s.RunsFailed)
	}
	if s.AnalyzersRun != 2 {
		t.Errorf("AnalyzersRun = %d, want 2", s.AnalyzersRun)
	}
	if s.AnalyzersFailed != 1 {
		t.Errorf("AnalyzersFailed = %d, want 1", s.AnalyzersFailed)
	}
}

func TestCollector_Dimensions(t *testing.T) {
	c := NewCollector("max-eff-tob", "run-42")
	s := c.Snapshot()

	if s.Program != "max-eff-tob" {
		t.Errorf("Program = %q, want %q", s.Program, "max-eff-tob")
	}
	if s.Challenge != "run-42" {
		t.Errorf("Challenge = %q, want %q", s.Challenge, "run-42")
	}
}

func TestCollector_SnapshotImmutability(t *testing.T) {
	c := NewCollector("max-eff-tob", "run-001")
	c.IncRunStarted()

	s1 := c.Snapshot()

	c.IncRunCompleted()
	c.IncRunCompleted()

	if s1.RunsCompleted != 0 {
		t.Errorf("s1.RunsCompleted = %d, want 0 (snapshot should be frozen)", s1.RunsCompleted)
	}

	s2 := c.Snapshot()
	if s2.RunsCompleted != 2 {
		t.Errorf("s2.RunsCompleted = %d, want 2", s2.RunsCompleted)
	}
}

func TestCollector_NilReceiverSafety(t *testing.T) {
	var c *Collector

	// None of these should panic
	c.IncRunStarted()
	c.IncRunCompleted()
	c.IncRunFailed()
	c.IncAnalyzerRun()
	c.IncAnalyzerFailed()

	s := c.Snapshot()
	if s.RunsStarted != 0 {
		t.Errorf("nil collector snapshot RunsStarted = %d, want 0", s.RunsStarted)
	}
}

func TestCollector_ConcurrentAccess(t *testing.T) {
	c := NewCollector("max-eff-tob", "run-001")
	const goroutines = 10
	const iterations = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for range goroutines {
		go func() {
			defer wg.Done()
			for range iterations {
				c.IncRunStarted()
				c.IncAnalyzerRun()
			}
		}()
	}

	wg.Wait()

	s := c.Snapshot()
	want := int64(goroutines * iterations)

	if s.RunsStarted != want {
		t.Errorf("RunsStarted = %d, want %d", s.RunsStarted, want)
	}
	if s.AnalyzersRun != want {
		t.Errorf("AnalyzersRun = %d, want %d", s.AnalyzersRun, want)
	}
}

func TestCollector_ZeroValueSnapshot(t *testing.T) {
	c := NewCollector("max-eff-tob", "run-001")
	s := c.Snapshot()

	if s.RunsStarted != 0 || s.RunsCompleted != 0 || s.RunsFailed != 0 {
		t.Error("fresh collector should have zero run lifecycle counters")
	}
	if s.AnalyzersRun != 0 || s.AnalyzersFailed != 0 {
		t.Error("fresh collector should have zero analyzer counters")
	}
}
