package morse

import "testing"

func TestClassifierFiltersOutOfRangeDurations(t *testing.T) {
	c := NewClassifier()
	before := c.ditAvgUs
	if cls := c.Classify(1000, true); cls != ClassUnknown {
		t.Fatalf("1ms mark: got %v, want ClassUnknown", cls)
	}
	if cls := c.Classify(6_000_000, true); cls != ClassUnknown {
		t.Fatalf("6s mark: got %v, want ClassUnknown", cls)
	}
	if c.ditAvgUs != before {
		t.Fatal("out-of-range durations must not update state")
	}
}

func TestClassifierAdaptsTowardFasterSending(t *testing.T) {
	c := NewClassifier()
	start := c.ditAvgUs
	for i := 0; i < 10; i++ {
		c.Classify(48_000, true)
	}
	if c.ditAvgUs >= start {
		t.Fatalf("dit_avg_us = %v, want < starting value %v", c.ditAvgUs, start)
	}
	if wpm := c.WPM(); wpm <= 20 {
		t.Fatalf("wpm = %v, want > 20", wpm)
	}
}

func TestClassifierWarmup(t *testing.T) {
	c := NewClassifier()
	if wpm := c.WPM(); wpm != 0 {
		t.Fatalf("wpm before warmup completes = %v, want 0", wpm)
	}
	for i := 0; i < defaultWarmup; i++ {
		c.Classify(60_000, true)
	}
	if wpm := c.WPM(); wpm == 0 {
		t.Fatal("wpm after warmup completes should be nonzero")
	}
}

func TestClassifierSpaceClassificationDoesNotUpdateState(t *testing.T) {
	c := NewClassifier()
	before := c.ditAvgUs
	c.Classify(int64(c.ditAvgUs), false)
	if c.ditAvgUs != before {
		t.Fatal("space classification must not update ditAvgUs")
	}
}

func TestClassifierSpaceBuckets(t *testing.T) {
	c := NewClassifier()
	dit := int64(c.ditAvgUs)
	if cls := c.Classify(dit, false); cls != ClassIntraGap {
		t.Fatalf("1 dit space: got %v, want ClassIntraGap", cls)
	}
	if cls := c.Classify(3*dit, false); cls != ClassCharGap {
		t.Fatalf("3 dit space: got %v, want ClassCharGap", cls)
	}
	if cls := c.Classify(6*dit, false); cls != ClassWordGap {
		t.Fatalf("6 dit space: got %v, want ClassWordGap", cls)
	}
}
