package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	for i := 0; i < 3; i++ {
		Track("rvm.Flush")()
	}
	if got := Calls("rvm.Flush"); got != 3 {
		t.Errorf("Calls = %d, want 3", got)
	}
	if _, ok := Snapshot()["rvm.Flush"]; !ok {
		t.Error("Snapshot missing tracked entry")
	}

	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Error("ResetFrame did not clear totals")
	}
}

func TestTopNOrdersByDuration(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["fast"] = entry{total: time.Millisecond, calls: 1}
	frameTotals["slow"] = entry{total: 4200 * time.Microsecond, calls: 2}
	frameTotals["mid"] = entry{total: 2 * time.Millisecond, calls: 1}
	mu.Unlock()
	defer ResetFrame()

	got := TopN(2)
	if got != "slow:4.2ms x2, mid:2ms" {
		t.Errorf("TopN(2) = %q", got)
	}
	if n := strings.Count(TopN(10), ","); n != 2 {
		t.Errorf("TopN(10) has %d separators, want 2", n)
	}
}
