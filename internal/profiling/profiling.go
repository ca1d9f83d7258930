package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU timers for the render loop. Names follow "package.Operation".

type entry struct {
	total time.Duration
	calls int
}

var (
	mu          sync.Mutex
	frameTotals = make(map[string]entry)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("rvm.Flush")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		e := frameTotals[name]
		e.total += d
		e.calls++
		frameTotals[name] = e
		mu.Unlock()
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v.total
	}
	return out
}

// Calls returns how many times name was tracked in the current frame.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return frameTotals[name].calls
}

// TopN formats the N most expensive entries of the current frame.
// Example: "renderer.System.Render:4.2ms, rvm.Flush:2.1ms x3"
func TopN(n int) string {
	mu.Lock()
	type pair struct {
		name string
		e    entry
	}
	list := make([]pair, 0, len(frameTotals))
	for k, v := range frameTotals {
		list = append(list, pair{name: k, e: v})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].e.total != list[j].e.total {
			return list[i].e.total > list[j].e.total
		}
		return list[i].name < list[j].name
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		s := p.name + ":" + formatMs(p.e.total)
		if p.e.calls > 1 {
			s += " x" + strconv.Itoa(p.e.calls)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := strconv.FormatFloat(ms, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "ms"
}
