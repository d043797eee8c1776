// Package leaktest checks that workers, schedulers and pools release their
// goroutines once stopped.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	// SettleTimeout bounds how long Check waits for goroutines to exit
	SettleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
)

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	t        testing.TB
	baseline int
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{t: t, baseline: runtime.NumGoroutine()}
}

// Check fails the test if more than tolerance goroutines outlive the baseline
// after SettleTimeout. Stopped components usually exit well before that, so
// the count is polled instead of sampled once.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	if n, ok := Settle(g.baseline+tolerance, SettleTimeout); !ok {
		g.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d", g.baseline, n, tolerance)
	}
}

// Settle polls until at most target goroutines run or timeout elapses. It
// returns the last observed count and whether the target was reached.
func Settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}

// Run executes fn and checks that it leaves no goroutine behind
func Run(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
