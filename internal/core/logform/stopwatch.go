package logform

import (
	"fmt"
	"math/big"
	"time"
)

// TickInterval is how often a running stopwatch advances.
const TickInterval = time.Second

// Stopwatch counts whole seconds while running. Gen changes whenever the
// stopwatch is started so ticks scheduled by an earlier run are dropped.
type Stopwatch struct {
	Seconds int
	Running bool
	Gen     int
}

// Elapsed returns the accumulated time.
func (s Stopwatch) Elapsed() time.Duration {
	return time.Duration(s.Seconds) * time.Second
}

// Minutes formats the accumulated time as minutes with one decimal. The
// float64 quotient is rounded on its exact binary value with halves going
// up: 15s (0.25) is "0.3", 9s (just under 0.15) is "0.1".
func (s Stopwatch) Minutes() string {
	x := new(big.Float).SetPrec(256).SetFloat64(float64(s.Seconds) / 60)
	x.Mul(x, big.NewFloat(10))
	tenths, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(x, new(big.Float).SetInt(tenths))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		tenths.Add(tenths, big.NewInt(1))
	}
	t := tenths.Int64()
	return fmt.Sprintf("%d.%d", t/10, t%10)
}

// Clock formats the accumulated time as MM:SS, or H:MM:SS past an hour.
func (s Stopwatch) Clock() string {
	h := s.Seconds / 3600
	m := (s.Seconds % 3600) / 60
	sec := s.Seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}

func (s Stopwatch) start() Stopwatch {
	if s.Running {
		return s
	}
	s.Running = true
	s.Gen++
	return s
}

func (s Stopwatch) pause() Stopwatch {
	s.Running = false
	return s
}

func (s Stopwatch) reset() Stopwatch {
	return Stopwatch{Gen: s.Gen + 1}
}
