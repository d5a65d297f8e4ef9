package dice

import (
	"sync"

	"go.uber.org/zap"
)

const (
	DieSides = 6

	// Spin boundaries on the unit interval: [0, 0.375) is 10, [0.375, 0.75)
	// is 20, [0.75, 1) is 30. The 3/8, 3/8, 2/8 weighting is part of the
	// game balance.
	spinTwentyFrom = 0.375
	spinThirtyFrom = 0.75
)

// SpinOutcomes lists every leap distance the spinner can produce.
var SpinOutcomes = []int{10, 20, 30}

// SpinFromUnit maps u in [0, 1) onto a leap distance.
func SpinFromUnit(u float64) int {
	switch {
	case u < spinTwentyFrom:
		return 10
	case u < spinThirtyFrom:
		return 20
	default:
		return 30
	}
}

// Roller draws dice and spins from a Source and logs every draw at debug level.
type Roller struct {
	mu     sync.Mutex
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// RollDice draws two independent uniform values in [1, 6].
func (r *Roller) RollDice() [2]int {
	r.mu.Lock()
	d := [2]int{r.src.IntN(DieSides) + 1, r.src.IntN(DieSides) + 1}
	r.mu.Unlock()
	r.logger.Debug("dice roll",
		zap.Ints("dice", d[:]),
		zap.Int("total", d[0]+d[1]),
	)
	return d
}

// Spin draws a leap distance of 10, 20 or 30.
func (r *Roller) Spin() int {
	r.mu.Lock()
	u := r.src.Float64()
	r.mu.Unlock()
	v := SpinFromUnit(u)
	r.logger.Debug("spin", zap.Float64("draw", u), zap.Int("leap", v))
	return v
}
