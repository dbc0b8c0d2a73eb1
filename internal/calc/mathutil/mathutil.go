package mathutil

import (
	"errors"
	"math"
)

// DefaultBase is used by PowerN when no base is given.
const DefaultBase uint64 = 10

// MaxPrecision is the largest n for which 10^n fits in a uint64.
const MaxPrecision uint = 19

var ErrPrecision = errors.New("rounding precision out of range")

// PowerN returns base raised to power. A zero base selects DefaultBase.
func PowerN(power uint, base uint64) uint64 {
	if base == 0 {
		base = DefaultBase
	}
	result := uint64(1)
	for i := uint(0); i < power; i++ {
		result *= base
	}
	return result
}

func Power10(power uint) uint64 {
	return PowerN(power, DefaultBase)
}

// Scale returns 10^n as a float64 scaling factor.
func Scale(n uint) float64 {
	if n > MaxPrecision {
		return math.Pow10(int(n))
	}
	return float64(Power10(n))
}

// Round rounds value to n decimal places, ties away from zero.
// NaN and infinities pass through unchanged.
func Round(value float64, n uint) float64 {
	power := Scale(n)
	return math.Round(value*power) / power
}

// RoundChecked is Round with the precision limited to MaxPrecision.
func RoundChecked(value float64, n uint) (float64, error) {
	if n > MaxPrecision {
		return 0, ErrPrecision
	}
	return Round(value, n), nil
}
