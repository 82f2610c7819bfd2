package domain

import (
	"fmt"
	"math"
)

// FeeTable holds the franchise-and-rate business rule.
//
// Pricing formula:
//   - the first OneWayFranchiseKm of the trip (60 km round trip by default)
//     are included in the base price
//   - every round-trip kilometer beyond the franchise is billed at RatePerKm
type FeeTable struct {
	OneWayFranchiseKm float64
	RatePerKm         float64
}

// DefaultFeeTable returns the fixed production rule: 30 km one-way franchise,
// R$ 1.60 per excess kilometer.
func DefaultFeeTable() FeeTable {
	return FeeTable{OneWayFranchiseKm: 30, RatePerKm: 1.60}
}

// RoundTripFranchiseKm is twice the one-way franchise.
func (t FeeTable) RoundTripFranchiseKm() float64 {
	return 2 * t.OneWayFranchiseKm
}

// FeeBreakdown itemizes one surcharge computation.
type FeeBreakdown struct {
	OneWayFranchiseKm    float64
	RoundTripFranchiseKm float64
	ExcessKm             float64
	RatePerKm            float64
	Amount               float64
}

// Calculate applies the fee rule to a one-way distance in kilometers.
// Negative or non-finite input is a contract violation.
func (t FeeTable) Calculate(oneWayKm float64) (FeeBreakdown, error) {
	if oneWayKm < 0 || math.IsNaN(oneWayKm) || math.IsInf(oneWayKm, 0) {
		return FeeBreakdown{}, fmt.Errorf("fee for %v km: %w", oneWayKm, ErrInvalidDistance)
	}

	roundTripKm := 2 * oneWayKm
	excessKm := roundTripKm - t.RoundTripFranchiseKm()
	if excessKm < 0 {
		excessKm = 0
	}

	return FeeBreakdown{
		OneWayFranchiseKm:    t.OneWayFranchiseKm,
		RoundTripFranchiseKm: t.RoundTripFranchiseKm(),
		ExcessKm:             excessKm,
		RatePerKm:            t.RatePerKm,
		Amount:               excessKm * t.RatePerKm,
	}, nil
}
