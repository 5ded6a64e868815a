// Package finance holds the closed-form real-estate and REIT metrics behind the site's calculators.
package finance

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a metric is undefined for the supplied numbers.
var ErrInvalidInput = errors.New("invalid calculator input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// NAVPerShare is (total assets - total liabilities) / shares outstanding.
func NAVPerShare(totalAssets, totalLiabilities, sharesOutstanding float64) (float64, error) {
	if !finite(totalAssets, totalLiabilities, sharesOutstanding) {
		return 0, invalid("non-finite value")
	}
	if sharesOutstanding <= 0 {
		return 0, invalid("shares outstanding must be positive")
	}
	return (totalAssets - totalLiabilities) / sharesOutstanding, nil
}

// CapRate is net operating income over property value, in percent.
func CapRate(netOperatingIncome, propertyValue float64) (float64, error) {
	if !finite(netOperatingIncome, propertyValue) {
		return 0, invalid("non-finite value")
	}
	if propertyValue <= 0 {
		return 0, invalid("property value must be positive")
	}
	return netOperatingIncome / propertyValue * 100, nil
}

// LTV is loan amount over appraised value, in percent.
func LTV(loanAmount, propertyValue float64) (float64, error) {
	if !finite(loanAmount, propertyValue) {
		return 0, invalid("non-finite value")
	}
	if propertyValue <= 0 {
		return 0, invalid("property value must be positive")
	}
	if loanAmount < 0 {
		return 0, invalid("loan amount cannot be negative")
	}
	return loanAmount / propertyValue * 100, nil
}

// DCF discounts yearly cash flows (first entry at t=1) plus a terminal value received with the last one.
// The discount rate is a fraction, 0.08 for 8%.
func DCF(cashFlows []float64, discountRate, terminalValue float64) (float64, error) {
	if len(cashFlows) == 0 {
		return 0, invalid("at least one cash flow is required")
	}
	if !finite(append([]float64{discountRate, terminalValue}, cashFlows...)...) {
		return 0, invalid("non-finite value")
	}
	if discountRate <= -1 {
		return 0, invalid("discount rate must be greater than -100%%")
	}

	var pv float64
	for i, cf := range cashFlows {
		pv += cf / math.Pow(1+discountRate, float64(i+1))
	}
	pv += terminalValue / math.Pow(1+discountRate, float64(len(cashFlows)))
	return pv, nil
}

// NPV discounts cash flows where the first entry is at t=0.
func NPV(rate float64, cashFlows []float64) float64 {
	var npv float64
	for t, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

func npvDerivative(rate float64, cashFlows []float64) float64 {
	var d float64
	for t, cf := range cashFlows {
		if t == 0 {
			continue
		}
		d -= float64(t) * cf / math.Pow(1+rate, float64(t+1))
	}
	return d
}

const (
	irrTolerance     = 1e-9
	irrMaxIterations = 200
)

// IRR finds the rate (as a fraction) at which the NPV of cash flows is zero.
// cashFlows[0] is the initial investment, normally negative.
func IRR(cashFlows []float64) (float64, error) {
	if len(cashFlows) < 2 {
		return 0, invalid("at least two cash flows are required")
	}
	if !finite(cashFlows...) {
		return 0, invalid("non-finite value")
	}

	var hasPositive, hasNegative bool
	for _, cf := range cashFlows {
		if cf > 0 {
			hasPositive = true
		}
		if cf < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0, invalid("cash flows need at least one sign change")
	}

	rate := 0.1
	for i := 0; i < irrMaxIterations; i++ {
		npv := NPV(rate, cashFlows)
		if math.Abs(npv) < irrTolerance {
			return rate, nil
		}
		d := npvDerivative(rate, cashFlows)
		if d == 0 {
			break
		}
		next := rate - npv/d
		if next <= -1 || !finite(next) {
			break
		}
		if math.Abs(next-rate) < irrTolerance {
			return next, nil
		}
		rate = next
	}

	return irrBisect(cashFlows)
}

func irrBisect(cashFlows []float64) (float64, error) {
	lo, hi := -0.9999, 10.0
	fLo := NPV(lo, cashFlows)
	fHi := NPV(hi, cashFlows)
	if fLo*fHi > 0 {
		return 0, invalid("irr does not converge for these cash flows")
	}

	for i := 0; i < 1000; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(mid, cashFlows)
		if math.Abs(fMid) < irrTolerance || (hi-lo)/2 < irrTolerance {
			return mid, nil
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return (lo + hi) / 2, nil
}

// FFOInput holds the income-statement lines needed for FFO and AFFO.
type FFOInput struct {
	NetIncome              float64 `json:"netIncome"`
	Depreciation           float64 `json:"depreciation"`
	GainsOnSale            float64 `json:"gainsOnSale"`
	RecurringCapex         float64 `json:"recurringCapex"`
	StraightLineRentAdjust float64 `json:"straightLineRentAdjustment"`
}

// FFO is net income + real-estate depreciation - gains on property sales.
func FFO(in FFOInput) (float64, error) {
	if !finite(in.NetIncome, in.Depreciation, in.GainsOnSale) {
		return 0, invalid("non-finite value")
	}
	return in.NetIncome + in.Depreciation - in.GainsOnSale, nil
}

// AFFO is FFO - recurring capital expenditure - straight-line rent adjustment.
func AFFO(in FFOInput) (float64, error) {
	ffo, err := FFO(in)
	if err != nil {
		return 0, err
	}
	if !finite(in.RecurringCapex, in.StraightLineRentAdjust) {
		return 0, invalid("non-finite value")
	}
	return ffo - in.RecurringCapex - in.StraightLineRentAdjust, nil
}

// EBITDAreInput follows the Nareit definition of EBITDA for real estate.
type EBITDAreInput struct {
	NetIncome                 float64 `json:"netIncome"`
	InterestExpense           float64 `json:"interestExpense"`
	IncomeTaxes               float64 `json:"incomeTaxes"`
	DepreciationAmortization  float64 `json:"depreciationAmortization"`
	LossesOnSale              float64 `json:"lossesOnSale"`
	Impairments               float64 `json:"impairments"`
	UnconsolidatedAdjustments float64 `json:"unconsolidatedAdjustments"`
}

// EBITDAre adds back interest, taxes, D&A, losses (negative for gains) on sale, impairments and JV adjustments.
func EBITDAre(in EBITDAreInput) (float64, error) {
	if !finite(in.NetIncome, in.InterestExpense, in.IncomeTaxes, in.DepreciationAmortization,
		in.LossesOnSale, in.Impairments, in.UnconsolidatedAdjustments) {
		return 0, invalid("non-finite value")
	}
	return in.NetIncome + in.InterestExpense + in.IncomeTaxes + in.DepreciationAmortization +
		in.LossesOnSale + in.Impairments + in.UnconsolidatedAdjustments, nil
}

// PayoutRatio is dividends paid over FFO, in percent.
func PayoutRatio(dividends, ffo float64) (float64, error) {
	if !finite(dividends, ffo) {
		return 0, invalid("non-finite value")
	}
	if ffo <= 0 {
		return 0, invalid("ffo must be positive")
	}
	return dividends / ffo * 100, nil
}

// OccupancyRate is occupied units (or area) over total units, in percent.
func OccupancyRate(occupied, total float64) (float64, error) {
	if !finite(occupied, total) {
		return 0, invalid("non-finite value")
	}
	if total <= 0 {
		return 0, invalid("total must be positive")
	}
	if occupied < 0 || occupied > total {
		return 0, invalid("occupied must be between 0 and total")
	}
	return occupied / total * 100, nil
}
