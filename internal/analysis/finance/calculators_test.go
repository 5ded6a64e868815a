package finance

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNAVPerShare(t *testing.T) {
	v, err := NAVPerShare(1_000_000, 400_000, 10_000)
	require.NoError(t, err)
	assert.InDelta(t, 60, v, 1e-9)

	_, err = NAVPerShare(1, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCapRateAndLTV(t *testing.T) {
	v, err := CapRate(80_000, 1_000_000)
	require.NoError(t, err)
	assert.InDelta(t, 8, v, 1e-9)

	v, err = LTV(750_000, 1_000_000)
	require.NoError(t, err)
	assert.InDelta(t, 75, v, 1e-9)

	_, err = CapRate(1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = LTV(-1, 100)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = LTV(math.NaN(), 100)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDCF(t *testing.T) {
	v, err := DCF([]float64{100, 100}, 0.1, 1000)
	require.NoError(t, err)
	want := 100/1.1 + 100/1.21 + 1000/1.21
	assert.InDelta(t, want, v, 1e-9)

	_, err = DCF(nil, 0.1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIRR(t *testing.T) {
	rate, err := IRR([]float64{-1000, 1100})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, rate, 1e-6)

	rate, err = IRR([]float64{-10000, 3000, 4200, 6800})
	require.NoError(t, err)
	assert.InDelta(t, 0, NPV(rate, []float64{-10000, 3000, 4200, 6800}), 1e-4)
	assert.InDelta(t, 0.1634, rate, 1e-3)

	_, err = IRR([]float64{100, 200})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = IRR([]float64{-100})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFFOAndAFFO(t *testing.T) {
	in := FFOInput{NetIncome: 500, Depreciation: 200, GainsOnSale: 50, RecurringCapex: 40, StraightLineRentAdjust: 10}

	ffo, err := FFO(in)
	require.NoError(t, err)
	assert.InDelta(t, 650, ffo, 1e-9)

	affo, err := AFFO(in)
	require.NoError(t, err)
	assert.InDelta(t, 600, affo, 1e-9)
}

func TestEBITDAre(t *testing.T) {
	v, err := EBITDAre(EBITDAreInput{
		NetIncome: 100, InterestExpense: 30, IncomeTaxes: 10, DepreciationAmortization: 60,
		LossesOnSale: -5, Impairments: 15, UnconsolidatedAdjustments: 2,
	})
	require.NoError(t, err)
	assert.InDelta(t, 212, v, 1e-9)
}

func TestPayoutAndOccupancy(t *testing.T) {
	v, err := PayoutRatio(90, 120)
	require.NoError(t, err)
	assert.InDelta(t, 75, v, 1e-9)

	v, err = OccupancyRate(92, 100)
	require.NoError(t, err)
	assert.InDelta(t, 92, v, 1e-9)

	_, err = PayoutRatio(1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = OccupancyRate(101, 100)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateByName(t *testing.T) {
	res, err := Calculate("cap-rate", json.RawMessage(`{"netOperatingIncome": 50000, "propertyValue": 1000000}`))
	require.NoError(t, err)
	assert.Equal(t, "cap-rate", res.Calculator)
	assert.Equal(t, UnitPercent, res.Unit)
	assert.InDelta(t, 5, res.Value, 1e-9)

	res, err = Calculate("irr", json.RawMessage(`{"cashFlows": [-1000, 1100]}`))
	require.NoError(t, err)
	assert.InDelta(t, 10, res.Value, 1e-4)

	_, err = Calculate("nope", nil)
	assert.ErrorIs(t, err, ErrUnknownCalculator)

	_, err = Calculate("ltv", json.RawMessage(`{"loanAmount": "lots"}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNamesCoversEveryCalculator(t *testing.T) {
	assert.Equal(t, []string{
		"affo", "cap-rate", "dcf", "ebitdare", "irr", "ltv", "nav", "occupancy-rate", "payout-ratio",
	}, Names())
}
