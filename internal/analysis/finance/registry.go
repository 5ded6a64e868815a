package finance

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCalculator is returned for a calculator name that is not registered.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Unit describes how a calculator result should be displayed.
type Unit string

const (
	UnitCurrency Unit = "currency"
	UnitPercent  Unit = "percent"
)

// Result is the output of one calculator run.
type Result struct {
	Calculator string  `json:"calculator"`
	Value      float64 `json:"value"`
	Unit       Unit    `json:"unit"`
}

type calculator struct {
	unit Unit
	run  func(raw json.RawMessage) (float64, error)
}

var calculators = map[string]calculator{
	"nav": {unit: UnitCurrency, run: func(raw json.RawMessage) (float64, error) {
		var in struct {
			TotalAssets       float64 `json:"totalAssets"`
			TotalLiabilities  float64 `json:"totalLiabilities"`
			SharesOutstanding float64 `json:"sharesOutstanding"`
		}
		if err := decode(raw, &in); err != nil {
			return 0, err
		}
		return NAVPerShare(in.TotalAssets, in.TotalLiabilities, in.SharesOutstanding)
	}},
	"irr": {unit: UnitPercent, run: func(raw json.RawMessage) (float64, error) {
		var in struct {
			CashFlows []float64 `json:"cashFlows"`
		}
		if err := decode(raw, &in); err != nil {
			return 0, err
		}
		rate, err := IRR(in.CashFlows)
		return rate * 100, err
	}},
	"cap-rate": {unit: UnitPercent, run: func(raw json.RawMessage) (float64, error) {
		var in struct {
			NetOperatingIncome float64 `json:"netOperatingIncome"`
			PropertyValue      float64 `json:"propertyValue"`
		}
		if err := decode(raw, &in); err != nil {
			return 0, err
		}
		return CapRate(in.NetOperatingIncome, in.PropertyValue)
	}},
	"ltv": {unit: UnitPercent, run: func(raw json.RawMessage) (float64, error) {
		var in struct {
			LoanAmount    float64 `json:"loanAmount"`
			PropertyValue float64 `json:"propertyValue"`
		}
		if err := decode(raw, &in); err != nil {
			return 0, err
		}
		return LTV(in.LoanAmount, in.PropertyValue)
	}},
	"dcf": {unit: UnitCurrency, run: func(raw json.RawMessage) (float64, error) {
		var in struct {
			CashFlows     []float64 `json:"cashFlows"`
			DiscountRate  float64   `json:"discountRate"`
			TerminalValue float64   `json:"terminalValue"`
		}
		if err := decode(raw, &in); err != nil {
			return 0, err
		}
		return DCF(in.CashFlows, in.DiscountRate/100, in.TerminalValue)
	}},
	"affo": {unit: UnitCurrency, run: func(raw json.RawMessage) (float64, error) {
		var in FFOInput
		if err := decode(raw, &in); err != nil {
			return 0, err
		}
		return AFFO(in)
	}},
	"ebitdare": {unit: UnitCurrency, run: func(raw json.RawMessage) (float64, error) {
		var in EBITDAreInput
		if err := decode(raw, &in); err != nil {
			return 0, err
		}
		return EBITDAre(in)
	}},
	"payout-ratio": {unit: UnitPercent, run: func(raw json.RawMessage) (float64, error) {
		var in struct {
			Dividends float64 `json:"dividends"`
			FFO       float64 `json:"ffo"`
		}
		if err := decode(raw, &in); err != nil {
			return 0, err
		}
		return PayoutRatio(in.Dividends, in.FFO)
	}},
	"occupancy-rate": {unit: UnitPercent, run: func(raw json.RawMessage) (float64, error) {
		var in struct {
			Occupied float64 `json:"occupied"`
			Total    float64 `json:"total"`
		}
		if err := decode(raw, &in); err != nil {
			return 0, err
		}
		return OccupancyRate(in.Occupied, in.Total)
	}},
}

func decode(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return invalid("missing inputs")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return invalid("malformed inputs: %v", err)
	}
	return nil
}

// Names lists the registered calculators in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(calculators))
	for name := range calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calculate runs the named calculator against JSON-encoded inputs.
func Calculate(name string, raw json.RawMessage) (Result, error) {
	calc, ok := calculators[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownCalculator, name)
	}
	value, err := calc.run(raw)
	if err != nil {
		return Result{}, err
	}
	return Result{Calculator: name, Value: value, Unit: calc.unit}, nil
}
