// Package billing implements the invoice arithmetic used when creating
// invoices and purchase bills: per-line taxable value, tax amount and line
// total under inclusive/exclusive tax regimes, and document-level
// aggregation with adjustments.
//
// All functions are pure and free of I/O. Amounts are float64 throughout;
// rounding to two decimals happens only at presentation time, never between
// intermediate steps.
package billing

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLineItem is returned by ValidateLineItem for inputs that must
// never reach ComputeLine.
var ErrInvalidLineItem = errors.New("invalid line item")

// TaxMode states whether a unit price already contains tax.
type TaxMode string

const (
	// TaxInclusive means the supplied unit price already contains tax.
	TaxInclusive TaxMode = "inclusive"
	// TaxExclusive means tax is added on top of the unit price.
	TaxExclusive TaxMode = "exclusive"
)

// Valid reports whether m is a known tax mode.
func (m TaxMode) Valid() bool {
	return m == TaxInclusive || m == TaxExclusive
}

// LineItem is the input to a single line computation. It is immutable per
// calculation; invoice edits supply a fresh LineItem.
type LineItem struct {
	UnitPrice       float64
	Quantity        int
	DiscountPercent float64
	TaxRatePercent  float64
}

// LineAmounts is the result of computing one line.
type LineAmounts struct {
	TaxableValue float64
	TaxAmount    float64
	LineTotal    float64
}

// Adjustments are document-level additive terms applied once per invoice,
// not per line. The sign convention is business policy: logistics and other
// tax add to the grand total, marketplace fee and refund subtract from it.
type Adjustments struct {
	LogisticsFee   float64
	OtherTax       float64
	MarketplaceFee float64
	RefundAmount   float64
}

// Totals is the document-level aggregate over all lines.
type Totals struct {
	SubTotal   float64
	TaxTotal   float64
	GrandTotal float64
}

// ValidateLineItem rejects inputs the calculator is allowed to assume away.
// Callers must validate before calling ComputeLine or ComputeTotals.
func ValidateLineItem(item LineItem) error {
	if item.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be >= 1, got %d", ErrInvalidLineItem, item.Quantity)
	}
	if item.UnitPrice < 0 {
		return fmt.Errorf("%w: unit price must be >= 0, got %g", ErrInvalidLineItem, item.UnitPrice)
	}
	if item.DiscountPercent < 0 || item.DiscountPercent > 100 {
		return fmt.Errorf("%w: discount percent must be in [0,100], got %g", ErrInvalidLineItem, item.DiscountPercent)
	}
	if item.TaxRatePercent < 0 {
		return fmt.Errorf("%w: tax rate percent must be >= 0, got %g", ErrInvalidLineItem, item.TaxRatePercent)
	}
	return nil
}

// ComputeLine computes taxable value, tax amount and line total for one
// validated line item under the given tax mode.
//
// Exclusive mode taxes the discounted value on top; inclusive mode carves
// the tax out of the gross value, leaving the line total unchanged.
func ComputeLine(item LineItem, mode TaxMode) LineAmounts {
	priceAfterDiscount := item.UnitPrice * (1 - item.DiscountPercent/100)
	gross := priceAfterDiscount * float64(item.Quantity)

	if mode == TaxInclusive {
		taxable := gross / (1 + item.TaxRatePercent/100)
		return LineAmounts{
			TaxableValue: taxable,
			TaxAmount:    gross - taxable,
			LineTotal:    gross,
		}
	}

	tax := gross * (item.TaxRatePercent / 100)
	return LineAmounts{
		TaxableValue: gross,
		TaxAmount:    tax,
		LineTotal:    gross + tax,
	}
}

// ComputeTotals aggregates all lines and applies the document-level
// adjustments with the fixed sign convention.
func ComputeTotals(items []LineItem, mode TaxMode, adj Adjustments) Totals {
	var t Totals
	for _, item := range items {
		amounts := ComputeLine(item, mode)
		t.SubTotal += amounts.TaxableValue
		t.TaxTotal += amounts.TaxAmount
	}
	t.GrandTotal = t.SubTotal + t.TaxTotal + adj.LogisticsFee + adj.OtherTax - adj.MarketplaceFee - adj.RefundAmount
	return t
}

// Round2 rounds a monetary amount to two decimals for presentation. It must
// not be applied between intermediate steps.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
