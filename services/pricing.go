package services

import "math/rand"

// Pricing assigns the estimated cost of a request at creation time. The
// lifecycle service never computes prices itself, it only records what the
// estimator returns.
type Pricing interface {
	Estimate(category string) float64
}

// RandomEstimator draws a flat uniform estimate between 50 and 500 regardless
// of category. It exists for demo deployments without a pricing backend.
type RandomEstimator struct{}

// NewRandomEstimator creates a RandomEstimator
func NewRandomEstimator() *RandomEstimator {
	return &RandomEstimator{}
}

// Estimate returns a whole-dollar amount in [50, 500]
func (e *RandomEstimator) Estimate(category string) float64 {
	return float64(rand.Intn(451) + 50)
}

// FlatRateEstimator prices by category from a fixed table
type FlatRateEstimator struct {
	Rates   map[string]float64
	Default float64
}

// NewFlatRateEstimator creates a flat-rate estimator with baseline rates for
// the built-in categories.
func NewFlatRateEstimator() *FlatRateEstimator {
	return &FlatRateEstimator{
		Rates: map[string]float64{
			"Plumbing":         150,
			"Electrical":       180,
			"IT Support":       120,
			"HVAC":             250,
			"Appliance Repair": 140,
			"Landscaping":      100,
		},
		Default: 100,
	}
}

// Estimate returns the table rate for the category, or the default
func (e *FlatRateEstimator) Estimate(category string) float64 {
	if rate, ok := e.Rates[category]; ok {
		return rate
	}
	return e.Default
}
