package core

import (
	"time"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Search parameter defaults.
const (
	DefaultInitialTemperature = 1.0
	DefaultCoolingRate        = 0.95
	DefaultIterationCount     = 1000
)

// ResourceConfig describes the scarce resource and the annealing search parameters.
// It is passed by value and never modified by an optimization call.
type ResourceConfig struct {
	// UnitCount is the number of ventilators available.
	UnitCount int
	// MaxTotalHours is the aggregate ventilator-hour budget.
	MaxTotalHours int

	// InitialTemperature is the annealing start temperature.
	InitialTemperature float64
	// CoolingRate is the geometric cooling factor, in (0,1).
	CoolingRate float64
	// IterationCount is the number of annealing steps.
	IterationCount int

	// SearchTimeBudget bounds the wall-clock time of the annealing phase. Zero means unbounded.
	SearchTimeBudget time.Duration
	// Seed fixes the annealing random stream. Nil draws a fresh stream per call.
	Seed *uint64
}

// DefaultResourceConfig returns a config with the given capacity and default search parameters.
func DefaultResourceConfig(unitCount, maxTotalHours int) ResourceConfig {
	return ResourceConfig{
		UnitCount:          unitCount,
		MaxTotalHours:      maxTotalHours,
		InitialTemperature: DefaultInitialTemperature,
		CoolingRate:        DefaultCoolingRate,
		IterationCount:     DefaultIterationCount,
	}
}

// Validate checks for illegal configuration values. Zero capacity is legal.
func (c ResourceConfig) Validate() error {
	return c.validate(field.NewPath("resources")).ToAggregate()
}

func (c ResourceConfig) validate(path *field.Path) field.ErrorList {
	var errs field.ErrorList
	if c.UnitCount < 0 {
		errs = append(errs, field.Invalid(path.Child("unitCount"), c.UnitCount, "must be >= 0"))
	}
	if c.MaxTotalHours < 0 {
		errs = append(errs, field.Invalid(path.Child("maxTotalHours"), c.MaxTotalHours, "must be >= 0"))
	}
	if c.InitialTemperature < 0 {
		errs = append(errs, field.Invalid(path.Child("initialTemperature"), c.InitialTemperature, "must be >= 0"))
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		errs = append(errs, field.Invalid(path.Child("coolingRate"), c.CoolingRate, "must be in (0,1)"))
	}
	if c.IterationCount < 0 {
		errs = append(errs, field.Invalid(path.Child("iterationCount"), c.IterationCount, "must be >= 0"))
	}
	if c.SearchTimeBudget < 0 {
		errs = append(errs, field.Invalid(path.Child("searchTimeBudget"), c.SearchTimeBudget.String(), "must be >= 0"))
	}
	return errs
}
