package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

var scenarioValidate = validator.New(validator.WithRequiredStructEnabled())

// ScenarioFile is the on-disk form of one patient queue and its resources.
type ScenarioFile struct {
	Resources *ResourcesEntry `yaml:"resources" validate:"required"`
	Patients  []PatientEntry  `yaml:"patients" validate:"unique=ID,dive"`
}

// ResourcesEntry holds the resource section. Optional fields fall back to the
// core defaults when omitted.
type ResourcesEntry struct {
	UnitCount          int      `yaml:"unitCount"`
	MaxTotalHours      int      `yaml:"maxTotalHours"`
	InitialTemperature *float64 `yaml:"initialTemperature,omitempty"`
	CoolingRate        *float64 `yaml:"coolingRate,omitempty"`
	IterationCount     *int     `yaml:"iterationCount,omitempty"`
	// SearchTimeBudget is a duration string such as "2s" or "500ms".
	SearchTimeBudget string  `yaml:"searchTimeBudget,omitempty"`
	Seed             *uint64 `yaml:"seed,omitempty"`
}

// PatientEntry is one patient in a scenario file. Severity and priority outside
// [0,1] are clamped when the patient is built.
type PatientEntry struct {
	ID                      string  `yaml:"id" validate:"required"`
	Name                    string  `yaml:"name" validate:"required"`
	Severity                float64 `yaml:"severity"`
	NeedsVentilator         bool    `yaml:"needsVentilator"`
	ExpectedDurationHours   int     `yaml:"expectedDurationHours" validate:"gte=0"`
	Age                     int     `yaml:"age" validate:"gte=0"`
	HasAlternativeTreatment bool    `yaml:"hasAlternativeTreatment"`
	Priority                float64 `yaml:"priority"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) ([]core.PatientCase, core.ResourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.ResourceConfig{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	patients, cfg, err := ParseScenario(data)
	if err != nil {
		return nil, core.ResourceConfig{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return patients, cfg, nil
}

// ParseScenario decodes a scenario document, validates it and returns the
// patient queue in file order together with the resolved resource config.
// Unknown keys are rejected.
func ParseScenario(data []byte) ([]core.PatientCase, core.ResourceConfig, error) {
	var file ScenarioFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, core.ResourceConfig{}, errors.New("empty scenario document")
		}
		return nil, core.ResourceConfig{}, fmt.Errorf("decoding scenario: %w", err)
	}

	if err := scenarioValidate.Struct(&file); err != nil {
		return nil, core.ResourceConfig{}, fmt.Errorf("invalid scenario: %w", err)
	}

	cfg, err := file.Resources.ToResourceConfig()
	if err != nil {
		return nil, core.ResourceConfig{}, err
	}

	patients := make([]core.PatientCase, 0, len(file.Patients))
	for _, p := range file.Patients {
		patients = append(patients, p.ToPatientCase())
	}
	return patients, cfg, nil
}

// ToResourceConfig merges the entry over the core defaults and validates the result.
func (r *ResourcesEntry) ToResourceConfig() (core.ResourceConfig, error) {
	cfg := core.ResourceConfig{
		UnitCount:          r.UnitCount,
		MaxTotalHours:      r.MaxTotalHours,
		InitialTemperature: ptr.Deref(r.InitialTemperature, core.DefaultInitialTemperature),
		CoolingRate:        ptr.Deref(r.CoolingRate, core.DefaultCoolingRate),
		IterationCount:     ptr.Deref(r.IterationCount, core.DefaultIterationCount),
		Seed:               r.Seed,
	}
	if r.SearchTimeBudget != "" {
		budget, err := time.ParseDuration(r.SearchTimeBudget)
		if err != nil {
			return core.ResourceConfig{}, fmt.Errorf("invalid searchTimeBudget %q: %w", r.SearchTimeBudget, err)
		}
		cfg.SearchTimeBudget = budget
	}
	if err := cfg.Validate(); err != nil {
		return core.ResourceConfig{}, err
	}
	return cfg, nil
}

// ToPatientCase builds the immutable patient record.
func (p PatientEntry) ToPatientCase() core.PatientCase {
	return core.NewPatientCase(core.PatientSpec{
		ID:                      p.ID,
		Name:                    p.Name,
		SeverityScore:           p.Severity,
		NeedsResource:           p.NeedsVentilator,
		ExpectedDurationHours:   p.ExpectedDurationHours,
		Age:                     p.Age,
		HasAlternativeTreatment: p.HasAlternativeTreatment,
		PriorityFactor:          p.Priority,
	})
}
