package fieldtest

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidInput = errors.New("invalid input")

// Input is one sand-cone worksheet. Rock correction is skipped when
// PreSieveRockCorrection is zero.
type Input struct {
	ConePreTest            float64  `json:"cone_pre_test"`
	ConePostTest           float64  `json:"cone_post_test"`
	SandInCone             *float64 `json:"sand_in_cone,omitempty"`
	Soil                   float64  `json:"soil"`
	SandDensity            *float64 `json:"sand_density,omitempty"`
	WetWeight              float64  `json:"wet_weight"`
	DryWeight              float64  `json:"dry_weight"`
	TarePan                float64  `json:"tare_pan"`
	LabMax                 float64  `json:"lab_max"`
	LeftOnSieveWeight      float64  `json:"left_on_sieve_weight"`
	PreSieveRockCorrection float64  `json:"pre_sieve_rock_correction"`
	SpecificGravity        *float64 `json:"specific_gravity,omitempty"`
}

type Result struct {
	SandUsed            float64 `json:"sand_used"`
	WetDensity          float64 `json:"wet_density"`
	MoistureContent     float64 `json:"moisture_content"`
	DryDensity          float64 `json:"dry_density"`
	Compaction          float64 `json:"compaction"`
	RockCorrected       bool    `json:"rock_corrected"`
	RockCorrection      float64 `json:"rock_correction,omitempty"`
	LabMaxCorrection    float64 `json:"lab_max_correction,omitempty"`
	CorrectedCompaction float64 `json:"corrected_compaction,omitempty"`
	Notes               string  `json:"notes"`
}

// Calculate runs the full worksheet. Unlike the formula types, it rejects
// inputs that would divide by zero.
func Calculate(in Input) (Result, error) {
	if in.LabMax <= 0 {
		return Result{}, fmt.Errorf("%w: lab max must be positive", ErrInvalidInput)
	}
	if in.DryWeight == in.TarePan {
		return Result{}, fmt.Errorf("%w: dry weight equals tare pan", ErrInvalidInput)
	}
	if in.PreSieveRockCorrection < 0 || in.LeftOnSieveWeight < 0 {
		return Result{}, fmt.Errorf("%w: negative sieve weight", ErrInvalidInput)
	}

	sandUsed := NewSandUsed(in.ConePreTest, in.ConePostTest, in.SandInCone)
	used := sandUsed.Calculate()
	if used <= 0 {
		return Result{}, fmt.Errorf("%w: sand used is %v", ErrInvalidInput, used)
	}

	wetDensity := NewWetDensity(in.Soil, used, in.SandDensity)
	moisture := NewMoistureContent(in.WetWeight, in.DryWeight, in.TarePan)
	dryDensity := NewDryDensity(Nested(wetDensity), Nested(moisture))
	compaction := NewCompaction(Nested(dryDensity), in.LabMax)

	res := Result{
		SandUsed:        used,
		WetDensity:      wetDensity.Calculate(),
		MoistureContent: moisture.Calculate(),
		DryDensity:      dryDensity.Calculate(),
		Compaction:      compaction.Calculate(),
		Notes:           "Sand-cone field density test.",
	}

	if in.PreSieveRockCorrection > 0 {
		rock := NewRockCorrection(in.LeftOnSieveWeight, in.PreSieveRockCorrection)
		labMax := NewLabMaxCorrection(Nested(rock), in.LabMax, in.SpecificGravity)
		corrected := labMax.Calculate()

		res.RockCorrected = true
		res.RockCorrection = rock.Calculate()
		res.LabMaxCorrection = corrected
		res.CorrectedCompaction = NewCompaction(Value[DryDensity](res.DryDensity), corrected).Calculate()
		res.Notes = "Sand-cone field density test with oversize rock correction."
	}

	if !res.finite() {
		return Result{}, fmt.Errorf("%w: result is not finite", ErrInvalidInput)
	}
	return res, nil
}

func (r Result) finite() bool {
	for _, v := range []float64{
		r.SandUsed, r.WetDensity, r.MoistureContent, r.DryDensity, r.Compaction,
		r.RockCorrection, r.LabMaxCorrection, r.CorrectedCompaction,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
