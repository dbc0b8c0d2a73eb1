package fieldtest

// Default lab constants, used when a formula is built without an override.
const (
	SandDensity     = 88.0 // pcf
	SandInCone      = 3.59 // lb
	SpecificGravity = 2.7
)

// WaterUnitWeight is the unit weight of water in pcf.
const WaterUnitWeight = 62.4

// Calibration holds lab-specific values for the overridable constants.
type Calibration struct {
	SandDensity     float64 `json:"sand_density"`
	SandInCone      float64 `json:"sand_in_cone"`
	SpecificGravity float64 `json:"specific_gravity"`
}

func DefaultCalibration() Calibration {
	return Calibration{
		SandDensity:     SandDensity,
		SandInCone:      SandInCone,
		SpecificGravity: SpecificGravity,
	}
}

// Apply fills every override the input leaves unset with the calibrated
// value. Non-positive calibration values are ignored.
func (c Calibration) Apply(in Input) Input {
	if in.SandInCone == nil && c.SandInCone > 0 {
		in.SandInCone = Float(c.SandInCone)
	}
	if in.SandDensity == nil && c.SandDensity > 0 {
		in.SandDensity = Float(c.SandDensity)
	}
	if in.SpecificGravity == nil && c.SpecificGravity > 0 {
		in.SpecificGravity = Float(c.SpecificGravity)
	}
	return in
}

func (c Calibration) Calculate(in Input) (Result, error) {
	return Calculate(c.Apply(in))
}

// Float returns a pointer to v, for the optional formula arguments.
func Float(v float64) *float64 {
	return &v
}

// clone keeps formulas immutable when callers reuse an override pointer.
func clone(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return Float(*p)
}
