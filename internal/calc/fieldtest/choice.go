package fieldtest

// Formula is implemented by every field-test calculation.
type Formula interface {
	Calculate() float64
}

// Choice is an input that is either a literal value or another formula
// whose result is computed on every Resolve.
type Choice[F Formula] struct {
	value   float64
	formula F
	nested  bool
}

type (
	SandUsedChoice        = Choice[SandUsed]
	WetDensityChoice      = Choice[WetDensity]
	MoistureContentChoice = Choice[MoistureContent]
	DryDensityChoice      = Choice[DryDensity]
	RockCorrectionChoice  = Choice[RockCorrection]
)

// Value wraps an already known result.
func Value[F Formula](v float64) Choice[F] {
	return Choice[F]{value: v}
}

// Nested defers to f.Calculate.
func Nested[F Formula](f F) Choice[F] {
	return Choice[F]{formula: f, nested: true}
}

func (c Choice[F]) Resolve() float64 {
	if c.nested {
		return c.formula.Calculate()
	}
	return c.value
}

func (c Choice[F]) IsNested() bool {
	return c.nested
}

// Formula returns the nested formula, if there is one.
func (c Choice[F]) Formula() (F, bool) {
	return c.formula, c.nested
}
