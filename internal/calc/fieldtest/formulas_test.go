package fieldtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type setup struct {
	labMax                 float64
	conePreTest            float64
	conePostTest           float64
	soil                   float64
	tarePan                float64
	wetWeight              float64
	dryWeight              float64
	preSieveRockCorrection float64
	leftOnSieveWeight      float64
}

func newSetup() setup {
	return setup{
		labMax:                 135.6,
		conePreTest:            14.65,
		conePostTest:           8.75,
		soil:                   4.65,
		tarePan:                1400,
		wetWeight:              1600,
		dryWeight:              1575,
		preSieveRockCorrection: 500,
		leftOnSieveWeight:      100,
	}
}

func TestSandUsedNew(t *testing.T) {
	some := NewSandUsed(10, 15, Float(20))
	assert.Equal(t, 10.0, some.ConePreTest())
	assert.Equal(t, 15.0, some.ConePostTest())
	assert.Equal(t, 20.0, some.SandInCone())

	none := NewSandUsed(10, 15, nil)
	assert.Equal(t, 10.0, none.ConePreTest())
	assert.Equal(t, 15.0, none.ConePostTest())
	assert.Equal(t, SandInCone, none.SandInCone())
}

func TestSandUsedCalculate(t *testing.T) {
	s := newSetup()

	assert.Equal(t, 2.31, NewSandUsed(s.conePreTest, s.conePostTest, Float(3.59)).Calculate())
	assert.Equal(t, 2.31, NewSandUsed(s.conePreTest, s.conePostTest, nil).Calculate())
}

func TestSandUsedOverrideIsCopied(t *testing.T) {
	override := 3.59
	s := NewSandUsed(14.65, 8.75, &override)
	override = 0

	assert.Equal(t, 3.59, s.SandInCone())
	assert.Equal(t, 2.31, s.Calculate())
}

func TestWetDensityNew(t *testing.T) {
	some := NewWetDensity(10, 15, Float(20))
	assert.Equal(t, 10.0, some.Soil())
	assert.Equal(t, 15.0, some.SandUsed())
	assert.Equal(t, 20.0, some.SandDensity())

	none := NewWetDensity(10, 15, nil)
	assert.Equal(t, 10.0, none.Soil())
	assert.Equal(t, 15.0, none.SandUsed())
	assert.Equal(t, SandDensity, none.SandDensity())
}

func TestWetDensityCalculate(t *testing.T) {
	s := newSetup()

	assert.Equal(t, 177.1429, NewWetDensity(s.soil, 2.31, Float(88)).Calculate())
	assert.Equal(t, 177.1429, NewWetDensity(s.soil, 2.31, nil).Calculate())
}

func TestWetDensityZeroSandUsed(t *testing.T) {
	assert.True(t, math.IsInf(NewWetDensity(4.65, 0, nil).Calculate(), 1))
	assert.True(t, math.IsNaN(NewWetDensity(0, 0, nil).Calculate()))
}

func TestMoistureContentNew(t *testing.T) {
	m := NewMoistureContent(10, 15, 20)
	assert.Equal(t, 10.0, m.WetWeight())
	assert.Equal(t, 15.0, m.DryWeight())
	assert.Equal(t, 20.0, m.TarePan())
}

func TestMoistureContentCalculate(t *testing.T) {
	s := newSetup()

	m := NewMoistureContent(s.wetWeight, s.dryWeight, s.tarePan)
	assert.Equal(t, 0.14285714, m.Calculate())
}

func TestDryDensityNew(t *testing.T) {
	s := newSetup()

	value := NewDryDensity(Value[WetDensity](10), Value[MoistureContent](15))
	assert.Equal(t, 10.0, value.WetDensity())
	assert.Equal(t, 15.0, value.MoistureContent())

	nested := NewDryDensity(
		Nested(NewWetDensity(s.soil, 2.31, nil)),
		Nested(NewMoistureContent(s.wetWeight, s.dryWeight, s.tarePan)),
	)
	assert.Equal(t, 177.1429, nested.WetDensity())
	assert.Equal(t, 0.14285714, nested.MoistureContent())
}

func TestDryDensityCalculate(t *testing.T) {
	s := newSetup()

	value := NewDryDensity(Value[WetDensity](177.1429), Value[MoistureContent](0.1428571))
	assert.Equal(t, 155.0, value.Calculate())

	nested := NewDryDensity(
		Nested(NewWetDensity(s.soil, 2.31, nil)),
		Nested(NewMoistureContent(s.wetWeight, s.dryWeight, s.tarePan)),
	)
	assert.Equal(t, 155.0, nested.Calculate())
}

func TestCompactionNew(t *testing.T) {
	value := NewCompaction(Value[DryDensity](10), 15)
	assert.Equal(t, 10.0, value.DryDensity())
	assert.Equal(t, 15.0, value.LabMax())

	dry := NewDryDensity(Value[WetDensity](177.1429), Value[MoistureContent](0.1428571))
	nested := NewCompaction(Nested(dry), 15)
	assert.Equal(t, 155.0, nested.DryDensity())
	assert.Equal(t, 15.0, nested.LabMax())
}

func TestCompactionCalculate(t *testing.T) {
	s := newSetup()

	value := NewCompaction(Value[DryDensity](155), s.labMax)
	assert.Equal(t, 114.3, value.Calculate())

	dry := NewDryDensity(Value[WetDensity](177.1429), Value[MoistureContent](0.1428571))
	nested := NewCompaction(Nested(dry), s.labMax)
	assert.Equal(t, 114.3, nested.Calculate())
}

func TestCompactionZeroLabMax(t *testing.T) {
	assert.True(t, math.IsInf(NewCompaction(Value[DryDensity](155), 0).Calculate(), 1))
}

func TestRockCorrectionNew(t *testing.T) {
	r := NewRockCorrection(10, 15)
	assert.Equal(t, 10.0, r.LeftOnSieveWeight())
	assert.Equal(t, 15.0, r.PreSieveRockCorrection())
}

func TestRockCorrectionCalculate(t *testing.T) {
	s := newSetup()

	r := NewRockCorrection(s.leftOnSieveWeight, s.preSieveRockCorrection)
	assert.Equal(t, 0.2, r.Calculate())
}

func TestLabMaxCorrectionNew(t *testing.T) {
	s := newSetup()

	value := NewLabMaxCorrection(Value[RockCorrection](10), 15, Float(20))
	assert.Equal(t, 10.0, value.RockCorrection())
	assert.Equal(t, 15.0, value.LabMax())
	assert.Equal(t, 20.0, value.SpecificGravity())

	rock := NewRockCorrection(s.leftOnSieveWeight, s.preSieveRockCorrection)
	nested := NewLabMaxCorrection(Nested(rock), 15, Float(20))
	assert.Equal(t, 0.2, nested.RockCorrection())
	assert.Equal(t, 15.0, nested.LabMax())
	assert.Equal(t, 20.0, nested.SpecificGravity())

	none := NewLabMaxCorrection(Value[RockCorrection](10), 15, nil)
	assert.Equal(t, 2.7, none.SpecificGravity())
}

func TestLabMaxCorrectionCalculate(t *testing.T) {
	s := newSetup()

	value := NewLabMaxCorrection(Value[RockCorrection](0.2), s.labMax, nil)
	assert.Equal(t, 139.7, value.Calculate())

	rock := NewRockCorrection(s.leftOnSieveWeight, s.preSieveRockCorrection)
	nested := NewLabMaxCorrection(Nested(rock), s.labMax, nil)
	assert.Equal(t, 139.7, nested.Calculate())
}

func TestCalculateIsIdempotent(t *testing.T) {
	s := newSetup()

	formulas := map[string]Formula{
		"sand used":        NewSandUsed(s.conePreTest, s.conePostTest, nil),
		"wet density":      NewWetDensity(s.soil, 2.31, nil),
		"moisture content": NewMoistureContent(s.wetWeight, s.dryWeight, s.tarePan),
		"dry density": NewDryDensity(
			Nested(NewWetDensity(s.soil, 2.31, nil)),
			Nested(NewMoistureContent(s.wetWeight, s.dryWeight, s.tarePan)),
		),
		"compaction":      NewCompaction(Value[DryDensity](155), s.labMax),
		"rock correction": NewRockCorrection(s.leftOnSieveWeight, s.preSieveRockCorrection),
		"lab max correction": NewLabMaxCorrection(
			Nested(NewRockCorrection(s.leftOnSieveWeight, s.preSieveRockCorrection)), s.labMax, nil,
		),
	}

	for name, f := range formulas {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, f.Calculate(), f.Calculate())
		})
	}
}

func TestLiteralMatchesNested(t *testing.T) {
	s := newSetup()

	wet := NewWetDensity(s.soil, 2.31, nil)
	moisture := NewMoistureContent(s.wetWeight, s.dryWeight, s.tarePan)
	assert.Equal(t,
		NewDryDensity(Nested(wet), Nested(moisture)).Calculate(),
		NewDryDensity(Value[WetDensity](wet.Calculate()), Value[MoistureContent](moisture.Calculate())).Calculate(),
	)

	dry := NewDryDensity(Nested(wet), Nested(moisture))
	assert.Equal(t,
		NewCompaction(Nested(dry), s.labMax).Calculate(),
		NewCompaction(Value[DryDensity](dry.Calculate()), s.labMax).Calculate(),
	)

	rock := NewRockCorrection(s.leftOnSieveWeight, s.preSieveRockCorrection)
	assert.Equal(t,
		NewLabMaxCorrection(Nested(rock), s.labMax, nil).Calculate(),
		NewLabMaxCorrection(Value[RockCorrection](rock.Calculate()), s.labMax, nil).Calculate(),
	)
}

func TestChoice(t *testing.T) {
	literal := Value[RockCorrection](0.3)
	assert.False(t, literal.IsNested())
	assert.Equal(t, 0.3, literal.Resolve())
	_, ok := literal.Formula()
	assert.False(t, ok)

	rock := NewRockCorrection(100, 500)
	nested := Nested(rock)
	assert.True(t, nested.IsNested())
	assert.Equal(t, 0.2, nested.Resolve())
	f, ok := nested.Formula()
	assert.True(t, ok)
	assert.Equal(t, rock, f)
}
