package fieldtest

import "Billios/internal/calc/mathutil"

// SandUsed is the weight of sand that filled the test hole.
type SandUsed struct {
	conePreTest  float64
	conePostTest float64
	sandInCone   *float64
}

// NewSandUsed builds a SandUsed. A nil sandInCone falls back to SandInCone.
func NewSandUsed(conePreTest, conePostTest float64, sandInCone *float64) SandUsed {
	return SandUsed{conePreTest: conePreTest, conePostTest: conePostTest, sandInCone: clone(sandInCone)}
}

func (s SandUsed) Calculate() float64 {
	result := s.conePreTest - (s.conePostTest + s.SandInCone())
	return mathutil.Round(result, 2)
}

func (s SandUsed) ConePreTest() float64  { return s.conePreTest }
func (s SandUsed) ConePostTest() float64 { return s.conePostTest }

func (s SandUsed) SandInCone() float64 {
	if s.sandInCone != nil {
		return *s.sandInCone
	}
	return SandInCone
}

// WetDensity is the in-place density of the soil including its moisture.
type WetDensity struct {
	soil        float64
	sandUsed    float64
	sandDensity *float64
}

// NewWetDensity builds a WetDensity. A nil sandDensity falls back to SandDensity.
func NewWetDensity(soil, sandUsed float64, sandDensity *float64) WetDensity {
	return WetDensity{soil: soil, sandUsed: sandUsed, sandDensity: clone(sandDensity)}
}

func (w WetDensity) Calculate() float64 {
	result := (w.soil / w.sandUsed) * w.SandDensity()
	return mathutil.Round(result, 4)
}

func (w WetDensity) Soil() float64     { return w.soil }
func (w WetDensity) SandUsed() float64 { return w.sandUsed }

func (w WetDensity) SandDensity() float64 {
	if w.sandDensity != nil {
		return *w.sandDensity
	}
	return SandDensity
}

// MoistureContent is the ratio of water weight to dry soil weight.
type MoistureContent struct {
	wetWeight float64
	dryWeight float64
	tarePan   float64
}

func NewMoistureContent(wetWeight, dryWeight, tarePan float64) MoistureContent {
	return MoistureContent{wetWeight: wetWeight, dryWeight: dryWeight, tarePan: tarePan}
}

func (m MoistureContent) Calculate() float64 {
	result := (m.wetWeight - m.dryWeight) / (m.dryWeight - m.tarePan)
	return mathutil.Round(result, 8)
}

func (m MoistureContent) WetWeight() float64 { return m.wetWeight }
func (m MoistureContent) DryWeight() float64 { return m.dryWeight }
func (m MoistureContent) TarePan() float64   { return m.tarePan }

// DryDensity removes the moisture from a wet density.
type DryDensity struct {
	wetDensity      WetDensityChoice
	moistureContent MoistureContentChoice
}

func NewDryDensity(wetDensity WetDensityChoice, moistureContent MoistureContentChoice) DryDensity {
	return DryDensity{wetDensity: wetDensity, moistureContent: moistureContent}
}

func (d DryDensity) Calculate() float64 {
	result := d.WetDensity() / (1 + d.MoistureContent())
	return mathutil.Round(result, 0)
}

func (d DryDensity) WetDensity() float64      { return d.wetDensity.Resolve() }
func (d DryDensity) MoistureContent() float64 { return d.moistureContent.Resolve() }

// Compaction is the field dry density as a percentage of the lab maximum.
type Compaction struct {
	dryDensity DryDensityChoice
	labMax     float64
}

func NewCompaction(dryDensity DryDensityChoice, labMax float64) Compaction {
	return Compaction{dryDensity: dryDensity, labMax: labMax}
}

func (c Compaction) Calculate() float64 {
	result := (c.DryDensity() / c.labMax) * 100
	return mathutil.Round(result, 1)
}

func (c Compaction) DryDensity() float64 { return c.dryDensity.Resolve() }
func (c Compaction) LabMax() float64     { return c.labMax }

// RockCorrection is the oversize fraction retained on the sieve.
type RockCorrection struct {
	leftOnSieveWeight      float64
	preSieveRockCorrection float64
}

func NewRockCorrection(leftOnSieveWeight, preSieveRockCorrection float64) RockCorrection {
	return RockCorrection{leftOnSieveWeight: leftOnSieveWeight, preSieveRockCorrection: preSieveRockCorrection}
}

func (r RockCorrection) Calculate() float64 {
	result := r.leftOnSieveWeight / r.preSieveRockCorrection
	return mathutil.Round(result, 1)
}

func (r RockCorrection) LeftOnSieveWeight() float64      { return r.leftOnSieveWeight }
func (r RockCorrection) PreSieveRockCorrection() float64 { return r.preSieveRockCorrection }

// LabMaxCorrection adjusts the lab maximum dry density for oversize rock.
type LabMaxCorrection struct {
	rockCorrection  RockCorrectionChoice
	labMax          float64
	specificGravity *float64
}

// NewLabMaxCorrection builds a LabMaxCorrection. A nil specificGravity falls
// back to SpecificGravity.
func NewLabMaxCorrection(rockCorrection RockCorrectionChoice, labMax float64, specificGravity *float64) LabMaxCorrection {
	return LabMaxCorrection{rockCorrection: rockCorrection, labMax: labMax, specificGravity: clone(specificGravity)}
}

func (l LabMaxCorrection) Calculate() float64 {
	rc := l.RockCorrection()
	sg := l.SpecificGravity()

	result := (1 - 0.05*rc) / (rc/(WaterUnitWeight*sg) + (1-rc)/l.labMax)
	return mathutil.Round(result, 1)
}

func (l LabMaxCorrection) RockCorrection() float64 { return l.rockCorrection.Resolve() }
func (l LabMaxCorrection) LabMax() float64         { return l.labMax }

func (l LabMaxCorrection) SpecificGravity() float64 {
	if l.specificGravity != nil {
		return *l.specificGravity
	}
	return SpecificGravity
}
