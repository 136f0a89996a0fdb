package planetary

import (
	"math"
	"time"
)

// Yield curve shape
const (
	extractorDecayFactor = 0.012
	extractorNoiseFactor = 0.8
	extractorBarSeconds  = 900.0 // one curve unit is 15 minutes of cycle time
)

// ExtractorYield returns the units an extractor harvests in the given cycle
// (zero-based) of a program with the given base value and cycle length.
// Output decays over the life of the program with a periodic wobble on top.
func ExtractorYield(baseValue int, cycleIndex int, cycleTime time.Duration) int {
	if baseValue <= 0 || cycleIndex < 0 || cycleTime <= 0 {
		return 0
	}

	barWidth := cycleTime.Seconds() / extractorBarSeconds
	t := (float64(cycleIndex) + 0.5) * barWidth
	decay := float64(baseValue) / (1 + t*extractorDecayFactor)

	phaseShift := math.Pow(float64(baseValue), 0.7)
	sinA := math.Cos(phaseShift + t*(1.0/12.0))
	sinB := math.Cos(phaseShift/2 + t*0.2)
	sinC := math.Cos(t * 0.5)
	wobble := max((sinA+sinB+sinC)/3, 0)

	barHeight := decay * (1 + extractorNoiseFactor*wobble)
	return int(barWidth * barHeight)
}

// CycleCount returns how many full cycles fit between install and expiry
func (p *ExtractorPin) CycleCount() int {
	if !p.IsSetup() || *p.CycleTime <= 0 {
		return 0
	}
	program := p.ExpiryTime.Sub(*p.InstallTime)
	if program <= 0 {
		return 0
	}
	return int(program / *p.CycleTime)
}

// CycleEndAfter returns the end of the first cycle finishing strictly after t,
// or nil if no cycle of the program ends after t.
func (p *ExtractorPin) CycleEndAfter(t time.Time) *time.Time {
	count := p.CycleCount()
	if count == 0 {
		return nil
	}

	cycle := *p.CycleTime
	index := 0
	if elapsed := t.Sub(*p.InstallTime); elapsed >= 0 {
		index = int(elapsed / cycle)
	}
	if index >= count {
		return nil
	}

	end := p.InstallTime.Add(time.Duration(index+1) * cycle)
	return &end
}

// CycleIndexEndingAt returns the zero-based index of the cycle that ends at t
func (p *ExtractorPin) CycleIndexEndingAt(t time.Time) int {
	if !p.IsSetup() || *p.CycleTime <= 0 {
		return -1
	}
	return int(t.Sub(*p.InstallTime) / *p.CycleTime) - 1
}

// ProgramYield returns the per-cycle output of the installed program
func (p *ExtractorPin) ProgramYield() []int {
	count := p.CycleCount()
	out := make([]int, count)
	for i := range out {
		out[i] = ExtractorYield(*p.BaseValue, i, *p.CycleTime)
	}
	return out
}

// TotalYield returns the summed output of the installed program
func (p *ExtractorPin) TotalYield() int {
	total := 0
	for _, units := range p.ProgramYield() {
		total += units
	}
	return total
}
