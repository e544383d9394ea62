// Copyright (c) 2026, The TGC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cfp implements the Catastrophe Forcing Protocol: a symmetric
"stress ramp" of the external drive, swept up from a low value to a high
value and back down, applied to a battery of cusp agents with different
stability factors (topological phenotypes).

The protocol is the empirical probe for structural hysteresis: whenever
Omega > 0, the ascending and descending passes trace different gain curves,
and the enclosed loop area A = loop integral of gain dE is strictly
positive.  For Omega <= 0 the two curves coincide and A = 0.

Trajectories are logged to an etable.Table with one row per drive step and
per-agent State / Gain columns, ready for plotting or TSV export by callers.
*/
package cfp

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ccnsim/tgc/cusp"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
)

// LogPrec is precision for saving float values in logs
const LogPrec = 4

// Ramp generates the symmetric stress-ramp drive sequence: NStep ascending
// values from Min to Max inclusive, then NStep descending back to Min.
type Ramp struct {
	Min   float64 `def:"-4" desc:"starting (and ending) drive value"`
	Max   float64 `def:"4" desc:"peak drive value"`
	NStep int     `def:"200" min:"2" desc:"number of drive steps in each direction"`
}

func (rp *Ramp) Defaults() {
	rp.Min = -4
	rp.Max = 4
	rp.NStep = 200
}

func (rp *Ramp) Update() {
	if rp.NStep < 2 {
		rp.NStep = 2
	}
}

// Sequence returns the full 2*NStep drive sequence: ascending then
// descending, both inclusive of the endpoints.
func (rp *Ramp) Sequence() []float64 {
	rp.Update()
	seq := make([]float64, 0, 2*rp.NStep)
	step := (rp.Max - rp.Min) / float64(rp.NStep-1)
	for i := 0; i < rp.NStep; i++ {
		seq = append(seq, rp.Min+float64(i)*step)
	}
	for i := 0; i < rp.NStep; i++ {
		seq = append(seq, rp.Max-float64(i)*step)
	}
	return seq
}

// Sim runs the stress ramp over a battery of cusp agents, one per stability
// factor, logging the full trajectories.
type Sim struct {
	Ramp   Ramp      `view:"inline" desc:"stress ramp configuration"`
	Omegas []float64 `desc:"stability factors, one agent per value -- default is the standard phenotype battery: 0.5 (shallow), 1.5 (moderate), 3 (deep hysteresis)"`

	// the agents, parallel to Omegas
	Agents []*cusp.Agent `view:"-"`

	// observed range of gain values across the whole battery
	GainRange minmax.F64 `inactive:"+"`

	// trajectory log: one row per drive step
	Log *etable.Table `view:"no-inline"`
}

func (ss *Sim) Defaults() {
	ss.Ramp.Defaults()
	ss.Omegas = []float64{0.5, 1.5, 3}
}

// Config builds the agent battery and the log table.  Call after Defaults
// and any configuration changes, before Run.
func (ss *Sim) Config() {
	ss.Agents = make([]*cusp.Agent, len(ss.Omegas))
	for i, om := range ss.Omegas {
		ss.Agents[i] = cusp.NewAgent(om)
	}
	ss.Log = &etable.Table{}
	ss.ConfigLog(ss.Log)
}

func (ss *Sim) ConfigLog(dt *etable.Table) {
	dt.SetMetaData("name", "CFPLog")
	dt.SetMetaData("desc", "catastrophe forcing protocol trajectories")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Step", etensor.INT64, nil, nil},
		{"Phase", etensor.INT64, nil, nil}, // 0 = ascending, 1 = descending
		{"Drive", etensor.FLOAT64, nil, nil},
	}
	for _, om := range ss.Omegas {
		sch = append(sch, etable.Column{fmt.Sprintf("State_%g", om), etensor.FLOAT64, nil, nil})
		sch = append(sch, etable.Column{fmt.Sprintf("Gain_%g", om), etensor.FLOAT64, nil, nil})
	}
	dt.SetFromSchema(sch, 0)
}

// Run re-initializes the agents and sweeps the full ramp, filling the log.
func (ss *Sim) Run() {
	seq := ss.Ramp.Sequence()
	dt := ss.Log
	dt.SetNumRows(len(seq))
	ss.GainRange.Init()
	for _, ag := range ss.Agents {
		ag.Init()
	}
	for t, drv := range seq {
		phase := 0
		if t >= ss.Ramp.NStep {
			phase = 1
		}
		dt.SetCellFloat("Step", t, float64(t))
		dt.SetCellFloat("Phase", t, float64(phase))
		dt.SetCellFloat("Drive", t, drv)
		for i, ag := range ss.Agents {
			gain := ag.UpdateState(drv)
			om := ss.Omegas[i]
			dt.SetCellFloat(fmt.Sprintf("State_%g", om), t, ag.State)
			dt.SetCellFloat(fmt.Sprintf("Gain_%g", om), t, gain)
			ss.GainRange.FitValInRange(gain)
		}
	}
}

// HystArea returns the hysteresis loop area: the absolute value of the
// closed-loop trapezoid integral of gain over drive across the full up-down
// sweep.  Strictly positive when the ascending and descending curves
// differ, 0 when they coincide.
func HystArea(drives, gains []float64) float64 {
	n := len(drives)
	if len(gains) < n {
		n = len(gains)
	}
	if n < 2 {
		return 0
	}
	area := 0.0
	for i := 1; i < n; i++ {
		area += 0.5 * (gains[i] + gains[i-1]) * (drives[i] - drives[i-1])
	}
	// close the loop back to the starting drive
	area += 0.5 * (gains[0] + gains[n-1]) * (drives[0] - drives[n-1])
	return math.Abs(area)
}

// Areas returns the hysteresis loop area for each agent in the battery,
// from the logged trajectories.  Run must have been called first.
func (ss *Sim) Areas() []float64 {
	seq := ss.Ramp.Sequence()
	areas := make([]float64, len(ss.Agents))
	for i, ag := range ss.Agents {
		areas[i] = HystArea(seq, ag.GainHist)
	}
	return areas
}
