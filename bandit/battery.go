// Copyright (c) 2026, The TGC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandit

import (
	"fmt"
	"strconv"

	"github.com/ccnsim/tgc/thermo"
	"github.com/emer/emergent/erand"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
)

// LogPrec is precision for saving float values in logs
const LogPrec = 4

// Battery runs the standard thermostat phenotypes over the reward
// schedule, one independent agent + environment pair per phenotype.
// Because every pair has its own seeded random source, the phenotypes can
// be compared on identical schedules and the whole run is reproducible.
type Battery struct {
	NTrials int                `def:"200" desc:"number of trials to run"`
	Phenos  []thermo.Phenotype `desc:"phenotypes to run -- default is the full standard battery"`

	// the agents, parallel to Phenos
	Agents []*thermo.Agent `view:"-"`

	// per-agent environments, parallel to Phenos
	Envs []*Env `view:"-"`

	// observed range of temperature values across the battery
	TempRange minmax.F64 `inactive:"+"`

	// trajectory log: one row per trial
	Log *etable.Table `view:"no-inline"`
}

func (bt *Battery) Defaults() {
	bt.NTrials = 200
	bt.Phenos = []thermo.Phenotype{thermo.Static, thermo.Healthy, thermo.LowCool, thermo.NoReheat}
}

// Config builds the agent battery and environments from the given seed.
// Each agent and environment gets its own derived random source.
func (bt *Battery) Config(seed int64) error {
	n := len(bt.Phenos)
	bt.Agents = make([]*thermo.Agent, n)
	bt.Envs = make([]*Env, n)
	for i, ph := range bt.Phenos {
		lp := thermo.LearnParams{}
		lp.Defaults()
		tp := thermo.TempParams{}
		tp.Defaults()
		ag, err := thermo.NewAgent(lp, tp, erand.NewSysRand(seed+int64(i)))
		if err != nil {
			return err
		}
		if err := ApplyPheno(ag, ph, false); err != nil {
			return err
		}
		bt.Agents[i] = ag

		ev := &Env{Nm: fmt.Sprintf("Bandit_%s", ph), Dsc: "reversal schedule"}
		ev.Defaults()
		ev.Rnd = erand.NewSysRand(seed + int64(n+i))
		if err := ev.Validate(); err != nil {
			return err
		}
		ev.Init(0)
		bt.Envs[i] = ev
	}
	bt.Log = &etable.Table{}
	bt.ConfigLog(bt.Log)
	return nil
}

func (bt *Battery) ConfigLog(dt *etable.Table) {
	dt.SetMetaData("name", "BanditLog")
	dt.SetMetaData("desc", "thermostat phenotype battery trajectories")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Trial", etensor.INT64, nil, nil},
		{"Phase", etensor.INT64, nil, nil},
	}
	for _, ph := range bt.Phenos {
		sch = append(sch, etable.Column{fmt.Sprintf("Act_%s", ph), etensor.INT64, nil, nil})
		sch = append(sch, etable.Column{fmt.Sprintf("Rew_%s", ph), etensor.FLOAT64, nil, nil})
		sch = append(sch, etable.Column{fmt.Sprintf("Ent_%s", ph), etensor.FLOAT64, nil, nil})
		sch = append(sch, etable.Column{fmt.Sprintf("Temp_%s", ph), etensor.FLOAT64, nil, nil})
		sch = append(sch, etable.Column{fmt.Sprintf("CumErr_%s", ph), etensor.FLOAT64, nil, nil})
	}
	dt.SetFromSchema(sch, 0)
}

// Run executes the select -> reward -> update loop for NTrials on every
// phenotype, filling the log.  Agents and envs are re-initialized first.
func (bt *Battery) Run() {
	dt := bt.Log
	dt.SetNumRows(bt.NTrials)
	bt.TempRange.Init()
	for i, ag := range bt.Agents {
		ag.Init()
		bt.Envs[i].Init(0)
	}
	for trl := 0; trl < bt.NTrials; trl++ {
		dt.SetCellFloat("Trial", trl, float64(trl))
		for i, ag := range bt.Agents {
			ev := bt.Envs[i]
			ev.Step()
			act := ag.SelectAction()
			rew := ev.SampleReward(act)
			ag.Update(act, rew)

			ph := bt.Phenos[i]
			if i == 0 {
				dt.SetCellFloat("Phase", trl, float64(ev.Phase.Cur))
			}
			dt.SetCellFloat(fmt.Sprintf("Act_%s", ph), trl, float64(act))
			dt.SetCellFloat(fmt.Sprintf("Rew_%s", ph), trl, rew)
			dt.SetCellFloat(fmt.Sprintf("Ent_%s", ph), trl, ag.EntHist[trl])
			dt.SetCellFloat(fmt.Sprintf("Temp_%s", ph), trl, ag.Temperature)
			dt.SetCellFloat(fmt.Sprintf("CumErr_%s", ph), trl, ag.CumErr)
			bt.TempRange.FitValInRange(ag.Temperature)
		}
	}
}
