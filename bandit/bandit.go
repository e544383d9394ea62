// Copyright (c) 2026, The TGC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package bandit implements the reward-generating process for the
thermostatic learning agent: a two-armed bandit whose per-action reward
probabilities change in phases (e.g. a reversal schedule), so that a
previously-good action turns bad and sustained negative prediction errors
accumulate -- the condition that exercises the thermostat's reheating side.

Env follows the emergent env.Env framework so the schedule composes with
standard counters and logging.  Battery runs the standard thermostat
phenotypes over the schedule, one independent agent + environment pair per
phenotype, logging entropy and temperature trajectories to an etable.Table.
*/
package bandit

import (
	"fmt"

	"github.com/emer/emergent/env"
	"github.com/emer/emergent/erand"
	"github.com/emer/etable/etensor"
)

// Env is a two-armed bandit reward schedule with phased reward
// probabilities.  Each phase lasts PhaseLen trials; phases cycle through
// Probs in order, wrapping at the end (one full cycle = one epoch).
// Rewards are Bernoulli draws from the agent-selected action's current
// probability, using the explicitly injected random source.
type Env struct {
	Nm       string       `desc:"name of this environment"`
	Dsc      string       `desc:"description of this environment"`
	Probs    [][2]float64 `desc:"per-phase reward probability for each of the two actions -- default is a reversal schedule: action 0 good then action 1 good"`
	PhaseLen int          `def:"50" desc:"number of trials per phase"`
	RewVal   float64      `def:"1" desc:"reward value delivered on a successful draw"`
	NoRewVal float64      `def:"0" desc:"reward value delivered otherwise"`

	// last action fed in via SampleReward or Action
	Act int `inactive:"+"`

	// last sampled reward value
	Rew float64 `inactive:"+"`

	// current schedule phase (index into Probs)
	Phase env.CurPrvInt `view:"inline"`

	// reward state, for the env.Env State interface
	RewTsr etensor.Float64 `view:"-"`

	Run   env.Ctr `view:"inline" desc:"current run of model as provided during Init"`
	Epoch env.Ctr `view:"inline" desc:"number of full schedule cycles completed"`
	Trial env.Ctr `view:"inline" desc:"trial within the schedule cycle"`

	// random source for reward draws -- explicitly injected for
	// reproducibility and agent independence
	Rnd erand.Rand `view:"-"`
}

func (ev *Env) Name() string { return ev.Nm }
func (ev *Env) Desc() string { return ev.Dsc }

// Defaults sets the standard reversal schedule: action 0 rewarded at 0.8
// for the first phase, then probabilities reverse.
func (ev *Env) Defaults() {
	ev.Probs = [][2]float64{{0.8, 0.2}, {0.2, 0.8}}
	ev.PhaseLen = 50
	ev.RewVal = 1
	ev.NoRewVal = 0
}

func (ev *Env) Validate() error {
	if len(ev.Probs) == 0 {
		return fmt.Errorf("bandit.Env: %v has no phase probabilities set", ev.Nm)
	}
	for pi, ps := range ev.Probs {
		for ai, p := range ps {
			if p < 0 || p > 1 {
				return fmt.Errorf("bandit.Env: %v phase %v action %v: probability %v out of [0,1]", ev.Nm, pi, ai, p)
			}
		}
	}
	if ev.PhaseLen <= 0 {
		return fmt.Errorf("bandit.Env: %v has non-positive PhaseLen %v", ev.Nm, ev.PhaseLen)
	}
	if ev.Rnd == nil {
		return fmt.Errorf("bandit.Env: %v has nil random source", ev.Nm)
	}
	return nil
}

func (ev *Env) Counters() []env.TimeScales {
	return []env.TimeScales{env.Run, env.Epoch, env.Trial}
}

func (ev *Env) States() env.Elements {
	return env.Elements{
		{"Rew", []int{1}, nil},
	}
}

func (ev *Env) State(element string) etensor.Tensor {
	switch element {
	case "Rew":
		return &ev.RewTsr
	}
	return nil
}

func (ev *Env) Actions() env.Elements {
	return env.Elements{
		{"Act", []int{1}, nil},
	}
}

// String returns the current state as a string
func (ev *Env) String() string {
	return fmt.Sprintf("Ph_%d_Act_%d_Rew_%g", ev.Phase.Cur, ev.Act, ev.Rew)
}

func (ev *Env) Init(run int) {
	ev.RewTsr.SetShape([]int{1}, nil, nil)
	ev.Run.Scale = env.Run
	ev.Epoch.Scale = env.Epoch
	ev.Trial.Scale = env.Trial
	ev.Run.Init()
	ev.Epoch.Init()
	ev.Trial.Init()
	ev.Run.Cur = run
	ev.Trial.Max = ev.PhaseLen * len(ev.Probs)
	ev.Trial.Cur = -1 // init state -- key so that first Step() = 0
	ev.Phase.Cur = 0
	ev.Phase.Prv = -1
}

// Step advances the trial counter and updates the schedule phase.
func (ev *Env) Step() bool {
	ev.Epoch.Same()
	if ev.Trial.Incr() {
		ev.Epoch.Incr()
	}
	ev.Phase.Set((ev.Trial.Cur / ev.PhaseLen) % len(ev.Probs))
	return true
}

// SampleReward draws the reward for the given action under the current
// phase probabilities, records it, and returns it.
func (ev *Env) SampleReward(act int) float64 {
	ev.Act = act
	p := ev.Probs[ev.Phase.Cur][act]
	if erand.BoolP(p, -1, ev.Rnd) {
		ev.Rew = ev.RewVal
	} else {
		ev.Rew = ev.NoRewVal
	}
	ev.RewTsr.Values[0] = ev.Rew
	return ev.Rew
}

func (ev *Env) Action(element string, input etensor.Tensor) {
	ev.SampleReward(int(input.FloatVal1D(0)))
}

func (ev *Env) Counter(scale env.TimeScales) (cur, prv int, chg bool) {
	switch scale {
	case env.Run:
		return ev.Run.Query()
	case env.Epoch:
		return ev.Epoch.Query()
	case env.Trial:
		return ev.Trial.Query()
	}
	return -1, -1, false
}

// Compile-time check that implements Env interface
var _ env.Env = (*Env)(nil)
