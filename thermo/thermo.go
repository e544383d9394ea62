// Copyright (c) 2026, The TGC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package thermo implements the thermostatic learning agent of the TGC model:
a two-action softmax value-learner whose decision temperature is regulated
by a two-sided thermostat.

Action values are updated by a fixed-rate delta rule toward the observed
reward.  The temperature tau of the softmax policy is mutated by the
thermostat: positive reward cools the policy multiplicatively (bounded
below by a hard floor), while sustained negative prediction error reheats
it.  Reheating is driven by a leaky integrator: the integrator decays
geometrically every step, absorbs the magnitude of each negative prediction
error, and is hard-reset to zero when it crosses the reheat threshold,
adding a fixed increment to the temperature.

This cooling / reheating cycle makes the policy path-dependent: the current
temperature reflects the recent reward history, not just the current action
values.  A static variant (Adapt = false) freezes the temperature entirely
and serves as a non-adaptive control baseline; all variants share the same
update routine, branching only on configuration.
*/
package thermo

import (
	"errors"
	"fmt"
	"math"

	"github.com/emer/emergent/erand"
)

// Configuration errors returned (wrapped) from NewAgent / Validate.
var (
	ErrLearnRate    = errors.New("thermo: learning rate must be > 0")
	ErrInitTemp     = errors.New("thermo: initial temperature must be > 0")
	ErrTempFloor    = errors.New("thermo: temperature floor must be > 0")
	ErrCoolRate     = errors.New("thermo: cooling rate must be in (0, 1]")
	ErrInitFloor    = errors.New("thermo: initial temperature must be >= floor")
	ErrErrorDecay   = errors.New("thermo: error decay must be in [0, 1)")
	ErrReheatAmount = errors.New("thermo: reheat amount must be >= 0")
	ErrNilRand      = errors.New("thermo: nil random source")
)

// EntropyFloor is the small additive floor inside the log when computing
// Shannon entropy, avoiding a domain error at probability 0.  A deliberate
// approximation, not an error path.
const EntropyFloor = 1e-12

// LearnParams are the action-value learning parameters.
type LearnParams struct {
	Lrate float64 `def:"0.1" min:"0" desc:"fixed learning rate for the delta-rule update of action values toward observed reward"`
}

func (lp *LearnParams) Defaults() {
	lp.Lrate = 0.1
}

func (lp *LearnParams) Update() {
}

// Validate fails fast on a configuration that would produce silently wrong
// trajectories.
func (lp *LearnParams) Validate() error {
	if lp.Lrate <= 0 {
		return fmt.Errorf("%w, got %g", ErrLearnRate, lp.Lrate)
	}
	return nil
}

// TempParams are the thermostat parameters governing the softmax
// temperature.  The defaults are the healthy phenotype: moderate cooling
// with moderate, easily-triggered reheating.
type TempParams struct {
	Adapt     bool    `desc:"whether the thermostat runs at all -- false freezes temperature at Init, the static control baseline"`
	Init      float64 `def:"1" min:"0" desc:"initial softmax temperature tau -- higher = more uniform (explorative) action probabilities"`
	Floor     float64 `def:"0.01" min:"0" desc:"hard lower bound on temperature -- cooling can never take tau below this"`
	Cool      float64 `def:"0.95" viewif:"Adapt" desc:"multiplicative cooling factor applied to tau after each positive reward -- success narrows the decision distribution; values near 1 = effectively no cooling"`
	ReheatThr float64 `def:"1.5" viewif:"Adapt" desc:"threshold on the leaky-integrated negative prediction error magnitude that triggers a reheat -- effectively infinite = never reheat"`
	Reheat    float64 `def:"0.5" viewif:"Adapt" desc:"additive temperature increment applied when the integrator crosses ReheatThr"`
	ErrDecay  float64 `def:"0.9" viewif:"Adapt" desc:"per-step geometric decay of the error integrator -- bounds memory of past error"`
}

func (tp *TempParams) Defaults() {
	tp.Adapt = true
	tp.Init = 1
	tp.Floor = 0.01
	tp.Cool = 0.95
	tp.ReheatThr = 1.5
	tp.Reheat = 0.5
	tp.ErrDecay = 0.9
}

func (tp *TempParams) Update() {
}

// Validate fails fast on a configuration that could drive the temperature
// into an undefined numeric state.
func (tp *TempParams) Validate() error {
	if tp.Init <= 0 {
		return fmt.Errorf("%w, got %g", ErrInitTemp, tp.Init)
	}
	if tp.Floor <= 0 {
		return fmt.Errorf("%w, got %g", ErrTempFloor, tp.Floor)
	}
	if tp.Init < tp.Floor {
		return fmt.Errorf("%w, got init %g floor %g", ErrInitFloor, tp.Init, tp.Floor)
	}
	if tp.Cool <= 0 || tp.Cool > 1 {
		return fmt.Errorf("%w, got %g", ErrCoolRate, tp.Cool)
	}
	if tp.ErrDecay < 0 || tp.ErrDecay >= 1 {
		return fmt.Errorf("%w, got %g", ErrErrorDecay, tp.ErrDecay)
	}
	if tp.Reheat < 0 {
		return fmt.Errorf("%w, got %g", ErrReheatAmount, tp.Reheat)
	}
	return nil
}

// Softmax returns the action probabilities for the given action values at
// the given temperature, subtracting the maximum value before
// exponentiating for numerical stability.
func Softmax(q [2]float64, temp float64) [2]float64 {
	mx := math.Max(q[0], q[1])
	e0 := math.Exp((q[0] - mx) / temp)
	e1 := math.Exp((q[1] - mx) / temp)
	sum := e0 + e1
	return [2]float64{e0 / sum, e1 / sum}
}

// Entropy returns the Shannon entropy (in nats) of the given action
// distribution, with EntropyFloor added inside the log.  The result is
// clamped at 0: for a near-deterministic distribution the floor makes the
// raw sum fractionally negative.
func Entropy(p [2]float64) float64 {
	h := 0.0
	for _, v := range p {
		h -= v * math.Log(v+EntropyFloor)
	}
	return math.Max(0, h)
}

// Agent is one thermostatic learning agent.  It is an independent, unshared
// mutable object: each agent owns its state, histories, and random source,
// so a batch of agents can run deterministically and in parallel with no
// coordination.  SelectAction must be called before Update for the same
// trial; Update's effects are visible to the next SelectAction.
type Agent struct {
	Learn LearnParams `view:"inline" desc:"action-value learning parameters"`
	Temp  TempParams  `view:"inline" desc:"thermostat parameters"`

	// action values, updated toward observed reward
	Q [2]float64 `inactive:"+"`

	// current softmax temperature tau -- never below Temp.Floor
	Temperature float64 `inactive:"+"`

	// leaky-integrated magnitude of negative prediction errors -- decays
	// geometrically each step, reset to 0 on triggering a reheat
	CumErr float64 `inactive:"+"`

	// action probabilities from the most recent SelectAction
	Probs [2]float64 `inactive:"+"`

	// action-selection entropy trajectory, one entry per SelectAction call
	EntHist []float64 `view:"-"`

	// temperature trajectory, one entry per Update call
	TempHist []float64 `view:"-"`

	// random source for action sampling -- explicitly injected so that
	// trajectories are reproducible and agents are independent
	Rnd erand.Rand `view:"-"`
}

// NewAgent returns a new agent with the given configuration and random
// source, or a configuration error.  Callers must not share one source
// across agents if they want independent deterministic trajectories.
func NewAgent(learn LearnParams, temp TempParams, rnd erand.Rand) (*Agent, error) {
	if err := learn.Validate(); err != nil {
		return nil, err
	}
	if err := temp.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		return nil, ErrNilRand
	}
	ag := &Agent{Learn: learn, Temp: temp, Rnd: rnd}
	ag.Init()
	return ag, nil
}

// Init resets the learned state: zero action values, temperature back to
// its configured initial value, integrator cleared, histories reset.
func (ag *Agent) Init() {
	ag.Q = [2]float64{}
	ag.Temperature = ag.Temp.Init
	ag.CumErr = 0
	ag.Probs = [2]float64{}
	ag.EntHist = nil
	ag.TempHist = nil
}

// SelectAction samples an action (0 or 1) from the softmax policy over the
// current action values at the current temperature.  The entropy of the
// policy distribution is appended to EntHist.
func (ag *Agent) SelectAction() int {
	ag.Probs = Softmax(ag.Q, ag.Temperature)
	ag.EntHist = append(ag.EntHist, Entropy(ag.Probs))
	return erand.PChoose64(ag.Probs[:], -1, ag.Rnd)
}

// Update applies the delta-rule value update for the given action and
// reward, then runs the thermostat (unless the agent is a static variant).
// The current temperature is appended to TempHist.
func (ag *Agent) Update(act int, reward float64) {
	da := reward - ag.Q[act]
	ag.Q[act] += ag.Learn.Lrate * da
	if ag.Temp.Adapt {
		ag.adaptTemp(da, reward)
	}
	ag.TempHist = append(ag.TempHist, ag.Temperature)
}

// adaptTemp runs the two-sided thermostat: cooling on reward, then the
// leaky integrator and threshold-triggered reheat.
func (ag *Agent) adaptTemp(da, reward float64) {
	if reward > 0 {
		ag.Temperature = math.Max(ag.Temp.Floor, ag.Temperature*ag.Temp.Cool)
	}
	if da < 0 {
		ag.CumErr = ag.Temp.ErrDecay*ag.CumErr + math.Abs(da)
	} else {
		ag.CumErr = ag.Temp.ErrDecay * ag.CumErr
	}
	if ag.CumErr > ag.Temp.ReheatThr {
		ag.Temperature += ag.Temp.Reheat
		ag.CumErr = 0
	}
}
