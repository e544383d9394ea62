// Copyright (c) 2026, The TGC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"errors"
	"math"
	"testing"

	"github.com/emer/emergent/erand"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-8

func newTestAgent(t *testing.T, tp TempParams, seed int64) *Agent {
	t.Helper()
	lp := LearnParams{}
	lp.Defaults()
	ag, err := NewAgent(lp, tp, erand.NewSysRand(seed))
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	return ag
}

func TestConfigErrors(t *testing.T) {
	lp := LearnParams{}
	lp.Defaults()
	tp := TempParams{}
	tp.Defaults()
	rnd := erand.NewSysRand(1)

	tests := []struct {
		name string
		mod  func(lp *LearnParams, tp *TempParams)
		err  error
	}{
		{"lrate zero", func(lp *LearnParams, tp *TempParams) { lp.Lrate = 0 }, ErrLearnRate},
		{"lrate negative", func(lp *LearnParams, tp *TempParams) { lp.Lrate = -0.1 }, ErrLearnRate},
		{"temp zero", func(lp *LearnParams, tp *TempParams) { tp.Init = 0 }, ErrInitTemp},
		{"floor negative", func(lp *LearnParams, tp *TempParams) { tp.Floor = -1 }, ErrTempFloor},
		{"init below floor", func(lp *LearnParams, tp *TempParams) { tp.Init = 0.005 }, ErrInitFloor},
		{"cool zero", func(lp *LearnParams, tp *TempParams) { tp.Cool = 0 }, ErrCoolRate},
		{"cool above one", func(lp *LearnParams, tp *TempParams) { tp.Cool = 1.5 }, ErrCoolRate},
		{"decay one", func(lp *LearnParams, tp *TempParams) { tp.ErrDecay = 1 }, ErrErrorDecay},
		{"reheat negative", func(lp *LearnParams, tp *TempParams) { tp.Reheat = -0.5 }, ErrReheatAmount},
	}
	for _, tst := range tests {
		l, tm := lp, tp
		tst.mod(&l, &tm)
		if _, err := NewAgent(l, tm, rnd); !errors.Is(err, tst.err) {
			t.Errorf("%s: got error %v, want %v", tst.name, err, tst.err)
		}
	}
	if _, err := NewAgent(lp, tp, nil); !errors.Is(err, ErrNilRand) {
		t.Errorf("nil rand: got error %v, want %v", err, ErrNilRand)
	}
	if _, err := NewAgent(lp, tp, rnd); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestSoftmaxEntropy(t *testing.T) {
	p := Softmax([2]float64{0, 0}, 1)
	if math.Abs(p[0]-0.5) > difTol || math.Abs(p[1]-0.5) > difTol {
		t.Errorf("softmax of equal values: got %v, want uniform", p)
	}
	if dif := math.Abs(Entropy(p) - math.Log(2)); dif > 1e-6 {
		t.Errorf("entropy of uniform: got %v, want ln 2", Entropy(p))
	}

	// very cold policy: nearly deterministic, entropy near 0, no NaN/Inf
	p = Softmax([2]float64{1, 0}, 0.01)
	if p[0] < 0.999 {
		t.Errorf("cold softmax: got %v, want near-deterministic", p)
	}
	h := Entropy(p)
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		t.Errorf("cold entropy: got %v", h)
	}

	// fully deterministic distribution: the log floor makes the raw sum
	// fractionally negative, which must clamp to exactly 0
	if h := Entropy([2]float64{1, 0}); h != 0 {
		t.Errorf("deterministic entropy: got %v, want 0", h)
	}

	// large values must not overflow thanks to max subtraction
	p = Softmax([2]float64{1000, 998}, 1)
	if math.IsNaN(p[0]) || math.Abs(p[0]+p[1]-1) > difTol {
		t.Errorf("softmax of large values: got %v", p)
	}
}

// TestAlwaysRewarded: with reward always 1, temperature is monotonically
// non-increasing (bounded below by the floor) and the error integrator
// stays at 0 -- no negative prediction errors ever accumulate.
func TestAlwaysRewarded(t *testing.T) {
	tp := TempParams{}
	tp.Defaults()
	ag := newTestAgent(t, tp, 7)
	prv := ag.Temperature
	for trl := 0; trl < 10; trl++ {
		act := ag.SelectAction()
		ag.Update(act, 1)
		if ag.Temperature > prv {
			t.Errorf("trial %v: temperature rose from %v to %v", trl, prv, ag.Temperature)
		}
		if ag.Temperature < ag.Temp.Floor {
			t.Errorf("trial %v: temperature %v below floor", trl, ag.Temperature)
		}
		if ag.CumErr != 0 {
			t.Errorf("trial %v: integrator %v, want 0", trl, ag.CumErr)
		}
		prv = ag.Temperature
	}
	if len(ag.EntHist) != 10 || len(ag.TempHist) != 10 {
		t.Errorf("history lengths: ent %v, temp %v, want 10", len(ag.EntHist), len(ag.TempHist))
	}
}

// TestTemperatureFloor: strong cooling under sustained reward pins the
// temperature exactly at the floor, never below it.
func TestTemperatureFloor(t *testing.T) {
	tp := TempParams{}
	tp.Defaults()
	tp.Cool = 0.5
	ag := newTestAgent(t, tp, 3)
	for trl := 0; trl < 50; trl++ {
		act := ag.SelectAction()
		ag.Update(act, 1)
		if ag.Temperature < tp.Floor {
			t.Fatalf("trial %v: temperature %v below floor %v", trl, ag.Temperature, tp.Floor)
		}
	}
	if ag.Temperature != tp.Floor {
		t.Errorf("final temperature: got %v, want floor %v", ag.Temperature, tp.Floor)
	}
}

func TestStaticInvariant(t *testing.T) {
	ag := newTestAgent(t, PhenoTempParams(Static), 11)
	rew := []float64{1, 0, 0, 1, 0, 1, 1, 0, 0, 0, 1, 0}
	for _, r := range rew {
		act := ag.SelectAction()
		ag.Update(act, r)
		if ag.Temperature != ag.Temp.Init {
			t.Fatalf("static temperature changed to %v", ag.Temperature)
		}
		if ag.CumErr != 0 {
			t.Fatalf("static integrator touched: %v", ag.CumErr)
		}
	}
	// values still learn in the static variant
	if ag.Q[0] == 0 && ag.Q[1] == 0 {
		t.Errorf("static variant learned nothing: Q = %v", ag.Q)
	}
}

// TestNoReheatMonotone: with an unreachable reheat threshold, temperature
// is non-increasing over any reward sequence.
func TestNoReheatMonotone(t *testing.T) {
	ag := newTestAgent(t, PhenoTempParams(NoReheat), 13)
	rew := []float64{1, 1, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 0, 0, 1}
	prv := ag.Temperature
	for _, r := range rew {
		act := ag.SelectAction()
		ag.Update(act, r)
		if ag.Temperature > prv {
			t.Fatalf("no-reheat temperature rose from %v to %v", prv, ag.Temperature)
		}
		prv = ag.Temperature
	}
}

// TestLowCoolNearInit: with cooling rate near 1, temperature stays within
// a small tolerance of its initial value.
func TestLowCoolNearInit(t *testing.T) {
	ag := newTestAgent(t, PhenoTempParams(LowCool), 17)
	for trl := 0; trl < 50; trl++ {
		act := ag.SelectAction()
		ag.Update(act, 1) // reward every trial: maximal cooling pressure
	}
	if dif := math.Abs(ag.Temperature - ag.Temp.Init); dif > 0.1 {
		t.Errorf("low-cool temperature drifted to %v (init %v)", ag.Temperature, ag.Temp.Init)
	}
}

// TestReheatCycle walks the integrator through decay, accumulation,
// threshold crossing, and reset, checking exact values.
func TestReheatCycle(t *testing.T) {
	lp := LearnParams{Lrate: 0.5}
	tp := TempParams{}
	tp.Defaults()
	tp.ReheatThr = 0.5
	ag, err := NewAgent(lp, tp, erand.NewSysRand(19))
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}

	ag.Update(0, 1) // da = +1: cooling only
	if dif := math.Abs(ag.Temperature - 0.95); dif > difTol {
		t.Errorf("after reward: temperature %v, want 0.95", ag.Temperature)
	}
	if ag.CumErr != 0 {
		t.Errorf("after positive da: integrator %v, want 0", ag.CumErr)
	}

	ag.Update(0, 0) // Q[0] = 0.5, da = -0.5: integrator absorbs it
	if dif := math.Abs(ag.CumErr - 0.5); dif > difTol {
		t.Errorf("after first error: integrator %v, want 0.5", ag.CumErr)
	}
	if dif := math.Abs(ag.Temperature - 0.95); dif > difTol {
		t.Errorf("no reheat yet: temperature %v, want 0.95", ag.Temperature)
	}

	ag.Update(0, 0) // da = -0.25: 0.9*0.5 + 0.25 = 0.7 > 0.5 -> reheat, reset
	if dif := math.Abs(ag.Temperature - 1.45); dif > difTol {
		t.Errorf("after reheat: temperature %v, want 1.45", ag.Temperature)
	}
	if ag.CumErr != 0 {
		t.Errorf("after reheat: integrator %v, want 0", ag.CumErr)
	}
}

// TestIntegratorLeak: with only non-negative prediction errors after an
// accumulation, the integrator decays geometrically and never resets.
func TestIntegratorLeak(t *testing.T) {
	tp := TempParams{}
	tp.Defaults()
	tp.ReheatThr = 10 // out of reach for this sequence
	ag := newTestAgent(t, tp, 23)

	ag.Update(0, 1)  // Q[0] = 0.1
	ag.Update(0, -1) // da = -1.1: integrator = 1.1
	cum := ag.CumErr
	if dif := math.Abs(cum - 1.1); dif > difTol {
		t.Fatalf("integrator after error: got %v, want 1.1", cum)
	}
	for i := 0; i < 5; i++ {
		ag.Update(1, 1) // positive da on the other action: pure decay
		cum *= tp.ErrDecay
		if dif := math.Abs(ag.CumErr - cum); dif > difTol {
			t.Errorf("decay step %v: integrator %v, want %v", i, ag.CumErr, cum)
		}
	}
}

// TestSeededReproducibility: two agents with identical configuration and
// seed produce identical action sequences.
func TestSeededReproducibility(t *testing.T) {
	tp := TempParams{}
	tp.Defaults()
	a := newTestAgent(t, tp, 42)
	b := newTestAgent(t, tp, 42)
	for trl := 0; trl < 30; trl++ {
		aa := a.SelectAction()
		ba := b.SelectAction()
		if aa != ba {
			t.Fatalf("trial %v: actions diverged: %v vs %v", trl, aa, ba)
		}
		r := float64(trl % 2)
		a.Update(aa, r)
		b.Update(ba, r)
	}
}
