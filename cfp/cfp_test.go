// Copyright (c) 2026, The TGC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfp

import (
	"math"
	"testing"
)

const difTol = 1.0e-6

func TestRampSequence(t *testing.T) {
	rp := Ramp{}
	rp.Defaults()
	seq := rp.Sequence()
	if len(seq) != 2*rp.NStep {
		t.Fatalf("sequence length: got %v, want %v", len(seq), 2*rp.NStep)
	}
	if seq[0] != rp.Min || seq[2*rp.NStep-1] != rp.Min {
		t.Errorf("sequence endpoints: got %v, %v, want %v", seq[0], seq[2*rp.NStep-1], rp.Min)
	}
	if dif := math.Abs(seq[rp.NStep-1] - rp.Max); dif > difTol {
		t.Errorf("ascending peak: got %v, want %v", seq[rp.NStep-1], rp.Max)
	}
	if dif := math.Abs(seq[rp.NStep] - rp.Max); dif > difTol {
		t.Errorf("descending start: got %v, want %v", seq[rp.NStep], rp.Max)
	}
	// symmetric: descending pass revisits ascending drives in reverse
	for i := 0; i < rp.NStep; i++ {
		if dif := math.Abs(seq[i] - seq[2*rp.NStep-1-i]); dif > difTol {
			t.Errorf("asymmetric ramp at step %v: %v vs %v", i, seq[i], seq[2*rp.NStep-1-i])
			break
		}
	}
}

// TestRampMinSteps: Update enforces the minimum of 2 steps per direction,
// so a degenerate NStep never produces Inf/NaN drives.
func TestRampMinSteps(t *testing.T) {
	rp := Ramp{Min: -4, Max: 4, NStep: 1}
	seq := rp.Sequence()
	if rp.NStep != 2 {
		t.Errorf("NStep after Update: got %v, want 2", rp.NStep)
	}
	if len(seq) != 4 {
		t.Fatalf("sequence length: got %v, want 4", len(seq))
	}
	for i, e := range seq {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			t.Errorf("step %v: drive %v", i, e)
		}
	}
}

func TestRunLogs(t *testing.T) {
	ss := &Sim{}
	ss.Defaults()
	ss.Ramp.NStep = 50
	ss.Config()
	ss.Run()

	if ss.Log.Rows != 2*ss.Ramp.NStep {
		t.Fatalf("log rows: got %v, want %v", ss.Log.Rows, 2*ss.Ramp.NStep)
	}
	for _, ag := range ss.Agents {
		if len(ag.GainHist) != 2*ss.Ramp.NStep {
			t.Errorf("omega %g: history length %v, want %v", ag.Params.Omega, len(ag.GainHist), 2*ss.Ramp.NStep)
		}
	}
	if ss.Log.CellFloat("Phase", 0) != 0 || ss.Log.CellFloat("Phase", ss.Log.Rows-1) != 1 {
		t.Errorf("phase column endpoints wrong")
	}
	if ss.GainRange.Min <= 0 {
		t.Errorf("gain range min: got %v, want > 0", ss.GainRange.Min)
	}
	if !(ss.GainRange.Max > ss.GainRange.Min) {
		t.Errorf("gain range degenerate: %v", ss.GainRange)
	}
}

// TestHystAreas: bistable agents enclose a strictly positive loop area,
// monostable agents do not.
func TestHystAreas(t *testing.T) {
	ss := &Sim{}
	ss.Defaults()
	ss.Omegas = []float64{-0.5, 1.5, 3}
	ss.Config()
	ss.Run()
	areas := ss.Areas()

	if areas[0] > difTol {
		t.Errorf("omega -0.5: hysteresis area %v, want ~0", areas[0])
	}
	if areas[1] <= difTol {
		t.Errorf("omega 1.5: hysteresis area %v, want > 0", areas[1])
	}
	if areas[2] <= areas[1] {
		t.Errorf("deeper basins should enclose more area: omega 3 area %v <= omega 1.5 area %v", areas[2], areas[1])
	}
}
