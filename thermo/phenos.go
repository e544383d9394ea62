// Copyright (c) 2026, The TGC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"

	"github.com/goki/ki/kit"
)

// Phenotype indexes the standard thermostat configurations used in the
// phenotype battery.  All phenotypes share the same agent type and update
// routine -- only the fixed TempParams configuration differs.
type Phenotype int

var KiT_Phenotype = kit.Enums.AddEnum(PhenotypeN, false, nil)

func (ph Phenotype) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ph) }
func (ph *Phenotype) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ph, b) }

const (
	// Static freezes the temperature at its initial value -- the
	// non-adaptive control baseline.  Its error integrator is never used.
	Static Phenotype = iota

	// Healthy is the default configuration: moderate cooling with
	// moderate, easily-triggered reheating.
	Healthy

	// LowCool has a cooling rate near 1 (effectively no cooling),
	// modeling a failure to stabilize onto an exploitative policy.
	LowCool

	// NoReheat combines strong cooling with an unreachable reheat
	// threshold, modeling a failure to destabilize and re-explore.
	NoReheat

	PhenotypeN
)

func (ph Phenotype) String() string {
	switch ph {
	case Static:
		return "Static"
	case Healthy:
		return "Healthy"
	case LowCool:
		return "LowCool"
	case NoReheat:
		return "NoReheat"
	}
	return "PhenotypeN"
}

// PhenoTempParams returns the standard TempParams for the given phenotype,
// as overrides on top of Defaults (which are the Healthy configuration).
func PhenoTempParams(ph Phenotype) TempParams {
	tp := TempParams{}
	tp.Defaults()
	switch ph {
	case Static:
		tp.Adapt = false
	case LowCool:
		tp.Cool = 0.999
	case NoReheat:
		tp.Cool = 0.85
		tp.ReheatThr = math.MaxFloat64
	}
	return tp
}
