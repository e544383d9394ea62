// Copyright (c) 2026, The TGC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandit

import (
	"github.com/ccnsim/tgc/thermo"
	"github.com/emer/emergent/params"
)

// PhenoSets is the phenotype battery configuration -- Base is always
// applied (and is itself the Healthy configuration), and the named
// override sets apply on top of that.
var PhenoSets = params.Sets{
	{Name: "Base", Desc: "healthy thermostat: moderate cooling, easily-triggered reheating", Sheets: params.Sheets{
		"Agent": &params.Sheet{
			{Sel: "Agent", Desc: "standard adaptive configuration",
				Params: params.Params{
					"Agent.Learn.Lrate":    "0.1",
					"Agent.Temp.Adapt":     "true",
					"Agent.Temp.Init":      "1",
					"Agent.Temp.Floor":     "0.01",
					"Agent.Temp.Cool":      "0.95",
					"Agent.Temp.ReheatThr": "1.5",
					"Agent.Temp.Reheat":    "0.5",
					"Agent.Temp.ErrDecay":  "0.9",
				}},
		},
	}},
	{Name: "Static", Desc: "frozen temperature -- non-adaptive control baseline", Sheets: params.Sheets{
		"Agent": &params.Sheet{
			{Sel: "Agent", Desc: "thermostat off",
				Params: params.Params{
					"Agent.Temp.Adapt": "false",
				}},
		},
	}},
	{Name: "LowCool", Desc: "cooling rate near 1 -- failure to stabilize", Sheets: params.Sheets{
		"Agent": &params.Sheet{
			{Sel: "Agent", Desc: "effectively no cooling",
				Params: params.Params{
					"Agent.Temp.Cool": "0.999",
				}},
		},
	}},
	{Name: "NoReheat", Desc: "unreachable reheat threshold with strong cooling -- failure to destabilize", Sheets: params.Sheets{
		"Agent": &params.Sheet{
			{Sel: "Agent", Desc: "cooling only",
				Params: params.Params{
					"Agent.Temp.Cool":      "0.85",
					"Agent.Temp.ReheatThr": "1e308",
				}},
		},
	}},
}

// ApplyPheno applies the Base configuration and then the named phenotype
// override set (if any) to the given agent, re-validating and
// re-initializing it afterward.  setMsg prints each parameter set, for
// debugging.
func ApplyPheno(ag *thermo.Agent, ph thermo.Phenotype, setMsg bool) error {
	if err := applySet(ag, "Base", setMsg); err != nil {
		return err
	}
	if ph != thermo.Healthy { // Base is the Healthy configuration
		if err := applySet(ag, ph.String(), setMsg); err != nil {
			return err
		}
	}
	if err := ag.Learn.Validate(); err != nil {
		return err
	}
	if err := ag.Temp.Validate(); err != nil {
		return err
	}
	ag.Init()
	return nil
}

func applySet(ag *thermo.Agent, setNm string, setMsg bool) error {
	pset, err := PhenoSets.SetByNameTry(setNm)
	if err != nil {
		return err
	}
	psh, err := pset.SheetByNameTry("Agent")
	if err != nil {
		return err
	}
	for _, sl := range *psh {
		if err := sl.Params.Apply(ag, setMsg); err != nil {
			return err
		}
	}
	return nil
}
