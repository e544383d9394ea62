// Copyright (c) 2026, The TGC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package tgc is the overall repository for the Thermostatic Gain Control (TGC)
model implemented in the Go language (golang): latent decision-making state
evolving under hysteresis, summarized into derived public signals (gain,
entropy).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* cusp: the catastrophe (bifurcation) agent -- a latent state that tracks
the nearest locally-stable equilibrium of a cusp-catastrophe cubic potential
as an external drive varies, with a minimum-distance hysteresis selection
rule and an exponential gain transform.

* thermo: the thermostatic learning agent -- a two-action softmax
value-learner whose decision temperature is regulated by a two-sided
thermostat: multiplicative cooling on reward, and additive reheating driven
by a leaky integrator of negative prediction errors.

* cfp: the Catastrophe Forcing Protocol -- symmetric stress-ramp drive
sequences and a battery runner that sweeps cusp agents up and down the ramp,
logging full trajectories and computing the hysteresis loop area.

* bandit: a two-armed bandit reward-schedule environment with phased
(reversing) reward probabilities, and a battery runner for the standard
thermostat phenotypes.

* examples: these compile into runnable programs -- examples/cfp runs the
stress-ramp protocol and examples/bandit runs the phenotype battery, both
saving trajectory tables for plotting.
*/
package tgc
