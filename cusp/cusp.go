// Copyright (c) 2026, The TGC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cusp implements the bifurcation engine of the TGC model: a latent
decision state x that occupies a locally-stable equilibrium of the
cusp-catastrophe potential

	V(x) = x^4/4 - Omega*x^2/2 - E*x

where Omega is a fixed trait parameter (the stability factor) and E is a
time-varying external drive.  The stationary points satisfy the cubic

	x^3 - Omega*x - E = 0

and a stationary point is stable (a local minimum) iff 3x^2 - Omega > 0.
For Omega <= 0 the potential is monostable (one equilibrium for every
drive); for Omega > 0 it is bistable whenever |E| < sqrt(4*Omega^3/27).

The agent applies the adiabatic assumption with a minimum-distance
selection rule: at each drive step it moves to the stable equilibrium
closest to its previous state, sticking to its current basin rather than
jumping to the global minimum.  This produces hysteresis: sweeping the
drive up and then back down traces two different gain curves whenever
Omega > 0.

The public output signal is the gain exp(x), which is strictly positive
for any finite state.
*/
package cusp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ImagTol is the tolerance on the imaginary part of a companion-matrix
// eigenvalue for classifying it as a purely real root of the cubic.
const ImagTol = 1e-8

// Params are the fixed trait parameters for a cusp agent.
type Params struct {
	Omega float64 `def:"1.5" desc:"stability factor controlling the topology of the potential -- <= 0 produces a single equilibrium at every drive (monostable), > 0 admits bistability and hysteresis, with larger values producing deeper basins and a wider bistable drive range"`
}

func (cp *Params) Defaults() {
	cp.Omega = 1.5
}

func (cp *Params) Update() {
}

// CritDrive returns the critical drive magnitude E_crit = sqrt(4*Omega^3/27)
// bounding the bistable region: for |E| < E_crit there are two stable
// equilibria, for |E| > E_crit only one.  Returns 0 for Omega <= 0
// (no bistable region exists).
func (cp *Params) CritDrive() float64 {
	if cp.Omega <= 0 {
		return 0
	}
	return math.Sqrt(4 * cp.Omega * cp.Omega * cp.Omega / 27)
}

// Stable reports whether x is a local minimum of the potential:
// d^2V/dx^2 = 3x^2 - Omega > 0.
func (cp *Params) Stable(x float64) bool {
	return 3*x*x-cp.Omega > 0
}

// StableRoots returns the locally-stable equilibria of the potential at the
// given drive, in ascending order.  All roots (real and complex) of the
// cubic x^3 - Omega*x - E are found as the eigenvalues of its companion
// matrix; roots with |imag| > ImagTol are discarded, and the remaining real
// roots are filtered by the Stable test.  Returns 0, 1, or 2 values for
// this cubic family.  Pure function of (Omega, drive).
func (cp *Params) StableRoots(drive float64) []float64 {
	// companion matrix of the monic cubic x^3 + 0*x^2 - Omega*x - drive
	c := mat.NewDense(3, 3, []float64{
		0, 0, drive,
		1, 0, cp.Omega,
		0, 1, 0,
	})
	var eig mat.Eigen
	if !eig.Factorize(c, mat.EigenNone) {
		return nil
	}
	var roots []float64
	for _, ev := range eig.Values(nil) {
		if math.Abs(imag(ev)) > ImagTol {
			continue
		}
		if r := real(ev); cp.Stable(r) {
			roots = append(roots, r)
		}
	}
	sort.Float64s(roots)
	return roots
}

// Agent is a single cusp-catastrophe agent: fixed Params plus the hysteretic
// latent state and its trajectory.  The histories are owned by the agent and
// are append-only -- callers only read them.  Agents are independent,
// unshared mutable objects: a batch of agents can run in any order or in
// parallel with no coordination.
type Agent struct {
	Params Params `view:"inline" desc:"fixed trait parameters"`

	// current latent state x -- always one of the stable roots at the most
	// recently applied drive, or unchanged from the prior step if no stable
	// root was found (numerical fallback)
	State float64 `inactive:"+"`

	// current gain exp(State) -- the public output signal, strictly positive
	Gain float64 `inactive:"+"`

	// latent state trajectory, one entry per UpdateState call
	StateHist []float64 `view:"-"`

	// gain trajectory, one entry per UpdateState call
	GainHist []float64 `view:"-"`
}

// NewAgent returns a new agent with the given stability factor,
// initialized at the baseline equilibrium for zero drive.
func NewAgent(omega float64) *Agent {
	ag := &Agent{}
	ag.Params.Omega = omega
	ag.Params.Update()
	ag.Init()
	return ag
}

// Init sets the latent state to the largest stable root at zero drive
// (the high-activation branch), or 0 if no stable root exists there --
// a degenerate-configuration fallback, not an error.  Histories are reset.
func (ag *Agent) Init() {
	ag.State = 0
	if roots := ag.Params.StableRoots(0); len(roots) > 0 {
		ag.State = roots[len(roots)-1]
	}
	ag.Gain = math.Exp(ag.State)
	ag.StateHist = nil
	ag.GainHist = nil
}

// UpdateState applies one drive step: the state moves to the stable
// equilibrium at the given drive that is closest to the previous state
// (ties resolve to the smaller root).  If no stable root exists -- a
// floating-point edge case at the boundary of stability -- the previous
// state is retained unchanged.  The new state and gain are appended to the
// histories, and the gain is returned.
func (ag *Agent) UpdateState(drive float64) float64 {
	roots := ag.Params.StableRoots(drive)
	if len(roots) > 0 {
		sel := roots[0]
		min := math.Abs(roots[0] - ag.State)
		for _, r := range roots[1:] {
			if d := math.Abs(r - ag.State); d < min {
				min = d
				sel = r
			}
		}
		ag.State = sel
	}
	ag.Gain = math.Exp(ag.State)
	ag.StateHist = append(ag.StateHist, ag.State)
	ag.GainHist = append(ag.GainHist, ag.Gain)
	return ag.Gain
}
