// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/chleh/MFrontGenericInterfaceSupport/hyp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/tsr"
	"gonum.org/v1/gonum/mat"
)

// DruckerPrager implements Drucker-Prager plasticity with linear isotropic hardening for small
// strains. Stresses are positive in tension; p = -tr(σ)/3 and q is the von Mises stress.
// The yield function is f = q - M p - qy0 - H α
//  Material properties:
//   YoungModulus, PoissonRatio
//   YieldStress (qy0) and FrictionSlope (M; optional; default 0) or Cohesion and FrictionAngle (φ in degrees)
//   DilatancySlope (Mb; optional; default M), HardeningModulus (H; optional; default 0)
//   MassDensity (optional)
//  Internal state variables:
//   EquivalentPlasticStrain (α; required) and ElasticStrain (optional)
type DruckerPrager struct {
	Ncp  int // number of stress components
	Cone int // Mohr-Coulomb cone matched when using Cohesion and FrictionAngle; see Mmatch

	// positions in material properties; -1 if not declared
	iE, iNu, iQy0, iM, iC, iPhi, iMb, iH, iRho int

	// offsets in internal state variables
	iAlp int // EquivalentPlasticStrain
	iEe  int // ElasticStrain; -1 if not declared
}

// dpParams holds the parameters evaluated at one point
type dpParams struct {
	K, G, M, Mb, qy0, H float64
}

// add model to factory
func init() {
	bhv.Register("druckerprager", func() bhv.Integrator { return new(DruckerPrager) })
}

// Init checks the behaviour description and initialises the model
func (o *DruckerPrager) Init(b *bhv.Behaviour) (err error) {

	// gradients and forces
	o.Ncp, err = init_small_strain("druckerprager", b)
	if err != nil {
		return
	}
	o.Cone = 0
	if b.Hypothesis != hyp.Tridimensional {
		o.Cone = 2
	}

	// material properties
	pos, err := mps_positions("druckerprager", b, "YoungModulus", "PoissonRatio", "YieldStress", "FrictionSlope",
		"Cohesion", "FrictionAngle", "DilatancySlope", "HardeningModulus", "MassDensity")
	if err != nil {
		return
	}
	o.iE, o.iNu, o.iQy0, o.iM, o.iC, o.iPhi, o.iMb, o.iH, o.iRho = pos[0], pos[1], pos[2], pos[3], pos[4], pos[5], pos[6], pos[7], pos[8]
	if o.iE < 0 || o.iNu < 0 {
		return chk.Err("druckerprager: YoungModulus and PoissonRatio must be declared as material properties")
	}
	matched := o.iC >= 0 && o.iPhi >= 0
	if o.iQy0 < 0 && !matched {
		return chk.Err("druckerprager: YieldStress or both Cohesion and FrictionAngle must be declared as material properties")
	}
	if o.iQy0 >= 0 && matched {
		return chk.Err("druckerprager: YieldStress and (Cohesion, FrictionAngle) cannot be declared together")
	}

	// internal state variables
	v, err := bhv.GetVariable(b.Isvs, "EquivalentPlasticStrain")
	if err != nil || v.Type != bhv.Scalar {
		return chk.Err("druckerprager: EquivalentPlasticStrain must be declared as a scalar internal state variable")
	}
	o.iAlp, err = bhv.VariableOffset(b.Isvs, "EquivalentPlasticStrain", b.Hypothesis)
	if err != nil {
		return
	}
	o.iEe = -1
	if v, e := bhv.GetVariable(b.Isvs, "ElasticStrain"); e == nil {
		if v.Type != bhv.Stensor {
			return chk.Err("druckerprager: ElasticStrain must be a symmetric tensor")
		}
		o.iEe, err = bhv.VariableOffset(b.Isvs, "ElasticStrain", b.Hypothesis)
		if err != nil {
			return
		}
	}
	if io.Verbose {
		io.Pf("druckerprager: %v; ncp=%d cone=%d\n", b.Hypothesis, o.Ncp, o.Cone)
	}
	return
}

// Integrate updates the stress with a return mapping starting from the state at the
// beginning of the time step.
//  Prediction types only compute the elastic operator
func (o *DruckerPrager) Integrate(d *bhv.DataView) int {

	// parameters
	prm, err := o.params(d.S1.MaterialProperties)
	if err != nil {
		bhv.SetMessage(d.ErrorMessage, err.Error())
		return -1
	}

	// prediction
	if d.Type.IsPrediction() {
		if d.K != nil {
			o.elasticD(mat.NewDense(o.Ncp, o.Ncp, d.K), &prm)
		}
		return 1
	}

	// trial stress
	var Δε, σtr [6]float64
	σ0 := d.S0.ThermodynamicForces
	σ := d.S1.ThermodynamicForces
	trΔε := 0.0
	for i := 0; i < o.Ncp; i++ {
		Δε[i] = d.S1.Gradients[i] - d.S0.Gradients[i]
		if i < 3 {
			trΔε += Δε[i]
		}
	}
	for i := 0; i < o.Ncp; i++ {
		σtr[i] = σ0[i] + prm.K*trΔε*tsr.Im[i] + 2.0*prm.G*(Δε[i]-trΔε*tsr.Im[i]/3.0)
	}
	ptr, qtr := tsr.M_p(σtr[:o.Ncp]), tsr.M_q(σtr[:o.Ncp])

	// trial yield function
	α0 := d.S0.InternalStateVariables[o.iAlp]
	α := α0
	ftr := qtr - prm.M*ptr - prm.qy0 - prm.H*α0

	// elastic update
	var Δγ float64
	loading, apex := false, false
	if ftr <= 0.0 {
		copy(σ, σtr[:o.Ncp])
	} else {

		// elastoplastic update
		loading = true
		hp := 3.0*prm.G + prm.K*prm.M*prm.Mb + prm.H
		Δγ = ftr / hp
		if qtr-Δγ*3.0*prm.G >= 0 {
			α = α0 + Δγ
			pnew := ptr + Δγ*prm.K*prm.Mb
			m := 1.0 - Δγ*3.0*prm.G/qtr
			for i := 0; i < o.Ncp; i++ {
				σ[i] = m*(σtr[i]+ptr*tsr.Im[i]) - pnew*tsr.Im[i]
			}
		} else {

			// return to apex
			apex = true
			Δγ = (-prm.M*ptr - prm.qy0 - prm.H*α0) / (3.0*prm.K*prm.M + prm.H)
			α = α0 + Δγ
			pnew := ptr + Δγ*3.0*prm.K
			for i := 0; i < o.Ncp; i++ {
				σ[i] = -pnew * tsr.Im[i]
			}
		}
	}
	d.S1.InternalStateVariables[o.iAlp] = α

	// elastic strains and energies
	var εe0, εe1 [6]float64
	o.elasticStrain(εe0[:o.Ncp], σ0, &prm)
	o.elasticStrain(εe1[:o.Ncp], σ, &prm)
	if o.iEe >= 0 {
		copy(d.S1.InternalStateVariables[o.iEe:o.iEe+o.Ncp], εe1[:o.Ncp])
	}
	var se, dw float64
	for i := 0; i < o.Ncp; i++ {
		se += 0.5 * σ[i] * εe1[i]
		dw += σ[i] * (Δε[i] - εe1[i] + εe0[i])
	}
	*d.S1.StoredEnergy = se
	*d.S1.DissipatedEnergy = *d.S0.DissipatedEnergy + dw

	// tangent operator
	if d.K != nil {
		D := mat.NewDense(o.Ncp, o.Ncp, d.K)
		switch {
		case !loading || d.Type == bhv.IntegrationElasticOperator || d.Type == bhv.IntegrationSecantOperator:
			o.elasticD(D, &prm)
		case d.Type == bhv.IntegrationTangentOperator:
			o.continuumD(D, σ, &prm)
		case apex:
			o.apexD(D, &prm)
		default:
			o.consistentD(D, σ, Δγ, &prm)
		}
	}

	// speed of sound
	if !set_speed_of_sound("druckerprager", d, o.iRho, prm.K+4.0*prm.G/3.0) {
		return -1
	}
	return 1
}

// params evaluates the parameters at one point
func (o *DruckerPrager) params(mps []float64) (p dpParams, err error) {
	E, ν := mps[o.iE], mps[o.iNu]
	if E <= 0 || ν <= -1 || ν >= 0.5 {
		return p, chk.Err("druckerprager: invalid parameters: E=%g, nu=%g", E, ν)
	}
	p.K = E / (3.0 * (1.0 - 2.0*ν))
	p.G = E / (2.0 * (1.0 + ν))
	if o.iQy0 >= 0 {
		p.qy0 = mps[o.iQy0]
		if o.iM >= 0 {
			p.M = mps[o.iM]
		}
	} else {
		p.M, p.qy0, err = Mmatch(mps[o.iC], mps[o.iPhi], o.Cone)
		if err != nil {
			return
		}
	}
	p.Mb = p.M
	if o.iMb >= 0 {
		p.Mb = mps[o.iMb]
	}
	if o.iH >= 0 {
		p.H = mps[o.iH]
	}
	if p.M < 0 || p.Mb < 0 || p.qy0 < 0 {
		return p, chk.Err("druckerprager: invalid parameters: M=%g, Mb=%g, qy0=%g", p.M, p.Mb, p.qy0)
	}
	return
}

// elasticStrain computes εe = dev(σ)/(2G) + tr(σ)/(9K) I
func (o *DruckerPrager) elasticStrain(εe, σ []float64, p *dpParams) {
	trσ := σ[0] + σ[1] + σ[2]
	for i := 0; i < o.Ncp; i++ {
		εe[i] = (σ[i]-trσ*tsr.Im[i]/3.0)/(2.0*p.G) + trσ*tsr.Im[i]/(9.0*p.K)
	}
}

// elasticD computes D = K I⊗I + 2 G Psd
func (o *DruckerPrager) elasticD(D *mat.Dense, p *dpParams) {
	for i := 0; i < o.Ncp; i++ {
		for j := 0; j < o.Ncp; j++ {
			D.Set(i, j, p.K*tsr.Im[i]*tsr.Im[j]+2.0*p.G*tsr.Psd[i][j])
		}
	}
}

// apexD computes D = dσ_new/dε_new after a return to the apex
func (o *DruckerPrager) apexD(D *mat.Dense, p *dpParams) {
	a1 := p.K * p.H / (3.0*p.K*p.M + p.H)
	for i := 0; i < o.Ncp; i++ {
		for j := 0; j < o.Ncp; j++ {
			D.Set(i, j, a1*tsr.Im[i]*tsr.Im[j])
		}
	}
}

// consistentD computes D = dσ_new/dε_new consistent with the return mapping
func (o *DruckerPrager) consistentD(D *mat.Dense, σ []float64, Δγ float64, p *dpParams) {
	var n [6]float64
	pn, q := tsr.M_p(σ), tsr.M_q(σ)
	qtr := q + Δγ*3.0*p.G
	m := 1.0 - Δγ*3.0*p.G/qtr
	nstr := tsr.SQ2by3 * qtr // norm(str)
	for i := 0; i < o.Ncp; i++ {
		n[i] = (σ[i] + pn*tsr.Im[i]) / (m * nstr) // unit(str)
	}
	hp := 3.0*p.G + p.K*p.M*p.Mb + p.H
	a1 := p.K - p.K*p.K*p.Mb*p.M/hp
	a2 := -2.0 * p.G * p.K * p.Mb * tsr.SQ3by2 / hp
	b1 := -tsr.SQ6 * p.G * p.M * p.K / hp
	b2 := 6.0 * p.G * p.G * (Δγ/qtr - 1.0/hp)
	for i := 0; i < o.Ncp; i++ {
		for j := 0; j < o.Ncp; j++ {
			D.Set(i, j, 2.0*p.G*m*tsr.Psd[i][j]+
				a1*tsr.Im[i]*tsr.Im[j]+
				a2*tsr.Im[i]*n[j]+
				b1*n[i]*tsr.Im[j]+
				b2*n[i]*n[j])
		}
	}
}

// continuumD computes the continuum elastoplastic modulus
func (o *DruckerPrager) continuumD(D *mat.Dense, σ []float64, p *dpParams) {
	o.elasticD(D, p)
	var s [6]float64
	d1 := p.K*p.Mb*p.M + 3.0*p.G + p.H
	a1 := p.K * p.K * p.Mb * p.M / d1
	a2 := tsr.SQ6 * p.K * p.G * p.Mb / d1
	a3 := tsr.SQ6 * p.K * p.G * p.M / d1
	a4 := 6.0 * p.G * p.G / d1
	sno, _, _ := tsr.M_devσ(s[:o.Ncp], σ) // s := dev(σ)
	if sno == 0 {
		return
	}
	for i := 0; i < o.Ncp; i++ {
		for j := 0; j < o.Ncp; j++ {
			D.Set(i, j, D.At(i, j)-(a1*tsr.Im[i]*tsr.Im[j]+
				a2*tsr.Im[i]*s[j]/sno+
				a3*s[i]*tsr.Im[j]/sno+
				a4*s[i]*s[j]/(sno*sno)))
		}
	}
}
