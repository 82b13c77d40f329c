// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Precession-nutation convention
type Convention int

const (
	Conv06 Convention = iota // IAU 2006/2000, CIO based
	Conv00                   // IAU 2000, equinox based
)

// Earth rotation rate per second of UT1 [rad/s]
const omegaUT1 = 2 * PI * 1.00273781191135448 / DAYSEC

// ------------------------------------
// Options
// ------------------------------------

type FrameOpt struct {
	Conv        Convention     // Precession-nutation convention (default: Conv06)
	Nut         NutationModel  // Nutation series (default: Nut00A)
	TIO         bool           // Apply TIO locator s' (default: true)
	OceanEop    bool           // Diurnal/semidiurnal ocean tide terms on pole and UT1 (default: true)
	OceanEopTab *OceanEopTable // Ocean tide lines (default: principal lines)
	ZonalUT1    bool           // Restore zonal tides to UT1, for series holding UT1R (default: false)
	CelPole     bool           // Apply celestial pole offsets dX, dY (default: true)
}

func NewFrameOpt() *FrameOpt {
	return &FrameOpt{
		Conv:        Conv06,
		Nut:         Nut00A,
		TIO:         true,
		OceanEop:    true,
		OceanEopTab: NewOceanEopTable(),
		ZonalUT1:    false,
		CelPole:     true,
	}
}

// ------------------------------------
// Frame state
// ------------------------------------

// Per-call output of the frame engine, owned by the caller
type FrameState struct {
	Time GTime
	Conv Convention

	Rot       *mat.Dense // TRS -> CRS
	DRotDXp   *mat.Dense // Partial w.r.t. pole x [1/rad] (nil unless requested)
	DRotDYp   *mat.Dense // Partial w.r.t. pole y [1/rad]
	DRotDUT1  *mat.Dense // Partial w.r.t. UT1 [1/s]
	DRotDDpsi *mat.Dense // Partial w.r.t. nutation in longitude [1/rad]
	DRotDDeps *mat.Dense // Partial w.r.t. nutation in obliquity [1/rad]

	Xp, Yp     float64 // Pole including tidal terms [rad]
	UT1mUTC    float64 // [s]
	Dpsi, Deps float64 // Nutation [rad]
	X, Y, S    float64 // CIP coordinates and CIO locator [rad]
	ERA        float64 // Earth rotation angle [rad]
	GMST       float64 // [rad]
	GAST       float64 // [rad]
	EopInRange bool    // EOP interpolated (false: held flat or missing)
}

// Terrestrial to celestial vector
func (fs *FrameState) TrsToCrs(v Vec3) Vec3 {
	return mulVec(fs.Rot, v)
}

// Celestial to terrestrial vector
func (fs *FrameState) CrsToTrs(v Vec3) Vec3 {
	return mulVec(fs.Rot.T(), v)
}

// ------------------------------------
// Engine
// ------------------------------------

// TRS <-> CRS rotation engine over a shared EOP series
type FrameEngine struct {
	eop *EopSeries
	opt FrameOpt
}

func NewFrameEngine(eop *EopSeries, opt *FrameOpt) *FrameEngine {
	if opt == nil {
		opt = NewFrameOpt()
	}
	return &FrameEngine{eop: eop, opt: *opt}
}

func (fe *FrameEngine) Opt() FrameOpt {
	return fe.opt
}

// Arguments of the rotation construction
type rotArgs struct {
	conv       Convention
	t          float64 // TT Julian centuries since J2000.0
	fa         FundArgs
	era        float64 // Earth rotation angle [rad]
	xp, yp, sp float64 // Pole and TIO locator [rad]
	dpsi, deps float64 // Nutation [rad]
	dx, dy     float64 // Celestial pole offsets [rad]
}

type rotOut struct {
	rot, dxp, dyp, dut1, ddpsi, ddeps *mat.Dense
	x, y, s, gmst, gast               float64
}

// Rotation and partials for epoch t
func (fe *FrameEngine) Compute(t GTime, partials bool) *FrameState {
	a, ut1, in := fe.prepare(t)
	o := buildRot(&a, partials)
	fs := &FrameState{
		Time:       t,
		Conv:       a.conv,
		Rot:        o.rot,
		DRotDXp:    o.dxp,
		DRotDYp:    o.dyp,
		DRotDUT1:   o.dut1,
		DRotDDpsi:  o.ddpsi,
		DRotDDeps:  o.ddeps,
		Xp:         a.xp,
		Yp:         a.yp,
		UT1mUTC:    ut1,
		Dpsi:       a.dpsi,
		Deps:       a.deps,
		X:          o.x,
		Y:          o.y,
		S:          o.s,
		ERA:        a.era,
		GMST:       o.gmst,
		GAST:       o.gast,
		EopInRange: in,
	}
	if DBG_ >= 4 {
		PrintB(t, "frame: xp=%.3e yp=%.3e ut1-utc=%.7f dpsi=%.3e deps=%.3e gast=%.9f\n",
			a.xp, a.yp, fs.UT1mUTC, a.dpsi, a.deps, o.gast)
		PrintMat(o.rot)
	}
	return fs
}

// Rotation arguments with tidal EOP terms applied, UT1-UTC [s]
func (fe *FrameEngine) prepare(t GTime) (rotArgs, float64, bool) {
	mjd := t.MjdUTC()
	tt := t.CenturiesTT()
	eop, in := fe.eop.Interp(mjd)

	a := rotArgs{conv: fe.opt.Conv, t: tt, fa: NewFundArgs(tt)}
	a.xp = eop.Xp * AS2R
	a.yp = eop.Yp * AS2R
	ut1 := eop.UT1mTAI + LeapSec(mjd)
	if fe.opt.ZonalUT1 {
		ut1 += ZonalTideUT1(&a.fa)
	}
	if fe.opt.OceanEop {
		gmst := gmst06(EarthRotationAngle(mjd+ut1/DAYSEC), tt)
		tb := fe.opt.OceanEopTab
		if tb == nil {
			tb = NewOceanEopTable()
		}
		dxp, dyp, dut1 := tb.Eval(&a.fa, gmst)
		a.xp += dxp
		a.yp += dyp
		ut1 += dut1
	}
	a.era = EarthRotationAngle(mjd + ut1/DAYSEC)
	if fe.opt.TIO {
		a.sp = TIOLocator(tt)
	}
	if fe.opt.CelPole {
		a.dx = eop.DX * AS2R
		a.dy = eop.DY * AS2R
	}
	if a.conv == Conv00 {
		a.dpsi, a.deps = Nutation00(tt, fe.opt.Nut)
	} else {
		a.dpsi, a.deps = Nutation06(tt, fe.opt.Nut)
	}
	return a, ut1, in
}

// Earth rotation angle at a UT1 MJD [rad]
func EarthRotationAngle(mjdUT1 float64) float64 {
	d := mjdUT1 - (J2000 - MJD0)
	f := math.Mod(d, 1)
	return NormRad(2 * PI * (f + 0.7790572732640 + 0.00273781191135448*d))
}

// TIO locator s' [rad]
func TIOLocator(t float64) float64 {
	return -47e-6 * t * AS2R
}

// Greenwich mean sidereal time (IAU 2006) [rad]
func gmst06(era, t float64) float64 {
	return NormRad(era + (0.014506+(4612.156534+(1.3915817+(-0.00000044+(-0.000029956-0.0000000368*t)*t)*t)*t)*t)*AS2R)
}

// Greenwich mean sidereal time (IAU 2000) [rad]
func gmst00(era, t float64) float64 {
	return NormRad(era + (0.014506+(4612.15739966+(1.39667721+(-0.00009344+0.00001882*t)*t)*t)*t)*AS2R)
}

// Greenwich mean sidereal time for a UT1 MJD and TT centuries [rad]
func GMST(mjdUT1, t float64, conv Convention) float64 {
	if conv == Conv00 {
		return gmst00(EarthRotationAngle(mjdUT1), t)
	}
	return gmst06(EarthRotationAngle(mjdUT1), t)
}

// Series term in micro-arcsec (s*sin + c*cos)
type seriesTerm struct {
	n    [8]int // Multipliers of l, l', F, D, Om, Ve, E, pA
	s, c float64
}

// Complementary terms of the equation of the equinoxes
var eectTerms0 = [...]seriesTerm{
	{[8]int{0, 0, 0, 0, 1, 0, 0, 0}, 2640.96, -0.39},
	{[8]int{0, 0, 0, 0, 2, 0, 0, 0}, 63.52, -0.02},
	{[8]int{0, 0, 2, -2, 3, 0, 0, 0}, 11.75, 0.01},
	{[8]int{0, 0, 2, -2, 1, 0, 0, 0}, 11.21, 0.01},
	{[8]int{0, 0, 2, -2, 2, 0, 0, 0}, -4.55, 0},
	{[8]int{0, 0, 2, 0, 3, 0, 0, 0}, 2.02, 0},
	{[8]int{0, 0, 2, 0, 1, 0, 0, 0}, 1.98, 0},
	{[8]int{0, 0, 0, 0, 3, 0, 0, 0}, -1.72, 0},
	{[8]int{0, 1, 0, 0, 1, 0, 0, 0}, -1.41, -0.01},
	{[8]int{0, 1, 0, 0, -1, 0, 0, 0}, -1.26, -0.01},
	{[8]int{1, 0, 0, 0, -1, 0, 0, 0}, -0.63, 0},
	{[8]int{1, 0, 0, 0, 1, 0, 0, 0}, -0.63, 0},
	{[8]int{0, 1, 2, -2, 3, 0, 0, 0}, 0.46, 0},
	{[8]int{0, 1, 2, -2, 1, 0, 0, 0}, 0.45, 0},
	{[8]int{0, 0, 4, -4, 4, 0, 0, 0}, 0.36, 0},
	{[8]int{0, 0, 1, -1, 1, -8, 12, 0}, -0.24, -0.12},
	{[8]int{0, 0, 2, 0, 0, 0, 0, 0}, 0.32, 0},
	{[8]int{0, 0, 2, 0, 2, 0, 0, 0}, 0.28, 0},
	{[8]int{1, 0, 2, 0, 3, 0, 0, 0}, 0.27, 0},
	{[8]int{1, 0, 2, 0, 1, 0, 0, 0}, 0.26, 0},
	{[8]int{0, 0, 2, -2, 0, 0, 0, 0}, -0.21, 0},
	{[8]int{0, 1, -2, 2, -3, 0, 0, 0}, 0.19, 0},
	{[8]int{0, 1, -2, 2, -1, 0, 0, 0}, 0.18, 0},
	{[8]int{0, 0, 0, 0, 0, 8, -13, -1}, -0.10, 0.05},
	{[8]int{0, 0, 0, 2, 0, 0, 0, 0}, 0.15, 0},
	{[8]int{2, 0, -2, 0, -1, 0, 0, 0}, -0.14, 0},
	{[8]int{1, 0, 0, -2, 1, 0, 0, 0}, 0.14, 0},
	{[8]int{0, 1, 2, -2, 2, 0, 0, 0}, -0.14, 0},
	{[8]int{1, 0, 0, -2, -1, 0, 0, 0}, 0.14, 0},
	{[8]int{0, 0, 4, -2, 4, 0, 0, 0}, 0.13, 0},
	{[8]int{0, 0, 2, -2, 4, 0, 0, 0}, -0.11, 0},
	{[8]int{1, 0, -2, 0, -3, 0, 0, 0}, 0.11, 0},
	{[8]int{1, 0, -2, 0, -1, 0, 0, 0}, 0.11, 0},
}

var eectTerms1 = [...]seriesTerm{
	{[8]int{0, 0, 0, 0, 1, 0, 0, 0}, -0.87, 0},
}

// CIO locator series (s + XY/2), by power of t
var s06Terms = [...][]seriesTerm{
	{
		{[8]int{0, 0, 0, 0, 1, 0, 0, 0}, -2640.73, 0.39},
		{[8]int{0, 0, 0, 0, 2, 0, 0, 0}, -63.53, 0.02},
		{[8]int{0, 0, 2, -2, 3, 0, 0, 0}, -11.75, -0.01},
		{[8]int{0, 0, 2, -2, 1, 0, 0, 0}, -11.21, -0.01},
		{[8]int{0, 0, 2, -2, 2, 0, 0, 0}, 4.57, 0},
		{[8]int{0, 0, 2, 0, 3, 0, 0, 0}, -2.02, 0},
		{[8]int{0, 0, 2, 0, 1, 0, 0, 0}, -1.98, 0},
		{[8]int{0, 0, 0, 0, 3, 0, 0, 0}, 1.72, 0},
		{[8]int{0, 1, 0, 0, 1, 0, 0, 0}, 1.41, 0.01},
		{[8]int{0, 1, 0, 0, -1, 0, 0, 0}, 1.26, 0.01},
		{[8]int{1, 0, 0, 0, -1, 0, 0, 0}, 0.63, 0},
		{[8]int{1, 0, 0, 0, 1, 0, 0, 0}, 0.63, 0},
		{[8]int{0, 1, 2, -2, 3, 0, 0, 0}, -0.46, 0},
		{[8]int{0, 1, 2, -2, 1, 0, 0, 0}, -0.45, 0},
		{[8]int{0, 0, 4, -4, 4, 0, 0, 0}, -0.36, 0},
		{[8]int{0, 0, 1, -1, 1, -8, 12, 0}, 0.24, 0.12},
		{[8]int{0, 0, 2, 0, 0, 0, 0, 0}, -0.32, 0},
		{[8]int{0, 0, 2, 0, 2, 0, 0, 0}, -0.28, 0},
		{[8]int{1, 0, 2, 0, 3, 0, 0, 0}, -0.27, 0},
		{[8]int{1, 0, 2, 0, 1, 0, 0, 0}, -0.26, 0},
		{[8]int{0, 0, 2, -2, 0, 0, 0, 0}, 0.21, 0},
		{[8]int{0, 1, -2, 2, -3, 0, 0, 0}, -0.19, 0},
		{[8]int{0, 1, -2, 2, -1, 0, 0, 0}, -0.18, 0},
		{[8]int{0, 0, 0, 0, 0, 8, -13, -1}, 0.10, -0.05},
		{[8]int{0, 0, 0, 2, 0, 0, 0, 0}, -0.15, 0},
		{[8]int{2, 0, -2, 0, -1, 0, 0, 0}, 0.14, 0},
		{[8]int{0, 1, 2, -2, 2, 0, 0, 0}, 0.14, 0},
		{[8]int{1, 0, 0, -2, 1, 0, 0, 0}, -0.14, 0},
		{[8]int{1, 0, 0, -2, -1, 0, 0, 0}, -0.14, 0},
		{[8]int{0, 0, 4, -2, 4, 0, 0, 0}, -0.13, 0},
		{[8]int{0, 0, 2, -2, 4, 0, 0, 0}, 0.11, 0},
		{[8]int{1, 0, -2, 0, -3, 0, 0, 0}, -0.11, 0},
		{[8]int{1, 0, -2, 0, -1, 0, 0, 0}, -0.11, 0},
	},
	{
		{[8]int{0, 0, 0, 0, 2, 0, 0, 0}, -0.07, 3.57},
		{[8]int{0, 0, 0, 0, 1, 0, 0, 0}, 1.73, -0.03},
		{[8]int{0, 0, 2, -2, 3, 0, 0, 0}, 0, 0.48},
	},
	{
		{[8]int{0, 0, 0, 0, 1, 0, 0, 0}, 743.52, -0.17},
		{[8]int{0, 0, 2, -2, 2, 0, 0, 0}, 56.91, 0.06},
		{[8]int{0, 0, 2, 0, 2, 0, 0, 0}, 9.84, -0.01},
		{[8]int{0, 0, 0, 0, 2, 0, 0, 0}, -8.85, 0.01},
		{[8]int{0, 1, 0, 0, 0, 0, 0, 0}, -6.38, -0.05},
		{[8]int{1, 0, 0, 0, 0, 0, 0, 0}, -3.07, 0},
		{[8]int{0, 1, 2, -2, 2, 0, 0, 0}, 2.23, 0},
		{[8]int{0, 0, 2, 0, 1, 0, 0, 0}, 1.67, 0},
		{[8]int{1, 0, 2, 0, 2, 0, 0, 0}, 1.30, 0},
		{[8]int{0, 1, -2, 2, -2, 0, 0, 0}, 0.93, 0},
		{[8]int{1, 0, 0, -2, 0, 0, 0, 0}, 0.68, 0},
		{[8]int{0, 0, 2, -2, 1, 0, 0, 0}, -0.55, 0},
		{[8]int{1, 0, -2, 0, -2, 0, 0, 0}, 0.53, 0},
		{[8]int{0, 0, 0, 2, 0, 0, 0, 0}, -0.27, 0},
		{[8]int{1, 0, 0, 0, 1, 0, 0, 0}, -0.27, 0},
		{[8]int{1, 0, -2, -2, -2, 0, 0, 0}, -0.26, 0},
		{[8]int{1, 0, 0, 0, -1, 0, 0, 0}, -0.25, 0},
		{[8]int{1, 0, 2, 0, 1, 0, 0, 0}, 0.22, 0},
		{[8]int{2, 0, 0, -2, 0, 0, 0, 0}, -0.21, 0},
		{[8]int{2, 0, -2, 0, -1, 0, 0, 0}, 0.20, 0},
		{[8]int{0, 0, 2, 2, 2, 0, 0, 0}, 0.17, 0},
		{[8]int{2, 0, 2, 0, 2, 0, 0, 0}, 0.13, 0},
		{[8]int{2, 0, 0, 0, 0, 0, 0, 0}, -0.13, 0},
		{[8]int{1, 0, 2, -2, 2, 0, 0, 0}, -0.12, 0},
		{[8]int{0, 0, 2, 0, 0, 0, 0, 0}, -0.11, 0},
	},
	{
		{[8]int{0, 0, 0, 0, 1, 0, 0, 0}, 0.30, -23.42},
		{[8]int{0, 0, 2, -2, 2, 0, 0, 0}, -0.03, -1.46},
		{[8]int{0, 0, 2, 0, 2, 0, 0, 0}, -0.01, -0.25},
		{[8]int{0, 0, 0, 0, 2, 0, 0, 0}, 0, 0.23},
	},
	{
		{[8]int{0, 0, 0, 0, 1, 0, 0, 0}, -0.26, -0.01},
	},
}

var s06Poly = [...]float64{94.00, 3808.65, -122.68, -72574.11, 27.98, 15.62}

func sumSeries(terms []seriesTerm, fa *FundArgs) float64 {
	v := 0.0
	for i := len(terms) - 1; i >= 0; i-- {
		s, c := math.Sincos(fa.Arg8(terms[i].n))
		v += terms[i].s*s + terms[i].c*c
	}
	return v
}

// Equation of the equinoxes complementary terms [rad]
func eect00(t float64, fa *FundArgs) float64 {
	return (sumSeries(eectTerms0[:], fa) + sumSeries(eectTerms1[:], fa)*t) * AS2R * 1e-6
}

// CIO locator s given the CIP X, Y [rad]
func CIOLocator(t, x, y float64, fa *FundArgs) float64 {
	v := s06Poly[5]
	for i := len(s06Terms) - 1; i >= 0; i-- {
		v = v*t + s06Poly[i] + sumSeries(s06Terms[i], fa)
	}
	return v*AS2R*1e-6 - x*y/2
}

// Bias-precession-nutation matrix (IAU 2000, equinox based) and its
// derivatives with respect to dpsi and deps
func npb00(t, dpsi, deps float64) (npb, dnp, dne *mat.Dense, epsa float64) {
	const eps0 = 84381.448 * AS2R
	dpsipr := -0.29965 * AS2R * t
	depspr := -0.02524 * AS2R * t

	// Frame bias
	b := mul(R1(0.0068192*AS2R), R2(-0.041775*AS2R*math.Sin(eps0)), R3(-0.0146*AS2R))

	// Precession (Lieske 1977 with IAU 2000 rate corrections)
	psia := (5038.7784+(-1.07259-0.001147*t)*t)*t*AS2R + dpsipr
	oma := eps0 + (0.05127-0.007726*t)*t*t*AS2R + depspr
	chia := (10.5526 + (-2.38064-0.001125*t)*t) * t * AS2R
	p := mul(R3(chia), R1(-oma), R3(-psia), R1(eps0))

	// Nutation
	epsa = meanObliquity00(t)
	n1, dn1 := procMat(1, -(epsa + deps))
	n3, dn3 := procMat(3, -dpsi)
	n0 := R1(epsa)
	npb = mul(n1, n3, n0, p, b)
	dnp = mul(scale(-1, mul(n1, dn3, n0)), p, b)
	dne = mul(scale(-1, mul(dn1, n3, n0)), p, b)
	return npb, dnp, dne, epsa
}

// Bias-precession-nutation matrix (IAU 2006, Fukushima-Williams angles)
func npb06(t, dpsi, deps float64) (npb *mat.Dense, epsa float64) {
	gamb := (-0.052928 + (10.556378+(0.4932044+(-0.00031238+(-0.000002788+0.0000000260*t)*t)*t)*t)*t) * AS2R
	phib := (84381.412819 + (-46.811016+(0.0511268+(0.00053289+(-0.000000440-0.0000000176*t)*t)*t)*t)*t) * AS2R
	psib := (-0.041775 + (5038.481484+(1.5584175+(-0.00018522+(-0.000026452-0.0000000148*t)*t)*t)*t)*t) * AS2R
	epsa = meanObliquity06(t)
	npb = mul(R1(-(epsa + deps)), R3(-(psib + dpsi)), R1(phib), R3(gamb))
	return npb, epsa
}

// CIP to GCRS matrix Q(X, Y, s) and its derivatives with respect to X and Y
// (s follows X, Y through its -XY/2 part)
func cipMat(x, y, s float64) (q, dqx, dqy *mat.Dense) {
	z := math.Sqrt(1 - x*x - y*y)
	a := 1 / (1 + z)
	k := 1 / (z * (1 + z) * (1 + z))
	dax, day := x*k, y*k
	r2 := x*x + y*y

	m := mat.NewDense(3, 3, []float64{
		1 - a*x*x, -a * x * y, x,
		-a * x * y, 1 - a*y*y, y,
		-x, -y, 1 - a*r2,
	})
	dmx := mat.NewDense(3, 3, []float64{
		-(dax*x*x + 2*a*x), -(dax*x*y + a*y), 1,
		-(dax*x*y + a*y), -dax * y * y, 0,
		-1, 0, -(dax*r2 + 2*a*x),
	})
	dmy := mat.NewDense(3, 3, []float64{
		-day * x * x, -(day*x*y + a*x), 0,
		-(day*x*y + a*x), -(day*y*y + 2*a*y), 1,
		0, -1, -(day*r2 + 2*a*y),
	})
	r3, dr3 := procMat(3, s)
	q = mul(m, r3)
	dqx = add(mul(dmx, r3), scale(-y/2, mul(m, dr3)))
	dqy = add(mul(dmy, r3), scale(-x/2, mul(m, dr3)))
	return q, dqx, dqy
}

// TRS -> CRS rotation and its partials
func buildRot(a *rotArgs, partials bool) rotOut {
	var o rotOut

	// Polar motion W = R3(-s') R2(xp) R1(yp)
	r3s := R3(-a.sp)
	r2, dr2 := procMat(2, a.xp)
	r1, dr1 := procMat(1, a.yp)
	w := mul(r3s, r2, r1)

	// Intermediate frame to CRS and its nutation partials
	var c, dcp, dce *mat.Dense
	// Rotation angle and its derivative w.r.t. dpsi
	var theta, dthp float64

	switch a.conv {
	case Conv00:
		dpsi := a.dpsi + a.dx/math.Sin(meanObliquity00(a.t))
		deps := a.deps + a.dy
		npb, dnp, dne, epsa := npb00(a.t, dpsi, deps)
		c = trans(npb)
		dcp = trans(dnp)
		dce = trans(dne)
		o.x = npb.At(2, 0)
		o.y = npb.At(2, 1)
		o.s = CIOLocator(a.t, o.x, o.y, &a.fa)
		o.gmst = gmst00(a.era, a.t)
		o.gast = NormRad(o.gmst + dpsi*math.Cos(epsa) + eect00(a.t, &a.fa))
		theta = o.gast
		dthp = math.Cos(epsa)
	default:
		npb, epsa := npb06(a.t, a.dpsi, a.deps)
		o.x = npb.At(2, 0) + a.dx
		o.y = npb.At(2, 1) + a.dy
		o.s = CIOLocator(a.t, o.x, o.y, &a.fa)
		q, dqx, dqy := cipMat(o.x, o.y, o.s)
		c = q
		dcp = scale(math.Sin(epsa), dqx)
		dce = dqy
		o.gmst = gmst06(a.era, a.t)
		o.gast = NormRad(o.gmst + a.dpsi*math.Cos(epsa) + eect00(a.t, &a.fa))
		theta = a.era
	}

	g, dg := procMat(3, -theta)
	o.rot = mul(c, g, w)
	if !partials {
		return o
	}
	o.dxp = mul(c, g, r3s, dr2, r1)
	o.dyp = mul(c, g, r3s, r2, dr1)
	o.dut1 = mul(c, scale(-omegaUT1, dg), w)
	o.ddpsi = mul(dcp, g, w)
	if dthp != 0 {
		o.ddpsi = add(o.ddpsi, mul(c, scale(-dthp, dg), w))
	}
	o.ddeps = mul(dce, g, w)
	return o
}
