// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	massRatioSun  = 332946.0482  // GM(Sun)/GM(Earth)
	massRatioMoon = 0.0123000371 // GM(Moon)/GM(Earth)

	loveH20 = 0.6078 // Nominal degree 2 Love number
	loveL20 = 0.0847 // Nominal degree 2 Shida number
	loveH3  = 0.292
	loveL3  = 0.015
)

// Station and body geometry shared by the step 1 terms (meters)
type tideGeom struct {
	sta    [3]float64
	rsta   float64
	sinphi float64 // Geocentric latitude
	cosphi float64
	sinla  float64 // Longitude
	cosla  float64
}

func newTideGeom(sta PosXYZ) (*tideGeom, error) {
	g := &tideGeom{sta: [3]float64{sta.X, sta.Y, sta.Z}}
	g.rsta = floats.Norm(g.sta[:], 2)
	p := math.Hypot(sta.X, sta.Y)
	if g.rsta < 1 || p < 1e-3 {
		return nil, &DegenerateGeometryError{Op: "solid earth tide", Pos: sta}
	}
	g.sinphi = sta.Z / g.rsta
	g.cosphi = p / g.rsta
	g.cosla = sta.X / p
	g.sinla = sta.Y / p
	return g, nil
}

// Local (radial, north, east) to XYZ
func (g *tideGeom) rne2xyz(dr, dn, de float64) [3]float64 {
	return [3]float64{
		dr*g.cosla*g.cosphi - de*g.sinla - dn*g.sinphi*g.cosla,
		dr*g.sinla*g.cosphi + de*g.cosla - dn*g.sinphi*g.sinla,
		dr*g.sinphi + dn*g.cosphi,
	}
}

// Tide raising body in the terrestrial frame [m]
type tideBody struct {
	x    [3]float64
	r    float64
	fac2 float64 // Degree 2 scale
	fac3 float64 // Degree 3 scale
}

func newTideBody(pos PosXYZ, massRatio float64) tideBody {
	b := tideBody{x: [3]float64{pos.X, pos.Y, pos.Z}}
	b.r = floats.Norm(b.x[:], 2)
	b.fac2 = massRatio * REIERS * math.Pow(REIERS/b.r, 3)
	b.fac3 = b.fac2 * REIERS / b.r
	return b
}

// Step 1 in-phase degree 2 and 3 terms with latitude dependent Love numbers
func step1InPhase(g *tideGeom, bodies []tideBody, deg3 bool) [3]float64 {
	c2 := 1 - 1.5*g.cosphi*g.cosphi
	h2 := loveH20 - 0.0006*c2
	l2 := loveL20 + 0.0002*c2
	var d [3]float64
	for _, b := range bodies {
		sc := floats.Dot(g.sta[:], b.x[:]) / g.rsta / b.r
		p2 := 3*(h2/2-l2)*sc*sc - h2/2
		x2 := 3 * l2 * sc
		for i := 0; i < 3; i++ {
			d[i] += b.fac2 * (x2*b.x[i]/b.r + p2*g.sta[i]/g.rsta)
		}
		if !deg3 {
			continue
		}
		p3 := 2.5*(loveH3-3*loveL3)*sc*sc*sc + 1.5*(loveL3-loveH3)*sc
		x3 := 1.5 * loveL3 * (5*sc*sc - 1)
		for i := 0; i < 3; i++ {
			d[i] += b.fac3 * (x3*b.x[i]/b.r + p3*g.sta[i]/g.rsta)
		}
	}
	return d
}

// Out-of-phase corrections for mantle anelasticity, diurnal band
func step1OutPhaseDiurnal(g *tideGeom, bodies []tideBody) [3]float64 {
	const dhi, dli = -0.0025, -0.0007
	cos2phi := g.cosphi*g.cosphi - g.sinphi*g.sinphi
	dr, dn, de := 0.0, 0.0, 0.0
	for _, b := range bodies {
		k := b.fac2 * b.x[2] / (b.r * b.r)
		a := b.x[0]*g.sinla - b.x[1]*g.cosla
		c := b.x[0]*g.cosla + b.x[1]*g.sinla
		dr += -3 * dhi * g.sinphi * g.cosphi * k * a
		dn += -3 * dli * cos2phi * k * a
		de += -3 * dli * g.sinphi * k * c
	}
	return g.rne2xyz(dr, dn, de)
}

// Out-of-phase corrections for mantle anelasticity, semidiurnal band
func step1OutPhaseSemidiurnal(g *tideGeom, bodies []tideBody) [3]float64 {
	const dhi, dli = -0.0022, -0.0007
	cos2la := g.cosla*g.cosla - g.sinla*g.sinla
	sin2la := 2 * g.cosla * g.sinla
	dr, dn, de := 0.0, 0.0, 0.0
	for _, b := range bodies {
		k := b.fac2 / (b.r * b.r)
		xy := b.x[0]*b.x[0] - b.x[1]*b.x[1]
		a := xy*sin2la - 2*b.x[0]*b.x[1]*cos2la
		c := xy*cos2la + 2*b.x[0]*b.x[1]*sin2la
		dr += -0.75 * dhi * g.cosphi * g.cosphi * k * a
		dn += 1.5 * dli * g.sinphi * g.cosphi * k * a
		de += -1.5 * dli * g.cosphi * k * c
	}
	return g.rne2xyz(dr, dn, de)
}

// Latitude dependence of the transverse displacement (imaginary l1 terms)
func step1Latitude(g *tideGeom, bodies []tideBody) [3]float64 {
	const l1d, l1sd = 0.0012, 0.0024
	cos2phi := g.cosphi*g.cosphi - g.sinphi*g.sinphi
	cos2la := g.cosla*g.cosla - g.sinla*g.sinla
	sin2la := 2 * g.cosla * g.sinla

	// Diurnal band
	dn, de := 0.0, 0.0
	for _, b := range bodies {
		k := b.fac2 * b.x[2] / (b.r * b.r)
		dn += -l1d * g.sinphi * g.sinphi * k * (b.x[0]*g.cosla + b.x[1]*g.sinla)
		de += l1d * g.sinphi * cos2phi * k * (b.x[0]*g.sinla - b.x[1]*g.cosla)
	}
	d := g.rne2xyz(0, 3*dn, 3*de)

	// Semidiurnal band
	dn, de = 0, 0
	for _, b := range bodies {
		k := b.fac2 / (b.r * b.r)
		xy := b.x[0]*b.x[0] - b.x[1]*b.x[1]
		dn += -l1sd / 2 * g.sinphi * g.cosphi * k * (xy*cos2la + 2*b.x[0]*b.x[1]*sin2la)
		de += -l1sd / 2 * g.sinphi * g.sinphi * g.cosphi * k * (xy*sin2la - 2*b.x[0]*b.x[1]*cos2la)
	}
	s := g.rne2xyz(0, 3*dn, 3*de)
	floats.Add(d[:], s[:])
	return d
}

// Doodson-like astronomical arguments [deg] at t TT centuries
type astroArgs struct {
	sm               float64 // Mean longitude of the Moon without precession
	s, h, p, zns, ps float64
}

func newAstroArgs(t float64) astroArgs {
	var a astroArgs
	a.sm = 218.31664563 + (481267.88194+(-0.0014663889+0.00000185139*t)*t)*t
	pr := (1.396971278 + (0.000308889+(0.000000021+0.000000007*t)*t)*t) * t
	a.s = a.sm + pr
	a.sm = math.Mod(a.sm, 360)
	a.h = 280.46645 + (36000.7697489+(0.00030322222+(0.000000020-0.00000000654*t)*t)*t)*t
	a.p = 83.35324312 + (4069.01363525+(-0.01032172222+(-0.0000124991+0.00000005263*t)*t)*t)*t
	a.zns = 234.95544499 + (1934.13626197+(-0.00207561111+(-0.00000213944+0.00000001650*t)*t)*t)*t
	a.ps = 282.93734098 + (1.71945766667+(0.00045688889+(-0.00000001778-0.00000000334*t)*t)*t)*t
	a.s = math.Mod(a.s, 360)
	a.h = math.Mod(a.h, 360)
	a.p = math.Mod(a.p, 360)
	a.zns = math.Mod(a.zns, 360)
	a.ps = math.Mod(a.ps, 360)
	return a
}

// Frequency dependent Love number correction line (mm)
type step2Line struct {
	n      [5]float64 // Multipliers of s, h, p, N', ps
	a1, a2 float64
	a3, a4 float64
}

// Diurnal band (R in-phase, R out-of-phase, T in-phase, T out-of-phase)
var step2DiuLines = [...]step2Line{
	{[5]float64{-3, 0, 2, 0, 0}, -0.01, 0, 0, 0},
	{[5]float64{-3, 2, 0, 0, 0}, -0.01, 0, 0, 0},
	{[5]float64{-2, 0, 1, -1, 0}, -0.02, 0, 0, 0},
	{[5]float64{-2, 0, 1, 0, 0}, -0.08, 0, -0.01, 0.01},
	{[5]float64{-2, 2, -1, 0, 0}, -0.02, 0, 0, 0},
	{[5]float64{-1, 0, 0, -1, 0}, -0.10, 0, 0, 0},
	{[5]float64{-1, 0, 0, 0, 0}, -0.51, 0, -0.02, 0.03},
	{[5]float64{-1, 2, 0, 0, 0}, 0.01, 0, 0, 0},
	{[5]float64{0, -2, 1, 0, 0}, 0.01, 0, 0, 0},
	{[5]float64{0, 0, -1, 0, 0}, 0.02, 0, 0, 0},
	{[5]float64{0, 0, 1, 0, 0}, 0.06, 0, 0, 0},
	{[5]float64{0, 0, 1, 1, 0}, 0.01, 0, 0, 0},
	{[5]float64{0, 2, -1, 0, 0}, 0.01, 0, 0, 0},
	{[5]float64{1, -3, 0, 0, 1}, -0.06, 0, 0, 0},
	{[5]float64{1, -2, 0, -1, 0}, 0.01, 0, 0, 0},
	{[5]float64{1, -2, 0, 0, 0}, -1.23, -0.07, 0.06, 0.01},
	{[5]float64{1, -1, 0, 0, -1}, 0.02, 0, 0, 0},
	{[5]float64{1, -1, 0, 0, 1}, 0.04, 0, 0, 0},
	{[5]float64{1, 0, 0, -1, 0}, -0.22, 0.01, 0.01, 0},
	{[5]float64{1, 0, 0, 0, 0}, 12.00, -0.80, -0.67, -0.03},
	{[5]float64{1, 0, 0, 1, 0}, 1.73, -0.12, -0.10, 0},
	{[5]float64{1, 0, 0, 2, 0}, -0.04, 0, 0, 0},
	{[5]float64{1, 1, 0, 0, -1}, -0.50, -0.01, 0.03, 0},
	{[5]float64{1, 1, 0, 0, 1}, 0.01, 0, 0, 0},
	{[5]float64{1, 1, 0, 1, -1}, -0.01, 0, 0, 0},
	{[5]float64{1, 2, -2, 0, 0}, -0.01, 0, 0, 0},
	{[5]float64{1, 2, 0, 0, 0}, -0.11, 0.01, 0.01, 0},
	{[5]float64{2, -2, 1, 0, 0}, -0.01, 0, 0, 0},
	{[5]float64{2, 0, -1, 0, 0}, -0.02, 0, 0, 0},
	{[5]float64{3, 0, 0, 0, 0}, 0, 0, 0, 0},
	{[5]float64{3, 0, 0, 1, 0}, 0, 0, 0, 0},
}

// Long period band (R in-phase, T in-phase, R out-of-phase, T out-of-phase)
var step2LonLines = [...]step2Line{
	{[5]float64{0, 0, 0, 1, 0}, 0.47, 0.23, 0.16, 0.07},
	{[5]float64{0, 2, 0, 0, 0}, -0.20, -0.12, -0.11, -0.05},
	{[5]float64{1, 0, -1, 0, 0}, -0.11, -0.08, -0.09, -0.04},
	{[5]float64{2, 0, 0, 0, 0}, -0.13, -0.11, -0.15, -0.07},
	{[5]float64{2, 0, 0, 1, 0}, -0.05, -0.05, -0.06, -0.03},
}

func (a *astroArgs) arg(n *[5]float64) float64 {
	return n[0]*a.s + n[1]*a.h + n[2]*a.p + n[3]*a.zns + n[4]*a.ps
}

// Mean lunar time [deg]; fhr UTC hours. Referred to the mean s, the line
// arguments add the precessed s.
func (a *astroArgs) tau(t, fhr float64) float64 {
	return math.Mod(280.4606184+(36000.7700536+(0.00038793-0.0000000258*t)*t)*t+15*fhr-a.sm, 360)
}

// Step 2 diurnal band correction; fhr UTC hours, t TT centuries
func step2Diurnal(g *tideGeom, fhr, t float64) [3]float64 {
	a := newAstroArgs(t)
	tau := a.tau(t, fhr)
	zla := math.Atan2(g.sta[1], g.sta[0])
	cos2phi := g.cosphi*g.cosphi - g.sinphi*g.sinphi
	var d [3]float64
	for i := range step2DiuLines {
		ln := &step2DiuLines[i]
		th := (tau+a.arg(&ln.n))*D2R + zla
		s, c := math.Sincos(th)
		dr := ln.a1*2*g.sinphi*g.cosphi*s + ln.a2*2*g.sinphi*g.cosphi*c
		dn := ln.a3*cos2phi*s + ln.a4*cos2phi*c
		de := ln.a3*g.sinphi*c - ln.a4*g.sinphi*s
		x := g.rne2xyz(dr, dn, de)
		floats.Add(d[:], x[:])
	}
	floats.Scale(1e-3, d[:])
	return d
}

// Step 2 long period band correction
func step2LongPeriod(g *tideGeom, t float64) [3]float64 {
	a := newAstroArgs(t)
	p2 := (3*g.sinphi*g.sinphi - 1) / 2
	dr, dn := 0.0, 0.0
	for i := range step2LonLines {
		ln := &step2LonLines[i]
		s, c := math.Sincos(a.arg(&ln.n) * D2R)
		dr += ln.a1*p2*c + ln.a3*p2*s
		dn += ln.a2*2*g.cosphi*g.sinphi*c + ln.a4*2*g.cosphi*g.sinphi*s
	}
	d := g.rne2xyz(dr, dn, 0)
	floats.Scale(1e-3, d[:])
	return d
}

// Solid earth tide, IERS 2010 (station, Sun and Moon in TRS meters)
func solidTide2010(sta, sun, moon PosXYZ, fhr, t float64) ([3]float64, error) {
	g, err := newTideGeom(sta)
	if err != nil {
		return [3]float64{}, err
	}
	bodies := []tideBody{newTideBody(sun, massRatioSun), newTideBody(moon, massRatioMoon)}
	d := step1InPhase(g, bodies, true)
	for _, c := range [][3]float64{
		step1OutPhaseDiurnal(g, bodies),
		step1OutPhaseSemidiurnal(g, bodies),
		step1Latitude(g, bodies),
		step2Diurnal(g, fhr, t),
		step2LongPeriod(g, t),
	} {
		floats.Add(d[:], c[:])
	}
	return d, nil
}

// Degree 2/3 displacement of one body with the radial out-of-phase terms (IERS 1996)
func tidePl96(eu [3]float64, body PosXYZ, massRatio float64, llh PosLLH) [3]float64 {
	rp := [3]float64{body.X, body.Y, body.Z}
	r := floats.Norm(rp[:], 2)
	var ep [3]float64
	floats.ScaleTo(ep[:], 1/r, rp[:])

	k2 := massRatio * Re * Re * Re * Re / (r * r * r)
	k3 := k2 * Re / r
	latp := math.Asin(ep[2])
	lonp := math.Atan2(ep[1], ep[0])
	cosp := math.Cos(latp)
	sinl := math.Sin(llh.Lat)
	cosl := math.Cos(llh.Lat)

	// Degree 2 in-phase
	p := (3*sinl*sinl - 1) / 2
	h2 := loveH20 - 0.0006*p
	l2 := loveL20 + 0.0002*p
	a := floats.Dot(ep[:], eu[:])
	dp := k2 * 3 * l2 * a
	du := k2 * (h2*(1.5*a*a-0.5) - 3*l2*a*a)

	// Degree 3 in-phase
	dp += k3 * loveL3 * (7.5*a*a - 1.5)
	du += k3 * (loveH3*(2.5*a*a*a-1.5*a) - loveL3*(7.5*a*a-1.5)*a)

	// Out-of-phase (radial only)
	du += 0.75 * 0.0025 * k2 * math.Sin(2*latp) * math.Sin(2*llh.Lat) * math.Sin(llh.Lon-lonp)
	du += 0.75 * 0.0022 * k2 * cosp * cosp * cosl * cosl * math.Sin(2*(llh.Lon-lonp))

	var d [3]float64
	for i := 0; i < 3; i++ {
		d[i] = dp*ep[i] + du*eu[i]
	}
	return d
}

// Solid earth tide, IERS 1996 simplified model
func solidTide1996(sta, sun, moon PosXYZ, gmst float64, permTide bool) ([3]float64, error) {
	if math.Hypot(sta.X, sta.Y) < 1e-3 {
		return [3]float64{}, &DegenerateGeometryError{Op: "solid earth tide", Pos: sta}
	}
	llh := sta.ToLLH()
	up := NewPosENU(0, 0, 1).RotXYZ(llh)
	north := NewPosENU(0, 1, 0).RotXYZ(llh)
	eu := [3]float64{up.X, up.Y, up.Z}
	en := [3]float64{north.X, north.Y, north.Z}

	d := tidePl96(eu, sun, massRatioSun, llh)
	dm := tidePl96(eu, moon, massRatioMoon, llh)
	floats.Add(d[:], dm[:])

	// K1 frequency dependence
	sin2l := math.Sin(2 * llh.Lat)
	floats.AddScaled(d[:], -0.012*sin2l*math.Sin(gmst+llh.Lon), eu[:])

	// Permanent deformation removed (conventional tide free to mean tide)
	if permTide {
		sinl := math.Sin(llh.Lat)
		floats.AddScaled(d[:], 0.1196*(1.5*sinl*sinl-0.5), eu[:])
		floats.AddScaled(d[:], 0.0247*sin2l, en[:])
	}
	return d, nil
}
