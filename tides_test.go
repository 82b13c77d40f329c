// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStation(id string, latDeg, lonDeg, hei float64) Station {
	xyz := NewPosLLH(latDeg*D2R, lonDeg*D2R, hei).ToXYZ()
	return Station{ID: id, Pos: xyz.Vec3()}
}

// Local (east, north, up) [m] of a terrestrial displacement at sta
func toENU(v Vec3, sta Station) PosENU {
	_, llh := staLLH(sta)
	d := v.XYZ()
	return d.RotENU(llh)
}

// Frame state and celestial Sun/Moon at the test epoch
func testSky(t *testing.T) (GTime, *FrameState, Vec3, Vec3) {
	ep := testEpoch()
	fs := NewFrameEngine(testEop(), nil).Compute(ep, false)
	sun, moon, err := AnalyticSunMoon{}.SunMoon(ep.JdTT())
	require.NoError(t, err)
	return ep, fs, sun, moon
}

// ------------------------------------
// Solid earth tide
// ------------------------------------

func TestStep1MoonOverhead(t *testing.T) {
	const r = 3.84e8
	g, err := newTideGeom(PosXYZ{X: REIERS})
	require.NoError(t, err)
	d := step1InPhase(g, []tideBody{newTideBody(PosXYZ{X: r}, massRatioMoon)}, false)

	// Pure radial h2 response, h2 at the equator
	want := massRatioMoon * REIERS * math.Pow(REIERS/r, 3) * (loveH20 + 0.0003)
	assert.InDelta(t, want, d[0], 1e-9)
	assert.InDelta(t, 0.2186, d[0], 1e-3)
	assert.InDelta(t, 0, d[1], 1e-12)
	assert.InDelta(t, 0, d[2], 1e-12)
}

func TestStep1Antipode(t *testing.T) {
	sta := testStation("TSKB", 36.1, 140.1, 70).Pos.XYZ()
	anti := PosXYZ{X: -sta.X, Y: -sta.Y, Z: -sta.Z}
	bodies := []tideBody{
		newTideBody(PosXYZ{X: 1.2e11, Y: -8.0e10, Z: 3.0e10}, massRatioSun),
		newTideBody(PosXYZ{X: -2.0e8, Y: 3.1e8, Z: 1.0e8}, massRatioMoon),
	}
	g1, err := newTideGeom(sta)
	require.NoError(t, err)
	g2, err := newTideGeom(anti)
	require.NoError(t, err)

	// Degree 2 is even in the station direction: displacement flips, radial part is kept
	d1 := step1InPhase(g1, bodies, false)
	d2 := step1InPhase(g2, bodies, false)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, -d1[i], d2[i], 1e-12)
	}
	r1 := (d1[0]*sta.X + d1[1]*sta.Y + d1[2]*sta.Z) / g1.rsta
	r2 := (d2[0]*anti.X + d2[1]*anti.Y + d2[2]*anti.Z) / g2.rsta
	assert.InDelta(t, r1, r2, 1e-12)
}

func TestSolidEarthTide(t *testing.T) {
	ep, fs, sun, moon := testSky(t)
	sta := testStation("TSKB", 36.1, 140.1, 70)

	opt := NewTideOpt()
	d10, err := NewTideModel(opt, nil, nil, nil).SolidEarthTide(ep, sta, fs, sun, moon)
	require.NoError(t, err)
	assert.Equal(t, Meter, d10.Unit)
	assert.Greater(t, d10.Norm(), 1e-4)
	assert.Less(t, d10.Norm(), 0.6)

	opt.Variant = TideIERS1996
	d96, err := NewTideModel(opt, nil, nil, nil).SolidEarthTide(ep, sta, fs, sun, moon)
	require.NoError(t, err)
	assert.InDelta(t, d10.X, d96.X, 0.02)
	assert.InDelta(t, d10.Y, d96.Y, 0.02)
	assert.InDelta(t, d10.Z, d96.Z, 0.02)

	// Pre-rotated bodies give the same result without a frame state
	opt.Variant = TideIERS2010
	d, err := NewTideModel(opt, nil, nil, nil).SolidEarthTide(ep, sta, nil, fs.CrsToTrs(sun), fs.CrsToTrs(moon))
	require.NoError(t, err)
	assert.InDelta(t, d10.X, d.X, 1e-9)
	assert.InDelta(t, d10.Z, d.Z, 1e-9)
}

func TestSolidEarthTideDegenerate(t *testing.T) {
	ep, fs, sun, moon := testSky(t)
	pole := Station{ID: "POLE", Pos: NewVec3(0, 0, 6356752.3, Meter)}
	for _, v := range []TideVariant{TideIERS2010, TideIERS1996} {
		opt := NewTideOpt()
		opt.Variant = v
		_, err := NewTideModel(opt, nil, nil, nil).SolidEarthTide(ep, pole, fs, sun, moon)
		var dg *DegenerateGeometryError
		assert.True(t, errors.As(err, &dg), "variant=%d", v)
	}
}

func TestSolidTidePermanent(t *testing.T) {
	sta := PosXYZ{X: Re}
	sun := PosXYZ{Y: AU * 1e3}
	moon := PosXYZ{Z: 3.84e8}
	d0, err := solidTide1996(sta, sun, moon, 0, false)
	require.NoError(t, err)
	d1, err := solidTide1996(sta, sun, moon, 0, true)
	require.NoError(t, err)

	// Equator: up shift only
	assert.InDelta(t, -0.0598, d1[0]-d0[0], 1e-9)
	assert.InDelta(t, 0, d1[2]-d0[2], 1e-9)
}

func TestSolidTideMillimeter(t *testing.T) {
	ep, fs, sun, moon := testSky(t)
	sta := testStation("TSKB", 36.1, 140.1, 70)
	tm := NewTideModel(nil, nil, nil, nil)
	dm, err := tm.SolidEarthTide(ep, sta, fs, sun, moon)
	require.NoError(t, err)

	sta.Pos = sta.Pos.To(Millimeter)
	dmm, err := tm.SolidEarthTide(ep, sta, fs, sun, moon)
	require.NoError(t, err)
	assert.Equal(t, Millimeter, dmm.Unit)
	assert.InDelta(t, dm.X*1e3, dmm.X, 1e-6)
	assert.InDelta(t, dm.Y*1e3, dmm.Y, 1e-6)
	assert.InDelta(t, dm.Z*1e3, dmm.Z, 1e-6)
}

// IERS DEHANTTIDEINEL reference cases (fhr=0)
func TestSolidTide2010Reference(t *testing.T) {
	cases := []struct {
		name            string
		sta, sun, moon  PosXYZ
		mjd, dat        float64
		want            [3]float64
	}{
		{"2009-04-13",
			PosXYZ{X: 4075578.385, Y: 931852.890, Z: 4801570.154},
			PosXYZ{X: 137859926952.015, Y: 54228127881.4350, Z: 23509422341.6960},
			PosXYZ{X: -179996231.920342, Y: -312468450.131567, Z: -169288918.592160},
			54934, 34,
			[3]float64{0.07700420357108125891, 0.06304056321824967613, 0.05516568152597246810}},
		{"2012-07-13",
			PosXYZ{X: 1112189.660, Y: -4842955.026, Z: 3985352.284},
			PosXYZ{X: -54537460436.2357, Y: 130244288385.279, Z: 56463429031.5996},
			PosXYZ{X: 300396716.912, Y: 243238281.451, Z: 120548075.939},
			56121, 35,
			[3]float64{-0.2036831479592075833e-1, 0.5658254776225972449e-1, -0.7597679676871742227e-1}},
	}
	for _, c := range cases {
		tt := (c.mjd-51544.5)/36525 + (c.dat+32.184)/(86400*36525)
		d, err := solidTide2010(c.sta, c.sun, c.moon, 0, tt)
		require.NoError(t, err, c.name)
		for i := 0; i < 3; i++ {
			assert.InDelta(t, c.want[i], d[i], 1e-5, "%s i=%d", c.name, i)
		}
	}
}

// K1 argument: mean lunar time on the mean s plus the precessed s
func TestStep2DiurnalPhase(t *testing.T) {
	for _, tt := range []float64{-0.5, 0.0938, 0.25} {
		a := newAstroArgs(tt)
		fhr := 7.5
		pr := (1.396971278 + (0.000308889+(0.000000021+0.000000007*tt)*tt)*tt) * tt
		gm := 280.4606184 + (36000.7700536+(0.00038793-0.0000000258*tt)*tt)*tt + 15*fhr
		k1 := a.tau(tt, fhr) + a.arg(&[5]float64{1, 0, 0, 0, 0})
		assert.InDelta(t, 0, math.Remainder(k1-gm-pr, 360), 1e-9, "t=%g", tt)
		assert.InDelta(t, 0, math.Remainder(a.s-a.sm-pr, 360), 1e-9, "t=%g", tt)
	}
}

// ------------------------------------
// Ocean loading
// ------------------------------------

func TestOceanTideLoadingLookup(t *testing.T) {
	ep := testEpoch()
	sta := testStation("TSKB", 36.1, 140.1, 70)

	// Not configured
	d, err := NewTideModel(nil, nil, nil, nil).OceanTideLoading(ep, sta)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, d.IsZero())

	// Zero coefficients
	tbl := NewOceanLoadingTable(1)
	tbl.Add("tskb 21730S005", BLQ{})
	tm := NewTideModel(nil, tbl, nil, nil)
	d, err = tm.OceanTideLoading(ep, sta)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	// Missing site
	d, err = tm.OceanTideLoading(ep, testStation("GRAZ", 47.07, 15.49, 538))
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "GRAZ", nf.Key)
	assert.True(t, d.IsZero())

	// Grid cell fallback
	var b BLQ
	b[0][0] = 0.01
	tbl.AddCell(47.2, 15.1, b)
	d, err = tm.OceanTideLoading(ep, testStation("GRAZ", 47.07, 15.49, 538))
	require.NoError(t, err)
	assert.False(t, d.IsZero())
	assert.Equal(t, 2, tbl.Len())
}

func TestOceanLoadingM2(t *testing.T) {
	var b BLQ
	b[0][0] = 0.01 // M2 up amplitude
	b[3][0] = 30   // Phase lag

	maxU := 0.0
	for i := 0; i < 1000; i++ {
		d := oloadENU(60310+float64(i)/1000, &b)
		assert.InDelta(t, 0, d.E, 1e-15)
		assert.InDelta(t, 0, d.N, 1e-15)
		assert.LessOrEqual(t, math.Abs(d.U), 0.01+1e-15)
		maxU = math.Max(maxU, math.Abs(d.U))
	}
	assert.Greater(t, maxU, 0.0099)
}

func TestOceanLoadingSigns(t *testing.T) {
	var b BLQ
	b[1][1] = 0.01  // S2 west
	b[2][1] = 0.005 // S2 south

	// S2 argument vanishes at 0h
	d := oloadENU(60310, &b)
	assert.InDelta(t, -0.01, d.E, 1e-12)
	assert.InDelta(t, -0.005, d.N, 1e-12)
	assert.InDelta(t, 0, d.U, 1e-15)
}

// ------------------------------------
// Pole tide
// ------------------------------------

func TestMeanPole(t *testing.T) {
	// Cubic and linear branches meet at 2010.0
	x0, y0 := MeanPole(MJDPOLE-1e-6, MeanPoleIERS2010)
	x1, y1 := MeanPole(MJDPOLE, MeanPoleIERS2010)
	assert.InDelta(t, x0, x1, 1e-5)
	assert.InDelta(t, y0, y1, 1e-5)
	assert.InDelta(t, 0.099654, x1, 1e-6)

	xs, ys := MeanPole(J2000-MJD0, MeanPoleSecular)
	assert.InDelta(t, 0.055, xs, 1e-12)
	assert.InDelta(t, 0.3205, ys, 1e-12)
}

func TestPoleTideENU(t *testing.T) {
	d := poleTideENU(PosLLH{}, 0.1, 0)
	assert.InDelta(t, -9e-4, d.N, 1e-15)
	assert.InDelta(t, 0, d.E, 1e-15)
	assert.InDelta(t, 0, d.U, 1e-15)

	d = poleTideENU(PosLLH{Lat: 45 * D2R}, 0.1, 0)
	assert.InDelta(t, -3.3e-3, d.U, 1e-15)
	assert.InDelta(t, 0, d.N, 1e-15)

	d = poleTideENU(PosLLH{Lat: 30 * D2R, Lon: 90 * D2R}, 0, 0.2)
	assert.InDelta(t, -33e-3*math.Sin(60*D2R)*0.2, d.U, 1e-15)
	assert.InDelta(t, 0, d.E, 1e-15)
}

func TestPoleTideAtMeanPole(t *testing.T) {
	ep := testEpoch()
	sta := testStation("TSKB", 36.1, 140.1, 70)
	xm, ym := MeanPole(ep.MjdUTC(), MeanPoleIERS2010)
	d, err := NewTideModel(nil, nil, nil, nil).PoleTide(ep, xm*AS2R, ym*AS2R, sta)
	require.NoError(t, err)
	assert.Less(t, d.Norm(), 1e-12)

	// 0.1 arcsec wobble gives millimeters
	d, err = NewTideModel(nil, nil, nil, nil).PoleTide(ep, (xm+0.1)*AS2R, ym*AS2R, sta)
	require.NoError(t, err)
	assert.Greater(t, d.Norm(), 1e-3)
	assert.Less(t, d.Norm(), 5e-3)
}

// ------------------------------------
// Ocean pole tide loading
// ------------------------------------

func opoleNodes(n int) []OPoleCoef {
	nodes := make([]OPoleCoef, n)
	for i := range nodes {
		nodes[i].R[2] = float64(i)
		nodes[i].I[0] = -float64(i)
	}
	return nodes
}

func TestOceanPoleLoadingGrid(t *testing.T) {
	g, err := NewOceanPoleLoadingGrid(30, 130, 10, 2, 2, opoleNodes(4))
	require.NoError(t, err)

	tests := []struct {
		lat, lon float64
		want     float64
	}{
		{35, 135, 1.5},
		{30, 130, 0},
		{40, 140, 3},
		{30, 140, 1},
		{40, 130, 2},
		{32.5, 130, 0.5},
	}
	for _, tt := range tests {
		c, err := g.At(tt.lat, tt.lon)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, c.R[2], 1e-12, "lat=%v lon=%v", tt.lat, tt.lon)
		assert.InDelta(t, -tt.want, c.I[0], 1e-12)
	}

	for _, p := range [][2]float64{{50, 135}, {35, 150}, {29, 135}, {35, 125}} {
		_, err := g.At(p[0], p[1])
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestOceanPoleLoadingGridWrap(t *testing.T) {
	g, err := NewOceanPoleLoadingGrid(-90, 0, 90, 3, 4, opoleNodes(12))
	require.NoError(t, err)

	// Between the last and first meridian on the middle row
	c1, err := g.At(0, 315)
	require.NoError(t, err)
	assert.InDelta(t, (7.0+4.0)/2, c1.R[2], 1e-12)
	c2, err := g.At(0, -45)
	require.NoError(t, err)
	assert.InDelta(t, c1.R[2], c2.R[2], 1e-12)
}

func TestOceanPoleLoadingGridInvalid(t *testing.T) {
	_, err := NewOceanPoleLoadingGrid(0, 0, 0, 2, 2, opoleNodes(4))
	assert.Error(t, err)
	_, err = NewOceanPoleLoadingGrid(0, 0, 1, 1, 2, opoleNodes(2))
	assert.Error(t, err)
	_, err = NewOceanPoleLoadingGrid(0, 0, 1, 2, 2, opoleNodes(3))
	assert.Error(t, err)
}

func TestOceanPoleTideLoading(t *testing.T) {
	assert.InDelta(t, 5339.4, oceanPoleK(), 1.0)

	ep := testEpoch()
	sta := testStation("TSKB", 36.1, 140.1, 70)
	xm, ym := MeanPole(ep.MjdUTC(), MeanPoleIERS2010)
	xp, yp := (xm+0.2)*AS2R, ym*AS2R

	// Not configured
	_, err := NewTideModel(nil, nil, nil, nil).OceanPoleTideLoading(ep, sta, xp, yp)
	assert.ErrorIs(t, err, ErrNotFound)

	nodes := make([]OPoleCoef, 4)
	for i := range nodes {
		nodes[i].R[2] = 1
	}
	g, err := NewOceanPoleLoadingGrid(30, 130, 20, 2, 2, nodes)
	require.NoError(t, err)
	d, err := NewTideModel(nil, nil, g, nil).OceanPoleTideLoading(ep, sta, xp, yp)
	require.NoError(t, err)

	enu := toENU(d, sta)
	assert.InDelta(t, oceanPoleK()*0.2*AS2R*0.6870, enu.U, 1e-9)
	assert.InDelta(t, 0, enu.E, 1e-9)
	assert.InDelta(t, 0, enu.N, 1e-9)

	// Outside the grid
	_, err = NewTideModel(nil, nil, g, nil).OceanPoleTideLoading(ep, testStation("GRAZ", 47.07, 15.49, 538), xp, yp)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ------------------------------------
// Atmospheric loading
// ------------------------------------

func TestAtmosphericLoading(t *testing.T) {
	midnight := *NewGTimeUTC(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	sta := testStation("TSKB", 36.1, 140.1, 70)

	// No table
	d, err := NewTideModel(nil, nil, nil, nil).AtmosphericLoading(midnight, sta)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	tbl := NewAtmLoadingTable()
	var c AtmCoef
	c.Cos[0].U = 1e-3 // S1
	c.Sin[1].E = 2e-4 // S2
	tbl.Add("TSKB", c)
	tm := NewTideModel(nil, nil, nil, tbl)

	d, err = tm.AtmosphericLoading(midnight, sta)
	require.NoError(t, err)
	enu := toENU(d, sta)
	assert.InDelta(t, 1e-3, enu.U, 1e-9)
	assert.InDelta(t, 0, enu.E, 1e-9)

	// 03h: S1 at 45 deg, S2 at its sine peak
	d, err = tm.AtmosphericLoading(midnight.Add(3*3600), sta)
	require.NoError(t, err)
	enu = toENU(d, sta)
	assert.InDelta(t, 1e-3*math.Cos(PI/4), enu.U, 1e-9)
	assert.InDelta(t, 2e-4, enu.E, 1e-9)

	_, err = tm.AtmosphericLoading(midnight, testStation("GRAZ", 47.07, 15.49, 538))
	assert.ErrorIs(t, err, ErrNotFound)
}

// ------------------------------------
// Displacement
// ------------------------------------

func TestDisplacement(t *testing.T) {
	ep, fs, sun, moon := testSky(t)
	sta := testStation("TSKB", 36.1, 140.1, 70)

	ol := NewOceanLoadingTable(1)
	var b BLQ
	b[0][0], b[1][0], b[2][0] = 0.012, 0.003, 0.002
	b[3][0], b[4][0], b[5][0] = 40, 120, -60
	ol.Add("TSKB", b)
	at := NewAtmLoadingTable()
	var ac AtmCoef
	ac.Cos[0].U = 5e-4
	at.Add("TSKB", ac)
	nodes := make([]OPoleCoef, 4)
	for i := range nodes {
		nodes[i].R = [3]float64{0.1, -0.2, 0.5}
	}
	op, err := NewOceanPoleLoadingGrid(30, 130, 20, 2, 2, nodes)
	require.NoError(t, err)

	c, err := NewTideModel(nil, ol, op, at).Displacement(ep, sta, fs, sun, moon)
	require.NoError(t, err)
	for _, v := range []Vec3{c.Solid, c.Ocean, c.Pole, c.OceanPole, c.Atmos} {
		assert.False(t, v.IsZero())
	}
	sum := c.Solid.Add(c.Ocean).Add(c.Pole).Add(c.OceanPole).Add(c.Atmos)
	assert.InDelta(t, sum.X, c.Total.X, 1e-12)
	assert.InDelta(t, sum.Y, c.Total.Y, 1e-12)
	assert.InDelta(t, sum.Z, c.Total.Z, 1e-12)

	// Disabled terms stay zero
	opt := NewTideOpt()
	opt.Solid = false
	opt.Atmos = false
	c2, err := NewTideModel(opt, ol, op, at).Displacement(ep, sta, fs, sun, moon)
	require.NoError(t, err)
	assert.True(t, c2.Solid.IsZero())
	assert.True(t, c2.Atmos.IsZero())
	assert.InDelta(t, c.Ocean.X, c2.Ocean.X, 1e-15)
}

func TestDisplacementMissingTables(t *testing.T) {
	ep, fs, sun, moon := testSky(t)
	sta := testStation("TSKB", 36.1, 140.1, 70)
	c, err := NewTideModel(nil, nil, nil, nil).Displacement(ep, sta, fs, sun, moon)
	require.NoError(t, err)
	assert.True(t, c.Ocean.IsZero())
	assert.True(t, c.OceanPole.IsZero())
	assert.False(t, c.Solid.IsZero())
	assert.InDelta(t, c.Solid.Add(c.Pole).Z, c.Total.Z, 1e-12)

	// Geometry errors abort
	pole := Station{ID: "POLE", Pos: NewVec3(0, 0, 6356752.3, Meter)}
	_, err = NewTideModel(nil, nil, nil, nil).Displacement(ep, pole, fs, sun, moon)
	var dg *DegenerateGeometryError
	assert.True(t, errors.As(err, &dg))
}
