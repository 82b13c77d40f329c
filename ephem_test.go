// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEphemerisConstantUnitPosition(t *testing.T) {
	var h EphemerisHeader
	h.Start = 2451544.5
	h.End = 2451545.5
	h.Days = 1.0
	h.Desc[SlotMercury] = BodyDesc{Offset: 1, Ncf: 2, Na: 1}
	e, err := NewEphemeris(h, MemRecords{{1, 0, 0, 0, 0, 0}})
	require.NoError(t, err)

	p, err := e.Position(2451545.0, "mercury")
	require.NoError(t, err)
	assert.Equal(t, NewVec3(1, 0, 0, Kilometer), p)
}

// Records whose Mercury x is u^2 and y is 2u, u = (jd-start)/days
func quadEphemeris(t *testing.T, nrec, ncf, na int) *Ephemeris {
	const start, days = 2451544.5, 4.0
	var h EphemerisHeader
	h.Start = start
	h.End = start + days*float64(nrec)
	h.Days = days
	h.Desc[SlotMercury] = BodyDesc{Offset: 3, Ncf: ncf, Na: na}
	recs := make(MemRecords, nrec)
	hw := 1 / float64(2*na)
	for r := range recs {
		rec := make([]float64, h.RecordLen())
		rec[0] = start + days*float64(r)
		rec[1] = rec[0] + days
		for k := 0; k < na; k++ {
			c := rec[2+ncf*3*k:]
			m := float64(r) + (float64(k)+0.5)/float64(na)
			c[0], c[1], c[2] = m*m+hw*hw/2, 2*m*hw, hw*hw/2
			c[ncf], c[ncf+1] = 2*m, 2*hw
		}
		recs[r] = rec
	}
	e, err := NewEphemeris(h, recs)
	require.NoError(t, err)
	return e
}

func TestEphemerisContinuity(t *testing.T) {
	for _, tt := range []struct {
		name    string
		ncf, na int
	}{
		{"ncf3 na1", 3, 1},
		{"ncf3 na4", 3, 4},
		{"ncf7 na2 zero padded", 7, 2},
	} {
		t.Run(tt.name, func(t *testing.T) {
			e := quadEphemeris(t, 3, tt.ncf, tt.na)
			h := e.Header
			sub := h.Days / float64(tt.na)
			for jd := h.Start; jd <= h.End; jd += sub {
				u := (jd - h.Start) / h.Days
				p, v, err := e.PositionVelocity(jd, Mercury, SSB)
				require.NoError(t, err, "jd=%f", jd)
				assert.InDelta(t, u*u, p.X, 1e-12, "jd=%f", jd)
				assert.InDelta(t, 2*u, p.Y, 1e-12, "jd=%f", jd)
				assert.InDelta(t, 2*u/h.Days, v.X, 1e-12, "jd=%f", jd)

				// Both sides of the join
				if jd > h.Start && jd < h.End {
					a, err := e.Position(jd-1e-7, "Mercury")
					require.NoError(t, err)
					b, err := e.Position(jd+1e-7, "Mercury")
					require.NoError(t, err)
					assert.InDelta(t, a.X, b.X, 1e-6)
					assert.InDelta(t, a.Y, b.Y, 1e-6)
				}
			}
		})
	}
}

func TestEphemerisVelocityNumeric(t *testing.T) {
	e := quadEphemeris(t, 2, 5, 3)
	const eps = 1e-4
	for _, jd := range []float64{2451545.1, 2451547.3, 2451550.9} {
		_, v, err := e.PositionVelocity(jd, Mercury, SSB)
		require.NoError(t, err)
		ja, jb := jd-eps, jd+eps
		a, err := e.RelPosition(ja, Mercury, SSB)
		require.NoError(t, err)
		b, err := e.RelPosition(jb, Mercury, SSB)
		require.NoError(t, err)
		assert.InDelta(t, (b.X-a.X)/(jb-ja), v.X, 1e-8)
		assert.InDelta(t, (b.Y-a.Y)/(jb-ja), v.Y, 1e-8)
	}
}

func TestEphemerisOutOfRange(t *testing.T) {
	e := quadEphemeris(t, 2, 3, 1)
	for _, jd := range []float64{e.Header.Start - 1e-6, e.Header.End + 1e-6} {
		_, err := e.Position(jd, "Mercury")
		var oe *OutOfRangeError
		assert.True(t, errors.As(err, &oe), "jd=%f err=%v", jd, err)
	}

	// Header wider than the records
	h := e.Header
	h.End += h.Days
	e2, err := NewEphemeris(h, e.src)
	require.NoError(t, err)
	_, err = e2.Position(h.End-h.Days/2, "Mercury")
	var oe *OutOfRangeError
	assert.True(t, errors.As(err, &oe))

	// End epoch belongs to the last record
	p, err := e.Position(e.Header.End, "Mercury")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, p.X, 1e-12)
}

func TestEphemerisUnknownBody(t *testing.T) {
	e := quadEphemeris(t, 1, 3, 1)
	var ue *UnknownBodyError

	_, err := e.Position(2451545.0, "Vulcan")
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "Vulcan", ue.Name)

	// Body without coefficients
	_, err = e.Position(2451545.0, "Mars")
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "MARS", ue.Name)

	_, _, err = e.PositionVelocity(2451545.0, Body(42), SSB)
	assert.True(t, errors.As(err, &ue))
}

func TestBodyByName(t *testing.T) {
	for _, tt := range []struct {
		name string
		want Body
	}{
		{"Mercury", Mercury},
		{"earth", Earth},
		{" MOON ", Moon},
		{"Sun", Sun},
		{"Solar System Barycenter", SSB},
		{"Earth-Moon Barycenter", EMB},
		{"emb", EMB},
	} {
		b, err := BodyByName(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, b, tt.name)
	}
}

// Constant EMB, geocentric Moon and Sun
func earthMoonEphemeris(t *testing.T) *Ephemeris {
	var h EphemerisHeader
	h.Start = 2451544.5
	h.End = 2451576.5
	h.Days = 32
	h.Emrat = 81.3
	h.Desc[SlotEMB] = BodyDesc{Offset: 3, Ncf: 2, Na: 1}
	h.Desc[SlotMoon] = BodyDesc{Offset: 9, Ncf: 2, Na: 1}
	h.Desc[SlotSun] = BodyDesc{Offset: 15, Ncf: 2, Na: 1}
	rec := []float64{h.Start, h.End,
		1.0e8, 0, 2.0e7, 0, 3.0e6, 0, // EMB
		3.8e5, 0, 1.0e4, 0, -2.0e4, 0, // Moon
		-1.0e6, 0, 0, 0, 0, 0, // Sun
	}
	e, err := NewEphemeris(h, MemRecords{rec})
	require.NoError(t, err)
	return e
}

func TestEphemerisEarthMoon(t *testing.T) {
	e := earthMoonEphemeris(t)
	jd := 2451550.0
	k := 1 / (1 + e.Header.Emrat)
	earth := NewVec3(1.0e8-3.8e5*k, 2.0e7-1.0e4*k, 3.0e6+2.0e4*k, Kilometer)

	p, err := e.Position(jd, "Earth")
	require.NoError(t, err)
	assert.InDelta(t, earth.X, p.X, 1e-6)
	assert.InDelta(t, earth.Y, p.Y, 1e-6)
	assert.InDelta(t, earth.Z, p.Z, 1e-6)

	m, err := e.RelPosition(jd, Moon, Earth)
	require.NoError(t, err)
	assert.Equal(t, NewVec3(3.8e5, 1.0e4, -2.0e4, Kilometer), m)

	em, err := e.RelPosition(jd, Earth, Moon)
	require.NoError(t, err)
	assert.InDelta(t, -3.8e5, em.X, 1e-9)

	// Barycentric Moon through the EMB relation
	mb, err := e.Position(jd, "Moon")
	require.NoError(t, err)
	assert.InDelta(t, earth.X+3.8e5, mb.X, 1e-6)

	// Earth-Moon barycenter relative to Earth
	be, err := e.RelPosition(jd, EMB, Earth)
	require.NoError(t, err)
	assert.InDelta(t, 3.8e5*k, be.X, 1e-6)

	sun, moon, err := e.SunMoon(jd)
	require.NoError(t, err)
	assert.InDelta(t, -1.0e6-earth.X, sun.X, 1e-6)
	assert.InDelta(t, -earth.Y, sun.Y, 1e-6)
	assert.Equal(t, m, moon)

	// Same body
	z, err := e.RelPosition(jd, Sun, Sun)
	require.NoError(t, err)
	assert.True(t, z.IsZero())
}

func TestEphemerisNutationSlot(t *testing.T) {
	var h EphemerisHeader
	h.Start = 2451544.5
	h.End = 2451548.5
	h.Days = 4
	h.Desc[SlotNutation] = BodyDesc{Offset: 3, Ncf: 2, Na: 1}
	e, err := NewEphemeris(h, MemRecords{{h.Start, h.End, 1e-5, 1e-6, 4e-5, 0}})
	require.NoError(t, err)

	// tc = 0 at the middle of the record
	dpsi, deps, err := e.Nutation(2451546.5)
	require.NoError(t, err)
	assert.InDelta(t, 1e-5, dpsi, 1e-18)
	assert.InDelta(t, 4e-5, deps, 1e-18)

	_, _, err = quadEphemeris(t, 1, 3, 1).Nutation(2451545.0)
	assert.Error(t, err)
}

func TestNewEphemerisInvalid(t *testing.T) {
	var h EphemerisHeader
	_, err := NewEphemeris(h, MemRecords{})
	assert.Error(t, err)

	h.Days = 1
	h.Start, h.End = 2451545.0, 2451546.0
	h.Desc[SlotSun] = BodyDesc{Offset: 3, Ncf: 0, Na: 1}
	_, err = NewEphemeris(h, MemRecords{})
	assert.Error(t, err)

	h.Desc[SlotSun].Ncf = 2
	_, err = NewEphemeris(h, nil)
	assert.Error(t, err)
}
