// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3Units(t *testing.T) {
	v := NewVec3(1, -2, 3, Meter)
	mm := v.To(Millimeter)
	assert.Equal(t, NewVec3(1000, -2000, 3000, Millimeter), mm)
	assert.Equal(t, NewVec3(1e-3, -2e-3, 3e-3, Kilometer), v.To(Kilometer))

	// Arithmetic in the receiver's unit
	s := mm.Add(v)
	assert.Equal(t, Millimeter, s.Unit)
	assert.InDelta(t, 2000.0, s.X, 1e-9)
	assert.True(t, mm.Sub(v).IsZero())
	assert.InDelta(t, math.Sqrt(14), v.Norm(), 1e-15)
	assert.InDelta(t, 14e6, mm.Dot(v), 1e-6)
	assert.InDelta(t, 1.0, v.Unitv().Norm(), 1e-15)
	assert.Equal(t, PosXYZ{X: 1, Y: -2, Z: 3}, mm.XYZ())
	assert.Equal(t, "1.000000 -2.000000 3.000000 [m]", v.String())
}

func TestPosConversions(t *testing.T) {
	llh := NewPosLLH(ToRad(35.7), ToRad(139.7), 80)
	xyz := llh.ToXYZ()
	back := xyz.ToLLH()
	assert.InDelta(t, llh.Lat, back.Lat, 1e-9)
	assert.InDelta(t, llh.Lon, back.Lon, 1e-12)
	assert.InDelta(t, llh.Hei, back.Hei, 1e-3)

	// ENU rotation round trip
	d := NewPosENU(0.1, -0.2, 0.3)
	x := d.RotXYZ(back)
	e := x.RotENU(back)
	assert.InDelta(t, 0.1, e.E, 1e-12)
	assert.InDelta(t, -0.2, e.N, 1e-12)
	assert.InDelta(t, 0.3, e.U, 1e-12)

	// Geocentric latitude is smaller in the northern hemisphere
	lat, lon := xyz.Geocentric()
	assert.Less(t, lat, llh.Lat)
	assert.InDelta(t, llh.Lon, lon, 1e-12)
}

func TestPosLLHSet(t *testing.T) {
	var llh PosLLH
	require.NoError(t, llh.Set("35.5 139.25 10.0"))
	assert.InDelta(t, ToRad(35.5), llh.Lat, 1e-15)
	assert.InDelta(t, ToRad(139.25), llh.Lon, 1e-15)
	assert.Equal(t, 10.0, llh.Hei)
	assert.Error(t, llh.Set("35.5 139.25"))
	assert.Error(t, llh.Set("a b c"))
}
