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
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticSunMoon(t *testing.T) {
	sun, moon, err := AnalyticSunMoon{}.SunMoon(J2000)
	require.NoError(t, err)
	assert.Equal(t, Kilometer, sun.Unit)

	// Perihelion season
	assert.InDelta(t, 0.9833, sun.Norm()/AU, 0.002)
	dec := math.Asin(sun.Z/sun.Norm()) * R2D
	assert.InDelta(t, -23.0, dec, 1.0)

	d := moon.Norm()
	assert.Greater(t, d, 356000.0)
	assert.Less(t, d, 407000.0)

	// Month later the Moon has gone around
	_, moon2, err := AnalyticSunMoon{}.SunMoon(J2000 + 27.3217)
	require.NoError(t, err)
	c := moon.Unitv().Dot(moon2.Unitv())
	assert.Greater(t, c, 0.99)
}

type countingSunMoon struct {
	n   atomic.Int32
	err error
}

func (p *countingSunMoon) SunMoon(jdTT float64) (sun, moon Vec3, err error) {
	p.n.Add(1)
	if p.err != nil {
		return Vec3{}, Vec3{}, p.err
	}
	return NewVec3(jdTT, 0, 0, Kilometer), NewVec3(0, jdTT, 0, Kilometer), nil
}

func TestSunMoonCache(t *testing.T) {
	p := &countingSunMoon{}
	c, err := NewSunMoonCache(p, 2)
	require.NoError(t, err)

	s, m, err := c.SunMoon(1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.X)
	assert.Equal(t, 1.0, m.Y)
	_, _, _ = c.SunMoon(1)
	assert.Equal(t, int32(1), p.n.Load())

	// Bounded
	_, _, _ = c.SunMoon(2)
	_, _, _ = c.SunMoon(3)
	assert.Equal(t, 2, c.Len())
	_, _, _ = c.SunMoon(1)
	assert.Equal(t, int32(4), p.n.Load())

	_, err = NewSunMoonCache(p, 0)
	assert.Error(t, err)
}

func TestSunMoonCacheError(t *testing.T) {
	p := &countingSunMoon{err: errors.New("no data")}
	c, err := NewSunMoonCache(p, 4)
	require.NoError(t, err)
	_, _, err = c.SunMoon(1)
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestSunMoonCacheConcurrent(t *testing.T) {
	c, err := NewSunMoonCache(AnalyticSunMoon{}, 16)
	require.NoError(t, err)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for k := 0; k < 20; k++ {
				jd := J2000 + float64(k%4)
				s, _, err := c.SunMoon(jd)
				assert.NoError(t, err)
				assert.InDelta(t, 1.0, s.Norm()/AU, 0.02)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, c.Len())
}
