// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/solar"
)

// Source of geocentric celestial (GCRS) Sun and Moon positions [km]
type SunMoonProvider interface {
	SunMoon(jdTT float64) (sun, moon Vec3, err error)
}

// ------------------------------------
// Analytic Sun/Moon
// ------------------------------------

// Low precision Sun and Moon from analytic theories (about 0.01 deg)
type AnalyticSunMoon struct{}

func (AnalyticSunMoon) SunMoon(jdTT float64) (sun, moon Vec3, err error) {
	// Sun, apparent equator and equinox of date
	ra, dec := solar.ApparentEquatorial(jdTT)
	r := solar.Radius(base.J2000Century(jdTT)) * AU
	sun = NewVec3(r*dec.Cos()*ra.Cos(), r*dec.Cos()*ra.Sin(), r*dec.Sin(), Kilometer)

	// Moon, ecliptic of date to true equator of date
	lon, lat, dist := moonposition.Position(jdTT)
	dpsi, deps := nutation.Nutation(jdTT)
	lon += dpsi
	eps := nutation.MeanObliquity(jdTT) + deps
	x := dist * lat.Cos() * lon.Cos()
	y := dist * (lat.Cos()*lon.Sin()*eps.Cos() - lat.Sin()*eps.Sin())
	z := dist * (lat.Cos()*lon.Sin()*eps.Sin() + lat.Sin()*eps.Cos())
	moon = NewVec3(x, y, z, Kilometer)

	// True of date to GCRS
	t := (jdTT - J2000) / DJC
	dp, de := Nutation00B(t)
	npb, _, _, _ := npb00(t, dp, de)
	return mulVec(npb.T(), sun), mulVec(npb.T(), moon), nil
}

// ------------------------------------
// Cache
// ------------------------------------

type sunMoonPair struct {
	sun  Vec3
	moon Vec3
}

// Bounded, concurrency safe memo of a SunMoonProvider keyed by epoch
type SunMoonCache struct {
	p SunMoonProvider
	c *lru.Cache
}

func NewSunMoonCache(p SunMoonProvider, size int) (*SunMoonCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("NewSunMoonCache() failed, err=%v", err)
	}
	return &SunMoonCache{p: p, c: c}, nil
}

func (c *SunMoonCache) SunMoon(jdTT float64) (sun, moon Vec3, err error) {
	if v, ok := c.c.Get(jdTT); ok {
		pr := v.(sunMoonPair)
		return pr.sun, pr.moon, nil
	}
	sun, moon, err = c.p.SunMoon(jdTT)
	if err != nil {
		return Vec3{}, Vec3{}, err
	}
	c.c.Add(jdTT, sunMoonPair{sun: sun, moon: moon})
	return sun, moon, nil
}

// Number of cached epochs
func (c *SunMoonCache) Len() int {
	return c.c.Len()
}
