// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeapSec(t *testing.T) {
	for _, tt := range []struct {
		mjd  float64
		want float64
	}{
		{40000, 10},
		{41317, 10},
		{51178.9, 31},
		{51179, 32},
		{53736, 33},
		{57753.99, 36},
		{57754, 37},
		{60000, 37},
	} {
		assert.Equal(t, tt.want, LeapSec(tt.mjd), "mjd=%f", tt.mjd)
	}
}

func TestGTimeScales(t *testing.T) {
	utc := time.Date(2017, 1, 1, 6, 0, 0, 0, time.UTC)
	g := NewGTimeUTC(utc)

	// GPS runs 18 s ahead of UTC from 2017
	assert.True(t, utc.Add(18*time.Second).Equal(g.ToTime()))
	assert.InDelta(t, 57754.25, g.MjdUTC(), 1e-9)
	assert.InDelta(t, 57754.25+37.0/DAYSEC, g.MjdTAI(), 1e-9)
	assert.InDelta(t, 57754.25+(37+TT2TAI)/DAYSEC, g.MjdTT(), 1e-9)
	assert.WithinDuration(t, utc, g.UTC(), time.Microsecond)
	assert.InDelta(t, 6.0, g.HoursUTC(), 1e-6)
	assert.InDelta(t, 2457754.75, g.JdUTC(), 1e-8)

	// Last second before the leap
	b := NewGTimeUTC(time.Date(2016, 12, 31, 23, 59, 59, 0, time.UTC))
	assert.WithinDuration(t, time.Date(2016, 12, 31, 23, 59, 59, 0, time.UTC), b.UTC(), time.Microsecond)
	assert.InDelta(t, 57754.0-1.0/DAYSEC, b.MjdUTC(), 1e-9)

	// Noon TT at J2000.0
	j2000 := NewGTimeUTC(time.Date(2000, 1, 1, 11, 58, 55, 816000000, time.UTC))
	assert.InDelta(t, 0.0, j2000.CenturiesTT(), 1e-10)
	assert.InDelta(t, J2000, j2000.JdTT(), 1e-8)
	assert.InDelta(t, 11.98217, j2000.HoursUTC(), 1e-5)
}

func TestGTimeArithmetic(t *testing.T) {
	g := GTime{Week: 2000, Sec: 604790}
	h := g.Add(20)
	assert.Equal(t, GTime{Week: 2001, Sec: 10}, h)
	assert.Equal(t, GTime{Week: 2000, Sec: 604790}, h.Add(-20))
	assert.InDelta(t, 20.0/DAYSEC, h.MJD()-g.MJD(), 1e-12)
}
