// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"golang.org/x/exp/slices"
)

// GPS time (week number and seconds of week)
type GTime struct {
	Week int
	Sec  float64
}

func NewGTime(dt time.Time) *GTime {
	t := dt.Unix()
	t -= time.Date(1980, 1, 6, 0, 0, 0, 0, time.UTC).Unix() // Elapsed seconds since 1980/1/6 00:00:00
	return &GTime{
		Week: int(t / (3600 * 24 * 7)),
		Sec:  float64(t%(3600*24*7)) + float64(dt.Nanosecond())/1000000000,
	}
}

// GPS time from a UTC instant (leap seconds applied)
func NewGTimeUTC(utc time.Time) *GTime {
	ls := LeapSec(utcMJD(utc)) - GPST2TAI
	return NewGTime(utc.Add(time.Duration(ls * float64(time.Second))))
}

func (p *GTime) ToTime() time.Time {
	o := time.Date(1980, 1, 6, 0, 0, 0, 0, time.UTC).Unix() // GPS time starts from 1980/1/6 00:00:00
	i := int64(math.Trunc(p.Sec))
	t := int64(3600*24*7*p.Week) + i + o
	n := int64((p.Sec - float64(i)) * 1e9)
	return time.Unix(t, n) // Unix time is the elapsed seconds since 1970/1/1 00:00:00
}

// Add seconds
func (p GTime) Add(sec float64) GTime {
	s := p.Sec + sec
	w := math.Floor(s / (DAYSEC * 7))
	return GTime{Week: p.Week + int(w), Sec: s - w*DAYSEC*7}
}

// ------------------------------------
// Time scales
// ------------------------------------

// Modified Julian Date in GPS time scale
func (p *GTime) MJD() float64 {
	return MJDGPS0 + float64(p.Week)*7 + p.Sec/DAYSEC
}

// Modified Julian Date in TAI
func (p *GTime) MjdTAI() float64 {
	return p.MJD() + GPST2TAI/DAYSEC
}

// Modified Julian Date in TT
func (p *GTime) MjdTT() float64 {
	return p.MJD() + (GPST2TAI+TT2TAI)/DAYSEC
}

// Modified Julian Date in UTC
func (p *GTime) MjdUTC() float64 {
	tai := p.MjdTAI()
	return tai - leapSecTAI(tai)/DAYSEC
}

// Julian Date in TT (used as ephemeris argument)
func (p *GTime) JdTT() float64 {
	return p.MjdTT() + MJD0
}

// Julian Date in UTC (calendar based, for display)
func (p *GTime) JdUTC() float64 {
	return julian.TimeToJD(p.UTC())
}

// UTC instant
func (p *GTime) UTC() time.Time {
	ls := leapSecTAI(p.MjdTAI()) - GPST2TAI
	return p.ToTime().Add(-time.Duration(ls * float64(time.Second))).UTC()
}

// Julian centuries of TT since J2000.0
func (p *GTime) CenturiesTT() float64 {
	return (p.MjdTT() + MJD0 - J2000) / DJC
}

// Fraction of UTC day in hours
func (p *GTime) HoursUTC() float64 {
	m := p.MjdUTC()
	return (m - math.Floor(m)) * 24
}

// ------------------------------------
// Leap seconds
// ------------------------------------

type leapEntry struct {
	mjd float64 // UTC MJD the offset takes effect
	dat float64 // TAI-UTC [s]
}

var leapTable = []leapEntry{
	{41317, 10}, {41499, 11}, {41683, 12}, {42048, 13}, {42413, 14},
	{42778, 15}, {43144, 16}, {43509, 17}, {43874, 18}, {44239, 19},
	{44786, 20}, {45151, 21}, {45516, 22}, {46247, 23}, {47161, 24},
	{47892, 25}, {48257, 26}, {48804, 27}, {49169, 28}, {49534, 29},
	{50083, 30}, {50630, 31}, {51179, 32}, {53736, 33}, {54832, 34},
	{56109, 35}, {57204, 36}, {57754, 37},
}

// TAI-UTC [s] at a UTC Modified Julian Date (10 s before 1972)
func LeapSec(mjd float64) float64 {
	i, found := slices.BinarySearchFunc(leapTable, mjd, func(e leapEntry, t float64) int {
		switch {
		case e.mjd < t:
			return -1
		case e.mjd > t:
			return 1
		}
		return 0
	})
	if found {
		return leapTable[i].dat
	}
	if i == 0 {
		return leapTable[0].dat
	}
	return leapTable[i-1].dat
}

// TAI-UTC [s] at a TAI Modified Julian Date
func leapSecTAI(tai float64) float64 {
	const eps = 1e-4 / DAYSEC
	for i := len(leapTable) - 1; i > 0; i-- {
		if e := leapTable[i]; tai >= e.mjd+e.dat/DAYSEC-eps {
			return e.dat
		}
	}
	return leapTable[0].dat
}

func utcMJD(t time.Time) float64 {
	return float64(t.Unix())/DAYSEC + 40587.0 + float64(t.Nanosecond())/1e9/DAYSEC
}
