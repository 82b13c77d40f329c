// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"fmt"
	"math"
	"strings"
)

//-------------------------------------------------------------------
// Bodies
//-------------------------------------------------------------------

// Body id (1: Mercury ... 9: Pluto, 10: Moon, 11: Sun, 12: SSB, 13: EMB)
type Body int

const (
	Mercury Body = iota + 1
	Venus
	Earth
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Moon
	Sun
	SSB // Solar system barycenter
	EMB // Earth-Moon barycenter
)

var bodyNames = [...]string{"", "MERCURY", "VENUS", "EARTH", "MARS", "JUPITER", "SATURN",
	"URANUS", "NEPTUNE", "PLUTO", "MOON", "SUN", "SSB", "EMB"}

func (b Body) String() string {
	if b < Mercury || b > EMB {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// Look up a body by name (case insensitive)
func BodyByName(name string) (Body, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	switch s {
	case "SOLAR SYSTEM BARYCENTER":
		return SSB, nil
	case "EARTH-MOON BARYCENTER":
		return EMB, nil
	}
	for i := Mercury; i <= EMB; i++ {
		if bodyNames[i] == s {
			return i, nil
		}
	}
	return 0, &UnknownBodyError{Name: name}
}

//-------------------------------------------------------------------
// Header
//-------------------------------------------------------------------

// Coefficient block slots in a record
const (
	SlotMercury = iota
	SlotVenus
	SlotEMB
	SlotMars
	SlotJupiter
	SlotSaturn
	SlotUranus
	SlotNeptune
	SlotPluto
	SlotMoon // Geocentric Moon
	SlotSun
	SlotNutation
	SlotLibration
	NSLOT
)

// Components per slot
func slotDim(slot int) int {
	if slot == SlotNutation {
		return 2
	}
	return 3
}

// Layout of one body's coefficients within a record
type BodyDesc struct {
	Offset int     // Coefficient offset in record (1-based, 0: absent)
	Ncf    int     // Coefficients per component
	Na     int     // Sub-intervals per record
	GM     float64 // Gravitational parameter [km^3/day^2]
	Radius float64 // Body radius [km]
}

type EphemerisHeader struct {
	Start float64         // Start epoch [JD]
	End   float64         // End epoch [JD]
	Days  float64         // Record length [day]
	Desc  [NSLOT]BodyDesc // Per-slot descriptors
	Emrat float64         // Earth/Moon mass ratio
	AU    float64         // Astronomical unit [km]
	DE    int             // Ephemeris number
}

// Number of doubles in a record (including the two epoch words)
func (h *EphemerisHeader) RecordLen() int {
	n := 0
	for i, d := range h.Desc {
		if d.Offset <= 0 {
			continue
		}
		if e := d.Offset - 1 + d.Ncf*d.Na*slotDim(i); e > n {
			n = e
		}
	}
	return n
}

func (h *EphemerisHeader) validate() error {
	if !(h.Days > 0) {
		return fmt.Errorf("invalid record length %f", h.Days)
	}
	if h.End < h.Start {
		return fmt.Errorf("invalid interval [%f, %f]", h.Start, h.End)
	}
	for i, d := range h.Desc {
		if d.Offset == 0 {
			continue
		}
		if d.Offset < 0 || d.Ncf < 1 || d.Na < 1 {
			return fmt.Errorf("invalid descriptor for slot %d: %+v", i, d)
		}
	}
	return nil
}

//-------------------------------------------------------------------
// Record source
//-------------------------------------------------------------------

// Supplier of coefficient records (0-based record index)
type RecordSource interface {
	Record(n int) ([]float64, error)
	NumRecords() int
}

// Records resident in memory
type MemRecords [][]float64

func (m MemRecords) Record(n int) ([]float64, error) {
	if n < 0 || n >= len(m) {
		return nil, fmt.Errorf("record %d not available (%d records)", n, len(m))
	}
	return m[n], nil
}

func (m MemRecords) NumRecords() int {
	return len(m)
}

//-------------------------------------------------------------------
// Ephemeris
//-------------------------------------------------------------------

// Chebyshev ephemeris interpolator (read-only after construction)
type Ephemeris struct {
	Header EphemerisHeader
	src    RecordSource
}

func NewEphemeris(h EphemerisHeader, src RecordSource) (*Ephemeris, error) {
	if err := h.validate(); err != nil {
		return nil, fmt.Errorf("NewEphemeris() failed, err=%v", err)
	}
	if src == nil {
		return nil, fmt.Errorf("NewEphemeris() failed, err=no record source")
	}
	return &Ephemeris{Header: h, src: src}, nil
}

// Locate the record covering jd and the normalized time within it
func (e *Ephemeris) locate(jd float64) ([]float64, float64, error) {
	h := &e.Header
	if jd < h.Start || jd > h.End {
		return nil, 0, &OutOfRangeError{What: "ephemeris", Epoch: jd, Start: h.Start, End: h.End}
	}
	loc := (jd - h.Start) / h.Days
	nr := int(loc)
	t0 := loc - float64(nr)
	if t0 == 0 && nr != 0 {
		// Epoch on a record boundary belongs to the end of the previous record
		t0 = 1
		nr--
	}
	if nr >= e.src.NumRecords() {
		return nil, 0, &OutOfRangeError{What: "ephemeris record", Epoch: jd, Start: h.Start, End: h.End}
	}
	rec, err := e.src.Record(nr)
	if err != nil {
		return nil, 0, fmt.Errorf("record %d: %w", nr, err)
	}
	return rec, t0, nil
}

// Chebyshev interpolation of one coefficient block.
// t0 is the fraction of the record [0,1]; velocity is per day when vel != nil.
func chebInterp(coef []float64, t0, days float64, ncf, ncm, na int, pos, vel []float64) {
	dna := float64(na)
	ip, fp := math.Modf(dna * t0)
	l := int(ip)
	tc := 2*fp - 1
	if l == na {
		l--
		tc = 1
	}

	// Basis T_i(tc) is rebuilt on every call
	pc := make([]float64, max(ncf, 2))
	pc[0] = 1
	pc[1] = tc
	twot := tc + tc
	for i := 2; i < ncf; i++ {
		pc[i] = twot*pc[i-1] - pc[i-2]
	}
	for i := 0; i < ncm; i++ {
		c := coef[ncf*(i+l*ncm):]
		pos[i] = 0
		for j := 0; j < ncf; j++ {
			pos[i] += pc[j] * c[j]
		}
	}
	if vel == nil {
		return
	}

	// Derivative basis T'_i(tc)
	vc := make([]float64, max(ncf, 2))
	vc[0] = 0
	vc[1] = 1
	for i := 2; i < ncf; i++ {
		vc[i] = twot*vc[i-1] + 2*pc[i-1] - vc[i-2]
	}
	vfac := (dna + dna) / days
	for i := 0; i < ncm; i++ {
		c := coef[ncf*(i+l*ncm):]
		v := 0.0
		for j := 1; j < ncf; j++ {
			v += vc[j] * c[j]
		}
		vel[i] = v * vfac
	}
}

// Interpolate one slot of a record
func (e *Ephemeris) interpSlot(rec []float64, t0 float64, slot int, pos, vel []float64) error {
	d := e.Header.Desc[slot]
	if d.Offset <= 0 {
		return fmt.Errorf("slot %d not in ephemeris", slot)
	}
	ncm := slotDim(slot)
	if need := d.Offset - 1 + d.Ncf*d.Na*ncm; need > len(rec) {
		return fmt.Errorf("slot %d needs %d coefficients, record has %d", slot, need, len(rec))
	}
	chebInterp(rec[d.Offset-1:], t0, e.Header.Days, d.Ncf, ncm, d.Na, pos, vel)
	return nil
}

// Barycentric state of a body from slots of one record
type bodyState struct {
	pos [3]float64
	vel [3]float64
}

func (e *Ephemeris) slotState(rec []float64, t0 float64, slot int, withVel bool) (bodyState, error) {
	var s bodyState
	var vel []float64
	if withVel {
		vel = s.vel[:]
	}
	if e.Header.Desc[slot].Offset <= 0 {
		return s, &UnknownBodyError{Name: slotName(slot)}
	}
	err := e.interpSlot(rec, t0, slot, s.pos[:], vel)
	return s, err
}

func slotName(slot int) string {
	switch slot {
	case SlotEMB:
		return "EMB"
	case SlotMoon:
		return "MOON"
	case SlotSun:
		return "SUN"
	case SlotNutation:
		return "NUTATION"
	case SlotLibration:
		return "LIBRATION"
	}
	return Body(slot + 1).String()
}

func (s bodyState) sub(b bodyState) bodyState {
	for i := 0; i < 3; i++ {
		s.pos[i] -= b.pos[i]
		s.vel[i] -= b.vel[i]
	}
	return s
}

// State of target relative to center [km, km/day]
func (e *Ephemeris) state(jd float64, target, center Body, withVel bool) (bodyState, error) {
	var zero bodyState
	for _, b := range [...]Body{target, center} {
		if b < Mercury || b > EMB {
			return zero, &UnknownBodyError{Name: b.String()}
		}
	}
	if target == center {
		return zero, nil
	}
	rec, t0, err := e.locate(jd)
	if err != nil {
		return zero, err
	}

	// Earth-Moon pair: geocentric Moon is read directly
	if isEarthMoonPair(target, center) {
		moon, err := e.slotState(rec, t0, SlotMoon, withVel)
		if err != nil {
			return zero, err
		}
		if target == Moon {
			return moon, nil
		}
		return zero.sub(moon), nil
	}

	get := func(b Body) (bodyState, error) {
		switch b {
		case SSB:
			return bodyState{}, nil
		case Sun:
			return e.slotState(rec, t0, SlotSun, withVel)
		case EMB:
			return e.slotState(rec, t0, SlotEMB, withVel)
		case Earth, Moon:
			emb, err := e.slotState(rec, t0, SlotEMB, withVel)
			if err != nil {
				return bodyState{}, err
			}
			moon, err := e.slotState(rec, t0, SlotMoon, withVel)
			if err != nil {
				return bodyState{}, err
			}
			// Earth = EMB - Moon/(1+emrat), Moon = Moon(geocentric) + Earth
			k := 1 / (1 + e.Header.Emrat)
			var earth bodyState
			for i := 0; i < 3; i++ {
				earth.pos[i] = emb.pos[i] - moon.pos[i]*k
				earth.vel[i] = emb.vel[i] - moon.vel[i]*k
			}
			if b == Earth {
				return earth, nil
			}
			for i := 0; i < 3; i++ {
				moon.pos[i] += earth.pos[i]
				moon.vel[i] += earth.vel[i]
			}
			return moon, nil
		default:
			return e.slotState(rec, t0, int(b)-1, withVel)
		}
	}
	t, err := get(target)
	if err != nil {
		return zero, err
	}
	c, err := get(center)
	if err != nil {
		return zero, err
	}
	return t.sub(c), nil
}

func isEarthMoonPair(a, b Body) bool {
	return (a == Earth && b == Moon) || (a == Moon && b == Earth)
}

// Position of a named body relative to the solar system barycenter [km]
func (e *Ephemeris) Position(jd float64, name string) (Vec3, error) {
	b, err := BodyByName(name)
	if err != nil {
		return Vec3{}, err
	}
	s, err := e.state(jd, b, SSB, false)
	if err != nil {
		return Vec3{}, err
	}
	return NewVec3(s.pos[0], s.pos[1], s.pos[2], Kilometer), nil
}

// Position [km] and velocity [km/day] of target relative to center
func (e *Ephemeris) PositionVelocity(jd float64, target, center Body) (pos, vel Vec3, err error) {
	s, err := e.state(jd, target, center, true)
	if err != nil {
		return Vec3{}, Vec3{}, err
	}
	pos = NewVec3(s.pos[0], s.pos[1], s.pos[2], Kilometer)
	vel = NewVec3(s.vel[0], s.vel[1], s.vel[2], Kilometer)
	return pos, vel, nil
}

// Position of target relative to center [km]
func (e *Ephemeris) RelPosition(jd float64, target, center Body) (Vec3, error) {
	s, err := e.state(jd, target, center, false)
	if err != nil {
		return Vec3{}, err
	}
	return NewVec3(s.pos[0], s.pos[1], s.pos[2], Kilometer), nil
}

// Nutation angles from the ephemeris (dpsi, deps) [rad]
func (e *Ephemeris) Nutation(jd float64) (dpsi, deps float64, err error) {
	rec, t0, err := e.locate(jd)
	if err != nil {
		return 0, 0, err
	}
	var p [2]float64
	if err := e.interpSlot(rec, t0, SlotNutation, p[:], nil); err != nil {
		return 0, 0, err
	}
	return p[0], p[1], nil
}

// Geocentric Sun and Moon [km] (SunMoonProvider)
func (e *Ephemeris) SunMoon(jdTT float64) (sun, moon Vec3, err error) {
	sun, err = e.RelPosition(jdTT, Sun, Earth)
	if err != nil {
		return Vec3{}, Vec3{}, fmt.Errorf("SunMoon() failed, err=%w", err)
	}
	moon, err = e.RelPosition(jdTT, Moon, Earth)
	if err != nil {
		return Vec3{}, Vec3{}, fmt.Errorf("SunMoon() failed, err=%w", err)
	}
	return sun, moon, nil
}
