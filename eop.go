// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"sync"

	"golang.org/x/exp/slices"
)

// One row of an Earth orientation parameter table
type EopSample struct {
	MJD     float64 // Epoch (UTC)
	Xp      float64 // Pole x [arcsec]
	Yp      float64 // Pole y [arcsec]
	UT1mTAI float64 // UT1-TAI [s]
	DX      float64 // Celestial pole offset dX [arcsec]
	DY      float64 // Celestial pole offset dY [arcsec]
}

// UT1-UTC [s]
func (s *EopSample) UT1mUTC() float64 {
	return s.UT1mTAI + LeapSec(s.MJD)
}

// Interpolation order of the EOP series
type EopInterp int

const (
	EopLinear    EopInterp = iota // 2-point linear
	EopLagrange4                  // 4-point Lagrange
)

// Time ordered EOP series shared by readers (single writer)
type EopSeries struct {
	mu    sync.RWMutex
	rows  []EopSample
	order EopInterp
}

func NewEopSeries(order EopInterp) *EopSeries {
	return &EopSeries{order: order}
}

func cmpEopMJD(e EopSample, mjd float64) int {
	switch {
	case e.MJD < mjd:
		return -1
	case e.MJD > mjd:
		return 1
	}
	return 0
}

// Add rows (a row with an existing epoch replaces it)
func (s *EopSeries) Add(rows ...EopSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		i, found := slices.BinarySearchFunc(s.rows, r.MJD, cmpEopMJD)
		if found {
			s.rows[i] = r
		} else {
			s.rows = slices.Insert(s.rows, i, r)
		}
	}
}

// Add a row given UT1-UTC as published
func (s *EopSeries) AddUTC(mjd, xp, yp, ut1mutc, dx, dy float64) {
	s.Add(EopSample{MJD: mjd, Xp: xp, Yp: yp, UT1mTAI: ut1mutc - LeapSec(mjd), DX: dx, DY: dy})
}

func (s *EopSeries) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// First and last epochs
func (s *EopSeries) Span() (first, last float64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.rows) == 0 {
		return 0, 0, false
	}
	return s.rows[0].MJD, s.rows[len(s.rows)-1].MJD, true
}

// Interpolate at a UTC MJD. Outside the table the nearest row is held
// flat and inRange is false.
func (s *EopSeries) Interp(mjd float64) (eop EopSample, inRange bool) {
	if s == nil {
		return EopSample{MJD: mjd}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.rows)
	if n == 0 {
		return EopSample{MJD: mjd}, false
	}
	if mjd < s.rows[0].MJD || mjd > s.rows[n-1].MJD {
		eop = s.rows[0]
		if mjd > s.rows[n-1].MJD {
			eop = s.rows[n-1]
		}
		eop.MJD = mjd
		PrintW("eop: mjd=%.5f outside table [%.5f, %.5f]\n", mjd, s.rows[0].MJD, s.rows[n-1].MJD)
		return eop, false
	}
	i, found := slices.BinarySearchFunc(s.rows, mjd, cmpEopMJD)
	if found {
		return s.rows[i], true
	}

	// rows[i-1] < mjd < rows[i]
	if s.order == EopLagrange4 && i >= 2 && i+1 < n {
		return lagrangeEop(s.rows[i-2:i+2], mjd), true
	}
	return linearEop(&s.rows[i-1], &s.rows[i], mjd), true
}

func linearEop(a, b *EopSample, mjd float64) EopSample {
	k := (mjd - a.MJD) / (b.MJD - a.MJD)
	f := func(x, y float64) float64 { return x + (y-x)*k }
	return EopSample{
		MJD:     mjd,
		Xp:      f(a.Xp, b.Xp),
		Yp:      f(a.Yp, b.Yp),
		UT1mTAI: f(a.UT1mTAI, b.UT1mTAI),
		DX:      f(a.DX, b.DX),
		DY:      f(a.DY, b.DY),
	}
}

func lagrangeEop(r []EopSample, mjd float64) EopSample {
	var w [4]float64
	for i := range w {
		w[i] = 1
		for j := range w {
			if i != j {
				w[i] *= (mjd - r[j].MJD) / (r[i].MJD - r[j].MJD)
			}
		}
	}
	e := EopSample{MJD: mjd}
	for i := range w {
		e.Xp += w[i] * r[i].Xp
		e.Yp += w[i] * r[i].Yp
		e.UT1mTAI += w[i] * r[i].UT1mTAI
		e.DX += w[i] * r[i].DX
		e.DY += w[i] * r[i].DY
	}
	return e
}
