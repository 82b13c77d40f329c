// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"math"
)

// Secular polar motion model
type MeanPoleModel int

const (
	MeanPoleIERS2010 MeanPoleModel = iota // Cubic until 2010.0, linear after (IERS 2010)
	MeanPoleSecular                       // Linear secular pole (IERS 2018 update)
)

// Mean pole (x, y) [arcsec] at mjd
func MeanPole(mjd float64, model MeanPoleModel) (xm, ym float64) {
	y := (mjd - (J2000 - MJD0)) / 365.25 // Years since J2000.0
	switch model {
	case MeanPoleSecular:
		xm = 55.0 + 1.677*y
		ym = 320.5 + 3.460*y
	default:
		if mjd < MJDPOLE {
			xm = 55.974 + (1.8243+(0.18413+0.007024*y)*y)*y
			ym = 346.346 + (1.7896+(-0.10729-0.000908*y)*y)*y
		} else {
			xm = 23.513 + 7.6141*y
			ym = 358.891 - 0.6287*y
		}
	}
	return xm * 1e-3, ym * 1e-3
}

// Wobble (m1, m2) [arcsec] from the pole [rad]
func wobble(mjd, xp, yp float64, model MeanPoleModel) (m1, m2 float64) {
	xm, ym := MeanPole(mjd, model)
	m1 = xp/AS2R - xm
	m2 = -(yp/AS2R - ym)
	return m1, m2
}

// Rotational deformation due to polar motion, local (east, north, up) [m]
func poleTideENU(llh PosLLH, m1, m2 float64) PosENU {
	sinl, cosl := math.Sincos(llh.Lon)
	a := m1*cosl + m2*sinl
	return PosENU{
		E: 9e-3 * math.Sin(llh.Lat) * (m1*sinl - m2*cosl),
		N: -9e-3 * math.Cos(2*llh.Lat) * a,
		U: -33e-3 * math.Sin(2*llh.Lat) * a,
	}
}

// ------------------------------------
// Ocean pole tide loading
// ------------------------------------

const (
	gravConst = 6.67428e-11 // Constant of gravitation [m^3/kg/s^2]
	rhoWater  = 1025.0      // Density of sea water [kg/m^3]
	gravEq    = 9.7803278   // Mean equatorial gravity [m/s^2]
)

// Degree 2 load Love number ratio (1 + k2 - h2)
var gamma2 = complex(0.6870, 0.0036)

// Ocean pole tide scale factor K [m]
func oceanPoleK() float64 {
	hp := math.Sqrt(8*PI/15) * OMGE * OMGE * math.Pow(REIERS, 4) / GME
	return 4 * PI * gravConst * REIERS * rhoWater * hp / (3 * gravEq)
}

// Ocean pole tide loading, local (east, north, up) [m]; m1, m2 [rad]
func oceanPoleENU(c OPoleCoef, m1, m2 float64) PosENU {
	k := oceanPoleK()
	gr, gi := real(gamma2), imag(gamma2)
	a := m1*gr + m2*gi
	b := m2*gr - m1*gi
	var d [3]float64
	for i := 0; i < 3; i++ {
		d[i] = k * (a*c.R[i] + b*c.I[i])
	}
	return PosENU{E: d[1], N: d[0], U: d[2]}
}
