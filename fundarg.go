// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import "math"

// Delaunay and planetary fundamental arguments [rad]
type FundArgs struct {
	L  float64 // Mean anomaly of the Moon
	Lp float64 // Mean anomaly of the Sun
	F  float64 // Mean argument of latitude of the Moon
	D  float64 // Mean elongation of the Moon from the Sun
	Om float64 // Mean longitude of the ascending node of the Moon

	Me, Ve, E, Ma, Ju, Sa, Ur, Ne float64 // Mean longitudes of the planets
	Pa                            float64 // General accumulated precession in longitude
}

// Fundamental arguments (IERS 2003) at t Julian centuries of TT since J2000.0
func NewFundArgs(t float64) FundArgs {
	f := func(c0, c1, c2, c3, c4 float64) float64 {
		return math.Mod(c0+(c1+(c2+(c3+c4*t)*t)*t)*t, TURNAS) * AS2R
	}
	pl := func(c0, c1 float64) float64 {
		return math.Mod(c0+c1*t, 2*PI)
	}
	return FundArgs{
		L:  f(485868.249036, 1717915923.2178, 31.8792, 0.051635, -0.00024470),
		Lp: f(1287104.793048, 129596581.0481, -0.5532, 0.000136, -0.00001149),
		F:  f(335779.526232, 1739527262.8478, -12.7512, -0.001037, 0.00000417),
		D:  f(1072260.703692, 1602961601.2090, -6.3706, 0.006593, -0.00003169),
		Om: f(450160.398036, -6962890.5431, 7.4722, 0.007702, -0.00005939),
		Me: pl(4.402608842, 2608.7903141574),
		Ve: pl(3.176146697, 1021.3285546211),
		E:  pl(1.753470314, 628.3075849991),
		Ma: pl(6.203480913, 334.0612426700),
		Ju: pl(0.599546497, 52.9690962641),
		Sa: pl(0.874016757, 21.3299104960),
		Ur: pl(5.481293872, 7.4781598567),
		Ne: pl(5.311886287, 3.8133035638),
		Pa: (0.024381750 + 0.00000538691*t) * t,
	}
}

// Linear combination n[0]*l + n[1]*l' + n[2]*F + n[3]*D + n[4]*Om
func (fa *FundArgs) Arg(n [5]int) float64 {
	return float64(n[0])*fa.L + float64(n[1])*fa.Lp + float64(n[2])*fa.F +
		float64(n[3])*fa.D + float64(n[4])*fa.Om
}

// Linear combination over l, l', F, D, Om, Ve, E, pA
func (fa *FundArgs) Arg8(n [8]int) float64 {
	return fa.Arg([5]int{n[0], n[1], n[2], n[3], n[4]}) +
		float64(n[5])*fa.Ve + float64(n[6])*fa.E + float64(n[7])*fa.Pa
}
