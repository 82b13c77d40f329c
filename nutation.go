// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import "math"

// Nutation series
type NutationModel int

const (
	Nut00A NutationModel = iota // IAU 2000A, 1365 terms
	Nut00B                      // IAU 2000B, 77 terms
)

// Luni-solar nutation term (amplitudes in 0.1 micro-arcsec)
type nutTerm struct {
	n           [5]int // Multipliers of l, l', F, D, Om
	ps, pst, pc float64
	ec, ect, es float64
}

// IAU 2000B luni-solar nutation series
var nut00bTerms = [...]nutTerm{
	{[5]int{0, 0, 0, 0, 1}, -172064161, -174666, 33386, 92052331, 9086, 15377},
	{[5]int{0, 0, 2, -2, 2}, -13170906, -1675, -13696, 5730336, -3015, -4587},
	{[5]int{0, 0, 2, 0, 2}, -2276413, -234, 2796, 978459, -485, 1374},
	{[5]int{0, 0, 0, 0, 2}, 2074554, 207, -698, -897492, 470, -291},
	{[5]int{0, 1, 0, 0, 0}, 1475877, -3633, 11817, 73871, -184, -1924},
	{[5]int{0, 1, 2, -2, 2}, -516821, 1226, -524, 224386, -677, -174},
	{[5]int{1, 0, 0, 0, 0}, 711159, 73, -872, -6750, 0, 358},
	{[5]int{0, 0, 2, 0, 1}, -387298, -367, 380, 200728, 18, 318},
	{[5]int{1, 0, 2, 0, 2}, -301461, -36, 816, 129025, -63, 367},
	{[5]int{0, -1, 2, -2, 2}, 215829, -494, 111, -95929, 299, 132},
	{[5]int{0, 0, 2, -2, 1}, 128227, 137, 181, -68982, -9, 39},
	{[5]int{-1, 0, 2, 0, 2}, 123457, 11, 19, -53311, 32, -4},
	{[5]int{-1, 0, 0, 2, 0}, 156994, 10, -168, -1235, 0, 82},
	{[5]int{1, 0, 0, 0, 1}, 63110, 63, 27, -33228, 0, -9},
	{[5]int{-1, 0, 0, 0, 1}, -57976, -63, -189, 31429, 0, -75},
	{[5]int{-1, 0, 2, 2, 2}, -59641, -11, 149, 25543, -11, 66},
	{[5]int{1, 0, 2, 0, 1}, -51613, -42, 129, 26366, 0, 78},
	{[5]int{-2, 0, 2, 0, 1}, 45893, 50, 31, -24236, -10, 20},
	{[5]int{0, 0, 0, 2, 0}, 63384, 11, -150, -1220, 0, 29},
	{[5]int{0, 0, 2, 2, 2}, -38571, -1, 158, 16452, -11, 68},
	{[5]int{0, -2, 2, -2, 2}, 32481, 0, 0, -13870, 0, 0},
	{[5]int{-2, 0, 0, 2, 0}, -47722, 0, -18, 477, 0, -25},
	{[5]int{2, 0, 2, 0, 2}, -31046, -1, 131, 13238, -11, 59},
	{[5]int{1, 0, 2, -2, 2}, 28593, 0, -1, -12338, 10, -3},
	{[5]int{-1, 0, 2, 0, 1}, 20441, 21, 10, -10758, 0, -3},
	{[5]int{2, 0, 0, 0, 0}, 29243, 0, -74, -609, 0, 13},
	{[5]int{0, 0, 2, 0, 0}, 25887, 0, -66, -550, 0, 11},
	{[5]int{0, 1, 0, 0, 1}, -14053, -25, 79, 8551, -2, -45},
	{[5]int{-1, 0, 0, 2, 1}, 15164, 10, 11, -8001, 0, -1},
	{[5]int{0, 2, 2, -2, 2}, -15794, 72, -16, 6850, -42, -5},
	{[5]int{0, 0, -2, 2, 0}, 21783, 0, 13, -167, 0, 13},
	{[5]int{1, 0, 0, -2, 1}, -12873, -10, -37, 6953, 0, -14},
	{[5]int{0, -1, 0, 0, 1}, -12654, 11, 63, 6415, 0, 26},
	{[5]int{-1, 0, 2, 2, 1}, -10204, 0, 25, 5222, 0, 15},
	{[5]int{0, 2, 0, 0, 0}, 16707, -85, -10, 168, -1, 10},
	{[5]int{1, 0, 2, 2, 2}, -7691, 0, 44, 3268, 0, 19},
	{[5]int{-2, 0, 2, 0, 0}, -11024, 0, -14, 104, 0, 2},
	{[5]int{0, 1, 2, 0, 2}, 7566, -21, -11, -3250, 0, -5},
	{[5]int{0, 0, 2, 2, 1}, -6637, -11, 25, 3353, 0, 14},
	{[5]int{0, -1, 2, 0, 2}, -7141, 21, 8, 3070, 0, 4},
	{[5]int{0, 0, 0, 2, 1}, -6302, -11, 2, 3272, 0, 4},
	{[5]int{1, 0, 2, -2, 1}, 5800, 10, 2, -3045, 0, -1},
	{[5]int{2, 0, 2, -2, 2}, 6443, 0, -7, -2768, 0, -4},
	{[5]int{-2, 0, 0, 2, 1}, -5774, -11, -15, 3041, 0, -5},
	{[5]int{2, 0, 2, 0, 1}, -5350, 0, 21, 2695, 0, 12},
	{[5]int{0, -1, 2, -2, 1}, -4752, -11, -3, 2719, 0, -3},
	{[5]int{0, 0, 0, -2, 1}, -4940, -11, -21, 2720, 0, -9},
	{[5]int{-1, -1, 0, 2, 0}, 7350, 0, -8, -51, 0, 4},
	{[5]int{2, 0, 0, -2, 1}, 4065, 0, 6, -2206, 0, 1},
	{[5]int{1, 0, 0, 2, 0}, 6579, 0, -24, -199, 0, 2},
	{[5]int{0, 1, 2, -2, 1}, 3579, 0, 5, -1900, 0, 1},
	{[5]int{1, -1, 0, 0, 0}, 4725, 0, -6, -41, 0, 3},
	{[5]int{-2, 0, 2, 0, 2}, -3075, 0, -2, 1313, 0, -1},
	{[5]int{3, 0, 2, 0, 2}, -2904, 0, 15, 1233, 0, 7},
	{[5]int{0, -1, 0, 2, 0}, 4348, 0, -10, -81, 0, 2},
	{[5]int{1, -1, 2, 0, 2}, -2878, 0, 8, 1232, 0, 4},
	{[5]int{0, 0, 0, 1, 0}, -4230, 0, 5, -20, 0, -2},
	{[5]int{-1, -1, 2, 2, 2}, -2819, 0, 7, 1207, 0, 3},
	{[5]int{-1, 0, 2, 0, 0}, -4056, 0, 5, 40, 0, -2},
	{[5]int{0, -1, 2, 2, 2}, -2647, 0, 11, 1129, 0, 5},
	{[5]int{-2, 0, 0, 0, 1}, -2294, 0, -10, 1266, 0, -4},
	{[5]int{1, 1, 2, 0, 2}, 2481, 0, -7, -1062, 0, -3},
	{[5]int{2, 0, 0, 0, 1}, 2179, 0, -2, -1129, 0, -2},
	{[5]int{-1, 1, 0, 1, 0}, 3276, 0, 1, -9, 0, 0},
	{[5]int{1, 1, 0, 0, 0}, -3389, 0, 5, 35, 0, -2},
	{[5]int{1, 0, 2, 0, 0}, 3339, 0, -13, -107, 0, 1},
	{[5]int{-1, 0, 2, -2, 1}, -1987, 0, -6, 1073, 0, -2},
	{[5]int{1, 0, 0, 0, 2}, -1981, 0, 0, 854, 0, 0},
	{[5]int{-1, 0, 0, 1, 0}, 4026, 0, -353, -553, 0, -139},
	{[5]int{0, 0, 2, 1, 2}, 1660, 0, -5, -710, 0, -2},
	{[5]int{-1, 0, 2, 4, 2}, -1521, 0, 9, 647, 0, 4},
	{[5]int{-1, 1, 0, 1, 1}, 1314, 0, 0, -700, 0, 0},
	{[5]int{0, -2, 2, -2, 1}, -1283, 0, 0, 672, 0, 0},
	{[5]int{1, 0, 2, 2, 1}, -1331, 0, 8, 663, 0, 4},
	{[5]int{-2, 0, 2, 2, 2}, 1383, 0, -2, -594, 0, -2},
	{[5]int{-1, 0, 0, 0, 2}, 1405, 0, 4, -610, 0, 2},
	{[5]int{1, 1, 2, -2, 2}, 1290, 0, 0, -556, 0, 0},
}

// Nutation in longitude and obliquity [rad] (IAU 2000B) at t Julian centuries of TT
func Nutation00B(t float64) (dpsi, deps float64) {
	const u2r = AS2R / 1e7

	// Linear fundamental arguments of the truncated model
	fa := FundArgs{
		L:  math.Mod(485868.249036+1717915923.2178*t, TURNAS) * AS2R,
		Lp: math.Mod(1287104.79305+129596581.0481*t, TURNAS) * AS2R,
		F:  math.Mod(335779.526232+1739527262.8478*t, TURNAS) * AS2R,
		D:  math.Mod(1072260.70369+1602961601.2090*t, TURNAS) * AS2R,
		Om: math.Mod(450160.398036-6962890.5431*t, TURNAS) * AS2R,
	}

	// Smallest terms first
	dp, de := 0.0, 0.0
	for i := len(nut00bTerms) - 1; i >= 0; i-- {
		n := &nut00bTerms[i]
		s, c := math.Sincos(math.Mod(fa.Arg(n.n), 2*PI))
		dp += (n.ps+n.pst*t)*s + n.pc*c
		de += (n.ec+n.ect*t)*c + n.es*s
	}

	// Fixed offsets in lieu of planetary terms
	dpsi = dp*u2r - 0.135*MAS2R
	deps = de*u2r + 0.388*MAS2R
	return dpsi, deps
}

// Nutation in longitude and obliquity [rad] (IAU 2000A) at t Julian centuries of TT
func Nutation00A(t float64) (dpsi, deps float64) {
	const u2r = AS2R / 1e7
	fa := NewFundArgs(t)

	// Luni-solar
	dp, de := 0.0, 0.0
	for i := len(nut00aLsTerms) - 1; i >= 0; i-- {
		n := &nut00aLsTerms[i]
		s, c := math.Sincos(math.Mod(fa.Arg(n.n), 2*PI))
		dp += (n.ps+n.pst*t)*s + n.pc*c
		de += (n.ec+n.ect*t)*c + n.es*s
	}
	dpsi, deps = dp*u2r, de*u2r

	// Planetary, with the MHB2000 lunar arguments and Neptune longitude
	a := [14]float64{
		math.Mod(2.35555598+8328.6914269554*t, 2*PI),
		0,
		math.Mod(1.627905234+8433.466158131*t, 2*PI),
		math.Mod(5.198466741+7771.3771468121*t, 2*PI),
		math.Mod(2.18243920-33.757045*t, 2*PI),
		fa.Me, fa.Ve, fa.E, fa.Ma, fa.Ju, fa.Sa, fa.Ur,
		math.Mod(5.321159000+3.8127774000*t, 2*PI),
		fa.Pa,
	}
	dp, de = 0, 0
	for i := len(nut00aPlTerms) - 1; i >= 0; i-- {
		n := &nut00aPlTerms[i]
		arg := 0.0
		for j, k := range n.n {
			arg += float64(k) * a[j]
		}
		s, c := math.Sincos(math.Mod(arg, 2*PI))
		dp += n.ps*s + n.pc*c
		de += n.es*s + n.ec*c
	}
	return dpsi + dp*u2r, deps + de*u2r
}

// IAU 2000 nutation by series
func Nutation00(t float64, m NutationModel) (dpsi, deps float64) {
	if m == Nut00B {
		return Nutation00B(t)
	}
	return Nutation00A(t)
}

// Nutation adjusted to the IAU 2006 precession
func Nutation06(t float64, m NutationModel) (dpsi, deps float64) {
	dp, de := Nutation00(t, m)
	fj2 := -2.7774e-6 * t
	return dp * (1 + 0.4697e-6 + fj2), de * (1 + fj2)
}

// Mean obliquity of the ecliptic (IAU 1980, used with IAU 2000) [rad]
func meanObliquity80(t float64) float64 {
	return (84381.448 + (-46.8150+(-0.00059+0.001813*t)*t)*t) * AS2R
}

// Mean obliquity with the IAU 2000 precession rate correction [rad]
func meanObliquity00(t float64) float64 {
	return meanObliquity80(t) - 0.02524*AS2R*t
}

// Mean obliquity of the ecliptic (IAU 2006) [rad]
func meanObliquity06(t float64) float64 {
	return (84381.406 + (-46.836769+(-0.0001831+(0.00200340+(-0.000000576-0.0000000434*t)*t)*t)*t)*t) * AS2R
}
