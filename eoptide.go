// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Tidal line of the diurnal/semidiurnal EOP variation.
// Pole coefficients in micro-arcsec, UT1 in micro-seconds.
type eopTideLine struct {
	chi    int    // Multiplier of GMST+pi
	n      [5]int // Multipliers of l, l', F, D, Om
	xs, xc float64
	ys, yc float64
	us, uc float64
}

// Principal ocean tide lines
var oceanEopLines = []eopTideLine{
	{1, [5]int{-1, 0, -2, 0, -2}, -26.4, -5.9, 5.9, -26.4, -3.5, 1.1},
	{1, [5]int{0, 0, -2, 0, -2}, -131.9, -18.8, 18.8, -131.9, -20.6, 3.4},
	{1, [5]int{0, 0, -2, 2, -2}, -51.6, -4.8, 4.8, -51.6, -7.4, 1.5},
	{1, [5]int{0, 0, 0, 0, 0}, 163.8, 10.2, -10.2, 163.8, 24.9, -4.6},
	{2, [5]int{-1, 0, -2, 0, -2}, 53.1, -40.7, 40.7, 53.1, -3.7, -3.5},
	{2, [5]int{0, 0, -2, 0, -2}, 244.6, -178.5, 178.5, 244.6, -15.1, -16.9},
	{2, [5]int{0, 0, -2, 2, -2}, 111.5, -74.6, 74.6, 111.5, -7.1, -7.7},
	{2, [5]int{0, 0, 0, 0, 0}, 30.4, -20.5, 20.5, 30.4, -1.9, -2.1},
}

// Ocean tide EOP model, a set of tidal lines
type OceanEopTable struct {
	lines []eopTideLine
}

// Table of the principal lines (Q1, O1, P1, K1, N2, M2, S2, K2)
func NewOceanEopTable() *OceanEopTable {
	return &OceanEopTable{lines: oceanEopLines}
}

// Read a line table in the IERS PMUT1_OCEANS layout, one line per row:
//
//	chi l l' F D Om xsin xcos ysin ycos ut1sin ut1cos
//
// Pole in micro-arcsec, UT1 in micro-seconds. Blank lines and lines
// starting with '#' or '*' are skipped.
func ReadOceanEopTable(r io.Reader) (*OceanEopTable, error) {
	tb := &OceanEopTable{}
	sc := bufio.NewScanner(r)
	for no := 1; sc.Scan(); no++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" || s[0] == '#' || s[0] == '*' {
			continue
		}
		f := strings.Fields(strings.ReplaceAll(s, ",", " "))
		if len(f) != 12 {
			return nil, fmt.Errorf("ReadOceanEopTable() failed, line=%d, err=%d fields, want 12", no, len(f))
		}
		var ln eopTideLine
		var iv [6]int
		for i := range iv {
			v, err := strconv.Atoi(f[i])
			if err != nil {
				return nil, fmt.Errorf("ReadOceanEopTable() failed, line=%d, err=%v", no, err)
			}
			iv[i] = v
		}
		var fv [6]float64
		for i := range fv {
			v, err := strconv.ParseFloat(f[6+i], 64)
			if err != nil {
				return nil, fmt.Errorf("ReadOceanEopTable() failed, line=%d, err=%v", no, err)
			}
			fv[i] = v
		}
		ln.chi = iv[0]
		copy(ln.n[:], iv[1:])
		ln.xs, ln.xc, ln.ys, ln.yc, ln.us, ln.uc = fv[0], fv[1], fv[2], fv[3], fv[4], fv[5]
		tb.lines = append(tb.lines, ln)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ReadOceanEopTable() failed, err=%v", err)
	}
	if len(tb.lines) == 0 {
		return nil, fmt.Errorf("ReadOceanEopTable() failed, err=no lines")
	}
	return tb, nil
}

func (tb *OceanEopTable) Len() int {
	return len(tb.lines)
}

// Diurnal/semidiurnal ocean tide variations of pole [rad] and UT1 [s]
func (tb *OceanEopTable) Eval(fa *FundArgs, gmst float64) (dxp, dyp, dut1 float64) {
	chi := gmst + PI
	for i := range tb.lines {
		ln := &tb.lines[i]
		s, c := math.Sincos(float64(ln.chi)*chi + fa.Arg(ln.n))
		dxp += ln.xs*s + ln.xc*c
		dyp += ln.ys*s + ln.yc*c
		dut1 += ln.us*s + ln.uc*c
	}
	return dxp * MAS2R * 1e-3, dyp * MAS2R * 1e-3, dut1 * 1e-6
}

// Zonal tide line of UT1 (IERS 2010 Table 8.1)
type zonalTideLine struct {
	n      [5]int  // Multipliers of l, l', F, D, Om
	us, uc float64 // UT1 sin, cos [1e-4 s]
}

// Zonal tide lines, period [day] in comments
var zonalUT1Lines = [...]zonalTideLine{
	{[5]int{1, 0, 2, 2, 2}, -0.0235, 0},        // 5.64
	{[5]int{2, 0, 2, 0, 1}, -0.0404, 0},        // 6.85
	{[5]int{2, 0, 2, 0, 2}, -0.0987, 0},        // 6.86
	{[5]int{0, 0, 2, 2, 1}, -0.0508, 0},        // 7.09
	{[5]int{0, 0, 2, 2, 2}, -0.1231, 0},        // 7.10
	{[5]int{1, 0, 2, 0, 0}, -0.0385, 0},        // 9.11
	{[5]int{1, 0, 2, 0, 1}, -0.4108, 0},        // 9.12
	{[5]int{1, 0, 2, 0, 2}, -0.9926, 0},        // 9.13
	{[5]int{3, 0, 0, 0, 0}, -0.0179, 0},        // 9.18
	{[5]int{-1, 0, 2, 2, 1}, -0.0818, 0},       // 9.54
	{[5]int{-1, 0, 2, 2, 2}, -0.1974, 0},       // 9.56
	{[5]int{1, 0, 0, 2, 0}, -0.0761, 0},        // 9.61
	{[5]int{2, 0, 2, -2, 2}, 0.0216, 0},        // 12.81
	{[5]int{0, 1, 2, 0, 2}, 0.0254, 0},         // 13.17
	{[5]int{0, 0, 2, 0, 0}, -0.2989, 0},        // 13.61
	{[5]int{0, 0, 2, 0, 1}, -3.1873, 0.2010},   // 13.63
	{[5]int{0, 0, 2, 0, 2}, -7.8468, 0.5320},   // 13.66
	{[5]int{2, 0, 0, 0, -1}, 0.0216, 0},        // 13.75
	{[5]int{2, 0, 0, 0, 0}, -0.3384, 0},        // 13.78
	{[5]int{2, 0, 0, 0, 1}, 0.0179, 0},         // 13.81
	{[5]int{0, -1, 2, 0, 2}, -0.0244, 0},       // 14.19
	{[5]int{0, 0, 0, 2, -1}, 0.0470, 0},        // 14.73
	{[5]int{0, 0, 0, 2, 0}, -0.7341, 0},        // 14.77
	{[5]int{0, 0, 0, 2, 1}, -0.0518, 0},        // 14.80
	{[5]int{0, -1, 0, 2, 0}, -0.0515, 0},       // 15.39
	{[5]int{1, 0, 2, -2, 1}, 0.0498, 0},        // 23.86
	{[5]int{1, 0, 2, -2, 2}, 0.1006, 0},        // 23.94
	{[5]int{1, 1, 0, 0, 0}, 0.0395, 0},         // 25.62
	{[5]int{-1, 0, 2, 0, 0}, 0.0470, 0},        // 26.88
	{[5]int{-1, 0, 2, 0, 1}, 0.1767, 0},        // 26.98
	{[5]int{-1, 0, 2, 0, 2}, 0.4352, 0},        // 27.09
	{[5]int{1, 0, 0, 0, -1}, 0.5339, 0},        // 27.44
	{[5]int{1, 0, 0, 0, 0}, -8.4046, 0.2500},   // 27.55
	{[5]int{1, 0, 0, 0, 1}, 0.5443, 0},         // 27.67
	{[5]int{0, 0, 0, 1, 0}, 0.0470, 0},         // 29.53
	{[5]int{1, -1, 0, 0, 0}, -0.0555, 0},       // 29.80
	{[5]int{-1, 0, 0, 2, -1}, 0.1175, 0},       // 31.66
	{[5]int{-1, 0, 0, 2, 0}, -1.8236, 0},       // 31.81
	{[5]int{-1, 0, 0, 2, 1}, 0.1316, 0},        // 31.96
	{[5]int{1, 0, -2, 2, -1}, 0.0179, 0},       // 32.61
	{[5]int{-1, -1, 0, 2, 0}, -0.0855, 0},      // 34.85
	{[5]int{0, 2, 2, -2, 2}, -0.0573, 0},       // 91.31
	{[5]int{0, 1, 2, -2, 1}, 0.0329, 0},        // 119.61
	{[5]int{0, 1, 2, -2, 2}, -1.8847, 0},       // 121.75
	{[5]int{0, 0, 2, -2, 0}, 0.2833, 0},        // 173.31
	{[5]int{0, 0, 2, -2, 1}, -0.3708, 0},       // 177.84
	{[5]int{0, 0, 2, -2, 2}, -48.8200, 1.3700}, // 182.62
	{[5]int{0, 2, 0, 0, 0}, -0.7587, 0},        // 182.63
	{[5]int{2, 0, 0, -2, -1}, 0.0179, 0},       // 199.84
	{[5]int{2, 0, 0, -2, 0}, 0.4047, 0},        // 205.89
	{[5]int{2, 0, 0, -2, 1}, -0.0179, 0},       // 212.32
	{[5]int{0, -1, 2, -2, 1}, 0.0254, 0},       // 346.60
	{[5]int{0, 1, 0, 0, -1}, -0.0570, 0},       // 346.64
	{[5]int{0, -1, 2, -2, 2}, -0.7620, 0},      // 365.22
	{[5]int{0, 1, 0, 0, 0}, -7.4469, 1.4003},   // 365.26
	{[5]int{0, 1, 0, 0, 1}, -0.0620, 0},        // 386.00
	{[5]int{1, 0, 0, -1, 0}, 0.0250, 0},        // 411.78
	{[5]int{2, 0, -2, 0, 0}, 0.0224, 0},        // 1095.18
	{[5]int{-2, 0, 2, 0, 1}, -0.0179, 0},       // 1305.48
	{[5]int{-1, 1, 0, 1, 0}, 0.0179, 0},        // 3232.86
	{[5]int{0, 0, 0, 0, 2}, 0.7766, -0.0047},   // 3399.19
	{[5]int{0, 0, 0, 0, 1}, -159.4316, 0.5432}, // 6798.38
}

// Zonal tide variation of UT1 [s]
func ZonalTideUT1(fa *FundArgs) float64 {
	d := 0.0
	for i := len(zonalUT1Lines) - 1; i >= 0; i-- {
		ln := &zonalUT1Lines[i]
		s, c := math.Sincos(fa.Arg(ln.n))
		d += ln.us*s + ln.uc*c
	}
	return d * 1e-4
}
