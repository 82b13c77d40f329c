// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZonalTideUT1(t *testing.T) {
	require.Equal(t, 62, len(zonalUT1Lines))

	// All arguments zero: cos terms only
	var fa FundArgs
	assert.InDelta(t, 4.2918e-4, ZonalTideUT1(&fa), 1e-12)

	// 18.6 year term dominates
	ln := zonalUT1Lines[len(zonalUT1Lines)-1]
	assert.Equal(t, [5]int{0, 0, 0, 0, 1}, ln.n)
	assert.InDelta(t, -159.4316, ln.us, 1e-12)

	tt := 0.07995893223819302
	fa = NewFundArgs(tt)
	assert.InDelta(t, 8.628714776607893e-3, ZonalTideUT1(&fa), 1e-9)

	// Bounded by the sum of amplitudes
	for _, tt := range []float64{-0.3, 0, 0.24, 0.5} {
		fa := NewFundArgs(tt)
		assert.Less(t, math.Abs(ZonalTideUT1(&fa)), 0.025, "t=%g", tt)
	}
}

const testOceanEop = `
# chi  l  l'  F  D Om    xsin    xcos    ysin    ycos  ut1sin  ut1cos
1, -1, 0, -2, 0, -2,  -26.4,  -5.9,   5.9, -26.4,  -3.5,   1.1
1,  0, 0, -2, 0, -2, -131.9, -18.8,  18.8,-131.9, -20.6,   3.4
1   0  0  -2  2  -2   -51.6   -4.8    4.8  -51.6   -7.4    1.5
1   0  0   0  0   0   163.8   10.2  -10.2  163.8   24.9   -4.6
* semidiurnal
2  -1  0  -2  0  -2    53.1  -40.7   40.7   53.1   -3.7   -3.5
2   0  0  -2  0  -2   244.6 -178.5  178.5  244.6  -15.1  -16.9
2   0  0  -2  2  -2   111.5  -74.6   74.6  111.5   -7.1   -7.7
2   0  0   0  0   0    30.4  -20.5   20.5   30.4   -1.9   -2.1
`

func TestReadOceanEopTable(t *testing.T) {
	tb, err := ReadOceanEopTable(strings.NewReader(testOceanEop))
	require.NoError(t, err)
	assert.Equal(t, 8, tb.Len())

	def := NewOceanEopTable()
	assert.Equal(t, len(oceanEopLines), def.Len())
	for _, tt := range []float64{0, 0.1, 0.24} {
		fa := NewFundArgs(tt)
		for _, gmst := range []float64{0, 1.3, 4.9} {
			x0, y0, u0 := def.Eval(&fa, gmst)
			x1, y1, u1 := tb.Eval(&fa, gmst)
			assert.InDelta(t, x0, x1, 1e-20)
			assert.InDelta(t, y0, y1, 1e-20)
			assert.InDelta(t, u0, u1, 1e-18)

			// Sub-milliarcsecond and sub-0.1 ms
			assert.Less(t, math.Abs(x1), 1*MAS2R)
			assert.Less(t, math.Abs(u1), 1e-4)
		}
	}
}

func TestReadOceanEopTableInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"# comment only\n",
		"1 0 0 -2 0 -2 1 2 3 4 5\n",
		"1 0 0 -2 0 x 1 2 3 4 5 6\n",
		"1 0 0 -2 0 -2 1 2 3 4 5 y\n",
	} {
		_, err := ReadOceanEopTable(strings.NewReader(s))
		assert.Error(t, err, "%q", s)
	}
}

func TestFrameOceanEopTable(t *testing.T) {
	tb, err := ReadOceanEopTable(strings.NewReader(testOceanEop))
	require.NoError(t, err)

	opt := NewFrameOpt()
	f1 := NewFrameEngine(testEop(), opt).Compute(testEpoch(), false)
	opt.OceanEopTab = tb
	f2 := NewFrameEngine(testEop(), opt).Compute(testEpoch(), false)
	opt.OceanEopTab = nil
	f3 := NewFrameEngine(testEop(), opt).Compute(testEpoch(), false)
	assert.InDelta(t, f1.Xp, f2.Xp, 1e-20)
	assert.InDelta(t, f1.UT1mUTC, f2.UT1mUTC, 1e-15)
	assert.InDelta(t, f1.UT1mUTC, f3.UT1mUTC, 1e-15)
}
