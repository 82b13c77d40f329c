// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Rows following quadratics in the epoch
func quadEop(order EopInterp, mjds ...float64) *EopSeries {
	s := NewEopSeries(order)
	for _, m := range mjds {
		d := m - 58000
		s.AddUTC(m, 0.1+0.001*d, 0.3-0.002*d+1e-4*d*d, -0.2+1e-3*d, 1e-4, -1e-4)
	}
	return s
}

func TestEopSeriesAdd(t *testing.T) {
	s := quadEop(EopLinear, 58003, 58001, 58002, 58000)
	assert.Equal(t, 4, s.Len())
	first, last, ok := s.Span()
	require.True(t, ok)
	assert.Equal(t, 58000.0, first)
	assert.Equal(t, 58003.0, last)

	// Same epoch replaces the row
	s.AddUTC(58002, 9, 9, 0, 0, 0)
	assert.Equal(t, 4, s.Len())
	e, in := s.Interp(58002)
	assert.True(t, in)
	assert.Equal(t, 9.0, e.Xp)

	_, _, ok = NewEopSeries(EopLinear).Span()
	assert.False(t, ok)
}

func TestEopSeriesInterp(t *testing.T) {
	mjds := []float64{58000, 58001, 58002, 58003, 58004, 58005}
	for _, tt := range []struct {
		name  string
		order EopInterp
		tolY  float64
	}{
		{"linear", EopLinear, 3e-5},
		{"lagrange", EopLagrange4, 1e-12},
	} {
		t.Run(tt.name, func(t *testing.T) {
			s := quadEop(tt.order, mjds...)
			for _, m := range []float64{58002.25, 58002.5, 58003.75} {
				d := m - 58000
				e, in := s.Interp(m)
				require.True(t, in)
				assert.InDelta(t, 0.1+0.001*d, e.Xp, 1e-12)
				assert.InDelta(t, 0.3-0.002*d+1e-4*d*d, e.Yp, tt.tolY)
				assert.InDelta(t, -0.2+1e-3*d, e.UT1mUTC(), 1e-12)
				assert.InDelta(t, 1e-4, e.DX, 1e-15)
				assert.Equal(t, m, e.MJD)
			}
		})
	}
}

func TestEopSeriesExtrapolation(t *testing.T) {
	s := quadEop(EopLagrange4, 58000, 58001)
	e, in := s.Interp(57990)
	assert.False(t, in)
	assert.InDelta(t, 0.1, e.Xp, 1e-15)
	assert.Equal(t, 57990.0, e.MJD)

	e, in = s.Interp(58010)
	assert.False(t, in)
	assert.InDelta(t, 0.101, e.Xp, 1e-15)

	// Two rows fall back to linear
	e, in = s.Interp(58000.5)
	assert.True(t, in)
	assert.InDelta(t, 0.1005, e.Xp, 1e-15)

	var nilSeries *EopSeries
	e, in = nilSeries.Interp(58000)
	assert.False(t, in)
	assert.Equal(t, EopSample{MJD: 58000}, e)

	_, in = NewEopSeries(EopLinear).Interp(58000)
	assert.False(t, in)
}

func TestEopSeriesConcurrent(t *testing.T) {
	s := quadEop(EopLinear, 58000, 58001)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.AddUTC(58002+float64(i), 0.1, 0.3, -0.2, 0, 0)
		}(i)
		go func() {
			defer wg.Done()
			_, in := s.Interp(58000.5)
			assert.True(t, in)
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, s.Len())
}
