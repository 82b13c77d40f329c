// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBatch(t *testing.T, sm SunMoonProvider, workers int) (*Batch, []GTime, Station) {
	fe := NewFrameEngine(testEop(), nil)
	tm := NewTideModel(nil, nil, nil, nil)
	opt := NewBatchOpt()
	opt.Workers = workers
	opt.Partials = true

	var times []GTime
	ep := testEpoch()
	for i := 0; i < 12; i++ {
		times = append(times, ep.Add(float64(i)*1800))
	}
	return NewBatch(fe, tm, sm, opt), times, testStation("TSKB", 36.1, 140.1, 70)
}

func TestBatchRun(t *testing.T) {
	b, times, sta := testBatch(t, AnalyticSunMoon{}, 3)
	res, err := b.Run(context.Background(), times, sta)
	require.NoError(t, err)
	require.Len(t, res, len(times))

	// Same as one epoch at a time, in input order
	for i, tt := range times {
		want, err := b.Epoch(tt, sta)
		require.NoError(t, err)
		assert.Equal(t, tt, res[i].Time)
		assert.Equal(t, want.Tide.Total, res[i].Tide.Total)
		assert.Equal(t, want.Frame.GAST, res[i].Frame.GAST)
		assert.NotNil(t, res[i].Frame.DRotDUT1)
	}
}

func TestBatchCanceled(t *testing.T) {
	b, times, sta := testBatch(t, AnalyticSunMoon{}, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := b.Run(ctx, times, sta)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestBatchSunMoonError(t *testing.T) {
	b, times, sta := testBatch(t, &countingSunMoon{err: errors.New("no data")}, 0)
	_, err := b.Run(context.Background(), times, sta)
	assert.Error(t, err)

	_, err = b.Epoch(times[0], sta)
	assert.ErrorContains(t, err, "no data")
}

func TestBatchEmpty(t *testing.T) {
	b, _, sta := testBatch(t, AnalyticSunMoon{}, 1)
	res, err := b.Run(context.Background(), nil, sta)
	require.NoError(t, err)
	assert.Empty(t, res)
}
