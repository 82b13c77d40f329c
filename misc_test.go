// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormRad(t *testing.T) {
	assert.InDelta(t, 0.5, NormRad(0.5+4*PI), 1e-12)
	assert.InDelta(t, 2*PI-0.5, NormRad(-0.5), 1e-12)
	assert.Equal(t, 0.0, NormRad(0))
}

func TestFlagValues(t *testing.T) {
	var conv Convention
	var tide TideVariant
	var mp MeanPoleModel
	var nut NutationModel
	var ts TimeStr
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&conv, "conv", "")
	fs.Var(&tide, "tide", "")
	fs.Var(&mp, "mp", "")
	fs.Var(&nut, "nut", "")
	fs.TextVar(&ts, "ts", NewTimeStr(time.Time{}), "")

	err := fs.Parse([]string{"-conv", "00", "-tide", "1996", "-mp", "linear", "-nut", "2000b", "-ts", "2024/01/02 03:04:05"})
	require.NoError(t, err)
	assert.Equal(t, Conv00, conv)
	assert.Equal(t, TideIERS1996, tide)
	assert.Equal(t, MeanPoleSecular, mp)
	assert.Equal(t, Nut00B, nut)
	assert.True(t, time.Time(ts).Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.Equal(t, "00", conv.String())
	assert.Equal(t, "1996", tide.String())
	assert.Equal(t, "linear", mp.String())
	assert.Equal(t, "2000B", nut.String())

	for _, tt := range []struct {
		v flag.Value
		s string
	}{
		{&conv, "2000"},
		{&tide, "2003"},
		{&mp, "cubic"},
		{&nut, "1980"},
	} {
		assert.Error(t, tt.v.Set(tt.s))
	}
}
