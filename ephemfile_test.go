// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStart = 2451536.5
	testDays  = 32.0
	testNcf   = 60
	testNa    = 3
)

// Write a two record DE style file with a constant Mercury block
func writeTestEphemeris(t *testing.T, order binary.ByteOrder) string {
	ncoeff := 2 + testNcf*testNa*3
	recsize := 8 * ncoeff
	nrec := 2
	buf := make([]byte, recsize*(2+nrec))

	put32 := func(off, v int) { order.PutUint32(buf[off:], uint32(int32(v))) }
	put64 := func(off int, v float64) { order.PutUint64(buf[off:], math.Float64bits(v)) }
	for i := 0; i < jplHeaderLen; i++ {
		buf[i] = ' '
	}
	copy(buf, "JPL Planetary Ephemeris DE999/LE999")
	copy(buf[jplTitleLen:], "Start Epoch: JED=  2451536.5")

	names := []string{"EMRAT", "GM1", "RAD1", "AU"}
	vals := []float64{81.30056, 4.9125e-11, 2440.0, 149597870.7}
	for i, n := range names {
		copy(buf[jplNameOff+i*jplNameLen:], n)
		put64(recsize+8*i, vals[i])
	}
	put64(jplSsOff, testStart)
	put64(jplSsOff+8, testStart+testDays*float64(nrec))
	put64(jplSsOff+16, testDays)
	put32(jplNconOff, len(names))
	put64(jplAuOff, 149597870.7)
	put64(jplEmratOff, 0)
	for i := 0; i < 12; i++ {
		for j := 0; j < 3; j++ {
			put32(jplIptOff+i*12+j*4, 0)
		}
	}
	put32(jplIptOff, 3)
	put32(jplIptOff+4, testNcf)
	put32(jplIptOff+8, testNa)
	put32(jplNumdeOff, 999)
	for j := 0; j < 3; j++ {
		put32(jplLptOff+j*4, 0)
	}

	for r := 0; r < nrec; r++ {
		off := recsize * (2 + r)
		put64(off, testStart+testDays*float64(r))
		put64(off+8, testStart+testDays*float64(r+1))
		for k := 0; k < testNa; k++ {
			c := off + 8*(2+testNcf*3*k)
			put64(c, 100*float64(r+1))
			put64(c+8*testNcf, -50)
			put64(c+16*testNcf, 7)
		}
	}

	fn := filepath.Join(t.TempDir(), "test.eph")
	require.NoError(t, os.WriteFile(fn, buf, 0o644))
	return fn
}

func TestOpenEphemeris(t *testing.T) {
	for _, tt := range []struct {
		name  string
		order binary.ByteOrder
	}{
		{"little endian", binary.LittleEndian},
		{"big endian", binary.BigEndian},
	} {
		t.Run(tt.name, func(t *testing.T) {
			fn := writeTestEphemeris(t, tt.order)

			f, h, err := OpenEphemerisFile(fn)
			require.NoError(t, err)
			assert.Equal(t, "JPL Planetary Ephemeris DE999/LE999", f.Title[0])
			assert.Equal(t, 2, f.NumRecords())
			assert.InDelta(t, 4.9125e-11, f.Consts["GM1"], 1e-20)
			assert.Equal(t, 999, h.DE)
			assert.Equal(t, testStart, h.Start)
			assert.Equal(t, testStart+2*testDays, h.End)
			assert.Equal(t, testDays, h.Days)
			assert.Equal(t, 81.30056, h.Emrat)
			assert.Equal(t, 149597870.7, h.AU)
			assert.Equal(t, BodyDesc{Offset: 3, Ncf: testNcf, Na: testNa, GM: 4.9125e-11, Radius: 2440}, h.Desc[SlotMercury])
			_, err = f.Record(2)
			assert.Error(t, err)
			require.NoError(t, f.Close())

			e, err := OpenEphemeris(fn)
			require.NoError(t, err)
			defer e.Close()
			for r, jd := range []float64{testStart + 5, testStart + testDays + 20.25} {
				p, err := e.Position(jd, "Mercury")
				require.NoError(t, err)
				assert.InDelta(t, 100*float64(r+1), p.X, 1e-12)
				assert.InDelta(t, -50.0, p.Y, 1e-12)
				assert.InDelta(t, 7.0, p.Z, 1e-12)
			}
			_, err = e.Position(testStart+3*testDays, "Mercury")
			var oe *OutOfRangeError
			assert.ErrorAs(t, err, &oe)
		})
	}
}

func TestOpenEphemerisInvalid(t *testing.T) {
	_, err := OpenEphemeris(filepath.Join(t.TempDir(), "missing.eph"))
	assert.Error(t, err)

	fn := filepath.Join(t.TempDir(), "short.eph")
	require.NoError(t, os.WriteFile(fn, make([]byte, 100), 0o644))
	_, err = OpenEphemeris(fn)
	assert.Error(t, err)

	// Header without coefficient blocks
	fn = filepath.Join(t.TempDir(), "empty.eph")
	require.NoError(t, os.WriteFile(fn, make([]byte, 2*jplHeaderLen), 0o644))
	_, err = OpenEphemeris(fn)
	assert.Error(t, err)
}
