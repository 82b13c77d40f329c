// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	m "github.com/mkhts/geocorr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintHeader(t *testing.T) {
	args := cmdOpt{
		id:     "TSKB",
		pos:    *m.NewPosLLH(m.ToRad(36.1), m.ToRad(140.1), 70),
		ts:     time.Date(2017, 1, 1, 6, 0, 0, 0, time.UTC),
		te:     time.Date(2017, 1, 2, 6, 0, 0, 0, time.UTC),
		ti:     3600,
		oeopFn: "oeop.txt",
	}
	var b bytes.Buffer
	printHeader(&b, "geocorr", args)
	s := b.String()
	assert.Contains(t, s, "% span      : JD(UTC) 2457754.750000 - 2457755.750000, 3600 s\n")
	assert.Contains(t, s, "% ocean eop : oeop.txt\n")
	assert.Contains(t, s, "nut=2000A")
}

func TestReadOceanEop(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "oeop.txt")
	rows := []string{
		"1 0 0 -2 0 -2 48.82 132.91 -132.90 48.82 16.020 -12.069",
		"2 0 0 -2 0 -2 -15.00 10.00 10.00 15.00 -1.0 2.0",
	}
	require.NoError(t, os.WriteFile(fn, []byte(strings.Join(rows, "\n")), 0o644))
	tb, err := readOceanEop(fn)
	require.NoError(t, err)
	assert.Equal(t, 2, tb.Len())

	_, err = readOceanEop(filepath.Join(t.TempDir(), "none.txt"))
	assert.Error(t, err)
}
