// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/exp/mmap"
)

// Byte offsets of the JPL DE binary header
const (
	jplTitleLen  = 84
	jplNameLen   = 6
	jplMaxNames  = 400
	jplNameOff   = 3 * jplTitleLen
	jplSsOff     = jplNameOff + jplMaxNames*jplNameLen
	jplNconOff   = jplSsOff + 3*8
	jplAuOff     = jplNconOff + 4
	jplEmratOff  = jplAuOff + 8
	jplIptOff    = jplEmratOff + 8
	jplNumdeOff  = jplIptOff + 12*3*4
	jplLptOff    = jplNumdeOff + 4
	jplHeaderLen = jplLptOff + 3*4
)

// Memory mapped JPL DE binary file
type EphemerisFile struct {
	Title  [3]string
	Consts map[string]float64 // Named constants (GM*, RAD*, EMRAT, AU ...)

	r      *mmap.ReaderAt
	order  binary.ByteOrder
	ncoeff int // Doubles per record
	nrec   int // Data records
}

// Open a JPL DE binary file and build an interpolator over it
func OpenEphemeris(path string) (*Ephemeris, error) {
	f, h, err := OpenEphemerisFile(path)
	if err != nil {
		return nil, err
	}
	e, err := NewEphemeris(h, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return e, nil
}

// Close the record source if it holds a file
func (e *Ephemeris) Close() error {
	if c, ok := e.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func OpenEphemerisFile(path string) (*EphemerisFile, EphemerisHeader, error) {
	var h EphemerisHeader
	r, err := mmap.Open(path)
	if err != nil {
		return nil, h, fmt.Errorf("OpenEphemerisFile() failed, err=%v", err)
	}
	f := &EphemerisFile{r: r, Consts: map[string]float64{}}
	if err := f.readHeader(&h); err != nil {
		r.Close()
		return nil, h, fmt.Errorf("OpenEphemerisFile() failed, file=%s, err=%v", path, err)
	}
	PrintD(1, "ephemeris: DE%d %.1f-%.1f step=%.0f ncoeff=%d records=%d\n", h.DE, h.Start, h.End, h.Days, f.ncoeff, f.nrec)
	return f, h, nil
}

func (f *EphemerisFile) readHeader(h *EphemerisHeader) error {
	if f.r.Len() < jplHeaderLen {
		return fmt.Errorf("file too short (%d bytes)", f.r.Len())
	}
	b := make([]byte, jplHeaderLen)
	if _, err := f.r.ReadAt(b, 0); err != nil {
		return err
	}
	for i := range f.Title {
		f.Title[i] = strings.TrimRight(string(b[i*jplTitleLen:(i+1)*jplTitleLen]), " \x00")
	}

	// Byte order from the plausibility of the constant count
	f.order = binary.LittleEndian
	if n := int32(f.order.Uint32(b[jplNconOff:])); n <= 0 || n > 65536 {
		f.order = binary.BigEndian
	}
	u32 := func(off int) int { return int(int32(f.order.Uint32(b[off:]))) }
	f64 := func(off int) float64 { return math.Float64frombits(f.order.Uint64(b[off:])) }

	h.Start = f64(jplSsOff)
	h.End = f64(jplSsOff + 8)
	h.Days = f64(jplSsOff + 16)
	ncon := u32(jplNconOff)
	h.AU = f64(jplAuOff)
	h.Emrat = f64(jplEmratOff)
	h.DE = u32(jplNumdeOff)
	for i := 0; i < 12; i++ {
		off := jplIptOff + i*12
		h.Desc[i] = BodyDesc{Offset: u32(off), Ncf: u32(off + 4), Na: u32(off + 8)}
	}
	h.Desc[SlotLibration] = BodyDesc{Offset: u32(jplLptOff), Ncf: u32(jplLptOff + 4), Na: u32(jplLptOff + 8)}

	f.ncoeff = h.RecordLen()
	if f.ncoeff <= 2 {
		return fmt.Errorf("no coefficient blocks in header")
	}
	recsize := 8 * f.ncoeff
	f.nrec = (f.r.Len() - 2*recsize) / recsize
	if f.nrec <= 0 {
		return fmt.Errorf("no data records (record size %d)", recsize)
	}

	// Constant names and values (values in record 1)
	nn := min(ncon, jplMaxNames)
	vals := make([]byte, 8*nn)
	if _, err := f.r.ReadAt(vals, int64(recsize)); err != nil {
		return fmt.Errorf("constants: %v", err)
	}
	for i := 0; i < nn; i++ {
		off := jplNameOff + i*jplNameLen
		name := strings.TrimSpace(string(b[off : off+jplNameLen]))
		if name == "" {
			continue
		}
		f.Consts[name] = math.Float64frombits(f.order.Uint64(vals[8*i:]))
	}
	if v, ok := f.Consts["EMRAT"]; ok && h.Emrat == 0 {
		h.Emrat = v
	}
	if v, ok := f.Consts["AU"]; ok && h.AU == 0 {
		h.AU = v
	}
	f.setPhysical(h)
	return nil
}

// Copy GM and radius constants into the body descriptors
func (f *EphemerisFile) setPhysical(h *EphemerisHeader) {
	get := func(name string) float64 { return f.Consts[name] }
	for i := SlotMercury; i <= SlotPluto; i++ {
		h.Desc[i].GM = get(fmt.Sprintf("GM%d", i+1))
		h.Desc[i].Radius = get(fmt.Sprintf("RAD%d", i+1))
	}
	gmb := get("GMB")
	h.Desc[SlotEMB].GM = gmb
	h.Desc[SlotEMB].Radius = get("RE")
	if h.Emrat > 0 {
		h.Desc[SlotMoon].GM = gmb / (1 + h.Emrat)
	}
	h.Desc[SlotMoon].Radius = get("AM")
	h.Desc[SlotSun].GM = get("GMS")
	h.Desc[SlotSun].Radius = get("ASUN")
}

func (f *EphemerisFile) NumRecords() int {
	return f.nrec
}

// Data record n (file record n+2)
func (f *EphemerisFile) Record(n int) ([]float64, error) {
	if n < 0 || n >= f.nrec {
		return nil, fmt.Errorf("record %d not available (%d records)", n, f.nrec)
	}
	b := make([]byte, 8*f.ncoeff)
	if _, err := f.r.ReadAt(b, int64(n+2)*int64(len(b))); err != nil {
		return nil, err
	}
	rec := make([]float64, f.ncoeff)
	for i := range rec {
		rec[i] = math.Float64frombits(f.order.Uint64(b[8*i:]))
	}
	return rec, nil
}

func (f *EphemerisFile) Close() error {
	return f.r.Close()
}
