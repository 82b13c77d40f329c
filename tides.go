// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"errors"
	"fmt"
)

// Solid earth tide model
type TideVariant int

const (
	TideIERS2010 TideVariant = iota // IERS Conventions 2010 (Dehant et al.)
	TideIERS1996                    // IERS Conventions 1996 simplified
)

// ------------------------------------
// Option
// ------------------------------------

type TideOpt struct {
	Variant   TideVariant   // Solid earth tide model (default: TideIERS2010)
	MeanPole  MeanPoleModel // Mean pole model (default: MeanPoleIERS2010)
	PermTide  bool          // Remove permanent tide, IERS 1996 only (default: false)
	Solid     bool          // Terms summed by Displacement (default: all true)
	Ocean     bool
	Pole      bool
	OceanPole bool
	Atmos     bool
}

func NewTideOpt() *TideOpt {
	return &TideOpt{
		Variant:   TideIERS2010,
		MeanPole:  MeanPoleIERS2010,
		PermTide:  false,
		Solid:     true,
		Ocean:     true,
		Pole:      true,
		OceanPole: true,
		Atmos:     true,
	}
}

// ------------------------------------
// Model
// ------------------------------------

// Ground station; ID keys the loading tables
type Station struct {
	ID  string
	Pos Vec3 // Terrestrial position
}

// Station displacement terms, all in the terrestrial frame
type Tides interface {
	SolidEarthTide(t GTime, sta Station, fs *FrameState, sun, moon Vec3) (Vec3, error)
	OceanTideLoading(t GTime, sta Station) (Vec3, error)
	PoleTide(t GTime, xp, yp float64, sta Station) (Vec3, error)
	OceanPoleTideLoading(t GTime, sta Station, xp, yp float64) (Vec3, error)
	AtmosphericLoading(t GTime, sta Station) (Vec3, error)
	Displacement(t GTime, sta Station, fs *FrameState, sun, moon Vec3) (TideCorr, error)
}

// Tidal displacement model over shared, read-mostly tables (any may be nil)
type TideModel struct {
	opt   TideOpt
	oload *OceanLoadingTable
	opole *OceanPoleLoadingGrid
	atm   *AtmLoadingTable
}

func NewTideModel(opt *TideOpt, oload *OceanLoadingTable, opole *OceanPoleLoadingGrid, atm *AtmLoadingTable) *TideModel {
	if opt == nil {
		opt = NewTideOpt()
	}
	return &TideModel{opt: *opt, oload: oload, opole: opole, atm: atm}
}

func (tm *TideModel) Opt() TideOpt {
	return tm.opt
}

// Station frame and unit helpers
func staLLH(sta Station) (PosXYZ, PosLLH) {
	xyz := sta.Pos.XYZ()
	return xyz, xyz.ToLLH()
}

func enuToVec(d PosENU, llh PosLLH, u LengthUnit) Vec3 {
	x := d.RotXYZ(llh)
	return x.Vec3().To(u)
}

// Solid earth tide. Sun and Moon are celestial (GCRS) positions rotated with fs;
// with fs nil they are taken as terrestrial.
func (tm *TideModel) SolidEarthTide(t GTime, sta Station, fs *FrameState, sun, moon Vec3) (Vec3, error) {
	if fs != nil {
		sun = fs.CrsToTrs(sun)
		moon = fs.CrsToTrs(moon)
	}
	xyz := sta.Pos.XYZ()
	rs, rm := sun.XYZ(), moon.XYZ()

	var d [3]float64
	var err error
	switch tm.opt.Variant {
	case TideIERS1996:
		var gmst float64
		if fs != nil {
			gmst = fs.GMST
		} else {
			gmst = GMST(t.MjdUTC(), t.CenturiesTT(), Conv06)
		}
		d, err = solidTide1996(xyz, rs, rm, gmst, tm.opt.PermTide)
	default:
		d, err = solidTide2010(xyz, rs, rm, t.HoursUTC(), t.CenturiesTT())
	}
	if err != nil {
		return Vec3{Unit: sta.Pos.Unit}, err
	}
	PrintD(5, "solid tide: %.4f %.4f %.4f\n", d[0], d[1], d[2])
	return NewVec3(d[0], d[1], d[2], Meter).To(sta.Pos.Unit), nil
}

// Ocean tide loading. A site missing from the table gives zero and a NotFoundError.
func (tm *TideModel) OceanTideLoading(t GTime, sta Station) (Vec3, error) {
	zero := Vec3{Unit: sta.Pos.Unit}
	_, llh := staLLH(sta)
	if tm.oload == nil {
		err := &NotFoundError{What: "ocean loading", Key: blqID(sta.ID)}
		PrintW("%v\n", err)
		return zero, err
	}
	b, err := tm.oload.Lookup(sta.ID, llh.Lat*R2D, llh.Lon*R2D)
	if err != nil {
		PrintW("%v\n", err)
		return zero, err
	}
	d := oloadENU(t.MjdUTC(), &b)
	PrintD(5, "ocean loading: e=%.4f n=%.4f u=%.4f\n", d.E, d.N, d.U)
	return enuToVec(d, llh, sta.Pos.Unit), nil
}

// Pole tide for the pole (xp, yp) [rad]
func (tm *TideModel) PoleTide(t GTime, xp, yp float64, sta Station) (Vec3, error) {
	_, llh := staLLH(sta)
	m1, m2 := wobble(t.MjdUTC(), xp, yp, tm.opt.MeanPole)
	d := poleTideENU(llh, m1, m2)
	PrintD(5, "pole tide: m1=%.4f m2=%.4f e=%.4f n=%.4f u=%.4f\n", m1, m2, d.E, d.N, d.U)
	return enuToVec(d, llh, sta.Pos.Unit), nil
}

// Ocean pole tide loading for the pole (xp, yp) [rad]. A grid miss gives zero
// and a NotFoundError.
func (tm *TideModel) OceanPoleTideLoading(t GTime, sta Station, xp, yp float64) (Vec3, error) {
	zero := Vec3{Unit: sta.Pos.Unit}
	_, llh := staLLH(sta)
	if tm.opole == nil {
		err := &NotFoundError{What: "ocean pole loading grid", Key: "not configured"}
		PrintW("%v\n", err)
		return zero, err
	}
	c, err := tm.opole.At(llh.Lat*R2D, llh.Lon*R2D)
	if err != nil {
		PrintW("%v\n", err)
		return zero, err
	}
	m1, m2 := wobble(t.MjdUTC(), xp, yp, tm.opt.MeanPole)
	d := oceanPoleENU(c, m1*AS2R, m2*AS2R)
	return enuToVec(d, llh, sta.Pos.Unit), nil
}

// Atmospheric S1/S2 loading. Zero without a table; a site missing from a
// configured table gives zero and a NotFoundError.
func (tm *TideModel) AtmosphericLoading(t GTime, sta Station) (Vec3, error) {
	zero := Vec3{Unit: sta.Pos.Unit}
	if tm.atm == nil {
		return zero, nil
	}
	c, err := tm.atm.Lookup(sta.ID)
	if err != nil {
		PrintW("%v\n", err)
		return zero, err
	}
	_, llh := staLLH(sta)
	mjd := t.MjdUTC()
	d := atmENU(&c, mjd-float64(int(mjd)))
	return enuToVec(d, llh, sta.Pos.Unit), nil
}

// ------------------------------------
// Aggregate
// ------------------------------------

// Displacement terms of one epoch, in the station vector's unit
type TideCorr struct {
	Solid     Vec3
	Ocean     Vec3
	Pole      Vec3
	OceanPole Vec3
	Atmos     Vec3
	Total     Vec3
}

// Sum of the enabled terms. Lookup misses contribute zero; other errors abort.
// The pole comes from fs (zero when fs is nil).
func (tm *TideModel) Displacement(t GTime, sta Station, fs *FrameState, sun, moon Vec3) (TideCorr, error) {
	u := sta.Pos.Unit
	c := TideCorr{
		Solid:     Vec3{Unit: u},
		Ocean:     Vec3{Unit: u},
		Pole:      Vec3{Unit: u},
		OceanPole: Vec3{Unit: u},
		Atmos:     Vec3{Unit: u},
		Total:     Vec3{Unit: u},
	}
	var xp, yp float64
	if fs != nil {
		xp, yp = fs.Xp, fs.Yp
	}

	terms := []struct {
		on  bool
		dst *Vec3
		f   func() (Vec3, error)
	}{
		{tm.opt.Solid, &c.Solid, func() (Vec3, error) { return tm.SolidEarthTide(t, sta, fs, sun, moon) }},
		{tm.opt.Ocean, &c.Ocean, func() (Vec3, error) { return tm.OceanTideLoading(t, sta) }},
		{tm.opt.Pole, &c.Pole, func() (Vec3, error) { return tm.PoleTide(t, xp, yp, sta) }},
		{tm.opt.OceanPole, &c.OceanPole, func() (Vec3, error) { return tm.OceanPoleTideLoading(t, sta, xp, yp) }},
		{tm.opt.Atmos, &c.Atmos, func() (Vec3, error) { return tm.AtmosphericLoading(t, sta) }},
	}
	for _, term := range terms {
		if !term.on {
			continue
		}
		d, err := term.f()
		if err != nil && !errors.Is(err, ErrNotFound) {
			return c, fmt.Errorf("Displacement() failed, err=%w", err)
		}
		*term.dst = d
		c.Total = c.Total.Add(d)
	}
	return c, nil
}
