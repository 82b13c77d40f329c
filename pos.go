// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//-------------------------------------------------------------------
// Vec3 (length vector with unit tag)
//-------------------------------------------------------------------

type LengthUnit int

const (
	Meter LengthUnit = iota
	Millimeter
	Kilometer
)

// Meters per unit
func (u LengthUnit) Meters() float64 {
	switch u {
	case Millimeter:
		return 1e-3
	case Kilometer:
		return 1e3
	default:
		return 1
	}
}

func (u LengthUnit) String() string {
	switch u {
	case Millimeter:
		return "mm"
	case Kilometer:
		return "km"
	default:
		return "m"
	}
}

type Vec3 struct {
	X    float64
	Y    float64
	Z    float64
	Unit LengthUnit
}

func NewVec3(x, y, z float64, u LengthUnit) Vec3 {
	return Vec3{X: x, Y: y, Z: z, Unit: u}
}

// Convert to another unit
func (v Vec3) To(u LengthUnit) Vec3 {
	if v.Unit == u {
		return v
	}
	k := v.Unit.Meters() / u.Meters()
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k, Unit: u}
}

// Sum in the unit of v
func (v Vec3) Add(b Vec3) Vec3 {
	b = b.To(v.Unit)
	return Vec3{X: v.X + b.X, Y: v.Y + b.Y, Z: v.Z + b.Z, Unit: v.Unit}
}

// Difference in the unit of v
func (v Vec3) Sub(b Vec3) Vec3 {
	b = b.To(v.Unit)
	return Vec3{X: v.X - b.X, Y: v.Y - b.Y, Z: v.Z - b.Z, Unit: v.Unit}
}

func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k, Unit: v.Unit}
}

func (v Vec3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func (v Vec3) Norm() float64 {
	return floats.Norm(v.Slice(), 2)
}

func (v Vec3) Dot(b Vec3) float64 {
	return floats.Dot(v.Slice(), b.To(v.Unit).Slice())
}

// Unit vector (unitless, tagged with v's unit)
func (v Vec3) Unitv() Vec3 {
	r := v.Norm()
	if r == 0 {
		return v
	}
	return v.Scale(1 / r)
}

func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Position in meters
func (v Vec3) XYZ() PosXYZ {
	m := v.To(Meter)
	return PosXYZ{X: m.X, Y: m.Y, Z: m.Z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("%.6f %.6f %.6f [%s]", v.X, v.Y, v.Z, v.Unit)
}

//-------------------------------------------------------------------
// PosLLH
//-------------------------------------------------------------------

type PosLLH struct {
	Lat float64
	Lon float64
	Hei float64
}

func NewPosLLH(lat, lon, hei float64) *PosLLH {
	return &PosLLH{
		Lat: lat,
		Lon: lon,
		Hei: hei,
	}
}

func (llh *PosLLH) ToXYZ() PosXYZ {
	// Ellipsoid parameters
	f := Fe                     // Flattening
	a := Re                     // Semi-major axis
	e := math.Sqrt(f * (2 - f)) // Eccentricity

	// Conversion to Cartesian coordinates
	n := a / math.Sqrt(1-e*e*math.Sin(llh.Lat)*math.Sin(llh.Lat))
	return PosXYZ{
		X: (n + llh.Hei) * math.Cos(llh.Lat) * math.Cos(llh.Lon),
		Y: (n + llh.Hei) * math.Cos(llh.Lat) * math.Sin(llh.Lon),
		Z: (n*(1-e*e) + llh.Hei) * math.Sin(llh.Lat),
	}
}

// Read from string (degrees and meters)
func (llh *PosLLH) Set(s string) error {
	var err error
	f := strings.Fields(s)
	if len(f) < 3 {
		return fmt.Errorf("need \"lat lon hei\", got %q", s)
	}
	llh.Lat, err = strconv.ParseFloat(f[0], 64)
	if err != nil {
		return err
	}
	llh.Lon, err = strconv.ParseFloat(f[1], 64)
	if err != nil {
		return err
	}
	llh.Hei, err = strconv.ParseFloat(f[2], 64)
	if err != nil {
		return err
	}
	llh.Lat *= math.Pi / 180
	llh.Lon *= math.Pi / 180
	return nil
}

// Convert to string
func (llh *PosLLH) String() string {
	return fmt.Sprintf("%.8f %.8f %.4f", llh.Lat, llh.Lon, llh.Hei)
}

//-------------------------------------------------------------------
// PosXYZ
//-------------------------------------------------------------------

type PosXYZ struct {
	X float64
	Y float64
	Z float64
}

func (pos *PosXYZ) ToLLH() PosLLH {
	// In case of origin
	if pos.X == 0 && pos.Y == 0 && pos.Z == 0 {
		return PosLLH{Lat: 0, Lon: 0, Hei: -Re}
	}

	// Ellipsoid parameters
	f := Fe                     // Flattening
	a := Re                     // Semi-major axis
	b := a * (1 - f)            // Semi-minor axis
	e := math.Sqrt(f * (2 - f)) // Eccentricity

	// Parameters for coordinate transformation
	h := a*a - b*b
	p := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y)
	t := math.Atan2(pos.Z*a, p*b)
	sint := math.Sin(t)
	cost := math.Cos(t)

	// Conversion to latitude and longitude
	lat := math.Atan2(pos.Z+h/b*sint*sint*sint, p-h/a*cost*cost*cost)
	lon := math.Atan2(pos.Y, pos.X)
	n := a / math.Sqrt(1-e*e*math.Sin(lat)*math.Sin(lat)) // Radius of curvature in the prime vertical
	hei := p/math.Cos(lat) - n
	return PosLLH{Lat: lat, Lon: lon, Hei: hei}
}

// Geocentric latitude and longitude [rad]
func (pos *PosXYZ) Geocentric() (lat, lon float64) {
	p := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y)
	return math.Atan2(pos.Z, p), math.Atan2(pos.Y, pos.X)
}

func (pos *PosXYZ) Vec3() Vec3 {
	return Vec3{X: pos.X, Y: pos.Y, Z: pos.Z, Unit: Meter}
}

// Rotate a vector into the local ENU frame at llh
func (pos *PosXYZ) RotENU(llh PosLLH) PosENU {
	s1 := math.Sin(llh.Lon)
	c1 := math.Cos(llh.Lon)
	s2 := math.Sin(llh.Lat)
	c2 := math.Cos(llh.Lat)
	return PosENU{
		E: -pos.X*s1 + pos.Y*c1,
		N: -pos.X*c1*s2 - pos.Y*s1*s2 + pos.Z*c2,
		U: pos.X*c1*c2 + pos.Y*s1*c2 + pos.Z*s2,
	}
}

//-------------------------------------------------------------------
// PosENU
//-------------------------------------------------------------------

type PosENU struct {
	E float64
	N float64
	U float64
}

func NewPosENU(e, n, u float64) *PosENU {
	return &PosENU{
		E: e,
		N: n,
		U: u,
	}
}

// Rotate a local ENU vector at llh into ECEF
func (enu *PosENU) RotXYZ(llh PosLLH) PosXYZ {
	s1 := math.Sin(llh.Lon)
	c1 := math.Cos(llh.Lon)
	s2 := math.Sin(llh.Lat)
	c2 := math.Cos(llh.Lat)
	return PosXYZ{
		X: -enu.E*s1 - enu.N*c1*s2 + enu.U*c1*c2,
		Y: enu.E*c1 - enu.N*s1*s2 + enu.U*s1*c2,
		Z: enu.N*c2 + enu.U*s2,
	}
}
