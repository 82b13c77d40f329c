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
	"strings"
	"sync"
)

// ------------------------------------
// Ocean tide loading (BLQ)
// ------------------------------------

// Number of BLQ constituents (M2 S2 N2 K2 K1 O1 P1 Q1 Mf Mm Ssa)
const NBLQ = 11

// Ocean loading coefficients of a site: rows 0-2 amplitude [m] of up, west, south,
// rows 3-5 phase lag [deg] of up, west, south, columns by constituent
type BLQ [6][NBLQ]float64

// Angular speed [rad/s] and multipliers of H0, S0, P0 and 2pi
var blqArgs = [NBLQ][5]float64{
	{1.40519e-4, 2, -2, 0, 0},     // M2
	{1.45444e-4, 0, 0, 0, 0},      // S2
	{1.37880e-4, 2, -3, 1, 0},     // N2
	{1.45842e-4, 2, 0, 0, 0},      // K2
	{0.72921e-4, 1, 0, 0, 0.25},   // K1
	{0.67598e-4, 1, -2, 0, -0.25}, // O1
	{0.72523e-4, -1, 0, 0, -0.25}, // P1
	{0.64959e-4, 1, -3, 1, -0.25}, // Q1
	{0.53234e-5, 0, 2, 0, 0},      // Mf
	{0.26392e-5, 0, 1, -1, 0},     // Mm
	{0.03982e-5, 2, 0, 0, 0},      // Ssa
}

const mjd1975 = 42413.0 // 1975/1/1

// Harmonic synthesis of ocean loading, local (east, north, up) [m]
func oloadENU(mjdUTC float64, b *BLQ) PosENU {
	day := math.Floor(mjdUTC)
	fday := (mjdUTC - day) * DAYSEC
	days := day - mjd1975 + 1
	t := (27392.500528 + 1.000000035*days) / DJC
	t2 := t * t
	t3 := t2 * t

	a := [5]float64{
		fday,
		(279.69668 + 36000.768930485*t + 3.03e-4*t2) * D2R,               // H0
		(270.434358 + 481267.88314137*t - 0.001133*t2 + 1.9e-6*t3) * D2R, // S0
		(334.329653 + 4069.0340329577*t - 0.010325*t2 - 1.2e-5*t3) * D2R, // P0
		2 * PI,
	}
	var dp [3]float64
	for i := 0; i < NBLQ; i++ {
		ang := 0.0
		for j := 0; j < 5; j++ {
			ang += a[j] * blqArgs[i][j]
		}
		for j := 0; j < 3; j++ {
			dp[j] += b[j][i] * math.Cos(ang-b[j+3][i]*D2R)
		}
	}
	return PosENU{E: -dp[1], N: -dp[2], U: dp[0]}
}

// Site and grid cell keyed ocean loading coefficients, safe for concurrent use
type OceanLoadingTable struct {
	mu      sync.RWMutex
	sites   map[string]BLQ
	cells   map[[2]int]BLQ
	cellDeg float64 // Grid cell size [deg]
}

func NewOceanLoadingTable(cellDeg float64) *OceanLoadingTable {
	if cellDeg <= 0 {
		cellDeg = 1
	}
	return &OceanLoadingTable{
		sites:   map[string]BLQ{},
		cells:   map[[2]int]BLQ{},
		cellDeg: cellDeg,
	}
}

// Site ids are matched by their first 4 characters, case insensitive
func blqID(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	if len(id) > 4 {
		id = id[:4]
	}
	return id
}

func (t *OceanLoadingTable) cellKey(lat, lon float64) [2]int {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return [2]int{int(math.Floor(lat / t.cellDeg)), int(math.Floor(lon / t.cellDeg))}
}

// Add or replace a site
func (t *OceanLoadingTable) Add(id string, b BLQ) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sites[blqID(id)] = b
}

// Add or replace the grid cell containing (lat, lon) [deg]
func (t *OceanLoadingTable) AddCell(lat, lon float64, b BLQ) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cells[t.cellKey(lat, lon)] = b
}

// Coefficients by site id, falling back to the grid cell at (lat, lon) [deg]
func (t *OceanLoadingTable) Lookup(id string, lat, lon float64) (BLQ, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if b, ok := t.sites[blqID(id)]; ok {
		return b, nil
	}
	if b, ok := t.cells[t.cellKey(lat, lon)]; ok {
		return b, nil
	}
	return BLQ{}, &NotFoundError{What: "ocean loading", Key: blqID(id)}
}

func (t *OceanLoadingTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sites) + len(t.cells)
}

// ------------------------------------
// Ocean pole tide loading grid
// ------------------------------------

// Ocean pole load tide coefficients (real and imaginary parts of north, east, up)
type OPoleCoef struct {
	R [3]float64
	I [3]float64
}

// Regular latitude/longitude grid of OPoleCoef, immutable after construction
type OceanPoleLoadingGrid struct {
	Lat0   float64 // Southernmost node latitude [deg]
	Lon0   float64 // Westernmost node longitude [deg]
	Step   float64 // Node spacing [deg]
	NLat   int
	NLon   int
	nodes  []OPoleCoef // Row major, latitude ascending
	global bool        // Longitude wraps around
}

func NewOceanPoleLoadingGrid(lat0, lon0, step float64, nlat, nlon int, nodes []OPoleCoef) (*OceanPoleLoadingGrid, error) {
	if step <= 0 {
		return nil, fmt.Errorf("invalid grid step %.6f", step)
	}
	if nlat < 2 || nlon < 2 {
		return nil, fmt.Errorf("grid must have at least 2x2 nodes, got %dx%d", nlat, nlon)
	}
	if len(nodes) != nlat*nlon {
		return nil, fmt.Errorf("number of nodes (%d) must match %dx%d", len(nodes), nlat, nlon)
	}
	return &OceanPoleLoadingGrid{
		Lat0:   lat0,
		Lon0:   lon0,
		Step:   step,
		NLat:   nlat,
		NLon:   nlon,
		nodes:  nodes,
		global: float64(nlon)*step >= 360-1e-9,
	}, nil
}

func (g *OceanPoleLoadingGrid) node(i, j int) *OPoleCoef {
	return &g.nodes[i*g.NLon+j]
}

// Cell index and normalized offset along one axis, ok=false outside
func gridAxis(f float64, n int) (int, float64, bool) {
	const epsilon = 1e-9
	if f < -epsilon || f > float64(n-1)+epsilon {
		return 0, 0, false
	}
	i := int(math.Floor(f))
	i = max(0, min(n-2, i))
	u := math.Max(0, math.Min(1, f-float64(i)))
	return i, u, true
}

// Bilinear interpolation at (lat, lon) [deg]
func (g *OceanPoleLoadingGrid) At(lat, lon float64) (OPoleCoef, error) {
	notFound := &NotFoundError{What: "ocean pole loading grid", Key: fmt.Sprintf("%.3f %.3f", lat, lon)}

	i, u, ok := gridAxis((lat-g.Lat0)/g.Step, g.NLat)
	if !ok {
		return OPoleCoef{}, notFound
	}
	dl := math.Mod(lon-g.Lon0, 360)
	if dl < 0 {
		dl += 360
	}
	var j, j1 int
	var t float64
	if g.global {
		f := dl / g.Step
		j = int(math.Floor(f)) % g.NLon
		t = f - math.Floor(f)
		j1 = (j + 1) % g.NLon
	} else {
		if j, t, ok = gridAxis(dl/g.Step, g.NLon); !ok {
			return OPoleCoef{}, notFound
		}
		j1 = j + 1
	}

	v00, v10 := g.node(i, j), g.node(i, j1)
	v01, v11 := g.node(i+1, j), g.node(i+1, j1)
	var c OPoleCoef
	for k := 0; k < 3; k++ {
		c.R[k] = (1-t)*(1-u)*v00.R[k] + t*(1-u)*v10.R[k] + (1-t)*u*v01.R[k] + t*u*v11.R[k]
		c.I[k] = (1-t)*(1-u)*v00.I[k] + t*(1-u)*v10.I[k] + (1-t)*u*v01.I[k] + t*u*v11.I[k]
	}
	return c, nil
}

// ------------------------------------
// Atmospheric pressure loading (S1/S2)
// ------------------------------------

// Cosine and sine amplitudes [m] of the S1 (index 0) and S2 (index 1) tides
type AtmCoef struct {
	Cos [2]PosENU
	Sin [2]PosENU
}

// Site keyed atmospheric tide loading coefficients, safe for concurrent use
type AtmLoadingTable struct {
	mu    sync.RWMutex
	sites map[string]AtmCoef
}

func NewAtmLoadingTable() *AtmLoadingTable {
	return &AtmLoadingTable{sites: map[string]AtmCoef{}}
}

func (t *AtmLoadingTable) Add(id string, c AtmCoef) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sites[blqID(id)] = c
}

func (t *AtmLoadingTable) Lookup(id string) (AtmCoef, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.sites[blqID(id)]
	if !ok {
		return AtmCoef{}, &NotFoundError{What: "atmospheric loading", Key: blqID(id)}
	}
	return c, nil
}

// S1/S2 synthesis at UT fraction of day, local (east, north, up) [m]
func atmENU(c *AtmCoef, fday float64) PosENU {
	var d PosENU
	for k := 0; k < 2; k++ {
		s, co := math.Sincos(float64(k+1) * 2 * PI * fday)
		d.E += c.Cos[k].E*co + c.Sin[k].E*s
		d.N += c.Cos[k].N*co + c.Sin[k].N*s
		d.U += c.Cos[k].U*co + c.Sin[k].U*s
	}
	return d
}
