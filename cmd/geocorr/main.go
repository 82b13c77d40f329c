// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	m "github.com/mkhts/geocorr"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs()
	if err != nil {
		m.PrintE(err)
		flag.Usage()
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Main application processing
func runApplication(args cmdOpt) error {

	// Sun and Moon source
	sm, closer, err := openSunMoon(args)
	if err != nil {
		return fmt.Errorf("failed to open ephemeris: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	// Frame engine over a constant EOP
	eop := m.NewEopSeries(m.EopLinear)
	mjd0 := m.NewGTimeUTC(args.ts).MjdUTC() - 1
	mjd1 := m.NewGTimeUTC(args.te).MjdUTC() + 1
	eop.AddUTC(mjd0, args.xp, args.yp, args.dut1, 0, 0)
	eop.AddUTC(mjd1, args.xp, args.yp, args.dut1, 0, 0)
	fOpt := m.NewFrameOpt()
	fOpt.Conv = args.conv
	fOpt.Nut = args.nut
	if len(args.oeopFn) > 0 {
		tb, err := readOceanEop(args.oeopFn)
		if err != nil {
			return fmt.Errorf("failed to read ocean tide EOP table: %w", err)
		}
		fOpt.OceanEopTab = tb
	}
	fe := m.NewFrameEngine(eop, fOpt)

	// Tide model without loading tables
	tOpt := m.NewTideOpt()
	tOpt.Variant = args.tide
	tOpt.MeanPole = args.meanPole
	tOpt.PermTide = args.permTide
	tOpt.Ocean = false
	tOpt.OceanPole = false
	tm := m.NewTideModel(tOpt, nil, nil, nil)

	bOpt := m.NewBatchOpt()
	if args.workers > 0 {
		bOpt.Workers = args.workers
	}
	batch := m.NewBatch(fe, tm, sm, bOpt)

	// Epochs
	var times []m.GTime
	for t := args.ts; !t.After(args.te); t = t.Add(time.Duration(args.ti) * time.Second) {
		times = append(times, *m.NewGTimeUTC(t))
	}
	xyz := args.pos.ToXYZ()
	sta := m.Station{ID: args.id, Pos: xyz.Vec3().To(m.Millimeter)}
	res, err := batch.Run(context.Background(), times, sta)
	if err != nil {
		return fmt.Errorf("failed to compute corrections: %w", err)
	}

	// Output
	out, err := prepareOutput(args)
	if err != nil {
		return fmt.Errorf("failed to prepare output: %w", err)
	}
	defer out.Close()
	if !args.noHeader {
		printHeader(out, os.Args[0], args)
	}
	for _, r := range res {
		printCorr(out, r, args.pos)
	}
	return nil
}

// Sun and Moon from a JPL file if given, analytic theories otherwise
func openSunMoon(args cmdOpt) (m.SunMoonProvider, io.Closer, error) {
	var p m.SunMoonProvider = m.AnalyticSunMoon{}
	var c io.Closer
	if len(args.ephFn) > 0 {
		eph, err := m.OpenEphemeris(args.ephFn)
		if err != nil {
			return nil, nil, err
		}
		m.PrintD(1, "ephemeris: DE%d %.1f-%.1f\n", eph.Header.DE, eph.Header.Start, eph.Header.End)
		p, c = eph, eph
	}
	cache, err := m.NewSunMoonCache(p, args.cacheSize)
	if err != nil {
		return nil, c, err
	}
	return cache, c, nil
}

// Read the ocean tide EOP line table
func readOceanEop(fn string) (*m.OceanEopTable, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return m.ReadOceanEopTable(f)
}

// Prepare output file
func prepareOutput(args cmdOpt) (io.WriteCloser, error) {

	// Use stdout if no output file is specified
	if len(args.outFn) == 0 {
		return &nopCloser{os.Stdout}, nil
	}

	// Create output file
	f, err := os.Create(args.outFn)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// nopCloser - WriteCloser that ignores close operations
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Structure to hold command line argument information
type cmdOpt struct {
	outFn     string
	ephFn     string
	oeopFn    string
	id        string
	pos       m.PosLLH
	ts, te    time.Time
	ti        int
	noHeader  bool
	conv      m.Convention
	nut       m.NutationModel
	tide      m.TideVariant
	meanPole  m.MeanPoleModel
	permTide  bool
	xp, yp    float64
	dut1      float64
	workers   int
	cacheSize int
}

// Parse command line arguments
func parseArgs() (a cmdOpt, err error) {
	flag.Usage = func() {
		m.PrintA(`
[Usage]
	%s [Options] -l "lat lon hei" -ts "2024/01/01 00:00:00" -te "2024/01/02 00:00:00"

[Options]
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	fOpt := m.NewFrameOpt()
	tOpt := m.NewTideOpt()
	a.conv = fOpt.Conv
	a.nut = fOpt.Nut
	a.tide = tOpt.Variant
	a.meanPole = tOpt.MeanPole
	flag.Var(&a.pos, "l", "Station latitude/longitude/ellipsoidal height. Enclose in quotes like -l \"35.73101206 139.7396917 80.33\"")
	flag.StringVar(&a.id, "id", "", "Station id (4 characters)")
	var ts_, te_ m.TimeStr
	flag.TextVar(&ts_, "ts", m.NewTimeStr(time.Time{}), "Start epoch (UTC). Enclose in quotes like -ts \"2023/01/01 00:00:00\"")
	flag.TextVar(&te_, "te", m.NewTimeStr(time.Time{}), "End epoch (UTC). This epoch is also included.")
	flag.IntVar(&a.ti, "ti", 3600, "Output interval [s]")
	flag.StringVar(&a.ephFn, "eph", "", "JPL DE binary ephemeris file. If not specified, use analytic Sun and Moon.")
	flag.StringVar(&a.oeopFn, "oeop", "", "Ocean tide EOP line table (IERS PMUT1_OCEANS layout). If not specified, use the principal lines.")
	flag.StringVar(&a.outFn, "o", "", "Output file path. If not specified, output to stdout.")
	flag.BoolVar(&a.noHeader, "nh", false, "Do not output header section.")
	flag.Var(&a.conv, "conv", "Precession-nutation convention. 00(IAU 2000, equinox based), 06(IAU 2006, CIO based)")
	flag.Var(&a.nut, "nut", "Nutation series. 2000A(1365 terms), 2000B(77 terms)")
	flag.Var(&a.tide, "tide", "Solid earth tide model. 2010(IERS 2010), 1996(IERS 1996)")
	flag.Var(&a.meanPole, "mp", "Mean pole model. 2010(IERS 2010), linear(secular)")
	flag.BoolVar(&a.permTide, "pt", tOpt.PermTide, "Remove permanent tide (IERS 1996 model only)")
	flag.Float64Var(&a.xp, "xp", 0, "Pole x [arcsec]")
	flag.Float64Var(&a.yp, "yp", 0, "Pole y [arcsec]")
	flag.Float64Var(&a.dut1, "dut1", 0, "UT1-UTC [s]")
	flag.IntVar(&a.workers, "j", 0, "Number of concurrent epochs. 0 for number of CPUs.")
	flag.IntVar(&a.cacheSize, "cs", 1024, "Sun/Moon cache size [epochs]")
	var dbg int
	flag.IntVar(&dbg, "x", 0, "Debug information display. Specify level value. -1(silent), 0(warnings), 1(display), 2-5(more detailed)")
	flag.Parse()
	if flag.NArg() != 0 {
		return a, fmt.Errorf("too many arguments")
	}
	a.ts = time.Time(ts_)
	a.te = time.Time(te_)
	if a.pos.Lat == 0 && a.pos.Lon == 0 && a.pos.Hei == 0 {
		return a, fmt.Errorf("the station position must be specified! (-l option)")
	}
	if a.ts.IsZero() || a.te.Before(a.ts) {
		return a, fmt.Errorf("invalid time span (-ts, -te options)")
	}
	if a.ti <= 0 {
		return a, fmt.Errorf("interval must be positive (-ti option)")
	}
	m.DBG_ = dbg
	if m.DBG_ >= 1 {
		xyz := a.pos.ToXYZ()
		m.PrintA("pos(llh, xyz): %14.9f %14.9f %10.4f, %12.4f %12.4f %12.4f\n", m.ToDeg(a.pos.Lat), m.ToDeg(a.pos.Lon), a.pos.Hei, xyz.X, xyz.Y, xyz.Z)
	}
	return
}

// Print header
func printHeader(w io.Writer, cmd string, args cmdOpt) {
	fmt.Fprintf(w, "%% program   : %s\n", filepath.Base(cmd))
	if len(args.ephFn) > 0 {
		fmt.Fprintf(w, "%% ephemeris : %s\n", args.ephFn)
	}
	if len(args.oeopFn) > 0 {
		fmt.Fprintf(w, "%% ocean eop : %s\n", args.oeopFn)
	}
	fmt.Fprintf(w, "%% span      : JD(UTC) %.6f - %.6f, %d s\n", m.NewGTimeUTC(args.ts).JdUTC(), m.NewGTimeUTC(args.te).JdUTC(), args.ti)
	fmt.Fprintf(w, "%% station   : %s %.8f %.8f %.3f\n", args.id, m.ToDeg(args.pos.Lat), m.ToDeg(args.pos.Lon), args.pos.Hei)
	fmt.Fprintf(w, "%% models    : conv=%s nut=%s tide=%s meanpole=%s\n", args.conv.String(), args.nut.String(), args.tide.String(), args.meanPole.String())
	fmt.Fprintf(w, "%%  UTC                    solid-e   solid-n   solid-u    pole-e    pole-n    pole-u   total-e   total-n   total-u (mm)\n")
}

// Print one epoch in local east/north/up [mm]
func printCorr(w io.Writer, r m.EpochCorr, llh m.PosLLH) {
	enu := func(v m.Vec3) m.PosENU {
		x := v.XYZ()
		return x.RotENU(llh)
	}
	s := enu(r.Tide.Solid)
	p := enu(r.Tide.Pole)
	t := enu(r.Tide.Total)
	fmt.Fprintf(w, "%s %9.3f %9.3f %9.3f %9.3f %9.3f %9.3f %9.3f %9.3f %9.3f\n",
		r.Time.UTC().Format("2006/01/02 15:04:05.000"),
		s.E*1e3, s.N*1e3, s.U*1e3, p.E*1e3, p.N*1e3, p.U*1e3, t.E*1e3, t.N*1e3, t.U*1e3)
}
