// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type BatchOpt struct {
	Workers  int  // Concurrent epochs (default: number of CPUs)
	Partials bool // Compute frame partials (default: false)
}

func NewBatchOpt() *BatchOpt {
	return &BatchOpt{
		Workers:  runtime.NumCPU(),
		Partials: false,
	}
}

// Corrections of one epoch
type EpochCorr struct {
	Time  GTime
	Frame *FrameState
	Tide  TideCorr
}

// Per-epoch frame and tide corrections of one station over many epochs
type Batch struct {
	fe  *FrameEngine
	tm  Tides
	sm  SunMoonProvider
	opt BatchOpt
}

func NewBatch(fe *FrameEngine, tm Tides, sm SunMoonProvider, opt *BatchOpt) *Batch {
	if opt == nil {
		opt = NewBatchOpt()
	}
	return &Batch{fe: fe, tm: tm, sm: sm, opt: *opt}
}

// One epoch
func (b *Batch) Epoch(t GTime, sta Station) (EpochCorr, error) {
	fs := b.fe.Compute(t, b.opt.Partials)
	sun, moon, err := b.sm.SunMoon(t.JdTT())
	if err != nil {
		return EpochCorr{}, fmt.Errorf("SunMoon() failed, err=%w", err)
	}
	tc, err := b.tm.Displacement(t, sta, fs, sun, moon)
	if err != nil {
		return EpochCorr{}, err
	}
	return EpochCorr{Time: t, Frame: fs, Tide: tc}, nil
}

// All epochs, results in input order. The first error cancels the rest.
func (b *Batch) Run(ctx context.Context, times []GTime, sta Station) ([]EpochCorr, error) {
	res := make([]EpochCorr, len(times))
	g, ctx := errgroup.WithContext(ctx)
	if b.opt.Workers > 0 {
		g.SetLimit(b.opt.Workers)
	}
	for i, t := range times {
		i, t := i, t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := b.Epoch(t, sta)
			if err != nil {
				return fmt.Errorf("epoch %s: %w", t.ToTime().UTC().Format("2006/01/02 15:04:05"), err)
			}
			res[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
