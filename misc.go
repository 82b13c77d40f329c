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
	"os"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
)

// ------------------------------------
// Mini functions
// ------------------------------------

func ToDeg(rad float64) float64 {
	return rad / PI * 180.0
}

func ToRad(deg float64) float64 {
	return deg / 180.0 * PI
}

// Normalize angle to [0, 2pi)
func NormRad(a float64) float64 {
	a = math.Mod(a, 2*PI)
	if a < 0 {
		a += 2 * PI
	}
	return a
}

// ------------------------------------
// Debug print function
// ------------------------------------

func PrintMat(X mat.Matrix) {
	r, c := X.Dims()
	fmt.Fprintf(os.Stderr, "(%d x %d)\n", r, c)
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	fmt.Fprintf(os.Stderr, "%v\n", fa)
}

func PrintA(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
}

func PrintAIf(cond bool, format string, a ...any) {
	if cond {
		PrintA(format, a...)
	}
}

func PrintB(t GTime, format string, a ...any) {
	fmt.Fprintf(os.Stderr, t.ToTime().UTC().Format("2006-01-02T15:04:05.000000")+"\t"+format, a...)
}

// Debug display level (negative value silences warnings too)
var DBG_ int

// Debug display
func PrintD(v int, format string, a ...any) {
	PrintAIf(DBG_ >= v, format, a...)
}

func PrintE(err error) {
	fmt.Fprintf(os.Stderr, "err=%s\n", err.Error())
}

// Warning for recoverable conditions
func PrintW(format string, a ...any) {
	PrintAIf(DBG_ >= 0, "warn: "+format, a...)
}

// ------------------------------------
// For command argument parsing
// ------------------------------------

// Date and Time Parser (for command arguments)
type TimeStr time.Time

func (p *TimeStr) MarshalText() (text []byte, err error) {
	text, err = time.Time(*p).MarshalText()
	if err != nil {
		return nil, err
	}
	return text, nil
}

func (p *TimeStr) UnmarshalText(text []byte) error {
	s := string(text)
	t, err := time.Parse("2006/01/02 15:04:05", s)
	if err != nil {
		return err
	}
	*p = TimeStr(t)
	return nil
}

func NewTimeStr(t time.Time) *TimeStr {
	m := new(TimeStr)
	*m = TimeStr(t)
	return m
}

// Precession-nutation convention ("00" or "06")
func (p *Convention) Set(s string) error {
	switch strings.TrimSpace(s) {
	case "00":
		*p = Conv00
	case "06":
		*p = Conv06
	default:
		return fmt.Errorf("unknown convention %q", s)
	}
	return nil
}

func (p *Convention) String() string {
	switch *p {
	case Conv00:
		return "00"
	case Conv06:
		return "06"
	default:
		return "UNKNOWN!"
	}
}

// Nutation series ("2000A" or "2000B")
func (p *NutationModel) Set(s string) error {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "2000A", "00A":
		*p = Nut00A
	case "2000B", "00B":
		*p = Nut00B
	default:
		return fmt.Errorf("unknown nutation model %q", s)
	}
	return nil
}

func (p *NutationModel) String() string {
	switch *p {
	case Nut00A:
		return "2000A"
	case Nut00B:
		return "2000B"
	default:
		return "UNKNOWN!"
	}
}

// Tide model variant ("2010" or "1996")
func (p *TideVariant) Set(s string) error {
	switch strings.TrimSpace(s) {
	case "2010":
		*p = TideIERS2010
	case "1996":
		*p = TideIERS1996
	default:
		return fmt.Errorf("unknown tide model %q", s)
	}
	return nil
}

func (p *TideVariant) String() string {
	switch *p {
	case TideIERS2010:
		return "2010"
	case TideIERS1996:
		return "1996"
	default:
		return "UNKNOWN!"
	}
}

// Mean pole model ("2010" or "linear")
func (p *MeanPoleModel) Set(s string) error {
	switch strings.TrimSpace(s) {
	case "2010":
		*p = MeanPoleIERS2010
	case "linear":
		*p = MeanPoleSecular
	default:
		return fmt.Errorf("unknown mean pole model %q", s)
	}
	return nil
}

func (p *MeanPoleModel) String() string {
	switch *p {
	case MeanPoleIERS2010:
		return "2010"
	case MeanPoleSecular:
		return "linear"
	default:
		return "UNKNOWN!"
	}
}
