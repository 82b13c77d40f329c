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

// Sentinel for recoverable lookup failures
var ErrNotFound = errors.New("not found")

// Epoch outside a table's validity window
type OutOfRangeError struct {
	What  string  // Table name
	Epoch float64 // Requested epoch
	Start float64 // Window start
	End   float64 // Window end
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: epoch %.6f out of range [%.6f, %.6f]", e.What, e.Epoch, e.Start, e.End)
}

// Invalid body name or id
type UnknownBodyError struct {
	Name string
}

func (e *UnknownBodyError) Error() string {
	return fmt.Sprintf("unknown body %q", e.Name)
}

// Site or grid cell lookup failure
type NotFoundError struct {
	What string // Table name
	Key  string // Site id or cell
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s not found", e.What, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Station geometry where a formula divides by a vanishing quantity
type DegenerateGeometryError struct {
	Op  string
	Pos PosXYZ
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("%s: degenerate station geometry (%.3f, %.3f, %.3f)", e.Op, e.Pos.X, e.Pos.Y, e.Pos.Z)
}
