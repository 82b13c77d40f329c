// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Elementary rotation and its derivative with respect to the angle
func procMat(axis int, a float64) (r, dr *mat.Dense) {
	s, c := math.Sincos(a)
	switch axis {
	case 1:
		r = mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
		dr = mat.NewDense(3, 3, []float64{0, 0, 0, 0, -s, c, 0, -c, -s})
	case 2:
		r = mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
		dr = mat.NewDense(3, 3, []float64{-s, 0, -c, 0, 0, 0, c, 0, -s})
	default:
		r = mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
		dr = mat.NewDense(3, 3, []float64{-s, c, 0, -c, -s, 0, 0, 0, 0})
	}
	return r, dr
}

// Rotation about the 1st axis
func R1(a float64) *mat.Dense {
	r, _ := procMat(1, a)
	return r
}

// Rotation about the 2nd axis
func R2(a float64) *mat.Dense {
	r, _ := procMat(2, a)
	return r
}

// Rotation about the 3rd axis
func R3(a float64) *mat.Dense {
	r, _ := procMat(3, a)
	return r
}

// Product m[0]*m[1]*...
func mul(m ...mat.Matrix) *mat.Dense {
	r := mat.DenseCopyOf(m[0])
	for _, b := range m[1:] {
		var t mat.Dense
		t.Mul(r, b)
		r = &t
	}
	return r
}

// Sum of matrices
func add(m ...mat.Matrix) *mat.Dense {
	r := mat.DenseCopyOf(m[0])
	for _, b := range m[1:] {
		r.Add(r, b)
	}
	return r
}

func scale(k float64, m mat.Matrix) *mat.Dense {
	var r mat.Dense
	r.Scale(k, m)
	return &r
}

func trans(m mat.Matrix) *mat.Dense {
	return mat.DenseCopyOf(m.T())
}

// Matrix times vector (unit preserved)
func mulVec(m mat.Matrix, v Vec3) Vec3 {
	var r mat.VecDense
	r.MulVec(m, mat.NewVecDense(3, v.Slice()))
	return Vec3{X: r.AtVec(0), Y: r.AtVec(1), Z: r.AtVec(2), Unit: v.Unit}
}
