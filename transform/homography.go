// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package transform implements projective transforms of the plane.

A Homography maps the four corners of one quadrilateral onto those of
another.  It is computed by the basis method: each point set is
expressed as the columns of a 3×3 matrix in homogeneous coordinates,
scaled so that the fourth point is their sum, and

	H = Bdst × Bsrc⁻¹

normalised so that H[2][2] is 1.
*/
package transform // import "github.com/unixdj/roundcode/transform"

import (
	"errors"
	"math"
)

// ErrSingular is returned when three of four points are collinear.
var ErrSingular = errors.New("roundcode: singular transform")

// A Point is a point in the plane.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{x, y} }

// A Matrix is a 3×3 matrix, row major.
type Matrix [3][3]float64

// Identity is the identity matrix.
var Identity = Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Mul returns m×n.
func (m Matrix) Mul(n Matrix) Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return r
}

// Det returns the determinant of m.
func (m Matrix) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// adj returns the adjugate of m.
func (m Matrix) adj() Matrix {
	return Matrix{
		{
			m[1][1]*m[2][2] - m[1][2]*m[2][1],
			m[0][2]*m[2][1] - m[0][1]*m[2][2],
			m[0][1]*m[1][2] - m[0][2]*m[1][1],
		}, {
			m[1][2]*m[2][0] - m[1][0]*m[2][2],
			m[0][0]*m[2][2] - m[0][2]*m[2][0],
			m[0][2]*m[1][0] - m[0][0]*m[1][2],
		}, {
			m[1][0]*m[2][1] - m[1][1]*m[2][0],
			m[0][1]*m[2][0] - m[0][0]*m[2][1],
			m[0][0]*m[1][1] - m[0][1]*m[1][0],
		},
	}
}

const eps = 1e-12

// Inverse returns the inverse of m.
func (m Matrix) Inverse() (Matrix, error) {
	d := m.Det()
	if math.Abs(d) < eps || math.IsNaN(d) {
		return Matrix{}, ErrSingular
	}
	a := m.adj()
	for i := range a {
		for j := range a[i] {
			a[i][j] /= d
		}
	}
	return a, nil
}

// apply returns m×(x, y, w).
func (m Matrix) apply(x, y, w float64) (float64, float64, float64) {
	return m[0][0]*x + m[0][1]*y + m[0][2]*w,
		m[1][0]*x + m[1][1]*y + m[1][2]*w,
		m[2][0]*x + m[2][1]*y + m[2][2]*w
}

// basis returns the matrix mapping the unit points
// (1,0,0), (0,1,0), (0,0,1) and (1,1,1) to p.
func basis(p [4]Point) (Matrix, error) {
	m := Matrix{
		{p[0].X, p[1].X, p[2].X},
		{p[0].Y, p[1].Y, p[2].Y},
		{1, 1, 1},
	}
	inv, err := m.Inverse()
	if err != nil {
		return Matrix{}, err
	}
	a, b, c := inv.apply(p[3].X, p[3].Y, 1)
	if math.Abs(a) < eps || math.Abs(b) < eps || math.Abs(c) < eps {
		return Matrix{}, ErrSingular
	}
	for i := 0; i < 3; i++ {
		m[i][0] *= a
		m[i][1] *= b
		m[i][2] *= c
	}
	return m, nil
}

// A Homography is a projective transform.
type Homography struct {
	M Matrix
}

// Compute returns the Homography mapping src[i] to dst[i].
// It returns ErrSingular if three points of either set are collinear.
func Compute(src, dst [4]Point) (Homography, error) {
	s, err := basis(src)
	if err != nil {
		return Homography{}, err
	}
	d, err := basis(dst)
	if err != nil {
		return Homography{}, err
	}
	si, err := s.Inverse()
	if err != nil {
		return Homography{}, err
	}
	return normalise(d.Mul(si))
}

func normalise(m Matrix) (Homography, error) {
	w := m[2][2]
	if math.Abs(w) < eps {
		return Homography{}, ErrSingular
	}
	for i := range m {
		for j := range m[i] {
			m[i][j] /= w
		}
	}
	return Homography{m}, nil
}

// Inverse returns the inverse transform.
func (h Homography) Inverse() (Homography, error) {
	m, err := h.M.Inverse()
	if err != nil {
		return Homography{}, err
	}
	return normalise(m)
}

// Then returns the transform applying h, then g.
func (h Homography) Then(g Homography) (Homography, error) {
	return normalise(g.M.Mul(h.M))
}

// Map maps p.  Points mapped to infinity have infinite or NaN
// coordinates.
func (h Homography) Map(p Point) Point {
	x, y, w := h.M.apply(p.X, p.Y, 1)
	return Point{x / w, y / w}
}

// MapIn maps p and reports whether the result lies within
// [0,w)×[0,h).  A point outside is replaced by the sentinel
// Point{-1, -1}.
func (h Homography) MapIn(p Point, w, ht float64) (Point, bool) {
	q := h.Map(p)
	if !(q.X >= 0 && q.X < w && q.Y >= 0 && q.Y < ht) {
		return Point{-1, -1}, false
	}
	return q, true
}
