package roi

import (
	"errors"
	"math"
)

// ErrFitUnderdetermined is returned by FitAffine when the point
// correspondences do not determine a unique affine transform.
var ErrFitUnderdetermined = errors.New("roi: affine fit underdetermined")

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// Membership queries use a Matrix to map pixel-space coordinates
// (origin top-left, y-down) into annotation world space.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Shear creates a shear matrix.
func Shear(x, y float64) Matrix {
	return Matrix{
		A: 1, B: x, C: 0,
		D: y, E: 1, F: 0,
	}
}

// Centered rebases m so that pixel coordinates are measured from the
// center of a width x height grid before m applies. Acquisition
// transforms are commonly registered against the image center; this
// converts them to the top-left pixel origin used by PixelQuery.
func Centered(width, height int, m Matrix) Matrix {
	return m.Multiply(Translate(-float64(width)/2, -float64(height)/2))
}

// Multiply multiplies two matrices (m * other). The product applies
// other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Determinant returns the determinant of the linear part.
// A zero determinant means the matrix collapses areas to zero.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if math.Abs(det) < 1e-10 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsFinite reports whether all six coefficients are finite numbers.
func (m Matrix) IsFinite() bool {
	for _, v := range [6]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsSingular reports whether the linear part is (numerically) rank
// deficient. Singular transforms have no defined pixel membership.
func (m Matrix) IsSingular() bool {
	return math.Abs(m.Determinant()) < 1e-10
}

// FitAffine computes the least-squares affine transform mapping each
// from[i] onto to[i]. At least three non-collinear correspondences are
// required; with exactly three the fit is exact. Used to register an
// acquisition's pixel grid against slide coordinates from matched
// landmark pairs.
func FitAffine(from, to []Point) (Matrix, error) {
	if len(from) != len(to) || len(from) < 3 {
		return Matrix{}, ErrFitUnderdetermined
	}

	// The two output rows decouple into two 3x3 normal-equation
	// systems sharing the same coefficient matrix:
	//
	//	S = sum [x*x  x*y  x]      bx = sum [x*u]     by = sum [x*v]
	//	        [x*y  y*y  y]               [y*u]              [y*v]
	//	        [x    y    1]               [u  ]              [v  ]
	var s [3][3]float64
	var bx, by [3]float64
	for i, p := range from {
		q := to[i]
		s[0][0] += p.X * p.X
		s[0][1] += p.X * p.Y
		s[0][2] += p.X
		s[1][1] += p.Y * p.Y
		s[1][2] += p.Y
		s[2][2] += 1

		bx[0] += p.X * q.X
		bx[1] += p.Y * q.X
		bx[2] += q.X
		by[0] += p.X * q.Y
		by[1] += p.Y * q.Y
		by[2] += q.Y
	}
	s[1][0] = s[0][1]
	s[2][0] = s[0][2]
	s[2][1] = s[1][2]

	rowX, okX := solve3(s, bx)
	rowY, okY := solve3(s, by)
	if !okX || !okY {
		return Matrix{}, ErrFitUnderdetermined
	}

	return Matrix{
		A: rowX[0], B: rowX[1], C: rowX[2],
		D: rowY[0], E: rowY[1], F: rowY[2],
	}, nil
}

// solve3 solves a 3x3 linear system by Gaussian elimination with
// partial pivoting. Returns false for singular systems.
func solve3(a [3][3]float64, b [3]float64) ([3]float64, bool) {
	const eps = 1e-12

	for col := 0; col < 3; col++ {
		pivot := col
		for row := col + 1; row < 3; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < eps {
			return [3]float64{}, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < 3; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < 3; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	var x [3]float64
	for row := 2; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < 3; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, true
}
