// Package cmplxmat provides the small dense complex matrices the
// classical-shadow kernels work with: 2x2 single-register blocks and their
// Kronecker products.
package cmplxmat

import "fmt"

// Matrix is a dense row-major complex matrix.
type Matrix struct {
	Rows, Cols int
	Data       []complex128
}

// New returns a zero matrix of the given shape.
func New(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]complex128, rows*cols)}
}

// Identity returns the n x n identity.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.Data[i*n+i] = 1
	}
	return m
}

// FromRows builds a matrix from row slices; every row must have the same
// length.
func FromRows(rows [][]complex128) *Matrix {
	if len(rows) == 0 {
		return New(0, 0)
	}
	m := New(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.Cols {
			panic(fmt.Sprintf("cmplxmat: row %d has %d columns, want %d", i, len(row), m.Cols))
		}
		copy(m.Data[i*m.Cols:], row)
	}
	return m
}

// At returns the element at (i, j).
func (m *Matrix) At(i, j int) complex128 { return m.Data[i*m.Cols+j] }

// Set assigns the element at (i, j).
func (m *Matrix) Set(i, j int, v complex128) { m.Data[i*m.Cols+j] = v }

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := New(m.Rows, m.Cols)
	copy(out.Data, m.Data)
	return out
}

// Add accumulates b into m in place.
func (m *Matrix) Add(b *Matrix) *Matrix {
	checkSameShape(m, b)
	for i := range m.Data {
		m.Data[i] += b.Data[i]
	}
	return m
}

// Scale multiplies every element by s in place.
func (m *Matrix) Scale(s complex128) *Matrix {
	for i := range m.Data {
		m.Data[i] *= s
	}
	return m
}

// Mul returns the matrix product a*b.
func Mul(a, b *Matrix) *Matrix {
	if a.Cols != b.Rows {
		panic(fmt.Sprintf("cmplxmat: cannot multiply %dx%d by %dx%d", a.Rows, a.Cols, b.Rows, b.Cols))
	}
	out := New(a.Rows, b.Cols)
	for i := 0; i < a.Rows; i++ {
		for k := 0; k < a.Cols; k++ {
			aik := a.Data[i*a.Cols+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.Cols; j++ {
				out.Data[i*out.Cols+j] += aik * b.Data[k*b.Cols+j]
			}
		}
	}
	return out
}

// Kron returns the Kronecker product a (x) b.
func Kron(a, b *Matrix) *Matrix {
	out := New(a.Rows*b.Rows, a.Cols*b.Cols)
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			aij := a.Data[i*a.Cols+j]
			if aij == 0 {
				continue
			}
			for k := 0; k < b.Rows; k++ {
				for l := 0; l < b.Cols; l++ {
					out.Data[(i*b.Rows+k)*out.Cols+(j*b.Cols+l)] = aij * b.Data[k*b.Cols+l]
				}
			}
		}
	}
	return out
}

// Dagger returns the conjugate transpose.
func Dagger(m *Matrix) *Matrix {
	out := New(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			v := m.Data[i*m.Cols+j]
			out.Data[j*out.Cols+i] = complex(real(v), -imag(v))
		}
	}
	return out
}

// Trace returns the sum of diagonal elements of a square matrix.
func Trace(m *Matrix) complex128 {
	if m.Rows != m.Cols {
		panic(fmt.Sprintf("cmplxmat: trace of non-square %dx%d matrix", m.Rows, m.Cols))
	}
	var t complex128
	for i := 0; i < m.Rows; i++ {
		t += m.Data[i*m.Cols+i]
	}
	return t
}

func checkSameShape(a, b *Matrix) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		panic(fmt.Sprintf("cmplxmat: shape mismatch %dx%d vs %dx%d", a.Rows, a.Cols, b.Rows, b.Cols))
	}
}
