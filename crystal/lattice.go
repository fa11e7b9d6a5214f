/*
 * lattice.go, part of gorho.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goRho is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

//Package crystal provides lattices and periodic atomic structures for the
//gorho library. It covers only what a periodic scalar field needs from its
//crystallographic surroundings: basis vectors, scalar cell parameters,
//fractional coordinates, site translation and integer-matrix replication.
package crystal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Lattice is a crystallographic lattice: a 3x3 matrix whose rows are the
//basis vectors, in Angstrom. A Lattice is immutable once built; operations
//that would change it return a new Lattice.
type Lattice struct {
	vecs *mat.Dense //3x3, rows are basis vectors
}

//NewLattice builds a lattice from a row-major slice of the 9 components
//of the basis vectors.
func NewLattice(data []float64) (*Lattice, error) {
	if len(data) != 9 {
		return nil, &Error{fmt.Sprintf("need 9 components for a lattice, got %d", len(data)), []string{"NewLattice"}}
	}
	d := make([]float64, 9)
	copy(d, data)
	return &Lattice{vecs: mat.NewDense(3, 3, d)}, nil
}

//NewLatticeFromMatrix builds a lattice from a 3x3 gonum matrix.
func NewLatticeFromMatrix(m mat.Matrix) (*Lattice, error) {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return nil, &Error{fmt.Sprintf("lattice matrix must be 3x3, got %dx%d", r, c), []string{"NewLatticeFromMatrix"}}
	}
	return &Lattice{vecs: mat.DenseCopyOf(m)}, nil
}

//FromParameters builds a lattice from its scalar parameters: the three
//lengths (Angstrom) and the three angles (degrees), in the canonical
//crystallographic orientation: a along the x axis, b in the xy plane and
//c in the positive-z half of space.
func FromParameters(a, b, c, alpha, beta, gamma float64) *Lattice {
	ca := math.Cos(alpha * math.Pi / 180)
	cb := math.Cos(beta * math.Pi / 180)
	cg := math.Cos(gamma * math.Pi / 180)
	sg := math.Sin(gamma * math.Pi / 180)
	bx := b * cg
	by := b * sg
	cx := c * cb
	cy := c * (ca - cb*cg) / sg
	cz := math.Sqrt(math.Max(c*c-cx*cx-cy*cy, 0))
	return &Lattice{vecs: mat.NewDense(3, 3, []float64{
		a, 0, 0,
		bx, by, 0,
		cx, cy, cz,
	})}
}

//Copy returns a copy of the lattice.
func (L *Lattice) Copy() *Lattice {
	return &Lattice{vecs: mat.DenseCopyOf(L.vecs)}
}

//Matrix returns a copy of the 3x3 basis-vector matrix, rows being
//basis vectors.
func (L *Lattice) Matrix() *mat.Dense {
	return mat.DenseCopyOf(L.vecs)
}

//Vec returns the ith basis vector. Panics if i is out of range, as
//this has to be a programming error.
func (L *Lattice) Vec(i int) [3]float64 {
	if i < 0 || i > 2 {
		panic("crystal: lattice vector index out of range")
	}
	return [3]float64{L.vecs.At(i, 0), L.vecs.At(i, 1), L.vecs.At(i, 2)}
}

//Abc returns the lengths of the three basis vectors.
func (L *Lattice) Abc() (a, b, c float64) {
	return rowNorm(L.vecs, 0), rowNorm(L.vecs, 1), rowNorm(L.vecs, 2)
}

//Angles returns the three cell angles in degrees: alpha (between b and c),
//beta (between a and c) and gamma (between a and b).
func (L *Lattice) Angles() (alpha, beta, gamma float64) {
	alpha = rowAngle(L.vecs, 1, 2)
	beta = rowAngle(L.vecs, 0, 2)
	gamma = rowAngle(L.vecs, 0, 1)
	return alpha, beta, gamma
}

//Volume returns the volume of the cell, always positive.
func (L *Lattice) Volume() float64 {
	return math.Abs(mat.Det(L.vecs))
}

//AllClose returns true if every component of L is within tol of the
//corresponding component of M, with numpy-like mixed absolute/relative
//tolerance.
func (L *Lattice) AllClose(M *Lattice, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := L.vecs.At(i, j)
			w := M.vecs.At(i, j)
			if math.Abs(v-w) > tol+tol*math.Abs(w) {
				return false
			}
		}
	}
	return true
}

//Supercell returns the lattice obtained by taking integer combinations
//of the basis vectors: the rows of the new lattice are sc times the rows
//of L.
func (L *Lattice) Supercell(sc [3][3]int) *Lattice {
	n := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += float64(sc[i][k]) * L.vecs.At(k, j)
			}
			n.Set(i, j, s)
		}
	}
	return &Lattice{vecs: n}
}

//Reoriented returns the same physical lattice rebuilt from its scalar
//parameters, in the canonical orientation. Lengths, angles and volume
//are preserved; only the basis representation changes. Applying
//Reoriented to an already canonical lattice returns the same matrix.
func (L *Lattice) Reoriented() *Lattice {
	a, b, c := L.Abc()
	al, be, ga := L.Angles()
	return FromParameters(a, b, c, al, be, ga)
}

func rowNorm(m *mat.Dense, i int) float64 {
	x := m.At(i, 0)
	y := m.At(i, 1)
	z := m.At(i, 2)
	return math.Sqrt(x*x + y*y + z*z)
}

//rowAngle returns the angle between the ith and jth rows, in degrees.
func rowAngle(m *mat.Dense, i, j int) float64 {
	var dot float64
	for k := 0; k < 3; k++ {
		dot += m.At(i, k) * m.At(j, k)
	}
	cos := dot / (rowNorm(m, i) * rowNorm(m, j))
	//floating point can push the cosine barely out of [-1,1]
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}
