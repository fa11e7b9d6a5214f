/*
 * structure.go, part of gorho.
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

package crystal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//tolerance used to decide whether a lattice point sits inside the
//supercell when replicating a structure.
const insideTol = 1e-8

//Structure is a periodic atomic structure: a lattice plus one species
//label and one fractional coordinate per site. Sites are stored as the
//rows of an Nx3 matrix of fractional coordinates. Operations on a
//Structure never mutate it; they return new objects.
type Structure struct {
	lat     *Lattice
	species []string
	fracs   *mat.Dense //nsites x 3, fractional coordinates
}

//NewStructure builds a structure from a lattice, the per-site species
//labels and the Nx3 matrix of fractional coordinates. The coordinate
//matrix is copied, so the caller keeps ownership of fracs.
func NewStructure(lat *Lattice, species []string, fracs *mat.Dense) (*Structure, error) {
	r, c := fracs.Dims()
	if c != 3 {
		return nil, &Error{fmt.Sprintf("fractional coordinates must have 3 columns, got %d", c), []string{"NewStructure"}}
	}
	if r != len(species) {
		return nil, &Error{fmt.Sprintf("%d species labels for %d sites", len(species), r), []string{"NewStructure"}}
	}
	if r == 0 {
		return nil, &Error{"structure needs at least one site", []string{"NewStructure"}}
	}
	sp := make([]string, len(species))
	copy(sp, species)
	return &Structure{lat: lat.Copy(), species: sp, fracs: mat.DenseCopyOf(fracs)}, nil
}

//Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	sp := make([]string, len(S.species))
	copy(sp, S.species)
	return &Structure{lat: S.lat.Copy(), species: sp, fracs: mat.DenseCopyOf(S.fracs)}
}

//Len returns the number of sites.
func (S *Structure) Len() int {
	r, _ := S.fracs.Dims()
	return r
}

//Species returns the species label of the ith site. Panics if out
//of range.
func (S *Structure) Species(i int) string {
	if i < 0 || i >= len(S.species) {
		panic("crystal: site index out of range")
	}
	return S.species[i]
}

//SpeciesList returns a copy of the per-site species labels, in site order.
func (S *Structure) SpeciesList() []string {
	sp := make([]string, len(S.species))
	copy(sp, S.species)
	return sp
}

//FracCoords returns a copy of the Nx3 fractional-coordinate matrix.
func (S *Structure) FracCoords() *mat.Dense {
	return mat.DenseCopyOf(S.fracs)
}

//Lattice returns a copy of the structure's lattice.
func (S *Structure) Lattice() *Lattice {
	return S.lat.Copy()
}

//Volume returns the volume of the structure's cell.
func (S *Structure) Volume() float64 {
	return S.lat.Volume()
}

//Translated returns a new structure with the sites given by indices
//displaced by the fractional vector v and wrapped back into the unit
//cell. A nil indices slice translates every site.
func (S *Structure) Translated(indices []int, v [3]float64) (*Structure, error) {
	n := S.Copy()
	if indices == nil {
		indices = make([]int, S.Len())
		for i := range indices {
			indices[i] = i
		}
	}
	for _, i := range indices {
		if i < 0 || i >= S.Len() {
			return nil, &Error{fmt.Sprintf("site index %d out of range", i), []string{"Translated"}}
		}
		for j := 0; j < 3; j++ {
			x := n.fracs.At(i, j) + v[j]
			n.fracs.Set(i, j, x-math.Floor(x))
		}
	}
	return n, nil
}

//Reoriented returns the structure with its lattice rewritten in the
//canonical orientation. Fractional coordinates are invariant under
//this change of basis, so the sites are untouched.
func (S *Structure) Reoriented() *Structure {
	n := S.Copy()
	n.lat = S.lat.Reoriented()
	return n
}

//Supercell replicates the structure by an integer transformation matrix:
//the new lattice rows are sc times the old ones, and the new cell holds
//|det(sc)| copies of every site, at the old-lattice translations that
//fall inside the new cell. Returns an error if sc is singular.
func (S *Structure) Supercell(sc [3][3]int) (*Structure, error) {
	d := det3i(sc)
	if d == 0 {
		return nil, &Error{"supercell matrix is singular", []string{"Supercell"}}
	}
	nrep := d
	if nrep < 0 {
		nrep = -nrep
	}
	newLat := S.lat.Supercell(sc)
	scf := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			scf.Set(i, j, float64(sc[i][j]))
		}
	}
	var scInv mat.Dense
	if err := scInv.Inverse(scf); err != nil {
		return nil, &Error{"supercell matrix is singular: " + err.Error(), []string{"Supercell"}}
	}
	trans := insideTranslations(sc, &scInv)
	if len(trans) != nrep {
		return nil, &Error{fmt.Sprintf("found %d lattice points in the supercell, expected %d", len(trans), nrep), []string{"Supercell"}}
	}
	nold := S.Len()
	species := make([]string, 0, nold*nrep)
	fracs := mat.NewDense(nold*nrep, 3, nil)
	row := 0
	for i := 0; i < nold; i++ {
		for _, t := range trans {
			//old-lattice coordinates of the replicated site, then
			//back to fractional coordinates of the new cell
			for j := 0; j < 3; j++ {
				var f float64
				for k := 0; k < 3; k++ {
					f += (S.fracs.At(i, k) + float64(t[k])) * scInv.At(k, j)
				}
				fracs.Set(row, j, f-math.Floor(f))
			}
			species = append(species, S.species[i])
			row++
		}
	}
	return &Structure{lat: newLat, species: species, fracs: fracs}, nil
}

//insideTranslations enumerates the integer old-lattice translations that
//fall inside the cell spanned by the rows of sc. Candidates come from the
//bounding box of the new cell's corners in old-lattice units.
func insideTranslations(sc [3][3]int, scInv *mat.Dense) [][3]int {
	var lo, hi [3]int
	for corner := 0; corner < 8; corner++ {
		var p [3]int
		for i := 0; i < 3; i++ {
			if corner&(1<<i) != 0 {
				for j := 0; j < 3; j++ {
					p[j] += sc[i][j]
				}
			}
		}
		for j := 0; j < 3; j++ {
			if corner == 0 || p[j] < lo[j] {
				lo[j] = p[j]
			}
			if corner == 0 || p[j] > hi[j] {
				hi[j] = p[j]
			}
		}
	}
	var trans [][3]int
	for x := lo[0] - 1; x <= hi[0]; x++ {
		for y := lo[1] - 1; y <= hi[1]; y++ {
			for z := lo[2] - 1; z <= hi[2]; z++ {
				inside := true
				for j := 0; j < 3; j++ {
					f := float64(x)*scInv.At(0, j) + float64(y)*scInv.At(1, j) + float64(z)*scInv.At(2, j)
					if f < -insideTol || f >= 1-insideTol {
						inside = false
						break
					}
				}
				if inside {
					trans = append(trans, [3]int{x, y, z})
				}
			}
		}
	}
	return trans
}

//det3i returns the determinant of a 3x3 integer matrix.
func det3i(m [3][3]int) int {
	return m[0][0]*(m[1][1]*m[2][2]-m[2][1]*m[1][2]) -
		m[1][0]*(m[0][1]*m[2][2]-m[2][1]*m[0][2]) +
		m[2][0]*(m[0][1]*m[1][2]-m[1][1]*m[0][2])
}
