/*
 * supercell.go, part of gorho.
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

package rho

import (
	"fmt"
	"log"
	"math"
)

//SCRounding is the result of coercing a supercell matrix to integers:
//the rounded matrix plus a diagnostic, empty when the input was already
//integer valued. Callers that want to surface the diagnostic themselves
//can call RoundSCMat and pass the integer matrix on; Transformed logs
//it and proceeds.
type SCRounding struct {
	Mat     [3][3]int
	Warning string
}

//RoundSCMat rounds every entry of a supercell matrix to the nearest
//integer. A non-integer matrix is legal input but cannot describe a
//periodic replication, so the rounding is reported as a diagnostic
//rather than an error.
func RoundSCMat(m [3][3]float64) SCRounding {
	var r SCRounding
	exact := true
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			n := math.Round(m[i][j])
			if math.Abs(n-m[i][j]) > 1e-8 {
				exact = false
			}
			r.Mat[i][j] = int(n)
		}
	}
	if !exact {
		r.Warning = "rho: transformation is not integer valued; periodicity of the derived structure cannot be guaranteed, rounding to the nearest integers"
	}
	return r
}

//DeriveDims turns a total grid-point budget into per-axis dimensions
//for a cell with the given edge lengths, keeping the grid spacing as
//uniform as possible across the axes. Every dimension is at least 1.
func DeriveDims(a, b, c float64, npoints int) ([3]int, error) {
	if npoints < 1 {
		return [3]int{}, newError(KindShape, fmt.Sprintf("grid-point budget must be positive, got %d", npoints), "DeriveDims")
	}
	mult := math.Cbrt(a * b * c / float64(npoints))
	var dims [3]int
	for i, l := range [3]float64{a, b, c} {
		dims[i] = int(math.Floor(math.Max(l/mult, 1)))
	}
	return dims, nil
}

//Transformed maps the charge density onto a new cell: the structure is
//shifted by -origin (fractional), replicated by the integer-rounded
//scMat, and every named grid is resampled onto the new lattice at the
//requested dimensions by frequency-domain interpolation. A non-integer
//scMat is rounded and logged, never an error. upSample sets the
//working resolution of the resampler; see PGrid.Transformed. The
//receiver is left untouched; on success a fully independent aggregate
//is returned, holding physical density and exporting under the same
//scheme as the receiver. Augmentation blocks carried from a volumetric
//source are replicated once per unit cell of the supercell and
//renumbered with MultiplyAug.
func (cd *ChargeDensity) Transformed(scMat [3][3]float64, origin [3]float64, dims [3]int, upSample int) (*ChargeDensity, error) {
	r := RoundSCMat(scMat)
	if r.Warning != "" {
		log.Println(r.Warning)
	}
	return cd.transformed(r.Mat, origin, dims, upSample)
}

//TransformedN is Transformed with the output resolution given as a
//total grid-point budget instead of explicit dimensions; the per-axis
//dimensions are derived from the new cell's edge lengths with
//DeriveDims.
func (cd *ChargeDensity) TransformedN(scMat [3][3]float64, origin [3]float64, npoints, upSample int) (*ChargeDensity, error) {
	r := RoundSCMat(scMat)
	if r.Warning != "" {
		log.Println(r.Warning)
	}
	a, b, c := cd.structure.Lattice().Supercell(r.Mat).Abc()
	dims, err := DeriveDims(a, b, c, npoints)
	if err != nil {
		return nil, err
	}
	return cd.transformed(r.Mat, origin, dims, upSample)
}

func (cd *ChargeDensity) transformed(sc [3][3]int, origin [3]float64, dims [3]int, upSample int) (*ChargeDensity, error) {
	shifted, err := cd.structure.Translated(nil, [3]float64{-origin[0], -origin[1], -origin[2]})
	if err != nil {
		return nil, err
	}
	structure, err := shifted.Supercell(sc)
	if err != nil {
		return nil, err
	}
	grids := make(map[string]*PGrid, len(cd.pgrids))
	for k, p := range cd.pgrids {
		grids[k], err = p.Transformed(sc, origin, dims, upSample)
		if err != nil {
			return nil, errDecorate(err, "Transformed")
		}
	}
	//the constructor re-validates the shared-lattice invariant; the
	//resampled grids hold physical density already, so no forward
	//normalization happens here
	out, err := fromPhysical(grids, structure, cd.norm)
	if err != nil {
		return nil, err
	}
	if len(cd.aug) > 0 {
		//one copy of every augmentation block per replica of the cell
		factor := absDet3(sc)
		out.aug = make(map[string][]string, len(cd.aug))
		for k, lines := range cd.aug {
			out.aug[k] = MultiplyAug(lines, factor)
		}
	}
	return out, nil
}

//absDet3 returns the absolute determinant of a 3x3 integer matrix, the
//number of unit cells in the supercell.
func absDet3(m [3][3]int) int {
	d := m[0][0]*(m[1][1]*m[2][2]-m[2][1]*m[1][2]) -
		m[1][0]*(m[0][1]*m[2][2]-m[2][1]*m[0][2]) +
		m[2][0]*(m[0][1]*m[1][2]-m[1][1]*m[0][2])
	if d < 0 {
		return -d
	}
	return d
}

//errDecorate adds the caller's name to a rho error's decoration trail
//before passing it up.
func errDecorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
	}
	return err
}
