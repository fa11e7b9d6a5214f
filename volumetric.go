/*
 * volumetric.go, part of gorho.
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

//volumetric.go connects the aggregate to the file-format adapter: the
//adapter only ever sees stored-scale arrays, so the inverse scaling
//happens on the way out and the forward normalization on the way in.

package rho

import (
	"fmt"

	"github.com/rmera/gorho/chgcar"
)

//FromVolumetric builds a ChargeDensity from parsed volumetric data,
//normalizing the stored-scale arrays under the given scheme.
func FromVolumetric(v *chgcar.Volumetric, norm Normalization) (*ChargeDensity, error) {
	lat := v.Structure.Lattice()
	grids := make(map[string]*PGrid, len(v.Data))
	for k, data := range v.Data {
		p, err := NewPGrid(lat, data, v.Dims[0], v.Dims[1], v.Dims[2])
		if err != nil {
			return nil, errDecorate(err, "FromVolumetric")
		}
		grids[k] = p
	}
	cd, err := NewChargeDensity(grids, v.Structure, norm)
	if err != nil {
		return nil, errDecorate(err, "FromVolumetric")
	}
	cd.aug = copyAug(v.Aug)
	return cd, nil
}

//ToVolumetric undoes the normalization of every grid, with the volume
//of the aggregate's current cell, and packs the stored-scale arrays for
//the format adapter, together with any augmentation blocks the
//aggregate carries. All grids must share one resolution, as the format
//requires. The aggregate is left untouched.
func (cd *ChargeDensity) ToVolumetric() (*chgcar.Volumetric, error) {
	var dims [3]int
	first := true
	vol := cd.structure.Volume()
	data := make(map[string][]float64, len(cd.pgrids))
	for _, k := range cd.Keys() {
		p := cd.pgrids[k]
		d := [3]int{p.nx, p.ny, p.nz}
		if first {
			dims = d
			first = false
		} else if d != dims {
			return nil, newError(KindShape, fmt.Sprintf("grid %q is %v, the others are %v; the format needs one resolution", k, d, dims), "ToVolumetric")
		}
		data[k] = cd.norm.scale(p.data, vol)
	}
	return &chgcar.Volumetric{
		Structure: cd.structure.Copy(),
		Dims:      dims,
		Data:      data,
		Aug:       copyAug(cd.aug),
	}, nil
}
