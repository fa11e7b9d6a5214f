/*
 * pgrid.go, part of gorho.
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

	"github.com/rmera/gorho/crystal"
	"gonum.org/v1/gonum/floats"
)

//PGrid is one scalar field sampled on a periodic three-dimensional grid:
//a lattice plus a dense rank-3 array of real samples. The samples are
//stored flat with the first axis fastest (the order of the volumetric
//file format), index = i + nx*(j + ny*k). A PGrid is immutable once
//built; resampling produces a new PGrid.
type PGrid struct {
	lat        *crystal.Lattice
	data       []float64
	nx, ny, nz int
}

//NewPGrid builds a periodic grid from a lattice, the flat sample slice
//and its three dimensions. The data is copied, so the caller keeps
//ownership of its slice.
func NewPGrid(lat *crystal.Lattice, data []float64, nx, ny, nz int) (*PGrid, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, newError(KindShape, fmt.Sprintf("grid dimensions must be positive, got %d %d %d", nx, ny, nz), "NewPGrid")
	}
	if len(data) != nx*ny*nz {
		return nil, newError(KindShape, fmt.Sprintf("%d samples for a %dx%dx%d grid", len(data), nx, ny, nz), "NewPGrid")
	}
	d := make([]float64, len(data))
	copy(d, data)
	return &PGrid{lat: lat.Copy(), data: d, nx: nx, ny: ny, nz: nz}, nil
}

//withData returns a grid sharing lattice and shape with p but holding
//the given samples, which are NOT copied. Internal use only: the caller
//must hand over ownership of data.
func (p *PGrid) withData(data []float64) *PGrid {
	return &PGrid{lat: p.lat, data: data, nx: p.nx, ny: p.ny, nz: p.nz}
}

//Lattice returns a copy of the grid's lattice.
func (p *PGrid) Lattice() *crystal.Lattice {
	return p.lat.Copy()
}

//Dims returns the three grid dimensions.
func (p *PGrid) Dims() (nx, ny, nz int) {
	return p.nx, p.ny, p.nz
}

//Data returns a copy of the flat sample slice, first axis fastest.
func (p *PGrid) Data() []float64 {
	d := make([]float64, len(p.data))
	copy(d, p.data)
	return d
}

//At returns the sample at grid point (i, j, k). Panics if out of
//range, as this has to be a programming error.
func (p *PGrid) At(i, j, k int) float64 {
	if i < 0 || i >= p.nx || j < 0 || j >= p.ny || k < 0 || k >= p.nz {
		panic("rho: grid index out of range")
	}
	return p.data[i+p.nx*(j+p.ny*k)]
}

//Mean returns the mean of the samples.
func (p *PGrid) Mean() float64 {
	return floats.Sum(p.data) / float64(len(p.data))
}
