/*
 * profile.go, part of gorho.
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

//Package rhoplot draws charge-density plots with the Plotinum-descended
//gonum/plot library.
package rhoplot

import (
	"fmt"

	rho "github.com/rmera/gorho"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Profile returns the planar-averaged density of the named field along
//the given lattice vector (0, 1 or 2): one value per grid plane
//perpendicular to that vector.
func Profile(cd *rho.ChargeDensity, key string, axis int) ([]float64, error) {
	if axis < 0 || axis > 2 {
		return nil, fmt.Errorf("rhoplot: axis must be 0, 1 or 2, got %d", axis)
	}
	p, err := cd.Grid(key)
	if err != nil {
		return nil, err
	}
	nx, ny, nz := p.Dims()
	dims := [3]int{nx, ny, nz}
	n := dims[axis]
	prof := make([]float64, n)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				idx := [3]int{i, j, k}
				prof[idx[axis]] += p.At(i, j, k)
			}
		}
	}
	planepts := float64(nx*ny*nz) / float64(n)
	for i := range prof {
		prof[i] /= planepts
	}
	return prof, nil
}

//ProfilePlot draws the planar-averaged density of the named field along
//the given lattice vector against the distance along that vector, and
//saves it as plotname.png.
func ProfilePlot(cd *rho.ChargeDensity, key string, axis int, title, plotname string) error {
	prof, err := Profile(cd, key, axis)
	if err != nil {
		return err
	}
	a, b, c := cd.Lattice().Abc()
	length := [3]float64{a, b, c}[axis]
	pts := make(plotter.XYs, len(prof))
	for i, v := range prof {
		pts[i].X = length * float64(i) / float64(len(prof))
		pts[i].Y = v
	}
	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = fmt.Sprintf("distance along lattice vector %d (A)", axis)
	pl.Y.Label.Text = "planar-averaged density"
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	pl.Add(plotter.NewGrid(), line)
	return pl.Save(15*vg.Centimeter, 10*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}
