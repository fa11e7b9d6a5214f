/*
 * rho.go, part of gorho.
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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

//latTol is the per-component tolerance used when comparing the lattices
//of the grids and the structure of an aggregate.
const latTol = 1e-8

//ChargeDensity holds a named collection of periodic grids that all live
//on one lattice, together with the atomic structure on that lattice and
//the normalization scheme the raw data came in with. The grids of a
//ChargeDensity always hold physical density: the forward normalization
//is applied exactly once, when the object is built from stored-scale
//data. A ChargeDensity is never mutated; transformations return new,
//independently owned aggregates.
type ChargeDensity struct {
	pgrids    map[string]*PGrid
	structure *crystal.Structure
	norm      Normalization
	//augmentation line blocks carried from a volumetric source, keyed
	//like the grids; exported again verbatim, or replicated through
	//MultiplyAug by the supercell path
	aug map[string][]string
}

//NewChargeDensity builds an aggregate from stored-scale grids, checking
//that every grid's lattice matches the structure's within tolerance and
//applying the forward normalization into fresh grids. The input map and
//its grids are left untouched.
func NewChargeDensity(pgrids map[string]*PGrid, structure *crystal.Structure, norm Normalization) (*ChargeDensity, error) {
	cd, err := assemble(pgrids, structure, norm)
	if err != nil {
		return nil, err
	}
	vol := structure.Volume()
	for k, p := range cd.pgrids {
		cd.pgrids[k] = p.withData(norm.normalize(p.data, vol))
	}
	return cd, nil
}

//fromPhysical builds an aggregate whose grids already hold physical
//density, skipping the forward normalization. The declared scheme then
//only affects export. Used by the transformation path, where resampled
//data is physical by construction and must not be scaled twice.
func fromPhysical(pgrids map[string]*PGrid, structure *crystal.Structure, norm Normalization) (*ChargeDensity, error) {
	return assemble(pgrids, structure, norm)
}

//assemble checks the shared-lattice invariant and clones the grid map.
func assemble(pgrids map[string]*PGrid, structure *crystal.Structure, norm Normalization) (*ChargeDensity, error) {
	if len(pgrids) == 0 {
		return nil, newError(KindShape, "an aggregate needs at least one grid", "NewChargeDensity")
	}
	lat := structure.Lattice()
	grids := make(map[string]*PGrid, len(pgrids))
	for k, p := range pgrids {
		if !p.lat.AllClose(lat, latTol) {
			return nil, newError(KindInvariant, fmt.Sprintf("lattices are not identical: grid %q disagrees with the structure", k), "NewChargeDensity")
		}
		grids[k] = p
	}
	return &ChargeDensity{pgrids: grids, structure: structure.Copy(), norm: norm}, nil
}

//copyAug deep-copies a map of augmentation line blocks. Empty and nil
//maps both come out empty.
func copyAug(aug map[string][]string) map[string][]string {
	out := make(map[string][]string, len(aug))
	for k, lines := range aug {
		out[k] = append([]string{}, lines...)
	}
	return out
}

//AugLines returns a copy of the augmentation line blocks carried for
//the named field. Nil if the aggregate did not come from a volumetric
//source, or the source had none.
func (cd *ChargeDensity) AugLines(key string) []string {
	lines, ok := cd.aug[key]
	if !ok {
		return nil
	}
	return append([]string{}, lines...)
}

//Keys returns the field names of the aggregate, sorted.
func (cd *ChargeDensity) Keys() []string {
	keys := maps.Keys(cd.pgrids)
	slices.Sort(keys)
	return keys
}

//Grid returns the grid stored under key, or an error if there is none.
func (cd *ChargeDensity) Grid(key string) (*PGrid, error) {
	p, ok := cd.pgrids[key]
	if !ok {
		return nil, newError(KindShape, fmt.Sprintf("no grid named %q, have %v", key, cd.Keys()), "Grid")
	}
	return p, nil
}

//Structure returns a copy of the aggregate's atomic structure.
func (cd *ChargeDensity) Structure() *crystal.Structure {
	return cd.structure.Copy()
}

//Lattice returns a copy of the shared lattice.
func (cd *ChargeDensity) Lattice() *crystal.Lattice {
	return cd.structure.Lattice()
}

//Normalization returns the scheme the aggregate was declared with.
func (cd *ChargeDensity) Normalization() Normalization {
	return cd.norm
}

//Integrated returns the integral of the named field over the cell,
//i.e. the mean density times the cell volume. For a "total" field in
//the usual convention this is the number of electrons.
func (cd *ChargeDensity) Integrated(key string) (float64, error) {
	p, err := cd.Grid(key)
	if err != nil {
		return 0, err
	}
	return p.Mean() * cd.structure.Volume(), nil
}

//Reoriented returns a new aggregate whose lattice has been rewritten in
//the canonical crystallographic orientation. The grid samples are tied
//to fractional coordinates, so they remain valid against the new basis
//unchanged; lengths, angles and volume are preserved.
func (cd *ChargeDensity) Reoriented() *ChargeDensity {
	structure := cd.structure.Reoriented()
	lat := structure.Lattice()
	grids := make(map[string]*PGrid, len(cd.pgrids))
	for k, p := range cd.pgrids {
		grids[k] = &PGrid{lat: lat, data: p.Data(), nx: p.nx, ny: p.ny, nz: p.nz}
	}
	return &ChargeDensity{pgrids: grids, structure: structure, norm: cd.norm, aug: copyAug(cd.aug)}
}
