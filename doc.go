/*
 * doc.go, part of gorho.
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
 * goRho is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package rho handles electron charge densities, and other scalar fields,
sampled on periodic three-dimensional grids embedded in a crystallographic
lattice, and maps them between cells.


	**goRho capabilities**

    Reads/writes CHGCAR-style volumetric files, plain or compressed
	(gzip and z-standard), through the chgcar subpackage.

    Converts between the stored-scale values of those files and physical
	density, keeping track of which cell's volume the conversion used.

    Maps a charge density onto a supercell given an integer transformation
	matrix and a fractional origin shift, replicating the atomic structure
	and resampling every grid by frequency-domain interpolation. The output
	resolution can be given explicitly or derived from a grid-point budget.

    Rewrites a lattice in the canonical crystallographic orientation
	without changing the physical cell.

    Replicates the per-site augmentation-occupancy text blocks of a
	volumetric file alongside a supercell expansion.

    Plots planar-averaged density profiles (rhoplot subpackage).

The crystal subpackage provides the small slice of crystallography the
library needs: lattices, scalar cell parameters and periodic structures
with fractional coordinates, built on gonum matrices.

All operations are value-in/value-out: no function mutates its receiver
or arguments, and no two aggregates ever share a backing array.*/
package rho
