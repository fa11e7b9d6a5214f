/*
 * aug.go, part of gorho.
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
	"strings"
)

//augMarker introduces each per-site block of augmentation occupancies
//in a volumetric file.
const augMarker = "augmentation"

//MultiplyAug replicates the per-site augmentation-occupancy blocks of a
//volumetric file factor times, renumbering the block headers so site
//indices stay sequential across the whole output. Each block starts at
//a line containing the marker token and ends where the next one starts;
//blocks are emitted in input order, each block's copies contiguously,
//with the header's trailing count field preserved and the data lines
//copied verbatim. Input with no marker lines yields no output.
//
//Deprecated: this performs no physical reasoning about the duplicated
//occupancies; the result is a best-effort placeholder for seeding a
//calculation on the replicated cell, not validated augmentation data.
func MultiplyAug(lines []string, factor int) []string {
	//boundary scan first, emission second
	var starts []int
	for i, l := range lines {
		if strings.Contains(l, augMarker) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return nil
	}
	res := make([]string, 0, len(lines)*factor)
	cnt := 0
	for bi, s := range starts {
		end := len(lines)
		if bi+1 < len(starts) {
			end = starts[bi+1]
		}
		fields := strings.Fields(lines[s])
		last := fields[len(fields)-1]
		for r := 0; r < factor; r++ {
			cnt++
			res = append(res, fmt.Sprintf("augmentation occupancies%4d%4s", cnt, last))
			res = append(res, lines[s+1:end]...)
		}
	}
	return res
}
