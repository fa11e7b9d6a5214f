/*
 * norm.go, part of gorho.
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

	"gonum.org/v1/gonum/floats"
)

//Normalization selects the scaling contract between the values stored
//in a volumetric file and the physical density held by a ChargeDensity.
type Normalization int

const (
	//NormNone: stored values are already physical density.
	NormNone Normalization = iota
	//NormVolume: the usual volumetric-file convention, stored value is
	//density times the unit-cell volume. Forward normalization divides
	//by the volume, export multiplies it back.
	NormVolume
)

//ParseNormalization reads a scheme name, selecting on its first
//character, case-insensitively: "n..." is NormNone, "v..." is
//NormVolume. The empty string defaults to NormVolume, the convention
//of the file format. Any other name is rejected here, at parse time,
//rather than when the scheme is first used.
func ParseNormalization(s string) (Normalization, error) {
	if s == "" {
		return NormVolume, nil
	}
	switch strings.ToLower(s)[0] {
	case 'n':
		return NormNone, nil
	case 'v':
		return NormVolume, nil
	}
	return 0, newError(KindScheme, fmt.Sprintf("not a valid normalization scheme: %q", s), "ParseNormalization")
}

func (n Normalization) String() string {
	switch n {
	case NormNone:
		return "none"
	case NormVolume:
		return "volume"
	}
	return fmt.Sprintf("Normalization(%d)", int(n))
}

//normalize converts stored values to physical density, into a fresh
//slice. vol must be the volume of the cell the data lives on at the
//time of the call, never a cached value, so that transformations that
//change the cell stay consistent.
func (n Normalization) normalize(data []float64, vol float64) []float64 {
	out := make([]float64, len(data))
	if n == NormVolume {
		floats.ScaleTo(out, 1/vol, data)
	} else {
		copy(out, data)
	}
	return out
}

//scale undoes the normalization for export, into a fresh slice. As with
//normalize, vol is the volume of the current cell.
func (n Normalization) scale(data []float64, vol float64) []float64 {
	out := make([]float64, len(data))
	if n == NormVolume {
		floats.ScaleTo(out, vol, data)
	} else {
		copy(out, data)
	}
	return out
}
