/*
 * errors.go, part of gorho.
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

//Kind classifies the fatal failures this library can produce. Every
//failure is surfaced at the point of detection; there is no silent
//recovery and no automatic retry.
type Kind int

const (
	//KindInvariant marks a violation of the shared-lattice invariant:
	//the lattices of the grids and the structure disagree beyond
	//tolerance.
	KindInvariant Kind = iota + 1
	//KindScheme marks an unrecognized normalization scheme name.
	KindScheme
	//KindShape marks an invalid requested or derived grid resolution.
	KindShape
	//KindResource marks a resampling working grid too large to be
	//attempted.
	KindResource
)

//Error is the general error type of the rho package. As in the rest of
//the library, it carries a decoration trail so information can be added
//as the error is passed up, without changing its type.
type Error struct {
	kind    Kind
	message string
	deco    []string
}

func newError(kind Kind, message, caller string) *Error {
	return &Error{kind: kind, message: message, deco: []string{caller}}
}

func (err *Error) Error() string {
	return "rho: " + err.message
}

//Kind returns the failure class of the error.
func (err *Error) Kind() Kind {
	return err.kind
}

//Decorate adds deco to the decoration trail and returns the trail.
//An empty string only queries the current value.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//IsInvariant returns true if err is a rho error marking a lattice
//invariant violation.
func IsInvariant(err error) bool { return hasKind(err, KindInvariant) }

//IsScheme returns true if err is a rho error marking an unrecognized
//normalization scheme.
func IsScheme(err error) bool { return hasKind(err, KindScheme) }

//IsShape returns true if err is a rho error marking an invalid grid
//shape or resolution.
func IsShape(err error) bool { return hasKind(err, KindShape) }

//IsResource returns true if err is a rho error marking an oversized
//resampling working grid.
func IsResource(err error) bool { return hasKind(err, KindResource) }

func hasKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.kind == kind
}
