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

package crystal

//Error is the error type for the crystal package. It carries a
//decoration trail so callers can add the names of the functions the
//error crossed on its way up.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string {
	return "crystal: " + err.message
}

//Decorate adds deco to the decoration trail and returns the trail.
//An empty string only queries the current value.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
