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

package chgcar

import "fmt"

//Error is the error type for the chgcar package. It carries the name of
//the offending file and a decoration trail.
type Error struct {
	message  string
	filename string
	deco     []string
}

func (err *Error) Error() string {
	return fmt.Sprintf("chgcar file %s error: %s", err.filename, err.message)
}

//Decorate adds deco to the decoration trail and returns the trail.
//An empty string only queries the current value.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error.
func (err *Error) FileName() string { return err.filename }
