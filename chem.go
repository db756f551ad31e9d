/*
 * chem.go, part of goccinput.
 *
 * Copyright 2024 The goccinput Authors
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
 */

package chem

import (
	v3 "github.com/goccinput/goccinput/v3"
)

//Structure is an ordered set of atoms, given by their element symbols,
//and their cartesian coordinates in Angstroms. The i-th row of Coords
//corresponds to the i-th symbol.
type Structure struct {
	symbols []string
	coords  *v3.Matrix
}

//NewStructure builds a Structure from the element symbols and a Nx3 coordinate
//matrix. Symbols are normalized and must correspond to known elements.
//The coordinates are copied, so the Structure can't be modified from the outside.
func NewStructure(symbols []string, coords *v3.Matrix) (*Structure, error) {
	if len(symbols) == 0 || coords == nil {
		return nil, NewError(MissingParameter, "NewStructure", "no atoms given")
	}
	if coords.NVecs() != len(symbols) {
		return nil, NewError(InvalidParameter, "NewStructure", "%d element symbols but %d coordinates", len(symbols), coords.NVecs())
	}
	S := &Structure{symbols: make([]string, len(symbols)), coords: coords.Copy()}
	for i, s := range symbols {
		sym := NormalizeSymbol(s)
		if _, ok := symbolZ[sym]; !ok {
			return nil, NewError(InvalidParameter, "NewStructure", "unknown element %q for atom %d", s, i+1)
		}
		S.symbols[i] = sym
	}
	return S, nil
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	if S == nil {
		return 0
	}
	return len(S.symbols)
}

//Symbol returns the element symbol of the atom with 0-based index i.
func (S *Structure) Symbol(i int) string {
	return S.symbols[i]
}

//Coords returns a copy of the coordinates.
func (S *Structure) Coords() *v3.Matrix {
	return S.coords.Copy()
}

//Coord returns the x, y and z coordinates of the atom with 0-based index i.
func (S *Structure) Coord(i int) (float64, float64, float64) {
	v := S.coords.Vec(i)
	return v.X, v.Y, v.Z
}

//Electrons returns the total number of electrons of the neutral structure,
//i.e. the sum of the atomic numbers of all atoms.
func (S *Structure) Electrons() int {
	n := 0
	for _, s := range S.symbols {
		n += symbolZ[s]
	}
	return n
}

//Elements returns the distinct elements in the structure, in order of
//first appearance.
func (S *Structure) Elements() []string {
	ret := make([]string, 0, 4)
	for _, s := range S.symbols {
		if !isInString(ret, s) {
			ret = append(ret, s)
		}
	}
	return ret
}
