/*
 * geometric.go, part of goccinput.
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
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Functions in this file take 1-based atom indexes, as they are given
//by users and as most QM programs expect them.

//vecs returns the position of the atoms with the 1-based indexes ids.
func (S *Structure) vecs(caller string, ids ...int) ([]r3.Vec, error) {
	if S.Len() == 0 {
		return nil, NewError(InvalidParameter, caller, "no coordinates available")
	}
	ret := make([]r3.Vec, len(ids))
	for i, id := range ids {
		if id < 1 || id > S.Len() {
			return nil, NewError(InvalidParameter, caller, "atom %d out of range (structure has %d atoms)", id, S.Len())
		}
		ret[i] = S.coords.Vec(id - 1)
	}
	return ret, nil
}

//Distance returns the distance in Angstroms between the atoms a and b.
func (S *Structure) Distance(a, b int) (float64, error) {
	v, err := S.vecs("Distance", a, b)
	if err != nil {
		return 0, err
	}
	return r3.Norm(r3.Sub(v[0], v[1])), nil
}

//Angle returns the a-b-c angle, in degrees, between 0 and 180.
func (S *Structure) Angle(a, b, c int) (float64, error) {
	v, err := S.vecs("Angle", a, b, c)
	if err != nil {
		return 0, err
	}
	return Rad2Deg(Angle(r3.Sub(v[0], v[1]), r3.Sub(v[2], v[1]))), nil
}

//Dihedral returns the a-b-c-d dihedral angle, in degrees, in the (-180,180] range.
//The first plane is defined by abc and the second by bcd.
func (S *Structure) Dihedral(a, b, c, d int) (float64, error) {
	v, err := S.vecs("Dihedral", a, b, c, d)
	if err != nil {
		return 0, err
	}
	return Rad2Deg(Dihedral(v[0], v[1], v[2], v[3])), nil
}

//Measure returns the distance, angle or dihedral defined by ids,
//depending on whether 2, 3 or 4 indexes are given.
func (S *Structure) Measure(ids []int) (float64, error) {
	switch len(ids) {
	case 2:
		return S.Distance(ids[0], ids[1])
	case 3:
		return S.Angle(ids[0], ids[1], ids[2])
	case 4:
		return S.Dihedral(ids[0], ids[1], ids[2], ids[3])
	}
	return 0, NewError(InvalidParameter, "Measure", "%d atoms given, need 2, 3 or 4", len(ids))
}

//Angle takes 2 vectors and calculate the angle in radians between them.
//It does not check for correctness or return errors!
func Angle(v1, v2 r3.Vec) float64 {
	normproduct := r3.Norm(v1) * r3.Norm(v2)
	argument := r3.Dot(v1, v2) / normproduct
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//Dihedral calculates the dihedral, in radians, between the points a, b, c, d, where the first plane
//is defined by abc and the second by bcd. A clockwise rotation of a into d, looking from b to c,
//is positive. The result is in the (-pi,pi] range.
func Dihedral(a, b, c, d r3.Vec) float64 {
	bma := r3.Sub(b, a)
	cmb := r3.Sub(c, b)
	dmc := r3.Sub(d, c)
	n1 := r3.Cross(bma, cmb)
	n2 := r3.Cross(cmb, dmc)
	m1 := r3.Cross(r3.Unit(cmb), n1)
	dihedral := math.Atan2(r3.Dot(m1, n2), r3.Dot(n1, n2))
	if dihedral <= -math.Pi+appzero {
		return math.Pi
	}
	return dihedral
}
