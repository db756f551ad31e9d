/*
 * constraint.go, part of goccinput.
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

//Package constraint builds the geometric constraints of a calculation: bonds, angles
//and dihedrals that are either frozen at their current value or scanned over a range.
//
//Constraints are requested as Specs, which may be incomplete (a scan needs only two
//of end value, step size and step count, and the start defaults to the current
//geometry). Resolve validates the Specs against a structure and completes them
//into Constraints, which are never modified afterwards.
package constraint

import (
	"fmt"
	"strconv"
	"strings"
)

//Kind is the geometric quantity a constraint acts on.
type Kind int

const (
	Bond Kind = iota + 2 //so that the value is the number of atoms involved
	Angle
	Dihedral
)

func (k Kind) String() string {
	switch k {
	case Bond:
		return "bond"
	case Angle:
		return "angle"
	case Dihedral:
		return "dihedral"
	}
	return "unknown"
}

//Spec is a constraint as requested. Nil fields were not given.
//Atoms are 1-based.
type Spec struct {
	Atoms []int
	Scan  bool
	Start *float64
	End   *float64
	Step  *float64
	Count *int
}

//Float returns a pointer to v, to fill the optional fields of a Spec.
func Float(v float64) *float64 { return &v }

//Int returns a pointer to v, to fill the optional fields of a Spec.
func Int(v int) *int { return &v }

//Constraint is a fully resolved constraint. Start is always set. For scans,
//End, Step and Count are consistent with each other, except for the sign of Step
//in programs with the InvertedDihedralScan quirk. End is always the requested end;
//StepEnd gives the value the scan reaches when following Step.
type Constraint struct {
	atoms []int
	scan  bool
	start float64
	end   float64
	step  float64
	count int
}

//Atoms returns a copy of the 1-based indexes of the atoms involved.
func (C *Constraint) Atoms() []int {
	ret := make([]int, len(C.atoms))
	copy(ret, C.atoms)
	return ret
}

//Kind returns whether the constraint is on a bond, an angle or a dihedral.
func (C *Constraint) Kind() Kind { return Kind(len(C.atoms)) }

//IsScan returns true for scans and false for frozen coordinates.
func (C *Constraint) IsScan() bool { return C.scan }

//Start is the initial value of the scanned coordinate, or the value of the frozen one.
//Angstroms for bonds, degrees for angles and dihedrals.
func (C *Constraint) Start() float64 { return C.start }

//End is the final value of a scan. It is 0 for frozen coordinates.
func (C *Constraint) End() float64 { return C.end }

//StepEnd is the value a scan reaches going from Start in the direction of Step.
//It is End, mirrored around Start when Step points away from End, which
//only happens with the InvertedDihedralScan quirk. It is 0 for frozen coordinates.
func (C *Constraint) StepEnd() float64 {
	if (C.end-C.start)*C.step < 0 {
		return 2*C.start - C.end
	}
	return C.end
}

//Step is the step size of a scan. It is 0 for frozen coordinates.
func (C *Constraint) Step() float64 { return C.step }

//Count is the number of steps in a scan. It is 0 for frozen coordinates.
func (C *Constraint) Count() int { return C.count }

//IDs returns the atom indexes joined by sep.
func (C *Constraint) IDs(sep string) string {
	s := make([]string, len(C.atoms))
	for i, v := range C.atoms {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, sep)
}

//String returns the constraint in the same grammar ParseString reads.
func (C *Constraint) String() string {
	if !C.scan {
		return fmt.Sprintf("freeze_start=%.4f/%s", C.start, C.IDs("_"))
	}
	return fmt.Sprintf("scan_start=%.4f_end=%.4f_count=%d/%s", C.start, C.end, C.count, C.IDs("_"))
}
