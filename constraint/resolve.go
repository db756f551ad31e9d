/*
 * resolve.go, part of goccinput.
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

package constraint

import (
	"fmt"
	"math"

	chem "github.com/goccinput/goccinput"
	"gonum.org/v1/gonum/floats/scalar"
)

//Quirk is a set of program-specific behaviours that change how constraints
//are resolved.
type Quirk uint8

const (
	//ScanFromCurrentGeometry: the program always starts scans (and freezes) at the
	//current value of the coordinate, so user-given start values are discarded.
	ScanFromCurrentGeometry Quirk = 1 << iota
	//InvertedDihedralScan: the program steps dihedrals with the opposite sign
	//convention, so the step of dihedral scans is negated.
	InvertedDihedralScan
)

//Has returns true if all the quirks in f are set in q.
func (q Quirk) Has(f Quirk) bool { return q&f == f }

//QuirksOf returns the quirks of the program with the canonical id software.
func QuirksOf(software string) Quirk {
	switch software {
	case "gaussian":
		return ScanFromCurrentGeometry
	case "xtb":
		return InvertedDihedralScan
	}
	return 0
}

//decimals kept in computed step sizes
const stepDecimals = 2

//Resolve validates specs against mol and completes them. mol can be nil only
//if no value has to be measured, i.e. every start is given and the program
//doesn't have the ScanFromCurrentGeometry quirk. Atom indexes are only checked
//against the number of atoms when mol is given. The returned strings are
//advisory messages; they don't prevent the constraints from being used.
func Resolve(specs []Spec, mol *chem.Structure, q Quirk) ([]*Constraint, []string, error) {
	ret := make([]*Constraint, 0, len(specs))
	var advice []string
	for i, sp := range specs {
		c, adv, err := resolveOne(sp, mol, q)
		if err != nil {
			return nil, nil, chem.ErrDecorate(err, fmt.Sprintf("Resolve: constraint %d", i+1))
		}
		for _, a := range adv {
			advice = append(advice, fmt.Sprintf("constraint %d: %s", i+1, a))
		}
		ret = append(ret, c)
	}
	return ret, advice, nil
}

//checkAtoms verifies that ids has 2 to 4 unique positive indexes, and that they
//are within mol if it has atoms.
func checkAtoms(ids []int, mol *chem.Structure) error {
	if len(ids) < 2 || len(ids) > 4 {
		return chem.NewError(chem.InvalidParameter, "checkAtoms", "%d atoms given, constraints need 2 (bond), 3 (angle) or 4 (dihedral)", len(ids))
	}
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if id < 1 {
			return chem.NewError(chem.InvalidParameter, "checkAtoms", "invalid atom index %d, indexes start at 1", id)
		}
		if mol.Len() > 0 && id > mol.Len() {
			return chem.NewError(chem.InvalidParameter, "checkAtoms", "atom %d out of range, the structure has %d atoms", id, mol.Len())
		}
		if seen[id] {
			return chem.NewError(chem.InvalidParameter, "checkAtoms", "atom %d appears more than once", id)
		}
		seen[id] = true
	}
	return nil
}

func resolveOne(sp Spec, mol *chem.Structure, q Quirk) (*Constraint, []string, error) {
	var advice []string
	if err := checkAtoms(sp.Atoms, mol); err != nil {
		return nil, nil, err
	}
	C := &Constraint{atoms: append([]int(nil), sp.Atoms...), scan: sp.Scan}
	if !sp.Scan && (sp.End != nil || sp.Step != nil || sp.Count != nil) {
		return nil, nil, chem.NewError(chem.InvalidParameter, "resolveOne", "frozen coordinates only take a start value")
	}
	start := sp.Start
	if start != nil && q.Has(ScanFromCurrentGeometry) {
		advice = append(advice, fmt.Sprintf("the program always starts from the current geometry, the given start value %.4f is ignored", *start))
		start = nil
	}
	if start == nil {
		if mol.Len() == 0 {
			return nil, nil, chem.NewError(chem.InvalidParameter, "resolveOne", "no coordinates given to compute the current value of the %s", C.Kind())
		}
		v, err := mol.Measure(sp.Atoms)
		if err != nil {
			return nil, nil, err
		}
		C.start = v
	} else {
		C.start = *start
	}
	if !sp.Scan {
		return C, advice, nil
	}
	if err := complete(C, sp); err != nil {
		return nil, nil, err
	}
	if C.Kind() == Dihedral && q.Has(InvertedDihedralScan) {
		C.step = -C.step
	}
	return C, advice, nil
}

//complete fills end, step and count of a scan from the two that were given.
func complete(C *Constraint, sp Spec) error {
	given := 0
	for _, v := range []bool{sp.End != nil, sp.Step != nil, sp.Count != nil} {
		if v {
			given++
		}
	}
	switch given {
	case 0, 1:
		return chem.NewError(chem.InvalidParameter, "complete", "scans need exactly two of end value, step size and step count, %d given", given)
	case 3:
		return chem.NewError(chem.InvalidParameter, "complete", "end value, step size and step count all given, give only two of them")
	}
	if sp.Count != nil && *sp.Count < 1 {
		return chem.NewError(chem.InvalidParameter, "complete", "the step count must be at least 1, got %d", *sp.Count)
	}
	if sp.Step != nil && *sp.Step == 0 {
		return chem.NewError(chem.InvalidParameter, "complete", "the step size can't be 0")
	}
	switch {
	case sp.End == nil:
		C.count = *sp.Count
		C.step = *sp.Step
		C.end = C.start + float64(C.count)*C.step
	case sp.Step == nil:
		C.count = *sp.Count
		C.end = *sp.End
		C.step = scalar.RoundEven((C.end-C.start)/float64(C.count), stepDecimals)
	default:
		C.end = *sp.End
		//halves go to the even neighbour, both for the count and for the step
		C.count = int(math.Abs(math.RoundToEven((C.end - C.start) / math.Abs(*sp.Step))))
		if C.count == 0 {
			return chem.NewError(chem.InvalidParameter, "complete", "the scan from %.4f to %.4f has no steps of size %.4f", C.start, C.end, *sp.Step)
		}
		//recomputed so the scan ends at end, with the direction given by start and end.
		C.step = scalar.RoundEven((C.end-C.start)/float64(C.count), stepDecimals)
	}
	if C.step == 0 {
		return chem.NewError(chem.InvalidParameter, "complete", "the scan from %.4f to %.4f in %d steps has a step size smaller than %g", C.start, C.end, C.count, math.Pow(10, -stepDecimals))
	}
	return nil
}
