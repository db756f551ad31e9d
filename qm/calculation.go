/*
 * calculation.go, part of goccinput.
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

package qm

import (
	"strings"

	chem "github.com/goccinput/goccinput"
	"github.com/goccinput/goccinput/constraint"
	"github.com/goccinput/goccinput/quantity"
)

//Defaults for the free-form names of a calculation.
const (
	DefaultName    = "calc"
	DefaultHeader  = "File created by goccinput"
	DefaultAuxName = "calc2"
)

//CalcRequest is everything needed to build a Calculation. The numeric fields
//take ints, floats or numeric strings (and Memory also strings with units).
//Charge defaults to 0 and Multiplicity to 1 when nil.
type CalcRequest struct {
	Structure *chem.Structure
	//AuxStructure is the final point of a minimum energy path. Other calculation types ignore it.
	AuxStructure *chem.Structure
	Params       *Parameters
	Type         string

	NProcs       interface{}
	Memory       interface{}
	Charge       interface{}
	Multiplicity interface{}

	//Constraints in the syntax of constraint.ParseString. Alternatively,
	//ConstraintArrays can be given, but not both.
	Constraints      string
	ConstraintArrays *constraint.Arrays

	Name    string
	Header  string
	AuxName string
}

//Calculation is one validated job: a structure, a level of theory, what to compute
//and with which resources. It is immutable, and it is what the Handles turn into
//program input.
type Calculation struct {
	structure    *chem.Structure
	aux          *chem.Structure
	params       *Parameters
	ctype        CalcType
	nprocs       int
	memory       int //MB
	charge       int
	multiplicity int
	constraints  []*constraint.Constraint
	name         string
	header       string
	auxName      string
}

//NewCalculation validates req and builds a Calculation from it. The advisories
//returned come from the constraints and the calculation itself; those of the
//Parameters were returned when they were built.
func NewCalculation(req CalcRequest) (*Calculation, Diagnostics, error) {
	var diag Diagnostics
	C := new(Calculation)
	steps := []func(CalcRequest, *Diagnostics) error{
		C.setSystem,
		C.setType,
		C.setResources,
		C.setElectrons,
		C.setConstraints,
		C.setNames,
	}
	for _, step := range steps {
		if err := step(req, &diag); err != nil {
			return nil, nil, chem.ErrDecorate(err, "NewCalculation")
		}
	}
	return C, diag, nil
}

func (C *Calculation) setSystem(req CalcRequest, diag *Diagnostics) error {
	if req.Params == nil {
		return chem.NewError(chem.MissingParameter, "setSystem", "no parameters given")
	}
	if req.Structure.Len() == 0 {
		return chem.NewError(chem.MissingParameter, "setSystem", "no structure given")
	}
	C.params = req.Params
	C.structure = req.Structure
	P := C.params
	if !P.Theory().NeedsBasis() || P.BasisSet() != "" {
		return nil
	}
	//no general basis set, so the per-element ones must cover everything.
	custom := P.CustomBasisSets()
	for _, el := range C.structure.Elements() {
		if _, ok := custom[el]; !ok {
			return chem.NewError(chem.MissingParameter, "setSystem", "no basis set given for %s", el)
		}
	}
	return nil
}

func (C *Calculation) setType(req CalcRequest, diag *Diagnostics) error {
	t, err := ParseCalcType(C.params.Tables(), req.Type)
	if err != nil {
		return err
	}
	if !Supports(C.params.Software(), t) {
		return chem.NewError(chem.ImpossibleCalculation, "setType", "%s calculations are not supported for %s", t, C.params.Software())
	}
	C.ctype = t
	if t != MinimumEnergyPath {
		if req.AuxStructure != nil {
			diag.add("structure", "a second structure is only used for minimum energy paths, ignored")
		}
		return nil
	}
	aux := req.AuxStructure
	if aux.Len() == 0 {
		return chem.NewError(chem.MissingParameter, "setType", "minimum energy paths need the structure of the final point")
	}
	if aux.Len() != C.structure.Len() {
		return chem.NewError(chem.InvalidParameter, "setType", "the final point has %d atoms, the initial one %d", aux.Len(), C.structure.Len())
	}
	for i := 0; i < aux.Len(); i++ {
		if aux.Symbol(i) != C.structure.Symbol(i) {
			return chem.NewError(chem.InvalidParameter, "setType", "atom %d is %s in the initial point but %s in the final one", i+1, C.structure.Symbol(i), aux.Symbol(i))
		}
	}
	C.aux = aux
	return nil
}

func (C *Calculation) setResources(req CalcRequest, diag *Diagnostics) error {
	var err error
	if C.nprocs, err = quantity.IntAtLeast("processor count", req.NProcs, 1); err != nil {
		return err
	}
	if C.memory, err = quantity.Memory(req.Memory); err != nil {
		return err
	}
	return nil
}

func (C *Calculation) setElectrons(req CalcRequest, diag *Diagnostics) error {
	var err error
	C.multiplicity = 1
	if req.Charge != nil {
		if C.charge, err = quantity.Int("charge", req.Charge); err != nil {
			return err
		}
	}
	if req.Multiplicity != nil {
		if C.multiplicity, err = quantity.IntAtLeast("multiplicity", req.Multiplicity, 1); err != nil {
			return err
		}
	}
	if !ParityOK(C.structure.Electrons(), C.charge, C.multiplicity) {
		return chem.NewError(chem.ImpossibleCalculation, "setElectrons", "%d electrons with a charge of %d can't have a multiplicity of %d", C.structure.Electrons(), C.charge, C.multiplicity)
	}
	return nil
}

//ParityOK returns true if a system with the given number of electrons (as a neutral
//species), charge and multiplicity is possible: an even number of electrons
//requires an odd multiplicity and vice versa.
func ParityOK(electrons, charge, multiplicity int) bool {
	return mod2(electrons-charge) != mod2(multiplicity)
}

func mod2(n int) int {
	return ((n % 2) + 2) % 2
}

func (C *Calculation) setConstraints(req CalcRequest, diag *Diagnostics) error {
	str := strings.TrimSpace(req.Constraints)
	arr := req.ConstraintArrays
	if str != "" && arr != nil {
		return chem.NewError(chem.InvalidParameter, "setConstraints", "constraints given both as a string and as arrays")
	}
	var specs []constraint.Spec
	var err error
	switch {
	case str != "":
		specs, err = constraint.ParseString(str)
	case arr != nil:
		specs, err = arr.Specs()
	}
	if err != nil {
		return err
	}
	if C.ctype != ConstrainedOptimisation {
		if len(specs) > 0 {
			return chem.NewError(chem.InvalidParameter, "setConstraints", "constraints are only used in constrained optimisations, not in %s calculations", C.ctype)
		}
		return nil
	}
	if len(specs) == 0 {
		return chem.NewError(chem.MissingParameter, "setConstraints", "constrained optimisations need at least one constraint")
	}
	sw := C.params.Software()
	cons, advice, err := constraint.Resolve(specs, C.structure, constraint.QuirksOf(sw))
	if err != nil {
		return err
	}
	for _, c := range cons {
		if c.IsScan() && !programs[sw].scans {
			return chem.NewError(chem.ImpossibleCalculation, "setConstraints", "scans are not supported for %s", sw)
		}
	}
	for _, a := range advice {
		diag.add("constraints", "%s", a)
	}
	C.constraints = cons
	return nil
}

func (C *Calculation) setNames(req CalcRequest, diag *Diagnostics) error {
	def := func(s, d string) string {
		if s = strings.TrimSpace(s); s == "" {
			return d
		}
		return s
	}
	C.name = def(req.Name, DefaultName)
	C.header = def(req.Header, DefaultHeader)
	C.auxName = def(req.AuxName, DefaultAuxName)
	for _, n := range []string{C.name, C.auxName} {
		if strings.ContainsAny(n, " \t\n/\\") {
			return chem.NewError(chem.InvalidParameter, "setNames", "%q is used in file names, it can't contain spaces or slashes", n)
		}
	}
	return nil
}

//Structure returns the structure the calculation starts from.
func (C *Calculation) Structure() *chem.Structure { return C.structure }

//AuxStructure returns the final point of a minimum energy path, nil for
//other calculation types.
func (C *Calculation) AuxStructure() *chem.Structure { return C.aux }

func (C *Calculation) Params() *Parameters { return C.params }

func (C *Calculation) Type() CalcType { return C.ctype }

func (C *Calculation) NProcs() int { return C.nprocs }

//Memory returns the total memory for the calculation, in MB.
func (C *Calculation) Memory() int { return C.memory }

func (C *Calculation) Charge() int { return C.charge }

func (C *Calculation) Multiplicity() int { return C.multiplicity }

//Unpaired returns the number of unpaired electrons.
func (C *Calculation) Unpaired() int { return C.multiplicity - 1 }

//Constraints returns the resolved constraints, in the order they were given.
func (C *Calculation) Constraints() []*constraint.Constraint {
	return append([]*constraint.Constraint(nil), C.constraints...)
}

//Scans returns true if any of the constraints is a scan.
func (C *Calculation) Scans() bool {
	for _, c := range C.constraints {
		if c.IsScan() {
			return true
		}
	}
	return false
}

func (C *Calculation) Name() string { return C.name }

func (C *Calculation) Header() string { return C.header }

func (C *Calculation) AuxName() string { return C.auxName }
