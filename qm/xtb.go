/*
 * xtb.go, part of goccinput.
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
	"fmt"
	"io"
	"strings"

	"github.com/goccinput/goccinput/constraint"
	"github.com/goccinput/goccinput/synonym"
)

//XTBHandle writes the detailed input for xtb, and the command line that runs it.
//Conformational searches are run with crest instead.
//Note that the defaults are NOT considered part of the API, so they can always change.
type XTBHandle struct {
	command      string
	crestcommand string
	force        float64
	ewin         float64
}

func NewXTBHandle() *XTBHandle {
	run := new(XTBHandle)
	run.SetDefaults()
	return run
}

//XTBHandle methods

//SetDefaults sets the commands to "xtb" and "crest", a force constant of 1 Eh/Bohr^2 for
//constraints, and the crest default energy window.
func (O *XTBHandle) SetDefaults() {
	O.command = "xtb"
	O.crestcommand = "crest"
	O.force = 1.0
	O.ewin = 0
}

//SetCommand sets the name (or path) of the xtb executable.
func (O *XTBHandle) SetCommand(name string) {
	O.command = name
}

//SetCrestCommand sets the name (or path) of the crest executable.
func (O *XTBHandle) SetCrestCommand(name string) {
	O.crestcommand = name
}

//SetForceConstant sets the force constant for the constraints, in Eh/Bohr^2.
func (O *XTBHandle) SetForceConstant(k float64) {
	O.force = k
}

//SetEnergyWindow sets the energy window for conformational searches, in kcal/mol.
//0 means the crest default.
func (O *XTBHandle) SetEnergyWindow(e float64) {
	O.ewin = e
}

func (O *XTBHandle) Software() string { return "xtb" }

func (O *XTBHandle) Supports(t CalcType) bool { return Supports("xtb", t) }

var xtbCalc = map[CalcType]string{
	SinglePoint:             "--sp",
	Optimisation:            "--opt",
	Frequency:               "--hess",
	OptFreq:                 "--ohess",
	ConstrainedOptimisation: "--opt",
}

var xtbCoord = map[constraint.Kind]string{
	constraint.Bond:     "distance",
	constraint.Angle:    "angle",
	constraint.Dihedral: "dihedral",
}

//Command returns the command line that runs C, assuming that the structure is in
//<name>.xyz and the input written by BuildInput in <name>.inp, where name is C's name.
//For minimum energy paths the final point is read from <auxname>.xyz.
func (O *XTBHandle) Command(C *Calculation) (string, error) {
	if err := checkSoftware("XTBHandle.Command", "xtb", C); err != nil {
		return "", err
	}
	P := C.Params()
	method := P.Keyword(synonym.Method, P.Method())
	solv := ""
	if P.Solvent() != "" {
		solv = P.Keyword(synonym.SolvationModel, P.SolvationModel()) + " " + P.Keyword(synonym.Solvent, P.Solvent())
	}
	options := make([]string, 0, 10)
	if C.Type() == ConformationalSearch {
		options = append(options, O.crestcommand, C.Name()+".xyz", strings.ReplaceAll(method, " ", ""))
		options = append(options, fmt.Sprintf("--chrg %d", C.Charge()), fmt.Sprintf("--uhf %d", C.Unpaired()), solv)
		if C.NProcs() > 1 {
			options = append(options, fmt.Sprintf("-T %d", C.NProcs()))
		}
		if O.ewin > 0 {
			options = append(options, fmt.Sprintf("--ewin %s", ftoa(O.ewin)))
		}
		options = append(options, P.Specifications())
		return words(options...), nil
	}
	job := xtbCalc[C.Type()]
	if C.Type() == MinimumEnergyPath {
		job = "--path " + C.AuxName() + ".xyz"
	}
	options = append(options, O.command, C.Name()+".xyz", job, method)
	options = append(options, fmt.Sprintf("--chrg %d", C.Charge()), fmt.Sprintf("--uhf %d", C.Unpaired()), solv)
	if C.NProcs() > 1 {
		options = append(options, fmt.Sprintf("-P %d", C.NProcs()))
	}
	options = append(options, "--input "+C.Name()+".inp", P.Specifications())
	return words(options...), nil
}

//BuildInput writes the xtb detailed input for C to w: charge, spin, and
//the constraints and scans.
func (O *XTBHandle) BuildInput(w io.Writer, C *Calculation) error {
	if err := checkSoftware("XTBHandle.BuildInput", "xtb", C); err != nil {
		return err
	}
	b := new(strings.Builder)
	fmt.Fprintf(b, "$chrg %d\n", C.Charge())
	fmt.Fprintf(b, "$spin %d\n", C.Unpaired())
	cons := C.Constraints()
	if len(cons) > 0 {
		fmt.Fprintf(b, "$constrain\n   force constant=%s\n", ftoa(O.force))
		var scans []string
		for i, c := range cons {
			fmt.Fprintf(b, "   %s: %s, %.4f\n", xtbCoord[c.Kind()], c.IDs(", "), c.Start())
			if c.IsScan() {
				//xtb takes the number of points, and follows the end value. The end is
				//chosen so the scan goes in the direction of the step.
				end := c.StepEnd()
				scans = append(scans, fmt.Sprintf("   %d: %.4f, %.4f, %d\n", i+1, c.Start(), end, c.Count()+1))
			}
		}
		if len(scans) > 0 {
			b.WriteString("$scan\n" + strings.Join(scans, ""))
		}
	}
	b.WriteString("$end\n")
	return flush(w, "XTBHandle.BuildInput", b)
}
