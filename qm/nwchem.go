/*
 * nwchem.go, part of goccinput.
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
	"sort"
	"strings"

	"github.com/goccinput/goccinput/constraint"
	"github.com/goccinput/goccinput/synonym"
)

//NWChemHandle writes NWChem inputs. The number of processors is not part of the
//input, NWChem takes it from the MPI launcher.
//Note that the defaults are NOT considered part of the API, so they can always change.
type NWChemHandle struct {
	nroots int
}

func NewNWChemHandle() *NWChemHandle {
	run := new(NWChemHandle)
	run.SetDefaults()
	return run
}

//NWChemHandle methods

//SetDefaults sets 10 excited states for UV-Vis calculations.
func (O *NWChemHandle) SetDefaults() {
	O.nroots = 10
}

//SetNRoots sets the number of excited states computed in UV-Vis calculations.
func (O *NWChemHandle) SetNRoots(n int) {
	O.nroots = n
}

func (O *NWChemHandle) Software() string { return "nwchem" }

func (O *NWChemHandle) Supports(t CalcType) bool { return Supports("nwchem", t) }

var nwchemTask = map[CalcType][]string{
	SinglePoint:             {"energy"},
	Optimisation:            {"optimize"},
	Frequency:               {"freq"},
	OptFreq:                 {"optimize", "freq"},
	TransitionState:         {"saddle"},
	ConstrainedOptimisation: {"optimize"},
	NMR:                     {"property"},
	UVVis:                   {"energy"},
}

var nwchemDisp = map[string]string{
	"d3":   "vdw 3",
	"d3bj": "vdw 4",
}

var nwchemGrid = map[int]string{
	1: "coarse",
	2: "fine",
	3: "xfine",
}

var nwchemTight = map[int]string{
	1: "convergence energy 1.000000E-08\n  convergence density 5.000000E-09\n  convergence gradient 1E-05",
	2: "convergence energy 1.000000E-10\n  convergence density 5.000000E-11\n  convergence gradient 1E-07",
}

var nwchemCoord = map[constraint.Kind]string{
	constraint.Bond:     "bond",
	constraint.Angle:    "angle",
	constraint.Dihedral: "torsion",
}

//BuildInput writes an NWChem input for C to w.
func (O *NWChemHandle) BuildInput(w io.Writer, C *Calculation) error {
	if err := checkSoftware("NWChemHandle.BuildInput", "nwchem", C); err != nil {
		return err
	}
	P := C.Params()
	b := new(strings.Builder)
	fmt.Fprintf(b, "title \"%s\"\n", strings.ReplaceAll(C.Header(), "\"", "'"))
	fmt.Fprintf(b, "start %s\n", C.Name())
	b.WriteString("echo\n")
	fmt.Fprintf(b, "memory total %d mb\n", C.Memory())
	fmt.Fprintf(b, "charge %d\n", C.Charge())
	b.WriteString("geometry units angstroms\n")
	for _, l := range C.Structure().AtomLines("%12.6f") {
		fmt.Fprintf(b, "  %s\n", l)
	}
	if cons := C.Constraints(); len(cons) > 0 {
		b.WriteString("  zcoord\n")
		for _, c := range cons {
			fmt.Fprintf(b, "    %s %s %.4f %s constant\n", nwchemCoord[c.Kind()], c.IDs(" "), c.Start(), string(nwchemCoord[c.Kind()][0])+c.IDs(""))
		}
		b.WriteString("  end\n")
	}
	b.WriteString("end\n")
	b.WriteString(O.buildBasis(P))
	module := O.buildModule(b, C)
	if P.Solvent() != "" {
		b.WriteString("cosmo\n")
		if k := P.Keyword(synonym.SolvationModel, P.SolvationModel()); k != "cosmo" {
			fmt.Fprintf(b, "  %s\n", k)
		}
		fmt.Fprintf(b, "  solvent %s\nend\n", P.Keyword(synonym.Solvent, P.Solvent()))
	}
	if C.Type() == NMR {
		b.WriteString("property\n  shielding\nend\n")
	}
	if C.Type() == UVVis {
		fmt.Fprintf(b, "tddft\n  nroots %d\nend\n", O.nroots)
		module = "tddft"
	}
	if s := P.Specifications(); s != "" {
		fmt.Fprintf(b, "%s\n", s)
	}
	for _, t := range nwchemTask[C.Type()] {
		fmt.Fprintf(b, "task %s %s\n", module, t)
	}
	return flush(w, "NWChemHandle.BuildInput", b)
}

//buildBasis returns the basis block. Per-element basis sets override the general one.
func (O *NWChemHandle) buildBasis(P *Parameters) string {
	custom := P.CustomBasisSets()
	els := make([]string, 0, len(custom))
	for k := range custom {
		els = append(els, k)
	}
	sort.Strings(els)
	b := new(strings.Builder)
	b.WriteString("basis\n")
	if P.BasisSet() != "" {
		except := ""
		if len(els) > 0 {
			except = " except " + strings.Join(els, " ")
		}
		fmt.Fprintf(b, "  * library %s%s\n", P.Keyword(synonym.BasisSet, P.BasisSet()), except)
	}
	for _, el := range els {
		fmt.Fprintf(b, "  %s library %s\n", el, P.Keyword(synonym.BasisSet, custom[el]))
	}
	b.WriteString("end\n")
	return b.String()
}

//buildModule writes the scf or dft block for C to b, and returns the
//name of the module that runs the tasks.
func (O *NWChemHandle) buildModule(b *strings.Builder, C *Calculation) string {
	P := C.Params()
	x := P.Extras()
	var opts []string
	if t, ok := nwchemTight[x.SCFTightness]; ok {
		opts = append(opts, t)
	}
	if x.SCFConvHelp > 0 {
		opts = append(opts, fmt.Sprintf("iterations %d", 50*x.SCFConvHelp))
	}
	if P.Theory() == DFT {
		b.WriteString("dft\n")
		fmt.Fprintf(b, "  xc %s\n", P.Keyword(synonym.Method, P.Method()))
		fmt.Fprintf(b, "  mult %d\n", C.Multiplicity())
		if d, ok := nwchemDisp[P.Dispersion()]; ok {
			fmt.Fprintf(b, "  disp %s\n", d)
		}
		if g, ok := nwchemGrid[x.Grid]; ok {
			fmt.Fprintf(b, "  grid %s\n", g)
		}
		for _, o := range opts {
			fmt.Fprintf(b, "  %s\n", o)
		}
		b.WriteString("end\n")
		return "dft"
	}
	b.WriteString("scf\n")
	if C.Multiplicity() > 1 {
		fmt.Fprintf(b, "  nopen %d\n  uhf\n", C.Unpaired())
	}
	if x.SCFTightness > 0 {
		b.WriteString("  thresh 1e-8\n")
	}
	if x.SCFConvHelp > 0 {
		fmt.Fprintf(b, "  maxiter %d\n", 50*x.SCFConvHelp)
	}
	b.WriteString("end\n")
	return P.Keyword(synonym.Method, P.Method())
}
