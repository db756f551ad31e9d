/*
 * orca.go, part of goccinput.
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

//OrcaHandle writes ORCA inputs.
//Note that the defaults are NOT considered part of the API, so they can always change.
type OrcaHandle struct {
	defauxbasis string
	nroots      int
}

func NewOrcaHandle() *OrcaHandle {
	run := new(OrcaHandle)
	run.SetDefaults()
	return run
}

//OrcaHandle methods

//SetDefaults sets the def2/J auxiliary basis for RI calculations and 10 excited
//states for UV-Vis calculations.
func (O *OrcaHandle) SetDefaults() {
	O.defauxbasis = "def2/J"
	O.nroots = 10
}

//SetNRoots sets the number of excited states computed in UV-Vis calculations.
func (O *OrcaHandle) SetNRoots(n int) {
	O.nroots = n
}

func (O *OrcaHandle) Software() string { return "orca" }

func (O *OrcaHandle) Supports(t CalcType) bool { return Supports("orca", t) }

var orcaCalc = map[CalcType]string{
	SinglePoint:             "SP",
	Optimisation:            "Opt",
	Frequency:               "Freq",
	OptFreq:                 "Opt Freq",
	TransitionState:         "OptTS Freq",
	ConstrainedOptimisation: "Opt",
	NMR:                     "NMR",
	UVVis:                   "SP",
	MinimumEnergyPath:       "NEB-TS",
}

var orcaSCFTight = map[int]string{
	0: "",
	1: "TightSCF",
	2: "VeryTightSCF",
}

var orcaSCFConv = map[int]string{
	0: "",
	1: "SlowConv",
	2: "VerySlowConv",
}

var orcaDisp = map[string]string{
	"":     "",
	"d3":   "D3ZERO",
	"d3bj": "D3BJ",
}

//BuildInput writes an ORCA input for C to w.
func (O *OrcaHandle) BuildInput(w io.Writer, C *Calculation) error {
	if err := checkSoftware("OrcaHandle.BuildInput", "orca", C); err != nil {
		return err
	}
	P := C.Params()
	x := P.Extras()
	hfuhf := ""
	if C.Multiplicity() != 1 {
		hfuhf = "UHF"
	}
	basis := ""
	if P.BasisSet() != "" {
		basis = P.Keyword(synonym.BasisSet, P.BasisSet())
	}
	ri := ""
	if x.DensityFitting || x.RIJCOSX {
		aux := x.AuxBasisSet
		if aux == "" {
			aux = O.defauxbasis
		}
		ri = "RI " + aux
		if x.RIJCOSX {
			ri = "RIJCOSX " + aux
		}
	}
	grid := ""
	if x.Grid > 0 {
		grid = fmt.Sprintf("DEFGRID%d", x.Grid)
	}
	cpcm := ""
	//SMD is set up in the %cpcm block, on top of CPCM
	if P.Solvent() != "" {
		cpcm = fmt.Sprintf("CPCM(%s)", P.Keyword(synonym.Solvent, P.Solvent()))
	}
	b := new(strings.Builder)
	mainline := words("!", hfuhf, P.Keyword(synonym.Method, P.Method()), basis, orcaDisp[P.Dispersion()], ri,
		orcaSCFTight[x.SCFTightness], orcaSCFConv[x.SCFConvHelp], grid, x.Guess, orcaCalc[C.Type()], cpcm, P.Specifications())
	fmt.Fprintf(b, "%s\n", mainline)
	fmt.Fprintf(b, "# %s\n", C.Header())
	if C.NProcs() > 1 {
		fmt.Fprintf(b, "%%pal\nnprocs %d\nend\n", C.NProcs())
	}
	//ORCA takes the memory per core
	fmt.Fprintf(b, "%%maxcore %d\n", max(1, C.Memory()/C.NProcs()))
	if P.SolvationModel() == "smd" {
		fmt.Fprintf(b, "%%cpcm\nsmd true\nSMDsolvent \"%s\"\nend\n", P.Keyword(synonym.Solvent, P.Solvent()))
	}
	b.WriteString(O.buildBasis(P))
	b.WriteString(O.buildGeom(C))
	if C.Type() == UVVis {
		fmt.Fprintf(b, "%%tddft\nnroots %d\nend\n", O.nroots)
	}
	if C.Type() == MinimumEnergyPath {
		fmt.Fprintf(b, "%%neb\nneb_end_xyzfile \"%s.xyz\"\nend\n", C.AuxName())
	}
	fmt.Fprintf(b, "* xyz %d %d\n", C.Charge(), C.Multiplicity())
	for _, l := range C.Structure().AtomLines("%12.6f") {
		fmt.Fprintf(b, "%s\n", l)
	}
	b.WriteString("*\n")
	return flush(w, "OrcaHandle.BuildInput", b)
}

//buildBasis returns the %basis block for per-element basis sets.
func (O *OrcaHandle) buildBasis(P *Parameters) string {
	custom := P.CustomBasisSets()
	if len(custom) == 0 {
		return ""
	}
	els := make([]string, 0, len(custom))
	for k := range custom {
		els = append(els, k)
	}
	sort.Strings(els)
	elementbasis := make([]string, 0, len(els)+2)
	elementbasis = append(elementbasis, "%basis\n")
	for _, el := range els {
		elementbasis = append(elementbasis, fmt.Sprintf("newgto %s \"%s\" end\n", el, P.Keyword(synonym.BasisSet, custom[el])))
	}
	elementbasis = append(elementbasis, "end\n")
	return strings.Join(elementbasis, "")
}

var orcaCoord = map[constraint.Kind]string{
	constraint.Bond:     "B",
	constraint.Angle:    "A",
	constraint.Dihedral: "D",
}

//orcaIDs returns the atom indexes of c, 0-based, as ORCA uses them.
func orcaIDs(c *constraint.Constraint) string {
	atoms := c.Atoms()
	s := make([]string, len(atoms))
	for i, v := range atoms {
		s[i] = fmt.Sprint(v - 1)
	}
	return strings.Join(s, " ")
}

//buildGeom returns the %geom block with the constraints and scans of C,
//and the Hessian request for transition states.
func (O *OrcaHandle) buildGeom(C *Calculation) string {
	cons := C.Constraints()
	if len(cons) == 0 && C.Type() != TransitionState {
		return ""
	}
	b := new(strings.Builder)
	b.WriteString("%geom\n")
	if C.Type() == TransitionState {
		b.WriteString("Calc_Hess true\n")
	}
	var freezes, scans []string
	for _, c := range cons {
		if !c.IsScan() {
			freezes = append(freezes, fmt.Sprintf("{%s %s %.3f C}\n", orcaCoord[c.Kind()], orcaIDs(c), c.Start()))
			continue
		}
		end := c.StepEnd()
		//ORCA takes the number of points, not of steps
		scans = append(scans, fmt.Sprintf("%s %s = %.3f, %.3f, %d\n", orcaCoord[c.Kind()], orcaIDs(c), c.Start(), end, c.Count()+1))
	}
	if len(freezes) > 0 {
		b.WriteString("Constraints\n" + strings.Join(freezes, "") + "end\n")
	}
	if len(scans) > 0 {
		b.WriteString("Scan\n" + strings.Join(scans, "") + "end\n")
	}
	b.WriteString("end\n")
	return b.String()
}
