/*
 * gaussian.go, part of goccinput.
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

//GaussianHandle writes Gaussian inputs.
type GaussianHandle struct {
	nstates int
	chk     bool
}

func NewGaussianHandle() *GaussianHandle {
	run := new(GaussianHandle)
	run.SetDefaults()
	return run
}

//SetDefaults sets 10 excited states for UV-Vis calculations, and
//a checkpoint file named after the calculation.
func (O *GaussianHandle) SetDefaults() {
	O.nstates = 10
	O.chk = true
}

//SetNStates sets the number of excited states computed in UV-Vis calculations.
func (O *GaussianHandle) SetNStates(n int) {
	O.nstates = n
}

//SetChk sets whether a %chk line is written.
func (O *GaussianHandle) SetChk(chk bool) {
	O.chk = chk
}

func (O *GaussianHandle) Software() string { return "gaussian" }

func (O *GaussianHandle) Supports(t CalcType) bool { return Supports("gaussian", t) }

var gaussianCalc = map[CalcType]string{
	SinglePoint:             "SP",
	Optimisation:            "Opt",
	Frequency:               "Freq",
	OptFreq:                 "Opt Freq",
	TransitionState:         "Opt(TS,CalcFC,NoEigenTest)",
	ConstrainedOptimisation: "Opt(ModRedundant)",
	NMR:                     "NMR",
}

var gaussianDisp = map[string]string{
	"d3":   "EmpiricalDispersion=GD3",
	"d3bj": "EmpiricalDispersion=GD3BJ",
}

var gaussianSCF = map[string]string{
	"tight1": "Tight",
	"tight2": "VeryTight",
	"conv1":  "XQC",
	"conv2":  "QC",
}

var gaussianGrid = map[int]string{
	1: "Int=Fine",
	2: "Int=UltraFine",
	3: "Int=SuperFineGrid",
}

var gaussianCoord = map[constraint.Kind]string{
	constraint.Bond:     "B",
	constraint.Angle:    "A",
	constraint.Dihedral: "D",
}

//BuildInput writes a Gaussian input for C to w.
func (O *GaussianHandle) BuildInput(w io.Writer, C *Calculation) error {
	if err := checkSoftware("GaussianHandle.BuildInput", "gaussian", C); err != nil {
		return err
	}
	P := C.Params()
	x := P.Extras()
	b := new(strings.Builder)
	if O.chk {
		fmt.Fprintf(b, "%%chk=%s.chk\n", C.Name())
	}
	fmt.Fprintf(b, "%%nprocshared=%d\n", C.NProcs())
	fmt.Fprintf(b, "%%mem=%dMB\n", C.Memory())
	calc := gaussianCalc[C.Type()]
	if C.Type() == UVVis {
		calc = fmt.Sprintf("TD(NStates=%d)", O.nstates)
	}
	method := P.Keyword(synonym.Method, P.Method())
	if P.BasisSet() != "" {
		method += "/" + P.Keyword(synonym.BasisSet, P.BasisSet())
	}
	var scf []string
	if x.SCFTightness > 0 {
		scf = append(scf, gaussianSCF[fmt.Sprintf("tight%d", x.SCFTightness)])
	}
	if x.SCFConvHelp > 0 {
		scf = append(scf, gaussianSCF[fmt.Sprintf("conv%d", x.SCFConvHelp)])
	}
	scfopt := ""
	if len(scf) > 0 {
		scfopt = "SCF=(" + strings.Join(scf, ",") + ")"
	}
	guess := ""
	if x.Guess != "" {
		guess = "Guess=" + x.Guess
	}
	radii := ""
	scrf := ""
	if P.Solvent() != "" {
		read := ""
		if P.SolvationRadii() != "default" {
			read = ",Read"
			radii = "Radii=" + P.Tables().Preferred(synonym.SolvationRadii, P.SolvationRadii())
		}
		scrf = fmt.Sprintf("SCRF=(%s,Solvent=%s%s)", P.Keyword(synonym.SolvationModel, P.SolvationModel()), P.Keyword(synonym.Solvent, P.Solvent()), read)
	}
	fmt.Fprintf(b, "%s\n\n", words("#p", calc, method, gaussianDisp[P.Dispersion()], scrf, scfopt, gaussianGrid[x.Grid], guess, P.Specifications()))
	fmt.Fprintf(b, "%s\n\n", C.Header())
	fmt.Fprintf(b, "%d %d\n", C.Charge(), C.Multiplicity())
	for _, l := range C.Structure().AtomLines("%12.6f") {
		fmt.Fprintf(b, "%s\n", l)
	}
	b.WriteString("\n")
	if cons := C.Constraints(); len(cons) > 0 {
		for _, c := range cons {
			if c.IsScan() {
				fmt.Fprintf(b, "%s %s S %d %s\n", gaussianCoord[c.Kind()], c.IDs(" "), c.Count(), ftoa(c.Step()))
			} else {
				fmt.Fprintf(b, "%s %s F\n", gaussianCoord[c.Kind()], c.IDs(" "))
			}
		}
		b.WriteString("\n")
	}
	if radii != "" {
		fmt.Fprintf(b, "%s\n\n", radii)
	}
	return flush(w, "GaussianHandle.BuildInput", b)
}
