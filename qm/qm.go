/*
 * qm.go, part of goccinput.
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
	"io"
	"strings"

	chem "github.com/goccinput/goccinput"
	"github.com/goccinput/goccinput/synonym"
)

//Handle writes the input for one QM program.
type Handle interface {
	//Software returns the canonical id of the program.
	Software() string

	//Supports returns true if the program can run calculations of type t.
	Supports(t CalcType) bool

	//BuildInput writes the input for C to w. C must have been
	//built for the same program.
	BuildInput(w io.Writer, C *Calculation) error
}

//HandleFor returns the Handle for the program with the given name.
//Any synonym of the program is accepted.
func HandleFor(software string) (Handle, error) {
	s, err := synonym.Default().Strict(synonym.Software, software)
	if err != nil {
		return nil, chem.ErrDecorate(err, "HandleFor")
	}
	switch s {
	case "orca":
		return NewOrcaHandle(), nil
	case "gaussian":
		return NewGaussianHandle(), nil
	case "xtb":
		return NewXTBHandle(), nil
	case "nwchem":
		return NewNWChemHandle(), nil
	}
	return nil, chem.NewError(chem.ImpossibleCalculation, "HandleFor", "no input writer for %s", s)
}

//BuildInput writes the input for C with the Handle of its program.
func BuildInput(w io.Writer, C *Calculation) error {
	H, err := HandleFor(C.Params().Software())
	if err != nil {
		return err
	}
	return H.BuildInput(w, C)
}

//TheoryLevel is the family a method belongs to. It decides, among other things,
//whether the method needs a basis set.
type TheoryLevel int

const (
	HF      TheoryLevel = iota + 1 //Hartree-Fock and post-HF methods
	DFT                            //density functionals
	SE                             //semi-empirical methods
	XTB                            //extended tight binding and its force field
	Special                        //composite methods with their own basis set, like HF-3c
)

var theoryNames = map[TheoryLevel]string{HF: "hf", DFT: "dft", SE: "se", XTB: "xtb", Special: "special"}

func (t TheoryLevel) String() string {
	if s, ok := theoryNames[t]; ok {
		return s
	}
	return "unknown"
}

//NeedsBasis returns true for theory levels that require a basis set.
func (t TheoryLevel) NeedsBasis() bool {
	return t == HF || t == DFT
}

func theoryFromString(s string) (TheoryLevel, bool) {
	for k, v := range theoryNames {
		if v == s {
			return k, true
		}
	}
	return 0, false
}

//CalcType is the kind of job to run.
type CalcType int

const (
	SinglePoint CalcType = iota + 1
	Optimisation
	Frequency
	OptFreq
	TransitionState
	ConstrainedOptimisation
	NMR
	UVVis
	ConformationalSearch
	MinimumEnergyPath
)

//calc type -> canonical id in the synonym tables
var calcTypeIDs = map[CalcType]string{
	SinglePoint:             "sp",
	Optimisation:            "opt",
	Frequency:               "freq",
	OptFreq:                 "optfreq",
	TransitionState:         "ts",
	ConstrainedOptimisation: "constr_opt",
	NMR:                     "nmr",
	UVVis:                   "uvvis",
	ConformationalSearch:    "conf_search",
	MinimumEnergyPath:       "mep",
}

//String returns the canonical id of the calculation type.
func (c CalcType) String() string {
	if s, ok := calcTypeIDs[c]; ok {
		return s
	}
	return "unknown"
}

//Optimises returns true for the calculation types that move the atoms
//towards a stationary point.
func (c CalcType) Optimises() bool {
	return c == Optimisation || c == OptFreq || c == TransitionState || c == ConstrainedOptimisation
}

//ParseCalcType resolves s, which can be any synonym of a calculation type,
//with the tables T (the default ones if T is nil).
func ParseCalcType(T *synonym.Tables, s string) (CalcType, error) {
	if T == nil {
		T = synonym.Default()
	}
	if strings.TrimSpace(s) == "" {
		return 0, chem.NewError(chem.MissingParameter, "ParseCalcType", "no calculation type given")
	}
	id, err := T.Strict(synonym.CalcType, s)
	if err != nil {
		return 0, chem.ErrDecorate(err, "ParseCalcType")
	}
	for k, v := range calcTypeIDs {
		if v == id {
			return k, nil
		}
	}
	return 0, chem.NewError(chem.InvalidParameter, "ParseCalcType", "calculation type %q is not implemented", id)
}

//program describes what each program can do.
type program struct {
	types       []CalcType
	customBasis bool
	scans       bool
}

var programs = map[string]program{
	"gaussian": {
		types: []CalcType{SinglePoint, Optimisation, Frequency, OptFreq, TransitionState, ConstrainedOptimisation, NMR, UVVis},
		scans: true,
	},
	"orca": {
		types:       []CalcType{SinglePoint, Optimisation, Frequency, OptFreq, TransitionState, ConstrainedOptimisation, NMR, UVVis, MinimumEnergyPath},
		customBasis: true,
		scans:       true,
	},
	"xtb": {
		types: []CalcType{SinglePoint, Optimisation, Frequency, OptFreq, ConstrainedOptimisation, ConformationalSearch, MinimumEnergyPath},
		scans: true,
	},
	"nwchem": {
		types:       []CalcType{SinglePoint, Optimisation, Frequency, OptFreq, TransitionState, ConstrainedOptimisation, NMR, UVVis},
		customBasis: true,
	},
}

//Supports returns true if the program with the canonical id software
//can run calculations of type t.
func Supports(software string, t CalcType) bool {
	p, ok := programs[software]
	if !ok {
		return false
	}
	for _, v := range p.types {
		if v == t {
			return true
		}
	}
	return false
}

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
