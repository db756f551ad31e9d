/*
 * params.go, part of goccinput.
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
	"sort"
	"strings"

	chem "github.com/goccinput/goccinput"
	"github.com/goccinput/goccinput/synonym"
)

//Extras are program options that are not part of the level of theory, but
//change how it is computed. Programs that don't have a given option ignore it.
type Extras struct {
	DensityFitting bool   //RI approximation for the Coulomb term
	RIJCOSX        bool   //RI for Coulomb plus chain-of-spheres for exchange
	AuxBasisSet    string //auxiliary basis for RI and RIJCOSX; the program default if empty
	Grid           int    //0 for the program default, 1 to 3 from coarse to fine
	SCFTightness   int    //0 for the program default, 1 tight, 2 very tight
	SCFConvHelp    int    //0 for the program default, 1 and 2 for increasingly strong convergers
	Guess          string //initial guess keyword, passed as is
}

//ParamsRequest holds the user-supplied level of theory, as free-form strings.
type ParamsRequest struct {
	Software       string
	Method         string
	BasisSet       string
	Solvent        string
	SolvationModel string
	SolvationRadii string
	D3             bool
	D3BJ           bool
	//Specifications are extra keywords appended verbatim to the program input.
	Specifications string
	//CustomBasisSets assigns basis sets to specific elements, as "Cl=def2-TZVPD;I=def2-TZVPPD;".
	CustomBasisSets string
	Extras          Extras
}

//Parameters is a validated, normalized level of theory. It is never modified after
//NewParameters returns it, and it can be shared by any number of Calculations.
type Parameters struct {
	software        string
	method          string
	rawMethod       string
	basisSet        string
	theory          TheoryLevel
	solvent         string
	solvationModel  string
	solvationRadii  string
	d3              bool
	d3bj            bool
	specifications  string
	customBasisSets string
	extras          Extras

	custom map[string]string
	hash   string
	tables *synonym.Tables
}

//names that mean "no solvent"
var vacuum = []string{"", "vacuum", "vac", "gas", "gas phase", "gas-phase", "none"}

//NewParameters validates req against the lookup tables T (the default ones if
//T is nil) and returns the normalized Parameters, together with the advisories
//produced on the way.
func NewParameters(req ParamsRequest, T *synonym.Tables) (*Parameters, Diagnostics, error) {
	if T == nil {
		T = synonym.Default()
	}
	var diag Diagnostics
	P := &Parameters{tables: T}
	steps := []func(ParamsRequest, *Diagnostics) error{
		P.setSoftware,
		P.setMethod,
		P.setBasisSet,
		P.setSolvation,
		P.setDispersion,
		P.setExtras,
	}
	for _, step := range steps {
		if err := step(req, &diag); err != nil {
			return nil, nil, chem.ErrDecorate(err, "NewParameters")
		}
	}
	P.specifications = strings.Join(strings.Fields(req.Specifications), " ")
	h, err := digest(P.fields())
	if err != nil {
		return nil, nil, chem.ErrDecorate(err, "NewParameters")
	}
	P.hash = h
	return P, diag, nil
}

func (P *Parameters) setSoftware(req ParamsRequest, diag *Diagnostics) error {
	if strings.TrimSpace(req.Software) == "" {
		return chem.NewError(chem.MissingParameter, "setSoftware", "no program given")
	}
	s, err := P.tables.Strict(synonym.Software, req.Software)
	if err != nil {
		return err
	}
	if _, ok := programs[s]; !ok {
		return chem.NewError(chem.ImpossibleCalculation, "setSoftware", "%s is not supported", s)
	}
	P.software = s
	return nil
}

func (P *Parameters) setMethod(req ParamsRequest, diag *Diagnostics) error {
	P.rawMethod = strings.TrimSpace(req.Method)
	if P.rawMethod == "" {
		return chem.NewError(chem.MissingParameter, "setMethod", "no method given")
	}
	m, ok := P.tables.Resolve(synonym.Method, P.rawMethod)
	if !ok {
		P.method = strings.ToLower(P.rawMethod)
		P.theory = DFT
		diag.add("method", "unknown method %q, used as is and assumed to be a density functional", P.rawMethod)
	} else {
		P.method = m
		e, _ := P.tables.Entry(synonym.Method, m)
		P.theory, ok = theoryFromString(e.Theory)
		if !ok {
			return chem.NewError(chem.InternalError, "setMethod", "the tables give no valid theory level for %s: %q", m, e.Theory)
		}
	}
	switch {
	case P.software == "xtb" && P.theory != XTB:
		return chem.NewError(chem.ImpossibleCalculation, "setMethod", "xtb only runs tight-binding methods, not %s", P.method)
	case (P.theory == SE || P.theory == XTB || P.theory == Special) && !P.tables.HasKeyword(synonym.Method, P.software, P.method):
		return chem.NewError(chem.ImpossibleCalculation, "setMethod", "%s is not available in %s", P.method, P.software)
	}
	return nil
}

func (P *Parameters) setBasisSet(req ParamsRequest, diag *Diagnostics) error {
	basis := strings.TrimSpace(req.BasisSet)
	custom := strings.TrimSpace(req.CustomBasisSets)
	if !P.theory.NeedsBasis() {
		if basis != "" {
			diag.add("basis set", "%s methods don't take a basis set, %q is ignored", P.theory, basis)
		}
		if custom != "" {
			diag.add("custom basis sets", "%s methods don't take a basis set, %q is ignored", P.theory, custom)
		}
		return nil
	}
	if custom != "" {
		if !programs[P.software].customBasis {
			return chem.NewError(chem.ImpossibleCalculation, "setBasisSet", "per-element basis sets are not supported for %s", P.software)
		}
		if err := P.parseCustomBasisSets(custom, diag); err != nil {
			return err
		}
	}
	if basis == "" {
		if P.custom == nil {
			return chem.NewError(chem.MissingParameter, "setBasisSet", "%s methods need a basis set", P.theory)
		}
		return nil
	}
	P.basisSet = P.basisID(basis, diag)
	return nil
}

//basisID returns the canonical id of a basis set, or the lowercased name.
func (P *Parameters) basisID(name string, diag *Diagnostics) string {
	if b, ok := P.tables.Resolve(synonym.BasisSet, name); ok {
		return b
	}
	name = strings.TrimSpace(name)
	diag.add("basis set", "unknown basis set %q, used as is", name)
	return strings.ToLower(name)
}

//parseCustomBasisSets reads "El=basis;El=basis;" into P.custom, and stores
//a canonical, sorted version of the string.
func (P *Parameters) parseCustomBasisSets(s string, diag *Diagnostics) error {
	P.custom = make(map[string]string)
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) != 2 || strings.TrimSpace(kv[1]) == "" {
			return chem.NewError(chem.InvalidParameter, "parseCustomBasisSets", "per-element basis sets must be given as <element>=<basis set>, got %q", entry)
		}
		el := chem.NormalizeSymbol(kv[0])
		if _, ok := chem.AtomicNumber(el); !ok {
			return chem.NewError(chem.InvalidParameter, "parseCustomBasisSets", "unknown element %q", kv[0])
		}
		if _, ok := P.custom[el]; ok {
			return chem.NewError(chem.InvalidParameter, "parseCustomBasisSets", "two basis sets given for %s", el)
		}
		P.custom[el] = P.basisID(kv[1], diag)
	}
	if len(P.custom) == 0 {
		P.custom = nil
		return nil
	}
	els := make([]string, 0, len(P.custom))
	for k := range P.custom {
		els = append(els, k)
	}
	sort.Strings(els)
	for _, el := range els {
		P.customBasisSets += el + "=" + P.custom[el] + ";"
	}
	return nil
}

func (P *Parameters) setSolvation(req ParamsRequest, diag *Diagnostics) error {
	solv := strings.TrimSpace(req.Solvent)
	model := strings.TrimSpace(req.SolvationModel)
	radii := strings.TrimSpace(req.SolvationRadii)
	if isInString(vacuum, strings.ToLower(solv)) {
		if model != "" {
			diag.add("solvation model", "no solvent given, the solvation model %q is ignored", model)
		}
		if radii != "" {
			diag.add("solvation radii", "no solvent given, the solvation radii %q are ignored", radii)
		}
		return nil
	}
	s, err := P.tables.Strict(synonym.Solvent, solv)
	if err != nil {
		return err
	}
	if !P.tables.HasKeyword(synonym.Solvent, P.software, s) {
		return chem.NewError(chem.ImpossibleCalculation, "setSolvation", "solvent %s is not available in %s", s, P.software)
	}
	if model == "" {
		return chem.NewError(chem.MissingParameter, "setSolvation", "solvent %s given without a solvation model", s)
	}
	if P.method == "gfn0-xtb" {
		return chem.NewError(chem.ImpossibleCalculation, "setSolvation", "gfn0-xtb has no implicit solvation")
	}
	m, err := P.tables.Strict(synonym.SolvationModel, model)
	if err != nil {
		return err
	}
	if !P.tables.HasKeyword(synonym.SolvationModel, P.software, m) {
		return chem.NewError(chem.ImpossibleCalculation, "setSolvation", "solvation model %s is not available in %s", m, P.software)
	}
	r := "default"
	if radii == "" {
		diag.add("solvation radii", "no solvation radii given, the program defaults will be used")
	} else if r, err = P.tables.Strict(synonym.SolvationRadii, radii); err != nil {
		return err
	}
	P.solvent, P.solvationModel, P.solvationRadii = s, m, r
	return nil
}

func (P *Parameters) setDispersion(req ParamsRequest, diag *Diagnostics) error {
	if req.D3 && req.D3BJ {
		return chem.NewError(chem.InvalidParameter, "setDispersion", "D3 and D3BJ corrections can't be used together")
	}
	P.d3, P.d3bj = req.D3, req.D3BJ
	disp := P.Dispersion()
	if disp == "" {
		return nil
	}
	e, _ := P.tables.Entry(synonym.Method, P.method)
	if !isInString(e.Dispersion, disp) {
		diag.add("dispersion", "no %s parameters are known for %s, the program may refuse the correction", strings.ToUpper(disp), P.method)
	}
	return nil
}

func (P *Parameters) setExtras(req ParamsRequest, diag *Diagnostics) error {
	x := req.Extras
	if x.DensityFitting && x.RIJCOSX {
		return chem.NewError(chem.InvalidParameter, "setExtras", "RI and RIJCOSX can't be used together")
	}
	ranges := []struct {
		name string
		v    int
		max  int
	}{{"grid", x.Grid, 3}, {"SCF tightness", x.SCFTightness, 2}, {"SCF convergence help", x.SCFConvHelp, 2}}
	for _, r := range ranges {
		if r.v < 0 || r.v > r.max {
			return chem.NewError(chem.InvalidParameter, "setExtras", "%s must be between 0 and %d, got %d", r.name, r.max, r.v)
		}
	}
	x.AuxBasisSet = strings.TrimSpace(x.AuxBasisSet)
	x.Guess = strings.TrimSpace(x.Guess)
	if x.AuxBasisSet != "" && !x.DensityFitting && !x.RIJCOSX {
		diag.add("auxiliary basis set", "neither RI nor RIJCOSX requested, %q is ignored", x.AuxBasisSet)
		x.AuxBasisSet = ""
	}
	if (x.DensityFitting || x.RIJCOSX) && !P.theory.NeedsBasis() {
		diag.add("density fitting", "%s methods don't use RI approximations, ignored", P.theory)
		x.DensityFitting, x.RIJCOSX, x.AuxBasisSet = false, false, ""
	}
	P.extras = x
	return nil
}

//Software returns the canonical id of the program.
func (P *Parameters) Software() string { return P.software }

//Method returns the canonical id of the method, or the lowercased
//method name if it is not in the tables.
func (P *Parameters) Method() string { return P.method }

//RawMethod returns the method as the user gave it.
func (P *Parameters) RawMethod() string { return P.rawMethod }

//BasisSet returns the canonical id of the basis set. It is empty for theory levels
//that don't take one, and when all the elements have custom basis sets.
func (P *Parameters) BasisSet() string { return P.basisSet }

func (P *Parameters) Theory() TheoryLevel { return P.theory }

//Solvent returns the canonical id of the solvent, empty for vacuum.
func (P *Parameters) Solvent() string { return P.solvent }

func (P *Parameters) SolvationModel() string { return P.solvationModel }

func (P *Parameters) SolvationRadii() string { return P.solvationRadii }

func (P *Parameters) D3() bool { return P.d3 }

func (P *Parameters) D3BJ() bool { return P.d3bj }

//Dispersion returns "d3", "d3bj" or an empty string.
func (P *Parameters) Dispersion() string {
	switch {
	case P.d3:
		return "d3"
	case P.d3bj:
		return "d3bj"
	}
	return ""
}

func (P *Parameters) Specifications() string { return P.specifications }

//CustomBasisSets returns a copy of the element to basis set assignments,
//nil if there are none.
func (P *Parameters) CustomBasisSets() map[string]string {
	if P.custom == nil {
		return nil
	}
	ret := make(map[string]string, len(P.custom))
	for k, v := range P.custom {
		ret[k] = v
	}
	return ret
}

func (P *Parameters) Extras() Extras { return P.extras }

//Hash returns a digest of all the fields of P. Parameters that differ only in the case
//of their strings have the same hash.
func (P *Parameters) Hash() string { return P.hash }

//Tables returns the lookup tables P was built with.
func (P *Parameters) Tables() *synonym.Tables { return P.tables }

//Keyword returns the keyword P's program uses for the canonical id c.
func (P *Parameters) Keyword(d synonym.Domain, c string) string {
	return P.tables.Keyword(d, P.software, c)
}

//Equal returns true if every field of P and O is the same.
func (P *Parameters) Equal(O *Parameters) bool {
	if P == nil || O == nil {
		return P == O
	}
	a, b := P.fields(), O.fields()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type field struct {
	name  string
	value interface{}
}

//fields returns the stored values in declaration order.
func (P *Parameters) fields() []field {
	return []field{
		{"software", P.software},
		{"method", P.method},
		{"raw_method", P.rawMethod},
		{"basis_set", P.basisSet},
		{"theory_level", int(P.theory)},
		{"solvent", P.solvent},
		{"solvation_model", P.solvationModel},
		{"solvation_radii", P.solvationRadii},
		{"d3", P.d3},
		{"d3bj", P.d3bj},
		{"specifications", P.specifications},
		{"custom_basis_sets", P.customBasisSets},
		{"density_fitting", P.extras.DensityFitting},
		{"rijcosx", P.extras.RIJCOSX},
		{"aux_basis_set", P.extras.AuxBasisSet},
		{"grid", P.extras.Grid},
		{"scf_tightness", P.extras.SCFTightness},
		{"scf_conv_help", P.extras.SCFConvHelp},
		{"guess", P.extras.Guess},
	}
}
