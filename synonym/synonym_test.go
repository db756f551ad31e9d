/*
 * synonym_test.go, part of goccinput.
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

package synonym

import (
	"errors"
	"strings"
	"testing"

	chem "github.com/goccinput/goccinput"
)

func TestResolve(Te *testing.T) {
	tests := []struct {
		d    Domain
		in   string
		want string
	}{
		{Software, "Gaussian", "gaussian"},
		{Software, "G16", "gaussian"},
		{Software, "  orca ", "orca"},
		{Method, "pbe1pbe", "pbe0"},
		{Method, "M06-2X", "m062x"},
		{Method, "GFN2", "gfn2-xtb"},
		{Method, "wB97X-D", "wb97xd"},
		{BasisSet, "6-31G*", "6-31g(d)"},
		{BasisSet, "Def2SVP", "def2-svp"},
		{Solvent, "DCM", "dichloromethane"},
		{Solvent, "H2O", "water"},
		{SolvationModel, "IEFPCM", "pcm"},
		{CalcType, "Geometrical Optimisation", "opt"},
		{CalcType, "scan", "constr_opt"},
	}
	T := Default()
	for _, t := range tests {
		got, ok := T.Resolve(t.d, t.in)
		if !ok || got != t.want {
			Te.Errorf("%s %q: got %q (%t), want %q", t.d, t.in, got, ok, t.want)
		}
	}
	if _, ok := T.Resolve(Method, "not-a-method"); ok {
		Te.Error("unknown method resolved")
	}
	if _, err := T.Strict(Solvent, "lava"); !errors.Is(err, chem.InvalidParameter) {
		Te.Errorf("strict lookup of unknown solvent should fail, got %v", err)
	}
}

//Every canonical id resolves to itself, every synonym to its id, in any case.
func TestIdempotent(Te *testing.T) {
	T := Default()
	for d := Domain(0); d < numDomains; d++ {
		canon := T.Canonicals(d)
		if len(canon) == 0 {
			Te.Errorf("empty %s table", d)
		}
		for _, c := range canon {
			if got, ok := T.Resolve(d, c); !ok || got != c {
				Te.Errorf("%s %q doesn't resolve to itself (%q)", d, c, got)
			}
			if got, _ := T.Resolve(d, strings.ToUpper(c)); got != c {
				Te.Errorf("%s %q: lookup is case sensitive", d, c)
			}
			e, _ := T.Entry(d, c)
			for _, s := range e.Synonyms {
				got, ok := T.Resolve(d, s)
				if !ok || got != c {
					Te.Errorf("%s synonym %q resolves to %q, not %q", d, s, got, c)
				}
				if again, _ := T.Resolve(d, got); again != got {
					Te.Errorf("%s: resolving %q twice changed it", d, s)
				}
			}
		}
	}
}

func TestKeywords(Te *testing.T) {
	T := Default()
	if k := T.Keyword(Method, "gaussian", "pbe0"); k != "PBE1PBE" {
		Te.Errorf("wrong Gaussian keyword for pbe0: %s", k)
	}
	if k := T.Keyword(Solvent, "xtb", "chloroform"); k != "chcl3" {
		Te.Errorf("wrong xtb keyword for chloroform: %s", k)
	}
	if k := T.Keyword(BasisSet, "orca", "some-basis"); k != "some-basis" {
		Te.Errorf("unknown ids should pass through, got %s", k)
	}
	if !T.HasKeyword(SolvationModel, "xtb", "alpb") || T.HasKeyword(SolvationModel, "xtb", "smd") {
		Te.Error("wrong solvation model keywords for xtb")
	}
	if p := T.Preferred(Method, "m062x"); p != "M06-2X" {
		Te.Errorf("wrong preferred name %s", p)
	}
	if e, _ := T.Entry(Method, "b3lyp"); e.Theory != "dft" || len(e.Dispersion) != 2 {
		Te.Errorf("wrong b3lyp entry %+v", e)
	}
}

func TestLoad(Te *testing.T) {
	doc := `
[software.mopac]
synonyms = ["MOPAC", "mopac2016"]

[method.pm7]
synonyms = ["PM7"]
theory = "SE"
`
	T, err := Load(strings.NewReader(doc))
	if err != nil {
		Te.Fatal(err)
	}
	if c, ok := T.Resolve(Software, "MOPAC2016"); !ok || c != "mopac" {
		Te.Errorf("got %q", c)
	}
	if e, _ := T.Entry(Method, "pm7"); e.Theory != "se" {
		Te.Errorf("theory not folded: %q", e.Theory)
	}
	if _, ok := T.Resolve(Software, "orca"); ok {
		Te.Error("loaded tables should not contain the defaults")
	}
	dup := `
[solvent.water]
synonyms = ["wat"]
[solvent.ethanol]
synonyms = ["WAT"]
`
	if _, err := Load(strings.NewReader(dup)); err == nil {
		Te.Error("a name claimed twice should fail")
	}
	if _, err := Load(strings.NewReader("[[[")); err == nil {
		Te.Error("broken TOML should fail")
	}
}
