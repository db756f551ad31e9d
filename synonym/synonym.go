/*
 * synonym.go, part of goccinput.
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

//Package synonym maps the free-form names users give to programs, methods, basis sets,
//solvents and calculation types to canonical ids, and canonical ids to the keywords
//each program expects.
//
//Lookups are case-insensitive and ignore surrounding whitespace. A canonical id
//always matches itself. The tables are data, not logic: the default set is embedded
//in the package as TOML, and other sets with the same schema can be loaded with Load.
package synonym

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	chem "github.com/goccinput/goccinput"
)

//Domain is a family of names that are resolved together.
type Domain int

const (
	Software Domain = iota
	Method
	BasisSet
	Solvent
	SolvationModel
	SolvationRadii
	CalcType
	numDomains
)

func (d Domain) String() string {
	return [...]string{"software", "method", "basis set", "solvent", "solvation model", "solvation radii", "calculation type"}[d]
}

//Entry is the data associated with one canonical id.
type Entry struct {
	//Synonyms are the names that resolve to the entry. The first one is the preferred display name.
	Synonyms []string `toml:"synonyms"`
	//Keywords maps a program's canonical id to the keyword that program uses.
	Keywords map[string]string `toml:"keywords"`
	//Theory is the theory level of a method: hf, dft, se, xtb or special. Empty for other domains.
	Theory string `toml:"theory"`
	//Dispersion lists the dispersion corrections with known parameters for a method.
	Dispersion []string `toml:"dispersion"`
}

//rawTables mirrors the layout of the TOML document.
type rawTables struct {
	Software       map[string]Entry `toml:"software"`
	Method         map[string]Entry `toml:"method"`
	BasisSet       map[string]Entry `toml:"basis_set"`
	Solvent        map[string]Entry `toml:"solvent"`
	SolvationModel map[string]Entry `toml:"solvation_model"`
	SolvationRadii map[string]Entry `toml:"solvation_radii"`
	CalcType       map[string]Entry `toml:"calc_type"`
}

type table struct {
	entries map[string]Entry
	index   map[string]string //folded synonym -> canonical id
}

//Tables holds one lookup table per Domain. A Tables is never modified after
//Load returns it, so it can be shared freely.
type Tables struct {
	t [numDomains]table
}

//fold is the normalization applied to every name before comparing.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

//Load parses a TOML document with lookup tables. It fails if a name resolves to
//two different canonical ids within the same domain.
func Load(r io.Reader) (*Tables, error) {
	var raw rawTables
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, chem.NewError(chem.InvalidParameter, "synonym.Load", "can't parse tables: %s", err.Error())
	}
	T := new(Tables)
	src := [numDomains]map[string]Entry{raw.Software, raw.Method, raw.BasisSet, raw.Solvent, raw.SolvationModel, raw.SolvationRadii, raw.CalcType}
	for d, entries := range src {
		tab := table{entries: make(map[string]Entry, len(entries)), index: make(map[string]string)}
		for key, e := range entries {
			canon := fold(key)
			if canon == "" {
				return nil, chem.NewError(chem.InvalidParameter, "synonym.Load", "empty canonical id in %s table", Domain(d))
			}
			if e.Theory != "" {
				e.Theory = fold(e.Theory)
			}
			tab.entries[canon] = e
			for _, s := range append([]string{canon}, e.Synonyms...) {
				f := fold(s)
				if prev, ok := tab.index[f]; ok && prev != canon {
					return nil, chem.NewError(chem.InvalidParameter, "synonym.Load", "%s name %q claimed by both %q and %q", Domain(d), s, prev, canon)
				}
				tab.index[f] = canon
			}
		}
		T.t[d] = tab
	}
	return T, nil
}

//go:embed tables.toml
var defaultTables string

var (
	defaultOnce sync.Once
	defaultT    *Tables
)

//Default returns the tables embedded in the package. They are parsed
//only the first time.
func Default() *Tables {
	defaultOnce.Do(func() {
		var err error
		defaultT, err = Load(strings.NewReader(defaultTables))
		if err != nil {
			panic(fmt.Sprintf("synonym: embedded tables are broken: %s", err))
		}
	})
	return defaultT
}

//Resolve returns the canonical id for s in the domain d, and true. If nothing matches
//it returns an empty string and false. Callers decide whether that is an error or
//whether s should be used unchanged.
func (T *Tables) Resolve(d Domain, s string) (string, bool) {
	c, ok := T.t[d].index[fold(s)]
	return c, ok
}

//Strict is like Resolve, but a failed lookup is an invalid parameter error.
func (T *Tables) Strict(d Domain, s string) (string, error) {
	c, ok := T.Resolve(d, s)
	if !ok {
		return "", chem.NewError(chem.InvalidParameter, "synonym.Strict", "unknown %s: %q", d, s)
	}
	return c, nil
}

//Entry returns the data for the canonical id c.
func (T *Tables) Entry(d Domain, c string) (Entry, bool) {
	e, ok := T.t[d].entries[c]
	return e, ok
}

//Preferred returns the display name for the canonical id c, i.e. its
//first synonym, or c itself if it has none or is unknown.
func (T *Tables) Preferred(d Domain, c string) string {
	e, ok := T.t[d].entries[c]
	if !ok || len(e.Synonyms) == 0 {
		return c
	}
	return e.Synonyms[0]
}

//Keyword returns the keyword the program software uses for the canonical id c.
//If none is registered, c is returned.
func (T *Tables) Keyword(d Domain, software, c string) string {
	if e, ok := T.t[d].entries[c]; ok {
		if k, ok := e.Keywords[software]; ok {
			return k
		}
	}
	return c
}

//HasKeyword returns true if a keyword is registered for the canonical id c and
//the program software.
func (T *Tables) HasKeyword(d Domain, software, c string) bool {
	e, ok := T.t[d].entries[c]
	if !ok {
		return false
	}
	_, ok = e.Keywords[software]
	return ok
}

//Canonicals returns the sorted canonical ids of the domain d.
func (T *Tables) Canonicals(d Domain) []string {
	ret := make([]string, 0, len(T.t[d].entries))
	for k := range T.t[d].entries {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//Resolve uses the default tables.
func Resolve(d Domain, s string) (string, bool) {
	return Default().Resolve(d, s)
}
