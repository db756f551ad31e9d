/*
 * parse.go, part of goccinput.
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
	"math"
	"strconv"
	"strings"

	chem "github.com/goccinput/goccinput"
	"github.com/goccinput/goccinput/quantity"
)

//ParseString reads constraints in the form
//
//	<options>/<atom>_<atom>[_<atom>[_<atom>]];<options>/...
//
//where options is "freeze" or "scan", followed by "_"-separated key=value pairs.
//Keys are start (or from), end (or to), step (or size) and count (or steps, nsteps).
//Scans also accept the positional form scan_<start>_<end>_<count>.
//Empty entries are ignored, and the whole string is case-insensitive.
//
//	"freeze/1_2;scan_end=180_count=18/1_2_3_4;"
func ParseString(s string) ([]Spec, error) {
	entries := strings.Split(s, ";")
	ret := make([]Spec, 0, len(entries))
	for n, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		sp, err := parseEntry(entry)
		if err != nil {
			return nil, chem.ErrDecorate(err, "ParseString: entry "+strconv.Itoa(n+1))
		}
		ret = append(ret, sp)
	}
	return ret, nil
}

func parseEntry(entry string) (Spec, error) {
	var sp Spec
	parts := strings.Split(entry, "/")
	if len(parts) != 2 {
		return sp, chem.NewError(chem.InvalidParameter, "parseEntry", "constraint %q must have the form <options>/<atoms>", entry)
	}
	atoms, err := parseAtoms(parts[1])
	if err != nil {
		return sp, err
	}
	sp.Atoms = atoms
	opts := strings.Split(strings.TrimSpace(parts[0]), "_")
	switch strings.TrimSpace(opts[0]) {
	case "freeze":
	case "scan":
		sp.Scan = true
	default:
		return sp, chem.NewError(chem.InvalidParameter, "parseEntry", "unknown constraint type %q", opts[0])
	}
	opts = opts[1:]
	if len(opts) == 0 {
		return sp, nil
	}
	if !strings.Contains(opts[0], "=") {
		return positional(sp, opts)
	}
	for _, o := range opts {
		kv := strings.SplitN(o, "=", 2)
		if len(kv) != 2 {
			return sp, chem.NewError(chem.InvalidParameter, "parseEntry", "positional and key=value options can't be mixed in %q", entry)
		}
		key, val := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		var target **float64
		switch key {
		case "start", "from":
			target = &sp.Start
		case "end", "to":
			target = &sp.End
		case "step", "size":
			target = &sp.Step
		case "count", "steps", "nsteps":
			if sp.Count != nil {
				return sp, chem.NewError(chem.InvalidParameter, "parseEntry", "option %q given twice", key)
			}
			c, err := quantity.IntAtLeast("step count", val, 1)
			if err != nil {
				return sp, err
			}
			sp.Count = &c
			continue
		default:
			return sp, chem.NewError(chem.InvalidParameter, "parseEntry", "unknown constraint option %q", key)
		}
		if *target != nil {
			return sp, chem.NewError(chem.InvalidParameter, "parseEntry", "option %q given twice", key)
		}
		f, err := parseFloat(key, val)
		if err != nil {
			return sp, err
		}
		*target = &f
	}
	if !sp.Scan && (sp.End != nil || sp.Step != nil || sp.Count != nil) {
		return sp, chem.NewError(chem.InvalidParameter, "parseEntry", "frozen coordinates only take a start value")
	}
	return sp, nil
}

//positional handles scan_<start>_<end>_<count>
func positional(sp Spec, opts []string) (Spec, error) {
	if !sp.Scan || len(opts) != 3 {
		return sp, chem.NewError(chem.InvalidParameter, "positional", "positional options must be scan_<start>_<end>_<count>")
	}
	start, err := parseFloat("start", opts[0])
	if err != nil {
		return sp, err
	}
	end, err := parseFloat("end", opts[1])
	if err != nil {
		return sp, err
	}
	count, err := quantity.IntAtLeast("step count", opts[2], 1)
	if err != nil {
		return sp, err
	}
	sp.Start, sp.End, sp.Count = &start, &end, &count
	return sp, nil
}

func parseFloat(field, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, chem.NewError(chem.InvalidParameter, "parseFloat", "invalid %s value %q", field, s)
	}
	return f, nil
}

func parseAtoms(s string) ([]int, error) {
	fields := strings.Split(strings.TrimSpace(s), "_")
	ret := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, chem.NewError(chem.InvalidParameter, "parseAtoms", "invalid atom index %q", f)
		}
		ret = append(ret, id)
	}
	return ret, nil
}

//Arrays is the other way of requesting constraints: parallel slices, one
//element per constraint. Start, End, Step and Count are consumed together with
//Scan, and each of them must be either nil or exactly as long as Scan.
//Within a non-nil slice, NaN (or 0 for Count) means "not given" for that scan.
type Arrays struct {
	Freeze [][]int
	Scan   [][]int
	Start  []float64
	End    []float64
	Step   []float64
	Count  []int
}

//Specs zips the arrays into Specs, freezes first.
func (A Arrays) Specs() ([]Spec, error) {
	n := len(A.Scan)
	lengths := []struct {
		name  string
		given bool
		l     int
	}{
		{"start", A.Start != nil, len(A.Start)},
		{"end", A.End != nil, len(A.End)},
		{"step", A.Step != nil, len(A.Step)},
		{"count", A.Count != nil, len(A.Count)},
	}
	for _, v := range lengths {
		if v.given && v.l != n {
			return nil, chem.NewError(chem.InvalidParameter, "Arrays.Specs", "%d scans but %d %s values", n, v.l, v.name)
		}
	}
	ret := make([]Spec, 0, len(A.Freeze)+n)
	for _, f := range A.Freeze {
		ret = append(ret, Spec{Atoms: f})
	}
	opt := func(s []float64, i int) *float64 {
		if s == nil || math.IsNaN(s[i]) {
			return nil
		}
		return Float(s[i])
	}
	for i, s := range A.Scan {
		sp := Spec{Atoms: s, Scan: true, Start: opt(A.Start, i), End: opt(A.End, i), Step: opt(A.Step, i)}
		if A.Count != nil && A.Count[i] != 0 {
			if A.Count[i] < 0 {
				return nil, chem.NewError(chem.InvalidParameter, "Arrays.Specs", "negative step count %d for scan %d", A.Count[i], i+1)
			}
			sp.Count = Int(A.Count[i])
		}
		ret = append(ret, sp)
	}
	return ret, nil
}
