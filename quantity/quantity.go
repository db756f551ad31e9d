/*
 * quantity.go, part of goccinput.
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

//Package quantity parses the numeric fields of a calculation request:
//integers given as ints, floats or strings, and memory specifications with units.
package quantity

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	chem "github.com/goccinput/goccinput"
	"gonum.org/v1/gonum/floats/scalar"
)

//Tolerance is the largest difference from the closest integer that a
//value can have and still be accepted as that integer.
const Tolerance = 1e-4

//MaxMemory is the largest memory, in MB, that is accepted (100 TB).
const MaxMemory = 100000000

//Int parses v as an integer. v can be any int or float type, or a string with a
//number, optionally signed. It fails if the value is more than Tolerance away
//from its closest integer. field is used in the error message.
func Int(field string, v interface{}) (int, error) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, chem.NewError(chem.MissingParameter, "quantity.Int", "no value given for %s", field)
	case int:
		return inRange(field, v, int64(n))
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return inRange(field, v, n)
	case uint:
		if uint64(n) > math.MaxInt32 {
			return inRange(field, v, math.MaxInt64)
		}
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return inRange(field, v, int64(n))
	case uint64:
		if n > math.MaxInt32 {
			return inRange(field, v, math.MaxInt64)
		}
		return int(n), nil
	case float32:
		f = float64(n)
	case float64:
		f = n
	case string:
		s := strings.TrimSpace(n)
		var err error
		f, err = strconv.ParseFloat(s, 64)
		if err != nil || s == "" {
			return 0, chem.NewError(chem.InvalidParameter, "quantity.Int", "invalid value for %s: %q", field, n)
		}
	default:
		return 0, chem.NewError(chem.InvalidParameter, "quantity.Int", "invalid type %T for %s", v, field)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, chem.NewError(chem.InvalidParameter, "quantity.Int", "invalid value for %s: %v", field, v)
	}
	r := math.Round(f)
	if !scalar.EqualWithinAbs(f, r, Tolerance) {
		return 0, chem.NewError(chem.InvalidParameter, "quantity.Int", "%s must be an integer, got %v", field, v)
	}
	if math.Abs(r) > math.MaxInt32 {
		return 0, chem.NewError(chem.InvalidParameter, "quantity.Int", "%s out of range: %v", field, v)
	}
	return int(r), nil
}

//inRange returns n as an int, or an error if its magnitude is beyond math.MaxInt32.
func inRange(field string, v interface{}, n int64) (int, error) {
	if n > math.MaxInt32 || n < -math.MaxInt32 {
		return 0, chem.NewError(chem.InvalidParameter, "quantity.Int", "%s out of range: %v", field, v)
	}
	return int(n), nil
}

//IntAtLeast is like Int, but it also fails if the value is smaller than min.
func IntAtLeast(field string, v interface{}, min int) (int, error) {
	n, err := Int(field, v)
	if err != nil {
		return 0, err
	}
	if n < min {
		return 0, chem.NewError(chem.InvalidParameter, "quantity.IntAtLeast", "%s must be at least %d, got %v", field, min, v)
	}
	return n, nil
}

var memoryRe = regexp.MustCompile(`^([+-]?[0-9]*\.?[0-9]+(?:[eE][+-]?[0-9]+)?)\s*([a-zA-Z]*)$`)

//unit multipliers, to MB. "k","m","g","t" are decimal, the "i" ones are
//powers of 1024 bytes.
var memoryUnits = map[string]float64{
	"":    1,
	"b":   1e-6,
	"k":   1e-3,
	"kb":  1e-3,
	"m":   1,
	"mb":  1,
	"g":   1e3,
	"gb":  1e3,
	"t":   1e6,
	"tb":  1e6,
	"kib": 1024 / 1e6,
	"mib": 1024 * 1024 / 1e6,
	"gib": 1024 * 1024 * 1024 / 1e6,
	"tib": 1024 * 1024 * 1024 * 1024 / 1e6,
}

//Memory normalizes a memory specification to MB. Numbers are taken as MB and must
//be integers, as must strings without a unit. Strings have the form
//"<number>[ ][unit]", where unit is one of b, k(b), m(b), g(b), t(b) (decimal
//multiples) or kib, mib, gib, tib (binary multiples), in any case.
//Values with a unit are rounded to the closest MB. Negative, zero and larger than MaxMemory
//values fail.
func Memory(v interface{}) (int, error) {
	var mb float64
	switch m := v.(type) {
	case nil:
		return 0, chem.NewError(chem.MissingParameter, "quantity.Memory", "no memory specification given")
	case string:
		s := strings.TrimSpace(m)
		sub := memoryRe.FindStringSubmatch(s)
		if sub == nil {
			return 0, chem.NewError(chem.InvalidParameter, "quantity.Memory", "invalid memory specification %q", m)
		}
		val, err := strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return 0, chem.NewError(chem.InvalidParameter, "quantity.Memory", "invalid memory specification %q", m)
		}
		if sub[2] == "" {
			//no unit: MB, and it must be a whole number, as non-string values
			n, err := Int("memory", sub[1])
			if err != nil {
				return 0, chem.ErrDecorate(err, "quantity.Memory")
			}
			mb = float64(n)
			break
		}
		factor, ok := memoryUnits[strings.ToLower(sub[2])]
		if !ok {
			return 0, chem.NewError(chem.InvalidParameter, "quantity.Memory", "unknown memory unit %q", sub[2])
		}
		mb = val * factor
	default:
		n, err := Int("memory", v)
		if err != nil {
			return 0, chem.ErrDecorate(err, "quantity.Memory")
		}
		mb = float64(n)
	}
	if mb < 0 {
		return 0, chem.NewError(chem.InvalidParameter, "quantity.Memory", "negative memory: %v", v)
	}
	if mb > MaxMemory {
		return 0, chem.NewError(chem.InvalidParameter, "quantity.Memory", "memory too large: %v", v)
	}
	ret := int(math.Round(mb))
	if ret == 0 {
		return 0, chem.NewError(chem.InvalidParameter, "quantity.Memory", "memory must be at least 1 MB, got %v", v)
	}
	return ret, nil
}

//FormatMemory returns mb in the largest decimal unit that represents it
//exactly, e.g. 2000 -> "2GB", 1500 -> "1500MB".
func FormatMemory(mb int) string {
	switch {
	case mb%1000000 == 0:
		return fmt.Sprintf("%dTB", mb/1000000)
	case mb%1000 == 0:
		return fmt.Sprintf("%dGB", mb/1000)
	}
	return fmt.Sprintf("%dMB", mb)
}
