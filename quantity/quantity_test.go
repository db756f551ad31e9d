/*
 * quantity_test.go, part of goccinput.
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

package quantity

import (
	"errors"
	"math"
	"testing"

	chem "github.com/goccinput/goccinput"
)

func TestInt(Te *testing.T) {
	good := []struct {
		in   interface{}
		want int
	}{
		{1, 1},
		{int64(-3), -3},
		{2.0, 2},
		{float32(4), 4},
		{"8", 8},
		{" 8 ", 8},
		{"+2", 2},
		{"-1", -1},
		{"3.00001", 3},
		{2.99999, 3},
		{"1e1", 10},
	}
	for _, v := range good {
		got, err := Int("nproc", v.in)
		if err != nil {
			Te.Errorf("%v: %s", v.in, err)
			continue
		}
		if got != v.want {
			Te.Errorf("%v: got %d, want %d", v.in, got, v.want)
		}
	}
	bad := []interface{}{1.5, "1.5", "one", "", "1.001", []int{1}, true, uint64(math.MaxUint64), int64(math.MaxInt64), int64(-1 << 40), uint32(math.MaxUint32)}
	for _, v := range bad {
		if _, err := Int("nproc", v); !errors.Is(err, chem.InvalidParameter) {
			Te.Errorf("%v should be an invalid parameter, got %v", v, err)
		}
	}
	if _, err := Int("nproc", nil); !errors.Is(err, chem.MissingParameter) {
		Te.Errorf("nil should be a missing parameter, got %v", err)
	}
}

func TestIntAtLeast(Te *testing.T) {
	if n, err := IntAtLeast("multiplicity", "+1", 1); err != nil || n != 1 {
		Te.Errorf("got %d %v", n, err)
	}
	for _, v := range []interface{}{0, "-1", -2.0} {
		if _, err := IntAtLeast("multiplicity", v, 1); err == nil {
			Te.Errorf("%v should fail", v)
		}
	}
}

func TestMemory(Te *testing.T) {
	good := []struct {
		in   interface{}
		want int
	}{
		{1000, 1000},
		{"1000", 1000},
		{"1000m", 1000},
		{"1000 MB", 1000},
		{"1 gib", 1074},
		{"1GiB", 1074},
		{"1000g", 1000000},
		{"1t", 1000000},
		{"2 GB", 2000},
		{"512 mib", 537},
		{"1.5g", 1500},
		{"5000000kb", 5000},
		{"1000000000b", 1000},
		{4000.0, 4000},
	}
	for _, v := range good {
		got, err := Memory(v.in)
		if err != nil {
			Te.Errorf("%v: %s", v.in, err)
			continue
		}
		if got != v.want {
			Te.Errorf("%v: got %d, want %d", v.in, got, v.want)
		}
	}
	bad := []interface{}{-1, "-1g", "1000000t", "1e20", "lots", "10 parsecs", "1b", 0, "1.5.g", 1.5, "1.5", "999.6", uint64(math.MaxUint64)}
	for _, v := range bad {
		if m, err := Memory(v); err == nil {
			Te.Errorf("%v should have failed, got %d", v, m)
		}
	}
	if _, err := Memory(nil); !errors.Is(err, chem.MissingParameter) {
		Te.Errorf("nil memory should be missing, got %v", err)
	}
}

func TestFormatMemory(Te *testing.T) {
	for mb, want := range map[int]string{1000: "1GB", 1500: "1500MB", 2000000: "2TB", 1074: "1074MB"} {
		if got := FormatMemory(mb); got != want {
			Te.Errorf("%d: got %s, want %s", mb, got, want)
		}
	}
}
