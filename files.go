/*
 * files.go, part of goccinput.
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

package chem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/goccinput/goccinput/v3"
)

//XYZFileRead reads a structure from the XYZ file xyzname.
func XYZFileRead(xyzname string) (*Structure, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, NewError(InvalidParameter, "XYZFileRead", "unable to open %s: %s", xyzname, err.Error())
	}
	defer xyzfile.Close()
	S, err := ParseXYZ(xyzfile)
	if err != nil {
		return nil, ErrDecorate(err, "XYZFileRead: "+xyzname)
	}
	return S, nil
}

//ParseXYZ reads a structure from r. Both a full XYZ file (atom count,
//comment line, then the atoms) and bare "Symbol x y z" lines are accepted.
//Only the first frame of a multi-XYZ file is read. Blank lines are skipped
//in the bare format.
func ParseXYZ(r io.Reader) (*Structure, error) {
	scanner := bufio.NewScanner(r)
	lines := make([]string, 0, 16)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, NewError(InvalidParameter, "ParseXYZ", "error reading structure: %s", err.Error())
	}
	//drop leading blank lines
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, NewError(MissingParameter, "ParseXYZ", "empty structure")
	}
	natoms := -1
	if n, err := strconv.Atoi(strings.TrimSpace(lines[0])); err == nil {
		natoms = n
		if len(lines) < n+2 {
			return nil, NewError(InvalidParameter, "ParseXYZ", "ill formatted XYZ: %d atoms announced, %d lines found", n, len(lines)-2)
		}
		lines = lines[2 : n+2] //the comment line is ignored
	}
	symbols := make([]string, 0, len(lines))
	coords := make([]float64, 0, 3*len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 && natoms < 0 {
			continue
		}
		if len(fields) < 4 {
			return nil, NewError(InvalidParameter, "ParseXYZ", "line %d ill formed: %q", i+1, line)
		}
		symbols = append(symbols, fields[0])
		for j := 1; j < 4; j++ {
			c, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, NewError(InvalidParameter, "ParseXYZ", "line %d: invalid coordinate %q", i+1, fields[j])
			}
			coords = append(coords, c)
		}
	}
	if len(symbols) == 0 {
		return nil, NewError(MissingParameter, "ParseXYZ", "no atoms in structure")
	}
	m, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, NewError(InvalidParameter, "ParseXYZ", "%s", err.Error())
	}
	return NewStructure(symbols, m)
}

//ParseXYZString is ParseXYZ on a string.
func ParseXYZString(xyz string) (*Structure, error) {
	return ParseXYZ(strings.NewReader(xyz))
}

//AtomLines returns one "Symbol x y z" line per atom, in the given format
//for the coordinates (fmt verbs, e.g. "%12.6f").
func (S *Structure) AtomLines(format string) []string {
	ret := make([]string, S.Len())
	for i := range ret {
		x, y, z := S.Coord(i)
		ret[i] = fmt.Sprintf("%-2s "+format+" "+format+" "+format, S.Symbol(i), x, y, z)
	}
	return ret
}

//XYZWrite writes S to w in XYZ format, with comment in the second line.
func XYZWrite(w io.Writer, S *Structure, comment string) error {
	if S.Len() == 0 {
		return NewError(MissingParameter, "XYZWrite", "no atoms to write")
	}
	b := new(strings.Builder)
	fmt.Fprintf(b, "%d\n%s\n", S.Len(), strings.ReplaceAll(comment, "\n", " "))
	for _, l := range S.AtomLines("%12.6f") {
		b.WriteString(l + "\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return NewError(InternalError, "XYZWrite", "can't write structure: %s", err.Error())
	}
	return nil
}

//XYZFileWrite writes S to the file xyzname, in XYZ format.
func XYZFileWrite(xyzname string, S *Structure) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return NewError(InvalidParameter, "XYZFileWrite", "unable to create %s: %s", xyzname, err.Error())
	}
	defer out.Close()
	return XYZWrite(out, S, "")
}
