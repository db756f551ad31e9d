/*
 * render.go, part of goccinput.
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
	"strconv"
	"strings"

	chem "github.com/goccinput/goccinput"
)

//checkSoftware returns an error if C was not built for the program software.
func checkSoftware(caller, software string, C *Calculation) error {
	if C == nil {
		return chem.NewError(chem.MissingParameter, caller, "no calculation given")
	}
	if s := C.Params().Software(); s != software {
		return chem.NewError(chem.InvalidParameter, caller, "the calculation was set up for %s, not %s", s, software)
	}
	return nil
}

//flush writes the contents of b to w.
func flush(w io.Writer, caller string, b *strings.Builder) error {
	if _, err := io.WriteString(w, b.String()); err != nil {
		return chem.NewError(chem.InternalError, caller, "can't write input: %s", err.Error())
	}
	return nil
}

//words joins the non-empty strings in s with spaces.
func words(s ...string) string {
	ret := make([]string, 0, len(s))
	for _, v := range s {
		if v != "" {
			ret = append(ret, v)
		}
	}
	return strings.Join(ret, " ")
}

//ftoa writes f with the fewest decimals that represent it.
func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
