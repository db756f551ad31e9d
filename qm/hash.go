/*
 * hash.go, part of goccinput.
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
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	chem "github.com/goccinput/goccinput"
)

//canonical serializes fields as key=value; pairs. Strings are case-folded,
//ints and bools are written as they are. Any other type is an error.
func canonical(fields []field) (string, error) {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.name)
		b.WriteByte('=')
		switch v := f.value.(type) {
		case string:
			b.WriteString(strings.ToLower(v))
		case int:
			b.WriteString(strconv.Itoa(v))
		case bool:
			b.WriteString(strconv.FormatBool(v))
		default:
			return "", chem.NewError(chem.InternalError, "canonical", "field %s has a value of type %T, which can't be hashed", f.name, f.value)
		}
		b.WriteByte(';')
	}
	return b.String(), nil
}

//digest returns the hex xxhash of the canonical form of fields.
func digest(fields []field) (string, error) {
	s, err := canonical(fields)
	if err != nil {
		return "", chem.ErrDecorate(err, "digest")
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(s)), nil
}
