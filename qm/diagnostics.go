/*
 * diagnostics.go, part of goccinput.
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
	"strings"
)

//Advisory is a non-fatal remark about a request: something was ignored, guessed
//or may not work as the user expects. Source is the field or step it concerns.
type Advisory struct {
	Source  string
	Message string
}

func (a Advisory) String() string {
	return a.Source + ": " + a.Message
}

//Diagnostics are the advisories produced while building an object. They are
//returned to the caller, who decides whether and how to show them.
type Diagnostics []Advisory

func (D *Diagnostics) add(source, format string, args ...interface{}) {
	*D = append(*D, Advisory{Source: source, Message: fmt.Sprintf(format, args...)})
}

//Messages returns the advisories as strings.
func (D Diagnostics) Messages() []string {
	ret := make([]string, len(D))
	for i, v := range D {
		ret[i] = v.String()
	}
	return ret
}

//From returns the advisories with the given source.
func (D Diagnostics) From(source string) Diagnostics {
	var ret Diagnostics
	for _, v := range D {
		if v.Source == source {
			ret = append(ret, v)
		}
	}
	return ret
}

func (D Diagnostics) String() string {
	return strings.Join(D.Messages(), "\n")
}
