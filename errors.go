/*
 * errors.go, part of goccinput.
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
	"fmt"
	"strings"
)

//Kind classifies the errors returned by all the packages in this library.
//A Kind is itself an error, so errors.Is(err, chem.InvalidParameter) works
//on any error produced here.
type Kind int

const (
	//InvalidParameter means malformed, out-of-range or contradictory input.
	InvalidParameter Kind = iota + 1
	//ImpossibleCalculation is a well-formed request that can't be run,
	//either for physical reasons or because the program doesn't support it.
	ImpossibleCalculation
	//MissingParameter is a required field that was never supplied.
	MissingParameter
	//InternalError indicates a programming defect, not a user error.
	InternalError
)

func (k Kind) Error() string {
	switch k {
	case InvalidParameter:
		return "invalid parameter"
	case ImpossibleCalculation:
		return "impossible calculation"
	case MissingParameter:
		return "missing parameter"
	case InternalError:
		return "internal error"
	}
	return "unknown error"
}

//Error is the error type for the whole library. The Decorate method allows to add
//and retrieve info from the error, without changing its type or wrapping it.
type Error struct {
	message string
	kind    Kind
	deco    []string
}

//NewError returns an error of the given kind. caller is the first element
//of the decoration slice, and it can be empty.
func NewError(kind Kind, caller, format string, args ...interface{}) *Error {
	e := &Error{message: fmt.Sprintf(format, args...), kind: kind}
	if caller != "" {
		e.deco = []string{caller}
	}
	return e
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s: %s", err.kind.Error(), err.message)
}

//Message returns the error message without the kind prefix.
func (err *Error) Message() string { return err.message }

//Kind returns the class of the error.
func (err *Error) Kind() Kind { return err.kind }

//Unwrap returns the Kind, so the error can be matched with errors.Is.
func (err *Error) Unwrap() error { return err.kind }

//Decorate adds deco to the list of functions the error has passed through, and
//returns that list. If passed an empty string, it just returns the current value.
//The elements should be "FunctionName" or "FunctionName: extra info".
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Trace returns the decoration of the error as a single string,
//innermost caller first.
func (err *Error) Trace() string {
	return strings.Join(err.deco, " <- ")
}

//ErrDecorate decorates err with caller if it is an *Error, and returns it.
//Other errors are returned untouched.
func ErrDecorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
