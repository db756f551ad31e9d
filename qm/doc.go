/*
 * doc.go, part of goccinput.
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

//Package qm turns a validated description of a QM calculation into the
//input of a specific program.
//
//The level of theory is described by Parameters, built with NewParameters from
//free-form names (any synonym in the lookup tables is accepted). A Calculation
//adds a structure, the calculation type, charge, multiplicity, resources and
//constraints, and is built with NewCalculation. Both check everything at
//construction, and return non-fatal advisories as Diagnostics. Once built they
//are never modified.
//
//A Handle for each supported program (ORCA, Gaussian, xtb, NWChem) writes the
//input for a Calculation. The calculation settings are thus kept as separated
//as possible from the choice of program that runs them.
package qm
