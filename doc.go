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

/*Package chem is the main package of goccinput. It provides the Structure type
(element symbols plus cartesian coordinates), the atomic data needed to
validate a calculation, readers for XYZ structures, the geometric measures
(distances, angles and dihedrals between 1-indexed atoms) used to resolve
constraints, and the Error type shared by all the packages in the module.

The other packages build on this one:

	quantity    parses processor counts, charges, multiplicities and memory specifications.
	synonym     maps the free-form names of programs, methods, basis sets and solvents to canonical ids.
	constraint  resolves freeze and scan constraints against a Structure.
	qm          assembles and validates Parameters and Calculations and writes program inputs.
*/
package chem
