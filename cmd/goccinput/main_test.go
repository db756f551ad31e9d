/*
 * main_test.go, part of goccinput.
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

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/goccinput/goccinput"
	"github.com/goccinput/goccinput/synonym"
)

const water = `3
water
O 0.000000 0.000000 0.117790
H 0.000000 0.755453 -0.471161
H 0.000000 -0.755453 -0.471161
`

const chain = `4

C 1.5 0.0 0.0
C 0.0 0.0 0.0
C 0.0 0.0 1.5
C 0.0 1.5 1.5
`

//setup writes the request and the structures to a temporary directory,
//and returns the path of the request.
func setup(Te *testing.T, request string) string {
	dir := Te.TempDir()
	files := map[string]string{"request.toml": request, "water.xyz": water, "chain.xyz": chain}
	for name, cont := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(cont), 0644); err != nil {
			Te.Fatal(err)
		}
	}
	return filepath.Join(dir, "request.toml")
}

func TestLoadConfig(Te *testing.T) {
	req := setup(Te, `
software = "G16"
method = "B3LYP"
basis_set = "6-31G*"
solvent = "water"
solvation_model = "SMD"
d3bj = true
type = "opt"
xyz = "water.xyz"
nprocs = 8
memory = "16 GB"
charge = 0
name = "water_opt"

[extras]
grid = 2
`)
	conf, err := LoadConfig(req)
	if err != nil {
		Te.Fatal(err)
	}
	if conf.Params.Software != "G16" || !conf.Params.D3BJ || conf.Params.Extras.Grid != 2 {
		Te.Errorf("wrong level of theory %+v", conf.Params)
	}
	if conf.Calc.Structure.Len() != 3 || conf.Calc.NProcs != int64(8) || conf.Calc.Memory != "16 GB" || conf.Calc.Multiplicity != nil {
		Te.Errorf("wrong calculation %+v", conf.Calc)
	}
	req = setup(Te, `
software = "orca"
method = "b3lyp"
basis_set = "def2-svp"
type = "scan"
xyz = "chain.xyz"

[constraint_arrays]
freeze = [[1, 2]]
scan = [[1, 2, 3]]
end = [120.0]
count = [3]
`)
	conf, err = LoadConfig(req)
	if err != nil {
		Te.Fatal(err)
	}
	a := conf.Calc.ConstraintArrays
	if a == nil || len(a.Freeze) != 1 || len(a.Scan) != 1 || a.Start != nil || a.End[0] != 120 {
		Te.Errorf("wrong constraint arrays %+v", a)
	}
	if conf.Calc.NProcs != 1 || conf.Calc.Memory != "1gb" {
		Te.Errorf("defaults not applied: %v %v", conf.Calc.NProcs, conf.Calc.Memory)
	}
	if _, err := LoadConfig(setup(Te, `software = "orca"`)); !errors.Is(err, chem.MissingParameter) {
		Te.Errorf("a request without structure should be a missing parameter, got %v", err)
	}
	if _, err := LoadConfig(setup(Te, `software = "orca`)); !errors.Is(err, chem.InvalidParameter) {
		Te.Errorf("broken TOML should be an invalid parameter, got %v", err)
	}
}

func TestRun(Te *testing.T) {
	req := setup(Te, `
software = "orca"
method = "b3lyp"
basis_set = "def2-svp"
solvent = "water"
solvation_model = "cpcm"
type = "scan"
xyz = "chain.xyz"
constraints = "scan_end=120_count=3/1_2_3"
memory = 2000
`)
	conf, err := LoadConfig(req)
	if err != nil {
		Te.Fatal(err)
	}
	dir := filepath.Dir(req)
	cmd := new(strings.Builder)
	diag, err := run(conf, synonym.Default(), dir, nil, cmd)
	if err != nil {
		Te.Fatal(err)
	}
	if len(diag.From("solvation radii")) != 1 {
		Te.Errorf("expected an advisory on the solvation radii, got %v", diag)
	}
	inp, err := os.ReadFile(filepath.Join(dir, "calc.inp"))
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.HasPrefix(string(inp), "! B3LYP def2-SVP Opt CPCM(Water)\n") || !strings.Contains(string(inp), "A 0 1 2 = 90.000, 120.000, 4\n") {
		Te.Errorf("wrong ORCA input:\n%s", inp)
	}
	if cmd.Len() != 0 {
		Te.Errorf("no command expected for ORCA, got %q", cmd.String())
	}
}

func TestRunXTB(Te *testing.T) {
	req := setup(Te, `
software = "xtb"
method = "gfn2"
type = "reaction path"
xyz = "water.xyz"
aux_xyz = "water.xyz"
aux_name = "product"
nprocs = "2"
charge = "0"
`)
	conf, err := LoadConfig(req)
	if err != nil {
		Te.Fatal(err)
	}
	dir := filepath.Dir(req)
	cmd := new(strings.Builder)
	out := new(strings.Builder)
	if _, err := run(conf, nil, dir, out, cmd); err != nil {
		Te.Fatal(err)
	}
	if out.String() != "$chrg 0\n$spin 0\n$end\n" {
		Te.Errorf("wrong xtb input %q", out.String())
	}
	if cmd.String() != "xtb calc.xyz --path product.xyz --gfn 2 --chrg 0 --uhf 0 -P 2 --input calc.inp\n" {
		Te.Errorf("wrong command %q", cmd.String())
	}
	for _, name := range []string{"calc.xyz", "product.xyz"} {
		S, err := chem.XYZFileRead(filepath.Join(dir, name))
		if err != nil {
			Te.Fatal(err)
		}
		if S.Len() != 3 || S.Symbol(0) != "O" {
			Te.Errorf("wrong structure in %s", name)
		}
	}
	conf.Params.Method = "b3lyp"
	if _, err := run(conf, nil, dir, out, cmd); !errors.Is(err, chem.ImpossibleCalculation) {
		Te.Errorf("DFT in xtb should be impossible, got %v", err)
	}
}

func TestListNames(Te *testing.T) {
	b := new(strings.Builder)
	if err := listNames(b, synonym.Default(), "Software"); err != nil {
		Te.Fatal(err)
	}
	want := "gaussian             Gaussian\nnwchem               NWChem\norca                 ORCA\nxtb                  xtb\n"
	if b.String() != want {
		Te.Errorf("got %q, want %q", b.String(), want)
	}
	if err := listNames(b, synonym.Default(), "colors"); !errors.Is(err, chem.InvalidParameter) {
		Te.Errorf("expected an invalid parameter, got %v", err)
	}
}
