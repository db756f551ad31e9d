/*
 * load.go, part of goccinput.
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
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	chem "github.com/goccinput/goccinput"
	"github.com/goccinput/goccinput/constraint"
	"github.com/goccinput/goccinput/qm"
)

//RawExtras is the [extras] table of a request file.
type RawExtras struct {
	DensityFitting bool   `toml:"density_fitting"`
	RIJCOSX        bool   `toml:"rijcosx"`
	AuxBasisSet    string `toml:"aux_basis_set"`
	Grid           int    `toml:"grid"`
	SCFTightness   int    `toml:"scf_tightness"`
	SCFConvHelp    int    `toml:"scf_conv_help"`
	Guess          string `toml:"guess"`
}

//RawArrays is the [constraint_arrays] table of a request file. Missing scan
//values are given as "nan" for start, end and step, and as 0 for count.
type RawArrays struct {
	Freeze [][]int   `toml:"freeze"`
	Scan   [][]int   `toml:"scan"`
	Start  []float64 `toml:"start"`
	End    []float64 `toml:"end"`
	Step   []float64 `toml:"step"`
	Count  []int     `toml:"count"`
}

//RawConf is a request file as read. The numeric fields of the calculation
//are left untyped, so they can be given as numbers or as strings ("16 GB").
type RawConf struct {
	Software        string `toml:"software"`
	Method          string `toml:"method"`
	BasisSet        string `toml:"basis_set"`
	Solvent         string `toml:"solvent"`
	SolvationModel  string `toml:"solvation_model"`
	SolvationRadii  string `toml:"solvation_radii"`
	D3              bool   `toml:"d3"`
	D3BJ            bool   `toml:"d3bj"`
	Specifications  string `toml:"specifications"`
	CustomBasisSets string `toml:"custom_basis_sets"`

	Extras RawExtras `toml:"extras"`

	Type             string      `toml:"type"`
	XYZ              string      `toml:"xyz"`
	AuxXYZ           string      `toml:"aux_xyz"`
	NProcs           interface{} `toml:"nprocs"`
	Memory           interface{} `toml:"memory"`
	Charge           interface{} `toml:"charge"`
	Multiplicity     interface{} `toml:"multiplicity"`
	Constraints      string      `toml:"constraints"`
	ConstraintArrays *RawArrays  `toml:"constraint_arrays"`
	Name             string      `toml:"name"`
	Header           string      `toml:"header"`
	AuxName          string      `toml:"aux_name"`
}

//Config is a request ready to be validated: the level of theory and the calculation
//with its structures already read. The Params field of Calc is set later, once
//the Parameters are built.
type Config struct {
	Params qm.ParamsRequest
	Calc   qm.CalcRequest
}

//ToConfig reads the structure files of rc, relative to dir, and returns the Config.
func (rc RawConf) ToConfig(dir string) (conf Config, err error) {
	conf.Params = qm.ParamsRequest{
		Software:        rc.Software,
		Method:          rc.Method,
		BasisSet:        rc.BasisSet,
		Solvent:         rc.Solvent,
		SolvationModel:  rc.SolvationModel,
		SolvationRadii:  rc.SolvationRadii,
		D3:              rc.D3,
		D3BJ:            rc.D3BJ,
		Specifications:  rc.Specifications,
		CustomBasisSets: rc.CustomBasisSets,
		Extras:          qm.Extras(rc.Extras),
	}
	conf.Calc = qm.CalcRequest{
		Type:         rc.Type,
		NProcs:       rc.NProcs,
		Memory:       rc.Memory,
		Charge:       rc.Charge,
		Multiplicity: rc.Multiplicity,
		Constraints:  rc.Constraints,
		Name:         rc.Name,
		Header:       rc.Header,
		AuxName:      rc.AuxName,
	}
	if a := rc.ConstraintArrays; a != nil {
		conf.Calc.ConstraintArrays = &constraint.Arrays{
			Freeze: a.Freeze,
			Scan:   a.Scan,
			Start:  optional(a.Start),
			End:    optional(a.End),
			Step:   optional(a.Step),
			Count:  a.Count,
		}
	}
	if rc.XYZ == "" {
		return conf, chem.NewError(chem.MissingParameter, "ToConfig", "no structure file given")
	}
	if conf.Calc.Structure, err = chem.XYZFileRead(relative(dir, rc.XYZ)); err != nil {
		return conf, chem.ErrDecorate(err, "ToConfig")
	}
	if rc.AuxXYZ != "" {
		if conf.Calc.AuxStructure, err = chem.XYZFileRead(relative(dir, rc.AuxXYZ)); err != nil {
			return conf, chem.ErrDecorate(err, "ToConfig")
		}
	}
	return conf, nil
}

//optional returns nil for an empty slice, so an empty TOML array means "not given".
func optional(s []float64) []float64 {
	if len(s) == 0 {
		return nil
	}
	return s
}

func relative(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

//LoadConfig reads the request file filename. Structure files are looked for
//relative to the directory of filename.
func LoadConfig(filename string) (Config, error) {
	cont, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, chem.NewError(chem.InvalidParameter, "LoadConfig", "can't read %s: %s", filename, err.Error())
	}
	//Defaults
	rc := RawConf{
		NProcs: 1,
		Memory: "1gb",
	}
	if err = toml.Unmarshal(cont, &rc); err != nil {
		return Config{}, chem.NewError(chem.InvalidParameter, "LoadConfig", "can't parse %s: %s", filename, err.Error())
	}
	return rc.ToConfig(filepath.Dir(filename))
}
