/*
 * main.go, part of goccinput.
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

//goccinput reads a calculation request from a TOML file, validates it and
//writes the input for the requested program.
//
//	goccinput [flags] request.toml
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	chem "github.com/goccinput/goccinput"
	"github.com/goccinput/goccinput/qm"
	"github.com/goccinput/goccinput/synonym"
)

// Flags
var (
	outDir     = flag.String("dir", ".", "directory where the input files are written")
	stdout     = flag.Bool("stdout", false, "write the main input to the standard output instead of a file")
	tablesFile = flag.String("tables", "", "TOML file with lookup tables to use instead of the built-in ones")
	list       = flag.String("list", "", "print the known names of a domain and exit: software, method, basis, solvent, model, radii or type")
	quiet      = flag.Bool("quiet", false, "don't print advisories")
)

var listDomains = map[string]synonym.Domain{
	"software": synonym.Software,
	"method":   synonym.Method,
	"basis":    synonym.BasisSet,
	"solvent":  synonym.Solvent,
	"model":    synonym.SolvationModel,
	"radii":    synonym.SolvationRadii,
	"type":     synonym.CalcType,
}

//extensions of the main input file for each program
var extensions = map[string]string{
	"orca":     ".inp",
	"gaussian": ".com",
	"xtb":      ".inp",
	"nwchem":   ".nw",
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("goccinput: ")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] request.toml\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	T, err := loadTables(*tablesFile)
	if err != nil {
		log.Fatal(err)
	}
	if *list != "" {
		if err := listNames(os.Stdout, T, *list); err != nil {
			log.Fatal(err)
		}
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	conf, err := LoadConfig(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	var out io.Writer
	if *stdout {
		out = os.Stdout
	}
	diag, err := run(conf, T, *outDir, out, os.Stdout)
	if !*quiet {
		for _, a := range diag {
			log.Printf("%s", a)
		}
	}
	if err != nil {
		if e, ok := err.(*chem.Error); ok {
			log.Fatalf("%s (in %s)", e, e.Trace())
		}
		log.Fatal(err)
	}
}

func loadTables(filename string) (*synonym.Tables, error) {
	if filename == "" {
		return synonym.Default(), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, chem.NewError(chem.InvalidParameter, "loadTables", "can't open %s: %s", filename, err.Error())
	}
	defer f.Close()
	return synonym.Load(f)
}

//listNames prints the canonical ids of a domain, with their preferred names.
func listNames(w io.Writer, T *synonym.Tables, domain string) error {
	d, ok := listDomains[strings.ToLower(domain)]
	if !ok {
		return chem.NewError(chem.InvalidParameter, "listNames", "unknown domain %q", domain)
	}
	for _, c := range T.Canonicals(d) {
		fmt.Fprintf(w, "%-20s %s\n", c, T.Preferred(d, c))
	}
	return nil
}

//run validates conf and writes the input files to dir. If out is not nil, the main
//input is written to it instead. The command line for xtb is written to cmd.
//It returns all the advisories produced, also when it fails.
func run(conf Config, T *synonym.Tables, dir string, out, cmd io.Writer) (qm.Diagnostics, error) {
	P, diag, err := qm.NewParameters(conf.Params, T)
	if err != nil {
		return diag, err
	}
	conf.Calc.Params = P
	C, cdiag, err := qm.NewCalculation(conf.Calc)
	diag = append(diag, cdiag...)
	if err != nil {
		return diag, err
	}
	H, err := qm.HandleFor(P.Software())
	if err != nil {
		return diag, err
	}
	if out == nil {
		name := filepath.Join(dir, C.Name()+extensions[P.Software()])
		f, err := os.Create(name)
		if err != nil {
			return diag, chem.NewError(chem.InvalidParameter, "run", "can't create %s: %s", name, err.Error())
		}
		defer f.Close()
		out = f
	}
	if err = H.BuildInput(out, C); err != nil {
		return diag, err
	}
	//xtb reads the structures from their own files, and so do ORCA and xtb
	//for the final point of a path.
	if P.Software() == "xtb" {
		if err = chem.XYZFileWrite(filepath.Join(dir, C.Name()+".xyz"), C.Structure()); err != nil {
			return diag, err
		}
		x, ok := H.(*qm.XTBHandle)
		if !ok {
			return diag, chem.NewError(chem.InternalError, "run", "wrong handle %T for xtb", H)
		}
		command, err := x.Command(C)
		if err != nil {
			return diag, err
		}
		fmt.Fprintln(cmd, command)
	}
	if aux := C.AuxStructure(); aux != nil {
		if err = chem.XYZFileWrite(filepath.Join(dir, C.AuxName()+".xyz"), aux); err != nil {
			return diag, err
		}
	}
	return diag, nil
}
