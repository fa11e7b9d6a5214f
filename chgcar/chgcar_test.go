/*
 * chgcar_test.go, part of gorho.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
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

package chgcar

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
)

//TestRead parses the fixture file and checks the header, both data sets
//and the augmentation blocks.
func TestRead(Te *testing.T) {
	v, err := Read("../test/CHGCAR")
	if err != nil {
		Te.Fatal(err)
	}
	if v.Comment != "NaCl test cell" {
		Te.Errorf("bad comment: %q", v.Comment)
	}
	if v.Dims != [3]int{2, 2, 2} {
		Te.Errorf("bad dims: %v", v.Dims)
	}
	s := v.Structure
	if s.Len() != 2 || s.Species(0) != "Na" || s.Species(1) != "Cl" {
		Te.Errorf("bad structure: %d sites, %v", s.Len(), s.SpeciesList())
	}
	a, b, c := s.Lattice().Abc()
	if math.Abs(a-4) > 1e-9 || math.Abs(b-4) > 1e-9 || math.Abs(c-4) > 1e-9 {
		Te.Errorf("bad lattice lengths: %f %f %f", a, b, c)
	}
	total, ok := v.Data["total"]
	if !ok || len(total) != 8 {
		Te.Fatalf("bad total data set: %v", total)
	}
	for i, want := range []float64{1, 2, 3, 4, 5, 6, 7, 8} {
		if math.Abs(total[i]-want) > 1e-12 {
			Te.Errorf("total[%d] = %f, want %f", i, total[i], want)
		}
	}
	diff, ok := v.Data["diff"]
	if !ok || len(diff) != 8 {
		Te.Fatalf("bad diff data set: %v", diff)
	}
	if math.Abs(diff[7]-0.8) > 1e-12 {
		Te.Errorf("diff[7] = %f, want 0.8", diff[7])
	}
	aug := v.Aug["total"]
	if len(aug) != 4 {
		Te.Fatalf("expected 4 augmentation lines after total, got %d: %v", len(aug), aug)
	}
	if !strings.Contains(aug[0], "augmentation occupancies") {
		Te.Errorf("first augmentation line looks wrong: %q", aug[0])
	}
	if len(v.Aug["diff"]) != 0 {
		Te.Errorf("unexpected augmentation lines after diff: %v", v.Aug["diff"])
	}
}

//TestWriteReadRoundTrip writes a volumetric set to disk, plain and
//compressed, and reads it back.
func TestWriteReadRoundTrip(Te *testing.T) {
	v, err := Read("../test/CHGCAR")
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	for _, name := range []string{"CHGCAR", "CHGCAR.gz", "CHGCAR.zst"} {
		fname := filepath.Join(dir, name)
		if err := v.Write(fname); err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		w, err := Read(fname)
		if err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		if w.Dims != v.Dims {
			Te.Errorf("%s: dims changed: %v vs %v", name, w.Dims, v.Dims)
		}
		if w.Structure.Len() != v.Structure.Len() {
			Te.Errorf("%s: site count changed", name)
		}
		for _, key := range []string{"total", "diff"} {
			for i := range v.Data[key] {
				if math.Abs(w.Data[key][i]-v.Data[key][i]) > 1e-10 {
					Te.Errorf("%s: %q value %d changed: %g vs %g", name, key, i, w.Data[key][i], v.Data[key][i])
				}
			}
		}
		if len(w.Aug["total"]) != len(v.Aug["total"]) {
			Te.Errorf("%s: augmentation lines not preserved: %d vs %d", name, len(w.Aug["total"]), len(v.Aug["total"]))
		}
	}
}

//TestWriteTotalOnly writes a set without a diff grid; the reader must
//come back with exactly one data set.
func TestWriteTotalOnly(Te *testing.T) {
	v, err := Read("../test/CHGCAR")
	if err != nil {
		Te.Fatal(err)
	}
	delete(v.Data, "diff")
	fname := filepath.Join(Te.TempDir(), "CHGCAR")
	if err := v.Write(fname); err != nil {
		Te.Fatal(err)
	}
	w, err := Read(fname)
	if err != nil {
		Te.Fatal(err)
	}
	if _, ok := w.Data["diff"]; ok {
		Te.Error("a diff data set appeared out of nowhere")
	}
	if len(w.Data["total"]) != 8 {
		Te.Errorf("bad total data set: %v", w.Data["total"])
	}
}

//TestWriteBadData drives Write down its data-length error branch and
//then reuses the same path, which only works if the failed write
//released its file and compressor.
func TestWriteBadData(Te *testing.T) {
	v, err := Read("../test/CHGCAR")
	if err != nil {
		Te.Fatal(err)
	}
	fname := filepath.Join(Te.TempDir(), "CHGCAR.zst")
	good := v.Data["total"]
	v.Data["total"] = good[:4]
	if err := v.Write(fname); err == nil {
		Te.Fatal("expected an error for a short data set")
	}
	v.Data["total"] = good
	if err := v.Write(fname); err != nil {
		Te.Fatalf("rewrite after a failed write: %v", err)
	}
	w, err := Read(fname)
	if err != nil {
		Te.Fatal(err)
	}
	if len(w.Data["total"]) != 8 {
		Te.Errorf("bad total data set after rewrite: %v", w.Data["total"])
	}
}

func TestReadMissing(Te *testing.T) {
	_, err := Read("../test/no_such_file")
	if err == nil {
		Te.Fatal("expected an error for a missing file")
	}
	e, ok := err.(*Error)
	if !ok {
		Te.Fatalf("expected a chgcar error, got %T", err)
	}
	if e.FileName() != "../test/no_such_file" {
		Te.Errorf("error carries the wrong file name: %q", e.FileName())
	}
}

func TestParseDims(Te *testing.T) {
	if d, err := parseDims("  2  3  4 "); err != nil || d != [3]int{2, 3, 4} {
		Te.Errorf("got %v, %v", d, err)
	}
	for _, bad := range []string{"2 3", "2 3 4 5", "2 3 x", "2 3 0", "2 3 -1", "0.27 -0.33 0.01"} {
		if _, err := parseDims(bad); err == nil {
			Te.Errorf("%q parsed as a dims line", bad)
		}
	}
}
