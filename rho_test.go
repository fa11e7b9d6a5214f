/*
 * rho_test.go, part of gorho.
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

package rho

import (
	"math"
	"testing"

	"github.com/rmera/gorho/chgcar"
	"github.com/rmera/gorho/crystal"
	"gonum.org/v1/gonum/mat"
)

//cubicAggregate builds a one-atom aggregate on an a-edged cubic cell
//with an n^3 grid filled by fill(i,j,k), declared under the given
//scheme.
func cubicAggregate(Te *testing.T, a float64, n int, fill func(i, j, k int) float64, norm Normalization) *ChargeDensity {
	lat, err := crystal.NewLattice([]float64{a, 0, 0, 0, a, 0, 0, 0, a})
	if err != nil {
		Te.Fatal(err)
	}
	st, err := crystal.NewStructure(lat, []string{"Si"}, mat.NewDense(1, 3, []float64{0, 0, 0}))
	if err != nil {
		Te.Fatal(err)
	}
	data := make([]float64, n*n*n)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				data[i+n*(j+n*k)] = fill(i, j, k)
			}
		}
	}
	p, err := NewPGrid(lat, data, n, n, n)
	if err != nil {
		Te.Fatal(err)
	}
	cd, err := NewChargeDensity(map[string]*PGrid{"total": p}, st, norm)
	if err != nil {
		Te.Fatal(err)
	}
	return cd
}

func TestParseNormalization(Te *testing.T) {
	for _, s := range []string{"none", "N", "nope"} {
		n, err := ParseNormalization(s)
		if err != nil || n != NormNone {
			Te.Errorf("%q: got %v, %v", s, n, err)
		}
	}
	for _, s := range []string{"vasp", "volume", "V", ""} {
		n, err := ParseNormalization(s)
		if err != nil || n != NormVolume {
			Te.Errorf("%q: got %v, %v", s, n, err)
		}
	}
	if _, err := ParseNormalization("banana"); !IsScheme(err) {
		Te.Errorf("expected a scheme error, got %v", err)
	}
}

//TestNormalizationRoundTrip builds an aggregate from stored-scale data
//and checks that exporting recovers the stored values exactly, for both
//schemes.
func TestNormalizationRoundTrip(Te *testing.T) {
	stored := func(i, j, k int) float64 { return float64(1 + i + 2*j + 4*k) }
	for _, norm := range []Normalization{NormVolume, NormNone} {
		cd := cubicAggregate(Te, 2, 2, stored, norm) //volume 8
		p, err := cd.Grid("total")
		if err != nil {
			Te.Fatal(err)
		}
		if norm == NormVolume && math.Abs(p.At(1, 0, 0)-2.0/8) > 1e-12 {
			Te.Errorf("forward normalization: got %f, want %f", p.At(1, 0, 0), 2.0/8)
		}
		v, err := cd.ToVolumetric()
		if err != nil {
			Te.Fatal(err)
		}
		out := v.Data["total"]
		for k := 0; k < 2; k++ {
			for j := 0; j < 2; j++ {
				for i := 0; i < 2; i++ {
					want := stored(i, j, k)
					got := out[i+2*(j+2*k)]
					if math.Abs(got-want) > 1e-12 {
						Te.Errorf("scheme %v: stored value (%d %d %d) came back as %f, want %f", norm, i, j, k, got, want)
					}
				}
			}
		}
		//and back in again
		cd2, err := FromVolumetric(v, norm)
		if err != nil {
			Te.Fatal(err)
		}
		p2, err := cd2.Grid("total")
		if err != nil {
			Te.Fatal(err)
		}
		if math.Abs(p2.At(1, 1, 1)-p.At(1, 1, 1)) > 1e-12 {
			Te.Errorf("scheme %v: reimport changed the physical data", norm)
		}
	}
}

//TestLatticeInvariant checks that grids on a lattice that disagrees
//with the structure's are rejected.
func TestLatticeInvariant(Te *testing.T) {
	lat, _ := crystal.NewLattice([]float64{2, 0, 0, 0, 2, 0, 0, 0, 2})
	scaled, _ := crystal.NewLattice([]float64{2.02, 0, 0, 0, 2.02, 0, 0, 0, 2.02})
	st, err := crystal.NewStructure(lat, []string{"Si"}, mat.NewDense(1, 3, []float64{0, 0, 0}))
	if err != nil {
		Te.Fatal(err)
	}
	data := make([]float64, 8)
	good, _ := NewPGrid(lat, data, 2, 2, 2)
	bad, _ := NewPGrid(scaled, data, 2, 2, 2)
	_, err = NewChargeDensity(map[string]*PGrid{"total": good, "diff": bad}, st, NormVolume)
	if !IsInvariant(err) {
		Te.Errorf("expected an invariant error, got %v", err)
	}
}

func TestPGridShape(Te *testing.T) {
	lat, _ := crystal.NewLattice([]float64{2, 0, 0, 0, 2, 0, 0, 0, 2})
	if _, err := NewPGrid(lat, make([]float64, 7), 2, 2, 2); !IsShape(err) {
		Te.Errorf("expected a shape error for a short slice, got %v", err)
	}
	if _, err := NewPGrid(lat, nil, 2, 0, 2); !IsShape(err) {
		Te.Errorf("expected a shape error for a zero dimension, got %v", err)
	}
}

func TestIntegrated(Te *testing.T) {
	//physical density 3 everywhere on a volume-8 cell
	cd := cubicAggregate(Te, 2, 4, func(i, j, k int) float64 { return 3 }, NormNone)
	nelect, err := cd.Integrated("total")
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(nelect-24) > 1e-10 {
		Te.Errorf("integral over the cell: got %f, want 24", nelect)
	}
	if _, err := cd.Integrated("missing"); err == nil {
		Te.Error("expected an error for a missing field")
	}
}

//TestAugCarriedThrough checks that augmentation blocks read from a
//volumetric source survive the round trip back out, and come out of a
//supercell expansion replicated and renumbered.
func TestAugCarriedThrough(Te *testing.T) {
	lat, err := crystal.NewLattice([]float64{2, 0, 0, 0, 2, 0, 0, 0, 2})
	if err != nil {
		Te.Fatal(err)
	}
	st, err := crystal.NewStructure(lat, []string{"Si"}, mat.NewDense(1, 3, []float64{0, 0, 0}))
	if err != nil {
		Te.Fatal(err)
	}
	blocks := []string{
		"augmentation occupancies   1   4",
		"  0.27  -0.33   0.01   0.70",
		"augmentation occupancies   2   4",
		"  0.11   0.22   0.33   0.44",
	}
	v := &chgcar.Volumetric{
		Structure: st,
		Dims:      [3]int{2, 2, 2},
		Data:      map[string][]float64{"total": {1, 2, 3, 4, 5, 6, 7, 8}},
		Aug:       map[string][]string{"total": append([]string{}, blocks...)},
	}
	cd, err := FromVolumetric(v, NormVolume)
	if err != nil {
		Te.Fatal(err)
	}
	if got := cd.AugLines("total"); len(got) != 4 || got[0] != blocks[0] {
		Te.Fatalf("augmentation blocks not carried on import: %v", got)
	}
	w, err := cd.ToVolumetric()
	if err != nil {
		Te.Fatal(err)
	}
	for i, l := range blocks {
		if w.Aug["total"][i] != l {
			Te.Errorf("export line %d: got %q, want %q", i, w.Aug["total"][i], l)
		}
	}
	//a doubling replicates each block once per unit cell, renumbered
	out, err := cd.Transformed([3][3]float64{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}}, [3]float64{0, 0, 0}, [3]int{4, 2, 2}, 1)
	if err != nil {
		Te.Fatal(err)
	}
	aug := out.AugLines("total")
	if len(aug) != 8 {
		Te.Fatalf("expected 8 augmentation lines after doubling, got %d: %v", len(aug), aug)
	}
	for b, want := range []string{
		"augmentation occupancies   1   4",
		"augmentation occupancies   2   4",
		"augmentation occupancies   3   4",
		"augmentation occupancies   4   4",
	} {
		if aug[2*b] != want {
			Te.Errorf("header %d: got %q, want %q", b, aug[2*b], want)
		}
	}
	ov, err := out.ToVolumetric()
	if err != nil {
		Te.Fatal(err)
	}
	if len(ov.Aug["total"]) != 8 {
		Te.Errorf("expanded augmentation blocks not exported: %v", ov.Aug["total"])
	}
	if len(cd.Reoriented().AugLines("total")) != 4 {
		Te.Error("reorientation dropped the augmentation blocks")
	}
}

//TestReorientedAggregate checks the reorientation of a full aggregate:
//same parameters, same data, canonical basis, idempotent.
func TestReorientedAggregate(Te *testing.T) {
	lat, err := crystal.NewLattice([]float64{3, 0, 0, 1, 3, 0, 0.5, 0.5, 3})
	if err != nil {
		Te.Fatal(err)
	}
	st, err := crystal.NewStructure(lat, []string{"Si"}, mat.NewDense(1, 3, []float64{0.25, 0.25, 0.25}))
	if err != nil {
		Te.Fatal(err)
	}
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	p, err := NewPGrid(lat, data, 2, 2, 2)
	if err != nil {
		Te.Fatal(err)
	}
	cd, err := NewChargeDensity(map[string]*PGrid{"total": p}, st, NormNone)
	if err != nil {
		Te.Fatal(err)
	}
	r := cd.Reoriented()
	if math.Abs(r.Structure().Volume()-cd.Structure().Volume()) > 1e-9 {
		Te.Error("reorientation changed the cell volume")
	}
	rp, err := r.Grid("total")
	if err != nil {
		Te.Fatal(err)
	}
	if rp.At(1, 1, 1) != p.At(1, 1, 1) {
		Te.Error("reorientation touched the grid data")
	}
	m := r.Lattice().Matrix()
	if math.Abs(m.At(0, 1)) > 1e-12 || math.Abs(m.At(0, 2)) > 1e-12 || math.Abs(m.At(1, 2)) > 1e-12 {
		Te.Error("reoriented lattice is not canonical")
	}
	rr := r.Reoriented()
	if !rr.Lattice().AllClose(r.Lattice(), 1e-10) {
		Te.Error("reorientation is not idempotent on the aggregate")
	}
}
