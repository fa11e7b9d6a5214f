/*
 * chgcar.go, part of gorho.
 *
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
 *
 * goRho is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

//Package chgcar reads and writes CHGCAR-style volumetric files: a
//structure header in POSCAR form followed by one or two grid data sets
//("total" and, for spin-polarized data, "diff"), each optionally
//trailed by per-site augmentation-occupancy blocks. The package moves
//stored-scale values only; normalization to physical density is the
//caller's business. Files with a .gz or .zst extension are
//transparently (de)compressed.
package chgcar

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gorho/crystal"
	"gonum.org/v1/gonum/mat"
)

//Volumetric is the in-memory form of one volumetric file: the structure,
//the grid dimensions shared by all data sets, the stored-scale sample
//arrays keyed by name ("total", "diff"), and the augmentation line
//blocks that follow each data set, kept verbatim.
type Volumetric struct {
	Structure *crystal.Structure
	Dims      [3]int
	Data      map[string][]float64
	Aug       map[string][]string
	Comment   string
}

//dataKeys is the order in which data sets appear in a file.
var dataKeys = []string{"total", "diff"}

//zstdql adapts a zstd.Decoder, whose Close returns nothing, to
//io.ReadCloser.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (s zstdql) Close() error {
	s.closeql()
	return nil
}

//prepSource opens fname for reading, decompressing according to the
//file extension: .gz for gzip, .zst for z-standard, anything else is
//read as plain text.
func prepSource(fname string) (io.ReadCloser, *os.File, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, nil, &Error{err.Error(), fname, []string{"os.Open", "prepSource"}}
	}
	switch ext(fname) {
	case "gz":
		r, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, nil, &Error{err.Error(), fname, []string{"gzip.NewReader", "prepSource"}}
		}
		return r, f, nil
	case "zst":
		r, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, nil, &Error{err.Error(), fname, []string{"zstd.NewReader", "prepSource"}}
		}
		return zstdql{r.Close, r}, f, nil
	}
	return f, nil, nil
}

//prepSink opens fname for writing, compressing according to the file
//extension, as prepSource does for reading.
func prepSink(fname string) (io.WriteCloser, *os.File, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, nil, &Error{err.Error(), fname, []string{"os.Create", "prepSink"}}
	}
	switch ext(fname) {
	case "gz":
		return gzip.NewWriter(f), f, nil
	case "zst":
		w, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return nil, nil, &Error{err.Error(), fname, []string{"zstd.NewWriter", "prepSink"}}
		}
		return w, f, nil
	}
	return f, nil, nil
}

func ext(fname string) string {
	temp := strings.Split(fname, ".")
	return strings.ToLower(temp[len(temp)-1])
}

//Read parses a volumetric file.
func Read(fname string) (*Volumetric, error) {
	r, f, err := prepSource(fname)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if f != nil {
		defer f.Close()
	}
	v, err := parse(bufio.NewScanner(r), fname)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func parse(scan *bufio.Scanner, fname string) (*Volumetric, error) {
	scan.Buffer(make([]byte, 1024*1024), 1024*1024)
	next := func() (string, bool) {
		if !scan.Scan() {
			return "", false
		}
		return scan.Text(), true
	}
	comment, ok := next()
	if !ok {
		return nil, &Error{"empty file", fname, []string{"Read"}}
	}
	line, ok := next()
	if !ok {
		return nil, &Error{"truncated header", fname, []string{"Read"}}
	}
	scale, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return nil, &Error{"bad scale line: " + err.Error(), fname, []string{"Read"}}
	}
	latdata := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		line, ok = next()
		if !ok {
			return nil, &Error{"truncated lattice", fname, []string{"Read"}}
		}
		row, err := parseFloats(line, 3)
		if err != nil {
			return nil, &Error{fmt.Sprintf("lattice row %d: %s", i+1, err.Error()), fname, []string{"Read"}}
		}
		for _, x := range row {
			latdata = append(latdata, x*scale)
		}
	}
	lat, err := crystal.NewLattice(latdata)
	if err != nil {
		return nil, &Error{err.Error(), fname, []string{"Read"}}
	}
	line, ok = next()
	if !ok {
		return nil, &Error{"truncated species line", fname, []string{"Read"}}
	}
	names := strings.Fields(line)
	line, ok = next()
	if !ok {
		return nil, &Error{"truncated species-count line", fname, []string{"Read"}}
	}
	counts := strings.Fields(line)
	if len(counts) != len(names) {
		return nil, &Error{fmt.Sprintf("%d species names but %d counts", len(names), len(counts)), fname, []string{"Read"}}
	}
	var species []string
	for i, c := range counts {
		n, err := strconv.Atoi(c)
		if err != nil || n < 1 {
			return nil, &Error{"bad species count " + c, fname, []string{"Read"}}
		}
		for j := 0; j < n; j++ {
			species = append(species, names[i])
		}
	}
	line, ok = next()
	if !ok {
		return nil, &Error{"truncated coordinate-mode line", fname, []string{"Read"}}
	}
	mode := strings.TrimSpace(line)
	if mode == "" || (mode[0] != 'd' && mode[0] != 'D') {
		return nil, &Error{"only Direct coordinates are supported, got " + mode, fname, []string{"Read"}}
	}
	fracs := mat.NewDense(len(species), 3, nil)
	for i := range species {
		line, ok = next()
		if !ok {
			return nil, &Error{"truncated coordinates", fname, []string{"Read"}}
		}
		row, err := parseFloats(line, 3)
		if err != nil {
			return nil, &Error{fmt.Sprintf("site %d: %s", i+1, err.Error()), fname, []string{"Read"}}
		}
		fracs.SetRow(i, row)
	}
	structure, err := crystal.NewStructure(lat, species, fracs)
	if err != nil {
		return nil, &Error{err.Error(), fname, []string{"Read"}}
	}
	//blank line(s), then the grid dimensions
	var dims [3]int
	for {
		line, ok = next()
		if !ok {
			return nil, &Error{"no grid dimensions found", fname, []string{"Read"}}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		d, err := parseDims(line)
		if err != nil {
			return nil, &Error{err.Error(), fname, []string{"Read"}}
		}
		dims = d
		break
	}
	v := &Volumetric{
		Structure: structure,
		Dims:      dims,
		Data:      make(map[string][]float64),
		Aug:       make(map[string][]string),
		Comment:   strings.TrimSpace(comment),
	}
	npts := dims[0] * dims[1] * dims[2]
	for _, key := range dataKeys {
		data := make([]float64, 0, npts)
		for len(data) < npts {
			line, ok = next()
			if !ok {
				return nil, &Error{fmt.Sprintf("%q data set truncated at %d of %d values", key, len(data), npts), fname, []string{"Read"}}
			}
			for _, fld := range strings.Fields(line) {
				x, err := strconv.ParseFloat(fld, 64)
				if err != nil {
					return nil, &Error{fmt.Sprintf("bad value in %q data: %s", key, err.Error()), fname, []string{"Read"}}
				}
				data = append(data, x)
			}
		}
		if len(data) != npts {
			return nil, &Error{fmt.Sprintf("%q data set has %d values for a %dx%dx%d grid", key, len(data), dims[0], dims[1], dims[2]), fname, []string{"Read"}}
		}
		v.Data[key] = data
		//augmentation lines, until the dims line of the next data set
		//or the end of the file
		again := false
		for {
			line, ok = next()
			if !ok {
				break
			}
			if d, err := parseDims(line); err == nil && d == dims {
				again = true
				break
			}
			v.Aug[key] = append(v.Aug[key], line)
		}
		if !again {
			break
		}
	}
	if err := scan.Err(); err != nil {
		return nil, &Error{err.Error(), fname, []string{"Read"}}
	}
	return v, nil
}

//Write writes the volumetric data to fname, compressing according to
//the extension. Data sets are written in the canonical order, "total"
//first, then "diff" if present.
func (V *Volumetric) Write(fname string) error {
	for _, key := range dataKeys[:1] { //total is mandatory
		if _, ok := V.Data[key]; !ok {
			return &Error{"no \"total\" data set to write", fname, []string{"Write"}}
		}
	}
	npts := V.Dims[0] * V.Dims[1] * V.Dims[2]
	w, f, err := prepSink(fname)
	if err != nil {
		return err
	}
	//every return path must release the compressor and the file
	closeSink := func() {
		w.Close()
		if f != nil {
			f.Close()
		}
	}
	bw := bufio.NewWriter(w)
	if err := V.writeHeader(bw); err != nil {
		closeSink()
		return &Error{err.Error(), fname, []string{"Write"}}
	}
	for _, key := range dataKeys {
		data, ok := V.Data[key]
		if !ok {
			continue
		}
		if len(data) != npts {
			closeSink()
			return &Error{fmt.Sprintf("%q data set has %d values for a %dx%dx%d grid", key, len(data), V.Dims[0], V.Dims[1], V.Dims[2]), fname, []string{"Write"}}
		}
		fmt.Fprintf(bw, " %4d %4d %4d\n", V.Dims[0], V.Dims[1], V.Dims[2])
		for i, x := range data {
			fmt.Fprintf(bw, " %.11E", x)
			if (i+1)%5 == 0 || i == len(data)-1 {
				bw.WriteByte('\n')
			}
		}
		for _, l := range V.Aug[key] {
			bw.WriteString(l)
			bw.WriteByte('\n')
		}
	}
	if err := bw.Flush(); err != nil {
		closeSink()
		return &Error{err.Error(), fname, []string{"Write"}}
	}
	if err := w.Close(); err != nil {
		if f != nil {
			f.Close()
		}
		return &Error{err.Error(), fname, []string{"Write"}}
	}
	if f != nil {
		return f.Close()
	}
	return nil
}

func (V *Volumetric) writeHeader(w *bufio.Writer) error {
	s := V.Structure
	comment := V.Comment
	if comment == "" {
		comment = "written by gorho"
	}
	fmt.Fprintln(w, comment)
	fmt.Fprintln(w, "   1.00000000000000")
	lat := s.Lattice().Matrix()
	for i := 0; i < 3; i++ {
		fmt.Fprintf(w, " %12.6f %12.6f %12.6f\n", lat.At(i, 0), lat.At(i, 1), lat.At(i, 2))
	}
	//species grouped as consecutive runs, the way the format expects
	names, counts := speciesRuns(s.SpeciesList())
	for _, n := range names {
		fmt.Fprintf(w, " %4s", n)
	}
	w.WriteByte('\n')
	for _, c := range counts {
		fmt.Fprintf(w, " %4d", c)
	}
	w.WriteByte('\n')
	fmt.Fprintln(w, "Direct")
	fracs := s.FracCoords()
	for i := 0; i < s.Len(); i++ {
		fmt.Fprintf(w, " %12.8f %12.8f %12.8f\n", fracs.At(i, 0), fracs.At(i, 1), fracs.At(i, 2))
	}
	w.WriteByte('\n')
	return nil
}

func speciesRuns(species []string) ([]string, []int) {
	var names []string
	var counts []int
	for _, sp := range species {
		if len(names) > 0 && names[len(names)-1] == sp {
			counts[len(counts)-1]++
			continue
		}
		names = append(names, sp)
		counts = append(counts, 1)
	}
	return names, counts
}

func parseFloats(line string, n int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) < n {
		return nil, fmt.Errorf("need %d numbers, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

//parseDims reads a grid-dimension line: exactly three positive integers.
func parseDims(line string) ([3]int, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return [3]int{}, fmt.Errorf("not a grid-dimension line: %q", line)
	}
	var d [3]int
	for i, fld := range fields {
		n, err := strconv.Atoi(fld)
		if err != nil || n < 1 {
			return [3]int{}, fmt.Errorf("not a grid-dimension line: %q", line)
		}
		d[i] = n
	}
	return d, nil
}
