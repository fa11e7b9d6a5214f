/*
 * fourier.go, part of gorho.
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

//fourier.go holds the frequency-domain resampling engine: the 3D FFT
//plumbing over gonum's dsp/fourier, the zero-padding up-sampler, and the
//periodic-grid transformation that maps a field onto a supercell.

package rho

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

//maxWorkElements bounds the number of complex samples in a resampling
//working grid. Anything larger fails fast, before allocation, instead
//of taking the process down mid-transform.
const maxWorkElements = 1 << 27

//fft3 transforms data in place along the three axes of an nx*ny*nz grid
//stored first-axis fastest. The forward direction computes unnormalized
//Fourier coefficients; the inverse leaves the result scaled by
//nx*ny*nz, as gonum's CmplxFFT does in 1D.
func fft3(data []complex128, nx, ny, nz int, inverse bool) {
	fx := fourier.NewCmplxFFT(nx)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			line := data[nx*(j+ny*k) : nx*(j+ny*k)+nx]
			if inverse {
				fx.Sequence(line, line)
			} else {
				fx.Coefficients(line, line)
			}
		}
	}
	fy := fourier.NewCmplxFFT(ny)
	buf := make([]complex128, ny)
	for k := 0; k < nz; k++ {
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				buf[j] = data[i+nx*(j+ny*k)]
			}
			if inverse {
				fy.Sequence(buf, buf)
			} else {
				fy.Coefficients(buf, buf)
			}
			for j := 0; j < ny; j++ {
				data[i+nx*(j+ny*k)] = buf[j]
			}
		}
	}
	fz := fourier.NewCmplxFFT(nz)
	if nz > ny {
		buf = make([]complex128, nz)
	} else {
		buf = buf[:nz]
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			for k := 0; k < nz; k++ {
				buf[k] = data[i+nx*(j+ny*k)]
			}
			if inverse {
				fz.Sequence(buf, buf)
			} else {
				fz.Coefficients(buf, buf)
			}
			for k := 0; k < nz; k++ {
				data[i+nx*(j+ny*k)] = buf[k]
			}
		}
	}
}

//freqTargets maps the FFT bin index src of an n-point axis onto the
//bins of a larger N-point axis, by signed frequency. The Nyquist bin of
//an even n is split symmetrically between +n/2 and -n/2 so a real field
//stays real after padding.
func freqTargets(src, n, N int) (idx [2]int, w [2]float64, cnt int) {
	g := src
	if g > n/2 {
		g -= n
	}
	if n%2 == 0 && g == n/2 {
		idx[0] = n / 2
		idx[1] = ((-n/2)%N + N) % N
		w[0], w[1] = 0.5, 0.5
		return idx, w, 2
	}
	idx[0] = (g%N + N) % N
	w[0] = 1
	return idx, w, 1
}

//fourierUpsampled resamples data onto a grid up times finer along every
//axis by zero-padding its Fourier coefficients, the pure interpolation
//for a periodic band-limited field. It reproduces the original samples
//exactly at the coincident points. up must be at least 1; up == 1
//returns a plain copy.
func fourierUpsampled(data []float64, nx, ny, nz, up int) ([]float64, error) {
	if up < 1 {
		return nil, newError(KindShape, fmt.Sprintf("up-sampling factor must be at least 1, got %d", up), "fourierUpsampled")
	}
	if up == 1 {
		out := make([]float64, len(data))
		copy(out, data)
		return out, nil
	}
	wx, wy, wz := nx*up, ny*up, nz*up
	welems := wx * wy * wz
	if welems > maxWorkElements || welems < 0 {
		return nil, newError(KindResource, fmt.Sprintf("up-sampled working grid %dx%dx%d exceeds the %d-element budget", wx, wy, wz, maxWorkElements), "fourierUpsampled")
	}
	small := make([]complex128, len(data))
	for i, v := range data {
		small[i] = complex(v, 0)
	}
	fft3(small, nx, ny, nz, false)
	big := make([]complex128, welems)
	for k := 0; k < nz; k++ {
		zi, zw, zc := freqTargets(k, nz, wz)
		for j := 0; j < ny; j++ {
			yi, yw, yc := freqTargets(j, ny, wy)
			for i := 0; i < nx; i++ {
				xi, xw, xc := freqTargets(i, nx, wx)
				c := small[i+nx*(j+ny*k)]
				for a := 0; a < xc; a++ {
					for b := 0; b < yc; b++ {
						for d := 0; d < zc; d++ {
							w := xw[a] * yw[b] * zw[d]
							big[xi[a]+wx*(yi[b]+wy*zi[d])] += c * complex(w, 0)
						}
					}
				}
			}
		}
	}
	fft3(big, wx, wy, wz, true)
	//the forward pass contributed a factor of nx*ny*nz
	norm := 1 / float64(nx*ny*nz)
	out := make([]float64, welems)
	for i, v := range big {
		out[i] = real(v) * norm
	}
	return out, nil
}

//triLinear evaluates the periodic grid at the fractional coordinate
//(fx, fy, fz), each in [0, 1), by trilinear interpolation with
//wrap-around.
func triLinear(data []float64, nx, ny, nz int, fx, fy, fz float64) float64 {
	ux := fx * float64(nx)
	uy := fy * float64(ny)
	uz := fz * float64(nz)
	ix := int(math.Floor(ux))
	iy := int(math.Floor(uy))
	iz := int(math.Floor(uz))
	tx := ux - float64(ix)
	ty := uy - float64(iy)
	tz := uz - float64(iz)
	ix %= nx
	iy %= ny
	iz %= nz
	ix1 := (ix + 1) % nx
	iy1 := (iy + 1) % ny
	iz1 := (iz + 1) % nz
	var v float64
	v += data[ix+nx*(iy+ny*iz)] * (1 - tx) * (1 - ty) * (1 - tz)
	v += data[ix1+nx*(iy+ny*iz)] * tx * (1 - ty) * (1 - tz)
	v += data[ix+nx*(iy1+ny*iz)] * (1 - tx) * ty * (1 - tz)
	v += data[ix1+nx*(iy1+ny*iz)] * tx * ty * (1 - tz)
	v += data[ix+nx*(iy+ny*iz1)] * (1 - tx) * (1 - ty) * tz
	v += data[ix1+nx*(iy+ny*iz1)] * tx * (1 - ty) * tz
	v += data[ix+nx*(iy1+ny*iz1)] * (1 - tx) * ty * tz
	v += data[ix1+nx*(iy1+ny*iz1)] * tx * ty * tz
	return v
}

//Transformed resamples the field onto the supercell described by the
//integer matrix sc, after a fractional origin shift of the underlying
//cell, producing a new grid with the requested dimensions. upSample
//sets the working resolution of the frequency-domain up-sampling step:
//1 interpolates the stored samples directly, larger values reduce the
//interpolation error for incommensurate grid spacings at the price of
//memory and compute. Values at sample points coincident with the
//original grid are reproduced exactly.
func (p *PGrid) Transformed(sc [3][3]int, origin [3]float64, dims [3]int, upSample int) (*PGrid, error) {
	if dims[0] < 1 || dims[1] < 1 || dims[2] < 1 {
		return nil, newError(KindShape, fmt.Sprintf("output grid dimensions must be positive, got %d %d %d", dims[0], dims[1], dims[2]), "PGrid.Transformed")
	}
	nout := dims[0] * dims[1] * dims[2]
	if nout > maxWorkElements || nout < 0 {
		return nil, newError(KindResource, fmt.Sprintf("output grid %dx%dx%d exceeds the %d-element budget", dims[0], dims[1], dims[2], maxWorkElements), "PGrid.Transformed")
	}
	work, err := fourierUpsampled(p.data, p.nx, p.ny, p.nz, upSample)
	if err != nil {
		return nil, err
	}
	wx, wy, wz := p.nx*upSample, p.ny*upSample, p.nz*upSample
	var scf [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			scf[i][j] = float64(sc[i][j])
		}
	}
	out := make([]float64, nout)
	for c := 0; c < dims[2]; c++ {
		fz := float64(c) / float64(dims[2])
		for b := 0; b < dims[1]; b++ {
			fy := float64(b) / float64(dims[1])
			for a := 0; a < dims[0]; a++ {
				fx := float64(a) / float64(dims[0])
				//fractional coordinate of this sample in the original cell:
				//f·sc, plus the origin shift, wrapped into [0,1)
				gx := fx*scf[0][0] + fy*scf[1][0] + fz*scf[2][0] + origin[0]
				gy := fx*scf[0][1] + fy*scf[1][1] + fz*scf[2][1] + origin[1]
				gz := fx*scf[0][2] + fy*scf[1][2] + fz*scf[2][2] + origin[2]
				gx -= math.Floor(gx)
				gy -= math.Floor(gy)
				gz -= math.Floor(gz)
				out[a+dims[0]*(b+dims[1]*c)] = triLinear(work, wx, wy, wz, gx, gy, gz)
			}
		}
	}
	newLat := p.lat.Supercell(sc)
	return &PGrid{lat: newLat, data: out, nx: dims[0], ny: dims[1], nz: dims[2]}, nil
}
