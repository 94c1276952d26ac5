// Command doascan estimates directions of arrival for a synthetic scenario.
//
// Usage:
//
//	doascan [flags]
//
// It builds the ideal covariance matrix of a uniform linear array observing
// far-field sources at the given azimuths, runs a spectrum-based estimator
// over an azimuth search grid, and prints the estimated directions.
//
// Examples:
//
//	doascan -doas -20,35
//	doascan -algorithm bartlett -elements 10 -doas -40,10,55
//	doascan -doas -20,35 -refine -density 20 -iters 4
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-doa/array"
	"github.com/cwbudde/algo-doa/estimation"
	"github.com/cwbudde/algo-doa/grid"
)

func main() {
	elements := flag.Int("elements", 8, "number of array elements")
	spacing := flag.Float64("spacing", 0.5, "element spacing in wavelengths")
	wavelength := flag.Float64("wavelength", 1.0, "carrier wavelength in meters")
	gridSize := flag.Int("grid", 181, "number of search grid points over [-90, 90] degrees")
	doas := flag.String("doas", "-20,35", "true source azimuths in degrees, comma separated")
	power := flag.Float64("power", 1.0, "per-source signal power")
	noise := flag.Float64("noise", 0.01, "noise power")
	algorithm := flag.String("algorithm", "music", "spectrum algorithm (music|bartlett|capon)")
	k := flag.Int("k", 0, "number of sources to estimate (0 = number of true DOAs)")
	refine := flag.Bool("refine", false, "enable grid refinement")
	density := flag.Int("density", estimation.DefaultRefinementDensity, "refinement grid density")
	iters := flag.Int("iters", estimation.DefaultRefinementIters, "refinement iterations")
	flag.Parse()

	trueDOAs, err := parseDOAs(*doas)
	if err != nil {
		fatalf("parse -doas: %v", err)
	}
	if *k == 0 {
		*k = len(trueDOAs)
	}

	design, err := array.NewUniformLinear(*elements, *spacing**wavelength)
	if err != nil {
		fatalf("array design: %v", err)
	}

	r, err := idealCovariance(design, *wavelength, trueDOAs, *power, *noise)
	if err != nil {
		fatalf("covariance: %v", err)
	}

	fsp, err := spectrumFunc(*algorithm, r, *k)
	if err != nil {
		fatalf("%v", err)
	}

	searchGrid, err := grid.NewFarField1D(-math.Pi/2, math.Pi/2, *gridSize)
	if err != nil {
		fatalf("search grid: %v", err)
	}

	est, err := estimation.New(design, *wavelength, searchGrid)
	if err != nil {
		fatalf("estimator: %v", err)
	}

	res, err := est.Estimate(fsp, *k, estimation.Config{
		Refine:            *refine,
		RefinementDensity: *density,
		RefinementIters:   *iters,
	})
	if err != nil {
		fatalf("estimate: %v", err)
	}

	if !res.Resolved {
		fmt.Fprintf(os.Stderr, "unresolved: found fewer than %d spectrum peaks\n", *k)
		os.Exit(1)
	}

	printEstimates(res.Estimates, trueDOAs)
}

func parseDOAs(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))

	for _, p := range parts {
		deg, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, deg*math.Pi/180)
	}

	return out, nil
}

// idealCovariance builds R = sum_s power * a_s a_s^H + noise * I for the
// given source azimuths.
func idealCovariance(design array.Design, wavelength float64, azimuths []float64, power, noise float64) (*mat.CDense, error) {
	sources, err := grid.NewPlacement(1, azimuths)
	if err != nil {
		return nil, err
	}

	a, err := design.SteeringMatrix(sources, wavelength, array.PerturbationsKnown)
	if err != nil {
		return nil, err
	}

	m := design.NumElements()
	r := mat.NewCDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			var sum complex128
			for s := range azimuths {
				sum += complex(power, 0) * a.At(i, s) * cconj(a.At(j, s))
			}
			if i == j {
				sum += complex(noise, 0)
			}
			r.Set(i, j, sum)
		}
	}

	return r, nil
}

func spectrumFunc(name string, r *mat.CDense, k int) (estimation.SpectrumFunc, error) {
	switch name {
	case "music":
		return estimation.MUSIC(r, k)
	case "bartlett":
		return estimation.Bartlett(r)
	case "capon":
		return estimation.Capon(r)
	default:
		return nil, fmt.Errorf("unknown algorithm %q (want music, bartlett or capon)", name)
	}
}

func printEstimates(estimates *grid.Placement, trueDOAs []float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\testimate (deg)\tnearest true (deg)\terror (deg)")

	for i := 0; i < estimates.Len(); i++ {
		deg := estimates.At(i, 0) * 180 / math.Pi
		nearest := nearestDOA(deg, trueDOAs)
		fmt.Fprintf(w, "%d\t%+.3f\t%+.3f\t%.3f\n", i, deg, nearest, math.Abs(deg-nearest))
	}

	w.Flush()
}

func nearestDOA(deg float64, trueDOAs []float64) float64 {
	best := math.Inf(1)
	bestDeg := 0.0
	for _, az := range trueDOAs {
		t := az * 180 / math.Pi
		if d := math.Abs(deg - t); d < best {
			best = d
			bestDeg = t
		}
	}
	return bestDeg
}

func cconj(v complex128) complex128 {
	return complex(real(v), -imag(v))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
