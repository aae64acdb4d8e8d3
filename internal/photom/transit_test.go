package photom_test

import (
	"errors"
	"math"
	"testing"

	"lcforge/internal/domain"
	domaintypes "lcforge/internal/domain/types"
	"lcforge/internal/photom"
)

func linspace(start, end float64, n int) []float64 {
	t := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range t {
		t[i] = start + float64(i)*step
	}
	return t
}

func TestEvaluate_FlatOutsideTransit(t *testing.T) {
	ev := photom.New()
	params := domaintypes.Params{
		photom.ParamZpt:    1.0,
		photom.ParamPeriod: 3.5,
		photom.ParamRprs:   0.1,
		photom.ParamT0:     2.0,
		photom.ParamArs:    15,
	}
	time := linspace(0, 10, 1000)
	flux, err := ev.Evaluate(params, time)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	// Transit centers repeat a period apart from T0.
	centers := []float64{2.0, 5.5, 9.0}
	// Half-duration for a central transit at a/R* = 15.
	halfDur := 3.5 / (2 * math.Pi) * math.Asin(1.1/15)

	for i, f := range flux {
		inWindow := false
		for _, c := range centers {
			if math.Abs(time[i]-c) <= halfDur*1.05 {
				inWindow = true
			}
		}
		if !inWindow && f != 1.0 {
			t.Fatalf("flux[%d] = %v at t=%v outside all transit windows", i, f, time[i])
		}
		if f < 1.0 && !inWindow {
			t.Fatalf("dip at t=%v outside transit windows", time[i])
		}
	}
}

func TestEvaluate_DepthNearRprsSquared(t *testing.T) {
	ev := photom.New()
	params := domaintypes.Params{
		photom.ParamZpt:    1.0,
		photom.ParamLd1:    0.1,
		photom.ParamLd2:    0.3,
		photom.ParamPeriod: 3.5,
		photom.ParamRprs:   0.1,
		photom.ParamT0:     2.0,
		photom.ParamArs:    15,
	}
	time := linspace(0, 10, 2000)
	flux, err := ev.Evaluate(params, time)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	min := flux[0]
	for _, f := range flux {
		if f < min {
			min = f
		}
	}
	depth := 1 - min
	if math.Abs(depth-0.01) > 0.003 {
		t.Fatalf("max depth = %v, want about rprs^2 = 0.01", depth)
	}
}

func TestEvaluate_SecondaryEclipseDepth(t *testing.T) {
	ev := photom.New()
	params := domaintypes.Params{
		photom.ParamZpt:    1.0,
		photom.ParamPeriod: 4.0,
		photom.ParamRprs:   0.1,
		photom.ParamT0:     0.0,
		photom.ParamArs:    15,
		photom.ParamOcc:    500, // ppm
	}
	// Sample right at the occultation phase.
	flux, err := ev.Evaluate(params, []float64{2.0})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	want := 1 - 500e-6
	if math.Abs(flux[0]-want) > 1e-9 {
		t.Fatalf("occultation flux = %v, want %v", flux[0], want)
	}
}

func TestEvaluate_RejectsBadParameters(t *testing.T) {
	ev := photom.New()
	cases := []domaintypes.Params{
		{photom.ParamPeriod: 0, photom.ParamRprs: 0.1},
		{photom.ParamPeriod: -3, photom.ParamRprs: 0.1},
		{photom.ParamPeriod: 3, photom.ParamRprs: -0.1},
	}
	for _, params := range cases {
		_, err := ev.Evaluate(params, []float64{0, 1})
		var ipe *domain.InvalidParameterError
		if !errors.As(err, &ipe) {
			t.Fatalf("params %v: got err %v, want InvalidParameterError", params, err)
		}
	}
}

func TestEvaluate_DilutionShrinksDepth(t *testing.T) {
	ev := photom.New()
	base := domaintypes.Params{
		photom.ParamPeriod: 3.5,
		photom.ParamRprs:   0.1,
		photom.ParamT0:     2.0,
		photom.ParamArs:    15,
		photom.ParamZpt:    1.0,
	}
	diluted := base.Clone()
	diluted[photom.ParamDil] = 0.5

	at := []float64{2.0}
	f0, err := ev.Evaluate(base, at)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	f1, err := ev.Evaluate(diluted, at)
	if err != nil {
		t.Fatalf("evaluate diluted: %v", err)
	}
	d0, d1 := 1-f0[0], 1-f1[0]
	if math.Abs(d1-d0/2) > 1e-12 {
		t.Fatalf("diluted depth = %v, want half of %v", d1, d0)
	}
}
