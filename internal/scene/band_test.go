package scene

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		temp float64
		want Band
	}{
		{math.Inf(-1), BandBlue},
		{-50, BandBlue},
		{150, BandBlue},
		{199.999, BandBlue},
		{200, BandCyan},
		{259.99, BandCyan},
		{260, BandGreen}, // lower bound is closed
		{289, BandGreen},
		{290, BandYellowGreen},
		{320, BandYellow},
		{350, BandOrange},
		{399.9, BandOrange},
		{400, BandRedOrange},
		{499.9, BandRedOrange},
		{500, BandRed},
		{5000, BandRed},
		{math.Inf(1), BandRed},
		{math.NaN(), BandRed},
	}
	for _, tt := range tests {
		if got := Classify(tt.temp); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.temp, got, tt.want)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for temp := -100.0; temp < 1000; temp += 0.5 {
		if Classify(temp) != Classify(temp) {
			t.Fatalf("Classify(%v) not deterministic", temp)
		}
	}
}

func TestClassify_Monotonic(t *testing.T) {
	prev := Classify(-1000)
	for temp := -1000.0; temp < 2000; temp += 0.25 {
		cur := Classify(temp)
		if cur < prev {
			t.Fatalf("band decreased at %v: %v after %v", temp, cur, prev)
		}
		prev = cur
	}
}

func TestBand_Names(t *testing.T) {
	want := []string{"blue", "cyan", "green", "yellow-green", "yellow", "orange", "red-orange", "red"}
	bands := Bands()
	if len(bands) != len(want) {
		t.Fatalf("Bands() has %d entries", len(bands))
	}
	for i, b := range bands {
		if b.String() != want[i] {
			t.Errorf("band %d = %q, want %q", i, b.String(), want[i])
		}
		if b.Hex() == "" || b.Climate() == "" {
			t.Errorf("band %v missing colour or climate", b)
		}
	}
	if Band(99).String() != "unknown" {
		t.Error("out-of-range band should be unknown")
	}
}

func TestBand_Climate(t *testing.T) {
	tests := map[Band]Climate{
		BandBlue:      ClimateIce,
		BandCyan:      ClimateCold,
		BandGreen:     ClimateTemperate,
		BandYellow:    ClimateWarm,
		BandRedOrange: ClimateHot,
		BandRed:       ClimateScorching,
	}
	for b, want := range tests {
		if got := b.Climate(); got != want {
			t.Errorf("%v.Climate() = %v, want %v", b, got, want)
		}
	}
}
