package money

import (
	"errors"
	"testing"
)

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{46.666666666666667, 46.67},
		{6.666666666666667, 6.67},
		{0.005, 0.01},
		{-53.333333333333333, -53.33},
		{10, 10},
	}
	for _, tt := range tests {
		if got := RoundCents(tt.in); got != tt.want {
			t.Errorf("RoundCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCents(t *testing.T) {
	if got := Cents(12.345); got != 1235 {
		t.Errorf("Cents(12.345) = %d, want 1235", got)
	}
	if got := Cents(-0.1); got != -10 {
		t.Errorf("Cents(-0.1) = %d, want -10", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "12.50", want: 12.5},
		{in: " $1,234.56 ", want: 1234.56},
		{in: "€3", want: 3},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidAmount", tt.in, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount   float64
		currency Currency
		want     string
	}{
		{12.5, USD, "$12.50"},
		{46.666666666666667, EUR, "€46.67"},
		{-3, ARS, "-$3.00"},
		{1, Currency("XYZ"), "$1.00"},
	}
	for _, tt := range tests {
		if got := Format(tt.amount, tt.currency); got != tt.want {
			t.Errorf("Format(%v, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}
