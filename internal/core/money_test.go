package core

import "testing"

func TestParseSignedCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"dot separator", "12.34", 1234, false},
		{"comma separator", "12,34", 1234, false},
		{"negative", "-12.99", -1299, false},
		{"explicit plus", "+49.99", 4999, false},
		{"no fraction", "28", 2800, false},
		{"one fractional digit", "5.5", 550, false},
		{"third digit rounds down", "12.344", 1234, false},
		{"third digit rounds up", "12.345", 1235, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, true},
		{"two dots", "1.2.3", 0, true},
		{"letters", "12a.40", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSignedCents(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSignedCents(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSignedCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCentsFromFloat(t *testing.T) {
	tests := []struct {
		input float64
		want  int64
	}{
		{12.99, 1299},
		{-2800.00, -280000},
		{0.005, 1},
		{-0.005, -1},
		{0, 0},
	}

	for _, tt := range tests {
		if got := CentsFromFloat(tt.input); got != tt.want {
			t.Errorf("CentsFromFloat(%v) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{-1299, "-12.99"},
		{280000, "2800.00"},
		{-5, "-0.05"},
		{0, "0.00"},
		{1050, "10.50"},
	}

	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).String(); got != tt.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := Money{Cents: -1299}
	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != "-12.99" {
		t.Errorf("MarshalJSON() = %s, want -12.99", data)
	}

	var back Money
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if back.Cents != m.Cents {
		t.Errorf("round trip = %d cents, want %d", back.Cents, m.Cents)
	}
}
