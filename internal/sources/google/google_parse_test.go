package google

import "testing"

func TestParseRow(t *testing.T) {
	tests := []struct {
		name    string
		row     []interface{}
		wantErr bool
	}{
		{"valid row", []interface{}{"t1", "Netflix", "2024-01-15", "12.99"}, false},
		{"comma decimal", []interface{}{"t2", "Netflix", "2024-02-15", "12,99"}, false},
		{"negative amount", []interface{}{"t3", "Salary GmbH", "2024-01-01", "-2800.00"}, false},
		{"too few columns", []interface{}{"t4", "Netflix"}, true},
		{"bad amount", []interface{}{"t5", "Netflix", "2024-01-15", "abc"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRow(tt.row)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Name == "" {
				t.Errorf("parseRow() produced empty name")
			}
		})
	}
}

func TestParseRow_AmountConvention(t *testing.T) {
	got, err := parseRow([]interface{}{"t1", "Netflix", "2024-01-15", "12.99"})
	if err != nil {
		t.Fatalf("parseRow() error = %v", err)
	}
	// Positive sheet amounts are expenses, matching the aggregator.
	if got.Amount != 12.99 {
		t.Errorf("Amount = %v, want 12.99", got.Amount)
	}
}
