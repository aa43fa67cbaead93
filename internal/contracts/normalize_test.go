package contracts

import (
	"testing"

	"finora/internal/bank"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		input     bank.Transaction
		wantDrop  bool
		wantCents int64
	}{
		{
			name:      "expense sign is flipped",
			input:     raw("t1", "Netflix", 49.99, "2024-01-15"),
			wantCents: -4999,
		},
		{
			name:      "income becomes positive",
			input:     raw("t2", "Salary GmbH", -2800.00, "2024-01-01"),
			wantCents: 280000,
		},
		{
			name:     "unparseable date dropped",
			input:    raw("t3", "Netflix", 12.99, "15.01.2024"),
			wantDrop: true,
		},
		{
			name:     "empty date dropped",
			input:    raw("t4", "Netflix", 12.99, ""),
			wantDrop: true,
		},
		{
			name:     "blank name dropped",
			input:    raw("t5", "   ", 12.99, "2024-01-15"),
			wantDrop: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]bank.Transaction{tt.input})
			if tt.wantDrop {
				if len(got) != 0 {
					t.Fatalf("Normalize() kept %d records, want drop", len(got))
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("Normalize() returned %d records, want 1", len(got))
			}
			if got[0].Amount.Cents != tt.wantCents {
				t.Errorf("Amount = %d cents, want %d", got[0].Amount.Cents, tt.wantCents)
			}
		})
	}
}

func TestNormalize_PartialFailure(t *testing.T) {
	input := []bank.Transaction{
		raw("ok1", "Netflix", 12.99, "2024-01-15"),
		raw("bad", "Netflix", 12.99, "garbage"),
		raw("ok2", "Netflix", 12.99, "2024-02-15"),
	}

	got := Normalize(input)
	if len(got) != 2 {
		t.Fatalf("Normalize() kept %d records, want 2", len(got))
	}
	if got[0].ID != "ok1" || got[1].ID != "ok2" {
		t.Errorf("kept records = %s, %s; want ok1, ok2", got[0].ID, got[1].ID)
	}
}
