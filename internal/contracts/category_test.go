package contracts

import (
	"testing"

	"finora/internal/core"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name    string
		txnName string
		cents   int64
		want    core.Category
	}{
		{"positive amount is income", "Salary GmbH", 280000, core.Income},
		{"income beats insurance keyword", "Versicherung Erstattung", 5000, core.Income},
		{"insurance keyword", "Allianz Versicherung", -5999, core.Insurance},
		{"insurance keyword case-insensitive", "ALLIANZ SE", -5999, core.Insurance},
		{"insurance beats utility keyword", "Strom Versicherung", -2000, core.Insurance},
		{"utility strom", "Stadtwerke Strom Abschlag", -8900, core.Utility},
		{"utility gas", "Gasversorgung Nord", -6500, core.Utility},
		{"utility wasser", "Wasserwerke", -3000, core.Utility},
		{"default subscription", "Netflix", -1299, core.Subscription},
		{"unknown merchant negative", "Some Shop", -999, core.Subscription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyCategory(tt.txnName, core.Money{Cents: tt.cents})
			if got != tt.want {
				t.Errorf("classifyCategory(%q, %d) = %q, want %q", tt.txnName, tt.cents, got, tt.want)
			}
		})
	}
}
