package contracts

import (
	"testing"

	"finora/internal/core"
)

func TestProjectNextPayment(t *testing.T) {
	tests := []struct {
		name     string
		last     core.Date
		interval core.Interval
		want     string
	}{
		{"monthly mid-month", core.NewDate(2024, 3, 15), core.Monthly, "15.04.2024"},
		{"monthly year boundary", core.NewDate(2024, 12, 20), core.Monthly, "20.01.2025"},
		{"monthly Jan 31 rolls into March", core.NewDate(2024, 1, 31), core.Monthly, "02.03.2024"},
		{"monthly Jan 31 non-leap", core.NewDate(2023, 1, 31), core.Monthly, "03.03.2023"},
		{"quarterly", core.NewDate(2024, 1, 10), core.Quarterly, "10.04.2024"},
		{"quarterly Nov 30 rolls", core.NewDate(2023, 11, 30), core.Quarterly, "01.03.2024"},
		{"yearly", core.NewDate(2024, 3, 31), core.Yearly, "31.03.2025"},
		{"yearly Feb 29 rolls to Mar 1", core.NewDate(2024, 2, 29), core.Yearly, "01.03.2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := projectNextPayment(tt.last, tt.interval)
			if got.String() != tt.want {
				t.Errorf("projectNextPayment(%s, %s) = %s, want %s",
					tt.last, tt.interval, got, tt.want)
			}
		})
	}
}
