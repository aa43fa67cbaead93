package contracts

import (
	"reflect"
	"testing"

	"finora/internal/bank"
	"finora/internal/core"
)

func raw(id, name string, amount float64, date string) bank.Transaction {
	return bank.Transaction{ID: id, Name: name, Amount: amount, Date: date}
}

func TestDetect_NetflixMonthly(t *testing.T) {
	// Aggregator sign convention: positive = expense.
	input := []bank.Transaction{
		raw("t1", "Netflix", 12.99, "2024-01-15"),
		raw("t2", "Netflix", 12.99, "2024-02-15"),
		raw("t3", "Netflix", 12.99, "2024-03-16"),
	}

	got := Detect(input)
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d contracts, want 1", len(got))
	}

	c := got[0]
	if c.Name != "Netflix" {
		t.Errorf("Name = %q, want %q", c.Name, "Netflix")
	}
	if c.Category != core.Subscription {
		t.Errorf("Category = %q, want %q", c.Category, core.Subscription)
	}
	if c.Amount.Cents != -1299 {
		t.Errorf("Amount = %d cents, want -1299", c.Amount.Cents)
	}
	if c.Interval != core.Monthly {
		t.Errorf("Interval = %q, want %q", c.Interval, core.Monthly)
	}
	// Last occurrence 2024-03-16 advanced by one calendar month.
	if want := "16.04.2024"; c.NextPayment.String() != want {
		t.Errorf("NextPayment = %s, want %s", c.NextPayment, want)
	}
	if c.Provider != c.Name {
		t.Errorf("Provider = %q, want name %q", c.Provider, c.Name)
	}
}

func TestDetect_IncomeMonthly(t *testing.T) {
	// Salary enters the account: negative in the aggregator convention.
	input := []bank.Transaction{
		raw("s1", "Salary GmbH", -2800.00, "2024-01-01"),
		raw("s2", "Salary GmbH", -2800.00, "2024-01-31"),
		raw("s3", "Salary GmbH", -2800.00, "2024-03-01"),
	}

	got := Detect(input)
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d contracts, want 1", len(got))
	}
	if got[0].Category != core.Income {
		t.Errorf("Category = %q, want %q", got[0].Category, core.Income)
	}
	if got[0].Interval != core.Monthly {
		t.Errorf("Interval = %q, want %q", got[0].Interval, core.Monthly)
	}
	if got[0].Amount.Cents != 280000 {
		t.Errorf("Amount = %d cents, want 280000", got[0].Amount.Cents)
	}
}

func TestDetect_YearlyInsurance(t *testing.T) {
	input := []bank.Transaction{
		raw("a1", "Allianz", 59.99, "2023-04-01"),
		raw("a2", "Allianz", 59.99, "2024-03-31"), // 365 days later
	}

	got := Detect(input)
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d contracts, want 1", len(got))
	}
	if got[0].Category != core.Insurance {
		t.Errorf("Category = %q, want %q", got[0].Category, core.Insurance)
	}
	if got[0].Interval != core.Yearly {
		t.Errorf("Interval = %q, want %q", got[0].Interval, core.Yearly)
	}
	if want := "31.03.2025"; got[0].NextPayment.String() != want {
		t.Errorf("NextPayment = %s, want %s", got[0].NextPayment, want)
	}
}

func TestDetect_MinimumEvidence(t *testing.T) {
	input := []bank.Transaction{
		raw("t1", "One-off purchase", 499.00, "2024-01-10"),
		raw("t2", "Another one-off", 25.50, "2024-02-02"),
	}

	if got := Detect(input); len(got) != 0 {
		t.Errorf("Detect() returned %d contracts for singleton series, want 0", len(got))
	}
}

func TestDetect_EmptyInput(t *testing.T) {
	if got := Detect(nil); len(got) != 0 {
		t.Errorf("Detect(nil) returned %d contracts, want 0", len(got))
	}
}

func TestDetect_SignConventionRoundTrip(t *testing.T) {
	input := []bank.Transaction{
		raw("t1", "Spotify", 49.99, "2024-01-05"),
		raw("t2", "Spotify", 49.99, "2024-02-05"),
	}

	got := Detect(input)
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d contracts, want 1", len(got))
	}
	if got[0].Amount.Cents != -4999 {
		t.Errorf("Amount = %d cents, want -4999 (expense stays negative)", got[0].Amount.Cents)
	}
}

func TestDetect_MalformedDateDropped(t *testing.T) {
	input := []bank.Transaction{
		raw("t1", "Netflix", 12.99, "2024-01-15"),
		raw("bad", "Netflix", 12.99, "not-a-date"),
		raw("t2", "Netflix", 12.99, "2024-02-15"),
	}

	got := Detect(input)
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d contracts, want 1 (bad record dropped, rest kept)", len(got))
	}
}

func TestDetect_RoundingNoiseGroupsTogether(t *testing.T) {
	// Fees varying by pennies share a signature; the reported amount is
	// the first transaction's exact amount.
	input := []bank.Transaction{
		raw("t1", "Stadtwerke Strom", 88.90, "2024-01-03"),
		raw("t2", "Stadtwerke Strom", 89.10, "2024-02-03"),
	}

	got := Detect(input)
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d contracts, want 1", len(got))
	}
	if got[0].Amount.Cents != -8890 {
		t.Errorf("Amount = %d cents, want exact first amount -8890", got[0].Amount.Cents)
	}
	if got[0].Category != core.Utility {
		t.Errorf("Category = %q, want %q", got[0].Category, core.Utility)
	}
}

func TestDetect_IDsFollowFirstOccurrenceOrder(t *testing.T) {
	input := []bank.Transaction{
		raw("n1", "Netflix", 12.99, "2024-01-15"),
		raw("s1", "Spotify", 9.99, "2024-01-20"),
		raw("n2", "Netflix", 12.99, "2024-02-15"),
		raw("s2", "Spotify", 9.99, "2024-02-20"),
	}

	got := Detect(input)
	if len(got) != 2 {
		t.Fatalf("Detect() returned %d contracts, want 2", len(got))
	}
	if got[0].ID != 1 || got[0].Name != "Netflix" {
		t.Errorf("first contract = (%d, %q), want (1, Netflix)", got[0].ID, got[0].Name)
	}
	if got[1].ID != 2 || got[1].Name != "Spotify" {
		t.Errorf("second contract = (%d, %q), want (2, Spotify)", got[1].ID, got[1].Name)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	input := []bank.Transaction{
		raw("n1", "Netflix", 12.99, "2024-01-15"),
		raw("a1", "Allianz Versicherung", 59.99, "2023-06-01"),
		raw("s1", "Salary GmbH", -2800.00, "2024-01-01"),
		raw("n2", "Netflix", 12.99, "2024-02-15"),
		raw("a2", "Allianz Versicherung", 59.99, "2024-06-01"),
		raw("s2", "Salary GmbH", -2800.00, "2024-02-01"),
	}

	first := Detect(input)
	second := Detect(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Detect() is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDetect_SameDayDuplicatesRetained(t *testing.T) {
	// Two same-day postings are separate occurrences, not duplicates.
	input := []bank.Transaction{
		raw("t1", "Gym", 29.99, "2024-01-10"),
		raw("t2", "Gym", 29.99, "2024-01-10"),
	}

	got := Detect(input)
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d contracts, want 1 (two same-day occurrences)", len(got))
	}
	// Zero-day mean gap classifies as monthly.
	if got[0].Interval != core.Monthly {
		t.Errorf("Interval = %q, want %q", got[0].Interval, core.Monthly)
	}
}
