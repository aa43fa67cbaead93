package bank

// Transaction is the aggregator's native booking record, exactly as it
// appears on the wire. Amounts use the aggregator's sign convention:
// positive means money leaving the account.
type Transaction struct {
	ID     string  `json:"transaction_id"`
	Name   string  `json:"name"`
	Date   string  `json:"date"` // ISO-8601 calendar date (YYYY-MM-DD)
	Amount float64 `json:"amount"`
}

// Account is a bank account as reported by the aggregator.
type Account struct {
	ID       string  `json:"account_id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}
