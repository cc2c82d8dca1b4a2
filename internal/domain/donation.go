package domain

import "time"

// Donation is an on-chain contribution. Immutable once recorded; the USD
// value is captured from the price feed at record time.
type Donation struct {
	ID          string
	DonorID     *string
	CharityID   string
	Amount      float64
	TokenSymbol string
	Chain       string
	USDValue    float64
	TxHash      string
	CreatedAt   time.Time
}

// FiatDonation is a card contribution settled through the payment processor.
// Immutable once recorded.
type FiatDonation struct {
	ID           string
	DonorID      *string
	CharityID    string
	AmountCents  int64
	Currency     string
	PaymentRef   string
	DonorCountry string
	CreatedAt    time.Time
}
