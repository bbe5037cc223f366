package service

import "time"

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID                   int64
	Amount               int
	RegistrationDatetime time.Time
	Status               string
	Items                []Item
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Item represents one line item of a transaction.
type Item struct {
	ID    int64
	Name  string
	Count int
	Price int
}

// TransactionFilter narrows a transaction listing. Nil fields are not
// applied; DateFrom and DateTo bound registration_datetime inclusively.
type TransactionFilter struct {
	ID       *int64
	DateFrom *time.Time
	DateTo   *time.Time
}
