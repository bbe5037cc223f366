package domain

import "time"

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusActive    TransactionStatus = "active"
	StatusCancelled TransactionStatus = "cancelled"
	StatusDeleted   TransactionStatus = "deleted"
)

// Transaction is the aggregate recording a monetary amount and its line
// items. The item set and the amount only ever change together through
// ReplaceItems; RegistrationDatetime is set at creation and never after.
type Transaction struct {
	ID                   int64
	Amount               int
	RegistrationDatetime time.Time
	Status               TransactionStatus
	Items                []Item
}

// NewTransaction builds an active transaction from caller input,
// validating the amount and every item. An empty item list is valid.
// On any violation it returns *ValidationErrors and no transaction.
func NewTransaction(amount *int, items []ItemInput, now time.Time) (*Transaction, error) {
	validated, err := validate(amount, items)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		Amount:               *amount,
		RegistrationDatetime: now,
		Status:               StatusActive,
		Items:                validated,
	}, nil
}

// ReplaceItems replaces the amount and the entire item set as one unit.
// The previous items are never merged with the new list: the set is
// discarded and rebuilt. On validation failure the receiver is left
// exactly as it was.
func (t *Transaction) ReplaceItems(amount *int, items []ItemInput) error {
	validated, err := validate(amount, items)
	if err != nil {
		return err
	}

	t.Amount = *amount
	t.Items = validated
	return nil
}

// Cancel marks the transaction cancelled. There is deliberately no guard
// against already-terminal states: reapplying yields the same status.
func (t *Transaction) Cancel() {
	t.Status = StatusCancelled
}

// SoftDelete marks the transaction deleted. Transactions are never
// physically removed, so this is the terminal lifecycle move.
func (t *Transaction) SoftDelete() {
	t.Status = StatusDeleted
}

func validate(amount *int, items []ItemInput) ([]Item, error) {
	var messages []string

	if amount == nil {
		messages = append(messages, "Amount can't be blank")
	} else if *amount <= 0 {
		messages = append(messages, "Amount must be greater than 0")
	}

	validated := make([]Item, 0, len(items))
	for _, in := range items {
		itemMessages := validateItem(in)
		if len(itemMessages) > 0 {
			messages = append(messages, itemMessages...)
			continue
		}
		validated = append(validated, Item{
			Name:  *in.Name,
			Count: *in.Count,
			Price: *in.Price,
		})
	}

	if len(messages) > 0 {
		return nil, &ValidationErrors{Messages: messages}
	}
	return validated, nil
}
