package domain

import "unicode/utf8"

const (
	maxItemNameLength = 255
	maxItemCount      = 99999
)

// Item is a line entry owned by exactly one transaction. Items have no
// lifecycle of their own: they are created and discarded together with
// their owning transaction's item set.
type Item struct {
	Name  string
	Count int
	Price int
}

// ItemInput is one item as submitted by a caller. Nil fields mean the
// caller omitted the value, which validation reports as blank.
type ItemInput struct {
	Name  *string
	Count *int
	Price *int
}

// validateItem checks the three item fields independently and returns
// every violated constraint, not just the first.
func validateItem(in ItemInput) []string {
	var messages []string

	if in.Name == nil || *in.Name == "" {
		messages = append(messages, "Item name can't be blank")
	} else if utf8.RuneCountInString(*in.Name) > maxItemNameLength {
		messages = append(messages, "Item name is too long (maximum is 255 characters)")
	}

	if in.Count == nil {
		messages = append(messages, "Item count can't be blank")
	} else if *in.Count <= 0 {
		messages = append(messages, "Item count must be greater than 0")
	} else if *in.Count > maxItemCount {
		messages = append(messages, "Item count must be less than or equal to 99999")
	}

	if in.Price == nil {
		messages = append(messages, "Item price can't be blank")
	} else if *in.Price <= 0 {
		messages = append(messages, "Item price must be greater than 0")
	}

	return messages
}
