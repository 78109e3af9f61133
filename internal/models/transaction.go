package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Amount is a monetary value in floating point. It decodes from either a
// JSON number or a JSON string, because older snapshots serialized amounts
// as strings.
type Amount float64

// UnmarshalJSON accepts both `12.5` and `"12.5"`.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse amount %q: %w", s, err)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// Transaction represents one recorded expense.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// Title is the human-readable description of the expense.
	Title string `json:"title"`

	// Date is the expense date as an ISO date string (YYYY-MM-DD).
	Date string `json:"date"`

	// Amount is the full expense amount. Always positive.
	Amount Amount `json:"amount"`

	// PayerID references the member who fronted the money.
	PayerID string `json:"payerId"`

	// Category is the expense category.
	Category string `json:"category"`

	// Participants is the set of member IDs sharing the cost. An empty
	// set means "all current members", resolved at read time rather than
	// stored.
	Participants []string `json:"participants"`

	// PaidMembers is the set of participant IDs whose share has been
	// confirmed as paid to the payer outside the app's own bookkeeping.
	PaidMembers []string `json:"paidMembers"`
}

// UnmarshalJSON normalizes snapshots that predate the participant and
// confirmation sets: missing lists decode as empty, never nil.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Participants == nil {
		a.Participants = []string{}
	}
	if a.PaidMembers == nil {
		a.PaidMembers = []string{}
	}
	*t = Transaction(a)
	return nil
}

// HasParticipant reports whether memberID is in the stored participant set.
func (t *Transaction) HasParticipant(memberID string) bool {
	for _, id := range t.Participants {
		if id == memberID {
			return true
		}
	}
	return false
}

// HasConfirmed reports whether memberID has confirmed payment of their share.
func (t *Transaction) HasConfirmed(memberID string) bool {
	for _, id := range t.PaidMembers {
		if id == memberID {
			return true
		}
	}
	return false
}

// ToggleConfirmation flips memberID's membership in the confirmation set
// and returns the new confirmed state. The transaction does not validate
// that memberID is a participant; a confirmation for a non-participant is
// carried but ignored by balance computations.
func (t *Transaction) ToggleConfirmation(memberID string) bool {
	for i, id := range t.PaidMembers {
		if id == memberID {
			t.PaidMembers = append(t.PaidMembers[:i], t.PaidMembers[i+1:]...)
			return false
		}
	}
	t.PaidMembers = append(t.PaidMembers, memberID)
	return true
}
