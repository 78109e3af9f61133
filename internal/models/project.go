package models

import (
	"strings"
	"time"
)

// Project status values.
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// DefaultCategories seeds every new project. The category list is
// user-extensible and never shrinks.
func DefaultCategories() []string {
	return []string{"Food", "Transportation", "Accommodation", "Miscellaneous", "Entertainment", "Others"}
}

// Project is the aggregate root: it owns the member registry, the
// transaction ledger and the category list.
type Project struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Status       string        `json:"status"`
	CreatedDate  time.Time     `json:"createdDate"`
	LastUpdated  time.Time     `json:"lastUpdated"`
	Categories   []string      `json:"categories"`
	Members      []Member      `json:"members"`
	Transactions []Transaction `json:"transactions"`
}

// NewProject creates an empty active project with the default categories.
func NewProject(id, name, description string) *Project {
	now := time.Now()
	return &Project{
		ID:           id,
		Name:         name,
		Description:  description,
		Status:       StatusActive,
		CreatedDate:  now,
		LastUpdated:  now,
		Categories:   DefaultCategories(),
		Members:      []Member{},
		Transactions: []Transaction{},
	}
}

// Touch refreshes the LastUpdated timestamp. Every mutating operation
// calls it.
func (p *Project) Touch() {
	p.LastUpdated = time.Now()
}

// IsEditable reports whether mutations of members, transactions and
// categories are allowed.
func (p *Project) IsEditable() bool {
	return p.Status == StatusActive
}

// UpdateStatus sets the project status. Any value other than StatusActive
// or StatusClosed is rejected and nothing changes.
func (p *Project) UpdateStatus(status string) bool {
	if status != StatusActive && status != StatusClosed {
		return false
	}
	p.Status = status
	p.Touch()
	return true
}

// AddCategory appends a category if it is non-empty and not already
// present. Returns whether the list changed.
func (p *Project) AddCategory(category string) bool {
	if category == "" {
		return false
	}
	for _, c := range p.Categories {
		if c == category {
			return false
		}
	}
	p.Categories = append(p.Categories, category)
	p.Touch()
	return true
}

// MemberByID returns the member with the given ID, or nil.
func (p *Project) MemberByID(memberID string) *Member {
	for i := range p.Members {
		if p.Members[i].ID == memberID {
			return &p.Members[i]
		}
	}
	return nil
}

// HasMemberName reports whether any member other than excludeID already
// uses name, compared case-insensitively.
func (p *Project) HasMemberName(name, excludeID string) bool {
	for i := range p.Members {
		if p.Members[i].ID != excludeID && strings.EqualFold(p.Members[i].Name, name) {
			return true
		}
	}
	return false
}

// MemberIDs returns all member IDs in insertion order.
func (p *Project) MemberIDs() []string {
	ids := make([]string, len(p.Members))
	for i := range p.Members {
		ids[i] = p.Members[i].ID
	}
	return ids
}

// AddMember appends a member to the registry.
func (p *Project) AddMember(m Member) {
	p.Members = append(p.Members, m)
	p.Touch()
}

// RemoveMember deletes the member with the given ID. Returns whether a
// member was removed. Callers enforce the referential-integrity rule that
// a payer on an existing transaction cannot be removed.
func (p *Project) RemoveMember(memberID string) bool {
	for i := range p.Members {
		if p.Members[i].ID == memberID {
			p.Members = append(p.Members[:i], p.Members[i+1:]...)
			p.Touch()
			return true
		}
	}
	return false
}

// IsPayer reports whether the member is referenced as payer on any
// existing transaction.
func (p *Project) IsPayer(memberID string) bool {
	for i := range p.Transactions {
		if p.Transactions[i].PayerID == memberID {
			return true
		}
	}
	return false
}

// TransactionByID returns the transaction with the given ID, or nil.
func (p *Project) TransactionByID(txID string) *Transaction {
	for i := range p.Transactions {
		if p.Transactions[i].ID == txID {
			return &p.Transactions[i]
		}
	}
	return nil
}

// AddTransaction appends a transaction to the ledger.
func (p *Project) AddTransaction(t Transaction) {
	p.Transactions = append(p.Transactions, t)
	p.Touch()
}

// RemoveTransaction deletes the transaction with the given ID. Returns
// whether a transaction was removed.
func (p *Project) RemoveTransaction(txID string) bool {
	for i := range p.Transactions {
		if p.Transactions[i].ID == txID {
			p.Transactions = append(p.Transactions[:i], p.Transactions[i+1:]...)
			p.Touch()
			return true
		}
	}
	return false
}
