// Package service implements the command/query surface of the ledger:
// mutations load the project snapshot, validate, mutate in memory and
// write the whole snapshot back; queries recompute from the current
// transaction list on every call.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/poyulin/tally/internal/apperrors"
	"github.com/poyulin/tally/internal/ledger"
	"github.com/poyulin/tally/internal/metrics"
	"github.com/poyulin/tally/internal/models"
	"github.com/poyulin/tally/internal/storage"
)

// ProjectService coordinates the project aggregate with the snapshot
// store and delegates read-side computation to the ledger package.
type ProjectService struct {
	store storage.Store
}

// NewProjectService creates a new ProjectService with the given storage
// backend.
func NewProjectService(store storage.Store) *ProjectService {
	return &ProjectService{store: store}
}

// TransactionInput carries the fields needed to record an expense.
type TransactionInput struct {
	Title        string
	Date         string
	Amount       float64
	PayerID      string
	Category     string
	Participants []string
}

// TransactionPatch carries optional updates to an expense. Nil fields are
// left unchanged.
type TransactionPatch struct {
	Title        *string
	Date         *string
	Amount       *float64
	PayerID      *string
	Category     *string
	Participants *[]string
}

// mutate loads a project, applies fn and writes the snapshot back.
// When editable is true the mutation is rejected on closed projects
// before fn runs.
func (s *ProjectService) mutate(ctx context.Context, projectID, op string, editable bool, fn func(p *models.Project) error) (*models.Project, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if editable && !p.IsEditable() {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrProjectClosed)
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.Touch()
	if err := s.store.SaveProject(ctx, p); err != nil {
		return nil, err
	}
	metrics.Mutations.WithLabelValues(op).Inc()
	return p, nil
}

// CreateProject creates an empty active project. Project names are unique
// case-insensitively across the store.
func (s *ProjectService) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name is required: %w", apperrors.ErrValidation)
	}
	p := models.NewProject(uuid.New().String(), name, description)
	if err := s.store.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	metrics.Mutations.WithLabelValues("create_project").Inc()
	slog.Info("project created", "project_id", p.ID, "name", p.Name)
	return p, nil
}

// GetProject returns a project snapshot.
func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	return s.store.GetProject(ctx, projectID)
}

// ListProjects returns all projects, most recently updated first.
func (s *ProjectService) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return s.store.ListProjects(ctx)
}

// UpdateProjectName renames a project. Allowed on closed projects; the
// store rejects names already taken by another project.
func (s *ProjectService) UpdateProjectName(ctx context.Context, projectID, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name is required: %w", apperrors.ErrValidation)
	}
	return s.mutate(ctx, projectID, "update_project_name", false, func(p *models.Project) error {
		p.Name = name
		return nil
	})
}

// UpdateProjectDescription updates a project's description.
func (s *ProjectService) UpdateProjectDescription(ctx context.Context, projectID, description string) (*models.Project, error) {
	return s.mutate(ctx, projectID, "update_project_description", false, func(p *models.Project) error {
		p.Description = description
		return nil
	})
}

// SetProjectStatus switches a project between active and closed. Any
// other value is rejected.
func (s *ProjectService) SetProjectStatus(ctx context.Context, projectID, status string) (*models.Project, error) {
	return s.mutate(ctx, projectID, "set_project_status", false, func(p *models.Project) error {
		if !p.UpdateStatus(status) {
			return fmt.Errorf("invalid status %q: %w", status, apperrors.ErrValidation)
		}
		return nil
	})
}

// DeleteProject removes a project permanently.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	if err := s.store.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	metrics.Mutations.WithLabelValues("delete_project").Inc()
	slog.Info("project deleted", "project_id", projectID)
	return nil
}

// AddCategory appends a category to the project. Adding a category that
// already exists is a no-op.
func (s *ProjectService) AddCategory(ctx context.Context, projectID, category string) (*models.Project, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("category is required: %w", apperrors.ErrValidation)
	}
	return s.mutate(ctx, projectID, "add_category", true, func(p *models.Project) error {
		p.AddCategory(category)
		return nil
	})
}

// CreateMember adds a member to the project registry. Member names are
// unique case-insensitively within a project.
func (s *ProjectService) CreateMember(ctx context.Context, projectID, name, avatar string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("member name is required: %w", apperrors.ErrValidation)
	}
	if avatar == "" {
		avatar = models.DefaultAvatar
	}
	member := models.Member{ID: uuid.New().String(), Name: name, Avatar: avatar}
	_, err := s.mutate(ctx, projectID, "create_member", true, func(p *models.Project) error {
		if p.HasMemberName(name, "") {
			return fmt.Errorf("member name %q: %w", name, apperrors.ErrDuplicate)
		}
		p.AddMember(member)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("member created", "project_id", projectID, "member_id", member.ID, "name", member.Name)
	return &member, nil
}

// RenameMember changes a member's display name. Transactions reference
// the member by ID, so no cascade is needed.
func (s *ProjectService) RenameMember(ctx context.Context, projectID, memberID, newName string) (*models.Member, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, fmt.Errorf("member name is required: %w", apperrors.ErrValidation)
	}
	var renamed models.Member
	_, err := s.mutate(ctx, projectID, "rename_member", true, func(p *models.Project) error {
		m := p.MemberByID(memberID)
		if m == nil {
			return fmt.Errorf("member %s: %w", memberID, apperrors.ErrNotFound)
		}
		if p.HasMemberName(newName, memberID) {
			return fmt.Errorf("member name %q: %w", newName, apperrors.ErrDuplicate)
		}
		m.Name = newName
		renamed = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &renamed, nil
}

// UpdateMemberAvatar changes a member's display glyph.
func (s *ProjectService) UpdateMemberAvatar(ctx context.Context, projectID, memberID, avatar string) (*models.Member, error) {
	var updated models.Member
	_, err := s.mutate(ctx, projectID, "update_member_avatar", true, func(p *models.Project) error {
		m := p.MemberByID(memberID)
		if m == nil {
			return fmt.Errorf("member %s: %w", memberID, apperrors.ErrNotFound)
		}
		m.Avatar = avatar
		updated = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveMember deletes a member. Removal is forbidden while the member is
// referenced as payer on any existing transaction.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, memberID string) error {
	_, err := s.mutate(ctx, projectID, "remove_member", true, func(p *models.Project) error {
		m := p.MemberByID(memberID)
		if m == nil {
			return fmt.Errorf("member %s: %w", memberID, apperrors.ErrNotFound)
		}
		if p.IsPayer(memberID) {
			return fmt.Errorf("member %q is payer on existing transactions: %w", m.Name, apperrors.ErrConflict)
		}
		p.RemoveMember(memberID)
		return nil
	})
	return err
}

// validateTransaction checks the invariants common to add and update.
func validateTransaction(p *models.Project, title, date string, amount float64, payerID string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("transaction title is required: %w", apperrors.ErrValidation)
	}
	if strings.TrimSpace(date) == "" {
		return fmt.Errorf("transaction date is required: %w", apperrors.ErrValidation)
	}
	if amount <= 0 {
		return fmt.Errorf("transaction amount must be positive: %w", apperrors.ErrValidation)
	}
	if p.MemberByID(payerID) == nil {
		return fmt.Errorf("payer %s: %w", payerID, apperrors.ErrNotFound)
	}
	return nil
}

// AddTransaction records an expense.
func (s *ProjectService) AddTransaction(ctx context.Context, projectID string, in TransactionInput) (*models.Transaction, error) {
	if in.Category == "" {
		in.Category = "Miscellaneous"
	}
	if in.Participants == nil {
		in.Participants = []string{}
	}
	tx := models.Transaction{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(in.Title),
		Date:         in.Date,
		Amount:       models.Amount(in.Amount),
		PayerID:      in.PayerID,
		Category:     in.Category,
		Participants: in.Participants,
		PaidMembers:  []string{},
	}
	_, err := s.mutate(ctx, projectID, "add_transaction", true, func(p *models.Project) error {
		if err := validateTransaction(p, in.Title, in.Date, in.Amount, in.PayerID); err != nil {
			return err
		}
		p.AddCategory(in.Category)
		p.AddTransaction(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("transaction added", "project_id", projectID, "transaction_id", tx.ID, "amount", in.Amount)
	return &tx, nil
}

// UpdateTransaction applies a partial update to an expense.
func (s *ProjectService) UpdateTransaction(ctx context.Context, projectID, txID string, patch TransactionPatch) (*models.Transaction, error) {
	var updated models.Transaction
	_, err := s.mutate(ctx, projectID, "update_transaction", true, func(p *models.Project) error {
		t := p.TransactionByID(txID)
		if t == nil {
			return fmt.Errorf("transaction %s: %w", txID, apperrors.ErrNotFound)
		}

		title, date := t.Title, t.Date
		amount := float64(t.Amount)
		payerID := t.PayerID
		if patch.Title != nil {
			title = *patch.Title
		}
		if patch.Date != nil {
			date = *patch.Date
		}
		if patch.Amount != nil {
			amount = *patch.Amount
		}
		if patch.PayerID != nil {
			payerID = *patch.PayerID
		}
		if err := validateTransaction(p, title, date, amount, payerID); err != nil {
			return err
		}

		t.Title = strings.TrimSpace(title)
		t.Date = date
		t.Amount = models.Amount(amount)
		t.PayerID = payerID
		if patch.Category != nil && *patch.Category != "" {
			t.Category = *patch.Category
			p.AddCategory(t.Category)
		}
		if patch.Participants != nil {
			participants := *patch.Participants
			if participants == nil {
				participants = []string{}
			}
			t.Participants = participants
		}
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveTransaction deletes an expense.
func (s *ProjectService) RemoveTransaction(ctx context.Context, projectID, txID string) error {
	_, err := s.mutate(ctx, projectID, "remove_transaction", true, func(p *models.Project) error {
		if !p.RemoveTransaction(txID) {
			return fmt.Errorf("transaction %s: %w", txID, apperrors.ErrNotFound)
		}
		return nil
	})
	return err
}

// ToggleConfirmation flips a participant's payment confirmation on a
// transaction and returns the new confirmed state. Toggling twice in a
// row restores the original state.
func (s *ProjectService) ToggleConfirmation(ctx context.Context, projectID, txID, memberID string) (bool, error) {
	var confirmed bool
	_, err := s.mutate(ctx, projectID, "toggle_confirmation", true, func(p *models.Project) error {
		t := p.TransactionByID(txID)
		if t == nil {
			return fmt.Errorf("transaction %s: %w", txID, apperrors.ErrNotFound)
		}
		confirmed = t.ToggleConfirmation(memberID)
		return nil
	})
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// GetMemberStats computes the detailed per-member view, including the
// embedded settlement plan.
func (s *ProjectService) GetMemberStats(ctx context.Context, projectID, memberID string) (ledger.MemberStats, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return ledger.MemberStats{}, err
	}
	stats, ok := ledger.ComputeMemberStats(p, memberID)
	if !ok {
		return ledger.MemberStats{}, fmt.Errorf("member %s: %w", memberID, apperrors.ErrNotFound)
	}
	return stats, nil
}

// GetAllMemberStats computes the aggregate view: total expense plus one
// balance accumulator per member.
func (s *ProjectService) GetAllMemberStats(ctx context.Context, projectID string) (ledger.AllMemberStats, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return ledger.AllMemberStats{}, err
	}
	return ledger.ComputeAllMemberStats(p), nil
}

// GetSettlementPlan computes the transfer list that zeroes out all
// balances, skipping transfers already confirmed.
func (s *ProjectService) GetSettlementPlan(ctx context.Context, projectID string) ([]ledger.Transfer, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	metrics.SettlementPlans.Inc()
	return ledger.Plan(p), nil
}

// GetTransactionObligations lists unconfirmed per-transaction debts,
// sorted by creditor name then debtor name.
func (s *ProjectService) GetTransactionObligations(ctx context.Context, projectID string) ([]ledger.Obligation, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return ledger.Obligations(p), nil
}

// GetCategoryTotals sums transaction amounts per category.
func (s *ProjectService) GetCategoryTotals(ctx context.Context, projectID string) (map[string]float64, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	totals := ledger.CategoryTotals(p)
	for c, v := range totals {
		totals[c] = ledger.Round(v)
	}
	return totals, nil
}
