package ledger

import "github.com/poyulin/tally/internal/models"

// TransactionShare couples a transaction with one member's stake in it.
type TransactionShare struct {
	Transaction models.Transaction `json:"transaction"`

	// PersonalShare is this member's equal portion of the amount.
	PersonalShare float64 `json:"personalShare"`

	// TotalAmount repeats the transaction amount for display convenience.
	TotalAmount float64 `json:"totalAmount"`
}

// MemberStats is the full per-member view of a project.
type MemberStats struct {
	MemberID string `json:"memberId"`

	// TotalPaid is the sum of full amounts over transactions this member
	// paid for.
	TotalPaid float64 `json:"totalPaid"`

	// ShouldPay is the sum of this member's shares over transactions they
	// participated in but did not pay for.
	ShouldPay float64 `json:"shouldPay"`

	// Balance is TotalPaid - ShouldPay. Positive means owed money.
	Balance float64 `json:"balance"`

	// CategoryBreakdown accumulates this member's share per category over
	// all participated transactions.
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`

	// PaidTransactions lists transactions this member paid for. The
	// attached personal share is informational, not subtracted.
	PaidTransactions []TransactionShare `json:"paidTransactions"`

	// ParticipatedTransactions lists transactions this member shares the
	// cost of.
	ParticipatedTransactions []TransactionShare `json:"participatedTransactions"`

	// Settlements embeds the full settlement plan so a caller can show
	// who this member owes or is owed by without a second query.
	Settlements []Transfer `json:"settlements"`
}

// MemberBalance is the aggregate accumulator for one member.
type MemberBalance struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`

	Paid      float64 `json:"paid"`
	ShouldPay float64 `json:"shouldPay"`
	Balance   float64 `json:"balance"`

	// ParticipatedTransactionIDs lists the transactions this member
	// shares the cost of, in ledger order.
	ParticipatedTransactionIDs []string `json:"participatedTransactionIds"`
}

// AllMemberStats is the aggregate view of a project.
type AllMemberStats struct {
	// TotalExpense is the sum of all transaction amounts.
	TotalExpense float64 `json:"totalExpense"`

	// Members holds one accumulator per current member, in member
	// insertion order. The settlement planner depends on this ordering.
	Members []MemberBalance `json:"members"`
}

// effectiveParticipants resolves a transaction's cost-sharing set: the
// stored participants, or all current members when the stored set is
// empty. The fallback is recomputed on every read, so adding a member
// changes the per-person share of open transactions on the next query.
func effectiveParticipants(t *models.Transaction, allMemberIDs []string) []string {
	if len(t.Participants) > 0 {
		return t.Participants
	}
	return allMemberIDs
}

// ComputeAllMemberStats walks the full transaction list and accumulates
// paid, owed and balance figures for every current member.
//
// A transaction whose payer ID matches no current member is silently
// excluded from paid accumulation: historical transactions must remain
// displayable even after the referenced member is gone. Its amount still
// counts toward TotalExpense and its shares toward ShouldPay.
func ComputeAllMemberStats(p *models.Project) AllMemberStats {
	stats := AllMemberStats{Members: make([]MemberBalance, len(p.Members))}
	index := make(map[string]*MemberBalance, len(p.Members))
	for i := range p.Members {
		m := &p.Members[i]
		stats.Members[i] = MemberBalance{
			MemberID:                   m.ID,
			Name:                       m.Name,
			Avatar:                     m.Avatar,
			ParticipatedTransactionIDs: []string{},
		}
		index[m.ID] = &stats.Members[i]
	}

	allIDs := p.MemberIDs()
	for i := range p.Transactions {
		t := &p.Transactions[i]
		amount := float64(t.Amount)
		stats.TotalExpense += amount

		if payer, ok := index[t.PayerID]; ok {
			payer.Paid += amount
		}

		participants := effectiveParticipants(t, allIDs)
		share := Share(amount, len(participants))
		for _, id := range participants {
			mb, ok := index[id]
			if !ok {
				continue
			}
			mb.ShouldPay += share
			mb.ParticipatedTransactionIDs = append(mb.ParticipatedTransactionIDs, t.ID)
		}
	}

	for i := range stats.Members {
		mb := &stats.Members[i]
		mb.Balance = mb.Paid - mb.ShouldPay
	}
	return stats
}

// ComputeMemberStats builds the detailed per-member view. It returns
// false when the member does not exist.
func ComputeMemberStats(p *models.Project, memberID string) (MemberStats, bool) {
	if p.MemberByID(memberID) == nil {
		return MemberStats{}, false
	}

	stats := MemberStats{
		MemberID:                 memberID,
		CategoryBreakdown:        map[string]float64{},
		PaidTransactions:         []TransactionShare{},
		ParticipatedTransactions: []TransactionShare{},
	}

	allIDs := p.MemberIDs()
	for i := range p.Transactions {
		t := &p.Transactions[i]
		amount := float64(t.Amount)
		participants := effectiveParticipants(t, allIDs)
		share := Share(amount, len(participants))

		isPayer := t.PayerID == memberID
		if isPayer {
			stats.TotalPaid += amount
			stats.PaidTransactions = append(stats.PaidTransactions, TransactionShare{
				Transaction:   *t,
				PersonalShare: share,
				TotalAmount:   amount,
			})
		}

		if contains(participants, memberID) {
			stats.ParticipatedTransactions = append(stats.ParticipatedTransactions, TransactionShare{
				Transaction:   *t,
				PersonalShare: share,
				TotalAmount:   amount,
			})
			stats.CategoryBreakdown[t.Category] += share
			if !isPayer {
				stats.ShouldPay += share
			}
		}
	}

	stats.Balance = stats.TotalPaid - stats.ShouldPay
	stats.Settlements = Plan(p)
	return stats, true
}

// CategoryTotals sums full transaction amounts per category.
func CategoryTotals(p *models.Project) map[string]float64 {
	totals := make(map[string]float64)
	for i := range p.Transactions {
		t := &p.Transactions[i]
		totals[t.Category] += float64(t.Amount)
	}
	return totals
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
