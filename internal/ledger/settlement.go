package ledger

import (
	"math"
	"sort"

	"github.com/poyulin/tally/internal/models"
)

// Transfer is one proposed settlement payment from a debtor to a creditor.
type Transfer struct {
	FromID string  `json:"from"`
	ToID   string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Obligation is one unconfirmed per-transaction debt from a participant
// to the transaction's payer.
type Obligation struct {
	FromID     string `json:"from"`
	FromName   string `json:"fromName"`
	FromAvatar string `json:"fromAvatar"`
	ToID       string `json:"to"`
	ToName     string `json:"toName"`
	ToAvatar   string `json:"toAvatar"`

	Amount float64 `json:"amount"`

	TransactionID    string `json:"transactionId"`
	TransactionTitle string `json:"transactionTitle"`
}

// Plan produces the transfers that drive every member's balance to zero,
// using greedy debt netting: debtors and creditors are walked in member
// insertion order and each pairing settles min(debt, credit).
//
// The matching always fully nets out; a transfer whose debtor→creditor
// pair is already confirmed is netted but not emitted. The result is
// deterministic for a fixed project state and does not guarantee the
// globally minimal transfer count, only a valid zero-sum settlement.
func Plan(p *models.Project) []Transfer {
	stats := ComputeAllMemberStats(p)

	type party struct {
		id        string
		remaining float64
	}
	var debtors, creditors []party
	for i := range stats.Members {
		mb := &stats.Members[i]
		switch {
		case mb.Balance < -Epsilon:
			debtors = append(debtors, party{id: mb.MemberID, remaining: -mb.Balance})
		case mb.Balance > Epsilon:
			creditors = append(creditors, party{id: mb.MemberID, remaining: mb.Balance})
		}
	}

	transfers := []Transfer{}
	for di := range debtors {
		d := &debtors[di]
		for ci := range creditors {
			c := &creditors[ci]
			if c.remaining <= Epsilon {
				continue
			}
			amount := math.Min(d.remaining, c.remaining)
			if amount > Epsilon {
				d.remaining -= amount
				c.remaining -= amount
				if !PairConfirmed(p, d.id, c.id) {
					transfers = append(transfers, Transfer{
						FromID: d.id,
						ToID:   c.id,
						Amount: Round(amount),
					})
				}
			}
			if d.remaining <= Epsilon {
				break
			}
		}
	}
	return transfers
}

// PairConfirmed reports whether every transaction where creditorID is the
// payer and debtorID is a stored participant has the debtor in its
// confirmation set. With no such transaction the pair is not confirmed.
//
// Confirmation is tracked per transaction per participant, but this check
// is all-or-nothing per debtor→creditor pair: a pair with a mix of
// confirmed and unconfirmed transactions is treated as unconfirmed and
// its transfer listed in full.
func PairConfirmed(p *models.Project, debtorID, creditorID string) bool {
	found := false
	for i := range p.Transactions {
		t := &p.Transactions[i]
		if t.PayerID != creditorID || !t.HasParticipant(debtorID) {
			continue
		}
		found = true
		if !t.HasConfirmed(debtorID) {
			return false
		}
	}
	return found
}

// Obligations lists every unconfirmed per-transaction debt: for each
// transaction, each participant other than the payer who has not
// confirmed payment owes the payer their share.
//
// Transactions whose payer matches no current member are skipped, as are
// participants that no longer resolve. The result is sorted by creditor
// name ascending, then debtor name ascending.
func Obligations(p *models.Project) []Obligation {
	allIDs := p.MemberIDs()
	obligations := []Obligation{}

	for i := range p.Transactions {
		t := &p.Transactions[i]
		payer := p.MemberByID(t.PayerID)
		if payer == nil {
			continue
		}
		participants := effectiveParticipants(t, allIDs)
		share := Share(float64(t.Amount), len(participants))

		for _, id := range participants {
			if id == payer.ID || t.HasConfirmed(id) {
				continue
			}
			from := p.MemberByID(id)
			if from == nil {
				continue
			}
			obligations = append(obligations, Obligation{
				FromID:           from.ID,
				FromName:         from.Name,
				FromAvatar:       from.Avatar,
				ToID:             payer.ID,
				ToName:           payer.Name,
				ToAvatar:         payer.Avatar,
				Amount:           Round(share),
				TransactionID:    t.ID,
				TransactionTitle: t.Title,
			})
		}
	}

	sort.SliceStable(obligations, func(i, j int) bool {
		if obligations[i].ToName != obligations[j].ToName {
			return obligations[i].ToName < obligations[j].ToName
		}
		return obligations[i].FromName < obligations[j].FromName
	})
	return obligations
}
