package ledger

import (
	"math"
	"testing"

	"github.com/poyulin/tally/internal/models"
)

// testProject builds a project whose member IDs equal their names, which
// keeps the assertions readable.
func testProject(names ...string) *models.Project {
	p := models.NewProject("p1", "Trip", "")
	for _, name := range names {
		p.Members = append(p.Members, models.Member{ID: name, Name: name, Avatar: "😊"})
	}
	return p
}

func tx(id string, amount float64, payerID string, participants ...string) models.Transaction {
	if participants == nil {
		participants = []string{}
	}
	return models.Transaction{
		ID:           id,
		Title:        id,
		Date:         "2025-06-01",
		Amount:       models.Amount(amount),
		PayerID:      payerID,
		Category:     "Food",
		Participants: participants,
		PaidMembers:  []string{},
	}
}

func balanceOf(t *testing.T, stats AllMemberStats, memberID string) float64 {
	t.Helper()
	for _, mb := range stats.Members {
		if mb.MemberID == memberID {
			return mb.Balance
		}
	}
	t.Fatalf("member %s not in stats", memberID)
	return 0
}

func TestComputeAllMemberStats(t *testing.T) {
	p := testProject("A", "B", "C")
	p.Transactions = append(p.Transactions, tx("t1", 30, "A", "A", "B", "C"))

	stats := ComputeAllMemberStats(p)

	if math.Abs(stats.TotalExpense-30) > 0.01 {
		t.Errorf("TotalExpense = %v, want 30", stats.TotalExpense)
	}
	wantBalances := map[string]float64{"A": 20, "B": -10, "C": -10}
	for id, want := range wantBalances {
		if got := balanceOf(t, stats, id); math.Abs(got-want) > 0.01 {
			t.Errorf("balance[%s] = %v, want %v", id, got, want)
		}
	}
}

func TestComputeAllMemberStatsSecondTransaction(t *testing.T) {
	// B pays 9 for A and C only; combined with t1 the balances become
	// A=15.5, B=-1, C=-14.5.
	p := testProject("A", "B", "C")
	p.Transactions = append(p.Transactions,
		tx("t1", 30, "A", "A", "B", "C"),
		tx("t2", 9, "B", "A", "C"),
	)

	stats := ComputeAllMemberStats(p)

	wantBalances := map[string]float64{"A": 15.5, "B": -1, "C": -14.5}
	for id, want := range wantBalances {
		if got := balanceOf(t, stats, id); math.Abs(got-want) > 0.01 {
			t.Errorf("balance[%s] = %v, want %v", id, got, want)
		}
	}
}

func TestZeroSumInvariant(t *testing.T) {
	p := testProject("A", "B", "C", "D")
	p.Transactions = append(p.Transactions,
		tx("t1", 100, "A", "A", "B", "C"),
		tx("t2", 45.67, "B", "B", "D"),
		tx("t3", 12.5, "C"), // empty participants: shared by everyone
		tx("t4", 0.03, "D", "A"),
	)

	stats := ComputeAllMemberStats(p)

	var sum float64
	for _, mb := range stats.Members {
		sum += mb.Balance
	}
	if math.Abs(sum) > 0.01 {
		t.Errorf("sum of balances = %v, want ~0", sum)
	}
}

func TestFallbackParticipants(t *testing.T) {
	// Empty participant set means "all current members", resolved at read
	// time: adding a member changes the share on the next query.
	p := testProject("A", "B")
	p.Transactions = append(p.Transactions, tx("t1", 30, "A"))

	stats := ComputeAllMemberStats(p)
	if got := balanceOf(t, stats, "B"); math.Abs(got-(-15)) > 0.01 {
		t.Errorf("balance[B] with 2 members = %v, want -15", got)
	}

	p.Members = append(p.Members, models.Member{ID: "C", Name: "C"})

	stats = ComputeAllMemberStats(p)
	if got := balanceOf(t, stats, "B"); math.Abs(got-(-10)) > 0.01 {
		t.Errorf("balance[B] with 3 members = %v, want -10", got)
	}
	if got := balanceOf(t, stats, "C"); math.Abs(got-(-10)) > 0.01 {
		t.Errorf("balance[C] = %v, want -10", got)
	}
}

func TestDanglingPayerExcluded(t *testing.T) {
	// A transaction whose payer matches no current member contributes no
	// paid credit but still counts toward total expense and shares.
	p := testProject("A", "B")
	p.Transactions = append(p.Transactions, tx("t1", 20, "ghost", "A", "B"))

	stats := ComputeAllMemberStats(p)

	if math.Abs(stats.TotalExpense-20) > 0.01 {
		t.Errorf("TotalExpense = %v, want 20", stats.TotalExpense)
	}
	for _, id := range []string{"A", "B"} {
		if got := balanceOf(t, stats, id); math.Abs(got-(-10)) > 0.01 {
			t.Errorf("balance[%s] = %v, want -10", id, got)
		}
	}
}

func TestComputeMemberStats(t *testing.T) {
	p := testProject("A", "B", "C")
	p.Transactions = append(p.Transactions,
		tx("t1", 30, "A", "A", "B", "C"),
		tx("t2", 9, "B", "A", "C"),
	)

	t.Run("payer", func(t *testing.T) {
		stats, ok := ComputeMemberStats(p, "A")
		if !ok {
			t.Fatal("expected member A to exist")
		}
		if math.Abs(stats.TotalPaid-30) > 0.01 {
			t.Errorf("TotalPaid = %v, want 30", stats.TotalPaid)
		}
		// A owes nothing on t1 (payer) but 4.50 on t2.
		if math.Abs(stats.ShouldPay-4.5) > 0.01 {
			t.Errorf("ShouldPay = %v, want 4.5", stats.ShouldPay)
		}
		if len(stats.PaidTransactions) != 1 || stats.PaidTransactions[0].Transaction.ID != "t1" {
			t.Errorf("PaidTransactions = %+v, want [t1]", stats.PaidTransactions)
		}
		if len(stats.ParticipatedTransactions) != 2 {
			t.Errorf("ParticipatedTransactions count = %d, want 2", len(stats.ParticipatedTransactions))
		}
		// Category breakdown accumulates shares: 10 from t1 + 4.5 from t2.
		if got := stats.CategoryBreakdown["Food"]; math.Abs(got-14.5) > 0.01 {
			t.Errorf("CategoryBreakdown[Food] = %v, want 14.5", got)
		}
		if len(stats.Settlements) == 0 {
			t.Error("expected embedded settlement plan")
		}
	})

	t.Run("non-payer participant", func(t *testing.T) {
		stats, ok := ComputeMemberStats(p, "B")
		if !ok {
			t.Fatal("expected member B to exist")
		}
		if math.Abs(stats.TotalPaid-9) > 0.01 {
			t.Errorf("TotalPaid = %v, want 9", stats.TotalPaid)
		}
		if math.Abs(stats.ShouldPay-10) > 0.01 {
			t.Errorf("ShouldPay = %v, want 10", stats.ShouldPay)
		}
		if math.Abs(stats.Balance-(-1)) > 0.01 {
			t.Errorf("Balance = %v, want -1", stats.Balance)
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		if _, ok := ComputeMemberStats(p, "nope"); ok {
			t.Error("expected ok=false for unknown member")
		}
	})
}

func TestCategoryTotals(t *testing.T) {
	p := testProject("A", "B")
	food := tx("t1", 30, "A", "A", "B")
	transport := tx("t2", 12.5, "B", "A", "B")
	transport.Category = "Transportation"
	moreFood := tx("t3", 7.5, "A", "A")
	p.Transactions = append(p.Transactions, food, transport, moreFood)

	totals := CategoryTotals(p)

	if got := totals["Food"]; math.Abs(got-37.5) > 0.01 {
		t.Errorf("totals[Food] = %v, want 37.5", got)
	}
	if got := totals["Transportation"]; math.Abs(got-12.5) > 0.01 {
		t.Errorf("totals[Transportation] = %v, want 12.5", got)
	}
}
