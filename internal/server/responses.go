package server

import (
	"github.com/poyulin/tally/internal/ledger"
	"github.com/poyulin/tally/internal/models"
)

// Monetary values are kept unrounded inside the engine and rounded to
// 2 decimals here, at the point of output.

type memberBalanceResponse struct {
	MemberID                   string   `json:"memberId"`
	Name                       string   `json:"name"`
	Avatar                     string   `json:"avatar"`
	Paid                       float64  `json:"paid"`
	ShouldPay                  float64  `json:"shouldPay"`
	Balance                    float64  `json:"balance"`
	ParticipatedTransactionIDs []string `json:"participatedTransactionIds"`
}

type allStatsResponse struct {
	TotalExpense float64                 `json:"totalExpense"`
	Members      []memberBalanceResponse `json:"members"`
}

func roundedAllStats(stats ledger.AllMemberStats) allStatsResponse {
	resp := allStatsResponse{
		TotalExpense: ledger.Round(stats.TotalExpense),
		Members:      make([]memberBalanceResponse, len(stats.Members)),
	}
	for i, mb := range stats.Members {
		resp.Members[i] = memberBalanceResponse{
			MemberID:                   mb.MemberID,
			Name:                       mb.Name,
			Avatar:                     mb.Avatar,
			Paid:                       ledger.Round(mb.Paid),
			ShouldPay:                  ledger.Round(mb.ShouldPay),
			Balance:                    ledger.Round(mb.Balance),
			ParticipatedTransactionIDs: mb.ParticipatedTransactionIDs,
		}
	}
	return resp
}

type transactionShareResponse struct {
	Transaction   models.Transaction `json:"transaction"`
	PersonalShare float64            `json:"personalShare"`
	TotalAmount   float64            `json:"totalAmount"`
}

type memberStatsResponse struct {
	MemberID                 string                     `json:"memberId"`
	TotalPaid                float64                    `json:"totalPaid"`
	ShouldPay                float64                    `json:"shouldPay"`
	Balance                  float64                    `json:"balance"`
	CategoryBreakdown        map[string]float64         `json:"categoryBreakdown"`
	PaidTransactions         []transactionShareResponse `json:"paidTransactions"`
	ParticipatedTransactions []transactionShareResponse `json:"participatedTransactions"`
	Settlements              []ledger.Transfer          `json:"settlements"`
}

func roundedMemberStats(stats ledger.MemberStats) memberStatsResponse {
	breakdown := make(map[string]float64, len(stats.CategoryBreakdown))
	for category, v := range stats.CategoryBreakdown {
		breakdown[category] = ledger.Round(v)
	}
	return memberStatsResponse{
		MemberID:                 stats.MemberID,
		TotalPaid:                ledger.Round(stats.TotalPaid),
		ShouldPay:                ledger.Round(stats.ShouldPay),
		Balance:                  ledger.Round(stats.Balance),
		CategoryBreakdown:        breakdown,
		PaidTransactions:         roundedShares(stats.PaidTransactions),
		ParticipatedTransactions: roundedShares(stats.ParticipatedTransactions),
		Settlements:              stats.Settlements,
	}
}

func roundedShares(shares []ledger.TransactionShare) []transactionShareResponse {
	out := make([]transactionShareResponse, len(shares))
	for i, s := range shares {
		out[i] = transactionShareResponse{
			Transaction:   s.Transaction,
			PersonalShare: ledger.Round(s.PersonalShare),
			TotalAmount:   ledger.Round(s.TotalAmount),
		}
	}
	return out
}
