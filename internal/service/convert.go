package service

import (
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/paylink"
	"github.com/mmynk/tripsplit/pkg/api"
)

func memberToAPI(m *models.Member) *api.Member {
	return &api.Member{
		ID:             m.ID,
		Name:           m.Name,
		PaymentAddress: m.PaymentAddress,
		JoinedAt:       m.JoinedAt,
	}
}

func tripToAPI(trip *models.Trip) *api.Trip {
	out := &api.Trip{
		ID:        trip.ID,
		Name:      trip.Name,
		CreatedAt: trip.CreatedAt,
	}
	for i := range trip.Members {
		out.Members = append(out.Members, memberToAPI(&trip.Members[i]))
	}
	return out
}

func expenseToAPI(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:        e.ID,
		TripID:    e.TripID,
		Title:     e.Title,
		Amount:    e.Amount.Float64(),
		PayerID:   e.PayerID,
		CreatedAt: e.CreatedAt,
	}
}

func memberToParticipant(m models.Member) calculator.Participant {
	return calculator.Participant{
		ID:             m.ID,
		Name:           m.Name,
		PaymentAddress: m.PaymentAddress,
	}
}

func expenseToCalculator(e *models.Expense) calculator.Expense {
	return calculator.Expense{
		ID:        e.ID,
		Title:     e.Title,
		Amount:    e.Amount.Float64(),
		PayerID:   e.PayerID,
		CreatedAt: e.CreatedAt,
	}
}

func balancesToAPI(balances []calculator.Balance) []*api.Balance {
	out := make([]*api.Balance, len(balances))
	for i, b := range balances {
		out[i] = &api.Balance{
			MemberID:   b.Participant.ID,
			MemberName: b.Participant.Name,
			Paid:       b.Paid.Float64(),
			Share:      b.Share.Float64(),
			Net:        b.Net.Float64(),
		}
	}
	return out
}

func transfersToAPI(txs []calculator.Transaction, currency, note string) []*api.Transfer {
	out := make([]*api.Transfer, len(txs))
	for i, tx := range txs {
		out[i] = &api.Transfer{
			FromID:   tx.From.ID,
			FromName: tx.From.Name,
			ToID:     tx.To.ID,
			ToName:   tx.To.Name,
			Amount:   tx.Amount.Float64(),
			PayLink: paylink.UPI(paylink.Request{
				PayeeAddress: tx.To.PaymentAddress,
				PayeeName:    tx.To.Name,
				Amount:       tx.Amount,
				Currency:     currency,
				Note:         note,
			}),
		}
	}
	return out
}
