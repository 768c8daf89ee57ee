package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/money"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
	"github.com/mmynk/tripsplit/pkg/api/apiconnect"
)

// Settlement sources, used as metric labels.
const (
	sourceTrip     = "trip"
	sourceSnapshot = "snapshot"
)

// TripService implements the Connect TripService
type TripService struct {
	apiconnect.UnimplementedTripServiceHandler
	store    storage.Store
	metrics  *metrics.Recorder
	currency string
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store, recorder *metrics.Recorder, currency string) *TripService {
	return &TripService{store: store, metrics: recorder, currency: currency}
}

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, calculator.ErrInvalidInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// findMember returns the member with the given ID, or nil.
func findMember(memberID string, members []models.Member) *models.Member {
	for i := range members {
		if members[i].ID == memberID {
			return &members[i]
		}
	}
	return nil
}

// CreateTrip creates a new trip with its initial members.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip name required"))
	}

	trip := &models.Trip{Name: name}
	for _, m := range req.Msg.Members {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("member name required"))
		}
		trip.Members = append(trip.Members, models.Member{
			Name:           strings.TrimSpace(m.Name),
			PaymentAddress: strings.TrimSpace(m.PaymentAddress),
		})
	}

	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "members_count", len(trip.Members))

	return connect.NewResponse(&api.CreateTripResponse{Trip: tripToAPI(trip)}), nil
}

// GetTrip retrieves a trip and its members.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		slog.Error("GetTrip failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetTripResponse{Trip: tripToAPI(trip)}), nil
}

// ListTrips lists all trips without members.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		slog.Error("ListTrips failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Trip, len(trips))
	for i, trip := range trips {
		out[i] = tripToAPI(trip)
	}

	return connect.NewResponse(&api.ListTripsResponse{Trips: out}), nil
}

// AddMember adds a participant to an existing trip.
func (s *TripService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("member name required"))
	}

	member := &models.Member{
		TripID:         req.Msg.TripID,
		Name:           name,
		PaymentAddress: strings.TrimSpace(req.Msg.PaymentAddress),
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		slog.Error("AddMember failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member added", "trip_id", member.TripID, "member_id", member.ID)

	return connect.NewResponse(&api.AddMemberResponse{Member: memberToAPI(member)}), nil
}

// AddExpense records a payment made by one trip member.
func (s *TripService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	amount, err := money.FromFloat(req.Msg.Amount)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if amount <= 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("amount must be positive"))
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		slog.Error("AddExpense: failed to get trip", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	// Validate payer
	if findMember(req.Msg.PayerID, trip.Members) == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("payer_id '%s' must be a member of the trip", req.Msg.PayerID))
	}

	// Keep the trip total representable so settlements stay exact.
	existing, err := s.store.ListExpensesByTrip(ctx, trip.ID)
	if err != nil {
		slog.Error("AddExpense: failed to list expenses", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}
	if _, err := sumExpenses(existing, amount); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	expense := &models.Expense{
		TripID:  trip.ID,
		Title:   strings.TrimSpace(req.Msg.Title),
		Amount:  amount,
		PayerID: req.Msg.PayerID,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Debug("Expense added",
		"trip_id", trip.ID,
		"expense_id", expense.ID,
		"amount", expense.Amount.String(),
		"payer_id", expense.PayerID,
	)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// ListExpenses lists a trip's expenses, newest first.
func (s *TripService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if _, err := s.store.GetTrip(ctx, req.Msg.TripID); err != nil {
		return nil, toConnectError(err)
	}

	expenses, err := s.store.ListExpensesByTrip(ctx, req.Msg.TripID)
	if err != nil {
		slog.Error("ListExpenses failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	total, err := sumExpenses(expenses, 0)
	if err != nil {
		slog.Error("ListExpenses failed - total overflows", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = expenseToAPI(e)
	}

	return connect.NewResponse(&api.ListExpensesResponse{
		Expenses: out,
		Total:    total.Float64(),
	}), nil
}

// DeleteExpense removes an expense.
func (s *TripService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	if req.Msg.ExpenseID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("expense_id required"))
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// GetSettlement computes balances and transfers for a stored trip.
func (s *TripService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	tripID := req.Msg.TripID
	if tripID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip_id required"))
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		slog.Error("GetSettlement failed - trip not found", "trip_id", tripID, "error", err)
		return nil, toConnectError(err)
	}

	expenses, err := s.store.ListExpensesByTrip(ctx, tripID)
	if err != nil {
		slog.Error("GetSettlement failed - could not list expenses", "trip_id", tripID, "error", err)
		return nil, toConnectError(err)
	}

	participants := make([]calculator.Participant, len(trip.Members))
	for i, m := range trip.Members {
		participants[i] = memberToParticipant(m)
	}
	calcExpenses := make([]calculator.Expense, len(expenses))
	for i, e := range expenses {
		calcExpenses[i] = expenseToCalculator(e)
	}

	plan, err := s.settle(sourceTrip, participants, calcExpenses)
	if err != nil {
		slog.Error("GetSettlement failed - calculation error", "trip_id", tripID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetSettlement successful",
		"trip_id", tripID,
		"expenses_count", len(expenses),
		"members_count", len(plan.Balances),
		"transfers_count", len(plan.Transactions),
	)

	return connect.NewResponse(&api.GetSettlementResponse{
		Balances:  balancesToAPI(plan.Balances),
		Transfers: transfersToAPI(plan.Transactions, s.currency, "Settle up: "+trip.Name),
		Total:     planTotal(plan).Float64(),
	}), nil
}

// ComputeSettlement settles an inline snapshot of participants and expenses.
func (s *TripService) ComputeSettlement(ctx context.Context, req *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error) {
	participants := make([]calculator.Participant, 0, len(req.Msg.Participants))
	for _, m := range req.Msg.Participants {
		if m == nil {
			continue
		}
		participants = append(participants, calculator.Participant{
			ID:             m.ID,
			Name:           m.Name,
			PaymentAddress: m.PaymentAddress,
		})
	}

	expenses := make([]calculator.Expense, 0, len(req.Msg.Expenses))
	for _, e := range req.Msg.Expenses {
		if e == nil {
			continue
		}
		expenses = append(expenses, calculator.Expense{
			ID:        e.ID,
			Title:     e.Title,
			Amount:    e.Amount,
			PayerID:   e.PayerID,
			CreatedAt: e.CreatedAt,
		})
	}

	plan, err := s.settle(sourceSnapshot, participants, expenses)
	if err != nil {
		slog.Warn("ComputeSettlement rejected snapshot", "error", err)
		return nil, toConnectError(err)
	}

	currency := req.Msg.Currency
	if currency == "" {
		currency = s.currency
	}

	return connect.NewResponse(&api.ComputeSettlementResponse{
		Balances:  balancesToAPI(plan.Balances),
		Transfers: transfersToAPI(plan.Transactions, currency, "Settle up"),
		Total:     planTotal(plan).Float64(),
	}), nil
}

// settle runs the calculator and records the outcome. A failed settlement
// check is logged and counted but the plan is still returned: it never
// contains invented transfers, only an unsettled residual.
func (s *TripService) settle(source string, participants []calculator.Participant, expenses []calculator.Expense) (calculator.Plan, error) {
	plan, err := calculator.Settle(participants, expenses)
	if err != nil {
		s.metrics.ObserveInvalid(source)
		return calculator.Plan{}, err
	}

	if err := calculator.CheckSettlement(plan.Balances, plan.Transactions); err != nil {
		slog.Error("Settlement plan does not balance", "source", source, "error", err)
		s.metrics.ObserveRoundingInconsistency()
	}
	s.metrics.ObserveSettlement(source, len(plan.Transactions))

	return plan, nil
}

// sumExpenses adds up expense amounts starting from extra.
func sumExpenses(expenses []*models.Expense, extra money.Amount) (money.Amount, error) {
	total := extra
	for _, e := range expenses {
		var err error
		if total, err = money.Add(total, e.Amount); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// planTotal is the total trip spend: the sum of everything paid.
// ComputeBalances has already checked that this sum fits.
func planTotal(plan calculator.Plan) money.Amount {
	var total money.Amount
	for _, b := range plan.Balances {
		total += b.Paid
	}
	return total
}
