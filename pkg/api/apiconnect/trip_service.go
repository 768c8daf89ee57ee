// Package apiconnect wires tripsplit.v1.TripService into Connect handlers
// and clients using the JSON codec from package api.
package apiconnect

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

// TripServiceName is the fully-qualified name of the TripService service.
const TripServiceName = "tripsplit.v1.TripService"

// Procedure paths, one per RPC.
const (
	TripServiceCreateTripProcedure        = "/tripsplit.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure           = "/tripsplit.v1.TripService/GetTrip"
	TripServiceListTripsProcedure         = "/tripsplit.v1.TripService/ListTrips"
	TripServiceAddMemberProcedure         = "/tripsplit.v1.TripService/AddMember"
	TripServiceAddExpenseProcedure        = "/tripsplit.v1.TripService/AddExpense"
	TripServiceListExpensesProcedure      = "/tripsplit.v1.TripService/ListExpenses"
	TripServiceDeleteExpenseProcedure     = "/tripsplit.v1.TripService/DeleteExpense"
	TripServiceGetSettlementProcedure     = "/tripsplit.v1.TripService/GetSettlement"
	TripServiceComputeSettlementProcedure = "/tripsplit.v1.TripService/ComputeSettlement"
)

// TripServiceHandler is implemented by the server side of TripService.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ComputeSettlement(context.Context, *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error)
}

// NewTripServiceHandler builds an HTTP handler for svc and returns the path
// prefix to mount it on. Only JSON payloads are served; other content types
// get 415 Unsupported Media Type.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)

	handlers := map[string]http.Handler{
		TripServiceCreateTripProcedure:        connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...),
		TripServiceGetTripProcedure:           connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...),
		TripServiceListTripsProcedure:         connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...),
		TripServiceAddMemberProcedure:         connect.NewUnaryHandler(TripServiceAddMemberProcedure, svc.AddMember, opts...),
		TripServiceAddExpenseProcedure:        connect.NewUnaryHandler(TripServiceAddExpenseProcedure, svc.AddExpense, opts...),
		TripServiceListExpensesProcedure:      connect.NewUnaryHandler(TripServiceListExpensesProcedure, svc.ListExpenses, opts...),
		TripServiceDeleteExpenseProcedure:     connect.NewUnaryHandler(TripServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		TripServiceGetSettlementProcedure:     connect.NewUnaryHandler(TripServiceGetSettlementProcedure, svc.GetSettlement, opts...),
		TripServiceComputeSettlementProcedure: connect.NewUnaryHandler(TripServiceComputeSettlementProcedure, svc.ComputeSettlement, opts...),
	}

	return "/" + TripServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if !acceptsJSON(r) {
			w.Header().Set("Accept-Post", acceptPost)
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// acceptPost lists the content types served: JSON over Connect, gRPC and gRPC-Web.
const acceptPost = "application/json, application/connect+json, application/grpc+json, application/grpc-web+json"

// acceptsJSON reports whether a POST carries a JSON payload. Messages are
// plain structs, so Connect's protobuf binary codec cannot encode them.
func acceptsJSON(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// TripServiceClient is a client for TripService.
type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ComputeSettlement(context.Context, *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error)
}

// NewTripServiceClient returns a client for the TripService mounted at baseURL.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)

	return &tripServiceClient{
		createTrip:        connect.NewClient[api.CreateTripRequest, api.CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		getTrip:           connect.NewClient[api.GetTripRequest, api.GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		listTrips:         connect.NewClient[api.ListTripsRequest, api.ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		addMember:         connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+TripServiceAddMemberProcedure, opts...),
		addExpense:        connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+TripServiceAddExpenseProcedure, opts...),
		listExpenses:      connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+TripServiceListExpensesProcedure, opts...),
		deleteExpense:     connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+TripServiceDeleteExpenseProcedure, opts...),
		getSettlement:     connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](httpClient, baseURL+TripServiceGetSettlementProcedure, opts...),
		computeSettlement: connect.NewClient[api.ComputeSettlementRequest, api.ComputeSettlementResponse](httpClient, baseURL+TripServiceComputeSettlementProcedure, opts...),
	}
}

type tripServiceClient struct {
	createTrip        *connect.Client[api.CreateTripRequest, api.CreateTripResponse]
	getTrip           *connect.Client[api.GetTripRequest, api.GetTripResponse]
	listTrips         *connect.Client[api.ListTripsRequest, api.ListTripsResponse]
	addMember         *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	addExpense        *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	listExpenses      *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	deleteExpense     *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	getSettlement     *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	computeSettlement *connect.Client[api.ComputeSettlementRequest, api.ComputeSettlementResponse]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *tripServiceClient) ComputeSettlement(ctx context.Context, req *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error) {
	return c.computeSettlement.CallUnary(ctx, req)
}

// UnimplementedTripServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTripServiceHandler struct{}

var errUnimplemented = errors.New("not implemented")

func (UnimplementedTripServiceHandler) CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) ComputeSettlement(context.Context, *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}
