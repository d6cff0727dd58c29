package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// BillServiceName is the fully-qualified name of the BillService service.
	BillServiceName = "billsplit.v1.BillService"
	// AuthServiceName is the fully-qualified name of the AuthService service.
	AuthServiceName = "billsplit.v1.AuthService"
)

// Procedure paths, of the form "/<service>/<method>".
const (
	BillServiceCreateSessionProcedure          = "/billsplit.v1.BillService/CreateSession"
	BillServiceGetSessionProcedure             = "/billsplit.v1.BillService/GetSession"
	BillServiceDeleteSessionProcedure          = "/billsplit.v1.BillService/DeleteSession"
	BillServiceAddParticipantProcedure         = "/billsplit.v1.BillService/AddParticipant"
	BillServiceRemoveParticipantProcedure      = "/billsplit.v1.BillService/RemoveParticipant"
	BillServiceReplaceItemsProcedure           = "/billsplit.v1.BillService/ReplaceItems"
	BillServiceAddItemProcedure                = "/billsplit.v1.BillService/AddItem"
	BillServiceRemoveItemProcedure             = "/billsplit.v1.BillService/RemoveItem"
	BillServiceUpdateItemAmountProcedure       = "/billsplit.v1.BillService/UpdateItemAmount"
	BillServiceAssignItemProcedure             = "/billsplit.v1.BillService/AssignItem"
	BillServiceUnassignItemProcedure           = "/billsplit.v1.BillService/UnassignItem"
	BillServiceUpdateTaxSettingsProcedure      = "/billsplit.v1.BillService/UpdateTaxSettings"
	BillServiceUpdateDiscountSettingsProcedure = "/billsplit.v1.BillService/UpdateDiscountSettings"
	BillServiceResetBillProcedure              = "/billsplit.v1.BillService/ResetBill"
	BillServiceGetSummaryProcedure             = "/billsplit.v1.BillService/GetSummary"
	BillServiceShareSummaryProcedure           = "/billsplit.v1.BillService/ShareSummary"
	AuthServiceLoginProcedure                  = "/billsplit.v1.AuthService/Login"
)

// withJSON puts the plain-struct codec ahead of caller options.
func withJSON[T any](opts []T, codec T) []T {
	return append([]T{codec}, opts...)
}

// BillServiceHandler is implemented by the server side of billsplit.v1.BillService.
type BillServiceHandler interface {
	// CreateSession creates a session with an optional roster.
	CreateSession(context.Context, *connect.Request[CreateSessionRequest]) (*connect.Response[SessionResponse], error)
	// GetSession loads a session and its current summary.
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[SessionResponse], error)
	// DeleteSession removes a session.
	DeleteSession(context.Context, *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error)
	// AddParticipant adds a name to the roster.
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[SessionResponse], error)
	// RemoveParticipant removes a name from the roster and every item.
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[SessionResponse], error)
	// ReplaceItems swaps the whole item ledger.
	ReplaceItems(context.Context, *connect.Request[ReplaceItemsRequest]) (*connect.Response[SessionResponse], error)
	// AddItem appends a manually entered item.
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[SessionResponse], error)
	// RemoveItem drops an item from the ledger.
	RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[SessionResponse], error)
	// UpdateItemAmount edits an item's price.
	UpdateItemAmount(context.Context, *connect.Request[UpdateItemAmountRequest]) (*connect.Response[SessionResponse], error)
	// AssignItem adds a roster member to an item.
	AssignItem(context.Context, *connect.Request[AssignItemRequest]) (*connect.Response[SessionResponse], error)
	// UnassignItem removes a person from an item.
	UnassignItem(context.Context, *connect.Request[UnassignItemRequest]) (*connect.Response[SessionResponse], error)
	// UpdateTaxSettings replaces the tax settings.
	UpdateTaxSettings(context.Context, *connect.Request[UpdateTaxSettingsRequest]) (*connect.Response[SessionResponse], error)
	// UpdateDiscountSettings replaces the discount settings.
	UpdateDiscountSettings(context.Context, *connect.Request[UpdateDiscountSettingsRequest]) (*connect.Response[SessionResponse], error)
	// ResetBill clears the ledger and restores default settings.
	ResetBill(context.Context, *connect.Request[ResetBillRequest]) (*connect.Response[SessionResponse], error)
	// GetSummary returns the formatted breakdown.
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
	// ShareSummary returns the plain-text summary.
	ShareSummary(context.Context, *connect.Request[ShareSummaryRequest]) (*connect.Response[ShareSummaryResponse], error)
}

// NewBillServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSON(opts, connect.HandlerOption(connect.WithCodec(JSONCodec{})))
	mux := http.NewServeMux()
	mux.Handle(BillServiceCreateSessionProcedure, connect.NewUnaryHandler(BillServiceCreateSessionProcedure, svc.CreateSession, opts...))
	mux.Handle(BillServiceGetSessionProcedure, connect.NewUnaryHandler(BillServiceGetSessionProcedure, svc.GetSession, opts...))
	mux.Handle(BillServiceDeleteSessionProcedure, connect.NewUnaryHandler(BillServiceDeleteSessionProcedure, svc.DeleteSession, opts...))
	mux.Handle(BillServiceAddParticipantProcedure, connect.NewUnaryHandler(BillServiceAddParticipantProcedure, svc.AddParticipant, opts...))
	mux.Handle(BillServiceRemoveParticipantProcedure, connect.NewUnaryHandler(BillServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...))
	mux.Handle(BillServiceReplaceItemsProcedure, connect.NewUnaryHandler(BillServiceReplaceItemsProcedure, svc.ReplaceItems, opts...))
	mux.Handle(BillServiceAddItemProcedure, connect.NewUnaryHandler(BillServiceAddItemProcedure, svc.AddItem, opts...))
	mux.Handle(BillServiceRemoveItemProcedure, connect.NewUnaryHandler(BillServiceRemoveItemProcedure, svc.RemoveItem, opts...))
	mux.Handle(BillServiceUpdateItemAmountProcedure, connect.NewUnaryHandler(BillServiceUpdateItemAmountProcedure, svc.UpdateItemAmount, opts...))
	mux.Handle(BillServiceAssignItemProcedure, connect.NewUnaryHandler(BillServiceAssignItemProcedure, svc.AssignItem, opts...))
	mux.Handle(BillServiceUnassignItemProcedure, connect.NewUnaryHandler(BillServiceUnassignItemProcedure, svc.UnassignItem, opts...))
	mux.Handle(BillServiceUpdateTaxSettingsProcedure, connect.NewUnaryHandler(BillServiceUpdateTaxSettingsProcedure, svc.UpdateTaxSettings, opts...))
	mux.Handle(BillServiceUpdateDiscountSettingsProcedure, connect.NewUnaryHandler(BillServiceUpdateDiscountSettingsProcedure, svc.UpdateDiscountSettings, opts...))
	mux.Handle(BillServiceResetBillProcedure, connect.NewUnaryHandler(BillServiceResetBillProcedure, svc.ResetBill, opts...))
	mux.Handle(BillServiceGetSummaryProcedure, connect.NewUnaryHandler(BillServiceGetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(BillServiceShareSummaryProcedure, connect.NewUnaryHandler(BillServiceShareSummaryProcedure, svc.ShareSummary, opts...))
	return "/" + BillServiceName + "/", mux
}

// BillServiceClient is a client for the billsplit.v1.BillService service.
type BillServiceClient interface {
	CreateSession(context.Context, *connect.Request[CreateSessionRequest]) (*connect.Response[SessionResponse], error)
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[SessionResponse], error)
	DeleteSession(context.Context, *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[SessionResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[SessionResponse], error)
	ReplaceItems(context.Context, *connect.Request[ReplaceItemsRequest]) (*connect.Response[SessionResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[SessionResponse], error)
	RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[SessionResponse], error)
	UpdateItemAmount(context.Context, *connect.Request[UpdateItemAmountRequest]) (*connect.Response[SessionResponse], error)
	AssignItem(context.Context, *connect.Request[AssignItemRequest]) (*connect.Response[SessionResponse], error)
	UnassignItem(context.Context, *connect.Request[UnassignItemRequest]) (*connect.Response[SessionResponse], error)
	UpdateTaxSettings(context.Context, *connect.Request[UpdateTaxSettingsRequest]) (*connect.Response[SessionResponse], error)
	UpdateDiscountSettings(context.Context, *connect.Request[UpdateDiscountSettingsRequest]) (*connect.Response[SessionResponse], error)
	ResetBill(context.Context, *connect.Request[ResetBillRequest]) (*connect.Response[SessionResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
	ShareSummary(context.Context, *connect.Request[ShareSummaryRequest]) (*connect.Response[ShareSummaryResponse], error)
}

// NewBillServiceClient constructs a client for the billsplit.v1.BillService
// service. baseURL is the server root, e.g. http://localhost:8080.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	opts = withJSON(opts, connect.ClientOption(connect.WithCodec(JSONCodec{})))
	return &billServiceClient{
		createSession:          connect.NewClient[CreateSessionRequest, SessionResponse](httpClient, baseURL+BillServiceCreateSessionProcedure, opts...),
		getSession:             connect.NewClient[GetSessionRequest, SessionResponse](httpClient, baseURL+BillServiceGetSessionProcedure, opts...),
		deleteSession:          connect.NewClient[DeleteSessionRequest, DeleteSessionResponse](httpClient, baseURL+BillServiceDeleteSessionProcedure, opts...),
		addParticipant:         connect.NewClient[AddParticipantRequest, SessionResponse](httpClient, baseURL+BillServiceAddParticipantProcedure, opts...),
		removeParticipant:      connect.NewClient[RemoveParticipantRequest, SessionResponse](httpClient, baseURL+BillServiceRemoveParticipantProcedure, opts...),
		replaceItems:           connect.NewClient[ReplaceItemsRequest, SessionResponse](httpClient, baseURL+BillServiceReplaceItemsProcedure, opts...),
		addItem:                connect.NewClient[AddItemRequest, SessionResponse](httpClient, baseURL+BillServiceAddItemProcedure, opts...),
		removeItem:             connect.NewClient[RemoveItemRequest, SessionResponse](httpClient, baseURL+BillServiceRemoveItemProcedure, opts...),
		updateItemAmount:       connect.NewClient[UpdateItemAmountRequest, SessionResponse](httpClient, baseURL+BillServiceUpdateItemAmountProcedure, opts...),
		assignItem:             connect.NewClient[AssignItemRequest, SessionResponse](httpClient, baseURL+BillServiceAssignItemProcedure, opts...),
		unassignItem:           connect.NewClient[UnassignItemRequest, SessionResponse](httpClient, baseURL+BillServiceUnassignItemProcedure, opts...),
		updateTaxSettings:      connect.NewClient[UpdateTaxSettingsRequest, SessionResponse](httpClient, baseURL+BillServiceUpdateTaxSettingsProcedure, opts...),
		updateDiscountSettings: connect.NewClient[UpdateDiscountSettingsRequest, SessionResponse](httpClient, baseURL+BillServiceUpdateDiscountSettingsProcedure, opts...),
		resetBill:              connect.NewClient[ResetBillRequest, SessionResponse](httpClient, baseURL+BillServiceResetBillProcedure, opts...),
		getSummary:             connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+BillServiceGetSummaryProcedure, opts...),
		shareSummary:           connect.NewClient[ShareSummaryRequest, ShareSummaryResponse](httpClient, baseURL+BillServiceShareSummaryProcedure, opts...),
	}
}

type billServiceClient struct {
	createSession          *connect.Client[CreateSessionRequest, SessionResponse]
	getSession             *connect.Client[GetSessionRequest, SessionResponse]
	deleteSession          *connect.Client[DeleteSessionRequest, DeleteSessionResponse]
	addParticipant         *connect.Client[AddParticipantRequest, SessionResponse]
	removeParticipant      *connect.Client[RemoveParticipantRequest, SessionResponse]
	replaceItems           *connect.Client[ReplaceItemsRequest, SessionResponse]
	addItem                *connect.Client[AddItemRequest, SessionResponse]
	removeItem             *connect.Client[RemoveItemRequest, SessionResponse]
	updateItemAmount       *connect.Client[UpdateItemAmountRequest, SessionResponse]
	assignItem             *connect.Client[AssignItemRequest, SessionResponse]
	unassignItem           *connect.Client[UnassignItemRequest, SessionResponse]
	updateTaxSettings      *connect.Client[UpdateTaxSettingsRequest, SessionResponse]
	updateDiscountSettings *connect.Client[UpdateDiscountSettingsRequest, SessionResponse]
	resetBill              *connect.Client[ResetBillRequest, SessionResponse]
	getSummary             *connect.Client[GetSummaryRequest, GetSummaryResponse]
	shareSummary           *connect.Client[ShareSummaryRequest, ShareSummaryResponse]
}

func (c *billServiceClient) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[SessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *billServiceClient) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[SessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *billServiceClient) DeleteSession(ctx context.Context, req *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error) {
	return c.deleteSession.CallUnary(ctx, req)
}

func (c *billServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[SessionResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *billServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[SessionResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *billServiceClient) ReplaceItems(ctx context.Context, req *connect.Request[ReplaceItemsRequest]) (*connect.Response[SessionResponse], error) {
	return c.replaceItems.CallUnary(ctx, req)
}

func (c *billServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[SessionResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *billServiceClient) RemoveItem(ctx context.Context, req *connect.Request[RemoveItemRequest]) (*connect.Response[SessionResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *billServiceClient) UpdateItemAmount(ctx context.Context, req *connect.Request[UpdateItemAmountRequest]) (*connect.Response[SessionResponse], error) {
	return c.updateItemAmount.CallUnary(ctx, req)
}

func (c *billServiceClient) AssignItem(ctx context.Context, req *connect.Request[AssignItemRequest]) (*connect.Response[SessionResponse], error) {
	return c.assignItem.CallUnary(ctx, req)
}

func (c *billServiceClient) UnassignItem(ctx context.Context, req *connect.Request[UnassignItemRequest]) (*connect.Response[SessionResponse], error) {
	return c.unassignItem.CallUnary(ctx, req)
}

func (c *billServiceClient) UpdateTaxSettings(ctx context.Context, req *connect.Request[UpdateTaxSettingsRequest]) (*connect.Response[SessionResponse], error) {
	return c.updateTaxSettings.CallUnary(ctx, req)
}

func (c *billServiceClient) UpdateDiscountSettings(ctx context.Context, req *connect.Request[UpdateDiscountSettingsRequest]) (*connect.Response[SessionResponse], error) {
	return c.updateDiscountSettings.CallUnary(ctx, req)
}

func (c *billServiceClient) ResetBill(ctx context.Context, req *connect.Request[ResetBillRequest]) (*connect.Response[SessionResponse], error) {
	return c.resetBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *billServiceClient) ShareSummary(ctx context.Context, req *connect.Request[ShareSummaryRequest]) (*connect.Response[ShareSummaryResponse], error) {
	return c.shareSummary.CallUnary(ctx, req)
}

// AuthServiceHandler is implemented by the server side of billsplit.v1.AuthService.
type AuthServiceHandler interface {
	// Login exchanges the shared password for a bearer token.
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSON(opts, connect.HandlerOption(connect.WithCodec(JSONCodec{})))
	mux := http.NewServeMux()
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	return "/" + AuthServiceName + "/", mux
}

// AuthServiceClient is a client for the billsplit.v1.AuthService service.
type AuthServiceClient interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// NewAuthServiceClient constructs a client for the billsplit.v1.AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	opts = withJSON(opts, connect.ClientOption(connect.WithCodec(JSONCodec{})))
	return &authServiceClient{
		login: connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

type authServiceClient struct {
	login *connect.Client[LoginRequest, LoginResponse]
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

