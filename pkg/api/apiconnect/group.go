package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService.
const GroupServiceName = "settleup.v1.GroupService"

// Procedure paths, one per RPC.
const (
	GroupServiceCreateGroupProcedure    = "/settleup.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure       = "/settleup.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure     = "/settleup.v1.GroupService/ListGroups"
	GroupServiceRenameGroupProcedure    = "/settleup.v1.GroupService/RenameGroup"
	GroupServiceDeleteGroupProcedure    = "/settleup.v1.GroupService/DeleteGroup"
	GroupServiceAddMemberProcedure      = "/settleup.v1.GroupService/AddMember"
	GroupServiceUpdateMemberProcedure   = "/settleup.v1.GroupService/UpdateMember"
	GroupServiceRemoveMemberProcedure   = "/settleup.v1.GroupService/RemoveMember"
	GroupServiceAddExpenseProcedure     = "/settleup.v1.GroupService/AddExpense"
	GroupServiceDeleteExpenseProcedure  = "/settleup.v1.GroupService/DeleteExpense"
	GroupServiceGetBalancesProcedure    = "/settleup.v1.GroupService/GetBalances"
	GroupServiceSettleDebtProcedure     = "/settleup.v1.GroupService/SettleDebt"
	GroupServiceUndoSettlementProcedure = "/settleup.v1.GroupService/UndoSettlement"
	GroupServiceListPaymentsProcedure   = "/settleup.v1.GroupService/ListPayments"
	GroupServiceArchiveGroupProcedure   = "/settleup.v1.GroupService/ArchiveGroup"
	GroupServiceUnarchiveGroupProcedure = "/settleup.v1.GroupService/UnarchiveGroup"
)

// GroupServiceHandler is implemented by the server side of the GroupService.
// The GroupService manages groups, their members and expenses, and computes who owes whom.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	RenameGroup(context.Context, *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.RenameGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	UpdateMember(context.Context, *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	SettleDebt(context.Context, *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error)
	UndoSettlement(context.Context, *connect.Request[api.UndoSettlementRequest]) (*connect.Response[api.UndoSettlementResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	ArchiveGroup(context.Context, *connect.Request[api.ArchiveGroupRequest]) (*connect.Response[api.ArchiveGroupResponse], error)
	UnarchiveGroup(context.Context, *connect.Request[api.UnarchiveGroupRequest]) (*connect.Response[api.UnarchiveGroupResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler serving every GroupService procedure.
// It returns the path prefix to mount the handler on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)

	handlers := map[string]http.Handler{
		GroupServiceCreateGroupProcedure:    connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceGetGroupProcedure:       connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceListGroupsProcedure:     connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceRenameGroupProcedure:    connect.NewUnaryHandler(GroupServiceRenameGroupProcedure, svc.RenameGroup, opts...),
		GroupServiceDeleteGroupProcedure:    connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
		GroupServiceAddMemberProcedure:      connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...),
		GroupServiceUpdateMemberProcedure:   connect.NewUnaryHandler(GroupServiceUpdateMemberProcedure, svc.UpdateMember, opts...),
		GroupServiceRemoveMemberProcedure:   connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
		GroupServiceAddExpenseProcedure:     connect.NewUnaryHandler(GroupServiceAddExpenseProcedure, svc.AddExpense, opts...),
		GroupServiceDeleteExpenseProcedure:  connect.NewUnaryHandler(GroupServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		GroupServiceGetBalancesProcedure:    connect.NewUnaryHandler(GroupServiceGetBalancesProcedure, svc.GetBalances, opts...),
		GroupServiceSettleDebtProcedure:     connect.NewUnaryHandler(GroupServiceSettleDebtProcedure, svc.SettleDebt, opts...),
		GroupServiceUndoSettlementProcedure: connect.NewUnaryHandler(GroupServiceUndoSettlementProcedure, svc.UndoSettlement, opts...),
		GroupServiceListPaymentsProcedure:   connect.NewUnaryHandler(GroupServiceListPaymentsProcedure, svc.ListPayments, opts...),
		GroupServiceArchiveGroupProcedure:   connect.NewUnaryHandler(GroupServiceArchiveGroupProcedure, svc.ArchiveGroup, opts...),
		GroupServiceUnarchiveGroupProcedure: connect.NewUnaryHandler(GroupServiceUnarchiveGroupProcedure, svc.UnarchiveGroup, opts...),
	}
	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// GroupServiceClient is a client for the GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	RenameGroup(context.Context, *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.RenameGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	UpdateMember(context.Context, *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	SettleDebt(context.Context, *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error)
	UndoSettlement(context.Context, *connect.Request[api.UndoSettlementRequest]) (*connect.Response[api.UndoSettlementResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	ArchiveGroup(context.Context, *connect.Request[api.ArchiveGroupRequest]) (*connect.Response[api.ArchiveGroupResponse], error)
	UnarchiveGroup(context.Context, *connect.Request[api.UnarchiveGroupRequest]) (*connect.Response[api.UnarchiveGroupResponse], error)
}

// NewGroupServiceClient constructs a client for the GroupService at baseURL
// (e.g. http://localhost:8080).
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &groupServiceClient{
		createGroup:    connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:       connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:     connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		renameGroup:    connect.NewClient[api.RenameGroupRequest, api.RenameGroupResponse](httpClient, baseURL+GroupServiceRenameGroupProcedure, opts...),
		deleteGroup:    connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		addMember:      connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		updateMember:   connect.NewClient[api.UpdateMemberRequest, api.UpdateMemberResponse](httpClient, baseURL+GroupServiceUpdateMemberProcedure, opts...),
		removeMember:   connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opts...),
		addExpense:     connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+GroupServiceAddExpenseProcedure, opts...),
		deleteExpense:  connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+GroupServiceDeleteExpenseProcedure, opts...),
		getBalances:    connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+GroupServiceGetBalancesProcedure, opts...),
		settleDebt:     connect.NewClient[api.SettleDebtRequest, api.SettleDebtResponse](httpClient, baseURL+GroupServiceSettleDebtProcedure, opts...),
		undoSettlement: connect.NewClient[api.UndoSettlementRequest, api.UndoSettlementResponse](httpClient, baseURL+GroupServiceUndoSettlementProcedure, opts...),
		listPayments:   connect.NewClient[api.ListPaymentsRequest, api.ListPaymentsResponse](httpClient, baseURL+GroupServiceListPaymentsProcedure, opts...),
		archiveGroup:   connect.NewClient[api.ArchiveGroupRequest, api.ArchiveGroupResponse](httpClient, baseURL+GroupServiceArchiveGroupProcedure, opts...),
		unarchiveGroup: connect.NewClient[api.UnarchiveGroupRequest, api.UnarchiveGroupResponse](httpClient, baseURL+GroupServiceUnarchiveGroupProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup    *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup       *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups     *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	renameGroup    *connect.Client[api.RenameGroupRequest, api.RenameGroupResponse]
	deleteGroup    *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	addMember      *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	updateMember   *connect.Client[api.UpdateMemberRequest, api.UpdateMemberResponse]
	removeMember   *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
	addExpense     *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	deleteExpense  *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	getBalances    *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	settleDebt     *connect.Client[api.SettleDebtRequest, api.SettleDebtResponse]
	undoSettlement *connect.Client[api.UndoSettlementRequest, api.UndoSettlementResponse]
	listPayments   *connect.Client[api.ListPaymentsRequest, api.ListPaymentsResponse]
	archiveGroup   *connect.Client[api.ArchiveGroupRequest, api.ArchiveGroupResponse]
	unarchiveGroup *connect.Client[api.UnarchiveGroupRequest, api.UnarchiveGroupResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) RenameGroup(ctx context.Context, req *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.RenameGroupResponse], error) {
	return c.renameGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateMember(ctx context.Context, req *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error) {
	return c.updateMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *groupServiceClient) SettleDebt(ctx context.Context, req *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error) {
	return c.settleDebt.CallUnary(ctx, req)
}

func (c *groupServiceClient) UndoSettlement(ctx context.Context, req *connect.Request[api.UndoSettlementRequest]) (*connect.Response[api.UndoSettlementResponse], error) {
	return c.undoSettlement.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *groupServiceClient) ArchiveGroup(ctx context.Context, req *connect.Request[api.ArchiveGroupRequest]) (*connect.Response[api.ArchiveGroupResponse], error) {
	return c.archiveGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) UnarchiveGroup(ctx context.Context, req *connect.Request[api.UnarchiveGroupRequest]) (*connect.Response[api.UnarchiveGroupResponse], error) {
	return c.unarchiveGroup.CallUnary(ctx, req)
}
