package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

var (
	errGroupArchived   = errors.New("group is archived")
	errMissingGroupID  = errors.New("group_id is required")
	errNoDebt          = errors.New("no outstanding debt between these members")
	errMemberNotFound  = errors.New("member not found")
	errExpenseNotFound = errors.New("expense not found")
)

// GroupService implements the Connect GroupService
type GroupService struct {
	store     storage.Store
	publisher events.Publisher
}

// NewGroupService creates a new GroupService with the given storage backend
// and event publisher.
func NewGroupService(store storage.Store, publisher events.Publisher) *GroupService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &GroupService{store: store, publisher: publisher}
}

// CreateGroup creates a new group, optionally seeded with members.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberNames),
	)

	group, err := ledger.NewGroup(req.Msg.Name)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	l := ledger.New(group)
	for _, name := range req.Msg.MemberNames {
		if _, err := l.AddMember(name, ""); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group with its members and expenses.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupId)

	l, err := s.load(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(l.Group())}), nil
}

// ListGroups lists active groups, or archived ones when requested.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received", "archived", req.Msg.Archived)

	groups, err := s.store.ListGroups(ctx, req.Msg.Archived)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// RenameGroup changes a group's display name.
func (s *GroupService) RenameGroup(ctx context.Context, req *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.RenameGroupResponse], error) {
	slog.Info("RenameGroup request received", "group_id", req.Msg.GroupId, "name", req.Msg.Name)

	l, err := s.loadEditable(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}
	if err := l.Rename(req.Msg.Name); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := s.store.UpdateGroup(ctx, l.Group()); err != nil {
		return nil, storageError("RenameGroup", err)
	}

	return connect.NewResponse(&api.RenameGroupResponse{Group: toAPIGroup(l.Group())}), nil
}

// DeleteGroup removes a group and everything in it. Archived groups may be deleted.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupId)

	if req.Msg.GroupId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingGroupID)
	}
	if err := s.store.DeleteGroup(ctx, req.Msg.GroupId); err != nil {
		return nil, storageError("DeleteGroup", err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupId)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddMember adds a participant to a group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupId, "name", req.Msg.Name)

	l, err := s.loadEditable(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}
	member, err := l.AddMember(req.Msg.Name, req.Msg.Color)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := s.store.AddMember(ctx, req.Msg.GroupId, member); err != nil {
		return nil, storageError("AddMember", err)
	}

	slog.Info("Member added", "group_id", req.Msg.GroupId, "member_id", member.ID)

	return connect.NewResponse(&api.AddMemberResponse{Member: toAPIMember(member)}), nil
}

// UpdateMember renames or recolors a member.
func (s *GroupService) UpdateMember(ctx context.Context, req *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error) {
	slog.Info("UpdateMember request received", "group_id", req.Msg.GroupId, "member_id", req.Msg.MemberId)

	l, err := s.loadEditable(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}
	member, err := l.UpdateMember(req.Msg.MemberId, req.Msg.Name, req.Msg.Color)
	if errors.Is(err, ledger.ErrUnknownMember) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := s.store.UpdateMember(ctx, req.Msg.GroupId, member); err != nil {
		return nil, storageError("UpdateMember", err)
	}

	return connect.NewResponse(&api.UpdateMemberResponse{Member: toAPIMember(member)}), nil
}

// RemoveMember removes a member. Expenses that reference the member are kept;
// their shares show up as unallocated in the balances.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	slog.Info("RemoveMember request received", "group_id", req.Msg.GroupId, "member_id", req.Msg.MemberId)

	l, err := s.loadEditable(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}
	if !l.RemoveMember(req.Msg.MemberId) {
		return nil, connect.NewError(connect.CodeNotFound, errMemberNotFound)
	}
	if err := s.store.DeleteMember(ctx, req.Msg.GroupId, req.Msg.MemberId); err != nil {
		return nil, storageError("RemoveMember", err)
	}

	slog.Info("Member removed", "group_id", req.Msg.GroupId, "member_id", req.Msg.MemberId)

	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// AddExpense records a shared expense.
func (s *GroupService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"group_id", req.Msg.GroupId,
		"title", req.Msg.Title,
		"amount", req.Msg.Amount,
		"beneficiaries_count", len(req.Msg.BeneficiaryIds),
	)

	l, err := s.loadEditable(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}
	expense, err := l.AddExpense(ledger.NewExpense{
		Title:         req.Msg.Title,
		Amount:        req.Msg.Amount,
		PaidBy:        req.Msg.PaidBy,
		Beneficiaries: req.Msg.BeneficiaryIds,
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := s.store.CreateExpense(ctx, req.Msg.GroupId, expense); err != nil {
		return nil, storageError("AddExpense", err)
	}

	slog.Info("Expense added", "group_id", req.Msg.GroupId, "expense_id", expense.ID)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense.
func (s *GroupService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "group_id", req.Msg.GroupId, "expense_id", req.Msg.ExpenseId)

	l, err := s.loadEditable(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}
	if _, ok := l.RemoveExpense(req.Msg.ExpenseId); !ok {
		return nil, connect.NewError(connect.CodeNotFound, errExpenseNotFound)
	}
	if err := s.store.DeleteExpense(ctx, req.Msg.GroupId, req.Msg.ExpenseId); err != nil {
		return nil, storageError("DeleteExpense", err)
	}

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// GetBalances computes every member's balance and the suggested payments.
func (s *GroupService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	slog.Info("GetBalances request received", "group_id", req.Msg.GroupId)

	l, err := s.load(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	result := l.Resolve()
	settled := ledger.IsFullySettled(result.Debts, l.HasOrdinaryExpense())

	slog.Debug("Balances computed",
		"group_id", req.Msg.GroupId,
		"debts_count", len(result.Debts),
		"fully_settled", settled,
		"unallocated", result.Unallocated,
	)

	return connect.NewResponse(&api.GetBalancesResponse{
		Balances:     toAPIBalances(result.Balances),
		Debts:        toAPIDebts(result.Debts),
		FullySettled: settled,
		Unallocated:  result.Unallocated,
	}), nil
}

// SettleDebt records a reimbursement from debtor to creditor. A zero amount
// pays off the whole outstanding debt between the two.
func (s *GroupService) SettleDebt(ctx context.Context, req *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error) {
	slog.Info("SettleDebt request received",
		"group_id", req.Msg.GroupId,
		"debtor_id", req.Msg.DebtorId,
		"creditor_id", req.Msg.CreditorId,
		"amount", req.Msg.Amount,
	)

	l, err := s.loadEditable(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	var payment models.Expense
	if req.Msg.Amount == 0 {
		debt, ok := l.Resolve().DebtBetween(req.Msg.DebtorId, req.Msg.CreditorId)
		if !ok {
			return nil, connect.NewError(connect.CodeFailedPrecondition, errNoDebt)
		}
		payment, err = l.RecordSettlement(debt)
	} else {
		payment, err = l.RecordPayment(req.Msg.DebtorId, req.Msg.CreditorId, req.Msg.Amount)
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.CreateExpense(ctx, req.Msg.GroupId, payment); err != nil {
		return nil, storageError("SettleDebt", err)
	}
	metrics.SettlementsRecorded.Inc()

	slog.Info("Settlement recorded",
		"group_id", req.Msg.GroupId,
		"expense_id", payment.ID,
		"amount", payment.Amount,
	)

	s.publish(ctx, events.Event{
		Type:       events.SettlementRecorded,
		GroupID:    req.Msg.GroupId,
		ExpenseID:  payment.ID,
		DebtorID:   req.Msg.DebtorId,
		CreditorID: req.Msg.CreditorId,
		Amount:     payment.Amount,
	})

	return connect.NewResponse(&api.SettleDebtResponse{Payment: toAPIExpense(payment)}), nil
}

// UndoSettlement deletes a recorded reimbursement. Undoing an expense that is
// already gone, or one that is not a reimbursement, succeeds with Removed set
// to false.
func (s *GroupService) UndoSettlement(ctx context.Context, req *connect.Request[api.UndoSettlementRequest]) (*connect.Response[api.UndoSettlementResponse], error) {
	slog.Info("UndoSettlement request received", "group_id", req.Msg.GroupId, "expense_id", req.Msg.ExpenseId)

	l, err := s.loadEditable(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	removed, ok := l.UndoSettlement(req.Msg.ExpenseId)
	if !ok {
		slog.Debug("Nothing to undo", "group_id", req.Msg.GroupId, "expense_id", req.Msg.ExpenseId)
		return connect.NewResponse(&api.UndoSettlementResponse{Removed: false}), nil
	}
	if err := s.store.DeleteExpense(ctx, req.Msg.GroupId, removed.ID); err != nil {
		return nil, storageError("UndoSettlement", err)
	}
	metrics.SettlementsUndone.Inc()

	event := events.Event{
		Type:      events.SettlementUndone,
		GroupID:   req.Msg.GroupId,
		ExpenseID: removed.ID,
		DebtorID:  removed.PaidBy,
		Amount:    removed.Amount,
	}
	if len(removed.Beneficiaries) > 0 {
		event.CreditorID = removed.Beneficiaries[0]
	}
	s.publish(ctx, event)

	return connect.NewResponse(&api.UndoSettlementResponse{Removed: true}), nil
}

// ListPayments lists the recorded reimbursements of a group in insertion order.
func (s *GroupService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	slog.Info("ListPayments request received", "group_id", req.Msg.GroupId)

	l, err := s.load(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.ListPaymentsResponse{Payments: toAPIExpenses(l.Payments())}), nil
}

// ArchiveGroup marks a group as archived. Outstanding debts do not block it.
func (s *GroupService) ArchiveGroup(ctx context.Context, req *connect.Request[api.ArchiveGroupRequest]) (*connect.Response[api.ArchiveGroupResponse], error) {
	slog.Info("ArchiveGroup request received", "group_id", req.Msg.GroupId)

	group, err := s.setArchived(ctx, req.Msg.GroupId, true)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ArchiveGroupResponse{Group: group}), nil
}

// UnarchiveGroup makes an archived group editable again.
func (s *GroupService) UnarchiveGroup(ctx context.Context, req *connect.Request[api.UnarchiveGroupRequest]) (*connect.Response[api.UnarchiveGroupResponse], error) {
	slog.Info("UnarchiveGroup request received", "group_id", req.Msg.GroupId)

	group, err := s.setArchived(ctx, req.Msg.GroupId, false)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.UnarchiveGroupResponse{Group: group}), nil
}

func (s *GroupService) setArchived(ctx context.Context, groupID string, archived bool) (*api.Group, error) {
	l, err := s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if l.Group().Archived == archived {
		return toAPIGroup(l.Group()), nil
	}

	eventType := events.GroupUnarchived
	if archived {
		if !l.IsFullySettled() {
			slog.Warn("Archiving group with outstanding debts", "group_id", groupID)
		}
		l.Archive()
		eventType = events.GroupArchived
	} else {
		l.Unarchive()
	}

	if err := s.store.UpdateGroup(ctx, l.Group()); err != nil {
		return nil, storageError("SetArchived", err)
	}
	if archived {
		metrics.GroupsArchived.Inc()
	}

	slog.Info("Group archive state changed", "group_id", groupID, "archived", archived)

	s.publish(ctx, events.Event{Type: eventType, GroupID: groupID})

	return toAPIGroup(l.Group()), nil
}

// load fetches a group and wraps it in a ledger.
func (s *GroupService) load(ctx context.Context, groupID string) (*ledger.Ledger, error) {
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingGroupID)
	}
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storageError("GetGroup", err)
	}
	return ledger.New(group), nil
}

// loadEditable is load for mutations; archived groups are read-only.
func (s *GroupService) loadEditable(ctx context.Context, groupID string) (*ledger.Ledger, error) {
	l, err := s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if l.Group().Archived {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errGroupArchived)
	}
	return l, nil
}

// publish delivers an event. Failures are logged and counted, never returned:
// the change is already committed.
func (s *GroupService) publish(ctx context.Context, event events.Event) {
	event.OccurredAt = time.Now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		metrics.EventPublishFailures.Inc()
		slog.Error("Failed to publish event",
			"type", event.Type,
			"group_id", event.GroupID,
			"error", err,
		)
	}
}

func storageError(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, err)
}
