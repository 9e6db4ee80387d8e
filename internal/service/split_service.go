package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.SplitServiceHandler = (*SplitService)(nil)

// SplitService implements the Connect SplitService
type SplitService struct{}

// NewSplitService creates a new SplitService.
func NewSplitService() *SplitService {
	return &SplitService{}
}

// QuickSplit splits a bill evenly with a tip. Nothing is persisted.
func (s *SplitService) QuickSplit(ctx context.Context, req *connect.Request[api.QuickSplitRequest]) (*connect.Response[api.QuickSplitResponse], error) {
	slog.Debug("QuickSplit request received",
		"total", req.Msg.Total,
		"people", req.Msg.People,
		"tip_percent", req.Msg.TipPercent,
	)

	result, err := calculator.QuickSplit(req.Msg.Total, int(req.Msg.People), req.Msg.TipPercent)
	if err != nil {
		slog.Error("QuickSplit failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	shares := make([]string, len(result.Shares))
	for i, share := range result.Shares {
		shares[i] = share.StringFixed(2)
	}

	return connect.NewResponse(&api.QuickSplitResponse{
		Tip:        result.Tip.StringFixed(2),
		GrandTotal: result.GrandTotal.StringFixed(2),
		PerPerson:  result.PerPerson.StringFixed(2),
		Shares:     shares,
	}), nil
}
