package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/storage/sqlite"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

// recordingPublisher keeps every published event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) failWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *recordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

type testServer struct {
	groups    apiconnect.GroupServiceClient
	split     apiconnect.SplitServiceClient
	publisher *recordingPublisher
}

// setupTestServer creates a test server backed by a temporary SQLite database
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	publisher := &recordingPublisher{}

	splitPath, splitHandler := apiconnect.NewSplitServiceHandler(NewSplitService())
	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(NewGroupService(store, publisher))

	mux := http.NewServeMux()
	mux.Handle(splitPath, splitHandler)
	mux.Handle(groupPath, groupHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testServer{
		groups:    apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		split:     apiconnect.NewSplitServiceClient(http.DefaultClient, server.URL),
		publisher: publisher,
	}
}

// assertCode fails the test unless err is a Connect error with the given code.
func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Errorf("code: expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}

func TestQuickSplit(t *testing.T) {
	srv := setupTestServer(t)

	resp, err := srv.split.QuickSplit(context.Background(), connect.NewRequest(&api.QuickSplitRequest{
		Total:      100,
		People:     3,
		TipPercent: 0,
	}))
	if err != nil {
		t.Fatalf("QuickSplit failed: %v", err)
	}

	if resp.Msg.GrandTotal != "100.00" {
		t.Errorf("grand total: expected 100.00, got %s", resp.Msg.GrandTotal)
	}
	if resp.Msg.Tip != "0.00" {
		t.Errorf("tip: expected 0.00, got %s", resp.Msg.Tip)
	}
	want := []string{"33.34", "33.33", "33.33"}
	if len(resp.Msg.Shares) != len(want) {
		t.Fatalf("shares: expected %v, got %v", want, resp.Msg.Shares)
	}
	for i := range want {
		if resp.Msg.Shares[i] != want[i] {
			t.Errorf("share %d: expected %s, got %s", i, want[i], resp.Msg.Shares[i])
		}
	}
}

func TestQuickSplit_WithTip(t *testing.T) {
	srv := setupTestServer(t)

	resp, err := srv.split.QuickSplit(context.Background(), connect.NewRequest(&api.QuickSplitRequest{
		Total:      80,
		People:     4,
		TipPercent: 15,
	}))
	if err != nil {
		t.Fatalf("QuickSplit failed: %v", err)
	}

	if resp.Msg.Tip != "12.00" {
		t.Errorf("tip: expected 12.00, got %s", resp.Msg.Tip)
	}
	if resp.Msg.GrandTotal != "92.00" {
		t.Errorf("grand total: expected 92.00, got %s", resp.Msg.GrandTotal)
	}
	if resp.Msg.PerPerson != "23.00" {
		t.Errorf("per person: expected 23.00, got %s", resp.Msg.PerPerson)
	}
}

func TestQuickSplit_InvalidInput(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		name string
		req  *api.QuickSplitRequest
	}{
		{"no people", &api.QuickSplitRequest{Total: 10, People: 0}},
		{"too many people", &api.QuickSplitRequest{Total: 10, People: 21}},
		{"huge party", &api.QuickSplitRequest{Total: 10, People: 2147483647}},
		{"negative total", &api.QuickSplitRequest{Total: -10, People: 2}},
		{"negative tip", &api.QuickSplitRequest{Total: 10, People: 2, TipPercent: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.split.QuickSplit(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}
