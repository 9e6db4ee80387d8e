package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/logging"
)

// captureLogs routes the default logger into a buffer for the test's duration.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(logging.New(&buf, "debug", "json"))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestLoggingInterceptor(t *testing.T) {
	const procedure = "/test.v1.TestService/Do"

	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantMsg   string
		wantCode  string
	}{
		{
			name:      "success logs at info",
			wantLevel: "INFO",
			wantMsg:   "RPC ok",
		},
		{
			name:      "client error logs at warn",
			err:       connect.NewError(connect.CodeInvalidArgument, errors.New("bad amount")),
			wantLevel: "WARN",
			wantMsg:   "RPC error",
			wantCode:  "invalid_argument",
		},
		{
			name:      "internal error logs at error",
			err:       connect.NewError(connect.CodeInternal, errors.New("disk full")),
			wantLevel: "ERROR",
			wantMsg:   "RPC error",
		},
		{
			name:      "plain error logs at error",
			err:       errors.New("boom"),
			wantLevel: "ERROR",
			wantMsg:   "RPC error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			next := func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
				return nil, tt.err
			}
			req := connect.NewRequest(&struct{}{})
			_, err := LoggingInterceptor()(next)(context.Background(), &procedureRequest{Request: req, procedure: procedure})
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v to pass through, got %v", tt.err, err)
			}

			var record map[string]any
			if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
				t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
			}
			if record["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", record["level"], tt.wantLevel)
			}
			if record["msg"] != tt.wantMsg {
				t.Errorf("msg = %v, want %s", record["msg"], tt.wantMsg)
			}
			if record["procedure"] != procedure {
				t.Errorf("procedure = %v, want %s", record["procedure"], procedure)
			}
			if tt.wantCode != "" && record["code"] != tt.wantCode {
				t.Errorf("code = %v, want %s", record["code"], tt.wantCode)
			}
		})
	}
}

func TestIsServerFault(t *testing.T) {
	tests := []struct {
		code connect.Code
		want bool
	}{
		{connect.CodeInternal, true},
		{connect.CodeUnknown, true},
		{connect.CodeNotFound, false},
		{connect.CodeInvalidArgument, false},
		{connect.CodeFailedPrecondition, false},
	}
	for _, tt := range tests {
		if got := isServerFault(tt.code); got != tt.want {
			t.Errorf("isServerFault(%v) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
