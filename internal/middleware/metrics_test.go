package middleware

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/settleup/internal/metrics"
)

func TestCodeLabel(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{connect.NewError(connect.CodeNotFound, errors.New("missing")), "not_found"},
		{errors.New("boom"), "unknown"},
	}
	for _, tt := range tests {
		if got := codeLabel(tt.err); got != tt.want {
			t.Errorf("codeLabel(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestMetricsInterceptor(t *testing.T) {
	const procedure = "/test.v1.TestService/Do"
	counter := metrics.RPCRequests.WithLabelValues(procedure, "not_found")
	before := testutil.ToFloat64(counter)

	failing := func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
	}
	handler := MetricsInterceptor()(failing)

	req := connect.NewRequest(&struct{}{})
	_, err := handler(context.Background(), &procedureRequest{Request: req, procedure: procedure})
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Fatalf("expected not_found error to pass through, got %v", err)
	}

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}
}

// procedureRequest reports a fixed procedure from Spec so interceptors can label it.
type procedureRequest struct {
	*connect.Request[struct{}]
	procedure string
}

func (r *procedureRequest) Spec() connect.Spec {
	return connect.Spec{Procedure: r.procedure, StreamType: connect.StreamTypeUnary}
}
