package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// SplitServiceName is the fully-qualified name of the SplitService.
const SplitServiceName = "settleup.v1.SplitService"

// Procedure paths, one per RPC.
const (
	SplitServiceQuickSplitProcedure = "/settleup.v1.SplitService/QuickSplit"
)

// SplitServiceHandler is implemented by the server side of the SplitService.
// The SplitService provides one-off calculations that are not stored.
type SplitServiceHandler interface {
	QuickSplit(context.Context, *connect.Request[api.QuickSplitRequest]) (*connect.Response[api.QuickSplitResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler serving every SplitService procedure.
// It returns the path prefix to mount the handler on.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)

	quickSplit := connect.NewUnaryHandler(SplitServiceQuickSplitProcedure, svc.QuickSplit, opts...)
	return "/" + SplitServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != SplitServiceQuickSplitProcedure {
			http.NotFound(w, r)
			return
		}
		quickSplit.ServeHTTP(w, r)
	})
}

// SplitServiceClient is a client for the SplitService.
type SplitServiceClient interface {
	QuickSplit(context.Context, *connect.Request[api.QuickSplitRequest]) (*connect.Response[api.QuickSplitResponse], error)
}

// NewSplitServiceClient constructs a client for the SplitService at baseURL
// (e.g. http://localhost:8080).
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &splitServiceClient{
		quickSplit: connect.NewClient[api.QuickSplitRequest, api.QuickSplitResponse](httpClient, baseURL+SplitServiceQuickSplitProcedure, opts...),
	}
}

type splitServiceClient struct {
	quickSplit *connect.Client[api.QuickSplitRequest, api.QuickSplitResponse]
}

func (c *splitServiceClient) QuickSplit(ctx context.Context, req *connect.Request[api.QuickSplitRequest]) (*connect.Response[api.QuickSplitResponse], error) {
	return c.quickSplit.CallUnary(ctx, req)
}
