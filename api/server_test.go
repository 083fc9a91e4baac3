package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	metricsx "github.com/tanpawarit/Chative-Store-Assistant/pkg/metrics"
)

type fakeAssistant struct {
	mu        sync.Mutex
	resp      contractx.AgentResponse
	orders    []contractx.Order
	products  []contractx.Product
	userID    int64
	message   string
	lastQuery contractx.ProductQuery
}

func (f *fakeAssistant) Route(_ context.Context, userID int64, message string) contractx.AgentResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userID = userID
	f.message = message
	return f.resp
}

func (f *fakeAssistant) LookupOrders(_ context.Context, userID int64) []contractx.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userID = userID
	return f.orders
}

func (f *fakeAssistant) Browse(_ context.Context, q contractx.ProductQuery) []contractx.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	return f.products
}

func newTestServer(t *testing.T, assistant Assistant) *Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	metricsx.New(reg).IncIntent(string(contractx.IntentOrderStatus))
	return NewServer(Config{Addr: ":0", AppName: "test"}, assistant, reg)
}

func doRequest(t *testing.T, s *Server, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func chatRequestBody(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestChatNormalisesUserID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want int64
	}{
		{"numeric string", `{"userId":"42","message":"hi"}`, 42},
		{"number", `{"userId":7,"message":"hi"}`, 7},
		{"anonymous", `{"userId":"anonymous","message":"hi"}`, contractx.DefaultUserID},
		{"missing", `{"message":"hi"}`, contractx.DefaultUserID},
		{"fractional", `{"userId":2.5,"message":"hi"}`, contractx.DefaultUserID},
		{"non numeric", `{"userId":"abc","message":"hi"}`, contractx.DefaultUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assistant := &fakeAssistant{resp: contractx.AgentResponse{Message: "ok", AgentType: contractx.AgentTypeGeneral}}
			s := newTestServer(t, assistant)

			resp, _ := doRequest(t, s, chatRequestBody(tt.body))
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, assistant.userID)
			assert.Equal(t, "hi", assistant.message)
		})
	}
}

func TestChatReturnsAgentEnvelope(t *testing.T) {
	t.Parallel()

	assistant := &fakeAssistant{resp: contractx.AgentResponse{
		Message:   "Here you go",
		AgentType: contractx.AgentTypeProductRecommendation,
	}}
	s := newTestServer(t, assistant)

	resp, body := doRequest(t, s, chatRequestBody(`{"userId":"3","message":"lamps"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.JSONEq(t, `"product_recommendation"`, string(fields["agent_type"]))
	assert.JSONEq(t, `[]`, string(fields["products"]))
	assert.JSONEq(t, `null`, string(fields["filter_command"]))
	assert.JSONEq(t, `false`, string(fields["should_navigate"]))
}

func TestChatRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeAssistant{})
	resp, _ := doRequest(t, s, chatRequestBody(`{"userId":`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrdersEndpoint(t *testing.T) {
	t.Parallel()

	assistant := &fakeAssistant{orders: []contractx.Order{{OrderID: 101, Total: 129.97, Status: contractx.OrderDelivered}}}
	s := newTestServer(t, assistant)

	resp, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/orders/anonymous", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, contractx.DefaultUserID, assistant.userID)

	var orders []contractx.Order
	require.NoError(t, json.Unmarshal(body, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, int64(101), orders[0].OrderID)
	assert.Equal(t, 129.97, orders[0].Total)
}

func TestOrdersEndpointZeroUserFallsBack(t *testing.T) {
	t.Parallel()

	assistant := &fakeAssistant{}
	s := newTestServer(t, assistant)

	resp, _ := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/orders/0", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, contractx.DefaultUserID, assistant.userID)
}

func TestProductsEndpointParsesQuery(t *testing.T) {
	t.Parallel()

	assistant := &fakeAssistant{products: []contractx.Product{{ID: 1, Name: "Desk Lamp"}}}
	s := newTestServer(t, assistant)

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=electronics,home-decor,unknown&search=lamp&sortBy=price-asc&priceMin=10&priceMax=50.5&limit=20", nil)
	resp, body := doRequest(t, s, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	q := assistant.lastQuery
	assert.Equal(t, []int64{4, 5}, q.CategoryIDs)
	assert.Equal(t, "lamp", q.Search)
	assert.Equal(t, contractx.SortPriceAsc, q.Sort)
	require.NotNil(t, q.PriceMin)
	require.NotNil(t, q.PriceMax)
	assert.Equal(t, 10.0, *q.PriceMin)
	assert.Equal(t, 50.5, *q.PriceMax)
	assert.Equal(t, 20, q.Limit)

	var products []contractx.Product
	require.NoError(t, json.Unmarshal(body, &products))
	assert.Len(t, products, 1)
}

func TestProductsEndpointRejectsBadNumbers(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeAssistant{})
	for _, target := range []string{"/api/products?priceMin=cheap", "/api/products?limit=-1", "/api/products?limit=ten"} {
		resp, _ := doRequest(t, s, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeAssistant{})

	resp, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)

	resp, body = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `assistant_intents_total{intent="order_status"} 1`)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Config{Addr: ":3000"}.Validate())
	assert.ErrorIs(t, Config{}.Validate(), contractx.ErrValidation)
	assert.ErrorIs(t, Config{Addr: ":1", BodyLimit: -1}.Validate(), contractx.ErrValidation)
}
