package woo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dukastore/internal/application"
	"dukastore/internal/config"
	"dukastore/internal/domain"
	"dukastore/internal/infrastructure/woo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*woo.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := woo.NewClient(config.WooConfig{
		BaseURL:        srv.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		ConnTimeout:    5 * time.Second,
	})
	return client, srv
}

func TestListProducts(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "ck_test", user)
		assert.Equal(t, "cs_test", pass)
		assert.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))

		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Solar Lamp", "price": "1200", "images": []map[string]any{{"id": 9, "src": "https://cdn/img.jpg"}}},
			{"id": 2, "name": "Power Bank", "price": "2500"},
		})
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Solar Lamp", products[0].Name)
	assert.Equal(t, "1200", products[0].Price)
	require.Len(t, products[0].Images, 1)
	assert.Equal(t, "https://cdn/img.jpg", products[0].Images[0].Src)
}

func TestGetProduct(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products/42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"id": 42, "name": "Inverter", "price": "15000"})
	})

	product, err := client.GetProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), product.ID)
	assert.Equal(t, "Inverter", product.Name)
}

func TestCreateOrder(t *testing.T) {
	var captured map[string]any
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wp-json/wc/v3/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]any{"id": 321, "status": "processing", "total": "500"})
	})

	order, err := client.CreateOrder(context.Background(), application.OrderDraft{
		Billing: domain.Billing{
			Name:    "Jane Wanjiru",
			Email:   "jane@example.com",
			Phone:   "254712345678",
			Address: "Nairobi",
		},
		Lines: []domain.CartLine{
			{ProductID: 1, Quantity: 2, UnitPrice: 250, Name: "Solar Lamp"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(321), order.ID)
	assert.Equal(t, "processing", order.Status)

	assert.Equal(t, "mpesa", captured["payment_method"])
	assert.Equal(t, true, captured["set_paid"])

	billing, ok := captured["billing"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jane Wanjiru", billing["first_name"])
	assert.Equal(t, "Nairobi", billing["address_1"])

	// Only product id and quantity cross the boundary; client-side prices
	// are never forwarded.
	lines, ok := captured["line_items"].([]any)
	require.True(t, ok)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]any)
	assert.Equal(t, float64(1), line["product_id"])
	assert.Equal(t, float64(2), line["quantity"])
	assert.NotContains(t, line, "price")
}

func TestCreateOrder_BackendRejection(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"woocommerce_rest_invalid_product_id","message":"Invalid product ID."}`))
	})

	_, err := client.CreateOrder(context.Background(), application.OrderDraft{
		Lines: []domain.CartLine{{ProductID: 999, Quantity: 1}},
	})
	require.Error(t, err)

	commerceErr, ok := woo.IsCommerceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, commerceErr.StatusCode)
	assert.Contains(t, string(commerceErr.Payload), "Invalid product ID")
}

func TestListProducts_NonJSONBody(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	})

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeUpstreamProtocol))
}
