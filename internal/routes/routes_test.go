package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/pinkbears/internal/apperrors"
	"github.com/example/pinkbears/internal/config"
	"github.com/example/pinkbears/internal/database"
	"github.com/example/pinkbears/internal/models"
	"github.com/example/pinkbears/internal/realtime"
	"github.com/example/pinkbears/internal/utils"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	hash, err := utils.HashPassword("abijithbeni20")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Admin{Username: "pinkbearsadmin", PasswordHash: hash}).Error)

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
	}

	app := fiber.New(fiber.Config{ErrorHandler: apperrors.FiberHandler})
	Register(app, db, cfg, realtime.NewHub())
	return app, db, cfg
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func checkoutPayload() map[string]interface{} {
	return map[string]interface{}{
		"customer_name":  "Asha",
		"customer_email": "a@x.com",
		"customer_phone": "999",
		"address_line1":  "12 Lane",
		"city":           "Pune",
		"state":          "MH",
		"zip_code":       "411001",
		"total":          4599,
		"items": []map[string]interface{}{
			{"id": 1, "name": "Rose Gold Necklace", "price": 4599, "quantity": 1},
		},
	}
}

func TestCheckoutScenario(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/checkout", checkoutPayload(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, true, body["success"])
	assert.Greater(t, body["orderId"].(float64), float64(0))

	trackingNumber, _ := body["trackingNumber"].(string)
	assert.True(t, strings.HasPrefix(trackingNumber, "PINKIES"), "tracking number %q missing brand prefix", trackingNumber)

	eta, _ := body["estimatedDelivery"].(string)
	_, err := time.Parse("2006-01-02", eta)
	assert.NoError(t, err, "estimatedDelivery %q is not a date", eta)

	assert.Equal(t, "cash_on_delivery", body["payment_method"])
	assert.Equal(t, "pending", body["payment_status"])
	assert.Equal(t, "INR", body["currency"])
}

func TestCheckoutValidation(t *testing.T) {
	app, _, _ := newTestApp(t)

	payload := checkoutPayload()
	delete(payload, "city")
	resp, _ := doJSON(t, app, "POST", "/api/checkout", payload, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	payload = checkoutPayload()
	payload["total"] = 0
	resp, _ = doJSON(t, app, "POST", "/api/checkout", payload, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	payload = checkoutPayload()
	payload["total"] = 1
	resp, _ = doJSON(t, app, "POST", "/api/checkout", payload, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOrderTrackingEndpoint(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, body := doJSON(t, app, "POST", "/api/checkout", checkoutPayload(), "")
	trackingNumber := body["trackingNumber"].(string)

	resp, tracked := doJSON(t, app, "GET", "/api/order-tracking/"+trackingNumber, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	history, ok := tracked["trackingHistory"].([]interface{})
	require.True(t, ok)
	require.Len(t, history, 1)
	entry := history[0].(map[string]interface{})
	assert.Equal(t, "pending", entry["status"])

	resp, _ = doJSON(t, app, "GET", "/api/order-tracking/PINKIES000UNKNOWN", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetOrderIncludesItems(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, body := doJSON(t, app, "POST", "/api/checkout", checkoutPayload(), "")
	orderID := int(body["orderId"].(float64))

	resp, order := doJSON(t, app, "GET", fmt.Sprintf("/api/orders/%d", orderID), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items, ok := order["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Rose Gold Necklace", item["name"])
}

func TestAdminFlow(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, body := doJSON(t, app, "POST", "/api/checkout", checkoutPayload(), "")
	orderID := int(body["orderId"].(float64))
	trackingNumber := body["trackingNumber"].(string)

	// No token.
	resp, _ := doJSON(t, app, "GET", "/api/admin/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Bad credentials.
	resp, _ = doJSON(t, app, "POST", "/api/admin/login", map[string]string{"username": "pinkbearsadmin", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Login.
	resp, login := doJSON(t, app, "POST", "/api/admin/login", map[string]string{"username": "pinkbearsadmin", "password": "abijithbeni20"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := login["token"].(string)

	// List orders.
	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var orders []map[string]interface{}
	raw, err := io.ReadAll(listResp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &orders))
	require.Len(t, orders, 1)

	// Update status, then the timeline shows it newest-first.
	resp, _ = doJSON(t, app, "PUT", fmt.Sprintf("/api/admin/orders/%d", orderID), map[string]string{"status": "shipped"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, tracked := doJSON(t, app, "GET", "/api/order-tracking/"+trackingNumber, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := tracked["trackingHistory"].([]interface{})
	require.Len(t, history, 2)
	assert.Equal(t, "shipped", history[0].(map[string]interface{})["status"])

	// Confirm payment.
	resp, _ = doJSON(t, app, "POST", fmt.Sprintf("/api/admin/orders/%d/confirm-payment", orderID), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, state := doJSON(t, app, "GET", fmt.Sprintf("/api/payment-status/%d", orderID), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "paid", state["payment_status"])

	// Analytics reflects the paid order.
	resp, analytics := doJSON(t, app, "GET", "/api/admin/analytics", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(4599), analytics["totalSales"])
	assert.Equal(t, float64(1), analytics["totalOrders"])
}

func TestChatMessagesEndpoint(t *testing.T) {
	app, db, _ := newTestApp(t)

	require.NoError(t, db.Create(&models.ChatMessage{OrderID: 1, SenderType: "customer", Message: "hello"}).Error)
	require.NoError(t, db.Create(&models.ChatMessage{OrderID: 1, SenderType: "admin", Message: "hi there"}).Error)
	require.NoError(t, db.Create(&models.ChatMessage{OrderID: 2, SenderType: "customer", Message: "other order"}).Error)

	req := httptest.NewRequest("GET", "/api/chat-messages/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var messages []map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &messages))
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0]["message"])
	assert.Equal(t, "hi there", messages[1]["message"])
}

func TestContactForm(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/contact", map[string]string{
		"name": "Asha", "email": "a@x.com", "message": "do you gift wrap?",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Greater(t, body["id"].(float64), float64(0))

	resp, _ = doJSON(t, app, "POST", "/api/contact", map[string]string{"name": "Asha"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductEndpoints(t *testing.T) {
	app, db, _ := newTestApp(t)

	require.NoError(t, db.Create(&models.Product{Name: "Rose Gold Necklace", Price: 4599, Category: "Jewelry", Description: "Elegant rose gold necklace"}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Lavender Scented Candle", Price: 2499, Category: "Candles", Description: "Hand-poured soy candle"}).Error)

	fetch := func(path string) []map[string]interface{} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var products []map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &products))
		return products
	}

	assert.Len(t, fetch("/api/products"), 2)
	assert.Len(t, fetch("/api/products?category=Jewelry"), 1)
	assert.Len(t, fetch("/api/products?search=candle"), 1)

	resp, _ := doJSON(t, app, "GET", "/api/products/999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
