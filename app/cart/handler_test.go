package cart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mytheresa/go-storefront/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// --- Mock Service ---

type MockCartService struct {
	Summaries map[string]*Summary
	Err       error

	// Fields to capture call arguments
	lastSessionID string
	lastProductID string
	lastQuantity  int
	lastRemovedID string
}

func (m *MockCartService) Summary(_ context.Context, sessionID string) (*Summary, error) {
	m.lastSessionID = sessionID
	if m.Err != nil {
		return nil, m.Err
	}
	if s, ok := m.Summaries[sessionID]; ok {
		return s, nil
	}
	return &Summary{Lines: []Line{}, Total: decimal.Zero}, nil
}

func (m *MockCartService) Add(_ context.Context, productID string, quantity int, sessionID string) (*models.CartItem, error) {
	m.lastProductID = productID
	m.lastQuantity = quantity
	m.lastSessionID = sessionID
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.CartItem{PublicID: "item-1", ProductID: productID, Quantity: quantity, SessionID: sessionID}, nil
}

func (m *MockCartService) Remove(_ context.Context, itemID string) error {
	m.lastRemovedID = itemID
	if m.Err != nil {
		return m.Err
	}
	if itemID != "item-1" {
		return models.ErrCartItemNotFound
	}
	return nil
}

// --- Tests ---

func TestHandleGet(t *testing.T) {
	summaries := map[string]*Summary{
		"S": {
			Lines: []Line{
				{
					ItemID:   "item-1",
					Product:  models.Product{PublicID: "A", Name: "Product A", Price: decimal.NewFromInt(10), ImageURL: "a.png"},
					Quantity: 2,
					Subtotal: decimal.NewFromInt(20),
				},
				{
					ItemID:   "item-2",
					Product:  models.Product{PublicID: "B", Name: "Product B", Price: decimal.NewFromInt(5)},
					Quantity: 1,
					Subtotal: decimal.NewFromInt(5),
				},
			},
			Total: decimal.NewFromInt(25),
		},
	}

	testCases := []struct {
		name               string
		sessionID          string
		service            *MockCartService
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "Cart with two lines",
			sessionID:          "S",
			service:            &MockCartService{Summaries: summaries},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 25.0, resp.Total)
				assert.Len(t, resp.CartItems, 2)
				assert.Equal(t, "item-1", resp.CartItems[0].ID)
				assert.Equal(t, "Product A", resp.CartItems[0].Product.Name)
				assert.Equal(t, "a.png", resp.CartItems[0].Product.ImageURL)
				assert.Equal(t, 20.0, resp.CartItems[0].Subtotal)
				assert.Equal(t, 5.0, resp.CartItems[1].Subtotal)
			},
		},
		{
			name:               "Unknown session",
			sessionID:          "nobody",
			service:            &MockCartService{Summaries: summaries},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"cart_items":[],"total":0}`, rec.Body.String())
			},
		},
		{
			name:               "Store failure",
			sessionID:          "S",
			service:            &MockCartService{Err: errors.New("connection refused")},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"detail":"connection refused"}`, rec.Body.String())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCartHandler(tc.service)
			req := httptest.NewRequest(http.MethodGet, "/api/cart/"+tc.sessionID, nil)
			req.SetPathValue("session_id", tc.sessionID)
			rec := httptest.NewRecorder()

			handler.HandleGet(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, tc.sessionID, tc.service.lastSessionID)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestHandleAdd(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		service            *MockCartService
		expectedStatusCode int
		expectedBody       string
		checkCall          func(t *testing.T, s *MockCartService)
	}{
		{
			name:               "Success",
			body:               `{"product_id":"A","quantity":2,"session_id":"S"}`,
			service:            &MockCartService{},
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"message":"Item added to cart"}`,
			checkCall: func(t *testing.T, s *MockCartService) {
				assert.Equal(t, "A", s.lastProductID)
				assert.Equal(t, 2, s.lastQuantity)
				assert.Equal(t, "S", s.lastSessionID)
			},
		},
		{
			name:               "Zero quantity",
			body:               `{"product_id":"A","quantity":0,"session_id":"S"}`,
			service:            &MockCartService{},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedBody:       `{"detail":"quantity must be greater than or equal to 1"}`,
			checkCall: func(t *testing.T, s *MockCartService) {
				assert.Empty(t, s.lastProductID)
			},
		},
		{
			name:               "Missing session",
			body:               `{"product_id":"A","quantity":1}`,
			service:            &MockCartService{},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedBody:       `{"detail":"session_id is required"}`,
		},
		{
			name:               "Store failure",
			body:               `{"product_id":"A","quantity":1,"session_id":"S"}`,
			service:            &MockCartService{Err: errors.New("write failed")},
			expectedStatusCode: http.StatusInternalServerError,
			expectedBody:       `{"detail":"write failed"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCartHandler(tc.service)
			req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			handler.HandleAdd(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			if tc.checkCall != nil {
				tc.checkCall(t, tc.service)
			}
		})
	}
}

func TestHandleRemove(t *testing.T) {
	testCases := []struct {
		name               string
		itemID             string
		service            *MockCartService
		expectedStatusCode int
		expectedBody       string
	}{
		{
			name:               "Success",
			itemID:             "item-1",
			service:            &MockCartService{},
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"message":"Item removed from cart"}`,
		},
		{
			name:               "Unknown item",
			itemID:             "item-9",
			service:            &MockCartService{},
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"detail":"Cart item not found"}`,
		},
		{
			name:               "Store failure",
			itemID:             "item-1",
			service:            &MockCartService{Err: errors.New("delete failed")},
			expectedStatusCode: http.StatusInternalServerError,
			expectedBody:       `{"detail":"delete failed"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCartHandler(tc.service)
			req := httptest.NewRequest(http.MethodDelete, "/api/cart/"+tc.itemID, nil)
			req.SetPathValue("item_id", tc.itemID)
			rec := httptest.NewRecorder()

			handler.HandleRemove(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			assert.Equal(t, tc.itemID, tc.service.lastRemovedID)
		})
	}
}
