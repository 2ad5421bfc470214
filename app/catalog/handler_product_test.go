package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mytheresa/go-storefront/models"
	"github.com/stretchr/testify/assert"
)

func TestHandleGetProduct(t *testing.T) {
	allMockProducts := []models.Product{
		newTestProduct("p-1", "Laptop", "Electronics", 15.50),
	}

	testCases := []struct {
		name               string
		productID          string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:      "Success",
			productID: "p-1",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Product
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "p-1", resp.ID)
				assert.Equal(t, 15.50, resp.Price)
				assert.Equal(t, "Electronics", resp.Category)
			},
		},
		{
			name:      "Product not found",
			productID: "NONEXISTENT",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Product not found", errResp["detail"])
			},
		},
		{
			name:      "Repository internal error",
			productID: "p-1",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: errors.New("db connection lost")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "db connection lost", errResp["detail"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := tc.mockRepoSetup()
			handler := NewCatalogHandler(mockRepo)
			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rec := httptest.NewRecorder()

			handler.HandleGetProduct(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, tc.productID, mockRepo.lastCalledID)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestHandleUpdate(t *testing.T) {
	allMockProducts := []models.Product{
		newTestProduct("p-1", "Laptop", "Electronics", 15.50),
	}

	testCases := []struct {
		name               string
		productID          string
		body               string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		expectedBody       string
	}{
		{
			name:      "Success",
			productID: "p-1",
			body:      `{"name":"Laptop Pro","price":1200,"category":"Electronics","stock":2}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"message":"Product updated successfully"}`,
		},
		{
			name:      "Unknown product",
			productID: "missing",
			body:      `{"name":"Laptop Pro","price":1200}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"detail":"Product not found"}`,
		},
		{
			name:      "Negative stock",
			productID: "p-1",
			body:      `{"name":"Laptop Pro","price":1200,"stock":-3}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedBody:       `{"detail":"stock must be greater than or equal to 0"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCatalogHandler(tc.mockRepoSetup())
			req := httptest.NewRequest(http.MethodPut, "/api/admin/products/"+tc.productID, strings.NewReader(tc.body))
			req.SetPathValue("id", tc.productID)
			rec := httptest.NewRecorder()

			handler.HandleUpdate(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func TestHandleDelete(t *testing.T) {
	allMockProducts := []models.Product{
		newTestProduct("p-1", "Laptop", "Electronics", 15.50),
	}

	testCases := []struct {
		name               string
		productID          string
		mockRepo           *MockProductRepo
		expectedStatusCode int
		expectedBody       string
	}{
		{
			name:               "Success",
			productID:          "p-1",
			mockRepo:           &MockProductRepo{SourceProducts: allMockProducts},
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"message":"Product deleted successfully"}`,
		},
		{
			name:               "Unknown product",
			productID:          "missing",
			mockRepo:           &MockProductRepo{SourceProducts: allMockProducts},
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"detail":"Product not found"}`,
		},
		{
			name:               "Repository error",
			productID:          "p-1",
			mockRepo:           &MockProductRepo{Err: errors.New("timeout")},
			expectedStatusCode: http.StatusInternalServerError,
			expectedBody:       `{"detail":"timeout"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCatalogHandler(tc.mockRepo)
			req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rec := httptest.NewRecorder()

			handler.HandleDelete(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			assert.Equal(t, tc.productID, tc.mockRepo.lastCalledID)
		})
	}
}
