package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/poshakbd/storefront/internal/api/handlers"
	appErrors "github.com/poshakbd/storefront/internal/errors"
	"github.com/poshakbd/storefront/internal/models"
	"github.com/poshakbd/storefront/internal/services/mocks"
	"github.com/poshakbd/storefront/internal/testutils"
	"github.com/poshakbd/storefront/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testUID = "firebase-uid-1"

func setupCartTest() (*mocks.CartService, *handlers.CartHandler) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)
	return mockCartService, cartHandler
}

func testItem(productID uuid.UUID, qty int) models.LineItem {
	return models.LineItem{
		ProductID: productID,
		Name:      "Linen Shirt",
		Color:     models.ColorRef{Name: "Black"},
		Size:      models.SizeRef{Size: "M", Price: 49.99},
		Quantity:  qty,
	}
}

func TestGetCart(t *testing.T) {
	t.Run("Success - Retrieve Cart", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		req := testutils.CreateTestRequestWithContext("GET", "/api/v1/cart", nil, testUID, nil)
		recorder := httptest.NewRecorder()

		mockCart := &models.Cart{
			ID:     uuid.New(),
			UserID: testUID,
			Items:  []models.LineItem{testItem(uuid.New(), 2)},
		}

		mockCartService.On("GetCart", mock.Anything, testUID).Return(mockCart, nil).Once()

		// Act
		handler := cartHandler.GetCart()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)

		mockCartService.AssertExpectations(t)
	})

	t.Run("Success - Never-Written Cart Comes Back Empty", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		req := testutils.CreateTestRequestWithContext("GET", "/api/v1/cart", nil, testUID, nil)
		recorder := httptest.NewRecorder()

		emptyCart := &models.Cart{UserID: testUID, Items: []models.LineItem{}}
		mockCartService.On("GetCart", mock.Anything, testUID).Return(emptyCart, nil).Once()

		// Act
		handler := cartHandler.GetCart()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"items":[]`)

		mockCartService.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/cart", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := cartHandler.GetCart()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error.Message, "Authentication required")
		mockCartService.AssertNotCalled(t, "GetCart")
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		req := testutils.CreateTestRequestWithContext("GET", "/api/v1/cart", nil, testUID, nil)
		recorder := httptest.NewRecorder()

		mockError := appErrors.DatabaseError("Failed to fetch cart")
		mockCartService.On("GetCart", mock.Anything, testUID).Return(nil, mockError).Once()

		// Act
		handler := cartHandler.GetCart()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		mockCartService.AssertExpectations(t)
	})
}

func TestUpsertItem(t *testing.T) {
	t.Run("Success - Item Added", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		item := testItem(uuid.New(), 1)
		requestBody, _ := json.Marshal(models.UpsertItemRequest{Item: item})

		req := testutils.CreateTestRequestWithContext("PUT", "/api/v1/cart/items", bytes.NewBuffer(requestBody), testUID, nil)
		recorder := httptest.NewRecorder()

		mockCart := &models.Cart{UserID: testUID, Items: []models.LineItem{item}}
		mockCartService.On("UpsertItem", mock.Anything, testUID, mock.MatchedBy(func(got *models.LineItem) bool {
			return got.ProductID == item.ProductID && got.Quantity == 1
		})).Return(mockCart, nil).Once()

		// Act
		handler := cartHandler.UpsertItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		mockCartService.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		requestBody, _ := json.Marshal(models.UpsertItemRequest{Item: testItem(uuid.New(), 1)})

		req := testutils.CreateTestRequestWithoutContext("PUT", "/api/v1/cart/items", bytes.NewBuffer(requestBody), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := cartHandler.UpsertItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockCartService.AssertNotCalled(t, "UpsertItem")
	})

	t.Run("Failure - Invalid Request Body", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		invalidJSON := []byte(`{"item": {"product_id": "not-a-uuid"}}`)

		req := testutils.CreateTestRequestWithContext("PUT", "/api/v1/cart/items", bytes.NewBuffer(invalidJSON), testUID, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := cartHandler.UpsertItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCartService.AssertNotCalled(t, "UpsertItem")
	})

	t.Run("Failure - Zero Quantity Rejected", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		item := testItem(uuid.New(), 0)
		requestBody, _ := json.Marshal(models.UpsertItemRequest{Item: item})

		req := testutils.CreateTestRequestWithContext("PUT", "/api/v1/cart/items", bytes.NewBuffer(requestBody), testUID, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := cartHandler.UpsertItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCartService.AssertNotCalled(t, "UpsertItem")
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		requestBody, _ := json.Marshal(models.UpsertItemRequest{Item: testItem(uuid.New(), 1)})

		req := testutils.CreateTestRequestWithContext("PUT", "/api/v1/cart/items", bytes.NewBuffer(requestBody), testUID, nil)
		recorder := httptest.NewRecorder()

		mockError := appErrors.DatabaseError("Failed to save cart item")
		mockCartService.On("UpsertItem", mock.Anything, testUID, mock.Anything).Return(nil, mockError).Once()

		// Act
		handler := cartHandler.UpsertItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		mockCartService.AssertExpectations(t)
	})
}

func TestReplaceCart(t *testing.T) {
	t.Run("Success - Full Overwrite", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		items := []models.LineItem{testItem(uuid.New(), 2), testItem(uuid.New(), 1)}
		requestBody, _ := json.Marshal(models.ReplaceCartRequest{Items: items})

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/cart", bytes.NewBuffer(requestBody), testUID, nil)
		recorder := httptest.NewRecorder()

		mockCart := &models.Cart{UserID: testUID, Items: items}
		mockCartService.On("ReplaceCart", mock.Anything, testUID, mock.MatchedBy(func(got []models.LineItem) bool {
			return len(got) == 2
		})).Return(mockCart, nil).Once()

		// Act
		handler := cartHandler.ReplaceCart()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockCartService.AssertExpectations(t)
	})

	t.Run("Success - Empty List Clears The Cart", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		requestBody := []byte(`{"items": []}`)

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/cart", bytes.NewBuffer(requestBody), testUID, nil)
		recorder := httptest.NewRecorder()

		mockCart := &models.Cart{UserID: testUID, Items: []models.LineItem{}}
		mockCartService.On("ReplaceCart", mock.Anything, testUID, mock.MatchedBy(func(got []models.LineItem) bool {
			return len(got) == 0
		})).Return(mockCart, nil).Once()

		// Act
		handler := cartHandler.ReplaceCart()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockCartService.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		req := testutils.CreateTestRequestWithoutContext("POST", "/api/v1/cart", bytes.NewBufferString(`{"items":[]}`), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := cartHandler.ReplaceCart()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockCartService.AssertNotCalled(t, "ReplaceCart")
	})
}

func TestSetQuantity(t *testing.T) {
	t.Run("Success - Quantity Updated", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		productID := uuid.New()
		requestBody, _ := json.Marshal(models.SetQuantityRequest{
			ProductID: productID, ColorName: "Black", SizeLabel: "M", Quantity: 5,
		})

		req := testutils.CreateTestRequestWithContext("PATCH", "/api/v1/cart/items/quantity", bytes.NewBuffer(requestBody), testUID, nil)
		recorder := httptest.NewRecorder()

		mockCart := &models.Cart{UserID: testUID, Items: []models.LineItem{testItem(productID, 5)}}
		mockCartService.On("SetQuantity", mock.Anything, testUID, mock.MatchedBy(func(got *models.SetQuantityRequest) bool {
			return got.ProductID == productID && got.Quantity == 5
		})).Return(mockCart, nil).Once()

		// Act
		handler := cartHandler.SetQuantity()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockCartService.AssertExpectations(t)
	})

	t.Run("Success - Zero Quantity Accepted", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		productID := uuid.New()
		requestBody, _ := json.Marshal(models.SetQuantityRequest{
			ProductID: productID, ColorName: "Black", SizeLabel: "M", Quantity: 0,
		})

		req := testutils.CreateTestRequestWithContext("PATCH", "/api/v1/cart/items/quantity", bytes.NewBuffer(requestBody), testUID, nil)
		recorder := httptest.NewRecorder()

		mockCart := &models.Cart{UserID: testUID, Items: []models.LineItem{}}
		mockCartService.On("SetQuantity", mock.Anything, testUID, mock.MatchedBy(func(got *models.SetQuantityRequest) bool {
			return got.Quantity == 0
		})).Return(mockCart, nil).Once()

		// Act
		handler := cartHandler.SetQuantity()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockCartService.AssertExpectations(t)
	})

	t.Run("Failure - Negative Quantity Rejected", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		requestBody, _ := json.Marshal(models.SetQuantityRequest{
			ProductID: uuid.New(), Quantity: -1,
		})

		req := testutils.CreateTestRequestWithContext("PATCH", "/api/v1/cart/items/quantity", bytes.NewBuffer(requestBody), testUID, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := cartHandler.SetQuantity()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCartService.AssertNotCalled(t, "SetQuantity")
	})
}

func TestRemoveProduct(t *testing.T) {
	t.Run("Success - Product Removed", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		productID := uuid.New()

		req := testutils.CreateTestRequestWithContext("DELETE", "/api/v1/cart/items/"+productID.String(), nil, testUID,
			map[string]string{"productId": productID.String()})
		recorder := httptest.NewRecorder()

		mockCart := &models.Cart{UserID: testUID, Items: []models.LineItem{}}
		mockCartService.On("RemoveProduct", mock.Anything, testUID, productID).Return(mockCart, nil).Once()

		// Act
		handler := cartHandler.RemoveProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockCartService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Product ID", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()

		req := testutils.CreateTestRequestWithContext("DELETE", "/api/v1/cart/items/not-a-uuid", nil, testUID,
			map[string]string{"productId": "not-a-uuid"})
		recorder := httptest.NewRecorder()

		// Act
		handler := cartHandler.RemoveProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCartService.AssertNotCalled(t, "RemoveProduct")
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest()
		productID := uuid.New()

		req := testutils.CreateTestRequestWithoutContext("DELETE", "/api/v1/cart/items/"+productID.String(), nil,
			map[string]string{"productId": productID.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler := cartHandler.RemoveProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockCartService.AssertNotCalled(t, "RemoveProduct")
	})
}
