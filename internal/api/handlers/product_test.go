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

func setupProductTest() (*mocks.ProductService, *handlers.ProductHandler) {
	mockProductService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockProductService)
	return mockProductService, productHandler
}

func createRequestBody() models.CreateProductRequest {
	return models.CreateProductRequest{
		Name:        "Linen Shirt",
		Description: "A breathable summer shirt.",
		Category:    "clothing",
		Colors: []models.ColorVariant{
			{
				Name:  "Black",
				Sizes: []models.SizeVariant{{Size: "M", Price: 49.99, Stock: 5}},
			},
		},
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("Success - Product Created", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()
		reqBody := createRequestBody()
		requestBody, _ := json.Marshal(reqBody)

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/products", bytes.NewBuffer(requestBody), testUID, nil)
		recorder := httptest.NewRecorder()

		created := &models.Product{ID: uuid.New(), Name: reqBody.Name, CreatedBy: testUID}
		mockProductService.On("CreateProduct", mock.Anything, mock.MatchedBy(func(got *models.CreateProductRequest) bool {
			return got.Name == reqBody.Name
		}), testUID).Return(created, nil).Once()

		// Act
		handler := productHandler.CreateProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()
		requestBody, _ := json.Marshal(createRequestBody())

		req := testutils.CreateTestRequestWithoutContext("POST", "/api/v1/products", bytes.NewBuffer(requestBody), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := productHandler.CreateProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockProductService.AssertNotCalled(t, "CreateProduct")
	})

	t.Run("Failure - Missing Colors", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()
		reqBody := createRequestBody()
		reqBody.Colors = nil
		requestBody, _ := json.Marshal(reqBody)

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/products", bytes.NewBuffer(requestBody), testUID, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := productHandler.CreateProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockProductService.AssertNotCalled(t, "CreateProduct")
	})

	t.Run("Failure - Unknown Category", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()
		reqBody := createRequestBody()
		reqBody.Category = "furniture"
		requestBody, _ := json.Marshal(reqBody)

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/products", bytes.NewBuffer(requestBody), testUID, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := productHandler.CreateProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockProductService.AssertNotCalled(t, "CreateProduct")
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Success - Product Found", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()
		productID := uuid.New()

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products/"+productID.String(), nil,
			map[string]string{"id": productID.String()})
		recorder := httptest.NewRecorder()

		stored := &models.Product{ID: productID, Name: "Linen Shirt"}
		mockProductService.On("GetProductByID", mock.Anything, productID).Return(stored, nil).Once()

		// Act
		handler := productHandler.GetProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()
		productID := uuid.New()

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products/"+productID.String(), nil,
			map[string]string{"id": productID.String()})
		recorder := httptest.NewRecorder()

		mockError := appErrors.NotFoundError("Product not found")
		mockProductService.On("GetProductByID", mock.Anything, productID).Return(nil, mockError).Once()

		// Act
		handler := productHandler.GetProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products/not-a-uuid", nil,
			map[string]string{"id": "not-a-uuid"})
		recorder := httptest.NewRecorder()

		// Act
		handler := productHandler.GetProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockProductService.AssertNotCalled(t, "GetProductByID")
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Success - Product Updated", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()
		productID := uuid.New()
		newName := "Updated Shirt"
		requestBody, _ := json.Marshal(models.UpdateProductRequest{Name: &newName})

		req := testutils.CreateTestRequestWithContext("PUT", "/api/v1/products/"+productID.String(), bytes.NewBuffer(requestBody), testUID,
			map[string]string{"id": productID.String()})
		recorder := httptest.NewRecorder()

		updated := &models.Product{ID: productID, Name: newName}
		mockProductService.On("UpdateProduct", mock.Anything, productID, mock.MatchedBy(func(got *models.UpdateProductRequest) bool {
			return got.Name != nil && *got.Name == newName
		})).Return(updated, nil).Once()

		// Act
		handler := productHandler.UpdateProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()
		productID := uuid.New()
		newName := "Updated Shirt"
		requestBody, _ := json.Marshal(models.UpdateProductRequest{Name: &newName})

		req := testutils.CreateTestRequestWithoutContext("PUT", "/api/v1/products/"+productID.String(), bytes.NewBuffer(requestBody),
			map[string]string{"id": productID.String()})
		recorder := httptest.NewRecorder()

		// Act
		handler := productHandler.UpdateProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockProductService.AssertNotCalled(t, "UpdateProduct")
	})
}

func TestListProducts(t *testing.T) {
	t.Run("Success - Default Pagination", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products", nil, nil)
		recorder := httptest.NewRecorder()

		stored := []*models.Product{{ID: uuid.New()}, {ID: uuid.New()}}
		mockProductService.On("ListProducts", mock.Anything, 1, 20).Return(stored, 2, nil).Once()

		// Act
		handler := productHandler.ListProducts()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"total":2`)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Success - Explicit Page And Size", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products?page=3&page_size=50", nil, nil)
		recorder := httptest.NewRecorder()

		mockProductService.On("ListProducts", mock.Anything, 3, 50).Return([]*models.Product{}, 0, nil).Once()

		// Act
		handler := productHandler.ListProducts()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Success - Oversized Page Size Clamped", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products?page_size=5000", nil, nil)
		recorder := httptest.NewRecorder()

		mockProductService.On("ListProducts", mock.Anything, 1, 100).Return([]*models.Product{}, 0, nil).Once()

		// Act
		handler := productHandler.ListProducts()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products", nil, nil)
		recorder := httptest.NewRecorder()

		mockError := appErrors.DatabaseError("Failed to fetch products")
		mockProductService.On("ListProducts", mock.Anything, 1, 20).Return(nil, 0, mockError).Once()

		// Act
		handler := productHandler.ListProducts()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		mockProductService.AssertExpectations(t)
	})
}
