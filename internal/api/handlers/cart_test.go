package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/services/mocks"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// setupCartTest -> creates common test dependencies
func setupCartTest(t *testing.T) (*mocks.MockCartService, *handlers.CartHandler) {
	mockCartService := mocks.NewMockCartService(t)
	return mockCartService, handlers.NewCartHandler(mockCartService)
}

func TestGetCart(t *testing.T) {
	shopperID := uuid.New()

	t.Run("Success - Retrieve Cart", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)

		mockCartService.On("GetCart", mock.Anything, shopperID).Return(&models.Cart{ShopperID: shopperID, Items: []models.CartItem{}}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/cart", nil, shopperID, models.RoleShopper, nil)
		rr := httptest.NewRecorder()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var cart models.Cart
		resp := testutils.DecodeAPIResponse(t, rr, &cart)
		assert.True(t, resp.Success)
		assert.Equal(t, shopperID, cart.ShopperID)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/cart", nil, nil)
		rr := httptest.NewRecorder()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		resp := testutils.DecodeAPIResponse(t, rr, nil)
		assert.Contains(t, resp.Error.Message, "Authentication required")
	})
}

func TestAddItem(t *testing.T) {
	shopperID := uuid.New()
	productID := uuid.New()

	t.Run("Success - Item Added", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)

		mockCartService.On("AddItem", mock.Anything, shopperID, &models.AddItemRequest{ProductID: productID, Quantity: 2}).
			Return(&models.Cart{ShopperID: shopperID, Items: []models.CartItem{{ProductID: productID, Quantity: 2}}}, nil).Once()

		body, _ := json.Marshal(models.AddItemRequest{ProductID: productID, Quantity: 2})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/cart", bytes.NewReader(body), shopperID, models.RoleShopper, nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Zero Quantity", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)

		body := `{"product_id":"` + productID.String() + `","quantity":0}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/cart", strings.NewReader(body), shopperID, models.RoleShopper, nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := testutils.DecodeAPIResponse(t, rr, nil)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("Failure - Quantity Above Line Limit", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)

		body := `{"product_id":"` + productID.String() + `","quantity":101}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/cart", strings.NewReader(body), shopperID, models.RoleShopper, nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := testutils.DecodeAPIResponse(t, rr, nil)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)

		mockCartService.On("AddItem", mock.Anything, shopperID, mock.Anything).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		body, _ := json.Marshal(models.AddItemRequest{ProductID: productID, Quantity: 1})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/cart", bytes.NewReader(body), shopperID, models.RoleShopper, nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUpdateQuantity(t *testing.T) {
	shopperID := uuid.New()
	itemID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)

		mockCartService.On("UpdateQuantity", mock.Anything, shopperID, itemID, 4).Return(&models.Cart{ShopperID: shopperID}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/"+itemID.String(), strings.NewReader(`{"quantity":4}`),
			shopperID, models.RoleShopper, map[string]string{"item_id": itemID.String()})
		rr := httptest.NewRecorder()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Non Positive Quantity", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/"+itemID.String(), strings.NewReader(`{"quantity":-1}`),
			shopperID, models.RoleShopper, map[string]string{"item_id": itemID.String()})
		rr := httptest.NewRecorder()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Invalid Item ID", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/abc", strings.NewReader(`{"quantity":1}`),
			shopperID, models.RoleShopper, map[string]string{"item_id": "abc"})
		rr := httptest.NewRecorder()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRemoveItem(t *testing.T) {
	shopperID := uuid.New()
	itemID := uuid.New()

	mockCartService, cartHandler := setupCartTest(t)

	mockCartService.On("RemoveItem", mock.Anything, shopperID, itemID).Return(nil, appErrors.NotFoundError("Cart item not found")).Once()

	req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/cart/"+itemID.String(), nil,
		shopperID, models.RoleShopper, map[string]string{"item_id": itemID.String()})
	rr := httptest.NewRecorder()

	cartHandler.RemoveItem().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
