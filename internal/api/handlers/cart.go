package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/poshakbd/storefront/internal/api/middleware"
	"github.com/poshakbd/storefront/internal/errors"
	"github.com/poshakbd/storefront/internal/models"
	service "github.com/poshakbd/storefront/internal/services"
	"github.com/poshakbd/storefront/internal/utils"
	"github.com/poshakbd/storefront/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the current user's cart
//	@Description	Returns the stored cart. A user who never wrote a cart gets an empty item list, not an error.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart				"Cart (possibly empty)"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UID)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// UpsertItem godoc
//	@Summary		Add or update one cart line item
//	@Description	Immediate per-item write: merges the item into the cart by variant key (product, color name, size label), taking the quantity verbatim. This is the durable path a single "add to cart" rides on.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpsertItemRequest	true	"Line item"
//	@Success		200		{object}	models.Cart					"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items [put]
func (h *CartHandler) UpsertItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart write attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpsertItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid upsert item input")
			return
		}

		cart, err := h.cartService.UpsertItem(r.Context(), claims.UID, &req.Item)
		if err != nil {
			logger.Error("Failed to upsert cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart item upserted", slog.String("productId", req.Item.ProductID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

// ReplaceCart godoc
//	@Summary		Overwrite the cart wholesale
//	@Description	The debounced bulk-save path: replaces the full item list, creating the cart if absent. Idempotent.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			cart	body		models.ReplaceCartRequest	true	"Full item list"
//	@Success		200		{object}	models.Cart					"Stored cart"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [post]
func (h *CartHandler) ReplaceCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart write attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.ReplaceCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid replace cart input")
			return
		}

		cart, err := h.cartService.ReplaceCart(r.Context(), claims.UID, req.Items)
		if err != nil {
			logger.Error("Failed to replace cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart saved", slog.Int("itemCount", len(cart.Items)))
		response.Success(w, http.StatusOK, cart)
	}
}

// SetQuantity godoc
//	@Summary		Set a line item's quantity
//	@Description	Quantity 0 removes the variant; a positive quantity replaces it. An absent variant is a no-op.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			quantity	body		models.SetQuantityRequest	true	"Variant key and new quantity"
//	@Success		200			{object}	models.Cart					"Updated cart"
//	@Failure		400			{object}	response.ErrorResponse		"Validation error"
//	@Failure		401			{object}	response.ErrorResponse		"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items/quantity [patch]
func (h *CartHandler) SetQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart write attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.SetQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid set quantity input")
			return
		}

		cart, err := h.cartService.SetQuantity(r.Context(), claims.UID, &req)
		if err != nil {
			logger.Error("Failed to set quantity", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveProduct godoc
//	@Summary		Remove a product from the cart
//	@Description	Removes every variant of the product, across all colors and sizes.
//	@Tags			Cart
//	@Produce		json
//	@Param			productId	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		200			{object}	models.Cart				"Updated cart"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items/{productId} [delete]
func (h *CartHandler) RemoveProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart write attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveProduct(r.Context(), claims.UID, productID)
		if err != nil {
			logger.Error("Failed to remove product from cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product removed from cart", slog.String("productId", productID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}
