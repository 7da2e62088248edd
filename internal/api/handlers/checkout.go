package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poshakbd/storefront/internal/api/middleware"
	"github.com/poshakbd/storefront/internal/cart"
	"github.com/poshakbd/storefront/internal/errors"
	"github.com/poshakbd/storefront/internal/models"
	service "github.com/poshakbd/storefront/internal/services"
	"github.com/poshakbd/storefront/internal/utils/response"
)

type CheckoutHandler struct {
	cartService service.CartService
}

func NewCheckoutHandler(cartService service.CartService) *CheckoutHandler {
	return &CheckoutHandler{cartService: cartService}
}

// PlaceOrder godoc
//	@Summary		Place an order from the current cart
//	@Description	Simulated checkout: snapshots the cart total, clears the cart, and returns an order reference. No payment is taken.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutResponse	"Order confirmation"
//	@Failure		400	{object}	response.ErrorResponse	"Cart is empty"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		current, err := h.cartService.GetCart(r.Context(), claims.UID)
		if err != nil {
			logger.Error("Failed to load cart for checkout", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if len(current.Items) == 0 {
			response.Error(w, errors.BadRequestError("Cannot check out an empty cart"))
			return
		}

		total := cart.Total(current.Items)
		itemCount := 0
		for _, item := range current.Items {
			itemCount += item.Quantity
		}

		if _, err := h.cartService.ReplaceCart(r.Context(), claims.UID, []models.LineItem{}); err != nil {
			logger.Error("Failed to clear cart after checkout", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		orderRef := fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.New().String()[:8]))

		logger.Info("Order placed",
			slog.String("orderRef", orderRef),
			slog.Float64("total", total),
			slog.Int("itemCount", itemCount))

		response.Success(w, http.StatusOK, models.CheckoutResponse{
			OrderRef:  orderRef,
			Total:     total,
			ItemCount: itemCount,
			PlacedAt:  time.Now().UTC(),
		})
	}
}
