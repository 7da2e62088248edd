package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/poshakbd/storefront/internal/api/middleware"
	"github.com/poshakbd/storefront/internal/models"
	service "github.com/poshakbd/storefront/internal/services"
	"github.com/poshakbd/storefront/internal/utils"
	"github.com/poshakbd/storefront/internal/utils/response"
)

type AuthHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService, validator: validator.New()}
}

// CreateSession godoc
//	@Summary		Exchange an identity-provider profile for a session
//	@Description	Syncs the signed-in user's profile into the user store and mints a session token. Idempotent: repeat sign-ins update the stored profile in place. Rate limited per uid.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			profile	body		models.SyncUserRequest	true	"Identity-provider profile"
//	@Success		200		{object}	models.SessionResponse	"Session token and user profile"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		429		{object}	response.ErrorResponse	"Too many sign-in attempts"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/auth/sessions [post]
func (h *AuthHandler) CreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.SyncUserRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid sign-in input")
			return
		}

		session, err := h.userService.SyncProfile(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to sync user profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !session.Success {
			logger.Warn("Sign-in rate limited",
				slog.String("uid", req.UID),
				slog.Int("retryAfter", session.RetryAfter))
			response.WriteJson(w, http.StatusTooManyRequests, session)
			return
		}

		logger.Info("User session created", slog.String("uid", req.UID))
		response.Success(w, http.StatusOK, session)
	}
}
