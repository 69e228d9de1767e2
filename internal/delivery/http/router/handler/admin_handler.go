package handler

import (
	"log/slog"
	"net/http"
	"time"

	"showreel/internal/delivery/http/response"
	"showreel/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AdminHandler holds dependencies for the lockout administration handlers.
type AdminHandler struct {
	uc     usecase.CredentialUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.CredentialUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

type blockedIPResponse struct {
	IP             string    `json:"ip"`
	FailedAttempts int       `json:"failedAttempts"`
	BlockedUntil   time.Time `json:"blockedUntil"`
}

// ListBlockedIPs returns the addresses with an active lockout block.
func (h *AdminHandler) ListBlockedIPs(c echo.Context) error {
	blocked := h.uc.ListBlockedIPs(c.Request().Context())

	data := make([]*blockedIPResponse, 0, len(blocked))
	for _, entry := range blocked {
		data = append(data, &blockedIPResponse{
			IP:             entry.IP,
			FailedAttempts: entry.FailedAttempts,
			BlockedUntil:   entry.BlockedUntil,
		})
	}

	return response.Success(c, http.StatusOK, data, "Blocked IPs retrieved successfully")
}

// ClearBlockedIP removes the lockout entry for one address.
func (h *AdminHandler) ClearBlockedIP(c echo.Context) error {
	ip := c.Param("ip")

	if !h.uc.ClearBlockedIP(c.Request().Context(), ip) {
		return response.NotFound(c, "LOCKOUT_ENTRY_NOT_FOUND", "No lockout entry for this IP")
	}

	return response.Success(c, http.StatusOK, map[string]string{"ip": ip}, "Lockout entry cleared")
}

// ClearAllBlocks empties the whole lockout table.
func (h *AdminHandler) ClearAllBlocks(c echo.Context) error {
	cleared := h.uc.ClearAllBlocks(c.Request().Context())

	return response.Success(c, http.StatusOK, map[string]int{"cleared": cleared}, "Lockout table cleared")
}
