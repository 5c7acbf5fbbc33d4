package progress

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rehabflow/rehabflow/internal/domain/assessment"
	"github.com/rehabflow/rehabflow/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/progress/complete-day", h.CompleteDay)
	api.GET("/progress/completed-days/:assessmentID", h.CompletedDays)
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	sub := auth.UserIDFromContext(c.Request().Context())
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return id, nil
}

func (h *Handler) CompleteDay(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CompleteDayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	email := auth.EmailFromContext(c.Request().Context())
	resp, err := h.svc.CompleteDay(c.Request().Context(), userID, email, &req)
	if err != nil {
		if errors.Is(err, assessment.ErrNotOwned) {
			return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) CompletedDays(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	assessmentID, err := uuid.Parse(c.Param("assessmentID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid assessment id")
	}
	days, err := h.svc.CompletedDays(c.Request().Context(), userID, assessmentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
	}
	if days == nil {
		days = []int{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"completed_days": days})
}
