package analysis

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
	api.POST("/ai/analyze/:assessmentID", h.RunAnalysis)
	api.GET("/ai/analysis/:assessmentID", h.GetAnalysis)
	api.GET("/ai/analysis/:assessmentID/plan", h.GetPlan)
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	sub := auth.UserIDFromContext(c.Request().Context())
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return id, nil
}

func assessmentParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("assessmentID"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid assessment id")
	}
	return id, nil
}

func (h *Handler) RunAnalysis(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	assessmentID, err := assessmentParam(c)
	if err != nil {
		return err
	}
	email := auth.EmailFromContext(c.Request().Context())
	result, err := h.svc.Run(c.Request().Context(), userID, email, assessmentID)
	if err != nil {
		if errors.Is(err, assessment.ErrNotOwned) {
			return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
		}
		if errors.Is(err, ErrInferenceFailed) {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) GetAnalysis(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	assessmentID, err := assessmentParam(c)
	if err != nil {
		return err
	}
	result, err := h.svc.Latest(c.Request().Context(), userID, assessmentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "analysis not found")
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) GetPlan(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	assessmentID, err := assessmentParam(c)
	if err != nil {
		return err
	}
	email := auth.EmailFromContext(c.Request().Context())
	result, err := h.svc.PlanFor(c.Request().Context(), userID, email, assessmentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "analysis not found")
	}
	return c.JSON(http.StatusOK, result)
}
