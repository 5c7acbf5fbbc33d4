package profile

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rehabflow/rehabflow/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/profile", h.GetProfile)
	api.PUT("/profile", h.UpdateProfile)
	api.GET("/profile/baseline", h.GetBaseline)
	api.PUT("/profile/baseline", h.SaveBaseline)
	api.GET("/profile/conditions", h.GetUserConditions)
	api.PUT("/profile/conditions", h.SetUserConditions)
	api.GET("/conditions", h.ListConditions)
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	sub := auth.UserIDFromContext(c.Request().Context())
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return id, nil
}

func (h *Handler) GetProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	email := auth.EmailFromContext(c.Request().Context())
	p, err := h.svc.EnsureProfile(c.Request().Context(), userID, email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

type updateProfileRequest struct {
	FullName           *string `json:"full_name"`
	LanguagePreference string  `json:"language_preference"`
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	email := auth.EmailFromContext(c.Request().Context())
	p, err := h.svc.EnsureProfile(c.Request().Context(), userID, email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if req.FullName != nil {
		p.FullName = req.FullName
	}
	if req.LanguagePreference != "" {
		p.LanguagePreference = req.LanguagePreference
	}
	if err := h.svc.UpdateProfile(c.Request().Context(), p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetBaseline(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	b, err := h.svc.GetBaseline(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "baseline profile not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) SaveBaseline(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var b BaselineProfile
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b.UserID = userID
	if err := h.svc.SaveBaseline(c.Request().Context(), &b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListConditions(c echo.Context) error {
	items, err := h.svc.ListConditions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"conditions": items})
}

type setConditionsRequest struct {
	ConditionIDs []uuid.UUID `json:"condition_ids"`
}

func (h *Handler) SetUserConditions(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req setConditionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetUserConditions(c.Request().Context(), userID, req.ConditionIDs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetUserConditions(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	names, err := h.svc.ListUserConditionNames(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"conditions": names})
}
