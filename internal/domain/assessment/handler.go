package assessment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rehabflow/rehabflow/internal/platform/auth"
	"github.com/rehabflow/rehabflow/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/assessments", h.CreateAssessment)
	api.GET("/assessments", h.ListAssessments)
	api.GET("/assessments/:id", h.GetAssessment)
	api.PUT("/assessments/:id", h.UpdateAssessment)
	api.DELETE("/assessments/:id", h.DeleteAssessment)
	api.POST("/assessments/:id/images", h.AttachImage)
	api.GET("/assessments/:id/images", h.ListImages)
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	sub := auth.UserIDFromContext(c.Request().Context())
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return id, nil
}

// Missing rows and ownership failures both read as not found.
func notFoundOrError(err error) error {
	return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
}

func (h *Handler) CreateAssessment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var a InjuryAssessment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.UserID = userID
	if err := h.svc.CreateAssessment(c.Request().Context(), &a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAssessment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetOwned(c.Request().Context(), id, userID)
	if err != nil {
		return notFoundOrError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAssessments(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListAssessments(c.Request().Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateAssessment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var update InjuryAssessment
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.UpdateAssessment(c.Request().Context(), id, userID, &update)
	if err != nil {
		if errors.Is(err, ErrNotOwned) {
			return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAssessment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteAssessment(c.Request().Context(), id, userID); err != nil {
		return notFoundOrError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type attachImageRequest struct {
	ImagePath string `json:"image_path"`
}

func (h *Handler) AttachImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req attachImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	img, err := h.svc.AttachImage(c.Request().Context(), id, userID, req.ImagePath)
	if err != nil {
		if errors.Is(err, ErrNotOwned) {
			return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, img)
}

func (h *Handler) ListImages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.ListImages(c.Request().Context(), id, userID)
	if err != nil {
		return notFoundOrError(err)
	}
	if items == nil {
		items = []*InjuryImage{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"images": items})
}
