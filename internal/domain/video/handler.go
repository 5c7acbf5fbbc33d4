package video

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the video search endpoints. These are public:
// exercise lookups carry no patient data.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/videos", h.SearchVideo)
	api.POST("/videos", h.SearchVideo)
}

type searchRequest struct {
	Keywords []string `json:"keywords" query:"keywords"`
}

func (h *Handler) SearchVideo(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.FindBestVideo(c.Request().Context(), req.Keywords)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoKeywords):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "keywords are required")
		case errors.Is(err, ErrNoResults):
			return echo.NewHTTPError(http.StatusNotFound, "no matching videos found")
		default:
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
	}
	return c.JSON(http.StatusOK, result)
}
