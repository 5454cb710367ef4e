package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/service/mapview"
)

// MapHandler drives map views over HTTP.
type MapHandler struct {
	views  *mapview.Manager
	logger *zap.Logger
}

// NewMapHandler constructs the map view HTTP adapter.
func NewMapHandler(views *mapview.Manager, logger *zap.Logger) *MapHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MapHandler{views: views, logger: logger}
}

type openViewRequest struct {
	BranchID string `json:"branchId"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type filterRequest struct {
	BranchID string `json:"branchId"`
}

type toggleResponse struct {
	AnimalID  string `json:"animalId"`
	PopupOpen bool   `json:"popupOpen"`
}

// Open mounts a view that waits for an access token. The body is optional.
func (h *MapHandler) Open(c *gin.Context) {
	var req openViewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, h.logger, err)
			return
		}
	}
	v := h.views.Open(req.BranchID)
	c.JSON(http.StatusCreated, v.Snapshot())
}

// Get returns the view state and its markers.
func (h *MapHandler) Get(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v.Snapshot())
}

// SubmitToken initializes the map surface. Rejected tokens answer with the
// view snapshot so the error can be shown next to the token form.
func (h *MapHandler) SubmitToken(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	if err := v.SubmitToken(c.Request.Context(), req.Token); err != nil {
		status := statusFor(err)
		if status == http.StatusUnprocessableEntity {
			c.JSON(status, v.Snapshot())
			return
		}
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v.Snapshot())
}

// SetFilter narrows the view to one branch, or every branch for an empty id.
func (h *MapHandler) SetFilter(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	if err := v.SetBranchFilter(c.Request.Context(), req.BranchID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v.Snapshot())
}

// ToggleMarker opens or closes the popup of an animal's marker.
func (h *MapHandler) ToggleMarker(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	animalID := c.Param("animalId")
	open, err := v.ToggleMarkerPopup(animalID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toggleResponse{AnimalID: animalID, PopupOpen: open})
}

// GeoJSON returns the visible markers as a feature collection.
func (h *MapHandler) GeoJSON(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	fc := v.GeoJSON()
	body, err := fc.MarshalJSON()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}

// Close unmounts the view.
func (h *MapHandler) Close(c *gin.Context) {
	if err := h.views.Close(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MapHandler) view(c *gin.Context) (*mapview.View, bool) {
	v, err := h.views.View(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return v, true
}
