package api

import (
	"errors"
	"net/http"

	resdto "rentwheels/internal/handler/dto/response"
	"rentwheels/internal/handler/middleware"
	"rentwheels/internal/pkg/errs"
	"rentwheels/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DraftHandler struct {
	draftQueries usecase.DraftQueries
}

func NewDraftHandler(draftQueries usecase.DraftQueries) *DraftHandler {
	return &DraftHandler{
		draftQueries: draftQueries,
	}
}

// @Summary List resumable drafts
// @Description List the current user's in-progress booking drafts
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.DraftListResponse
// @Failure 401 {object} map[string]string
// @Router /drafts [get]
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	drafts, err := h.draftQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.DraftListResponse, len(drafts))
	for i, d := range drafts {
		response[i] = resdto.FromDraftListItem(d)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get draft
// @Description Get one of the current user's drafts by ID
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid draft ID format",
		})
		return
	}

	d, err := h.draftQueries.Get(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDraftNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Draft not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDraft(uuid.Nil, *d))
}
