package api

import (
	"errors"
	"fmt"
	"net/http"

	"poker-hand-service/internal/model"
	"poker-hand-service/internal/service"
	handSvc "poker-hand-service/internal/service/hand"
	appErr "poker-hand-service/pkg/errors"
	"poker-hand-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Container
}

func RegisterRoutes(r *gin.Engine, services *service.Container) {
	handler := &Handler{services: services}

	r.GET("/", handler.Health)

	hands := r.Group("/hands")
	{
		hands.POST("/", handler.CreateHand)
		hands.GET("/", handler.ListHands)
		hands.GET("/:id", handler.GetHandByID)
	}
}

type createHandBody struct {
	// stack_settings carries no binding tag: an absent or empty object
	// is rejected by the calculator as a missing participant set.
	StackSettings  model.StackSettings `json:"stack_settings"`
	PlayerRoles    map[string]string   `json:"player_roles" binding:"required"`
	HoleCards      map[string][]string `json:"hole_cards" binding:"required"`
	ActionSequence string              `json:"action_sequence" binding:"required"`
}

func (h *Handler) Health(c *gin.Context) {
	response.OK(c, gin.H{"status": "ok", "message": "Welcome to the Poker Hand API"})
}

func (h *Handler) CreateHand(c *gin.Context) {
	var body createHandBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.services.Hand.Create(c.Request.Context(), handSvc.CreateParams{
		StackSettings:  body.StackSettings,
		PlayerRoles:    body.PlayerRoles,
		HoleCards:      body.HoleCards,
		ActionSequence: body.ActionSequence,
	})
	switch {
	case err == nil:
		response.Created(c, record)
	case errors.Is(err, appErr.ErrNoParticipants):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErr.ErrHandsTableMissing):
		response.Error(c, http.StatusInternalServerError, "Database table 'hands' does not exist. Cannot save hand.")
	case errors.Is(err, appErr.ErrHandNotSaved):
		response.Error(c, http.StatusInternalServerError, "Failed to save hand data to database.")
	default:
		response.Error(c, http.StatusInternalServerError,
			fmt.Sprintf("An unexpected error occurred while processing the hand: %T - %v", err, err))
	}
}

func (h *Handler) ListHands(c *gin.Context) {
	hands := h.services.Hand.List(c.Request.Context())
	response.OK(c, gin.H{"hands": hands})
}

func (h *Handler) GetHandByID(c *gin.Context) {
	id := c.Param("id")

	record, err := h.services.Hand.Get(c.Request.Context(), id)
	switch {
	case err == nil:
		response.OK(c, record)
	case errors.Is(err, appErr.ErrHandsTableMissing):
		response.Error(c, http.StatusNotFound, fmt.Sprintf("Hand with ID %s not found (table missing).", id))
	case errors.Is(err, appErr.ErrHandNotFound):
		response.Error(c, http.StatusNotFound, fmt.Sprintf("Hand with ID %s not found.", id))
	default:
		response.Error(c, http.StatusInternalServerError,
			fmt.Sprintf("Failed to retrieve hand history: %T - %v", err, err))
	}
}
