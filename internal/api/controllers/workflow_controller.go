package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type WorkflowController struct {
	sessions services.SessionServiceInterface
}

func NewWorkflowController(sessions services.SessionServiceInterface) *WorkflowController {
	return &WorkflowController{sessions: sessions}
}

// SelectCategory godoc
// @Summary Choose a category
// @Description "itinerary" generates the assistant plan; item categories open the day/slot inputs.
// @Tags Workflow
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body request_models.SelectCategoryRequest true "Category"
// @Success 200 {object} services.CategoryView
// @Router /sessions/{id}/workflow/category [post]
func (w *WorkflowController) SelectCategory(c *gin.Context) {
	sess, ok := loadSession(c, w.sessions)
	if !ok {
		return
	}
	var req request_models.SelectCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := dm.ParseCategory(req.Category)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	view, err := sess.SelectCategory(c.Request.Context(), category)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, view, "Category selected")
}

func (w *WorkflowController) SetDay(c *gin.Context) {
	sess, ok := loadSession(c, w.sessions)
	if !ok {
		return
	}
	var req request_models.SetDayRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Day.IsSet() {
		utils.RespondError(c, http.StatusBadRequest, "Day is required")
		return
	}

	state, err := sess.SetDay(req.Day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "Day selected")
}

func (w *WorkflowController) SetTimeSlot(c *gin.Context) {
	sess, ok := loadSession(c, w.sessions)
	if !ok {
		return
	}
	var req request_models.SetSlotRequest
	if !bindJSON(c, &req) {
		return
	}
	slot, err := dm.ParseTimeSlot(req.Slot)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	state, err := sess.SetTimeSlot(slot)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "Time slot selected")
}

func (w *WorkflowController) Hold(c *gin.Context) {
	sess, ok := loadSession(c, w.sessions)
	if !ok {
		return
	}
	var req request_models.HoldRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := sess.Hold(req.ExperienceID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	msg := "Experience held until the selection is confirmed"
	if res.Added != nil {
		msg = "Experience added to itinerary"
	}
	utils.RespondSuccess(c, res, msg)
}

// Confirm is a no-op with 409 until both day and slot are set.
func (w *WorkflowController) Confirm(c *gin.Context) {
	sess, ok := loadSession(c, w.sessions)
	if !ok {
		return
	}

	res := sess.ConfirmSelection()
	if !res.Confirmed {
		c.JSON(http.StatusConflict, utils.APIResponse{
			Status:  "error",
			Code:    http.StatusConflict,
			Message: utils.ErrSelectionIncomplete.Error(),
			TraceID: c.GetString(utils.TraceIDKey),
			Data:    res,
		})
		return
	}
	utils.RespondSuccess(c, res, "Selection confirmed")
}

func (w *WorkflowController) Reset(c *gin.Context) {
	sess, ok := loadSession(c, w.sessions)
	if !ok {
		return
	}
	utils.RespondSuccess(c, sess.ResetSelection(), "Selection reset")
}
