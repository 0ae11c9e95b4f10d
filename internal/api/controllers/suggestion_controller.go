package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type SuggestionController struct {
	sessions services.SessionServiceInterface
}

func NewSuggestionController(sessions services.SessionServiceInterface) *SuggestionController {
	return &SuggestionController{sessions: sessions}
}

func (s *SuggestionController) GetSuggestion(c *gin.Context) {
	sess, ok := loadSession(c, s.sessions)
	if !ok {
		return
	}
	plan, err := sess.Suggestion(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Suggestion fetched successfully")
}

func (s *SuggestionController) AddActivity(c *gin.Context) {
	sess, ok := loadSession(c, s.sessions)
	if !ok {
		return
	}
	var req request_models.SuggestedActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, added, err := sess.AddSuggestedActivity(c.Request.Context(), req.Day, req.ActivityID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	msg := "Activity added to itinerary"
	if !added {
		msg = "Activity already in itinerary"
	}
	utils.RespondSuccess(c, response_models.AddItineraryResponse{Item: entry, Added: added}, msg)
}

func (s *SuggestionController) ConfirmDay(c *gin.Context) {
	sess, ok := loadSession(c, s.sessions)
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day")
		return
	}

	added, err := sess.ConfirmDay(c.Request.Context(), day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.ConfirmDayResponse{Day: day, Added: added}, "Day confirmed")
}

// ConfirmPlan godoc
// @Summary Merge every suggested day into the itinerary
// @Tags Suggestion
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.ConfirmPlanResponse
// @Router /sessions/{id}/suggestion/confirm [post]
func (s *SuggestionController) ConfirmPlan(c *gin.Context) {
	sess, ok := loadSession(c, s.sessions)
	if !ok {
		return
	}
	count, err := sess.ConfirmPlan(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.ConfirmPlanResponse{Added: count}, "Plan confirmed")
}
