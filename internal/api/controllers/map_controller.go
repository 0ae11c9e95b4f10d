package controllers

import (
	"github.com/gin-gonic/gin"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type MapController struct {
	sessions services.SessionServiceInterface
}

func NewMapController(sessions services.SessionServiceInterface) *MapController {
	return &MapController{sessions: sessions}
}

func (m *MapController) GetFrame(c *gin.Context) {
	sess, ok := loadSession(c, m.sessions)
	if !ok {
		return
	}
	utils.RespondSuccess(c, sess.MapFrame(), "Map frame fetched successfully")
}

func (m *MapController) SetDayView(c *gin.Context) {
	sess, ok := loadSession(c, m.sessions)
	if !ok {
		return
	}
	var req request_models.DayViewRequest
	if !bindJSON(c, &req) {
		return
	}
	frame, err := sess.SetDayView(req.Day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, frame, "Day view updated")
}

func (m *MapController) TapMarker(c *gin.Context) {
	sess, ok := loadSession(c, m.sessions)
	if !ok {
		return
	}
	var req request_models.MapTapRequest
	if !bindJSON(c, &req) {
		return
	}
	detail, err := sess.TapMarker(req.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, detail, "Location detail fetched successfully")
}

func (m *MapController) ClickMap(c *gin.Context) {
	sess, ok := loadSession(c, m.sessions)
	if !ok {
		return
	}
	if _, err := sess.ClickMap(); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Map click ignored")
}
