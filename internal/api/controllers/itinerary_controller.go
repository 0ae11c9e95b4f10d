package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type ItineraryController struct {
	sessions services.SessionServiceInterface
}

func NewItineraryController(sessions services.SessionServiceInterface) *ItineraryController {
	return &ItineraryController{sessions: sessions}
}

func (i *ItineraryController) ListItinerary(c *gin.Context) {
	sess, ok := loadSession(c, i.sessions)
	if !ok {
		return
	}
	items, total := sess.Itinerary()
	utils.RespondSuccess(c, response_models.ItineraryResponse{
		Items:     items,
		Count:     len(items),
		TotalCost: total,
	}, "Itinerary fetched successfully")
}

// AddItinerary godoc
// @Summary Add an experience to the itinerary
// @Description Adding an id already present returns the existing entry with added=false.
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body request_models.AddItineraryRequest true "Experience and optional placement"
// @Success 200 {object} response_models.AddItineraryResponse
// @Router /sessions/{id}/itinerary [post]
func (i *ItineraryController) AddItinerary(c *gin.Context) {
	sess, ok := loadSession(c, i.sessions)
	if !ok {
		return
	}
	var req request_models.AddItineraryRequest
	if !bindJSON(c, &req) {
		return
	}

	var sched *dm.Schedule
	if req.Day != nil || req.Slot != "" || req.Time != "" {
		sched = &dm.Schedule{Time: req.Time}
		if req.Day != nil {
			sched.Day = *req.Day
		}
		if req.Slot != "" {
			slot, err := dm.ParseTimeSlot(req.Slot)
			if err != nil {
				utils.HandleServiceError(c, err)
				return
			}
			sched.Slot = slot
		}
	}

	entry, added, err := sess.AddExperience(req.ExperienceID, sched)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	msg := "Experience added to itinerary"
	if !added {
		msg = "Experience already in itinerary"
	}
	utils.RespondSuccess(c, response_models.AddItineraryResponse{Item: entry, Added: added}, msg)
}

// RemoveItinerary succeeds for ids that are not in the itinerary.
func (i *ItineraryController) RemoveItinerary(c *gin.Context) {
	sess, ok := loadSession(c, i.sessions)
	if !ok {
		return
	}
	removed := sess.RemoveExperience(c.Param("itemId"))
	items, total := sess.Itinerary()
	msg := "Experience removed from itinerary"
	if !removed {
		msg = "Experience was not in itinerary"
	}
	utils.RespondSuccess(c, response_models.ItineraryResponse{Items: items, Count: len(items), TotalCost: total}, msg)
}

func (i *ItineraryController) BookItem(c *gin.Context) {
	sess, ok := loadSession(c, i.sessions)
	if !ok {
		return
	}
	itemID := c.Param("itemId")
	msg, err := sess.Book(itemID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.BookingResponse{ExperienceID: itemID, Message: msg}, "Booking simulated")
}

func (i *ItineraryController) ExportPDF(c *gin.Context) {
	sess, ok := loadSession(c, i.sessions)
	if !ok {
		return
	}
	items, total := sess.Itinerary()
	pdf, err := services.ExportItineraryPDF("Your Rome itinerary", items, total)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=itinerary-%s.pdf", sess.ID()))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
