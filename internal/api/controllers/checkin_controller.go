package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/media"
	"wayfarer/pkg/utils"
)

type CheckInController struct {
	sessions services.SessionServiceInterface
	media    *media.Store
	log      *zap.Logger
}

func NewCheckInController(sessions services.SessionServiceInterface, store *media.Store, log *zap.Logger) *CheckInController {
	return &CheckInController{sessions: sessions, media: store, log: log}
}

// Prepare godoc
// @Summary Start a check-in draft
// @Description Coordinates in the body are used as-is; geo_denied forces the default location; otherwise the browser is asked over the websocket.
// @Tags CheckIn
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body request_models.PrepareCheckInRequest true "Point and optional position"
// @Success 200 {object} domain_models.CheckInDraft
// @Router /sessions/{id}/checkins/prepare [post]
func (cc *CheckInController) Prepare(c *gin.Context) {
	sess, ok := loadSession(c, cc.sessions)
	if !ok {
		return
	}
	var req request_models.PrepareCheckInRequest
	if !bindJSON(c, &req) {
		return
	}

	var loc services.Locator
	switch {
	case req.Lat != nil && req.Lng != nil:
		loc = services.ReportedLocator{Position: &dm.LatLng{Lat: *req.Lat, Lng: *req.Lng}}
	case req.GeoDenied:
		loc = services.ReportedLocator{}
	}

	draft, err := sess.PrepareCheckIn(c.Request.Context(), req.PointID, loc)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, draft, "Check-in prepared")
}

func (cc *CheckInController) SetNotes(c *gin.Context) {
	sess, ok := loadSession(c, cc.sessions)
	if !ok {
		return
	}
	var req request_models.CheckInNotesRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := sess.SetCheckInNotes(req.Notes)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, draft, "Notes updated")
}

// AttachPhotos stores the multipart "photos" files. Files that fail
// validation are listed in rejected; the rest are attached.
func (cc *CheckInController) AttachPhotos(c *gin.Context) {
	sess, ok := loadSession(c, cc.sessions)
	if !ok {
		return
	}
	if _, ok := sess.CheckInDraft(); !ok {
		utils.HandleServiceError(c, utils.ErrNoDraft)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	saved, saveErr := cc.media.SaveFormFiles(form, "photos")
	var rejected []string
	if saveErr != nil {
		cc.log.Info("check-in photos rejected", zap.String("session_id", sess.ID()), zap.Error(saveErr))
		rejected = strings.Split(saveErr.Error(), "\n")
	}
	if len(saved) == 0 {
		utils.HandleServiceError(c, fmt.Errorf("%w: %v", utils.ErrInvalidPhoto, saveErr))
		return
	}

	photos := make([]dm.Photo, 0, len(saved))
	for _, s := range saved {
		photos = append(photos, dm.Photo{Ref: s.Ref, ThumbRef: s.ThumbRef, SizeBytes: s.SizeBytes})
	}
	draft, err := sess.AttachCheckInPhotos(photos)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.CheckInPhotosResponse{Draft: draft, Rejected: rejected}, "Photos attached")
}

func (cc *CheckInController) Submit(c *gin.Context) {
	sess, ok := loadSession(c, cc.sessions)
	if !ok {
		return
	}
	rec, err := sess.SubmitCheckIn(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, rec, "Check-in recorded")
}

func (cc *CheckInController) ListCheckIns(c *gin.Context) {
	sess, ok := loadSession(c, cc.sessions)
	if !ok {
		return
	}
	utils.RespondSuccess(c, sess.CheckIns(), "Check-ins fetched successfully")
}

func (cc *CheckInController) QRCode(c *gin.Context) {
	sess, ok := loadSession(c, cc.sessions)
	if !ok {
		return
	}
	rec, err := sess.CheckIn(c.Param("code"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	png, err := services.RenderCheckInQR(rec)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
