package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type SessionController struct {
	sessions services.SessionServiceInterface
}

func NewSessionController(sessions services.SessionServiceInterface) *SessionController {
	return &SessionController{sessions: sessions}
}

// CreateSession godoc
// @Summary Start a planning session
// @Tags Session
// @Produce json
// @Success 201 {object} domain_models.SessionSnapshot
// @Router /sessions [post]
func (s *SessionController) CreateSession(c *gin.Context) {
	sess := s.sessions.Create()
	utils.RespondCreated(c, sess.Snapshot(), "Session created successfully")
}

func (s *SessionController) GetSession(c *gin.Context) {
	sess, ok := loadSession(c, s.sessions)
	if !ok {
		return
	}
	utils.RespondSuccess(c, sess.Snapshot(), "Session fetched successfully")
}

func (s *SessionController) DeleteSession(c *gin.Context) {
	if _, ok := loadSession(c, s.sessions); !ok {
		return
	}
	s.sessions.Delete(c.Param("id"))
	utils.RespondSuccess(c, nil, "Session closed")
}

// loadSession writes the error response itself when the session is unknown.
func loadSession(c *gin.Context, sessions services.SessionServiceInterface) (*services.PlannerSession, bool) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return nil, false
	}
	sess, err := sessions.Get(id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return nil, false
	}
	return sess, true
}

// bindJSON maps domain parse errors (bad day, slot...) through the usual
// service error table and anything else to a plain 400.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, utils.ErrInvalidDay) || errors.Is(err, utils.ErrInvalidTimeSlot) {
			utils.HandleServiceError(c, err)
			return false
		}
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
