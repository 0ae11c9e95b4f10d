package services

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	mem "wayfarer/pkg/memcache"
	"wayfarer/pkg/utils"
)

type SessionServiceInterface interface {
	Create() *PlannerSession
	Get(id string) (*PlannerSession, error)
	Delete(id string)
	Count() int
}

// ChannelProvider hands out the client link for a session id.
type ChannelProvider interface {
	Channel(sessionID string) SessionChannel
	Close(sessionID string)
}

type nopChannels struct{}

func (nopChannels) Channel(string) SessionChannel { return NopChannel{} }
func (nopChannels) Close(string)                  {}

type SessionService struct {
	store     mem.SessionStore[*PlannerSession]
	catalog   CatalogServiceInterface
	generator SuggestionGenerator
	channels  ChannelProvider
	checkIn   CheckInConfig
	log       *zap.Logger
}

func NewSessionService(
	store mem.SessionStore[*PlannerSession],
	catalog CatalogServiceInterface,
	generator SuggestionGenerator,
	channels ChannelProvider,
	checkIn CheckInConfig,
	log *zap.Logger,
) SessionServiceInterface {
	if channels == nil {
		channels = nopChannels{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	svc := &SessionService{
		store:     store,
		catalog:   catalog,
		generator: generator,
		channels:  channels,
		checkIn:   checkIn,
		log:       log,
	}
	store.OnEvict(func(id string, _ *PlannerSession) {
		channels.Close(id)
		log.Info("session closed", zap.String("session_id", id))
	})
	return svc
}

func (s *SessionService) Create() *PlannerSession {
	id := uuid.NewString()
	sess := NewPlannerSession(id, SessionDeps{
		Catalog:   s.catalog,
		Generator: s.generator,
		CheckIn:   s.checkIn,
		Channel:   s.channels.Channel(id),
		Log:       s.log,
	})
	s.store.Set(id, sess)
	s.log.Info("session created", zap.String("session_id", id))
	return sess
}

func (s *SessionService) Get(id string) (*PlannerSession, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionService) Delete(id string) {
	s.store.Delete(id)
}

func (s *SessionService) Count() int {
	return s.store.Count()
}
