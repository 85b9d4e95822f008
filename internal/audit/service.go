package audit

import (
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

// Book actions
const (
	ActionBookCreate = "book_create"
	ActionBookUpdate = "book_update"
	ActionBookDelete = "book_delete"
)

// Auth actions
const (
	ActionRegister = "register"
	ActionLogin    = "login"
	ActionLogout   = "logout"
)

// Store persists and queries audit events.
type Store interface {
	LogEvent(event *entities.AuditEvent) error
	GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	DeleteOldEvents(olderThan time.Time) (int64, error)
}

// Actor identifies who performed an audited action.
type Actor struct {
	UserID    uint
	Username  string
	IPAddress string
	UserAgent string
}

// Service records audit events. Write failures are logged and swallowed so
// that auditing never fails the request being audited.
type Service struct {
	store Store
	log   *zap.Logger
}

// NewService creates a new audit service.
func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) {
	if err := s.store.LogEvent(event); err != nil {
		s.log.Error("Failed to log audit event",
			zap.String("action", event.Action),
			zap.Error(err),
		)
	}
}

// LogBook records a change to the book identified by isbn.
func (s *Service) LogBook(actor Actor, action, isbn string, err error) {
	event := &entities.AuditEvent{
		UserID:      actor.UserID,
		Username:    actor.Username,
		EventType:   entities.AuditEventBook,
		Action:      action,
		Description: describeBookAction(action, isbn),
		EntityType:  "book",
		EntityID:    isbn,
		IPAddress:   actor.IPAddress,
		UserAgent:   truncate(actor.UserAgent, 500),
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.Log(event)
}

// LogAuth records a registration, login or logout attempt.
func (s *Service) LogAuth(actor Actor, action string, success bool) {
	event := &entities.AuditEvent{
		UserID:    actor.UserID,
		Username:  actor.Username,
		EventType: entities.AuditEventAuth,
		Action:    action,
		IPAddress: actor.IPAddress,
		UserAgent: truncate(actor.UserAgent, 500),
		Status:    entities.AuditStatusSuccess,
	}
	if !success {
		event.Status = entities.AuditStatusFailed
	}
	s.Log(event)
}

// GetEvents retrieves paginated audit events. An empty eventType matches all.
func (s *Service) GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.store.GetEvents(eventType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.store.DeleteOldEvents(cutoff)
}

func describeBookAction(action, isbn string) string {
	switch action {
	case ActionBookCreate:
		return "Created book " + isbn
	case ActionBookUpdate:
		return "Updated book " + isbn
	case ActionBookDelete:
		return "Deleted book " + isbn
	default:
		return action + " " + isbn
	}
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
