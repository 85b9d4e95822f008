package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/audit"
	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// AuditController exposes the audit trail to administrators.
type AuditController struct {
	events AuditReader
	log    *zap.Logger
}

func NewAuditController(events AuditReader, log *zap.Logger) *AuditController {
	return &AuditController{events: events, log: log}
}

// ListEvents returns a page of audit events, newest first.
// Query: type (book|auth), limit (default 50, max 200), offset.
func (ac *AuditController) ListEvents(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", defaultAuditPageSize)
	if !ok {
		return
	}
	offset, ok := parseIntQuery(c, "offset", 0)
	if !ok {
		return
	}
	if limit == 0 {
		limit = defaultAuditPageSize
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}

	eventType := entities.AuditEventType(c.Query("type"))
	switch eventType {
	case "", entities.AuditEventBook, entities.AuditEventAuth:
	default:
		respondBadRequest(c, "invalid type")
		return
	}

	events, total, err := ac.events.GetEvents(eventType, limit, offset)
	if err != nil {
		respondInternalError(c, ac.log, err, "list audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}

func parseIntQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

// actorFromContext describes the caller for the audit trail.
func actorFromContext(c *gin.Context) audit.Actor {
	actor := audit.Actor{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if principal, ok := auth.GetPrincipal(c); ok {
		actor.UserID = principal.UserID
		actor.Username = principal.Username
	}
	return actor
}
