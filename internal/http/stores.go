package http

import (
	"github.com/mrlokans/bookcatalog/internal/audit"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/services"
)

// BookCatalog is the book service surface used by BooksController.
type BookCatalog interface {
	Save(book services.Book) (services.Book, error)
	FindByID(isbn string) (services.Book, bool, error)
	ListBooks() ([]services.Book, error)
	IsBookExist(book services.Book) (bool, error)
	DeleteBookByID(isbn string) error
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping() error
}

// BookAuditor records catalog mutations.
type BookAuditor interface {
	LogBook(actor audit.Actor, action, isbn string, err error)
}

// AuditReader lists recorded audit events.
type AuditReader interface {
	GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
}
