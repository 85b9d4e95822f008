package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/audit"
	"github.com/mrlokans/bookcatalog/internal/services"
)

// BooksController serves the /books resource. Role checks happen in the
// router before any of these handlers run.
type BooksController struct {
	books   BookCatalog
	auditor BookAuditor
	log     *zap.Logger
}

// NewBooksController creates the controller. auditor may be nil.
func NewBooksController(books BookCatalog, auditor BookAuditor, log *zap.Logger) *BooksController {
	return &BooksController{books: books, auditor: auditor, log: log}
}

func (bc *BooksController) audit(c *gin.Context, action, isbn string, err error) {
	if bc.auditor != nil {
		bc.auditor.LogBook(actorFromContext(c), action, isbn, err)
	}
}

// GetBook returns the book with the ISBN in the path, or 404.
func (bc *BooksController) GetBook(c *gin.Context) {
	book, found, err := bc.books.FindByID(c.Param("isbn"))
	if err != nil {
		respondInternalError(c, bc.log, err, "get book")
		return
	}
	if !found {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// ListBooks returns every book; an empty catalog yields [].
func (bc *BooksController) ListBooks(c *gin.Context) {
	books, err := bc.books.ListBooks()
	if err != nil {
		respondInternalError(c, bc.log, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

// CreateBook saves the posted book and returns it with 201. A book with the
// same ISBN is replaced.
func (bc *BooksController) CreateBook(c *gin.Context) {
	var book services.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if book.ISBN == "" {
		respondBadRequest(c, "isbn is required")
		return
	}

	saved, err := bc.books.Save(book)
	bc.audit(c, audit.ActionBookCreate, book.ISBN, err)
	if err != nil {
		respondInternalError(c, bc.log, err, "create book")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// PutBook stores the body under the ISBN from the path, which wins over any
// isbn in the body. Replies 200 when the book existed and 201 when created.
func (bc *BooksController) PutBook(c *gin.Context) {
	var book services.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	book.ISBN = c.Param("isbn")

	existed, err := bc.books.IsBookExist(book)
	if err != nil {
		respondInternalError(c, bc.log, err, "check book")
		return
	}

	action := audit.ActionBookCreate
	if existed {
		action = audit.ActionBookUpdate
	}

	saved, err := bc.books.Save(book)
	bc.audit(c, action, book.ISBN, err)
	if err != nil {
		respondInternalError(c, bc.log, err, "update book")
		return
	}

	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	c.JSON(status, saved)
}

// DeleteBook removes the book. Missing books still get 204.
func (bc *BooksController) DeleteBook(c *gin.Context) {
	isbn := c.Param("isbn")
	err := bc.books.DeleteBookByID(isbn)
	bc.audit(c, audit.ActionBookDelete, isbn, err)
	if err != nil {
		respondInternalError(c, bc.log, err, "delete book")
		return
	}
	c.Status(http.StatusNoContent)
}
