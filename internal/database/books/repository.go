// Package books provides database operations for the book catalog.
//
// Books are keyed by ISBN. Writes are upserts: saving an ISBN that already
// exists replaces its title and author in place.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.FindByID("9780132350884")
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

// ErrBookNotFound is returned when no book has the requested ISBN.
var ErrBookNotFound = errors.New("book not found")

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts the book or overwrites the row with the same ISBN, in a
// single INSERT ... ON CONFLICT statement.
func (r *Repository) Save(book *entities.Book) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "isbn"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "author", "updated_at"}),
	}).Create(book).Error
	if err != nil {
		return fmt.Errorf("failed to save book %s: %w", book.ISBN, err)
	}
	return nil
}

// FindByID retrieves a book by ISBN.
func (r *Repository) FindByID(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to find book %s: %w", isbn, err)
	}
	return &book, nil
}

// FindAll returns every book in store order.
func (r *Repository) FindAll() ([]entities.Book, error) {
	var books []entities.Book
	if err := r.db.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// ExistsByID reports whether a book with the ISBN is stored.
func (r *Repository) ExistsByID(isbn string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("isbn = ?", isbn).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check book %s: %w", isbn, err)
	}
	return count > 0, nil
}

// DeleteByID removes the book with the ISBN.
// Returns ErrBookNotFound if no row was deleted.
func (r *Repository) DeleteByID(isbn string) error {
	result := r.db.Where("isbn = ?", isbn).Delete(&entities.Book{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete book %s: %w", isbn, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}
