package services

import (
	"errors"
	"fmt"

	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

// Book is the API-facing book record.
type Book struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// BookService maps API records onto the book store.
type BookService struct {
	store BookStore
}

func NewBookService(store BookStore) *BookService {
	return &BookService{store: store}
}

// Save inserts the book, or fully replaces title and author of the book
// with the same ISBN. Returns the persisted record.
func (s *BookService) Save(book Book) (Book, error) {
	entity := toBookEntity(book)
	if err := s.store.Save(entity); err != nil {
		return Book{}, err
	}
	return fromBookEntity(entity), nil
}

// FindByID returns the book with the ISBN. The boolean is false when no
// such book exists; that is not an error.
func (s *BookService) FindByID(isbn string) (Book, bool, error) {
	entity, err := s.store.FindByID(isbn)
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			return Book{}, false, nil
		}
		return Book{}, false, err
	}
	return fromBookEntity(entity), true, nil
}

// ListBooks returns all books. The result is never nil.
func (s *BookService) ListBooks() ([]Book, error) {
	rows, err := s.store.FindAll()
	if err != nil {
		return nil, err
	}
	result := make([]Book, 0, len(rows))
	for i := range rows {
		result = append(result, fromBookEntity(&rows[i]))
	}
	return result, nil
}

// IsBookExist reports whether a book with book.ISBN is already stored.
func (s *BookService) IsBookExist(book Book) (bool, error) {
	return s.store.ExistsByID(book.ISBN)
}

// DeleteBookByID removes the book. Deleting an ISBN that is not stored
// succeeds silently.
func (s *BookService) DeleteBookByID(isbn string) error {
	err := s.store.DeleteByID(isbn)
	if err != nil && !errors.Is(err, books.ErrBookNotFound) {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

func toBookEntity(book Book) *entities.Book {
	return &entities.Book{
		ISBN:   book.ISBN,
		Title:  book.Title,
		Author: book.Author,
	}
}

func fromBookEntity(entity *entities.Book) Book {
	return Book{
		ISBN:   entity.ISBN,
		Title:  entity.Title,
		Author: entity.Author,
	}
}
