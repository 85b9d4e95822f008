package services

import "github.com/mrlokans/bookcatalog/internal/entities"

// BookStore is the persistence collaborator of BookService.
type BookStore interface {
	Save(book *entities.Book) error
	FindByID(isbn string) (*entities.Book, error)
	FindAll() ([]entities.Book, error)
	ExistsByID(isbn string) (bool, error)
	DeleteByID(isbn string) error
}

// UserStore is the persistence collaborator of UserService.
type UserStore interface {
	Save(user *entities.User) error
	FindByUsername(username string) (*entities.User, error)
	FindByID(id uint) (*entities.User, error)
	ExistsByUsername(username string) (bool, error)
}

// PasswordHasher turns a plaintext password into a one-way, salted digest.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}
