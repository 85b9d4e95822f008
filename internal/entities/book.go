package entities

import "time"

// Book is the stored catalog record. The ISBN is the primary key and is
// never generated by the store.
type Book struct {
	ISBN      string    `gorm:"primaryKey;size:32"`
	Title     string    `gorm:"size:512"`
	Author    string    `gorm:"size:256"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Book) TableName() string {
	return "books"
}
