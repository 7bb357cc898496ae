package models

// Book represents a book row.
type Book struct {
	ID           int64  `db:"book_id" json:"id"`
	Title        string `db:"title" json:"title"`
	Author       string `db:"author" json:"author"`
	Availability bool   `db:"availability" json:"availability"`
}

// BookRequest is the body for creating or updating a book.
type BookRequest struct {
	Title  *string `json:"title" validate:"required,min=1,max=50"`
	Author *string `json:"author" validate:"required,min=1,max=50"`
}

// AvailabilityRequest is the body for toggling a book's availability.
type AvailabilityRequest struct {
	Availability *bool `json:"availability" validate:"required"`
}
