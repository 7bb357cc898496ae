package models

// User is the directory-facing view of a user row.
type User struct {
	ID       int64  `db:"user_id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
}

// Account is the credential-facing view of the same users table, used only
// by registration and login.
type Account struct {
	ID           int64  `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
}

// UserBook is a book nested under a user in the with-books listing.
type UserBook struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// UserWithBooks is one user together with every book associated to them.
type UserWithBooks struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Books    []UserBook `json:"books"`
}

// UserRequest is the body for creating or updating a directory user.
type UserRequest struct {
	Username *string `json:"username" validate:"required,min=1,max=50"`
	Email    *string `json:"email" validate:"required,email"`
}

// RegisterRequest is the body for account registration.
type RegisterRequest struct {
	Username *string `json:"username" validate:"required,min=3,max=30"`
	Password *string `json:"password" validate:"required,min=6"`
	Role     *string `json:"role" validate:"required,oneof=member librarian"`
}

// LoginRequest is the body for account login.
type LoginRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// RegisteredUser is the registration response payload.
type RegisteredUser struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse carries the signed token back to the client.
type LoginResponse struct {
	Token string `json:"token"`
}
