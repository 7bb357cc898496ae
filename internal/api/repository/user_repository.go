package repository

import (
	"context"
	"database/sql"
	"fmt"

	"libraryapi/internal/api/models"
	"libraryapi/internal/db"
)

// UserRepository defines the data operations for users, covering both the
// directory view (username, email) and the credential view used by auth.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, bool, error)
	Create(ctx context.Context, username, email string) (models.User, error)
	Update(ctx context.Context, id int64, username, email string) (models.User, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	Search(ctx context.Context, term string) ([]models.User, error)
	WithBooks(ctx context.Context) ([]models.UserWithBooks, error)

	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	CreateAccount(ctx context.Context, username, passwordHash, role string) (*models.Account, error)
}

type userRepository struct {
	*CRUD[models.User]
	gw *db.Gateway
}

// NewUserRepository creates a MySQL-backed UserRepository.
func NewUserRepository(gw *db.Gateway) UserRepository {
	return &userRepository{
		CRUD: NewCRUD[models.User](gw, "users", Schema{
			Table:    "users",
			IDColumn: "user_id",
			Columns:  []string{"user_id", "username", "email"},
			Writable: []string{"username", "email"},
		}),
		gw: gw,
	}
}

func (r *userRepository) Create(ctx context.Context, username, email string) (models.User, error) {
	return r.CRUD.Create(ctx, username, email)
}

func (r *userRepository) Update(ctx context.Context, id int64, username, email string) (models.User, bool, error) {
	return r.CRUD.Update(ctx, id, username, email)
}

// Search matches the term as a substring of either username or email.
func (r *userRepository) Search(ctx context.Context, term string) ([]models.User, error) {
	users := []models.User{}
	err := r.gw.Select(ctx, &users, "users.search",
		`SELECT user_id, username, email FROM users
		 WHERE username LIKE CONCAT('%', ?, '%')
		    OR email LIKE CONCAT('%', ?, '%')`, term, term)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// userBookRow is one flat row of the users-to-books left join. The book
// columns are nullable: a user with no books still yields one row.
type userBookRow struct {
	UserID   int64          `db:"user_id"`
	Username string         `db:"username"`
	Email    string         `db:"email"`
	BookID   sql.NullInt64  `db:"book_id"`
	Title    sql.NullString `db:"title"`
	Author   sql.NullString `db:"author"`
}

// WithBooks returns every user exactly once, each with the ordered list of
// books associated to them.
func (r *userRepository) WithBooks(ctx context.Context) ([]models.UserWithBooks, error) {
	rows := []userBookRow{}
	err := r.gw.Select(ctx, &rows, "users.with_books",
		`SELECT u.user_id, u.username, u.email, b.book_id, b.title, b.author
		 FROM users u
		 LEFT JOIN user_books ub ON ub.user_id = u.user_id
		 LEFT JOIN books b ON ub.book_id = b.book_id
		 ORDER BY u.username`)
	if err != nil {
		return nil, err
	}
	return groupUserBooks(rows), nil
}

// groupUserBooks folds the flat join rows into one record per user,
// preserving the row order. A NULL book id is the no-join sentinel and adds
// nothing to the user's book list.
func groupUserBooks(rows []userBookRow) []models.UserWithBooks {
	users := []models.UserWithBooks{}
	index := map[int64]int{}

	for _, row := range rows {
		i, seen := index[row.UserID]
		if !seen {
			i = len(users)
			index[row.UserID] = i
			users = append(users, models.UserWithBooks{
				ID:       row.UserID,
				Username: row.Username,
				Email:    row.Email,
				Books:    []models.UserBook{},
			})
		}
		if row.BookID.Valid {
			users[i].Books = append(users[i].Books, models.UserBook{
				ID:     row.BookID.Int64,
				Title:  row.Title.String,
				Author: row.Author.String,
			})
		}
	}
	return users
}

// GetAccountByUsername retrieves the credential columns for a username.
// No matching user is not an application error.
func (r *userRepository) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	found, err := r.gw.Get(ctx, &account, "users.get_account",
		`SELECT user_id, username, password_hash, role FROM users WHERE username = ?`, username)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &account, nil
}

// CreateAccount inserts a credentialed user and reads the row back by its
// generated id.
func (r *userRepository) CreateAccount(ctx context.Context, username, passwordHash, role string) (*models.Account, error) {
	res, err := r.gw.Exec(ctx, "users.create_account",
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		username, passwordHash, role)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	var account models.Account
	found, err := r.gw.Get(ctx, &account, "users.get_account",
		`SELECT user_id, username, password_hash, role FROM users WHERE user_id = ?`, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("users.create_account: inserted row %d not found on re-read", id)
	}
	return &account, nil
}
