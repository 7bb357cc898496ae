package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
)

// Connect opens the MySQL connection pool and verifies it with a ping.
func Connect(dsn string) (*sqlx.DB, error) {
	pool, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	return pool, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL DEFAULT '',
		role VARCHAR(20) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		student_id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		address VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		book_id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(50) NOT NULL,
		author VARCHAR(50) NOT NULL,
		availability BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS user_books (
		user_id INT NOT NULL,
		book_id INT NOT NULL,
		PRIMARY KEY (user_id, book_id),
		FOREIGN KEY (user_id) REFERENCES users (user_id),
		FOREIGN KEY (book_id) REFERENCES books (book_id)
	)`,
}

// InitializeSchema creates the tables if they do not exist yet.
func InitializeSchema(pool *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
