package main

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

var errDuplicateUsername = errors.New("username already exists")

func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConnections)
	db.SetMaxIdleConns(cfg.db.maxIdleConnections)
	db.SetConnMaxIdleTime(cfg.db.maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		return nil, err
	}

	return db, nil
}

type store interface {
	getUserByUsername(ctx context.Context, username string) (*user, error)
	insertUser(ctx context.Context, u *user) error
	getItems(ctx context.Context) ([]item, error)
	insertItem(ctx context.Context, i *item) error
	updateItem(ctx context.Context, i *item) (bool, error)
	deleteItem(ctx context.Context, id int) (bool, error)
}

type storage struct {
	db *sql.DB
}

func newStorage(db *sql.DB) *storage {
	return &storage{
		db: db,
	}
}

func (s *storage) getUserByUsername(ctx context.Context, username string) (*user, error) {
	query := `SELECT id, created_at, username, password_hash
			  FROM users
			  WHERE username = $1`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, username)
	var u user
	err := row.Scan(&u.ID, &u.CreatedAt, &u.Username, &u.PasswordHash)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}
	return &u, nil
}

// insertUser relies on the unique constraint on users.username as the
// authoritative duplicate signal; there is no pre-check, so concurrent
// registrations of the same name race safely inside the database.
func (s *storage) insertUser(ctx context.Context, u *user) error {
	query := `INSERT INTO users (username, password_hash)
			  VALUES ($1, $2)
			  RETURNING id, created_at`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := s.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash)
	err := row.Scan(&u.ID, &u.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return errDuplicateUsername
	}
	return err
}

func (s *storage) getItems(ctx context.Context) ([]item, error) {
	query := `SELECT id, name, is_complete
			  FROM items`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []item{}
	for rows.Next() {
		var i item
		err = rows.Scan(&i.ID, &i.Name, &i.IsComplete)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (s *storage) insertItem(ctx context.Context, i *item) error {
	query := `INSERT INTO items (name, is_complete)
			  VALUES ($1, $2)
			  RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, i.Name, i.IsComplete)
	return row.Scan(&i.ID)
}

func (s *storage) updateItem(ctx context.Context, i *item) (bool, error) {
	query := `UPDATE items SET name = $1, is_complete = $2
			  WHERE id = $3`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	result, err := s.db.ExecContext(ctx, query, i.Name, i.IsComplete, i.ID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (s *storage) deleteItem(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM items
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
