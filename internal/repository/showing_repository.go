package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Showing mirrors the 'showings' table. ShowTime is a time of day without a
// date, stored as a TIME column and carried as "HH:MM:SS".
type Showing struct {
	ID       uint64 `json:"showing_id"`
	ShowTime string `json:"show_time"`
}

// ErrShowingNotFound indicates that a showing was not located in the DB.
var ErrShowingNotFound = errors.New("showing not found")

type ShowingRepo struct{ DB *sql.DB }

func NewShowingRepo(db *sql.DB) *ShowingRepo { return &ShowingRepo{DB: db} }

// Create inserts a showing and assigns the generated ID back to the struct.
func (r *ShowingRepo) Create(ctx context.Context, s *Showing) error {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO showings (show_time) VALUES (?)", s.ShowTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a showing by its ID.
func (r *ShowingRepo) GetByID(ctx context.Context, id uint64) (Showing, error) {
	var s Showing
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, show_time FROM showings WHERE id=? LIMIT 1", id).Scan(&s.ID, &s.ShowTime)
	if errors.Is(err, sql.ErrNoRows) {
		return Showing{}, ErrShowingNotFound
	}
	return s, err
}
