// This file defines the Schedule model and repository. A Schedule binds a
// hall, a showing time and a movie to a calendar date. The unique key on
// (hall_id, showing_id, show_date) is the core invariant: a hall can never
// host two showings in the same slot on the same day, and two concurrent
// creates for the same slot resolve to exactly one winner.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Schedule mirrors the 'schedules' table. ShowDate carries a date only.
type Schedule struct {
	ID        uint64    `json:"schedule_id"`
	HallID    uint64    `json:"hall_id"`
	ShowingID uint64    `json:"showing_id"`
	MovieID   uint64    `json:"movie_id"`
	ShowDate  time.Time `json:"show_date"`
	Price     float64   `json:"price"`
}

// ErrScheduleNotFound indicates that a schedule was not located in the DB.
var ErrScheduleNotFound = errors.New("schedule not found")

// ErrSlotTaken indicates a schedule already exists for the same hall,
// showing and date.
var ErrSlotTaken = errors.New("schedule slot already taken")

type ScheduleRepo struct{ DB *sql.DB }

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{DB: db} }

// Create inserts a schedule and assigns the generated ID back to the
// struct. A duplicate (hall_id, showing_id, show_date) insert returns
// ErrSlotTaken.
func (r *ScheduleRepo) Create(ctx context.Context, s *Schedule) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO schedules (hall_id, showing_id, movie_id, show_date, price) VALUES (?,?,?,?,?)",
		s.HallID, s.ShowingID, s.MovieID, s.ShowDate, s.Price)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlotTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a schedule by its ID.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (Schedule, error) {
	var s Schedule
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, hall_id, showing_id, movie_id, show_date, price FROM schedules WHERE id=? LIMIT 1", id).
		Scan(&s.ID, &s.HallID, &s.ShowingID, &s.MovieID, &s.ShowDate, &s.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return Schedule{}, ErrScheduleNotFound
	}
	return s, err
}

// List returns all schedules ordered by show date, then id.
func (r *ScheduleRepo) List(ctx context.Context) ([]Schedule, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, hall_id, showing_id, movie_id, show_date, price FROM schedules ORDER BY show_date, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Schedule
	for rows.Next() {
		var s Schedule
		if err := rows.Scan(&s.ID, &s.HallID, &s.ShowingID, &s.MovieID, &s.ShowDate, &s.Price); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// DeleteCascade removes a schedule and every ticket sold for it, tickets
// first, inside one transaction. Returns ErrScheduleNotFound when the
// schedule does not exist.
func (r *ScheduleRepo) DeleteCascade(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var exists uint64
	err = tx.QueryRowContext(ctx, "SELECT id FROM schedules WHERE id=? LIMIT 1", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrScheduleNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM tickets WHERE schedule_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schedules WHERE id=?", id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
