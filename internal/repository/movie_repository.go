// Package repository contains data access logic for the catalog and booking
// domain. This file defines the Movie model and its repository. Deleting a
// movie cascades over its genre links, schedules and those schedules'
// tickets; the cascade runs children-first inside a single transaction so no
// intermediate state with dangling references is ever observable.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Movie mirrors the 'movies' table. ReleaseDate carries a date only; the
// time-of-day component is always midnight UTC.
type Movie struct {
	ID            uint64    `json:"movie_id"`
	Title         string    `json:"title"`
	Budget        float64   `json:"budget"`
	Description   string    `json:"description"`
	ReleaseDate   time.Time `json:"release_date"`
	BoxOffice     float64   `json:"box_office"`
	Duration      int       `json:"duration"`
	Tagline       string    `json:"tagline"`
	AverageRating float64   `json:"average_rating"`
}

// ErrMovieNotFound indicates that a movie was not located in the DB.
var ErrMovieNotFound = errors.New("movie not found")

type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

// Create inserts a movie and assigns the generated ID back to the struct.
func (r *MovieRepo) Create(ctx context.Context, m *Movie) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO movies (title, budget, description, release_date, box_office, duration, tagline, average_rating)
		 VALUES (?,?,?,?,?,?,?,?)`,
		m.Title, m.Budget, m.Description, m.ReleaseDate, m.BoxOffice, m.Duration, m.Tagline, m.AverageRating)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID retrieves a movie by its ID. Returns ErrMovieNotFound when there
// is no matching row.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (Movie, error) {
	var m Movie
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, title, budget, description, release_date, box_office, duration, tagline, average_rating
		 FROM movies WHERE id=? LIMIT 1`, id).
		Scan(&m.ID, &m.Title, &m.Budget, &m.Description, &m.ReleaseDate, &m.BoxOffice, &m.Duration, &m.Tagline, &m.AverageRating)
	if errors.Is(err, sql.ErrNoRows) {
		return Movie{}, ErrMovieNotFound
	}
	return m, err
}

// List returns all movies ordered by id.
func (r *MovieRepo) List(ctx context.Context) ([]Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, budget, description, release_date, box_office, duration, tagline, average_rating
		 FROM movies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Budget, &m.Description, &m.ReleaseDate, &m.BoxOffice, &m.Duration, &m.Tagline, &m.AverageRating); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// DeleteCascade removes a movie together with its genre links, its schedules
// and every ticket sold for those schedules, in that order, inside one
// transaction. Returns ErrMovieNotFound when the movie does not exist; in
// that case nothing is deleted.
func (r *MovieRepo) DeleteCascade(ctx context.Context, id uint64) error {
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
	err = tx.QueryRowContext(ctx, "SELECT id FROM movies WHERE id=? LIMIT 1", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMovieNotFound
	}
	if err != nil {
		return err
	}

	// children first: genre links, then tickets of the movie's schedules,
	// then the schedules, then the movie itself
	if _, err := tx.ExecContext(ctx, "DELETE FROM movie_genres WHERE movie_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM tickets WHERE schedule_id IN (SELECT id FROM schedules WHERE movie_id=?)", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schedules WHERE movie_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
