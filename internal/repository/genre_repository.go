package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Genre mirrors the 'genres' table.
type Genre struct {
	ID   uint64 `json:"genre_id"`
	Name string `json:"genre_name"`
}

// MovieGenreInfo is the denormalized view returned when a genre is attached
// to a movie.
type MovieGenreInfo struct {
	MovieID   uint64 `json:"movie_id"`
	Title     string `json:"title"`
	GenreName string `json:"genre_name"`
}

// ErrGenreNotFound indicates that a genre was not located in the DB.
var ErrGenreNotFound = errors.New("genre not found")

type GenreRepo struct{ DB *sql.DB }

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{DB: db} }

// Create inserts a genre and assigns the generated ID back to the struct.
func (r *GenreRepo) Create(ctx context.Context, g *Genre) error {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO genres (name) VALUES (?)", g.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetByID retrieves a genre by its ID.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (Genre, error) {
	var g Genre
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM genres WHERE id=? LIMIT 1", id).Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Genre{}, ErrGenreNotFound
	}
	return g, err
}

// LinkMovie attaches a genre to a movie. The link is idempotent: when the
// (movie_id, genre_id) pair already exists the call succeeds without
// creating a duplicate, which the composite primary key guarantees even
// under concurrent calls.
func (r *GenreRepo) LinkMovie(ctx context.Context, movieID, genreID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO movie_genres (movie_id, genre_id) VALUES (?,?)", movieID, genreID)
	if err != nil && !isDuplicateKey(err) {
		return err
	}
	return nil
}
