// This file implements the admin catalog operations: movies, genres, halls
// and showings. All mutating endpoints sit behind the RequireAdmin
// middleware, so the gate has already run before any validation here.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/repository"
)

// CatalogHandler bundles the repositories for catalog management.
type CatalogHandler struct {
	Movies   *repository.MovieRepo
	Genres   *repository.GenreRepo
	Halls    *repository.HallRepo
	Showings *repository.ShowingRepo
}

func NewCatalogHandler(movies *repository.MovieRepo, genres *repository.GenreRepo, halls *repository.HallRepo, showings *repository.ShowingRepo) *CatalogHandler {
	if movies == nil || genres == nil || halls == nil || showings == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Movies: movies, Genres: genres, Halls: halls, Showings: showings}
}

type movieReq struct {
	Title         string  `json:"title"`
	Budget        float64 `json:"budget"`
	Description   string  `json:"description"`
	ReleaseDate   string  `json:"release_date"`
	BoxOffice     float64 `json:"box_office"`
	Duration      int     `json:"duration"`
	Tagline       string  `json:"tagline"`
	AverageRating float64 `json:"average_rating"`
}

// AddMovie handles POST /v1/admin/movies. Field validation runs in source
// order and the response names the first failing field.
func (h *CatalogHandler) AddMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	releaseDate, err := time.Parse(dateLayout, req.ReleaseDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid release date format, use YYYY-MM-DD"})
	}
	if msg := movieIssue(req.Title, req.Budget, releaseDate, req.BoxOffice, req.Duration, req.AverageRating, today()); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := repository.Movie{
		Title:         req.Title,
		Budget:        req.Budget,
		Description:   req.Description,
		ReleaseDate:   releaseDate,
		BoxOffice:     req.BoxOffice,
		Duration:      req.Duration,
		Tagline:       req.Tagline,
		AverageRating: req.AverageRating,
	}
	if err := h.Movies.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// GetMovie handles GET /v1/movies/:id.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// ListMovies handles GET /v1/movies.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if movies == nil {
		movies = []repository.Movie{}
	}
	return c.JSON(http.StatusOK, movies)
}

// DeleteMovie handles DELETE /v1/admin/movies/:id. The repository removes
// the movie's genre links, its schedules and those schedules' tickets in
// one transaction, children first.
func (h *CatalogHandler) DeleteMovie(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type movieGenreReq struct {
	GenreID uint64 `json:"genre_id"`
}

// AddMovieGenre handles POST /v1/admin/movies/:id/genres. Attaching a genre
// that is already attached is not an error: the existing association view
// is returned unchanged.
func (h *CatalogHandler) AddMovieGenre(c echo.Context) error {
	movieID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req movieGenreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie with the specified id does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	genre, err := h.Genres.GetByID(ctx, req.GenreID)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre with the specified id does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Genres.LinkMovie(ctx, movieID, req.GenreID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "link genre failed"})
	}

	return c.JSON(http.StatusOK, repository.MovieGenreInfo{
		MovieID:   movieID,
		Title:     movie.Title,
		GenreName: genre.Name,
	})
}

type genreReq struct {
	Name string `json:"name"`
}

// AddGenre handles POST /v1/admin/genres.
func (h *CatalogHandler) AddGenre(c echo.Context) error {
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g := repository.Genre{Name: req.Name}
	if err := h.Genres.Create(ctx, &g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create genre failed"})
	}
	return c.JSON(http.StatusCreated, g)
}

type hallReq struct {
	Name        string `json:"name"`
	SeatsNumber int    `json:"seats_number"`
}

// AddHall handles POST /v1/admin/halls. SeatsNumber defines the seat range
// [1, seats_number] for every schedule hosted in the hall.
func (h *CatalogHandler) AddHall(c echo.Context) error {
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
	}
	if req.SeatsNumber <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats number must be greater than zero"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hall := repository.Hall{Name: req.Name, SeatsNumber: req.SeatsNumber}
	if err := h.Halls.Create(ctx, &hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hall failed"})
	}
	return c.JSON(http.StatusCreated, hall)
}

// ListHalls handles GET /v1/halls.
func (h *CatalogHandler) ListHalls(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	halls, err := h.Halls.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if halls == nil {
		halls = []repository.Hall{}
	}
	return c.JSON(http.StatusOK, halls)
}

type showingReq struct {
	ShowTime string `json:"show_time"`
}

// AddShowing handles POST /v1/admin/showings. A showing is a time of day
// only; the date comes from the schedule that references it.
func (h *CatalogHandler) AddShowing(c echo.Context) error {
	var req showingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	normalized, ok := parseShowTime(req.ShowTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show time format, use HH:MM"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := repository.Showing{ShowTime: normalized}
	if err := h.Showings.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create showing failed"})
	}
	return c.JSON(http.StatusCreated, s)
}
