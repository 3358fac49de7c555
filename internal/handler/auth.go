package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes and primitives
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/cinema-booking/internal/config"     // app configuration
	"github.com/iliyamo/cinema-booking/internal/repository" // DB repositories
	"github.com/iliyamo/cinema-booking/internal/session"    // session store
	"github.com/iliyamo/cinema-booking/internal/utils"      // helper functions (hashing)
)

// AuthHandler bundles dependencies for registration, login and session
// endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Clients  *repository.ClientRepo
	Sessions *session.Store
}

func NewAuthHandler(cfg config.Config, clients *repository.ClientRepo, sessions *session.Store) *AuthHandler {
	if clients == nil || sessions == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Clients: clients, Sessions: sessions}
}

// ----- DTOs -----

type registerReq struct {
	Name            string `json:"name"`
	Surname         string `json:"surname"`
	Login           string `json:"login"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}
type loginReq struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// clientPart is the public view of a client: everything except the
// password hash and the role flag.
type clientPart struct {
	ID        uint64 `json:"client_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Login     string `json:"login"`
}

func displayOf(cl repository.Client) clientPart {
	return clientPart{ID: cl.ID, FirstName: cl.FirstName, LastName: cl.LastName, Login: cl.Login}
}

type loginResp struct {
	Token  string     `json:"token"`
	Client clientPart `json:"client"`
}

// Register creates a client with standard access rights. Every rejection
// except a malformed body is a 409: taken login, mismatched confirmation,
// missing fields, non-letter names, whitespace in login or password.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Clients.GetByLogin(ctx, req.Login); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "a client with this login already exists"})
	} else if !errors.Is(err, repository.ErrClientNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if msg := registrationIssue(req.Name, req.Surname, req.Login, req.Password, req.ConfirmPassword); msg != "" {
		return c.JSON(http.StatusConflict, echo.Map{"error": msg})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	id, err := h.Clients.Create(ctx, req.Name, req.Surname, req.Login, hash)
	if err != nil {
		// the unique key on login decides a racing duplicate registration
		if errors.Is(err, repository.ErrLoginExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a client with this login already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create client failed"})
	}

	return c.JSON(http.StatusCreated, clientPart{ID: id, FirstName: req.Name, LastName: req.Surname, Login: req.Login})
}

// Login verifies credentials and establishes a session. The rejection is
// deliberately generic: it never discloses whether the login or the
// password was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cl, err := h.Clients.GetByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(cl.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.Sessions.Create(ctx, session.Identity{ClientID: cl.ID, Role: cl.Role()})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
	}

	return c.JSON(http.StatusOK, loginResp{Token: token, Client: displayOf(cl)})
}

// Me returns the authenticated client's public view. 409 without a
// session; 404 when the session points at a client that no longer exists
// (stale session).
func (h *AuthHandler) Me(c echo.Context) error {
	id, _, ok := currentClient(c)
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "user is not logged in"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cl, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, displayOf(cl))
}

// Logout clears the caller's session. Idempotent: logging out without a
// session, or twice, succeeds all the same.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token, ok := c.Get("session_token").(string); ok {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		_ = h.Sessions.Delete(ctx, token)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListClients returns the public view of every client.
func (h *AuthHandler) ListClients(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	clients, err := h.Clients.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]clientPart, 0, len(clients))
	for _, cl := range clients {
		out = append(out, displayOf(cl))
	}
	return c.JSON(http.StatusOK, out)
}
