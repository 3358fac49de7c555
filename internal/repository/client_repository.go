package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Role is the closed set of access levels a client can hold. The database
// column stays a boolean (access_rights) for parity with the original
// schema; Role exists so call sites never branch on a bare bool.
type Role string

const (
	RoleStandard Role = "STANDARD"
	RoleAdmin    Role = "ADMIN"
)

// Admin reports whether the role carries elevated rights.
func (r Role) Admin() bool { return r == RoleAdmin }

// RoleFromAccessRights maps the stored access_rights flag onto a Role.
func RoleFromAccessRights(admin bool) Role {
	if admin {
		return RoleAdmin
	}
	return RoleStandard
}

// Client mirrors the 'clients' table. PasswordHash is never serialized.
type Client struct {
	ID           uint64 `json:"client_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Login        string `json:"login"`
	PasswordHash string `json:"-"`
	AccessRights bool   `json:"-"`
}

// Role returns the client's role derived from its access_rights flag.
func (c Client) Role() Role { return RoleFromAccessRights(c.AccessRights) }

// ErrLoginExists indicates the login is already taken. The unique key on
// clients.login makes this the deterministic outcome for a racing duplicate
// registration.
var ErrLoginExists = errors.New("login already exists")

// ErrClientNotFound indicates that no client matches the given id or login.
var ErrClientNotFound = errors.New("client not found")

type ClientRepo struct{ DB *sql.DB }

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

// Create inserts a client with standard access rights and returns its ID.
// The password must already be hashed by the caller.
func (r *ClientRepo) Create(ctx context.Context, firstName, lastName, login, passwordHash string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO clients (first_name, last_name, login, password_hash, access_rights) VALUES (?,?,?,?,FALSE)",
		firstName, lastName, login, passwordHash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrLoginExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByLogin fetches a client by login. Returns ErrClientNotFound when no
// row matches.
func (r *ClientRepo) GetByLogin(ctx context.Context, login string) (Client, error) {
	var c Client
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, login, password_hash, access_rights FROM clients WHERE login=? LIMIT 1",
		login).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Login, &c.PasswordHash, &c.AccessRights)
	if errors.Is(err, sql.ErrNoRows) {
		return Client{}, ErrClientNotFound
	}
	return c, err
}

// GetByID fetches a client by id.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (Client, error) {
	var c Client
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, login, password_hash, access_rights FROM clients WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Login, &c.PasswordHash, &c.AccessRights)
	if errors.Is(err, sql.ErrNoRows) {
		return Client{}, ErrClientNotFound
	}
	return c, err
}

// List returns all clients ordered by id.
func (r *ClientRepo) List(ctx context.Context) ([]Client, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, first_name, last_name, login, password_hash, access_rights FROM clients ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Login, &c.PasswordHash, &c.AccessRights); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
