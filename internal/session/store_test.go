package session

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinema-booking/internal/repository"
)

func TestGet_ResolvesIdentityAndRefreshesTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)

	mock.ExpectHGetAll("session:tok123").SetVal(map[string]string{
		"client_id": "42",
		"role":      "ADMIN",
	})
	mock.ExpectExpire("session:tok123", 30*time.Minute).SetVal(true)

	id, err := store.Get(context.Background(), "tok123")

	assert.NoError(t, err)
	assert.Equal(t, uint64(42), id.ClientID)
	assert.Equal(t, repository.RoleAdmin, id.Role)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestGet_UnknownToken(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)

	mock.ExpectHGetAll("session:missing").SetVal(map[string]string{})

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNoSession)
}

func TestGet_CorruptHash(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)

	mock.ExpectHGetAll("session:bad").SetVal(map[string]string{
		"client_id": "not-a-number",
		"role":      "STANDARD",
	})

	_, err := store.Get(context.Background(), "bad")

	assert.ErrorIs(t, err, ErrNoSession)
}

func TestGet_UnknownRole(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)

	mock.ExpectHGetAll("session:odd").SetVal(map[string]string{
		"client_id": "7",
		"role":      "SUPERUSER",
	})

	_, err := store.Get(context.Background(), "odd")

	assert.ErrorIs(t, err, ErrNoSession)
}

func TestDelete_Idempotent(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)

	mock.ExpectDel("session:tok123").SetVal(0)

	assert.NoError(t, store.Delete(context.Background(), "tok123"))

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
