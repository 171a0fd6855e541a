package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// UsersTable accesses the users table. Users carry no data beyond their id.
type UsersTable struct {
	tx *Tx
}

// Get returns the user with the given id.
func (t *UsersTable) Get(id int64) (*types.User, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	u := &types.User{}
	err := t.tx.queryRow("SELECT user_id FROM users WHERE user_id = ?", id).Scan(&u.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return u, nil
}

// Create inserts a user and sets its id.
func (t *UsersTable) Create(u *types.User) error {
	if u == nil {
		return types.ErrInvalidData
	}
	id, err := t.tx.insert("INSERT INTO users DEFAULT VALUES RETURNING user_id")
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	u.UserID = id
	return nil
}

// Delete removes a user.
func (t *UsersTable) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	ok, err := t.tx.deleteByID(types.TableUsers, "user_id", id)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	if !ok {
		return types.ErrNotFound
	}
	return nil
}
