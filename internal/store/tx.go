package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Tx is one unit of work. It is only valid inside the Update or View callback
// that received it.
type Tx struct {
	ctx     context.Context
	tx      *sql.Tx
	dialect dialect
}

// Context returns the context the unit of work was opened with.
func (t *Tx) Context() context.Context { return t.ctx }

func (t *Tx) Recipes() *RecipesTable                     { return &RecipesTable{tx: t} }
func (t *Tx) BaseItems() *BaseItemsTable                 { return &BaseItemsTable{tx: t} }
func (t *Tx) Ingredients() *IngredientsTable             { return &IngredientsTable{tx: t} }
func (t *Tx) Shops() *ShopsTable                         { return &ShopsTable{tx: t} }
func (t *Tx) Aisles() *AislesTable                       { return &AislesTable{tx: t} }
func (t *Tx) Meals() *MealsTable                         { return &MealsTable{tx: t} }
func (t *Tx) Mealplans() *MealplansTable                 { return &MealplansTable{tx: t} }
func (t *Tx) ShoppingLists() *ShoppingListsTable         { return &ShoppingListsTable{tx: t} }
func (t *Tx) ShoppingListItems() *ShoppingListItemsTable { return &ShoppingListItemsTable{tx: t} }
func (t *Tx) Users() *UsersTable                         { return &UsersTable{tx: t} }

func (t *Tx) exec(query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(t.ctx, t.dialect.rebind(query), args...)
}

func (t *Tx) query(query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(t.ctx, t.dialect.rebind(query), args...)
}

func (t *Tx) queryRow(query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(t.ctx, t.dialect.rebind(query), args...)
}

// insert runs an INSERT ... RETURNING <id> statement and returns the new id.
func (t *Tx) insert(query string, args ...any) (int64, error) {
	var id int64
	if err := t.queryRow(query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// exists reports whether query returns at least one row.
func (t *Tx) exists(query string, args ...any) (bool, error) {
	var one int
	err := t.queryRow(query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// deleteByID deletes the row of table whose key column equals id and reports
// whether a row was removed.
func (t *Tx) deleteByID(table, column string, id int64) (bool, error) {
	res, err := t.exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, column), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scan and closes rows. Rows are fully read
// before returning so the caller may issue further queries on the same Tx.
func collect[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
