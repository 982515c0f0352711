package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	errorUnknownUser       = fmt.Errorf("unknown user")
	errorLoginTaken        = fmt.Errorf("login is already taken")
	errorUnknownExpression = fmt.Errorf("unknown expression")
	errorShuttingDown      = fmt.Errorf("storage is shutting down")
)

func CreateTables(ctx context.Context, db *sql.DB) error {
	const (
		usersTable = `
		CREATE TABLE IF NOT EXISTS users(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			login TEXT NOT NULL UNIQUE,
			hashedPassword BLOB NOT NULL
		);`

		expressionsTable = `
		CREATE TABLE IF NOT EXISTS expressions(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hash INTEGER NOT NULL,
			expression TEXT NOT NULL,
			postfixExpression TEXT NOT NULL,
			userId INTEGER NOT NULL,
			status TEXT NOT NULL,
			result TEXT,

			FOREIGN KEY (userId) REFERENCES users (id)
		);`

		computesTable = `
		CREATE TABLE IF NOT EXISTS computes(
			address TEXT PRIMARY KEY,
			lastPing INTEGER NOT NULL
		);`
	)

	for _, q := range []string{usersTable, expressionsTable, computesTable} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func storeUser(ctx context.Context, db *sql.DB, login string, hashedPassword []byte) (int64, error) {
	var q string = `
	SELECT id FROM users WHERE login = $1
	`
	var id int64
	err := db.QueryRowContext(ctx, q, login).Scan(&id)
	if err == nil {
		return 0, errorLoginTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	q = `
	INSERT INTO users (login, hashedPassword) VALUES ($1, $2)
	`
	res, err := db.ExecContext(ctx, q, login, hashedPassword)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func getUser(ctx context.Context, db *sql.DB, login string) (id int64, hashedPassword []byte, err error) {
	var q string = `
	SELECT id, hashedPassword FROM users WHERE login = $1
	`
	err = db.QueryRowContext(ctx, q, login).Scan(&id, &hashedPassword)
	if errors.Is(err, sql.ErrNoRows) {
		err = errorUnknownUser
	}
	return id, hashedPassword, err
}

func storeExpressionState(ctx context.Context, db *sql.DB, status state, userId int64, infix string, _expr postfixExpr) (int64, error) {
	var q string = `
	INSERT INTO expressions (status, userId, hash, expression, postfixExpression) VALUES ($1, $2, $3, $4, $5)
	`

	res, err := db.ExecContext(ctx, q, status, userId, getHash(string(_expr)), infix, _expr)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func updateExpressionState(ctx context.Context, db *sql.DB, status state, result string, id int64) error {
	var q string = `
	UPDATE expressions SET status = $1, result = $2 WHERE id = $3
	`

	_, err := db.ExecContext(ctx, q, status, result, id)
	return err
}

// checkExpressionExists looks for the same postfix already sent by the user.
func checkExpressionExists(ctx context.Context, db *sql.DB, _expr postfixExpr, userId int64) (int64, error) {
	var q string = `
	SELECT id FROM expressions WHERE hash = $1 AND postfixExpression = $2 AND userId = $3
	`

	var id int64
	err := db.QueryRowContext(ctx, q, getHash(string(_expr)), _expr, userId).Scan(&id)
	return id, err
}

func getExpressionState(ctx context.Context, db *sql.DB, id, userId int64) (expressionState, error) {
	var q string = `
	SELECT id, expression, postfixExpression, status, result FROM expressions WHERE id = $1 AND userId = $2`

	st, err := scanExpressionState(db.QueryRowContext(ctx, q, id, userId))
	if errors.Is(err, sql.ErrNoRows) {
		err = errorUnknownExpression
	}
	return st, err
}

func getExpressions(ctx context.Context, db *sql.DB, userId int64) ([]expressionState, error) {
	var q string = `
	SELECT id, expression, postfixExpression, status, result FROM expressions WHERE userId = $1 ORDER BY id`

	rows, err := db.QueryContext(ctx, q, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]expressionState, 0)
	for rows.Next() {
		st, err := scanExpressionState(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, st)
	}
	return res, rows.Err()
}

func scanExpressionState(row interface{ Scan(...any) error }) (expressionState, error) {
	var (
		st     expressionState
		result sql.NullString
	)
	if err := row.Scan(&st.ID, &st.Expr, &st.Postfix, &st.State, &result); err != nil {
		return expressionState{}, err
	}
	st.Result = result.String
	return st, nil
}

// getPendingExpressions returns the expressions left in progress, oldest first.
func getPendingExpressions(ctx context.Context, db *sql.DB) ([]expr, error) {
	var q string = `
	SELECT id, postfixExpression FROM expressions WHERE status = $1 ORDER BY id
	`
	rows, err := db.QueryContext(ctx, q, in_progress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]expr, 0)
	for rows.Next() {
		var e expr
		if err := rows.Scan(&e.id, &e.postfixExpr); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func getComputes(ctx context.Context, db *sql.DB) (map[string]int64, error) {
	var q string = `
	SELECT address, lastPing FROM computes
	`
	res := make(map[string]int64)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return res, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			addr string
			ping int64
		)
		if err := rows.Scan(&addr, &ping); err != nil {
			return res, err
		}
		res[addr] = ping
	}
	return res, rows.Err()
}

func deleteCompute(ctx context.Context, db *sql.DB, addr string) error {
	var q string = `
	DELETE FROM computes WHERE address = $1`
	_, err := db.ExecContext(ctx, q, addr)
	return err
}

func storeCompute(ctx context.Context, db *sql.DB, addr string, lastPing int64) error {
	var q string = `
	INSERT INTO computes (address, lastPing) VALUES ($1, $2)
	ON CONFLICT(address) DO UPDATE SET lastPing = excluded.lastPing
	`
	_, err := db.ExecContext(ctx, q, addr, lastPing)
	return err
}

func pingCompute(ctx context.Context, db *sql.DB, addr string, lastPing int64) error {
	var q string = `
	UPDATE computes SET lastPing = $1 WHERE address = $2
	`
	_, err := db.ExecContext(ctx, q, lastPing, addr)
	return err
}
