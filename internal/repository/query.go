package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/personal-blog-api/internal/models"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation
const uniqueViolation = "23505"

// conditions accumulates AND-ed predicates with positional arguments
type conditions struct {
	clauses []string
	args    []interface{}
}

// add appends a predicate; "?" in clause is replaced by the next $n
func (c *conditions) add(clause string, arg interface{}) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, strings.Replace(clause, "?", fmt.Sprintf("$%d", len(c.args)), 1))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// next returns the placeholder for the argument about to be appended
func (c *conditions) next() string {
	return fmt.Sprintf("$%d", len(c.args)+1)
}

// assignments accumulates "col = $n" pairs for partial updates
type assignments struct {
	cols []string
	args []interface{}
}

func (a *assignments) set(col string, arg interface{}) {
	a.args = append(a.args, arg)
	a.cols = append(a.cols, fmt.Sprintf("%s = $%d", col, len(a.args)))
}

func (a *assignments) empty() bool {
	return len(a.cols) == 0
}

// statement builds "UPDATE table SET ... WHERE id = $n RETURNING returning"
func (a *assignments) statement(table string, id interface{}, returning string) (string, []interface{}) {
	args := append(a.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(a.cols, ", "), len(args), returning)
	return query, args
}

// translate maps driver errors to model sentinels
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", models.ErrDuplicate, pqErr.Constraint)
	}
	return err
}

// count runs a SELECT COUNT(*) query
func count(ctx context.Context, db *sql.DB, query string, args ...interface{}) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// rowsAffected reports whether an Exec touched at least one row
func rowsAffected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
