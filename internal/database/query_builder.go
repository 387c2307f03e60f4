package database

import (
	"fmt"
	"strings"
)

const sessionColumns = "id, user_id, duration_seconds, notes, guided_id, tags, completed_at"

type SessionQuery struct {
	columns string
	filters []string
	args    []interface{}
	orderBy string
	limit   int
}

func NewSessionQuery() *SessionQuery {
	return &SessionQuery{columns: sessionColumns, orderBy: "completed_at DESC, id ASC"}
}

func (q *SessionQuery) Where(filter string, args ...interface{}) *SessionQuery {
	q.filters = append(q.filters, filter)
	q.args = append(q.args, args...)
	return q
}

func (q *SessionQuery) WhereUser(userID string) *SessionQuery {
	return q.Where("user_id = ?", userID)
}

func (q *SessionQuery) WhereID(id string) *SessionQuery {
	return q.Where("id = ?", id)
}

// WhereTagged narrows to sessions whose tags column may hold tag. Callers
// still confirm the match after decoding, since LIKE also matches prefixes.
func (q *SessionQuery) WhereTagged(tag string) *SessionQuery {
	return q.Where("tags LIKE ?", `%"`+tag+`%`)
}

func (q *SessionQuery) OrderBy(orderBy string) *SessionQuery {
	q.orderBy = orderBy
	return q
}

func (q *SessionQuery) Limit(limit int) *SessionQuery {
	q.limit = limit
	return q
}

func (q *SessionQuery) Build() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM sessions", q.columns)
	if len(q.filters) > 0 {
		query += " WHERE " + strings.Join(q.filters, " AND ")
	}
	if q.orderBy != "" {
		query += " ORDER BY " + q.orderBy
	}
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}
	return query, q.args
}
