package query

import (
	"github.com/jmoiron/sqlx"
)

// Rebind rewrites the "?" placeholders of q into the style expected by
// driverName ($1 for postgres and pgx, @p1 for sqlserver, :arg1 for oracle
// drivers). Unknown drivers, duckdb among them, keep "?".
//
// The rewrite is safe because rendered statements never contain literal
// values, so every "?" is a placeholder.
func Rebind(driverName string, q Query) Query {
	bt := sqlx.BindType(driverName)
	if bt == sqlx.UNKNOWN || bt == sqlx.QUESTION {
		return q
	}
	return Query{SQL: sqlx.Rebind(bt, q.SQL), Args: q.Args}
}

// RegisterDriver records the placeholder style of a driver that sqlx does
// not know about. bindType is one of sqlx.QUESTION, sqlx.DOLLAR, sqlx.NAMED
// or sqlx.AT.
func RegisterDriver(driverName string, bindType int) {
	sqlx.BindDriver(driverName, bindType)
}
