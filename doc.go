/*
Package sqlaccess is a small relational data access layer over database/sql.

Callers name a table, the columns they want and how rows are selected; the
package builds a parameterized statement, binds every value through a closed
set of scalar kinds, runs it on a caller-owned handle and returns the rows as
text.

# Handles

Any value with a PrepareContext method works as a Handle: *sql.DB, *sql.Tx,
*sql.Conn and the sqlx equivalents. The package never opens, pools or
commits anything; a transaction is simply a *sql.Tx passed to New.

	db := sqlaccess.New(sqlDB, sqlaccess.WithDriver("pgx"))
	name, ok, err := db.GetOneColumn(ctx, "users", "username", "user_id", 1)

# Reads

Every read validates its input first. Malformed input (an empty column list,
an empty condition set, an unknown combinator, an unbindable value) fails
with a *dberr.ArgumentFormatError or *dberr.UnsupportedValueKindError before
any statement is prepared.

	rows, err := db.GetRowsMatching(ctx, "post",
	    []string{"post_id", "title"},
	    query.All(query.Eq("user_id", 1), query.Eq("rating", 3)),
	    query.OrderBy("post_id", query.Desc))

Rows are scanner.Row values: one entry per requested column, holding the
cell as canonical text or nil for NULL.

# Writes and objects

Insert, Update and Delete take the fieldmap.FieldPair projection of an
object; Update and Delete are keyed on the single primary-key pair. The
generic helpers InsertObject, UpdateObject, DeleteObject, GetObject and
GetObjects do the projection through a fieldmap.Entity.

# Errors

Failures reported by the handle are wrapped in *dberr.ExecutionError, which
carries the statement text and unwraps to the driver error.
*/
package sqlaccess
