package query

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlimpid/sqlaccess/dberr"
)

func TestInsertBuild(t *testing.T) {
	q, err := Insert{
		Table:   "post",
		Columns: []string{"post_id", "title", "city"},
		Values:  []any{5, "Pistachio", nil},
	}.Build()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO post (post_id, title, city) VALUES (?, ?, NULL)", q.SQL)
	assert.Equal(t, []any{5, "Pistachio"}, q.Args)

	_, err = Insert{Table: "post", Columns: []string{"a", "b"}, Values: []any{1}}.Build()
	assert.ErrorIs(t, err, dberr.ErrArgumentFormat)

	_, err = Insert{Table: "post"}.Build()
	assert.ErrorIs(t, err, dberr.ErrArgumentFormat)
}

func TestUpdateBuild(t *testing.T) {
	q, err := Update{
		Table: "post",
		Set:   []Condition{Eq("title", "Neapolitan Ice Cream"), Eq("city", nil)},
		Key:   Eq("post_id", 3),
	}.Build()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE post SET title = ?, city = NULL WHERE post_id = ?", q.SQL)
	assert.Equal(t, []any{"Neapolitan Ice Cream", 3}, q.Args)

	_, err = Update{Table: "post", Key: Eq("post_id", 3)}.Build()
	assert.ErrorIs(t, err, dberr.ErrArgumentFormat)

	_, err = Update{Table: "post", Set: []Condition{Eq("title", "x")}}.Build()
	assert.ErrorIs(t, err, dberr.ErrArgumentFormat)
}

func TestDeleteBuild(t *testing.T) {
	q, err := Delete{Table: "post", Key: Eq("post_id", 4)}.Build()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM post WHERE post_id = ?", q.SQL)
	assert.Equal(t, []any{4}, q.Args)

	_, err = Delete{Table: "post"}.Build()
	assert.ErrorIs(t, err, dberr.ErrArgumentFormat)
}

func TestRebind(t *testing.T) {
	q := Query{SQL: "SELECT a FROM t WHERE b = ? AND c = ?", Args: []any{1, 2}}

	tests := []struct {
		driver string
		want   string
	}{
		{"duckdb", "SELECT a FROM t WHERE b = ? AND c = ?"},
		{"sqlite3", "SELECT a FROM t WHERE b = ? AND c = ?"},
		{"pgx", "SELECT a FROM t WHERE b = $1 AND c = $2"},
		{"postgres", "SELECT a FROM t WHERE b = $1 AND c = $2"},
		{"sqlserver", "SELECT a FROM t WHERE b = @p1 AND c = @p2"},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got := Rebind(tt.driver, q)
			assert.Equal(t, tt.want, got.SQL)
			assert.Equal(t, q.Args, got.Args)
		})
	}
}

func TestRegisterDriver(t *testing.T) {
	RegisterDriver("sqlaccess-test-dollar", sqlx.DOLLAR)
	got := Rebind("sqlaccess-test-dollar", Query{SQL: "DELETE FROM t WHERE a = ?"})
	assert.Equal(t, "DELETE FROM t WHERE a = $1", got.SQL)
}
