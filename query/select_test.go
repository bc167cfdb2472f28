package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlimpid/sqlaccess/dberr"
)

func ptr[T any](v T) *T { return &v }

func TestSelectBuild(t *testing.T) {
	tests := []struct {
		name     string
		sel      Select
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "full table",
			sel:     Select{Table: "users", Columns: []string{"user_id", "username", "user_password"}},
			wantSQL: "SELECT user_id, username, user_password FROM users",
		},
		{
			name:     "single key",
			sel:      Select{Table: "users", Columns: []string{"username"}, Key: ptr(Eq("user_id", 1))},
			wantSQL:  "SELECT username FROM users WHERE user_id = ?",
			wantArgs: []any{1},
		},
		{
			name:    "null key",
			sel:     Select{Table: "users", Columns: []string{"user_id"}, Key: ptr(Eq("id", nil))},
			wantSQL: "SELECT user_id FROM users WHERE id IS NULL",
		},
		{
			name: "and conditions",
			sel: Select{
				Table:   "post",
				Columns: []string{"user_id", "title"},
				Where:   ptr(All(Eq("user_id", 1), Eq("rating", 3))),
			},
			wantSQL:  "SELECT user_id, title FROM post WHERE user_id = ? AND rating = ?",
			wantArgs: []any{1, 3},
		},
		{
			name: "or conditions with null",
			sel: Select{
				Table:   "post",
				Columns: []string{"title"},
				Where:   ptr(Any(Eq("city", nil), Eq("rating", 3), Eq("country", "US"))),
			},
			wantSQL:  "SELECT title FROM post WHERE city IS NULL OR rating = ? OR country = ?",
			wantArgs: []any{3, "US"},
		},
		{
			name: "inner join with condition and order",
			sel: Select{
				Table:   "users",
				Columns: []string{"username", "title"},
				Join:    &Join{Kind: InnerJoin, LeftKey: "users.user_id", RightTable: "post", RightKey: "post.user_id"},
				Key:     ptr(Eq("users.user_id", 1)),
				OrderBy: []Order{OrderBy("title", Desc), {Column: "username"}},
			},
			wantSQL:  "SELECT username, title FROM users INNER JOIN post ON users.user_id = post.user_id WHERE users.user_id = ? ORDER BY title DESC, username ASC",
			wantArgs: []any{1},
		},
		{
			name: "left join with limit",
			sel: Select{
				Table:   "users",
				Columns: []string{"username"},
				Join:    &Join{Kind: LeftJoin, LeftKey: "users.user_id", RightTable: "post", RightKey: "post.user_id"},
				Limit:   2,
			},
			wantSQL: "SELECT username FROM users LEFT JOIN post ON users.user_id = post.user_id LIMIT 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.sel.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, q.SQL)
			assert.Equal(t, tt.wantArgs, q.Args)
		})
	}
}

func TestSelectBuildRejects(t *testing.T) {
	cols := []string{"a"}
	tests := []struct {
		name string
		sel  Select
	}{
		{"empty table", Select{Columns: cols}},
		{"empty columns", Select{Table: "t"}},
		{"blank column", Select{Table: "t", Columns: []string{"a", ""}}},
		{"injected column", Select{Table: "t", Columns: []string{"a; DROP TABLE t"}}},
		{"injected table", Select{Table: "t --", Columns: cols}},
		{"trailing dot", Select{Table: "t.", Columns: cols}},
		{"leading digit", Select{Table: "t", Columns: []string{"1a"}}},
		{"empty condition set", Select{Table: "t", Columns: cols, Where: &ConditionSet{Combinator: And}}},
		{"unknown combinator", Select{Table: "t", Columns: cols, Where: &ConditionSet{Conditions: []Condition{Eq("a", 1)}, Combinator: "xor"}}},
		{"uppercase combinator", Select{Table: "t", Columns: cols, Where: &ConditionSet{Conditions: []Condition{Eq("a", 1)}, Combinator: "AND"}}},
		{"bad condition column", Select{Table: "t", Columns: cols, Where: ptr(All(Eq("a=1 OR 1", 1)))}},
		{"key and where", Select{Table: "t", Columns: cols, Key: ptr(Eq("a", 1)), Where: ptr(All(Eq("a", 1)))}},
		{"bad key column", Select{Table: "t", Columns: cols, Key: ptr(Eq("", 1))}},
		{"bad join kind", Select{Table: "t", Columns: cols, Join: &Join{Kind: "outer", LeftKey: "a", RightTable: "u", RightKey: "b"}}},
		{"bad join key", Select{Table: "t", Columns: cols, Join: &Join{Kind: InnerJoin, LeftKey: "a", RightTable: "u", RightKey: ""}}},
		{"bad order column", Select{Table: "t", Columns: cols, OrderBy: []Order{{Column: "a b"}}}},
		{"bad direction", Select{Table: "t", Columns: cols, OrderBy: []Order{{Column: "a", Direction: "up"}}}},
		{"negative limit", Select{Table: "t", Columns: cols, Limit: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.sel.Build()
			assert.ErrorIs(t, err, dberr.ErrArgumentFormat)
		})
	}
}

func TestParseCombinator(t *testing.T) {
	c, err := ParseCombinator("and")
	require.NoError(t, err)
	assert.Equal(t, And, c)

	c, err = ParseCombinator("or")
	require.NoError(t, err)
	assert.Equal(t, Or, c)

	for _, s := range []string{"", "AND", "Or", "xor", "and "} {
		_, err := ParseCombinator(s)
		assert.ErrorIs(t, err, dberr.ErrArgumentFormat, s)
	}
}

func TestParseJoinKindAndDirection(t *testing.T) {
	k, err := ParseJoinKind("left")
	require.NoError(t, err)
	assert.Equal(t, LeftJoin, k)
	_, err = ParseJoinKind("right")
	assert.ErrorIs(t, err, dberr.ErrArgumentFormat)

	d, err := ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)
	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, dberr.ErrArgumentFormat)
}
