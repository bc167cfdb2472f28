package main

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlimpid/sqlaccess"
	"github.com/nlimpid/sqlaccess/dberr"
	"github.com/nlimpid/sqlaccess/internal/logger"
	"github.com/nlimpid/sqlaccess/query"
)

func TestNewRequest(t *testing.T) {
	req, err := newRequest("post", []string{"title"}, "", "",
		[]string{"user_id=1", "city=null", "title=Mint"}, "or",
		"inner:users.user_id:post:post.user_id", []string{"rating:DESC", "title"})
	require.NoError(t, err)

	assert.Equal(t, []query.Condition{
		query.Eq("user_id", int64(1)),
		query.Eq("city", nil),
		query.Eq("title", "Mint"),
	}, req.where)
	assert.Equal(t, &query.Join{Kind: query.InnerJoin, LeftKey: "users.user_id", RightTable: "post", RightKey: "post.user_id"}, req.join)
	assert.Equal(t, []query.Order{query.OrderBy("rating", query.Desc), query.OrderBy("title", query.Asc)}, req.order)

	set, err := req.conditions()
	require.NoError(t, err)
	assert.Equal(t, query.Or, set.Combinator)
}

func TestNewRequestRejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		where []string
		join  string
		order []string
	}{
		{name: "where without value", where: []string{"user_id"}},
		{name: "key and where", key: "user_id", where: []string{"rating=3"}},
		{name: "short join", join: "inner:users.user_id:post"},
		{name: "unknown join", join: "outer:a:b:c"},
		{name: "unknown direction", order: []string{"title:up"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newRequest("post", []string{"title"}, tt.key, "1", tt.where, "and", tt.join, tt.order)
			assert.ErrorIs(t, err, dberr.ErrArgumentFormat)
		})
	}
}

func TestRun(t *testing.T) {
	sqlDB, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(1)

	_, err = sqlDB.Exec(`
		CREATE TABLE users (user_id INTEGER, username VARCHAR);
		CREATE TABLE post (post_id INTEGER, user_id INTEGER, title VARCHAR, city VARCHAR);
		INSERT INTO users VALUES (1, 'alpha'), (2, 'bravo');
		INSERT INTO post VALUES (1, 1, 'Chocolate Ice Cream', 'Denver'), (2, 1, 'Vanilla', NULL), (3, 2, 'Mint', 'London');
	`)
	require.NoError(t, err)
	db := sqlaccess.New(sqlDB, sqlaccess.WithDriver("duckdb"), sqlaccess.WithLogger(logger.Discard()))

	tests := []struct {
		name    string
		table   string
		columns []string
		key     string
		value   string
		where   []string
		comb    string
		join    string
		order   []string
		want    string
	}{
		{
			name:    "all rows",
			table:   "users",
			columns: []string{"user_id", "username"},
			order:   []string{"user_id"},
			want:    "1\talpha\n2\tbravo\n",
		},
		{
			name:    "by key",
			table:   "post",
			columns: []string{"title", "city"},
			key:     "user_id",
			value:   "1",
			order:   []string{"post_id:desc"},
			want:    "Vanilla\tNULL\nChocolate Ice Cream\tDenver\n",
		},
		{
			name:    "where or",
			table:   "post",
			columns: []string{"post_id"},
			where:   []string{"city=London", "city=null"},
			comb:    "or",
			order:   []string{"post_id"},
			want:    "2\n3\n",
		},
		{
			name:    "join with key",
			table:   "users",
			columns: []string{"username", "title"},
			key:     "users.user_id",
			value:   "2",
			join:    "inner:users.user_id:post:post.user_id",
			want:    "bravo\tMint\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comb := tt.comb
			if comb == "" {
				comb = "and"
			}
			req, err := newRequest(tt.table, tt.columns, tt.key, tt.value, tt.where, comb, tt.join, tt.order)
			require.NoError(t, err)

			rows, err := req.run(context.Background(), db)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, printRows(&buf, rows))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
