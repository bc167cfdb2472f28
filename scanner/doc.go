// Package scanner extracts query results as rows of canonical text values.
//
// Every extracted cell is normalized to a string regardless of the source
// column type, or left nil for SQL NULL. This keeps rows uniform across
// drivers at the cost of typing: callers comparing numbers, times or
// booleans convert explicitly with Int, Float, Bool, Time or Date.
//
// # Extracting Rows
//
// Pass the cursor and the columns you asked for, in the order you want them
// back:
//
//	rows, err := db.QueryContext(ctx, "SELECT user_id, username FROM users")
//	if err != nil {
//	    return err
//	}
//	defer rows.Close()
//
//	all, err := scanner.ExtractAll(rows, []string{"user_id", "username"})
//
// ExtractOne reads only the first row and returns a nil Row when there is
// none; an empty result is not an error.
//
// # Column Matching
//
// Requested columns are matched against the result column names without
// regard to case. A table-qualified request such as "users.user_id" matches
// a result column named "user_id". A requested column missing from the
// result fails with an argument format error.
//
// # Normalization
//
// Normalize renders integers and floats with strconv, booleans as "true" or
// "false", byte slices as strings, DATE columns as 2006-01-02 and other time
// values as 2006-01-02 15:04:05.999999999. Driver types that implement
// fmt.Stringer, on the value or on the pointer, are rendered with String.
//
// # Query Options
//
// Use WithExpectedSize when you know the approximate row count to reduce
// slice reallocations in ExtractAll:
//
//	all, err := scanner.ExtractAll(rows, cols, scanner.WithExpectedSize(1000))
package scanner
