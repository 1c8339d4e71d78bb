package db

import "strconv"

// Paginate appends LIMIT and OFFSET placeholders numbered after args.
func Paginate(query string, args []any, limit, offset int) (string, []any) {
	n := len(args)
	query += " LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)
	return query, append(args, limit, offset)
}
