package box

import (
	"context"
	"net/http"
)

// Search queries the account's content.
func (conn *Connection) Search(ctx context.Context, query string, options SearchOptions, opts ...RequestOption) (*SearchResults, error) {
	if query == "" {
		return nil, &ValidationError{Field: "query", Reason: "must not be empty"}
	}
	q := options.query()
	q.Set("query", query)

	var results SearchResults
	if err := conn.request(ctx, http.MethodGet, []string{"search"}, q, nil, &results, opts...); err != nil {
		return nil, err
	}
	return &results, nil
}
