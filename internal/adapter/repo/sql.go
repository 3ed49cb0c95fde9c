package repo

import "strings"

// stripMarker removes the leading "--sql <uuid>" tag for queries that run
// directly on the pool instead of through the logging runner.
func stripMarker(query string) string {
	query = strings.TrimSpace(query)
	if strings.HasPrefix(query, "--sql ") {
		if i := strings.IndexByte(query, '\n'); i >= 0 {
			return query[i+1:]
		}
	}
	return query
}
