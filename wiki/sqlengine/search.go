package sqlengine

import (
	"context"
	"fmt"
	"strings"

	"github.com/preciouswiki/precious/wiki"
)

// Search scans head revisions for a case-insensitive substring match and
// returns one result per matching page with the first matching line as
// the snippet.
func (e *Engine) Search(ctx context.Context, query string) ([]wiki.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	rows, err := e.DB.QueryContext(ctx, `
		SELECT p.name, r.content
		FROM pages p
		JOIN revisions r ON r.id = p.head
		ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("sqlengine: search: %w", err)
	}
	defer rows.Close()

	needle := strings.ToLower(query)
	var results []wiki.SearchResult
	for rows.Next() {
		var name, content string
		if err := rows.Scan(&name, &content); err != nil {
			return nil, fmt.Errorf("sqlengine: scan search: %w", err)
		}

		lower := strings.ToLower(content)
		count := strings.Count(lower, needle)
		if count == 0 && !strings.Contains(strings.ToLower(name), needle) {
			continue
		}

		snippet := ""
		for _, line := range strings.Split(content, "\n") {
			if strings.Contains(strings.ToLower(line), needle) {
				snippet = strings.TrimSpace(line)
				break
			}
		}
		results = append(results, wiki.SearchResult{Name: name, Snippet: snippet, Count: count})
	}
	return results, rows.Err()
}
