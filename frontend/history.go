package frontend

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/preciouswiki/precious/wiki"
)

// rangePattern splits a "from..to" or "from...to" comparison reference.
var rangePattern = regexp.MustCompile(`\.{2,3}`)

// History returns one window of name's revision list. pageNum values below
// 1 are clamped to 1; the engine's newest-first order is preserved as is.
func (s *Service) History(ctx context.Context, name string, pageNum int) ([]wiki.Revision, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	return s.engine.ListRevisions(ctx, name, pageNum)
}

// CompareRedirectPath builds the redirect target for a history-form
// selection. Fewer than two selections go back to the history view.
// Otherwise the comparison runs from the last selected id to the first:
// the selection list's order is authoritative, not revision chronology.
func CompareRedirectPath(name string, selected []string) string {
	if len(selected) < 2 {
		return "/history/" + url.PathEscape(name)
	}
	return fmt.Sprintf("/compare/%s/%s...%s",
		url.PathEscape(name), selected[len(selected)-1], selected[0])
}

// Compare splits a from..to (or from...to) reference, fetches the page and
// asks the engine for a diff restricted to the page's path. Only the first
// hunk is surfaced even when the engine returns several.
// A missing page or an unsplittable reference yields (nil, nil).
func (s *Service) Compare(ctx context.Context, name, revList string) (*CompareView, error) {
	parts := rangePattern.Split(revList, -1)
	if len(parts) < 2 || parts[0] == "" || parts[len(parts)-1] == "" {
		return nil, nil
	}
	from, to := parts[0], parts[len(parts)-1]

	page, err := s.engine.FindPage(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	hunks, err := s.engine.Diff(ctx, from, to, page.Path)
	if err != nil {
		return nil, err
	}

	view := &CompareView{Name: name, From: from, To: to}
	if len(hunks) > 0 {
		view.Diff = hunks[0].Text
	}
	return view, nil
}
