package frontend

import (
	"context"
	"regexp"
	"strings"

	"github.com/preciouswiki/precious/wiki"
)

// revisionPattern matches a content-addressed revision id: a path segment
// of exactly 40 lowercase hex characters is reserved as a revision
// selector and never treated as part of a page name.
var revisionPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// ResolutionKind says what a path name turned out to denote.
type ResolutionKind int

const (
	// ResolvedNone: neither a page nor a file; the show handler offers
	// the create form instead.
	ResolvedNone ResolutionKind = iota
	// ResolvedPage: an existing page.
	ResolvedPage
	// ResolvedFile: an existing non-page file.
	ResolvedFile
)

// Resolution is the outcome of resolving one path name.
type Resolution struct {
	Kind ResolutionKind
	Page *wiki.Page
	File *wiki.File
}

// SplitRevision splits a request path into a page name and an optional
// revision selector. The selector is the trailing path segment when it has
// the 40-hex shape; everything before it is the name.
func SplitRevision(path string) (name, revision string) {
	name = strings.Trim(path, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		if last := name[i+1:]; revisionPattern.MatchString(last) {
			return name[:i], last
		}
	}
	return name, ""
}

// Resolve decides what name denotes: an existing page (optionally pinned to
// revision), an existing non-page file, or nothing. The outcome depends
// only on the engine's current state.
func (s *Service) Resolve(ctx context.Context, name, revision string) (Resolution, error) {
	page, err := s.engine.FindPage(ctx, name, revision)
	if err != nil {
		return Resolution{}, err
	}
	if page != nil {
		return Resolution{Kind: ResolvedPage, Page: page}, nil
	}

	file, err := s.engine.FindFile(ctx, name)
	if err != nil {
		return Resolution{}, err
	}
	if file != nil {
		return Resolution{Kind: ResolvedFile, File: file}, nil
	}

	return Resolution{Kind: ResolvedNone}, nil
}
