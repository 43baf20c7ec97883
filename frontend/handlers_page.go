package frontend

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/preciouswiki/precious/auth"
	"github.com/preciouswiki/precious/wiki"
)

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	s.showPageOrFile(w, r, "Home")
}

func (s *Service) handleShow(w http.ResponseWriter, r *http.Request) {
	s.showPageOrFile(w, r, wildcardName(r))
}

// showPageOrFile implements the page → file → create disambiguation.
func (s *Service) showPageOrFile(w http.ResponseWriter, r *http.Request, rawName string) {
	name, revision := SplitRevision(rawName)

	res, err := s.Resolve(r.Context(), name, revision)
	if err != nil {
		s.logger.Error("resolve failed", "name", name, "error", err)
		s.render(w, http.StatusInternalServerError, "error", ErrorView{Message: "Something went wrong"})
		return
	}

	_, authenticated := auth.GetIdentity(r.Context())

	switch res.Kind {
	case ResolvedPage:
		s.render(w, http.StatusOK, "page", PageView{
			Name:          name,
			Rendered:      s.Sanitize(res.Page.Rendered),
			Revision:      res.Page.Revision,
			Authenticated: authenticated,
		})

	case ResolvedFile:
		w.Header().Set("Content-Type", res.File.MIME)
		w.Write(res.File.Data)

	default:
		if revision != "" {
			// A pinned lookup that misses is a dead link, not a create
			// invitation.
			http.NotFound(w, r)
			return
		}
		if !authenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		s.render(w, http.StatusOK, "create", CreateView{Name: name})
	}
}

func (s *Service) handleEditForm(w http.ResponseWriter, r *http.Request) {
	name := wildcardName(r)
	page, err := s.engine.FindPage(r.Context(), name, "")
	if err != nil {
		s.render(w, http.StatusInternalServerError, "error", ErrorView{Message: "Something went wrong"})
		return
	}
	if page == nil {
		s.render(w, http.StatusOK, "create", CreateView{Name: name})
		return
	}
	s.render(w, http.StatusOK, "edit", EditView{Name: name, Content: page.Raw, Format: page.Format})
}

func (s *Service) handleEditSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	name := wildcardName(r)
	format := r.PostFormValue("format")
	content := r.PostFormValue("content")
	rename := r.PostFormValue("rename")
	author := s.authorFrom(r)

	ctx := r.Context()
	page, err := s.engine.FindPage(ctx, name, "")
	if err == nil {
		if page == nil {
			// The page vanished between form load and save; write it fresh.
			err = s.engine.WritePage(ctx, name, format, content, author)
		} else {
			err = s.engine.UpdatePage(ctx, page, rename, format, content, author)
		}
	}
	if err != nil {
		s.logger.Error("edit save failed", "name", name, "error", err)
		s.render(w, http.StatusOK, "error", ErrorView{Message: userMessage(err)})
		return
	}

	final := name
	if rename != "" {
		final = rename
	}
	http.Redirect(w, r, "/"+url.PathEscape(final), http.StatusSeeOther)
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	name := r.PostFormValue("page")
	if name == "" {
		name = wildcardName(r)
	}
	format := r.PostFormValue("format")
	content := r.PostFormValue("content")

	err := s.engine.WritePage(r.Context(), name, format, content, s.authorFrom(r))
	if errors.Is(err, wiki.ErrDuplicatePage) {
		s.render(w, http.StatusOK, "error", ErrorView{Message: "Duplicate page: " + name})
		return
	}
	if err != nil {
		s.logger.Error("create failed", "name", name, "error", err)
		s.render(w, http.StatusOK, "error", ErrorView{Message: userMessage(err)})
		return
	}
	http.Redirect(w, r, "/"+url.PathEscape(name), http.StatusSeeOther)
}

func (s *Service) handlePreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	format := r.PostFormValue("wiki_format")
	text := r.PostFormValue("text")

	rendered, err := s.engine.PreviewRender(r.Context(), "Preview", text, format)
	if err != nil {
		http.Error(w, "preview failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(s.Sanitize(rendered)))
}

func (s *Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results, err := s.engine.Search(r.Context(), query)
	if err != nil {
		s.render(w, http.StatusInternalServerError, "error", ErrorView{Message: "Something went wrong"})
		return
	}
	s.render(w, http.StatusOK, "search", SearchView{Query: query, Results: results})
}

func (s *Service) handleHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctx := r.Context()

	page, err := s.engine.FindPage(ctx, name, "")
	if err != nil {
		s.render(w, http.StatusInternalServerError, "error", ErrorView{Message: "Something went wrong"})
		return
	}
	if page == nil {
		http.NotFound(w, r)
		return
	}

	pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))
	revisions, err := s.History(ctx, name, pageNum)
	if err != nil {
		s.render(w, http.StatusInternalServerError, "error", ErrorView{Message: "Something went wrong"})
		return
	}
	if pageNum < 1 {
		pageNum = 1
	}
	s.render(w, http.StatusOK, "history", HistoryView{Name: name, PageNum: pageNum, Revisions: revisions})
}

func (s *Service) handleComparePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	name := chi.URLParam(r, "name")
	selected := r.PostForm["versions"]
	http.Redirect(w, r, CompareRedirectPath(name, selected), http.StatusSeeOther)
}

func (s *Service) handleCompareGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	revList := chi.URLParam(r, "range")

	view, err := s.Compare(r.Context(), name, revList)
	if err != nil {
		s.render(w, http.StatusInternalServerError, "error", ErrorView{Message: "Something went wrong"})
		return
	}
	if view == nil {
		http.NotFound(w, r)
		return
	}
	s.render(w, http.StatusOK, "compare", *view)
}

// wildcardName extracts and unescapes the wildcard path tail.
func wildcardName(r *http.Request) string {
	name := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name
}

// authorFrom builds the engine author info from the session identity and
// the optional commit message form field.
func (s *Service) authorFrom(r *http.Request) wiki.Author {
	id, _ := auth.GetIdentity(r.Context())
	return wiki.Author{
		Name:    id.FullName,
		Email:   id.Email,
		Message: r.PostFormValue("message"),
	}
}
