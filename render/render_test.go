package render

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preciouswiki/precious/frontend"
)

func TestRenderPageView(t *testing.T) {
	h, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	w := httptest.NewRecorder()
	err = h.Render(w, 200, "page", frontend.PageView{
		Name:     "Home",
		Rendered: "<p>hello</p>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<p>hello</p>") {
		t.Errorf("raw HTML not injected:\n%s", body)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type: %q", ct)
	}
}

func TestRenderEscapesViewFields(t *testing.T) {
	h, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	w := httptest.NewRecorder()
	if err := h.Render(w, 200, "login", frontend.LoginView{Message: "<script>x</script>"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(w.Body.String(), "<script>") {
		t.Error("message field was not escaped")
	}
}

func TestRenderAllViews(t *testing.T) {
	h, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	views := map[string]any{
		"page":    frontend.PageView{Name: "Home"},
		"create":  frontend.CreateView{Name: "New"},
		"edit":    frontend.EditView{Name: "Home", Format: "markdown"},
		"history": frontend.HistoryView{Name: "Home", PageNum: 1},
		"compare": frontend.CompareView{Name: "Home", From: "a", To: "b"},
		"search":  frontend.SearchView{Query: "x"},
		"login":   frontend.LoginView{},
		"account": frontend.AccountView{Email: "a@b.com"},
		"error":   frontend.ErrorView{Message: "boom"},
	}
	for view, data := range views {
		w := httptest.NewRecorder()
		if err := h.Render(w, 200, view, data); err != nil {
			t.Errorf("render %s: %v", view, err)
		}
	}
}
