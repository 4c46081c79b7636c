package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/benknight/cocolist/internal/middleware"
	"github.com/benknight/cocolist/internal/presenter"
	"github.com/benknight/cocolist/internal/service"
)

type stubViewer struct {
	view func(slug, lang string) (presenter.View, error)
}

func (s *stubViewer) View(slug, lang string) (presenter.View, error) {
	return s.view(slug, lang)
}

func TestBusinessHandler_Get(t *testing.T) {
	e := echo.New()
	viewer := &stubViewer{view: func(slug, lang string) (presenter.View, error) {
		switch slug {
		case "pho-24":
			return presenter.View{Slug: slug, Language: lang, URL: "/en/pho-24"}, nil
		case "broken":
			return presenter.View{}, errors.New("boom")
		}
		return presenter.View{}, service.ErrBusinessNotFound
	}}
	handler := NewBusinessHandler(viewer)

	serve := func(slug string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/businesses/"+slug, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("slug")
		c.SetParamValues(slug)
		c.Set(middleware.ContextKeyLanguage, "en")
		if err := handler.Get(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return rec
	}

	rec := serve("pho-24")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Status string         `json:"status"`
		Data   presenter.View `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Status != "success" || payload.Data.Language != "en" || payload.Data.URL != "/en/pho-24" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	if rec := serve("missing"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := serve("broken"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
