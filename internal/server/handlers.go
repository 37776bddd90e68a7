package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/submission"
)

const htmlContentType = "text/html; charset=utf-8"

type createdResponse struct {
	ID     string `json:"id"`
	Record string `json:"record"`
}

type submissionsResponse struct {
	Data []Submission `json:"data"`
}

// FormPath is the page and submission route of a record.
func FormPath(record string) string {
	return "/forms/" + url.PathEscape(record)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	catalog := s.Catalog()
	if catalog == nil {
		s.writeError(w, http.StatusServiceUnavailable, "NOT_LOADED", "catalog is not loaded")
		return
	}

	var items strings.Builder
	for _, name := range catalog.SortedNames() {
		link, err := markup.MakeTag("a", markup.Attrs{markup.A("href", FormPath(name))}, markup.Text(name))
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "RENDER_FAILED", err.Error())
			return
		}
		item, err := markup.MakeTag("li", nil, link)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "RENDER_FAILED", err.Error())
			return
		}
		items.WriteString(item)
	}
	list, err := markup.MakeTag("ul", nil, items.String())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "RENDER_FAILED", err.Error())
		return
	}
	s.writeBytes(w, htmlContentType, []byte("<!DOCTYPE html>"+list))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name, record, ok := s.lookup(w, r)
	if !ok {
		return
	}
	out, err := s.page.Render(r.Context(), record, s.optionsFor(name))
	if err != nil {
		s.logger.Error("render page", zap.String("record", name), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "RENDER_FAILED", err.Error())
		return
	}
	s.writeBytes(w, s.page.ContentType(), out)
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	name, record, ok := s.lookup(w, r)
	if !ok {
		return
	}
	out, err := s.form.Render(r.Context(), record, s.optionsFor(name))
	if err != nil {
		s.logger.Error("render fragment", zap.String("record", name), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "RENDER_FAILED", err.Error())
		return
	}
	s.writeBytes(w, s.form.ContentType(), out)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	name, record, ok := s.lookup(w, r)
	if !ok {
		return
	}

	payload, err := submission.FromRequest(r)
	if err != nil {
		if errors.Is(err, submission.ErrUnsupportedContentType) {
			s.writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", err.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	if err := submission.Validate(record, payload); err != nil {
		s.writeValidationError(w, record, err)
		return
	}

	sub := s.store.Add(name, payload)
	s.logger.Info("submission accepted", zap.String("record", name), zap.String("id", sub.ID))
	w.Header().Set("Location", FormPath(name)+"/submissions")
	s.writeJSON(w, http.StatusCreated, createdResponse{ID: sub.ID, Record: name})
}

func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	name, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, submissionsResponse{Data: s.store.List(name)})
}

func (s *Server) writeValidationError(w http.ResponseWriter, record *schema.Record, err error) {
	resp := errorResponse{Error: "submission is invalid", Code: "VALIDATION_FAILED"}
	paths, pathErr := render.FieldPaths(s.builder, record)
	if pathErr != nil {
		resp.Form = []string{err.Error()}
	} else {
		mapping := render.MapErrorPayload(paths, submission.FieldErrors(err))
		resp.Fields = mapping.Fields
		resp.Form = mapping.Form
	}
	s.writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (string, *schema.Record, bool) {
	name := chi.URLParam(r, "record")
	catalog := s.Catalog()
	if catalog == nil {
		s.writeError(w, http.StatusServiceUnavailable, "NOT_LOADED", "catalog is not loaded")
		return "", nil, false
	}
	record, ok := catalog.Record(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, "RECORD_NOT_FOUND", "unknown record: "+name)
		return "", nil, false
	}
	return name, record, true
}

func (s *Server) optionsFor(name string) render.RenderOptions {
	options := s.renderOptions
	options.URI = FormPath(name)
	return options
}
