package server

import (
	"net/http"

	"github.com/NoobYoup/amis-nextjs-sub001/internal/app"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListNews(w, r)
	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		s.handleCreateNews(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleNewsByID(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "/api/news/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		article, err := s.app.GetNewsArticle(r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, article)
	case http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		s.handleUpdateNews(w, r, id)
	case http.MethodDelete:
		if !s.requireAdmin(w, r) {
			return
		}
		if err := s.app.DeleteNewsArticle(r.Context(), id); err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleListNews(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPaging(r)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = store.DefaultPublicPageSize
	}
	filter := store.NewsFilter{
		Search: r.URL.Query().Get("search"),
		Year:   queryYear(r),
		Paging: store.Paging{Page: page, PageSize: limit},
	}
	result, err := s.app.ListNewsArticles(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Data:  result.Items,
		Total: result.Total,
		Page:  page,
		Pages: result.Pages(limit),
	})
}

func newsFields(r *http.Request) (app.NewsFields, error) {
	publishedAt, err := formTime(r, "publishedAt")
	if err != nil {
		return app.NewsFields{}, err
	}
	fields := app.NewsFields{
		Title:       formString(r, "title"),
		Summary:     formString(r, "summary"),
		Content:     formString(r, "content"),
		Author:      formString(r, "author"),
		PublishedAt: publishedAt,
	}
	// A nil Tags slice means the field was absent and keeps existing tags.
	if tags, sent := formSlice(r, "tags"); sent {
		fields.Tags = tags
		if fields.Tags == nil {
			fields.Tags = []string{}
		}
	}
	return fields, nil
}

func (s *Server) handleCreateNews(w http.ResponseWriter, r *http.Request) {
	cleanup, err := s.parseMultipart(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart form")
		return
	}
	fields, err := newsFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	uploads, closeUploads, err := formUploads(r, "images")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	defer closeUploads()
	article, err := s.app.CreateNewsArticle(r.Context(), fields, uploads)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, article)
}

func (s *Server) handleUpdateNews(w http.ResponseWriter, r *http.Request, id string) {
	cleanup, err := s.parseMultipart(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart form")
		return
	}
	fields, err := newsFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	uploads, closeUploads, err := formUploads(r, "images")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	defer closeUploads()
	article, err := s.app.UpdateNewsArticle(r.Context(), id, fields, uploads)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}
