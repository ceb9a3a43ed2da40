package server

import (
	"net/http"

	"github.com/NoobYoup/amis-nextjs-sub001/internal/app"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

func (s *Server) handleReforms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListReforms(w, r)
	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		s.handleCreateReform(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleReformByID(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "/api/reforms/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		reform, err := s.app.GetReform(r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, reform)
	case http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		s.handleUpdateReform(w, r, id)
	case http.MethodDelete:
		if !s.requireAdmin(w, r) {
			return
		}
		if err := s.app.DeleteReform(r.Context(), id); err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleListReforms(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPaging(r)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = store.DefaultAdminPageSize
	}
	filter := store.ReformFilter{
		Search: r.URL.Query().Get("search"),
		Year:   queryYear(r),
		Paging: store.Paging{Page: page, PageSize: limit},
	}
	result, err := s.app.ListReforms(r.Context(), filter)
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

func reformFields(r *http.Request) (app.ReformFields, error) {
	year, err := formInt(r, "year")
	if err != nil {
		return app.ReformFields{}, err
	}
	return app.ReformFields{
		Title:       formString(r, "title"),
		Description: formString(r, "description"),
		Year:        year,
	}, nil
}

func (s *Server) handleCreateReform(w http.ResponseWriter, r *http.Request) {
	cleanup, err := s.parseMultipart(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart form")
		return
	}
	fields, err := reformFields(r)
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
	reform, err := s.app.CreateReform(r.Context(), fields, uploads)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reform)
}

func (s *Server) handleUpdateReform(w http.ResponseWriter, r *http.Request, id string) {
	cleanup, err := s.parseMultipart(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart form")
		return
	}
	fields, err := reformFields(r)
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
	reform, err := s.app.UpdateReform(r.Context(), id, fields, uploads)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reform)
}
