package server

import (
	"net/http"

	"github.com/NoobYoup/amis-nextjs-sub001/internal/app"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListActivities(w, r)
	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		s.handleCreateActivity(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleActivityByID(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "/api/activities/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		activity, err := s.app.GetActivity(r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, activity)
	case http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		s.handleUpdateActivity(w, r, id)
	case http.MethodDelete:
		if !s.requireAdmin(w, r) {
			return
		}
		if err := s.app.DeleteActivity(r.Context(), id); err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPaging(r)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = store.DefaultPublicPageSize
	}
	filter := store.ActivityFilter{
		Search:     r.URL.Query().Get("search"),
		CategoryID: r.URL.Query().Get("category"),
		Year:       queryYear(r),
		Paging:     store.Paging{Page: page, PageSize: limit},
	}
	result, err := s.app.ListActivities(r.Context(), filter)
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

// activityFields reads the multipart form fields shared by create and update.
func activityFields(r *http.Request) (app.ActivityFields, error) {
	date, err := formTime(r, "date")
	if err != nil {
		return app.ActivityFields{}, err
	}
	return app.ActivityFields{
		Title:       formString(r, "title"),
		Description: formString(r, "description"),
		Content:     formString(r, "content"),
		CategoryID:  formString(r, "categoryId"),
		Author:      formString(r, "author"),
		Date:        date,
	}, nil
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	cleanup, err := s.parseMultipart(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart form")
		return
	}
	fields, err := activityFields(r)
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
	activity, err := s.app.CreateActivity(r.Context(), fields, uploads)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request, id string) {
	cleanup, err := s.parseMultipart(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart form")
		return
	}
	fields, err := activityFields(r)
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
	activity, err := s.app.UpdateActivity(r.Context(), id, fields, uploads)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}
