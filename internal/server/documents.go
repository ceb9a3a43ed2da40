package server

import (
	"net/http"

	"github.com/NoobYoup/amis-nextjs-sub001/internal/app"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListDocuments(w, r)
	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		s.handleCreateDocument(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleDocumentByID(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "/api/documents/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		document, err := s.app.GetDocument(r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, document)
	case http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		s.handleUpdateDocument(w, r, id)
	case http.MethodDelete:
		if !s.requireAdmin(w, r) {
			return
		}
		if err := s.app.DeleteDocument(r.Context(), id); err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPaging(r)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = store.DefaultAdminPageSize
	}
	filter := store.DocumentFilter{
		Search:  r.URL.Query().Get("search"),
		DocType: r.URL.Query().Get("type"),
		Year:    queryYear(r),
		Paging:  store.Paging{Page: page, PageSize: limit},
	}
	result, err := s.app.ListDocuments(r.Context(), filter)
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

func documentFields(r *http.Request) (app.DocumentFields, error) {
	issuedDate, err := formTime(r, "issuedDate")
	if err != nil {
		return app.DocumentFields{}, err
	}
	isNew, err := formBool(r, "isNew")
	if err != nil {
		return app.DocumentFields{}, err
	}
	return app.DocumentFields{
		Title:      formString(r, "title"),
		Number:     formString(r, "number"),
		DocType:    formString(r, "type"),
		IssuedDate: issuedDate,
		IsNew:      isNew,
	}, nil
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	cleanup, err := s.parseMultipart(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart form")
		return
	}
	fields, err := documentFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	file, closeUpload, err := formUpload(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	defer closeUpload()
	document, err := s.app.CreateDocument(r.Context(), fields, file)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, document)
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request, id string) {
	cleanup, err := s.parseMultipart(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart form")
		return
	}
	fields, err := documentFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	file, closeUpload, err := formUpload(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	defer closeUpload()
	document, err := s.app.UpdateDocument(r.Context(), id, fields, file)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, document)
}
