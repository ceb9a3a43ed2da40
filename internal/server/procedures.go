package server

import (
	"net/http"

	"github.com/NoobYoup/amis-nextjs-sub001/internal/app"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

func (s *Server) handleProcedures(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListProcedures(w, r)
	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		s.handleCreateProcedure(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleProcedureByID(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "/api/procedures/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		procedure, err := s.app.GetProcedure(r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, procedure)
	case http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		s.handleUpdateProcedure(w, r, id)
	case http.MethodDelete:
		if !s.requireAdmin(w, r) {
			return
		}
		if err := s.app.DeleteProcedure(r.Context(), id); err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleListProcedures(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPaging(r)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = store.DefaultAdminPageSize
	}
	filter := store.ProcedureFilter{
		Search: r.URL.Query().Get("search"),
		Field:  r.URL.Query().Get("field"),
		Agency: r.URL.Query().Get("agency"),
		Paging: store.Paging{Page: page, PageSize: limit},
	}
	result, err := s.app.ListProcedures(r.Context(), filter)
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

func procedureFields(r *http.Request) app.ProcedureFields {
	return app.ProcedureFields{
		Title:       formString(r, "title"),
		Description: formString(r, "description"),
		Field:       formString(r, "field"),
		Agency:      formString(r, "agency"),
	}
}

func (s *Server) handleCreateProcedure(w http.ResponseWriter, r *http.Request) {
	cleanup, err := s.parseMultipart(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart form")
		return
	}
	uploads, closeUploads, err := formUploads(r, "files")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	defer closeUploads()
	procedure, err := s.app.CreateProcedure(r.Context(), procedureFields(r), uploads)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, procedure)
}

func (s *Server) handleUpdateProcedure(w http.ResponseWriter, r *http.Request, id string) {
	cleanup, err := s.parseMultipart(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart form")
		return
	}
	uploads, closeUploads, err := formUploads(r, "files")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	defer closeUploads()
	// When keepFileIds is omitted the existing attachments are untouched;
	// when present, only the listed ids survive. Sending the field with a
	// single empty value yields an empty keep list and clears every
	// attachment.
	keepFileIDs, keepProvided := formSlice(r, "keepFileIds")
	procedure, err := s.app.UpdateProcedure(r.Context(), id, procedureFields(r), uploads, keepFileIDs, keepProvided)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, procedure)
}
