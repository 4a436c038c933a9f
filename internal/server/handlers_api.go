package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"setu/internal/usecase/listing"
)

type registerFarmerRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=120"`
	Location      string `json:"location" validate:"max=200"`
	Language      string `json:"language" validate:"omitempty,min=2,max=8"`
	PaymentHandle string `json:"payment_handle" validate:"omitempty,contains=@"`
}

type translateRequest struct {
	FarmerID   uint64 `json:"farmer_id" validate:"required"`
	Transcript string `json:"transcript" validate:"required,min=3"`
	Language   string `json:"language" validate:"omitempty,min=2,max=8"`
}

type acceptBidRequest struct {
	BidID string `json:"bid_id" validate:"required,uuid4"`
}

func (s *Server) handleRegisterFarmer(w http.ResponseWriter, r *http.Request) {
	var req registerFarmerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	farmer, err := s.svc.RegisterFarmer(r.Context(), listing.RegisterFarmerInput{
		Name:          req.Name,
		Location:      req.Location,
		Language:      req.Language,
		PaymentHandle: req.PaymentHandle,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, farmer)
}

func (s *Server) handleListFarmers(w http.ResponseWriter, r *http.Request) {
	farmers, err := s.svc.ListFarmers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, farmers)
}

func (s *Server) handleGetFarmer(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := parseIDParam(w, r, "farmerID")
	if !ok {
		return
	}

	farmer, err := s.svc.GetFarmer(r.Context(), farmerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, farmer)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	catalog, err := s.svc.Translate(r.Context(), listing.TranslateInput{
		FarmerID:   req.FarmerID,
		Transcript: req.Transcript,
		Language:   req.Language,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, catalog)
}

func (s *Server) handleListCatalogs(w http.ResponseWriter, r *http.Request) {
	var farmerID uint64
	if raw := r.URL.Query().Get("farmer_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "farmer_id must be numeric")
			return
		}
		farmerID = parsed
	}

	catalogs, err := s.svc.ListCatalogs(r.Context(), farmerID, r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogs)
}

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	catalogID, ok := parseIDParam(w, r, "catalogID")
	if !ok {
		return
	}

	detail, err := s.svc.GetCatalog(r.Context(), catalogID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	catalogID, ok := parseIDParam(w, r, "catalogID")
	if !ok {
		return
	}

	result, err := s.svc.Broadcast(r.Context(), catalogID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, result)
}

func (s *Server) handleAcceptBid(w http.ResponseWriter, r *http.Request) {
	catalogID, ok := parseIDParam(w, r, "catalogID")
	if !ok {
		return
	}

	var req acceptBidRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.svc.AcceptBid(r.Context(), listing.AcceptBidInput{
		CatalogID: catalogID,
		BidID:     req.BidID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleNetworkFeed(w http.ResponseWriter, r *http.Request) {
	var after uint64
	if raw := r.URL.Query().Get("after"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "after must be numeric")
			return
		}
		after = parsed
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be numeric")
			return
		}
		limit = parsed
	}

	feed, err := s.svc.NetworkFeed(r.Context(), after, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.svc.Scenarios(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scenarios)
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
