package server

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"setu/internal/domain/commerce"
	"setu/internal/usecase/listing"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type homePageData struct {
	Error     string
	Farmers   []listing.FarmerItem
	Catalogs  []listing.CatalogItem
	Scenarios []commerce.VoiceScenario
	Logs      []listing.NetworkLogItem
}

func (s *Server) handleHomePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := homePageData{Error: r.URL.Query().Get("error")}

	var err error
	if data.Farmers, err = s.svc.ListFarmers(ctx); err != nil {
		writeServiceError(w, err)
		return
	}
	if data.Catalogs, err = s.svc.ListCatalogs(ctx, 0, ""); err != nil {
		writeServiceError(w, err)
		return
	}
	if data.Scenarios, err = s.svc.Scenarios(ctx); err != nil {
		writeServiceError(w, err)
		return
	}
	if data.Logs, err = s.svc.NetworkFeed(ctx, 0, 50); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, "index.html", data); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleFarmerForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "invalid form")
		return
	}

	_, err := s.svc.RegisterFarmer(r.Context(), listing.RegisterFarmerInput{
		Name:          r.PostFormValue("name"),
		Location:      r.PostFormValue("location"),
		Language:      r.PostFormValue("language"),
		PaymentHandle: r.PostFormValue("payment_handle"),
	})
	if err != nil {
		redirectWithError(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTranslateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "invalid form")
		return
	}

	farmerID, err := strconv.ParseUint(r.PostFormValue("farmer_id"), 10, 64)
	if err != nil {
		redirectWithError(w, r, "select a farmer")
		return
	}

	_, err = s.svc.Translate(r.Context(), listing.TranslateInput{
		FarmerID:   farmerID,
		Transcript: r.PostFormValue("transcript"),
		Language:   r.PostFormValue("language"),
	})
	if err != nil {
		redirectWithError(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleBroadcastForm(w http.ResponseWriter, r *http.Request) {
	catalogID, ok := parseIDParam(w, r, "catalogID")
	if !ok {
		return
	}

	if _, err := s.svc.Broadcast(r.Context(), catalogID); err != nil {
		redirectWithError(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAcceptForm(w http.ResponseWriter, r *http.Request) {
	catalogID, ok := parseIDParam(w, r, "catalogID")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "invalid form")
		return
	}

	_, err := s.svc.AcceptBid(r.Context(), listing.AcceptBidInput{
		CatalogID: catalogID,
		BidID:     r.PostFormValue("bid_id"),
	})
	if err != nil {
		redirectWithError(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(message), http.StatusSeeOther)
}
