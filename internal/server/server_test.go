package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"setu/internal/domain/commerce"
	cacheinfra "setu/internal/infrastructure/cache"
	"setu/internal/infrastructure/persistence/sqlite/model"
	"setu/internal/infrastructure/persistence/sqlite/repository"
	"setu/internal/infrastructure/persistence/sqlite/uow"
	"setu/internal/ports"
	"setu/internal/usecase/listing"
)

func setupServer(t *testing.T) (*Server, *listing.Service) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "setu.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(&model.Farmer{}, &model.Catalog{}, &model.NetworkLog{}, &model.SetuKV{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	buyers, err := commerce.DefaultBuyerNetwork()
	if err != nil {
		t.Fatalf("default buyer network: %v", err)
	}

	hub := NewHub()
	t.Cleanup(hub.Close)

	svc := listing.NewService(
		context.Background(),
		repository.NewCommerceRepository(db),
		uow.NewUnitOfWork(db),
		cacheinfra.NewSQLiteCache(db),
		nil,
		[]ports.NetworkPublisher{hub},
		buyers,
		listing.SimulatorSettings{MaxBids: 2, MinDelay: 0, MaxDelay: 0},
	)
	t.Cleanup(svc.WaitForSimulations)

	srv, err := New(svc, hub)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, svc
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func registerFarmerAPI(t *testing.T, srv *Server) listing.FarmerItem {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/farmers/",
		`{"name":"Ramesh Patil","location":"Nashik","language":"hi-IN","payment_handle":"ramesh@upi"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register farmer status = %d, body %s", rec.Code, rec.Body.String())
	}
	var farmer listing.FarmerItem
	if err := json.Unmarshal(rec.Body.Bytes(), &farmer); err != nil {
		t.Fatalf("decode farmer: %v", err)
	}
	return farmer
}

func translateAPI(t *testing.T, srv *Server, farmerID uint64) listing.CatalogItem {
	t.Helper()

	body := fmt.Sprintf(`{"farmer_id":%d,"transcript":"200 kg tomatoes at 1800 rupees per quintal","language":"hi-IN"}`, farmerID)
	rec := doJSON(t, srv, http.MethodPost, "/api/catalogs/translate", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("translate status = %d, body %s", rec.Code, rec.Body.String())
	}
	var catalog listing.CatalogItem
	if err := json.Unmarshal(rec.Body.Bytes(), &catalog); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	return catalog
}

func TestRegisterFarmerAPI(t *testing.T) {
	srv, _ := setupServer(t)

	farmer := registerFarmerAPI(t, srv)
	if farmer.FarmerID == 0 {
		t.Fatal("expected a farmer id")
	}
	if farmer.Name != "Ramesh Patil" {
		t.Fatalf("name = %q", farmer.Name)
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/farmers/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list farmers status = %d", rec.Code)
	}
	var farmers []listing.FarmerItem
	if err := json.Unmarshal(rec.Body.Bytes(), &farmers); err != nil {
		t.Fatalf("decode farmers: %v", err)
	}
	if len(farmers) != 1 {
		t.Fatalf("farmers = %d, want 1", len(farmers))
	}
}

func TestRegisterFarmerAPIRejectsBadPayload(t *testing.T) {
	srv, _ := setupServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"short name", `{"name":"R"}`},
		{"handle without at", `{"name":"Ramesh Patil","payment_handle":"ramesh.upi"}`},
		{"not json", `name=Ramesh`},
	}
	for _, tc := range cases {
		rec := doJSON(t, srv, http.MethodPost, "/api/farmers/", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestGetFarmerAPINotFound(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/farmers/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestTranslateAPIUsesFallbackParser(t *testing.T) {
	srv, _ := setupServer(t)
	farmer := registerFarmerAPI(t, srv)

	catalog := translateAPI(t, srv, farmer.FarmerID)
	if catalog.Status != "DRAFT" {
		t.Fatalf("status = %q, want DRAFT", catalog.Status)
	}
	if catalog.Listing.Engine != commerce.EngineFallback {
		t.Fatalf("engine = %q, want %q", catalog.Listing.Engine, commerce.EngineFallback)
	}
	if catalog.Listing.Crop != "tomato" {
		t.Fatalf("crop = %q", catalog.Listing.Crop)
	}
}

func TestTranslateAPIUnknownFarmer(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/catalogs/translate",
		`{"farmer_id":99,"transcript":"200 kg tomatoes at 1800 rupees"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestBroadcastAPILifecycle(t *testing.T) {
	srv, svc := setupServer(t)
	farmer := registerFarmerAPI(t, srv)
	catalog := translateAPI(t, srv, farmer.FarmerID)

	path := fmt.Sprintf("/api/catalogs/%d/broadcast", catalog.CatalogID)
	rec := doJSON(t, srv, http.MethodPost, path, "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("broadcast status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result listing.BroadcastResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode broadcast result: %v", err)
	}
	if result.ScheduledBids < 1 {
		t.Fatalf("scheduled bids = %d, want at least 1", result.ScheduledBids)
	}
	svc.WaitForSimulations()

	// Re-broadcasting a BROADCASTED catalog violates the lifecycle.
	rec = doJSON(t, srv, http.MethodPost, path, "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("second broadcast status = %d, want 422", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/network/logs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("network logs status = %d", rec.Code)
	}
	var logs []listing.NetworkLogItem
	if err := json.Unmarshal(rec.Body.Bytes(), &logs); err != nil {
		t.Fatalf("decode logs: %v", err)
	}
	if len(logs) != 1+result.ScheduledBids {
		t.Fatalf("logs = %d, want %d", len(logs), 1+result.ScheduledBids)
	}
}

func TestAcceptBidAPIRejectsMalformedBidID(t *testing.T) {
	srv, _ := setupServer(t)
	farmer := registerFarmerAPI(t, srv)
	catalog := translateAPI(t, srv, farmer.FarmerID)

	path := fmt.Sprintf("/api/catalogs/%d/accept", catalog.CatalogID)
	rec := doJSON(t, srv, http.MethodPost, path, `{"bid_id":"not-a-uuid"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBroadcastSchemaAPI(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/schema/broadcast", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var schema map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &schema); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	if _, ok := schema["properties"]; !ok {
		t.Fatal("schema has no properties")
	}
}

func TestScenariosAPI(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/scenarios", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var scenarios []commerce.VoiceScenario
	if err := json.Unmarshal(rec.Body.Bytes(), &scenarios); err != nil {
		t.Fatalf("decode scenarios: %v", err)
	}
	if len(scenarios) == 0 {
		t.Fatal("expected demo scenarios")
	}
}

func TestHomePageRenders(t *testing.T) {
	srv, _ := setupServer(t)
	farmer := registerFarmerAPI(t, srv)
	translateAPI(t, srv, farmer.FarmerID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Ramesh Patil") {
		t.Fatal("page does not list the registered farmer")
	}
	if !strings.Contains(body, "DRAFT") {
		t.Fatal("page does not show the draft catalog")
	}
}

func TestFarmerFormRedirects(t *testing.T) {
	srv, _ := setupServer(t)

	form := strings.NewReader("name=Savita+Deshmukh&location=Lasalgaon&language=mr-IN&payment_handle=savita%40upi")
	req := httptest.NewRequest(http.MethodPost, "/farmers", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("location = %q", loc)
	}
}

func TestFarmerFormRedirectsWithErrorOnBlankName(t *testing.T) {
	srv, _ := setupServer(t)

	form := strings.NewReader("name=&location=Nashik")
	req := httptest.NewRequest(http.MethodPost, "/farmers", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/?error=") {
		t.Fatalf("location = %q, want an error redirect", loc)
	}
}

func TestNetworkWebsocketFeed(t *testing.T) {
	srv, _ := setupServer(t)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/network"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()

	// The server registers the connection just after the handshake; wait
	// for it before publishing.
	for i := 0; srv.hub.SubscriberCount() == 0; i++ {
		if i > 100 {
			t.Fatal("websocket subscriber never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := srv.hub.Publish(context.Background(), ports.SubjectCatalogBid, []byte(`{"amount":1710}`)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	var envelope wsEnvelope
	if err := json.Unmarshal(frame, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Subject != ports.SubjectCatalogBid {
		t.Fatalf("subject = %q", envelope.Subject)
	}
	if !strings.Contains(string(envelope.Data), "1710") {
		t.Fatalf("data = %s", envelope.Data)
	}
}
