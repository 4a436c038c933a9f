package ports

import (
	"context"
	"encoding/json"
	"errors"

	"setu/internal/domain/commerce"
)

var (
	ErrFarmerNotFound  = errors.New("farmer not found")
	ErrCatalogNotFound = errors.New("catalog not found")
	ErrStatusConflict  = errors.New("catalog status changed concurrently")
)

type Farmer struct {
	FarmerID      uint64
	Name          string
	Location      string
	Language      string
	PaymentHandle string
	CreatedAt     string
	UpdatedAt     string
}

type Catalog struct {
	CatalogID uint64
	FarmerID  uint64
	Listing   commerce.Listing
	Status    commerce.CatalogStatus
	CreatedAt string
	UpdatedAt string
}

type CatalogFilter struct {
	FarmerID uint64
	Status   commerce.CatalogStatus
}

type NetworkLog struct {
	LogID     uint64
	EventType commerce.NetworkEventType
	CatalogID uint64
	Payload   json.RawMessage
	CreatedAt string
}

type NetworkLogCreate struct {
	EventType commerce.NetworkEventType
	CatalogID uint64
	Payload   json.RawMessage
	CreatedAt string
}

type CommerceReadRepository interface {
	ListFarmers(ctx context.Context) ([]Farmer, error)
	GetFarmer(ctx context.Context, farmerID uint64) (Farmer, error)
	ListCatalogs(ctx context.Context, filter CatalogFilter) ([]Catalog, error)
	GetCatalog(ctx context.Context, catalogID uint64) (Catalog, error)
	ListNetworkLogsAfter(ctx context.Context, afterLogID uint64, limit int) ([]NetworkLog, error)
	ListCatalogNetworkLogs(ctx context.Context, catalogID uint64, eventType commerce.NetworkEventType) ([]NetworkLog, error)
}

type CommerceRepository interface {
	CommerceReadRepository
	CreateFarmer(ctx context.Context, farmer Farmer) (Farmer, error)
	CreateCatalog(ctx context.Context, catalog Catalog) (Catalog, error)
	// UpdateCatalogStatus moves a catalog from one status to another and
	// returns ErrStatusConflict when the row is no longer in `from`.
	UpdateCatalogStatus(ctx context.Context, catalogID uint64, from, to commerce.CatalogStatus, updatedAt string) error
	UpdateCatalogListing(ctx context.Context, catalogID uint64, listing commerce.Listing, updatedAt string) error
	AppendNetworkLog(ctx context.Context, input NetworkLogCreate) (NetworkLog, error)
}
