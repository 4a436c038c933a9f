package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"setu/internal/domain/commerce"
	"setu/internal/errs"
	"setu/internal/infrastructure/persistence/sqlite/model"
	"setu/internal/ports"
)

type CommerceRepository struct {
	db *gorm.DB
}

var _ ports.CommerceRepository = (*CommerceRepository)(nil)

func NewCommerceRepository(db *gorm.DB) *CommerceRepository {
	return &CommerceRepository{db: db}
}

func (r *CommerceRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *CommerceRepository) ListFarmers(ctx context.Context) ([]ports.Farmer, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Farmer
	if err := db.Order("farmer_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query farmers")
	}

	items := make([]ports.Farmer, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapFarmer(row))
	}
	return items, nil
}

func (r *CommerceRepository) GetFarmer(ctx context.Context, farmerID uint64) (ports.Farmer, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Farmer{}, err
	}

	var row model.Farmer
	if err := db.Where("farmer_id = ?", farmerID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Farmer{}, ports.ErrFarmerNotFound
		}
		return ports.Farmer{}, errs.Wrap(err, "query farmer by id")
	}
	return mapFarmer(row), nil
}

func (r *CommerceRepository) CreateFarmer(ctx context.Context, farmer ports.Farmer) (ports.Farmer, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Farmer{}, err
	}

	row := model.Farmer{
		Name:          farmer.Name,
		Location:      farmer.Location,
		Language:      farmer.Language,
		PaymentHandle: farmer.PaymentHandle,
		CreatedAt:     farmer.CreatedAt,
		UpdatedAt:     farmer.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Farmer{}, errs.Wrap(err, "insert farmer")
	}
	return mapFarmer(row), nil
}

func (r *CommerceRepository) ListCatalogs(ctx context.Context, filter ports.CatalogFilter) ([]ports.Catalog, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Catalog{})
	if filter.FarmerID != 0 {
		query = query.Where("farmer_id = ?", filter.FarmerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var rows []model.Catalog
	if err := query.Order("catalog_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query catalogs")
	}

	items := make([]ports.Catalog, 0, len(rows))
	for _, row := range rows {
		item, err := mapCatalog(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *CommerceRepository) GetCatalog(ctx context.Context, catalogID uint64) (ports.Catalog, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Catalog{}, err
	}

	var row model.Catalog
	if err := db.Where("catalog_id = ?", catalogID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Catalog{}, ports.ErrCatalogNotFound
		}
		return ports.Catalog{}, errs.Wrap(err, "query catalog by id")
	}
	return mapCatalog(row)
}

func (r *CommerceRepository) CreateCatalog(ctx context.Context, catalog ports.Catalog) (ports.Catalog, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Catalog{}, err
	}

	// Enforce the farmer fk up front so callers get a typed error
	// instead of a driver constraint failure.
	var farmerCount int64
	if err := db.Model(&model.Farmer{}).Where("farmer_id = ?", catalog.FarmerID).Count(&farmerCount).Error; err != nil {
		return ports.Catalog{}, errs.Wrap(err, "check catalog owner")
	}
	if farmerCount == 0 {
		return ports.Catalog{}, ports.ErrFarmerNotFound
	}

	listing, err := json.Marshal(catalog.Listing)
	if err != nil {
		return ports.Catalog{}, errs.Wrap(err, "encode listing")
	}

	row := model.Catalog{
		FarmerID:  catalog.FarmerID,
		Listing:   listing,
		Status:    string(catalog.Status),
		CreatedAt: catalog.CreatedAt,
		UpdatedAt: catalog.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Catalog{}, errs.Wrap(err, "insert catalog")
	}
	return mapCatalog(row)
}

func (r *CommerceRepository) UpdateCatalogStatus(ctx context.Context, catalogID uint64, from, to commerce.CatalogStatus, updatedAt string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&model.Catalog{}).
		Where("catalog_id = ? AND status = ?", catalogID, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return errs.Wrap(result.Error, "update catalog status")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&model.Catalog{}).Where("catalog_id = ?", catalogID).Count(&count).Error; err != nil {
			return errs.Wrap(err, "check catalog existence")
		}
		if count == 0 {
			return ports.ErrCatalogNotFound
		}
		return ports.ErrStatusConflict
	}
	return nil
}

func (r *CommerceRepository) UpdateCatalogListing(ctx context.Context, catalogID uint64, listing commerce.Listing, updatedAt string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(listing)
	if err != nil {
		return errs.Wrap(err, "encode listing")
	}

	result := db.Model(&model.Catalog{}).
		Where("catalog_id = ?", catalogID).
		Updates(map[string]any{
			"listing":    encoded,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return errs.Wrap(result.Error, "update catalog listing")
	}
	if result.RowsAffected == 0 {
		return ports.ErrCatalogNotFound
	}
	return nil
}

func (r *CommerceRepository) ListNetworkLogsAfter(ctx context.Context, afterLogID uint64, limit int) ([]ports.NetworkLog, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.NetworkLog{}).Where("log_id > ?", afterLogID).Order("log_id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []model.NetworkLog
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query network logs")
	}
	return mapNetworkLogs(rows)
}

func (r *CommerceRepository) ListCatalogNetworkLogs(ctx context.Context, catalogID uint64, eventType commerce.NetworkEventType) ([]ports.NetworkLog, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.NetworkLog{}).Where("catalog_id = ?", catalogID).Order("log_id asc")
	if eventType != "" {
		query = query.Where("event_type = ?", string(eventType))
	}

	var rows []model.NetworkLog
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query catalog network logs")
	}
	return mapNetworkLogs(rows)
}

func (r *CommerceRepository) AppendNetworkLog(ctx context.Context, input ports.NetworkLogCreate) (ports.NetworkLog, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.NetworkLog{}, err
	}

	if _, err := commerce.ParseNetworkEventType(string(input.EventType)); err != nil {
		return ports.NetworkLog{}, err
	}

	row := model.NetworkLog{
		EventType: string(input.EventType),
		CatalogID: input.CatalogID,
		Payload:   []byte(input.Payload),
		CreatedAt: input.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.NetworkLog{}, errs.Wrap(err, "insert network log")
	}
	return ports.NetworkLog{
		LogID:     row.LogID,
		EventType: input.EventType,
		CatalogID: row.CatalogID,
		Payload:   input.Payload,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapFarmer(row model.Farmer) ports.Farmer {
	return ports.Farmer{
		FarmerID:      row.FarmerID,
		Name:          row.Name,
		Location:      row.Location,
		Language:      row.Language,
		PaymentHandle: row.PaymentHandle,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func mapCatalog(row model.Catalog) (ports.Catalog, error) {
	var listing commerce.Listing
	if len(row.Listing) > 0 {
		if err := json.Unmarshal(row.Listing, &listing); err != nil {
			return ports.Catalog{}, errs.Wrapf(err, "decode listing for catalog %d", row.CatalogID)
		}
	}

	status, err := commerce.ParseCatalogStatus(row.Status)
	if err != nil {
		return ports.Catalog{}, errs.Wrapf(err, "catalog %d", row.CatalogID)
	}

	return ports.Catalog{
		CatalogID: row.CatalogID,
		FarmerID:  row.FarmerID,
		Listing:   listing,
		Status:    status,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func mapNetworkLogs(rows []model.NetworkLog) ([]ports.NetworkLog, error) {
	items := make([]ports.NetworkLog, 0, len(rows))
	for _, row := range rows {
		eventType, err := commerce.ParseNetworkEventType(row.EventType)
		if err != nil {
			return nil, errs.Wrapf(err, "network log %d", row.LogID)
		}
		items = append(items, ports.NetworkLog{
			LogID:     row.LogID,
			EventType: eventType,
			CatalogID: row.CatalogID,
			Payload:   json.RawMessage(row.Payload),
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}
