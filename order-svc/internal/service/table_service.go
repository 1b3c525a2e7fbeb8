package service

import (
	"context"
	"database/sql"
	"errors"

	"tableorder/order-svc/internal/domain"

	"github.com/google/uuid"
)

type TableInput struct {
	Number   int                `json:"number"`
	Capacity int                `json:"capacity"`
	Status   domain.TableStatus `json:"status"`
}

func (in TableInput) Validate() error {
	if in.Number <= 0 {
		return invalid("number must be a positive integer")
	}
	if in.Capacity < 1 {
		return invalid("capacity must be at least 1")
	}
	switch in.Status {
	case "", domain.TableAvailable, domain.TableOccupied, domain.TableReserved:
		return nil
	}
	return invalid("unknown table status %q", in.Status)
}

type TableService struct {
	repo    TableRepository
	catalog CatalogRepository
	qr      QRGenerator
}

func NewTableService(repo TableRepository, catalog CatalogRepository, qr QRGenerator) *TableService {
	return &TableService{repo: repo, catalog: catalog, qr: qr}
}

func (s *TableService) CreateTable(ctx context.Context, caller domain.Caller, in TableInput) (*domain.Table, error) {
	if caller.RestaurantID <= 0 {
		return nil, ErrForbidden
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	table := &domain.Table{
		RestaurantID: caller.RestaurantID,
		Number:       in.Number,
		Capacity:     in.Capacity,
		Status:       in.Status,
		QRCode:       uuid.NewString(),
		IsActive:     true,
	}
	if table.Status == "" {
		table.Status = domain.TableAvailable
	}

	if err := s.repo.CreateTable(ctx, table); err != nil {
		return nil, upstream("create table", err)
	}
	return table, nil
}

func (s *TableService) GetTable(ctx context.Context, caller domain.Caller, id int) (*domain.Table, error) {
	table, err := s.repo.GetTable(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrTableNotFound, "get table")
	}
	if !caller.Owns(table.RestaurantID) {
		return nil, ErrForbidden
	}
	return table, nil
}

func (s *TableService) ListTables(ctx context.Context, caller domain.Caller) ([]domain.Table, error) {
	if caller.RestaurantID <= 0 {
		return nil, ErrForbidden
	}
	tables, err := s.repo.ListTables(ctx, caller.RestaurantID)
	if err != nil {
		return nil, upstream("list tables", err)
	}
	if tables == nil {
		tables = []domain.Table{}
	}
	return tables, nil
}

// ResolveQRCode is the customer scan: the table behind a QR id plus the menu currently served.
func (s *TableService) ResolveQRCode(ctx context.Context, qrCode string) (*domain.ScanResult, error) {
	if _, err := uuid.Parse(qrCode); err != nil {
		return nil, ErrTableNotFound
	}

	table, err := s.repo.GetTableByQRCode(ctx, qrCode)
	if err != nil {
		return nil, lookupErr(err, ErrTableNotFound, "get table by qr code")
	}
	if !table.IsActive {
		return nil, ErrTableNotFound
	}

	result := &domain.ScanResult{Table: *table}
	menu, err := s.catalog.GetActiveMenu(ctx, table.RestaurantID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, upstream("get active menu", err)
	default:
		result.Menu = menu
	}
	return result, nil
}

func (s *TableService) TableQRImage(ctx context.Context, caller domain.Caller, id int) ([]byte, error) {
	table, err := s.GetTable(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(table.QRCode)
	if err != nil {
		return nil, upstream("generate qr code", err)
	}
	return png, nil
}
