package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var serviceColumns = []string{"id", "name", "price", "duration_minutes", "description", "image"}

var stylistColumns = []string{"id", "name", "specialty", "image", "rating", "experience", "available_days", "work_start", "work_end"}

// Repository репозиторий справочных данных салона (услуги и мастера).
// Данные меняются только внешним управлением каталогом, здесь только чтение.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListServices возвращает все услуги каталога
func (r *Repository) ListServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// GetService возвращает услугу по идентификатору
func (r *Repository) GetService(ctx context.Context, id string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID, &svc.Name, &svc.Price, &svc.DurationMinutes, &svc.Description, &svc.Image,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &svc, nil
}

// ListStylists возвращает всех мастеров салона
func (r *Repository) ListStylists(ctx context.Context) ([]*domain.Stylist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stylistColumns...).
		From("stylists").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStylists - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStylists - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stylists := make([]*domain.Stylist, 0)
	for rows.Next() {
		stylist, err := scanStylist(rows)
		if err != nil {
			return nil, err
		}
		stylists = append(stylists, stylist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStylists - rows error: %v", ErrScanRow, err)
	}

	return stylists, nil
}

// GetStylist возвращает мастера по идентификатору
func (r *Repository) GetStylist(ctx context.Context, id int64) (*domain.Stylist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stylistColumns...).
		From("stylists").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStylist - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	stylist, err := scanStylist(row)
	if err == sql.ErrNoRows {
		return nil, ErrStylistNotFound
	}
	if err != nil {
		return nil, err
	}

	return stylist, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanStylist сканирует мастера и валидирует рабочее окно на границе
// с хранилищем: дальше по коду инвариант start < end считается данным
func scanStylist(row rowScanner) (*domain.Stylist, error) {
	var stylist domain.Stylist
	var days pq.Int64Array

	err := row.Scan(
		&stylist.ID,
		&stylist.Name,
		&stylist.Specialty,
		&stylist.Image,
		&stylist.Rating,
		&stylist.Experience,
		&days,
		&stylist.WorkingHours.Start,
		&stylist.WorkingHours.End,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanStylist - scan row: %v", ErrScanRow, err)
	}

	stylist.AvailableDays = []int64(days)

	if !stylist.WorkingHours.Start.IsBefore(stylist.WorkingHours.End) {
		return nil, fmt.Errorf("%w: stylist id=%d: %s >= %s",
			ErrInvalidWorkingHours, stylist.ID, stylist.WorkingHours.Start, stylist.WorkingHours.End)
	}

	return &stylist, nil
}

func scanServices(rows *sql.Rows) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0)

	for rows.Next() {
		var svc domain.Service
		err := rows.Scan(&svc.ID, &svc.Name, &svc.Price, &svc.DurationMinutes, &svc.Description, &svc.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: scanServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
