package shop

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var productColumns = []string{"id", "name", "brand", "price", "sale_price", "image", "category", "bestseller", "is_new", "in_stock"}

// ProductFilter фильтр списка товаров
type ProductFilter struct {
	Category   *string // nil - все категории
	Bestseller *bool
	InStock    *bool
}

// Repository репозиторий для товаров и заказов магазина
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория магазина
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListProducts возвращает товары с опциональной фильтрацией
func (r *Repository) ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(productColumns...).
		From("products").
		OrderBy("id ASC")

	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.Bestseller != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"bestseller": *filter.Bestseller})
	}
	if filter.InStock != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"in_stock": *filter.InStock})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListProducts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProducts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.SalePrice,
			&p.Image, &p.Category, &p.Bestseller, &p.IsNew, &p.InStock)
		if err != nil {
			return nil, fmt.Errorf("%w: ListProducts - scan row: %v", ErrScanRow, err)
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProducts - rows error: %v", ErrScanRow, err)
	}

	return products, nil
}

// GetProduct возвращает товар по идентификатору
func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProduct - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Product
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.Brand, &p.Price, &p.SalePrice,
		&p.Image, &p.Category, &p.Bestseller, &p.IsNew, &p.InStock,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProduct - scan product: %v", ErrScanRow, err)
	}

	return &p, nil
}

// CreateOrder сохраняет размещённый заказ. ID присваивается здесь (uuid).
// Карточные данные формы checkout сюда не попадают и нигде не сохраняются.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOrder - marshal items: %v", ErrEncodeItems, err)
	}

	order.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"id",
			"user_id",
			"items",
			"total_price",
			"status",
			"ship_first_name",
			"ship_last_name",
			"ship_email",
			"ship_address",
			"ship_city",
			"ship_zip_code",
			"ship_country",
		).
		Values(
			order.ID,
			order.UserID,
			items,
			order.TotalPrice,
			order.Status,
			order.Shipping.FirstName,
			order.Shipping.LastName,
			order.Shipping.Email,
			order.Shipping.Address,
			order.Shipping.City,
			order.Shipping.ZipCode,
			order.Shipping.Country,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateOrder - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateOrder - execute insert: %v", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time

	return order, nil
}

// GetOrdersByUserID возвращает заказы пользователя, новые первыми
func (r *Repository) GetOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "user_id", "items", "total_price", "status",
		"ship_first_name", "ship_last_name", "ship_email", "ship_address",
		"ship_city", "ship_zip_code", "ship_country", "created_at",
	).
		From("orders").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrdersByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrdersByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		var items []byte
		var createdAt sql.NullTime

		err := rows.Scan(
			&order.ID, &order.UserID, &items, &order.TotalPrice, &order.Status,
			&order.Shipping.FirstName, &order.Shipping.LastName, &order.Shipping.Email,
			&order.Shipping.Address, &order.Shipping.City, &order.Shipping.ZipCode,
			&order.Shipping.Country, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOrdersByUserID - scan row: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("%w: GetOrdersByUserID - unmarshal items: %v", ErrScanRow, err)
		}

		order.CreatedAt = createdAt.Time
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOrdersByUserID - rows error: %v", ErrScanRow, err)
	}

	return orders, nil
}
