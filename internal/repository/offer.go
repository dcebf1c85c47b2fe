package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jdavril/brocante/internal/common"
	"github.com/jdavril/brocante/internal/models"
)

// pageSize is the fixed number of results per search page.
const pageSize = 4

// PostgresOfferRepository implements offer persistence against a PostgreSQL database.
type PostgresOfferRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresOfferRepository creates a new PostgresOfferRepository using the
// provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresOfferRepository(db *sql.DB) *PostgresOfferRepository {
	return &PostgresOfferRepository{DB: db}
}

// Create persists a new offer.
func (r *PostgresOfferRepository) Create(ctx context.Context, offer *models.Offer) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO offers (id, product_name, product_description, product_price,
			brand, size, condition, color, city, product_image, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, offer.ID, offer.ProductName, offer.ProductDescription, offer.ProductPrice,
		offer.ProductDetails.Brand, offer.ProductDetails.Size, offer.ProductDetails.Condition,
		offer.ProductDetails.Color, offer.ProductDetails.City, offer.ProductImage, offer.Owner.ID)
	if err != nil {
		return fmt.Errorf("create offer: %w", err)
	}
	return nil
}

// GetByID fetches a single offer. Returns common.ErrNotFound if the id
// does not resolve.
func (r *PostgresOfferRepository) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	var offer models.Offer
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, product_name, product_description, product_price,
			brand, size, condition, color, city, product_image, owner_id
		FROM offers WHERE id = $1
	`, id).Scan(&offer.ID, &offer.ProductName, &offer.ProductDescription, &offer.ProductPrice,
		&offer.ProductDetails.Brand, &offer.ProductDetails.Size, &offer.ProductDetails.Condition,
		&offer.ProductDetails.Color, &offer.ProductDetails.City, &offer.ProductImage, &offer.Owner.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return &offer, nil
}

// Update overwrites every mutable column of the offer. Ownership never changes.
func (r *PostgresOfferRepository) Update(ctx context.Context, offer *models.Offer) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE offers SET product_name = $2, product_description = $3, product_price = $4,
			brand = $5, size = $6, condition = $7, color = $8, city = $9, product_image = $10
		WHERE id = $1
	`, offer.ID, offer.ProductName, offer.ProductDescription, offer.ProductPrice,
		offer.ProductDetails.Brand, offer.ProductDetails.Size, offer.ProductDetails.Condition,
		offer.ProductDetails.Color, offer.ProductDetails.City, offer.ProductImage)
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	return nil
}

// Search returns one page of offer summaries matching the filter, sorted by
// ascending price. An empty title matches every offer; nil bounds leave the
// price range open on that side.
func (r *PostgresOfferRepository) Search(ctx context.Context, filter models.OfferFilter) ([]models.OfferSummary, error) {
	query := `SELECT product_name, product_price FROM offers WHERE product_name ILIKE '%' || $1 || '%'`
	args := []any{filter.Title}

	if filter.PriceMin != nil {
		args = append(args, *filter.PriceMin)
		query += fmt.Sprintf(" AND product_price >= $%d", len(args))
	}
	if filter.PriceMax != nil {
		args = append(args, *filter.PriceMax)
		query += fmt.Sprintf(" AND product_price <= $%d", len(args))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	query += fmt.Sprintf(" ORDER BY product_price ASC LIMIT %d OFFSET %d", pageSize, pageSize*(page-1))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search offers: %w", err)
	}
	defer rows.Close()

	var summaries []models.OfferSummary
	for rows.Next() {
		var s models.OfferSummary
		if err := rows.Scan(&s.ProductName, &s.ProductPrice); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search offers: %w", err)
	}
	return summaries, nil
}
