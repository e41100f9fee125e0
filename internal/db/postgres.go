package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ke.kejani.api/internal/config"
)

// InitPostgres initializes and returns a PostgreSQL connection pool
func InitPostgres(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Set connection pool settings
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30
	poolConfig.HealthCheckPeriod = time.Minute * 5

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Create tables if they don't exist
	if err := createTables(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pool, nil
}

// createTables creates all required tables if they don't exist
func createTables(ctx context.Context, pool *pgxpool.Pool) error {
	// Users table - stores Firebase user information plus marketplace role
	usersTable := `
		CREATE TABLE IF NOT EXISTS users (
			uid VARCHAR(255) PRIMARY KEY,
			display_name VARCHAR(255),
			email VARCHAR(255) UNIQUE NOT NULL,
			token TEXT,
			phone_number VARCHAR(20),
			role VARCHAR(20) NOT NULL DEFAULT 'TENANT' CHECK (role IN ('TENANT', 'LANDLORD')),
			email_verified BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Listings table - rental units offered by landlords
	listingsTable := `
		CREATE TABLE IF NOT EXISTS listings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			landlord_uid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			title VARCHAR(500) NOT NULL,
			description TEXT,
			neighborhood VARCHAR(255) NOT NULL,
			property_type VARCHAR(20) NOT NULL CHECK (property_type IN ('APARTMENT', 'BEDSITTER', 'STUDIO', 'HOUSE', 'TOWNHOUSE', 'COMMERCIAL')),
			monthly_rent BIGINT NOT NULL CHECK (monthly_rent >= 0),
			square_feet BIGINT NOT NULL DEFAULT 0 CHECK (square_feet >= 0),
			bedrooms INTEGER NOT NULL DEFAULT 0,
			bathrooms INTEGER NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'AVAILABLE' CHECK (status IN ('AVAILABLE', 'RENTED', 'ARCHIVED')),
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Listing photos - ordered photo URLs per listing
	listingPhotosTable := `
		CREATE TABLE IF NOT EXISTS listing_photos (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			listing_id UUID NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			upload_order INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Listing amenities - free-form amenity names per listing
	listingAmenitiesTable := `
		CREATE TABLE IF NOT EXISTS listing_amenities (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			listing_id UUID NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(listing_id, name)
		);
	`

	// Inquiries - tenant questions about a listing and landlord replies
	inquiriesTable := `
		CREATE TABLE IF NOT EXISTS inquiries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			listing_id UUID NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
			tenant_uid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			landlord_uid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			message TEXT NOT NULL,
			response TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'RESPONDED', 'CLOSED')),
			channel_id VARCHAR(255),
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Documents - leases, receipts and other files users keep
	documentsTable := `
		CREATE TABLE IF NOT EXISTS documents (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			owner_uid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			listing_id UUID REFERENCES listings(id) ON DELETE SET NULL,
			title VARCHAR(500) NOT NULL,
			doc_type VARCHAR(20) NOT NULL CHECK (doc_type IN ('LEASE', 'RECEIPT', 'INSPECTION', 'OTHER')),
			file_path TEXT NOT NULL,
			file_size BIGINT,
			mime_type VARCHAR(100),
			created_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Payments - M-Pesa STK push attempts and their outcomes
	paymentsTable := `
		CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			payer_uid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			listing_id UUID REFERENCES listings(id) ON DELETE SET NULL,
			amount BIGINT NOT NULL CHECK (amount > 0),
			phone_number VARCHAR(20) NOT NULL,
			account_reference VARCHAR(100) NOT NULL,
			merchant_request_id VARCHAR(100),
			checkout_request_id VARCHAR(100) UNIQUE,
			mpesa_receipt VARCHAR(100),
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'COMPLETED', 'FAILED')),
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Saved searches - named criteria users re-run and get alerts for
	savedSearchesTable := `
		CREATE TABLE IF NOT EXISTS saved_searches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_uid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			criteria JSONB NOT NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Create indexes for better performance
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_landlord_uid ON listings(landlord_uid);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_neighborhood ON listings(neighborhood);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_property_type ON listings(property_type);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_monthly_rent ON listings(monthly_rent);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_listing_photos_listing_id ON listing_photos(listing_id, upload_order);`,
		`CREATE INDEX IF NOT EXISTS idx_listing_amenities_listing_id ON listing_amenities(listing_id);`,
		`CREATE INDEX IF NOT EXISTS idx_inquiries_tenant_uid ON inquiries(tenant_uid);`,
		`CREATE INDEX IF NOT EXISTS idx_inquiries_landlord_uid ON inquiries(landlord_uid);`,
		`CREATE INDEX IF NOT EXISTS idx_inquiries_listing_id ON inquiries(listing_id);`,
		`CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_owner_uid ON documents(owner_uid);`,
		`CREATE INDEX IF NOT EXISTS idx_payments_payer_uid ON payments(payer_uid);`,
		`CREATE INDEX IF NOT EXISTS idx_payments_checkout_request_id ON payments(checkout_request_id);`,
		`CREATE INDEX IF NOT EXISTS idx_payments_created_at ON payments(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_saved_searches_user_uid ON saved_searches(user_uid);`,
	}

	// Execute table creation statements
	tables := []string{usersTable, listingsTable, listingPhotosTable, listingAmenitiesTable, inquiriesTable, documentsTable, paymentsTable, savedSearchesTable}

	for _, table := range tables {
		if _, err := pool.Exec(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Failure reason arrived after launch; keep existing databases usable
	if _, err := pool.Exec(ctx, `ALTER TABLE payments ADD COLUMN IF NOT EXISTS failure_reason TEXT;`); err != nil {
		return fmt.Errorf("failed to add failure_reason column: %w", err)
	}

	// Execute index creation statements
	for _, index := range indexes {
		if _, err := pool.Exec(ctx, index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
