package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// CreateUsersTable creates the users table with the seller onboarding columns
func CreateUsersTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_create_users_table",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS users (
					id UUID PRIMARY KEY,
					email VARCHAR(255) NOT NULL UNIQUE,
					username VARCHAR(50) UNIQUE,
					first_name VARCHAR(100),
					last_name VARCHAR(100),
					password_hash VARCHAR(255),
					is_active BOOLEAN DEFAULT TRUE,
					is_admin BOOLEAN DEFAULT FALSE,
					phone VARCHAR(20),
					address_street VARCHAR(255),
					address_city VARCHAR(100),
					address_state VARCHAR(100),
					address_zip_code VARCHAR(20),
					address_country VARCHAR(100),
					seller_status VARCHAR(30) NOT NULL DEFAULT 'not_seller',
					business_type VARCHAR(20),
					store_name VARCHAR(255),
					store_slug VARCHAR(255) UNIQUE,
					seller_application_date TIMESTAMP WITH TIME ZONE,
					verified_at TIMESTAMP WITH TIME ZONE,
					rejection_reason TEXT,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
				CREATE INDEX IF NOT EXISTS idx_users_seller_status ON users(seller_status);
				CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON users(deleted_at);
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`DROP TABLE IF EXISTS users;`).Error
		},
	}
}
