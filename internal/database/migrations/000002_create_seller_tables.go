package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// CreateSellerTables creates the verification document and status history tables
func CreateSellerTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_create_seller_tables",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS verification_documents (
					id UUID PRIMARY KEY,
					user_id UUID NOT NULL REFERENCES users(id),
					type VARCHAR(50) NOT NULL,
					url TEXT NOT NULL,
					uploaded_at TIMESTAMP WITH TIME ZONE,
					verification_status VARCHAR(20) NOT NULL DEFAULT 'pending_review',
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE UNIQUE INDEX IF NOT EXISTS idx_verification_documents_user_type
					ON verification_documents(user_id, type);

				CREATE TABLE IF NOT EXISTS seller_status_histories (
					id UUID PRIMARY KEY,
					user_id UUID NOT NULL REFERENCES users(id),
					previous_status VARCHAR(30) NOT NULL,
					new_status VARCHAR(30) NOT NULL,
					reason TEXT,
					changed_by UUID,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX IF NOT EXISTS idx_seller_status_histories_user_id
					ON seller_status_histories(user_id);
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`
				DROP TABLE IF EXISTS seller_status_histories;
				DROP TABLE IF EXISTS verification_documents;
			`).Error
		},
	}
}
