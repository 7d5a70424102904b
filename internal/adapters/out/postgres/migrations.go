package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Migrate brings the database schema up to date. Statements are idempotent,
// so running the migration on every startup is safe.
//
// The orders table delegates overlap protection to an exclusion constraint
// over the buffered rental period. The occupied column is derived from
// start_at, end_at and buffer_hours by a trigger: Postgres rejects a
// generated column here because timestamptz plus interval arithmetic is only
// STABLE, not IMMUTABLE.
func Migrate(ctx context.Context, db *gorm.DB) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`DO $$ BEGIN
            CREATE TYPE order_status AS ENUM (
                'reserved', 'paid', 'shipped', 'overdue', 'successful', 'canceled'
            );
        EXCEPTION
            WHEN duplicate_object THEN NULL;
        END $$`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            order_id TEXT NOT NULL UNIQUE,
            user_name TEXT NOT NULL,
            user_wechat TEXT NOT NULL,
            sku TEXT NOT NULL,
            start_at TIMESTAMPTZ NOT NULL,
            end_at TIMESTAMPTZ NOT NULL,
            buffer_hours INTEGER NOT NULL DEFAULT 3,
            occupied TSTZRANGE NOT NULL,
            status order_status NOT NULL DEFAULT 'reserved',
            locker_code TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CONSTRAINT orders_period_valid CHECK (start_at < end_at),
            CONSTRAINT orders_buffer_hours_valid CHECK (buffer_hours >= 0),
            CONSTRAINT orders_shipped_has_locker CHECK (status <> 'shipped' OR locker_code <> '')
        )`,
		`CREATE OR REPLACE FUNCTION orders_compute_occupied() RETURNS trigger AS $$
        BEGIN
            NEW.occupied := tstzrange(
                NEW.start_at - make_interval(hours => NEW.buffer_hours),
                NEW.end_at + make_interval(hours => NEW.buffer_hours),
                '[)'
            );
            RETURN NEW;
        END;
        $$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS orders_occupied ON orders`,
		`CREATE TRIGGER orders_occupied
            BEFORE INSERT OR UPDATE OF start_at, end_at, buffer_hours ON orders
            FOR EACH ROW EXECUTE FUNCTION orders_compute_occupied()`,
		`DO $$ BEGIN
            ALTER TABLE orders ADD CONSTRAINT orders_sku_occupied_excl
                EXCLUDE USING gist (sku WITH =, occupied WITH &&)
                WHERE (status IN ('reserved', 'paid', 'shipped', 'overdue'));
        EXCEPTION
            WHEN duplicate_table THEN NULL;
            WHEN duplicate_object THEN NULL;
        END $$`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status_end_at ON orders(status, end_at)`,
	}

	for _, stmt := range statements {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate orders schema: %w", err)
		}
	}

	return nil
}
