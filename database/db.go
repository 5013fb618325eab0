package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var ErrNotFound = errors.New("itinerary view not found")

// ─── Models ──────────────────────────────────────────────────────────────────

// ItineraryView is a stored render request: the itinerary and the live search
// results exactly as they were submitted.
type ItineraryView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ItineraryJSON string    `json:"itinerary_json"`
	FlightsJSON   string    `json:"flights_json"`
	HotelsJSON    string    `json:"hotels_json"`
	TravelerName  string    `json:"traveler_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// Config holds connection settings. DSN wins when set.
type Config struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	PingAttempts int
	PingDelay    time.Duration
}

// Store persists itinerary views in PostgreSQL.
type Store struct {
	db *sql.DB
}

// ─── Init ─────────────────────────────────────────────────────────────────────

// Open connects, waits for the database to accept connections and migrates.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	attempts := cfg.PingAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		log.Printf("⏳ Waiting for database... attempt %d/%d: %v", i+1, attempts, err)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(cfg.PingDelay):
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Println("✅ Database connected and migrated")
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ─── Migrations ───────────────────────────────────────────────────────────────

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS itinerary_views (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL DEFAULT '',
		itinerary_json TEXT NOT NULL,
		flights_json   TEXT NOT NULL DEFAULT '[]',
		hotels_json    TEXT NOT NULL DEFAULT '[]',
		traveler_name  TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_itinerary_views_created_at
		ON itinerary_views(created_at DESC)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

func (s *Store) SaveView(ctx context.Context, v *ItineraryView) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO itinerary_views (id, title, itinerary_json, flights_json, hotels_json, traveler_name)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.Title, v.ItineraryJSON, v.FlightsJSON, v.HotelsJSON, v.TravelerName)
	if err != nil {
		return fmt.Errorf("save itinerary view %s: %w", v.ID, err)
	}
	return nil
}

func (s *Store) GetView(ctx context.Context, id string) (*ItineraryView, error) {
	v := &ItineraryView{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, itinerary_json, flights_json, hotels_json, traveler_name, created_at
		FROM itinerary_views WHERE id = $1`, id).
		Scan(&v.ID, &v.Title, &v.ItineraryJSON, &v.FlightsJSON, &v.HotelsJSON,
			&v.TravelerName, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get itinerary view %s: %w", id, err)
	}
	return v, nil
}
