package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  type             TEXT        NOT NULL CHECK (type IN ('invoice', 'change-order', 'contract')),
  number           TEXT        NOT NULL,
  is_correction    BOOLEAN     NOT NULL DEFAULT FALSE,
  client_name      TEXT        NOT NULL DEFAULT '',
  client_email     TEXT        NOT NULL DEFAULT '',
  client_phone     TEXT        NOT NULL DEFAULT '',
  client_address   TEXT        NOT NULL DEFAULT '',
  property_address TEXT        NOT NULL DEFAULT '',
  project_name     TEXT        NOT NULL DEFAULT '',
  doc_date         TEXT        NOT NULL DEFAULT '',
  items            JSONB       NOT NULL DEFAULT '[]',
  notes            TEXT        NOT NULL DEFAULT '',
  signature_data   TEXT        NOT NULL DEFAULT '',
  status           TEXT        NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'sent', 'signed', 'paid')),
  subtotal         NUMERIC(14,4) NOT NULL DEFAULT 0,
  tax              NUMERIC(14,4) NOT NULL DEFAULT 0,
  tax_rate         NUMERIC(7,4)  NOT NULL DEFAULT 0,
  total            NUMERIC(14,4) NOT NULL DEFAULT 0,
  signed_file_url  TEXT        NOT NULL DEFAULT '',
  signed_file_name TEXT        NOT NULL DEFAULT '',
  details          JSONB       NOT NULL DEFAULT '{}',
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_type_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_type_created_at ON documents (type, created_at DESC);`,
	},
	{
		Name: "create_index_documents_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_status ON documents (status);`,
	},
	{
		Name: "create_table_leads",
		SQL: `CREATE TABLE IF NOT EXISTS leads (
  id                  UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name                TEXT        NOT NULL,
  email               TEXT        NOT NULL,
  phone               TEXT        NOT NULL DEFAULT '',
  address             TEXT        NOT NULL DEFAULT '',
  services            JSONB       NOT NULL DEFAULT '[]',
  project_description TEXT        NOT NULL DEFAULT '',
  timeline            TEXT        NOT NULL DEFAULT '',
  budget              TEXT        NOT NULL DEFAULT '',
  message             TEXT        NOT NULL DEFAULT '',
  source              TEXT        NOT NULL DEFAULT '',
  status              TEXT        NOT NULL DEFAULT 'new',
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_leads_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads (created_at DESC);`,
	},
	{
		Name: "create_table_reviews",
		SQL: `CREATE TABLE IF NOT EXISTS reviews (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name         TEXT        NOT NULL,
  email        TEXT        NOT NULL DEFAULT '',
  location     TEXT        NOT NULL DEFAULT '',
  service      TEXT        NOT NULL DEFAULT '',
  rating       INT         NOT NULL CHECK (rating BETWEEN 1 AND 5),
  text         TEXT        NOT NULL DEFAULT '',
  recommend    BOOLEAN     NOT NULL DEFAULT TRUE,
  project_year TEXT        NOT NULL DEFAULT '',
  approved     BOOLEAN     NOT NULL DEFAULT FALSE,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_reviews_approved",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reviews_approved ON reviews (approved, created_at DESC);`,
	},
	{
		Name: "create_table_field_notes",
		SQL: `CREATE TABLE IF NOT EXISTS field_notes (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  project_name     TEXT        NOT NULL DEFAULT '',
  client_name      TEXT        NOT NULL DEFAULT '',
  address          TEXT        NOT NULL DEFAULT '',
  service_type     TEXT        NOT NULL DEFAULT '',
  notes            TEXT        NOT NULL DEFAULT '',
  measurements     TEXT        NOT NULL DEFAULT '',
  materials_needed TEXT        NOT NULL DEFAULT '',
  estimated_cost   TEXT        NOT NULL DEFAULT '',
  next_steps       TEXT        NOT NULL DEFAULT '',
  photos           JSONB       NOT NULL DEFAULT '[]',
  status           TEXT        NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'complete')),
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_field_notes_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_field_notes_created_at ON field_notes (created_at DESC);`,
	},
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
