package main

import (
	"fmt"
	"os"

	"wisefido-breath/internal/config"
	"wisefido-breath/internal/database"
)

// 创建 wisefido-breath 使用的两张表
const schema = `
CREATE TABLE IF NOT EXISTS breath_events (
	event_id      UUID PRIMARY KEY,
	session_id    UUID NOT NULL,
	device_id     VARCHAR(64) NOT NULL,
	event_type    VARCHAR(16) NOT NULL,
	confirmed_at  TIMESTAMPTZ NOT NULL,
	duration_secs DOUBLE PRECISION NOT NULL,
	breath_rate   DOUBLE PRECISION NOT NULL,
	ahi           DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_breath_events_session
	ON breath_events (session_id, confirmed_at);

CREATE TABLE IF NOT EXISTS session_summaries (
	session_id         UUID PRIMARY KEY,
	device_id          VARCHAR(64) NOT NULL,
	date               VARCHAR(10) NOT NULL,
	avg_breath_rate    DOUBLE PRECISION NOT NULL,
	min_breath_rate    DOUBLE PRECISION NOT NULL,
	max_breath_rate    DOUBLE PRECISION NOT NULL,
	avg_peaks_in_20    DOUBLE PRECISION NOT NULL,
	apnea_events       INTEGER NOT NULL,
	hypopnea_events    INTEGER NOT NULL,
	ahi                DOUBLE PRECISION NOT NULL,
	longest_pause_secs DOUBLE PRECISION NOT NULL,
	total_sleep_secs   DOUBLE PRECISION NOT NULL,
	started_at         TIMESTAMPTZ NOT NULL,
	ended_at           TIMESTAMPTZ NOT NULL
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create tables: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("breath_events and session_summaries tables are ready")
}
