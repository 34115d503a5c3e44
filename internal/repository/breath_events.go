package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"wisefido-breath/internal/models"
)

// BreathEventsRepository 呼吸事件与会话汇总仓库
type BreathEventsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBreathEventsRepository 创建仓库
func NewBreathEventsRepository(db *sql.DB, logger *zap.Logger) *BreathEventsRepository {
	return &BreathEventsRepository{
		db:     db,
		logger: logger,
	}
}

// InsertEvent 插入一条已确认的呼吸事件
func (r *BreathEventsRepository) InsertEvent(ctx context.Context, event *models.BreathEvent) error {
	if event.EventID == "" {
		return fmt.Errorf("event_id is required")
	}
	if event.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}

	query := `
		INSERT INTO breath_events (
			event_id,
			session_id,
			device_id,
			event_type,
			confirmed_at,
			duration_secs,
			breath_rate,
			ahi
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.EventID,
		event.SessionID,
		event.DeviceID,
		event.EventType,
		event.ConfirmedAt,
		event.DurationSecs,
		event.BreathRate,
		event.AHI,
	)
	if err != nil {
		return fmt.Errorf("failed to insert breath event: %w", err)
	}

	return nil
}

// ListEventsBySession 按会话列出呼吸事件，按确认时间升序
func (r *BreathEventsRepository) ListEventsBySession(ctx context.Context, sessionID string) ([]models.BreathEvent, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}

	query := `
		SELECT
			event_id,
			session_id,
			device_id,
			event_type,
			confirmed_at,
			duration_secs,
			breath_rate,
			ahi
		FROM breath_events
		WHERE session_id = $1
		ORDER BY confirmed_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query breath events: %w", err)
	}
	defer rows.Close()

	var events []models.BreathEvent
	for rows.Next() {
		var e models.BreathEvent
		if err := rows.Scan(
			&e.EventID,
			&e.SessionID,
			&e.DeviceID,
			&e.EventType,
			&e.ConfirmedAt,
			&e.DurationSecs,
			&e.BreathRate,
			&e.AHI,
		); err != nil {
			return nil, fmt.Errorf("failed to scan breath event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate breath events: %w", err)
	}

	return events, nil
}

// InsertSummary 插入会话汇总
func (r *BreathEventsRepository) InsertSummary(ctx context.Context, s *models.SessionSummary) error {
	if s.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}

	query := `
		INSERT INTO session_summaries (
			session_id,
			device_id,
			date,
			avg_breath_rate,
			min_breath_rate,
			max_breath_rate,
			avg_peaks_in_20,
			apnea_events,
			hypopnea_events,
			ahi,
			longest_pause_secs,
			total_sleep_secs,
			started_at,
			ended_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.SessionID,
		s.DeviceID,
		s.Date,
		s.AvgBreathRate,
		s.MinBreathRate,
		s.MaxBreathRate,
		s.AvgPeaksIn20,
		s.ApneaEvents,
		s.HypopneaEvents,
		s.AHI,
		s.LongestPauseSecs,
		s.TotalSleepSecs,
		s.StartedAt,
		s.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session summary: %w", err)
	}

	return nil
}
