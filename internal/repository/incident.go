package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ovsienko/campus_cleanliness_monitoring/internal/models"
	"github.com/ovsienko/campus_cleanliness_monitoring/internal/service"
	"github.com/redis/go-redis/v9"
)

const reportCacheKey = "reports:latest"

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	reportTTL   time.Duration
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, reportTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		reportTTL:   reportTTL,
	}
}

// Ping проверяет соединение с хранилищем инцидентов
func (r *IncidentRepository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping incident storage: %w", err)
	}
	return nil
}

// CreateIncident создает новую запись об инциденте в бд
func (r *IncidentRepository) CreateIncident(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (detection_type, confidence, location_id, occurred_at, status, evidence_path)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		incident.DetectionType,
		incident.Confidence,
		incident.LocationID,
		incident.OccurredAt,
		incident.Status,
		incident.EvidencePath,
	).Scan(&incident.ID)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetSummaryStats возвращает общее число инцидентов, среднюю уверенность
// и число срочных инцидентов одной выборкой
func (r *IncidentRepository) GetSummaryStats(ctx context.Context) (*models.SummaryStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(confidence), 0)::float8,
			COUNT(*) FILTER (WHERE detection_type = ANY($1))
		FROM incidents;
	`
	stats := &models.SummaryStats{}
	err := r.db.QueryRow(ctx, query, models.AlertTypes).Scan(
		&stats.TotalDetections,
		&stats.AvgConfidence,
		&stats.TotalAlerts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary stats: %w", err)
	}
	return stats, nil
}

// CountByDetectionType возвращает количество инцидентов по каждой метке.
// Метки без инцидентов в результат не попадают.
func (r *IncidentRepository) CountByDetectionType(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT detection_type, COUNT(*)
		FROM incidents
		GROUP BY detection_type;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count by detection type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var detectionType string
		var count int
		if err := rows.Scan(&detectionType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan detection type row: %w", err)
		}
		counts[detectionType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error detection type iteration: %w", err)
	}
	return counts, nil
}

// CountByHour возвращает количество инцидентов по часам суток.
// Час берется из локального времени регистрации инцидента.
func (r *IncidentRepository) CountByHour(ctx context.Context) ([]models.HourlyBucket, error) {
	query := `
		SELECT EXTRACT(HOUR FROM occurred_at)::int AS hour, COUNT(*)
		FROM incidents
		GROUP BY hour
		ORDER BY hour;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count by hour: %w", err)
	}
	defer rows.Close()

	buckets := make([]models.HourlyBucket, 0)
	for rows.Next() {
		var b models.HourlyBucket
		if err := rows.Scan(&b.Hour, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan hourly row: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error hourly iteration: %w", err)
	}
	return buckets, nil
}

// CountByLocation возвращает количество инцидентов по зонам,
// отсортированное по убыванию
func (r *IncidentRepository) CountByLocation(ctx context.Context) ([]models.LocationCount, error) {
	query := `
		SELECT location_id, COUNT(*) AS issue_count
		FROM incidents
		GROUP BY location_id
		ORDER BY issue_count DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count by location: %w", err)
	}
	defer rows.Close()

	locations := make([]models.LocationCount, 0)
	for rows.Next() {
		var loc models.LocationCount
		if err := rows.Scan(&loc.LocationID, &loc.IssueCount); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error location iteration: %w", err)
	}
	return locations, nil
}

// GetReportFromCache пытается получить готовый отчет из Redis
func (r *IncidentRepository) GetReportFromCache(ctx context.Context) (*models.Report, error) {
	val, err := r.redisClient.Get(ctx, reportCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report from cache: %w", err)
	}

	report := &models.Report{}
	if err := json.Unmarshal(val, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report from cache: %w", err)
	}
	return report, nil
}

// SetReportCache сохраняет готовый отчет в Redis
func (r *IncidentRepository) SetReportCache(ctx context.Context, report *models.Report) error {
	val, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, reportCacheKey, val, r.reportTTL).Err(); err != nil {
		return fmt.Errorf("failed to set report in cache: %w", err)
	}
	return nil
}

// InvalidateReportCache удаляет отчет из Redis кэша
func (r *IncidentRepository) InvalidateReportCache(ctx context.Context) error {
	if err := r.redisClient.Del(ctx, reportCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}
