package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ovsienko/campus_cleanliness_monitoring/internal/config"
	"github.com/ovsienko/campus_cleanliness_monitoring/internal/models"
	"github.com/ovsienko/campus_cleanliness_monitoring/internal/webhook"
	"github.com/sirupsen/logrus"
)

// Ошибки уровня сервиса. Хендлер сопоставляет их с HTTP-статусами через errors.Is.
var (
	// ErrMissingImage - в запросе отсутствует файл изображения
	ErrMissingImage = errors.New("no image file provided")
	// ErrStorageUnavailable - хранилище инцидентов недоступно
	ErrStorageUnavailable = errors.New("incident storage unavailable")
	// ErrInference - классификатор вернул ошибку
	ErrInference = errors.New("ai model inference failed")
	// ErrPersistence - не удалось сохранить инцидент или улику
	ErrPersistence = errors.New("incident logging failed")
)

// IncidentRepository определяет контракт для работы с хранилищем инцидентов
type IncidentRepository interface {
	Ping(ctx context.Context) error
	CreateIncident(ctx context.Context, incident *models.Incident) error
	GetSummaryStats(ctx context.Context) (*models.SummaryStats, error)
	CountByDetectionType(ctx context.Context) (map[string]int, error)
	CountByHour(ctx context.Context) ([]models.HourlyBucket, error)
	CountByLocation(ctx context.Context) ([]models.LocationCount, error)
	GetReportFromCache(ctx context.Context) (*models.Report, error)
	SetReportCache(ctx context.Context, report *models.Report) error
	InvalidateReportCache(ctx context.Context) error
}

// Classifier определяет контракт классификатора изображений.
// Вход - путь к сохраненной улике, выход - метка, уверенность и флаг срочности.
type Classifier interface {
	Classify(ctx context.Context, imagePath string) (*models.Classification, error)
}

// EvidenceStore определяет контракт хранилища изображений-улик
type EvidenceStore interface {
	Save(ctx context.Context, locationID string, image io.Reader) (string, error)
}

// IncidentService определяет контракт бизнес-логики мониторинга чистоты
type IncidentService interface {
	DetectAndReport(ctx context.Context, image io.Reader, locationID string) (*models.DetectionReport, error)
	GetReports(ctx context.Context) (*models.Report, error)
	Ping(ctx context.Context) error
}

type incidentService struct {
	repo       IncidentRepository
	classifier Classifier
	evidence   EvidenceStore
	logger     *logrus.Logger
	cfg        *config.Config
	alerts     webhook.AlertPublisher
}

func NewIncidentService(repo IncidentRepository, classifier Classifier, evidence EvidenceStore, logger *logrus.Logger, cfg *config.Config, alerts webhook.AlertPublisher) IncidentService {
	return &incidentService{
		repo:       repo,
		classifier: classifier,
		evidence:   evidence,
		logger:     logger,
		cfg:        cfg,
		alerts:     alerts,
	}
}

// DetectAndReport сохраняет улику, классифицирует ее и регистрирует инцидент
func (s *incidentService) DetectAndReport(ctx context.Context, image io.Reader, locationID string) (*models.DetectionReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "DetectAndReport",
		"location": locationID,
	})
	log.Info("Processing detection request")

	if err := s.repo.Ping(ctx); err != nil {
		log.WithError(err).Error("Incident storage is unreachable")
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// 1. Сохраняем изображение-улику. Файл остается на диске даже при
	// последующих ошибках - компенсации не предусмотрено.
	evidencePath, err := s.evidence.Save(ctx, locationID, image)
	if err != nil {
		log.WithError(err).Error("Failed to save evidence image")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// 2. Запускаем классификацию сохраненного изображения
	result, err := s.classifier.Classify(ctx, evidencePath)
	if err != nil {
		log.WithError(err).Error("Classifier failed")
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}

	// 3. Регистрируем инцидент в хранилище
	incident := &models.Incident{
		DetectionType: result.DetectionType,
		Confidence:    result.Confidence,
		LocationID:    locationID,
		OccurredAt:    time.Now(),
		Status:        models.StatusUnresolved,
		EvidencePath:  evidencePath,
	}
	if err := s.repo.CreateIncident(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.repo.InvalidateReportCache(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate report cache")
	}

	// 4. Срочные инциденты уходят в очередь вебхуков. Ошибка публикации
	// не влияет на ответ клиенту.
	if result.IsAlert && s.alerts != nil {
		event := webhook.AlertEvent{
			IncidentID:    incident.ID.String(),
			LocationID:    incident.LocationID,
			DetectionType: incident.DetectionType,
			Confidence:    incident.Confidence,
			Timestamp:     incident.OccurredAt,
		}
		if err := s.alerts.Publish(ctx, event); err != nil {
			log.WithError(err).Warn("Failed to publish alert webhook event")
		}
	}

	log.WithFields(logrus.Fields{
		"incident_id":    incident.ID,
		"detection_type": result.DetectionType,
		"is_alert":       result.IsAlert,
	}).Info("Incident registered successfully")

	return &models.DetectionReport{
		IncidentID:    incident.ID.String(),
		Location:      incident.LocationID,
		DetectionType: result.DetectionType,
		Confidence:    result.Confidence,
		IsAlert:       result.IsAlert,
	}, nil
}

// GetReports собирает агрегированный отчет из четырех независимых выборок
func (s *incidentService) GetReports(ctx context.Context) (*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "GetReports",
	})

	if err := s.repo.Ping(ctx); err != nil {
		log.WithError(err).Error("Incident storage is unreachable")
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	cached, err := s.repo.GetReportFromCache(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to read report cache")
	}
	if cached != nil {
		log.Debug("Report served from cache")
		return cached, nil
	}

	stats, err := s.repo.GetSummaryStats(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to aggregate summary stats")
		return nil, fmt.Errorf("service: could not aggregate summary: %w", err)
	}

	detectionTypes, err := s.repo.CountByDetectionType(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to aggregate detection type counts")
		return nil, fmt.Errorf("service: could not aggregate detection types: %w", err)
	}

	hourly, err := s.repo.CountByHour(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to aggregate hourly counts")
		return nil, fmt.Errorf("service: could not aggregate hourly data: %w", err)
	}

	locations, err := s.repo.CountByLocation(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to aggregate location counts")
		return nil, fmt.Errorf("service: could not aggregate heatmap data: %w", err)
	}

	report := &models.Report{
		GeneratedAt:    time.Now(),
		Summary:        buildSummary(stats),
		DetectionTypes: detectionTypes,
		HourlyData:     buildHourlyData(hourly),
		HeatmapData:    buildHeatmap(locations),
	}

	if err := s.repo.SetReportCache(ctx, report); err != nil {
		log.WithError(err).Warn("Failed to cache report")
	}

	log.WithField("total_detections", report.Summary.TotalDetections).Info("Report generated")
	return report, nil
}

// Ping проверяет доступность хранилища инцидентов
func (s *incidentService) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func buildSummary(stats *models.SummaryStats) models.Summary {
	avgConfidence := "0%"
	if stats.AvgConfidence != 0 {
		avgConfidence = fmt.Sprintf("%.1f%%", stats.AvgConfidence)
	}
	return models.Summary{
		TotalDetections: stats.TotalDetections,
		TotalAlerts:     stats.TotalAlerts,
		AvgConfidence:   avgConfidence,
	}
}

// buildHourlyData раскладывает счетчики по 24 часам суток.
// Часы вне диапазона 0-23 молча отбрасываются.
func buildHourlyData(buckets []models.HourlyBucket) []int {
	hourly := make([]int, 24)
	for _, b := range buckets {
		if b.Hour >= 0 && b.Hour < 24 {
			hourly[b.Hour] = b.Count
		}
	}
	return hourly
}

// buildHeatmap переводит счетчики инцидентов в оценки чистоты зон.
// Порядок (по убыванию числа инцидентов) сохраняется из выборки.
func buildHeatmap(locations []models.LocationCount) []models.LocationScore {
	heatmap := make([]models.LocationScore, 0, len(locations))
	for _, loc := range locations {
		score := 100 - loc.IssueCount*5
		if score < 0 {
			score = 0
		}
		heatmap = append(heatmap, models.LocationScore{
			Location: loc.LocationID,
			Score:    score,
		})
	}
	return heatmap
}
