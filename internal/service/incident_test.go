package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ovsienko/campus_cleanliness_monitoring/internal/config"
	"github.com/ovsienko/campus_cleanliness_monitoring/internal/models"
	"github.com/ovsienko/campus_cleanliness_monitoring/internal/service/mocks"
	"github.com/ovsienko/campus_cleanliness_monitoring/internal/webhook"
	webhook_mocks "github.com/ovsienko/campus_cleanliness_monitoring/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestIncidentService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, *mocks.MockIncidentRepository, *mocks.MockClassifier, *mocks.MockEvidenceStore, *webhook_mocks.MockAlertPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)
	classifierMock := mocks.NewMockClassifier(ctrl)
	evidenceMock := mocks.NewMockEvidenceStore(ctrl)
	alertMock := webhook_mocks.NewMockAlertPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		ReportCacheTTL: 30 * time.Second,
	}

	service := NewIncidentService(repoMock, classifierMock, evidenceMock, logger, cfg, alertMock)
	return service.(*incidentService), repoMock, classifierMock, evidenceMock, alertMock
}

func TestDetectAndReport_Success_Alert(t *testing.T) {
	// Подготовка
	service, repoMock, classifierMock, evidenceMock, alertMock := newTestIncidentService(t)
	ctx := context.Background()
	image := bytes.NewBufferString("jpeg-bytes")
	incidentID := uuid.New()
	classification := &models.Classification{
		DetectionType: "Spill Detected",
		Confidence:    92.5,
		IsAlert:       true,
	}

	// Ожидания
	repoMock.EXPECT().Ping(ctx).Return(nil).Times(1)

	evidenceMock.EXPECT().
		Save(ctx, "Library Entrance", gomock.Any()).
		Return("uploads/Library_Entrance_20240101_120000.jpg", nil).
		Times(1)

	classifierMock.EXPECT().
		Classify(ctx, "uploads/Library_Entrance_20240101_120000.jpg").
		Return(classification, nil).
		Times(1)

	repoMock.EXPECT().
		CreateIncident(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, inc *models.Incident) error {
			// Проверяем собранный инцидент и симулируем присвоение ID хранилищем
			assert.Equal(t, "Spill Detected", inc.DetectionType)
			assert.Equal(t, models.StatusUnresolved, inc.Status)
			assert.Equal(t, "Library Entrance", inc.LocationID)
			assert.False(t, inc.OccurredAt.IsZero())
			inc.ID = incidentID
			return nil
		}).Times(1)

	repoMock.EXPECT().InvalidateReportCache(ctx).Return(nil).Times(1)

	// Срочный инцидент уходит в очередь вебхуков
	alertMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(ctx context.Context, event webhook.AlertEvent) {
			assert.Equal(t, incidentID.String(), event.IncidentID)
			assert.Equal(t, "Spill Detected", event.DetectionType)
		}).Return(nil).Times(1)

	// Действие
	report, err := service.DetectAndReport(ctx, image, "Library Entrance")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, incidentID.String(), report.IncidentID)
	assert.Equal(t, "Library Entrance", report.Location)
	assert.Equal(t, 92.5, report.Confidence)
	assert.True(t, report.IsAlert)
}

func TestDetectAndReport_Success_NoAlert(t *testing.T) {
	// Подготовка
	service, repoMock, classifierMock, evidenceMock, alertMock := newTestIncidentService(t)
	ctx := context.Background()
	image := bytes.NewBufferString("jpeg-bytes")
	classification := &models.Classification{
		DetectionType: "Litter Detected",
		Confidence:    88.1,
		IsAlert:       false,
	}

	// Ожидания
	repoMock.EXPECT().Ping(ctx).Return(nil).Times(1)
	evidenceMock.EXPECT().Save(ctx, "Unknown Zone", gomock.Any()).Return("uploads/Unknown_Zone_20240101_120000.jpg", nil).Times(1)
	classifierMock.EXPECT().Classify(ctx, gomock.Any()).Return(classification, nil).Times(1)
	repoMock.EXPECT().
		CreateIncident(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, inc *models.Incident) error {
			inc.ID = uuid.New()
			return nil
		}).Times(1)
	repoMock.EXPECT().InvalidateReportCache(ctx).Return(nil).Times(1)

	// Публикатор вебхуков НЕ вызывается для несрочных инцидентов
	alertMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	report, err := service.DetectAndReport(ctx, image, "Unknown Zone")

	// Проверки
	require.NoError(t, err)
	assert.False(t, report.IsAlert)
}

func TestDetectAndReport_StorageUnavailable(t *testing.T) {
	// Подготовка
	service, repoMock, _, evidenceMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().Ping(ctx).Return(fmt.Errorf("connection refused")).Times(1)
	// До сохранения улики дело не доходит
	evidenceMock.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	report, err := service.DetectAndReport(ctx, bytes.NewBufferString("img"), "Zone A")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestDetectAndReport_EvidenceSaveError(t *testing.T) {
	// Подготовка
	service, repoMock, classifierMock, evidenceMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().Ping(ctx).Return(nil).Times(1)
	evidenceMock.EXPECT().Save(ctx, "Zone A", gomock.Any()).Return("", fmt.Errorf("disk full")).Times(1)
	classifierMock.EXPECT().Classify(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	report, err := service.DetectAndReport(ctx, bytes.NewBufferString("img"), "Zone A")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestDetectAndReport_InferenceError(t *testing.T) {
	// Подготовка
	service, repoMock, classifierMock, evidenceMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().Ping(ctx).Return(nil).Times(1)
	evidenceMock.EXPECT().Save(ctx, "Zone A", gomock.Any()).Return("uploads/Zone_A_20240101_120000.jpg", nil).Times(1)
	classifierMock.EXPECT().Classify(ctx, gomock.Any()).Return(nil, fmt.Errorf("model crashed")).Times(1)
	// Инцидент не регистрируется
	repoMock.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	report, err := service.DetectAndReport(ctx, bytes.NewBufferString("img"), "Zone A")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrInference)
}

func TestDetectAndReport_PersistenceError(t *testing.T) {
	// Подготовка
	service, repoMock, classifierMock, evidenceMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	classification := &models.Classification{
		DetectionType: "Debris Found",
		Confidence:    86.0,
		IsAlert:       false,
	}

	// Ожидания
	repoMock.EXPECT().Ping(ctx).Return(nil).Times(1)
	evidenceMock.EXPECT().Save(ctx, "Zone A", gomock.Any()).Return("uploads/Zone_A_20240101_120000.jpg", nil).Times(1)
	classifierMock.EXPECT().Classify(ctx, gomock.Any()).Return(classification, nil).Times(1)
	repoMock.EXPECT().CreateIncident(ctx, gomock.Any()).Return(fmt.Errorf("insert failed")).Times(1)

	// Действие
	report, err := service.DetectAndReport(ctx, bytes.NewBufferString("img"), "Zone A")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestGetReports_EmptyCollection(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().Ping(ctx).Return(nil).Times(1)
	repoMock.EXPECT().GetReportFromCache(ctx).Return(nil, nil).Times(1)
	repoMock.EXPECT().GetSummaryStats(ctx).Return(&models.SummaryStats{}, nil).Times(1)
	repoMock.EXPECT().CountByDetectionType(ctx).Return(map[string]int{}, nil).Times(1)
	repoMock.EXPECT().CountByHour(ctx).Return([]models.HourlyBucket{}, nil).Times(1)
	repoMock.EXPECT().CountByLocation(ctx).Return([]models.LocationCount{}, nil).Times(1)
	repoMock.EXPECT().SetReportCache(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	report, err := service.GetReports(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 0, report.Summary.TotalDetections)
	assert.Equal(t, 0, report.Summary.TotalAlerts)
	assert.Equal(t, "0%", report.Summary.AvgConfidence)
	assert.Len(t, report.HourlyData, 24)
	for _, count := range report.HourlyData {
		assert.Zero(t, count)
	}
	assert.Empty(t, report.HeatmapData)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestGetReports_Aggregation(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().Ping(ctx).Return(nil).Times(1)
	repoMock.EXPECT().GetReportFromCache(ctx).Return(nil, nil).Times(1)
	repoMock.EXPECT().GetSummaryStats(ctx).Return(&models.SummaryStats{
		TotalDetections: 5,
		TotalAlerts:     2,
		AvgConfidence:   91.26,
	}, nil).Times(1)
	repoMock.EXPECT().CountByDetectionType(ctx).Return(map[string]int{
		"Litter Detected": 3,
		"Spill Detected":  2,
	}, nil).Times(1)
	repoMock.EXPECT().CountByHour(ctx).Return([]models.HourlyBucket{
		{Hour: 9, Count: 2},
		{Hour: 14, Count: 3},
		{Hour: 24, Count: 7}, // вне диапазона, должен быть отброшен
	}, nil).Times(1)
	repoMock.EXPECT().CountByLocation(ctx).Return([]models.LocationCount{
		{LocationID: "Cafeteria", IssueCount: 25},
		{LocationID: "A", IssueCount: 4},
	}, nil).Times(1)
	repoMock.EXPECT().SetReportCache(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	report, err := service.GetReports(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 5, report.Summary.TotalDetections)
	assert.Equal(t, 2, report.Summary.TotalAlerts)
	assert.Equal(t, "91.3%", report.Summary.AvgConfidence)
	assert.Equal(t, map[string]int{"Litter Detected": 3, "Spill Detected": 2}, report.DetectionTypes)

	require.Len(t, report.HourlyData, 24)
	assert.Equal(t, 2, report.HourlyData[9])
	assert.Equal(t, 3, report.HourlyData[14])
	sum := 0
	for _, count := range report.HourlyData {
		sum += count
	}
	assert.Equal(t, 5, sum)

	// Порядок по убыванию числа инцидентов, оценка не опускается ниже нуля
	require.Len(t, report.HeatmapData, 2)
	assert.Equal(t, models.LocationScore{Location: "Cafeteria", Score: 0}, report.HeatmapData[0])
	assert.Equal(t, models.LocationScore{Location: "A", Score: 80}, report.HeatmapData[1])
}

func TestGetReports_FromCache(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	cachedReport := &models.Report{
		GeneratedAt: time.Now(),
		Summary:     models.Summary{TotalDetections: 7, TotalAlerts: 1, AvgConfidence: "90.0%"},
	}

	// Ожидания: агрегационные запросы не выполняются при попадании в кеш
	repoMock.EXPECT().Ping(ctx).Return(nil).Times(1)
	repoMock.EXPECT().GetReportFromCache(ctx).Return(cachedReport, nil).Times(1)
	repoMock.EXPECT().GetSummaryStats(gomock.Any()).Times(0)

	// Действие
	report, err := service.GetReports(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, cachedReport, report)
}

func TestGetReports_StorageUnavailable(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().Ping(ctx).Return(fmt.Errorf("connection refused")).Times(1)
	repoMock.EXPECT().GetReportFromCache(gomock.Any()).Times(0)

	// Действие
	report, err := service.GetReports(ctx)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestPing(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().Ping(ctx).Return(nil).Times(1)

	// Действие и проверка
	require.NoError(t, service.Ping(ctx))

	// Недоступное хранилище
	repoMock.EXPECT().Ping(ctx).Return(fmt.Errorf("connection refused")).Times(1)
	assert.ErrorIs(t, service.Ping(ctx), ErrStorageUnavailable)
}
