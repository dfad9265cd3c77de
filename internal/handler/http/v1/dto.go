package v1

import "time"

// DetectAndReportForm DTO для формы приема инцидента
// @Description DTO для формы приема инцидента
type DetectAndReportForm struct {
	// Метка зоны попадает в имя файла улики, поэтому ограничена по длине
	LocationID string `form:"location_id" validate:"required,max=255"`
}

// DetectAndReportResponse DTO для ответа о зарегистрированном инциденте
// @Description DTO для ответа о зарегистрированном инциденте
type DetectAndReportResponse struct {
	Success       bool    `json:"success"`
	IncidentID    string  `json:"incident_id"`
	Location      string  `json:"location"`
	DetectionType string  `json:"detection_type"`
	Confidence    float64 `json:"confidence"`
	IsAlert       bool    `json:"is_alert"`
}

// SummaryResponse DTO для итоговых метрик отчета
// @Description DTO для итоговых метрик отчета
type SummaryResponse struct {
	TotalDetections int    `json:"totalDetections"`
	TotalAlerts     int    `json:"totalAlerts"`
	AvgConfidence   string `json:"avgConfidence"`
}

// LocationScoreResponse DTO для оценки чистоты одной зоны
// @Description DTO для оценки чистоты одной зоны
type LocationScoreResponse struct {
	Location string `json:"location"`
	Score    int    `json:"score"`
}

// ReportResponse DTO для агрегированного отчета
// @Description DTO для агрегированного отчета
type ReportResponse struct {
	GeneratedAt    time.Time               `json:"generatedAt"`
	Summary        SummaryResponse         `json:"summary"`
	DetectionTypes map[string]int          `json:"detectionTypes"`
	HourlyData     []int                   `json:"hourlyData"`
	HeatmapData    []LocationScoreResponse `json:"heatmapData"`
}
