package models

import "time"

// SummaryStats - сырые агрегаты по всей коллекции инцидентов
type SummaryStats struct {
	TotalDetections int     `json:"total_detections"`
	TotalAlerts     int     `json:"total_alerts"`
	AvgConfidence   float64 `json:"avg_confidence"`
}

// HourlyBucket - количество инцидентов за один час суток (0-23)
type HourlyBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// LocationCount - количество инцидентов по одной зоне
type LocationCount struct {
	LocationID string `json:"location_id"`
	IssueCount int    `json:"issue_count"`
}

// LocationScore - оценка чистоты зоны, убывает с ростом числа инцидентов
type LocationScore struct {
	Location string `json:"location"`
	Score    int    `json:"score"`
}

// Summary - итоговые метрики отчета
type Summary struct {
	TotalDetections int    `json:"totalDetections"`
	TotalAlerts     int    `json:"totalAlerts"`
	AvgConfidence   string `json:"avgConfidence"`
}

// Report - полный агрегированный отчет по инцидентам
type Report struct {
	GeneratedAt    time.Time       `json:"generatedAt"`
	Summary        Summary         `json:"summary"`
	DetectionTypes map[string]int  `json:"detectionTypes"`
	HourlyData     []int           `json:"hourlyData"`
	HeatmapData    []LocationScore `json:"heatmapData"`
}

// DetectionReport - результат приема одного инцидента, возвращаемый клиенту
type DetectionReport struct {
	IncidentID    string  `json:"incident_id"`
	Location      string  `json:"location"`
	DetectionType string  `json:"detection_type"`
	Confidence    float64 `json:"confidence"`
	IsAlert       bool    `json:"is_alert"`
}
