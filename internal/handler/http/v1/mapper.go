package v1

import "github.com/ovsienko/campus_cleanliness_monitoring/internal/models"

// ModelToDetectionResponse преобразует результат приема инцидента в DTO для ответа
func ModelToDetectionResponse(report *models.DetectionReport) *DetectAndReportResponse {
	return &DetectAndReportResponse{
		Success:       true,
		IncidentID:    report.IncidentID,
		Location:      report.Location,
		DetectionType: report.DetectionType,
		Confidence:    report.Confidence,
		IsAlert:       report.IsAlert,
	}
}

// ModelToReportResponse преобразует агрегированный отчет в DTO для ответа
func ModelToReportResponse(report *models.Report) *ReportResponse {
	heatmap := make([]LocationScoreResponse, len(report.HeatmapData))
	for i, entry := range report.HeatmapData {
		heatmap[i] = LocationScoreResponse{
			Location: entry.Location,
			Score:    entry.Score,
		}
	}
	return &ReportResponse{
		GeneratedAt: report.GeneratedAt,
		Summary: SummaryResponse{
			TotalDetections: report.Summary.TotalDetections,
			TotalAlerts:     report.Summary.TotalAlerts,
			AvgConfidence:   report.Summary.AvgConfidence,
		},
		DetectionTypes: report.DetectionTypes,
		HourlyData:     report.HourlyData,
		HeatmapData:    heatmap,
	}
}
