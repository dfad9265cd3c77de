package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusUnresolved - статус, с которым создается каждый инцидент
const StatusUnresolved = "Unresolved"

// DefaultLocation - зона по умолчанию, если клиент не передал location_id
const DefaultLocation = "Unknown Zone"

// DetectionTypes - фиксированный набор меток классификатора
var DetectionTypes = []string{
	"Litter Detected",
	"Overflowing Bin",
	"Spill Detected",
	"Scattered Trash",
	"Debris Found",
	"Graffiti",
}

// AlertTypes - подмножество меток, которые помечают инцидент как срочный.
// Единственное место, где определен набор: классификатор, прием инцидентов
// и аналитика обязаны использовать именно его.
var AlertTypes = []string{
	"Overflowing Bin",
	"Spill Detected",
	"Graffiti",
}

// IsAlertType сообщает, относится ли метка к срочным
func IsAlertType(detectionType string) bool {
	for _, t := range AlertTypes {
		if t == detectionType {
			return true
		}
	}
	return false
}

type Incident struct {
	ID            uuid.UUID `json:"id"`
	DetectionType string    `json:"detection_type"`
	Confidence    float64   `json:"confidence"`
	LocationID    string    `json:"location_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	Status        string    `json:"status"`
	EvidencePath  string    `json:"evidence_path"`
}

// Classification - результат работы классификатора для одного изображения
type Classification struct {
	DetectionType string  `json:"detection_type"`
	Confidence    float64 `json:"confidence"`
	IsAlert       bool    `json:"is_alert"`
}
