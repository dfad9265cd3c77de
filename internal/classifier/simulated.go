package classifier

import (
	"context"
	"math"
	"math/rand"

	"github.com/ovsienko/campus_cleanliness_monitoring/internal/models"
)

// Simulated - заглушка модели компьютерного зрения. Выбирает случайную метку
// из фиксированного набора и уверенность в диапазоне [85.0, 100.0].
// Заменяется реальным клиентом модели без изменения сервиса.
type Simulated struct{}

func NewSimulated() *Simulated {
	return &Simulated{}
}

// Classify возвращает симулированный результат классификации изображения.
// Путь к изображению не интерпретируется, но сохраняется в сигнатуре,
// так как реальная модель будет читать файл.
func (s *Simulated) Classify(_ context.Context, _ string) (*models.Classification, error) {
	detectionType := models.DetectionTypes[rand.Intn(len(models.DetectionTypes))]
	confidence := math.Round((85+rand.Float64()*15)*10) / 10

	return &models.Classification{
		DetectionType: detectionType,
		Confidence:    confidence,
		IsAlert:       models.IsAlertType(detectionType),
	}, nil
}
