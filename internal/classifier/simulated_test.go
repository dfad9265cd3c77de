package classifier

import (
	"context"
	"math"
	"testing"

	"github.com/ovsienko/campus_cleanliness_monitoring/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulated_Classify(t *testing.T) {
	c := NewSimulated()
	ctx := context.Background()

	// Классификатор случайный, прогоняем много итераций
	for i := 0; i < 500; i++ {
		result, err := c.Classify(ctx, "uploads/evidence.jpg")
		require.NoError(t, err)

		// Метка всегда из фиксированного набора
		assert.Contains(t, models.DetectionTypes, result.DetectionType)

		// Уверенность в диапазоне [85.0, 100.0] и округлена до одного знака
		assert.GreaterOrEqual(t, result.Confidence, 85.0)
		assert.LessOrEqual(t, result.Confidence, 100.0)
		assert.InDelta(t, result.Confidence, math.Round(result.Confidence*10)/10, 1e-9)

		// Флаг срочности согласован с общим набором срочных меток
		assert.Equal(t, models.IsAlertType(result.DetectionType), result.IsAlert)
	}
}
