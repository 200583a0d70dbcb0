package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wattwise/wattwise/pkg/models"
)

func TestGenerateTipsHighUsage(t *testing.T) {
	data := []models.ConsumptionSummary{
		{Period: "2026-01", TotalElectricConsumption: 150, TotalWaterConsumption: 700, TotalCost: 80},
		{Period: "2026-02", TotalElectricConsumption: 130, TotalWaterConsumption: 600, TotalCost: 60},
	}
	tips := GenerateTips(data)
	assert.Len(t, tips, 3)
	assert.Contains(t, tips[0], "quite high")
	assert.Contains(t, tips[1], "above average")
	assert.Contains(t, tips[2], "relatively high")
}

func TestGenerateTipsLowUsage(t *testing.T) {
	data := []models.ConsumptionSummary{
		{Period: "2026-01", TotalElectricConsumption: 40, TotalWaterConsumption: 200, TotalCost: 20},
	}
	tips := GenerateTips(data)
	assert.Len(t, tips, 3)
	assert.Contains(t, tips[0], "Great job")
	assert.Contains(t, tips[1], "reasonable range")
	assert.Contains(t, tips[2], "well-managed")
}

func TestGenerateTipsBoundary(t *testing.T) {
	// thresholds are strict greater-than
	data := []models.ConsumptionSummary{
		{Period: "2026-01", TotalElectricConsumption: 100, TotalWaterConsumption: 500, TotalCost: 50},
	}
	tips := GenerateTips(data)
	assert.Contains(t, tips[0], "Great job")
	assert.Contains(t, tips[1], "reasonable range")
	assert.Contains(t, tips[2], "well-managed")
}

func TestGenerateTipsNoData(t *testing.T) {
	tips := GenerateTips(nil)
	assert.Len(t, tips, 1)
	assert.Contains(t, tips[0], "No consumption data")
}
