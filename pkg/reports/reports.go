package reports

import (
	"fmt"

	"github.com/oarkflow/squealx"

	"github.com/wattwise/wattwise/pkg/models"
	"github.com/wattwise/wattwise/pkg/storage"
)

// Thresholds for the saving tips, inherited from the original tuning.
const (
	highElectricAvg = 100
	highWaterAvg    = 500
	highCostAvg     = 50
)

// Engine answers consumption/cost aggregation queries over wash sessions.
// It sits outside the authentication core and only ever reads.
type Engine struct {
	db     *squealx.DB
	dbType storage.DatabaseType
}

func New(db *squealx.DB) *Engine {
	return &Engine{db: db, dbType: storage.DatabaseType(db.DriverName())}
}

// periodExpr formats wash_timestamp to a period label for the driver.
// layout is "month" or "year".
func (e *Engine) periodExpr(layout string) string {
	switch e.dbType {
	case storage.MySQL:
		if layout == "year" {
			return `DATE_FORMAT(wash_timestamp, '%Y')`
		}
		return `DATE_FORMAT(wash_timestamp, '%Y-%m')`
	case storage.PostgreSQL:
		if layout == "year" {
			return `to_char(wash_timestamp, 'YYYY')`
		}
		return `to_char(wash_timestamp, 'YYYY-MM')`
	default: // SQLite
		if layout == "year" {
			return `strftime('%Y', wash_timestamp)`
		}
		return `strftime('%Y-%m', wash_timestamp)`
	}
}

func (e *Engine) consumptionByPeriod(layout string) ([]models.ConsumptionSummary, error) {
	query := fmt.Sprintf(`
		SELECT
			%s AS period,
			SUM(electric_consumption) AS total_electric_consumption,
			SUM(water_consumption) AS total_water_consumption,
			SUM(total_cost) AS total_cost
		FROM wash_sessions
		GROUP BY period
		ORDER BY period`, e.periodExpr(layout))

	var results []models.ConsumptionSummary
	if err := e.db.Select(&results, query); err != nil {
		return nil, fmt.Errorf("consumption query failed: %w", err)
	}
	return results, nil
}

// MonthlyConsumption aggregates consumption and cost per calendar month.
func (e *Engine) MonthlyConsumption() ([]models.ConsumptionSummary, error) {
	return e.consumptionByPeriod("month")
}

// YearlyConsumption aggregates consumption and cost per calendar year.
func (e *Engine) YearlyConsumption() ([]models.ConsumptionSummary, error) {
	return e.consumptionByPeriod("year")
}

// Tips derives saving tips from the monthly averages.
func (e *Engine) Tips() ([]string, error) {
	monthly, err := e.MonthlyConsumption()
	if err != nil {
		return nil, err
	}
	return GenerateTips(monthly), nil
}

// GenerateTips compares the average monthly consumption and cost against
// the tuned thresholds and phrases one tip per metric.
func GenerateTips(data []models.ConsumptionSummary) []string {
	if len(data) == 0 {
		return []string{"No consumption data recorded yet. Tips appear after your first wash sessions."}
	}

	var electric, water, cost float64
	for _, row := range data {
		electric += row.TotalElectricConsumption
		water += row.TotalWaterConsumption
		cost += row.TotalCost
	}
	n := float64(len(data))
	avgElectric := electric / n
	avgWater := water / n
	avgCost := cost / n

	tips := make([]string, 0, 3)
	if avgElectric > highElectricAvg {
		tips = append(tips, "Your average electric consumption is quite high. Consider using energy-efficient appliances to reduce consumption.")
	} else {
		tips = append(tips, "Great job! Your electric consumption is within a good range. Keep it up!")
	}
	if avgWater > highWaterAvg {
		tips = append(tips, "Your water consumption is above average. Try using water-saving techniques, such as shorter wash cycles.")
	} else {
		tips = append(tips, "Your water consumption is within a reasonable range. Continue practicing good habits.")
	}
	if avgCost > highCostAvg {
		tips = append(tips, "Your total cost is relatively high. Look into peak-hour rates and try to run appliances during off-peak hours to save money.")
	} else {
		tips = append(tips, "Your cost is well-managed. Keep monitoring your usage to maintain this balance.")
	}
	return tips
}
