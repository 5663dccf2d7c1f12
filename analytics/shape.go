package analytics

import (
	"fmt"
	"strings"

	"storepulse/config"
	"storepulse/models"
)

// Shaped is the presentation form of a result set: an inferred chart hint,
// color-annotated rows, and a literal one-line summary.
type Shaped struct {
	ChartHint models.ChartHint
	Rows      []models.DecoratedRow
	Summary   string
}

// Shape classifies and decorates a result set for display. Pure and
// deterministic: same question and rows always produce the same output.
func Shape(question string, result *models.ResultSet) Shaped {
	return Shaped{
		ChartHint: InferChartHint(question, result),
		Rows:      decorateRows(result),
		Summary:   summarize(result),
	}
}

var (
	trendKeywords      = []string{"趨勢", "走勢", "變化", "每月", "每週", "每天", "每日", "逐月", "逐日", "成長", "trend", "over time"}
	periodColumnTokens = []string{"月份", "月", "日期", "週", "季", "年度", "期間", "date", "month", "week", "day", "period"}
	rankingKeywords    = []string{"排名", "排行", "最多", "最高", "最好", "前十", "前五", "前三", "top", "各門市", "各店", "哪個門市", "哪家"}
	proportionKeywords = []string{"占比", "佔比", "比例", "分布", "分佈", "百分比", "組成", "share", "proportion"}
	comparisonKeywords = []string{"比較", "對比", "相比", "差異", "versus", " vs ", "compare"}
)

// InferChartHint picks a chart shape from the question wording and the row
// shape. The rules run in a fixed order and the first match wins; the order
// is part of the contract, so chart choice stays reproducible.
func InferChartHint(question string, result *models.ResultSet) models.ChartHint {
	q := strings.ToLower(question)

	switch {
	case result.RowCount() == 0:
		return models.ChartNone
	case result.RowCount() == 1:
		// A single-row fact reads better as a readout than as any chart.
		return models.ChartTable
	case containsAny(q, trendKeywords) || hasPeriodColumn(result.Columns):
		return models.ChartLine
	case containsAny(q, rankingKeywords):
		return models.ChartBar
	case containsAny(q, proportionKeywords):
		return models.ChartPie
	case containsAny(q, comparisonKeywords):
		return models.ChartGroupedBar
	case result.RowCount() <= 12 && len(result.Columns) <= 3:
		return models.ChartBar
	default:
		return models.ChartTable
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func hasPeriodColumn(columns []string) bool {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, token := range periodColumnTokens {
			if strings.Contains(lower, token) {
				return true
			}
		}
	}
	return false
}

// decorateRows attaches a display color to rows whose values exactly match a
// registered store name. Everything else passes through unchanged.
func decorateRows(result *models.ResultSet) []models.DecoratedRow {
	decorated := make([]models.DecoratedRow, 0, result.RowCount())
	for _, row := range result.Rows {
		dr := models.DecoratedRow{Values: row}
		for _, val := range row {
			if s, ok := val.(string); ok {
				if color, ok := config.StoreColors[s]; ok {
					dr.Color = color
					break
				}
			}
		}
		decorated = append(decorated, dr)
	}
	return decorated
}

// summarize renders the literal answer sentence. Narrative belongs to the
// insight generator, not here.
func summarize(result *models.ResultSet) string {
	switch {
	case result.RowCount() == 0:
		return "查詢沒有找到符合條件的資料。"
	case result.RowCount() == 1 && len(result.Columns) <= 2:
		parts := make([]string, 0, len(result.Columns))
		for i, col := range result.Columns {
			parts = append(parts, fmt.Sprintf("%s: %v", col, result.Rows[0][i]))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("查詢到 %d 筆結果。", result.RowCount())
	}
}
