package ai

import (
	"fmt"
	"regexp"
	"strings"

	"storepulse/config"
	"storepulse/models"
)

// maxContextTurns bounds how many prior turns go into the prompt; older
// context adds tokens without improving the generated SQL.
const maxContextTurns = 6

// maxInsightRows bounds how many result rows the insight prompt carries.
const maxInsightRows = 10

var turnRoleNames = map[string]string{
	"user":      "使用者",
	"assistant": "助理",
}

// BuildTranslatePrompt constructs the system instruction (schema context plus
// generation rules) and the user message (recent turns plus the question) for
// the NL→SQL call.
func BuildTranslatePrompt(question string, turns []models.ConversationTurn, maxRows int) (systemPrompt string, userPrompt string) {
	var sys strings.Builder
	sys.WriteString("你是零售門市系統的 SQL 分析助手，根據使用者的商業問題產生 PostgreSQL 查詢。\n\n")
	sys.WriteString("資料庫結構說明：\n")
	sys.WriteString(config.SchemaContext)
	sys.WriteString("\n產生規則：\n")
	sys.WriteString("1. 只能產生唯讀 SELECT 查詢（可使用 WITH ... SELECT），絕不可產生任何寫入、修改結構或權限相關的指令。\n")
	sys.WriteString(fmt.Sprintf("2. 每個查詢都必須帶 LIMIT，最多 %d 筆。\n", maxRows))
	sys.WriteString("3. 輸出欄位要用有意義的中文別名（AS），例如 AS 門市、AS 營收。\n")
	sys.WriteString("4. 問題沒有指定時間範圍時，預設查詢最近 30 天。\n")
	sys.WriteString("5. 問題含糊不清時，回傳一個總覽式的彙總查詢，不要猜測細節。\n")
	sys.WriteString(fmt.Sprintf("6. 查詢 %s 的營收或筆數時，必須加上 %s = '%s' 條件。\n",
		config.TransactionTable, config.TransactionTypeColumn, config.SaleTransactionType))
	sys.WriteString(fmt.Sprintf("7. %s 的合法值只有 '%s' 與 '退貨'，不要發明其他值。\n",
		config.TransactionTypeColumn, config.SaleTransactionType))
	sys.WriteString("8. 只回傳 SQL 本身，不要任何解釋、註解或 Markdown 標記。\n")

	var user strings.Builder
	recent := turns
	if len(recent) > maxContextTurns {
		recent = recent[len(recent)-maxContextTurns:]
	}
	if len(recent) > 0 {
		user.WriteString("先前的對話（僅供理解語境）：\n")
		for _, t := range recent {
			name := turnRoleNames[t.Role]
			if name == "" {
				name = t.Role
			}
			user.WriteString(fmt.Sprintf("%s: %s\n", name, t.Content))
		}
		user.WriteString("\n")
	}
	user.WriteString("本次問題：")
	user.WriteString(question)

	return sys.String(), user.String()
}

// BuildInsightPrompt asks for 2-3 short numeric observations over a bounded
// prefix of the rows.
func BuildInsightPrompt(question string, result *models.ResultSet) string {
	var b strings.Builder
	b.WriteString("以下是針對問題「")
	b.WriteString(question)
	b.WriteString("」查詢出的結果。\n\n")
	b.WriteString(fmt.Sprintf("欄位：%s\n", strings.Join(result.Columns, "、")))
	b.WriteString(fmt.Sprintf("總筆數：%d\n", result.RowCount()))

	rows := result.Rows
	if len(rows) > maxInsightRows {
		b.WriteString(fmt.Sprintf("前 %d 筆資料：\n", maxInsightRows))
		rows = rows[:maxInsightRows]
	} else {
		b.WriteString("資料：\n")
	}
	for i, row := range rows {
		b.WriteString(fmt.Sprintf("%d. %v\n", i+1, row))
	}

	b.WriteString("\n請根據以上資料，用繁體中文寫出 2 到 3 條觀察，每條一行、以數字編號：\n")
	b.WriteString("- 每條都要包含具體數字。\n")
	b.WriteString("- 至少一條要給出可執行的營運建議。\n")
	b.WriteString("- 每條不超過 40 個字，不要任何開場白或結語。\n")

	return b.String()
}

var insightMarkerRe = regexp.MustCompile(`^\s*(?:\d+[\.、\)）]\s*|[-*•]\s*)`)

// parseInsights splits the model reply into lines, strips leading enumeration
// markers, drops blanks, and keeps at most three entries.
func parseInsights(response string) []string {
	var insights []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(insightMarkerRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		insights = append(insights, line)
		if len(insights) == maxInsights {
			break
		}
	}
	return insights
}
