package ai

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/models"
)

func TestBuildTranslatePrompt_ContainsSchemaAndRules(t *testing.T) {
	system, user := BuildTranslatePrompt("上個月營收多少？", nil, 100)

	assert.Contains(t, system, "member_transactions")
	assert.Contains(t, system, "LIMIT")
	assert.Contains(t, system, "100")
	assert.Contains(t, system, "transaction_type = '銷售'")
	assert.Contains(t, system, "最近 30 天")
	assert.Contains(t, user, "上個月營收多少？")
}

func TestBuildTranslatePrompt_RendersTurns(t *testing.T) {
	turns := []models.ConversationTurn{
		{Role: "user", Content: "上個月營收多少？"},
		{Role: "assistant", Content: "查詢到 1 筆結果。"},
	}

	_, user := BuildTranslatePrompt("那各門市呢？", turns, 100)

	assert.Contains(t, user, "使用者: 上個月營收多少？")
	assert.Contains(t, user, "助理: 查詢到 1 筆結果。")
	assert.Contains(t, user, "那各門市呢？")
}

func TestBuildTranslatePrompt_BoundsTurns(t *testing.T) {
	var turns []models.ConversationTurn
	for i := 0; i < 20; i++ {
		turns = append(turns, models.ConversationTurn{
			Role:    "user",
			Content: fmt.Sprintf("問題 %d", i),
		})
	}

	_, user := BuildTranslatePrompt("最新的問題", turns, 100)

	assert.NotContains(t, user, "問題 0")
	assert.NotContains(t, user, "問題 13")
	assert.Contains(t, user, "問題 14")
	assert.Contains(t, user, "問題 19")
}

func TestBuildInsightPrompt_BoundsRows(t *testing.T) {
	result := &models.ResultSet{Columns: []string{"門市", "營收"}}
	for i := 0; i < 30; i++ {
		result.Rows = append(result.Rows, []interface{}{fmt.Sprintf("門市%d", i), i})
	}

	prompt := BuildInsightPrompt("各門市營收", result)

	assert.Contains(t, prompt, "總筆數：30")
	assert.Contains(t, prompt, "門市9")
	assert.NotContains(t, prompt, "門市10")
	assert.Contains(t, prompt, fmt.Sprintf("前 %d 筆資料", maxInsightRows))
}

func TestParseInsights(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			"numbered with dots",
			"1. 信義門市營收最高，達 12 萬\n2. 建議加強高雄門市促銷",
			[]string{"信義門市營收最高，達 12 萬", "建議加強高雄門市促銷"},
		},
		{
			"chinese enumeration",
			"1、營收成長 15%\n2、會員回購率 40%\n3、建議推出會員日活動",
			[]string{"營收成長 15%", "會員回購率 40%", "建議推出會員日活動"},
		},
		{
			"bullet markers and blanks",
			"- 第一條\n\n- 第二條\n",
			[]string{"第一條", "第二條"},
		},
		{
			"truncates to three",
			"1. 一\n2. 二\n3. 三\n4. 四\n5. 五",
			[]string{"一", "二", "三"},
		},
		{
			"empty response",
			"\n\n",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseInsights(tt.response))
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"sql fence", "```sql\nSELECT 1\n```", "SELECT 1"},
		{"bare fence", "```\nSELECT 1\n```", "SELECT 1"},
		{"no fence", "  SELECT 1  ", "SELECT 1"},
		{"uppercase fence", "```SQL\nSELECT 1\n```", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.response))
		})
	}
}

func TestNew_FailsFastWithoutCredential(t *testing.T) {
	_, err := New("", "qwen-plus", 100, nil)
	require.Error(t, err)
}
