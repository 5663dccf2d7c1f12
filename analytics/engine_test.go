package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/models"
	"storepulse/validation"
)

type fakeTranslator struct {
	sql            string
	translateErr   error
	insights       []string
	insightErr     error
	insightPanics  bool
	insightCalls   int
	translateCalls int
}

func (f *fakeTranslator) TranslateToSQL(ctx context.Context, question string, turns []models.ConversationTurn) (models.GeneratedStatement, error) {
	f.translateCalls++
	if f.translateErr != nil {
		return models.GeneratedStatement{}, f.translateErr
	}
	return models.GeneratedStatement{Text: f.sql}, nil
}

func (f *fakeTranslator) GenerateInsights(ctx context.Context, question string, result *models.ResultSet) ([]string, error) {
	f.insightCalls++
	if f.insightPanics {
		panic("insight model exploded")
	}
	return f.insights, f.insightErr
}

type fakeExecutor struct {
	result  *models.ResultSet
	err     error
	calls   int
	lastSQL string
}

func (f *fakeExecutor) ExecuteQuery(ctx context.Context, stmt models.SafeStatement) (*models.ResultSet, error) {
	f.calls++
	f.lastSQL = stmt.Text
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeAudit struct {
	records []models.QueryAuditRecord
}

func (f *fakeAudit) StoreAuditRecord(record models.QueryAuditRecord) error {
	f.records = append(f.records, record)
	return nil
}

func storeResult() *models.ResultSet {
	return &models.ResultSet{
		Columns: []string{"門市", "營收"},
		Rows: [][]interface{}{
			{"信義門市", 120000},
			{"板橋門市", 90000},
		},
	}
}

func newTestEngine(translator *fakeTranslator, executor *fakeExecutor, audit *fakeAudit) *Engine {
	return NewEngine(translator, validation.New(100), executor, audit)
}

func TestAsk_Success(t *testing.T) {
	translator := &fakeTranslator{
		sql:      "SELECT store_name AS 門市, SUM(amount) AS 營收 FROM member_transactions WHERE transaction_type = '銷售' GROUP BY store_name LIMIT 10",
		insights: []string{"信義門市營收 12 萬居冠", "建議加強板橋門市促銷"},
	}
	executor := &fakeExecutor{result: storeResult()}
	audit := &fakeAudit{}

	resp := newTestEngine(translator, executor, audit).Ask(context.Background(), "各門市營收排名", nil)

	assert.Empty(t, resp.Error)
	assert.Equal(t, "查詢到 2 筆結果。", resp.Answer)
	assert.Equal(t, models.ChartBar, resp.ChartHint)
	assert.Len(t, resp.Rows, 2)
	assert.Equal(t, translator.insights, resp.Insights)
	assert.Equal(t, executor.lastSQL, resp.SQL)

	require.Len(t, audit.records, 1)
	assert.Equal(t, "ok", audit.records[0].Status)
	assert.Equal(t, 2, audit.records[0].RowCount)
}

func TestAsk_TranslateFailure(t *testing.T) {
	translator := &fakeTranslator{translateErr: errors.New("service unavailable")}
	executor := &fakeExecutor{}
	audit := &fakeAudit{}

	resp := newTestEngine(translator, executor, audit).Ask(context.Background(), "各門市營收排名", nil)

	assert.Contains(t, resp.Error, "service unavailable")
	assert.Equal(t, models.ChartNone, resp.ChartHint)
	assert.Empty(t, resp.Rows)
	assert.Zero(t, executor.calls, "executor must not run without a statement")

	require.Len(t, audit.records, 1)
	assert.Equal(t, "translate_failed", audit.records[0].Status)
}

func TestAsk_RejectedStatementNeverExecutes(t *testing.T) {
	translator := &fakeTranslator{sql: "DELETE FROM member_transactions WHERE 1=1"}
	executor := &fakeExecutor{}
	audit := &fakeAudit{}

	resp := newTestEngine(translator, executor, audit).Ask(context.Background(), "把交易都刪掉", nil)

	assert.Contains(t, resp.Error, "DELETE")
	// The original generated text is preserved for diagnosis.
	assert.Equal(t, translator.sql, resp.SQL)
	assert.Zero(t, executor.calls, "rejected statements must never reach the executor")

	require.Len(t, audit.records, 1)
	assert.Equal(t, "rejected", audit.records[0].Status)
	assert.Equal(t, translator.sql, audit.records[0].GeneratedSQL)
	assert.Empty(t, audit.records[0].SafeSQL)
}

func TestAsk_ExecutionFailure(t *testing.T) {
	translator := &fakeTranslator{sql: "SELECT name FROM members LIMIT 10"}
	executor := &fakeExecutor{err: errors.New("statement timeout")}
	audit := &fakeAudit{}

	resp := newTestEngine(translator, executor, audit).Ask(context.Background(), "會員名單", nil)

	assert.Contains(t, resp.Error, "statement timeout")
	assert.Equal(t, "SELECT name FROM members LIMIT 10", resp.SQL)
	assert.Empty(t, resp.Rows)

	require.Len(t, audit.records, 1)
	assert.Equal(t, "execute_failed", audit.records[0].Status)
}

func TestAsk_InsightFailureDoesNotFailRequest(t *testing.T) {
	translator := &fakeTranslator{
		sql:        "SELECT name FROM members LIMIT 10",
		insightErr: errors.New("model overloaded"),
	}
	executor := &fakeExecutor{result: storeResult()}

	resp := newTestEngine(translator, executor, &fakeAudit{}).Ask(context.Background(), "會員名單", nil)

	assert.Empty(t, resp.Error)
	assert.Equal(t, []string{insightFallback}, resp.Insights)
	assert.Len(t, resp.Rows, 2)
}

func TestAsk_InsightPanicDoesNotFailRequest(t *testing.T) {
	translator := &fakeTranslator{
		sql:           "SELECT name FROM members LIMIT 10",
		insightPanics: true,
	}
	executor := &fakeExecutor{result: storeResult()}

	resp := newTestEngine(translator, executor, &fakeAudit{}).Ask(context.Background(), "會員名單", nil)

	assert.Empty(t, resp.Error)
	assert.Equal(t, []string{insightFallback}, resp.Insights)
}

func TestAsk_ZeroRowsSkipsInsights(t *testing.T) {
	translator := &fakeTranslator{sql: "SELECT name FROM members LIMIT 10"}
	executor := &fakeExecutor{result: &models.ResultSet{Columns: []string{"姓名"}}}

	resp := newTestEngine(translator, executor, &fakeAudit{}).Ask(context.Background(), "會員名單", nil)

	assert.Empty(t, resp.Error)
	assert.Equal(t, "查詢沒有找到符合條件的資料。", resp.Answer)
	assert.Equal(t, models.ChartNone, resp.ChartHint)
	assert.Empty(t, resp.Insights)
	assert.Zero(t, translator.insightCalls, "insight generator must not run for empty results")
}

func TestAsk_ElapsedTimeAlwaysReported(t *testing.T) {
	translator := &fakeTranslator{translateErr: errors.New("down")}
	resp := newTestEngine(translator, &fakeExecutor{}, &fakeAudit{}).Ask(context.Background(), "營收", nil)
	assert.GreaterOrEqual(t, resp.ElapsedMS, int64(0))
}

func TestAsk_RowCapAppliedBeforeExecution(t *testing.T) {
	translator := &fakeTranslator{sql: "SELECT name FROM members"}
	executor := &fakeExecutor{result: storeResult()}

	newTestEngine(translator, executor, &fakeAudit{}).Ask(context.Background(), "會員名單", nil)

	assert.Equal(t, "SELECT name FROM members LIMIT 100", executor.lastSQL)
}
