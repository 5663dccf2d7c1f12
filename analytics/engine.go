package analytics

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"storepulse/models"
	"storepulse/validation"
)

// insightFallback replaces the insight list whenever insight generation
// fails. Insight failure never fails the request.
const insightFallback = "（本次查詢無法產生額外洞察）"

// Translator is the generation-service boundary used by the engine.
type Translator interface {
	TranslateToSQL(ctx context.Context, question string, turns []models.ConversationTurn) (models.GeneratedStatement, error)
	GenerateInsights(ctx context.Context, question string, result *models.ResultSet) ([]string, error)
}

// Executor runs a validated statement. The statement timeout is the
// executor's responsibility; the engine treats a timeout like any other
// execution failure.
type Executor interface {
	ExecuteQuery(ctx context.Context, stmt models.SafeStatement) (*models.ResultSet, error)
}

// AuditStore records what each request generated and ran.
type AuditStore interface {
	StoreAuditRecord(record models.QueryAuditRecord) error
}

// Engine sequences translate → validate → execute → shape for one question.
// Stateless across requests; every dependency it mutates is request-scoped.
type Engine struct {
	translator Translator
	validator  *validation.Validator
	executor   Executor
	audit      AuditStore
}

func NewEngine(translator Translator, validator *validation.Validator, executor Executor, audit AuditStore) *Engine {
	return &Engine{
		translator: translator,
		validator:  validator,
		executor:   executor,
		audit:      audit,
	}
}

// Ask answers one business question. It never returns an error: every
// failure mode is folded into the response, with elapsed time and whatever
// SQL text is available for diagnosis.
func (e *Engine) Ask(ctx context.Context, question string, turns []models.ConversationTurn) *models.AnalysisResponse {
	start := time.Now()

	gen, err := e.translator.TranslateToSQL(ctx, question, turns)
	if err != nil {
		log.Printf("[ENGINE] translation failed: %v", err)
		resp := &models.AnalysisResponse{
			Answer:    fmt.Sprintf("無法產生查詢語句：%v", err),
			ChartHint: models.ChartNone,
			ElapsedMS: time.Since(start).Milliseconds(),
			Error:     err.Error(),
		}
		e.recordAudit(question, "", "", "translate_failed", 0, resp.ElapsedMS)
		return resp
	}

	result := e.validator.Validate(gen)
	if !result.OK {
		log.Printf("[ENGINE] statement rejected: %s", result.Reason)
		resp := &models.AnalysisResponse{
			Answer:    fmt.Sprintf("產生的查詢未通過安全檢查：%s", result.Reason),
			ChartHint: models.ChartNone,
			SQL:       gen.Text, // the rejected text, for operator diagnosis
			ElapsedMS: time.Since(start).Milliseconds(),
			Error:     result.Reason,
		}
		e.recordAudit(question, gen.Text, "", "rejected", 0, resp.ElapsedMS)
		return resp
	}

	safe := result.Statement
	rows, err := e.executor.ExecuteQuery(ctx, safe)
	if err != nil {
		log.Printf("[ENGINE] execution failed: %v", err)
		resp := &models.AnalysisResponse{
			Answer:    fmt.Sprintf("查詢執行失敗：%v", err),
			ChartHint: models.ChartNone,
			SQL:       safe.Text,
			ElapsedMS: time.Since(start).Milliseconds(),
			Error:     err.Error(),
		}
		e.recordAudit(question, gen.Text, safe.Text, "execute_failed", 0, resp.ElapsedMS)
		return resp
	}

	// Insights and shaping both depend only on the fetched rows, so they run
	// concurrently. Insight failure degrades to the fallback string.
	insightCh := make(chan []string, 1)
	go func() {
		insightCh <- e.generateInsights(ctx, question, rows)
	}()

	shaped := Shape(question, rows)
	insights := <-insightCh

	resp := &models.AnalysisResponse{
		Answer:    shaped.Summary,
		ChartHint: shaped.ChartHint,
		Columns:   rows.Columns,
		Rows:      shaped.Rows,
		Insights:  insights,
		SQL:       safe.Text,
		ElapsedMS: time.Since(start).Milliseconds(),
	}
	e.recordAudit(question, gen.Text, safe.Text, "ok", rows.RowCount(), resp.ElapsedMS)
	return resp
}

func (e *Engine) generateInsights(ctx context.Context, question string, rows *models.ResultSet) (insights []string) {
	if rows.RowCount() == 0 {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ENGINE] panic during insight generation: %v", r)
			insights = []string{insightFallback}
		}
	}()

	insights, err := e.translator.GenerateInsights(ctx, question, rows)
	if err != nil || len(insights) == 0 {
		if err != nil {
			log.Printf("[ENGINE] insight generation failed: %v", err)
		}
		return []string{insightFallback}
	}
	return insights
}

func (e *Engine) recordAudit(question, generatedSQL, safeSQL, status string, rowCount int, elapsedMS int64) {
	if e.audit == nil {
		return
	}
	record := models.QueryAuditRecord{
		ID:           uuid.NewString(),
		Question:     question,
		GeneratedSQL: generatedSQL,
		SafeSQL:      safeSQL,
		Status:       status,
		RowCount:     rowCount,
		ElapsedMS:    elapsedMS,
		Timestamp:    time.Now().Format(time.RFC3339),
	}
	if err := e.audit.StoreAuditRecord(record); err != nil {
		log.Printf("[ENGINE] failed to store audit record: %v", err)
	}
}
