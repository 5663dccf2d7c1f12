package models

// ChartHint classifies how a result set should be visualized. Derived from
// the question wording and the row shape, never stored.
type ChartHint string

const (
	ChartBar        ChartHint = "bar"
	ChartLine       ChartHint = "line"
	ChartPie        ChartHint = "pie"
	ChartGroupedBar ChartHint = "grouped_bar"
	ChartTable      ChartHint = "table"
	ChartNone       ChartHint = "none"
)

// GeneratedStatement is raw SQL text produced by the translator. It is
// untrusted and must never reach the executor directly; only the validator
// may turn it into a SafeStatement.
type GeneratedStatement struct {
	Text string `json:"text"`
}

// SafeStatement is SQL that passed every validator gate and rewrite. It is
// the only form ever sent to the executor.
type SafeStatement struct {
	Text string `json:"text"`
}

// ConversationTurn is one prior exchange passed along as free-text context.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type AskRequest struct {
	Question     string             `json:"question" binding:"required"`
	Conversation []ConversationTurn `json:"conversation,omitempty"`
}

// ResultSet holds query output with column order preserved.
type ResultSet struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

func (r *ResultSet) RowCount() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// DecoratedRow is a result row annotated with presentation metadata. Color is
// set when one of the values matches a registered store name.
type DecoratedRow struct {
	Values []interface{} `json:"values"`
	Color  string        `json:"color,omitempty"`
}

// AnalysisResponse is the externally visible outcome of one question.
// Constructed once per request and never mutated after return.
type AnalysisResponse struct {
	Answer    string         `json:"answer"`
	ChartHint ChartHint      `json:"chart_hint"`
	Columns   []string       `json:"columns,omitempty"`
	Rows      []DecoratedRow `json:"rows,omitempty"`
	Insights  []string       `json:"insights,omitempty"`
	SQL       string         `json:"sql,omitempty"`
	ElapsedMS int64          `json:"elapsed_ms"`
	Error     string         `json:"error,omitempty"`
	SavedFile string         `json:"saved_file,omitempty"`
}

// QueryAuditRecord is the badger-persisted trace of one analytics request,
// kept for operator diagnosis.
type QueryAuditRecord struct {
	ID           string `json:"id"`
	Question     string `json:"question"`
	GeneratedSQL string `json:"generated_sql,omitempty"`
	SafeSQL      string `json:"safe_sql,omitempty"`
	Status       string `json:"status"` // "ok", "rejected", "translate_failed", "execute_failed"
	RowCount     int    `json:"row_count"`
	ElapsedMS    int64  `json:"elapsed_ms"`
	Timestamp    string `json:"timestamp"`
}

// ResultFile is an exported result set saved to disk.
type ResultFile struct {
	Filename  string          `json:"filename"`
	Query     string          `json:"query,omitempty"`
	Timestamp string          `json:"timestamp"`
	Columns   []string        `json:"columns"`
	Rows      [][]interface{} `json:"rows"`
	RowCount  int             `json:"row_count"`
}

type ResultFileInfo struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
	Format   string `json:"format"`
}
