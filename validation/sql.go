package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"storepulse/config"
	"storepulse/models"
)

// Result is the outcome of validating one generated statement. On rejection
// Reason explains why and the caller must not execute anything.
type Result struct {
	OK        bool
	Statement models.SafeStatement
	Reason    string
}

// Validator turns untrusted generated SQL into an execution-safe statement,
// or rejects it. It is a pure function of its input: it never talks to the
// database and always terminates with one of the two outcomes.
type Validator struct {
	maxRows int
	now     func() time.Time
}

func New(maxRows int) *Validator {
	return &Validator{maxRows: maxRows, now: time.Now}
}

var (
	readOnlyRe = regexp.MustCompile(`(?i)^(select|with)\b`)

	// Write/DDL/privilege verbs, SELECT INTO, and system catalogs. Whole-word,
	// case-insensitive. EXECUTE before EXEC so the longer token wins.
	forbiddenRe = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|truncate|create|grant|revoke|execute|exec|into|information_schema|pg_catalog)\b`)

	monthFuncRe    = regexp.MustCompile(`(?i)\bMONTH\s*\(\s*([A-Za-z_][\w.]*)\s*\)\s*=\s*(\d{1,2})\b`)
	monthExtractRe = regexp.MustCompile(`(?i)\bEXTRACT\s*\(\s*MONTH\s+FROM\s+([A-Za-z_][\w.]*)\s*\)\s*=\s*(\d{1,2})\b`)

	limitRe = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)\b`)

	transactionTableRe = regexp.MustCompile(`(?i)\b` + config.TransactionTable + `\b`)
	typeFilterRe       = regexp.MustCompile(`(?i)\b` + config.TransactionTypeColumn + `\b`)
	whereRe            = regexp.MustCompile(`(?i)\bWHERE\b`)
)

// Validate applies the safety gates and, if they all pass, the compensating
// domain rewrites plus the row cap. The original text is returned untouched
// alongside the reason whenever a gate rejects.
func (v *Validator) Validate(gen models.GeneratedStatement) Result {
	sql := strings.TrimSpace(gen.Text)
	sql = strings.TrimSuffix(sql, ";")
	sql = strings.TrimSpace(sql)

	// The denylist runs first so a statement that opens with a write verb is
	// rejected with a reason naming that verb.
	if m := forbiddenRe.FindString(sql); m != "" {
		return reject(fmt.Sprintf("偵測到禁用的 SQL 關鍵字：%s", strings.ToUpper(m)))
	}

	if !readOnlyRe.MatchString(sql) {
		return reject("只允許唯讀查詢（SELECT），不接受其他類型的 SQL")
	}

	if strings.Contains(sql, ";") {
		return reject("SQL 內含分號，不允許多重敘述")
	}

	if strings.Contains(sql, "--") || strings.Contains(sql, "/*") {
		return reject("SQL 內含註解符號，不允許執行")
	}

	sql = v.rewriteMonthFilters(sql)
	sql = v.rewriteCategoryFilter(sql)
	sql = v.enforceRowCap(sql)

	return Result{OK: true, Statement: models.SafeStatement{Text: sql}}
}

func reject(reason string) Result {
	return Result{OK: false, Reason: reason}
}

// rewriteMonthFilters replaces month-equality filters such as
// MONTH(created_at) = 8 or EXTRACT(MONTH FROM created_at) = 8 with an
// explicit half-open date range anchored to the current year. A bare month
// equality silently matches the same month of every year.
func (v *Validator) rewriteMonthFilters(sql string) string {
	year := v.now().Year()
	expand := func(col string, month int) string {
		next := month + 1
		nextYear := year
		if next > 12 {
			next = 1
			nextYear++
		}
		return fmt.Sprintf("%s >= '%04d-%02d-01' AND %s < '%04d-%02d-01'",
			col, year, month, col, nextYear, next)
	}
	for _, re := range []*regexp.Regexp{monthExtractRe, monthFuncRe} {
		sql = re.ReplaceAllStringFunc(sql, func(match string) string {
			sub := re.FindStringSubmatch(match)
			month, err := strconv.Atoi(sub[2])
			if err != nil || month < 1 || month > 12 {
				return match
			}
			return expand(sub[1], month)
		})
	}
	return sql
}

// rewriteCategoryFilter keeps revenue queries honest: on the transactions
// table, wrong category literals are normalized to the single valid sale
// type, and a missing category filter is injected right after WHERE. A
// statement with no WHERE clause at all is left alone.
func (v *Validator) rewriteCategoryFilter(sql string) string {
	if !transactionTableRe.MatchString(sql) {
		return sql
	}

	for _, wrong := range config.WrongTransactionTypes {
		wrongFilter := regexp.MustCompile(`(?i)\b` + config.TransactionTypeColumn + `\s*=\s*'` + regexp.QuoteMeta(wrong) + `'`)
		sql = wrongFilter.ReplaceAllString(sql,
			fmt.Sprintf("%s = '%s'", config.TransactionTypeColumn, config.SaleTransactionType))
	}

	if typeFilterRe.MatchString(sql) {
		return sql
	}
	loc := whereRe.FindStringIndex(sql)
	if loc == nil {
		return sql
	}
	injected := fmt.Sprintf("WHERE %s = '%s' AND", config.TransactionTypeColumn, config.SaleTransactionType)
	return sql[:loc[0]] + injected + sql[loc[1]:]
}

// enforceRowCap appends a LIMIT when none is present and clamps an existing
// one that exceeds the maximum. The cap is a hard ceiling.
func (v *Validator) enforceRowCap(sql string) string {
	matches := limitRe.FindAllStringSubmatchIndex(sql, -1)
	if len(matches) == 0 {
		return sql + fmt.Sprintf(" LIMIT %d", v.maxRows)
	}
	// Only the last LIMIT bounds the outer query.
	last := matches[len(matches)-1]
	n, err := strconv.Atoi(sql[last[2]:last[3]])
	if err != nil || n > v.maxRows {
		return sql[:last[2]] + strconv.Itoa(v.maxRows) + sql[last[3]:]
	}
	return sql
}
