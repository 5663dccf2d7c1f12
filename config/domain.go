package config

// Domain constants shared by the prompt rules and the SQL safety rewrites.
// These mirror the semantics documented in schema_context.txt.
const (
	// TransactionTable is the table whose category filter the generator keeps
	// getting wrong.
	TransactionTable = "member_transactions"

	// TransactionTypeColumn holds the record subtype.
	TransactionTypeColumn = "transaction_type"

	// SaleTransactionType is the only category that counts toward revenue.
	SaleTransactionType = "銷售"
)

// WrongTransactionTypes are category values the generator is known to invent.
// The validator normalizes them to SaleTransactionType.
var WrongTransactionTypes = []string{"消費", "購買", "sale"}

// StoreColors maps store names to display color tokens for chart rendering.
// Unknown names simply get no color.
var StoreColors = map[string]string{
	"信義門市": "#5470C6",
	"板橋門市": "#91CC75",
	"台中門市": "#FAC858",
	"高雄門市": "#EE6666",
	"線上商店": "#73C0DE",
}
