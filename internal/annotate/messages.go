package annotate

// MessageKey identifies a display string in the message catalog.
type MessageKey string

const (
	NotCoveredStatementTitle   MessageKey = "notCoveredStatementTitle"
	NotCoveredStatementMessage MessageKey = "notCoveredStatementMessage"
	NotCoveredBranchTitle      MessageKey = "notCoveredBranchTitle"
	NotCoveredBranchMessage    MessageKey = "notCoveredBranchMessage"
	NotCoveredFunctionTitle    MessageKey = "notCoveredFunctionTitle"
	NotCoveredFunctionMessage  MessageKey = "notCoveredFunctionMessage"
)

// MessageKeys lists every key the scanner asks for.
func MessageKeys() []MessageKey {
	return []MessageKey{
		NotCoveredStatementTitle,
		NotCoveredStatementMessage,
		NotCoveredBranchTitle,
		NotCoveredBranchMessage,
		NotCoveredFunctionTitle,
		NotCoveredFunctionMessage,
	}
}

// Catalog resolves a message key into a string for the active locale.
type Catalog interface {
	Message(key MessageKey) string
}

// CatalogFunc adapts a plain function to Catalog.
type CatalogFunc func(MessageKey) string

func (f CatalogFunc) Message(key MessageKey) string { return f(key) }

// keyCatalog echoes keys back; used when no catalog is supplied.
type keyCatalog struct{}

func (keyCatalog) Message(key MessageKey) string { return string(key) }

// Kind is the category of coverage item an annotation reports.
type Kind uint8

const (
	KindStatement Kind = iota + 1
	KindBranch
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindStatement:
		return "statement"
	case KindBranch:
		return "branch"
	case KindFunction:
		return "function"
	}
	return "unknown"
}

// keys returns the title and message keys for the kind.
func (k Kind) keys() (MessageKey, MessageKey) {
	switch k {
	case KindStatement:
		return NotCoveredStatementTitle, NotCoveredStatementMessage
	case KindBranch:
		return NotCoveredBranchTitle, NotCoveredBranchMessage
	default:
		return NotCoveredFunctionTitle, NotCoveredFunctionMessage
	}
}
