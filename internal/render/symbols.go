package render

// Symbols prefixed to lines of default output.
const (
	// SymbolError marks user input errors.
	SymbolError = "✗"

	// SymbolSuccess marks completed checks.
	SymbolSuccess = "✓"

	// SymbolHint marks follow-up guidance.
	SymbolHint = "💡"

	// SymbolBullet marks list entries in plain output.
	SymbolBullet = "•"
)
