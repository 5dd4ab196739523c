package port

import "dentrack/internal/domain"

// AmountParser extracts aggregate production/collections figures from raw
// report text. A field with no recognizable total comes back nil; absence
// is never an error.
type AmountParser interface {
	Parse(text string) domain.AmountSummary
}

// ParserRegistry resolves a clinic name to its amount parser. An empty or
// unknown name resolves to the default parser.
type ParserRegistry interface {
	ForClinic(name string) AmountParser
}
