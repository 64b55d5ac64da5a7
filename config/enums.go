package config

//go:generate go tool go-enum -f=$GOFILE --marshal

// Quote character used for strings the converter generates.
// ENUM(single, double)
type QuoteStyle string

func (q QuoteStyle) Char() string {
	if q == QuoteStyleDouble {
		return `"`
	}
	return `'`
}

// Source of syntax trees.
// ENUM(command, json)
type ParserKind string
