// Package token defines lexical token kinds, locations and trivia.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Token.Loc is derived from Span once by the lexer and never mutated;
//     copies for generic expansion go through Location.WithDuplicate.
//   - Attributes are lexed as '#' + '[' ... ']'; no per-attribute kinds.
package token
