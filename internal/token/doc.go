// Package token defines lexical token kinds for the lox scanner.
// Invariants:
//   - Token.Text is the exact lexeme covered by Token.Span.
//   - Token.Line is the 1-based line on which the token starts.
//   - Error tokens have Kind Invalid and a non-empty Message.
//   - Comments and whitespace never appear in the token stream.
package token
