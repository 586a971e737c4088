package lexer

// skipTrivia пропускает пробелы, табы, \r, переводы строки и // комментарии.
// '\n' увеличивает счётчик строк до того, как будет съеден.
func (lx *Lexer) skipTrivia() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r':
			lx.cursor.Bump()
		case '\n':
			lx.line++
			lx.cursor.Bump()
		case '/':
			if lx.cursor.PeekNext() != '/' {
				return
			}
			// комментарий до \n или сентинела; сам \n остаётся для следующей итерации
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}
