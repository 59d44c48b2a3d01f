package lexer

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// Жадные матчеры: съедают последовательность, только если она совпала целиком.
func (lx *Lexer) try3(a, b, c byte) bool {
	if lx.cursor.PeekAt(0) != a || lx.cursor.PeekAt(1) != b || lx.cursor.PeekAt(2) != c {
		return false
	}
	lx.cursor.Off += 3
	return true
}

func (lx *Lexer) try2(a, b byte) bool {
	if lx.cursor.PeekAt(0) != a || lx.cursor.PeekAt(1) != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}
