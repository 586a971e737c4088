package token

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Классификация: диспетчеризация по первому символу, для 'f' и 't' по второму,
// затем сравнение длины и хвоста. Регистрозависимо.
func LookupKeyword(ident string) (Kind, bool) {
	if len(ident) < 2 {
		return Ident, false
	}
	switch ident[0] {
	case 'a':
		return checkKeyword(ident, 1, "nd", KwAnd)
	case 'c':
		return checkKeyword(ident, 1, "lass", KwClass)
	case 'e':
		return checkKeyword(ident, 1, "lse", KwElse)
	case 'f':
		switch ident[1] {
		case 'a':
			return checkKeyword(ident, 2, "lse", KwFalse)
		case 'o':
			return checkKeyword(ident, 2, "r", KwFor)
		case 'u':
			return checkKeyword(ident, 2, "n", KwFun)
		}
	case 'i':
		return checkKeyword(ident, 1, "f", KwIf)
	case 'n':
		return checkKeyword(ident, 1, "il", KwNil)
	case 'o':
		return checkKeyword(ident, 1, "r", KwOr)
	case 'p':
		return checkKeyword(ident, 1, "rint", KwPrint)
	case 'r':
		return checkKeyword(ident, 1, "eturn", KwReturn)
	case 's':
		return checkKeyword(ident, 1, "uper", KwSuper)
	case 't':
		switch ident[1] {
		case 'h':
			return checkKeyword(ident, 2, "is", KwThis)
		case 'r':
			return checkKeyword(ident, 2, "ue", KwTrue)
		}
	case 'v':
		return checkKeyword(ident, 1, "ar", KwVar)
	case 'w':
		return checkKeyword(ident, 1, "hile", KwWhile)
	}
	return Ident, false
}

// checkKeyword сравнивает длину и хвост ident начиная с позиции start.
func checkKeyword(ident string, start int, rest string, kind Kind) (Kind, bool) {
	if len(ident) == start+len(rest) && ident[start:] == rest {
		return kind, true
	}
	return Ident, false
}
