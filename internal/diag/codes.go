package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	// Синтаксические (минимальная стадия компиляции)
	SynInfo             Code = 2000
	SynExpectExpression Code = 2001
	SynExpectEnd        Code = 2002
	SynBadNumber        Code = 2003

	// Ввод-вывод
	IOLoadFileError  Code = 4001
	IOBadChunkImage  Code = 4002
	IOCacheCorrupted Code = 4003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unexpected character.",
		LexUnterminatedString: "Unterminated String",
		SynInfo:               "Syntax information",
		SynExpectExpression:   "Expect expression.",
		SynExpectEnd:          "Expect end of expression.",
		SynBadNumber:          "Invalid number literal.",
		IOLoadFileError:       "I/O load file error",
		IOBadChunkImage:       "Invalid chunk image",
		IOCacheCorrupted:      "Chunk cache entry corrupted",
	}
)

// ID returns the stable string form of the code, e.g. LEX1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
