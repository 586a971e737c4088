package lexer

import (
	"fmt"

	"lox/internal/source"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в файле
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   0,
		Limit: limit,
	}
}

// EOF сообщает, что курсор стоит на сентинеле или за пределами буфера.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit || c.File.Content[c.Off] == source.Sentinel
}

// Peek читает текущий байт, если есть, иначе возвращает Sentinel
func (c *Cursor) Peek() byte {
	if c.Off >= c.Limit {
		return source.Sentinel
	}
	return c.File.Content[c.Off]
}

// PeekNext читает байт после текущего. На сентинеле дальше не смотрим.
func (c *Cursor) PeekNext() byte {
	if c.EOF() || c.Off+1 >= c.Limit {
		return source.Sentinel
	}
	return c.File.Content[c.Off+1]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт.
// Сентинель не потребляется.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return source.Sentinel
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}
