package board

import _ "embed"

//go:embed default.toml
var defaultBoard []byte

// Default returns the built-in three column kanban board.
func Default() *Board {
	b, err := Parse(defaultBoard)
	if err != nil {
		panic(err)
	}
	return b
}

// DefaultTOML returns the source of the built-in board, for use as a
// starting point for custom boards.
func DefaultTOML() []byte {
	return defaultBoard
}
