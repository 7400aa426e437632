package wthor

import "fmt"

// DefaultDepth is the calculation depth implied by a depth of zero
const DefaultDepth uint8 = 22

func depth(d uint8) uint8 {
	if d == 0 {
		return DefaultDepth
	}
	return d
}

// Wtb is a .wtb file which holds the games played on an 8x8 board in a
// given year
type Wtb struct {
	Created Date
	// Year is the year the games were played
	Year uint16
	// CalculationDepth is the number of empty squares from which the
	// theoretical score of each game was calculated
	CalculationDepth uint8
	// Games is nil when decoded from a file with no games
	Games []Game
}

// Depth returns the calculation depth, mapping the legacy value of zero to
// DefaultDepth
func (w *Wtb) Depth() uint8 {
	return depth(w.CalculationDepth)
}

// Kind returns KindWtb
func (w *Wtb) Kind() Kind {
	return KindWtb
}

// Len returns the number of games
func (w *Wtb) Len() int {
	return len(w.Games)
}

// Size returns the size of the encoded file
func (w *Wtb) Size() int {
	return HeaderSize + gameSize*len(w.Games)
}

// MarshalTo encodes the file into b, the board size is always written as 8
func (w *Wtb) MarshalTo(b []byte) error {
	if len(b) != w.Size() {
		return fmt.Errorf("%w: %d bytes, expected %d", ErrBufferSize, len(b), w.Size())
	}

	h, err := newGameHeader(w.Created, len(w.Games), w.Year, boardSize8, w.CalculationDepth)
	if err != nil {
		return err
	}

	prefix, rest, _ := splitPrefix(b, HeaderSize)
	h.encode(prefix)

	return encodeGames(rest, w.Games, int(h.GameCount))
}

// MarshalBinary encodes the file into binary form and returns the result
func (w *Wtb) MarshalBinary() ([]byte, error) {
	b := make([]byte, w.Size())
	if err := w.MarshalTo(b); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalBinary decodes the file from binary form. Older files use a
// board size of zero which is treated the same as 8
func (w *Wtb) UnmarshalBinary(b []byte) error {
	h, rest, err := decodeGameHeader(b, boardSizeLegacy, boardSize8)
	if err != nil {
		return err
	}

	games, err := decodeGames(rest, int(h.GameCount))
	if err != nil {
		return err
	}

	*w = Wtb{
		Created:          h.Created,
		Year:             h.Year,
		CalculationDepth: h.Depth,
		Games:            games,
	}

	return nil
}

// Wtb10 is a .wtb file which holds the games played on a 10x10 board in a
// given year
type Wtb10 struct {
	Created          Date
	Year             uint16
	CalculationDepth uint8
	// Games is nil when decoded from a file with no games
	Games []Game10
}

// Depth returns the calculation depth, mapping the legacy value of zero to
// DefaultDepth
func (w *Wtb10) Depth() uint8 {
	return depth(w.CalculationDepth)
}

// Kind returns KindWtb10
func (w *Wtb10) Kind() Kind {
	return KindWtb10
}

// Len returns the number of games
func (w *Wtb10) Len() int {
	return len(w.Games)
}

// Size returns the size of the encoded file
func (w *Wtb10) Size() int {
	return HeaderSize + game10Size*len(w.Games)
}

// MarshalTo encodes the file into b, the board size is always written as 10
func (w *Wtb10) MarshalTo(b []byte) error {
	if len(b) != w.Size() {
		return fmt.Errorf("%w: %d bytes, expected %d", ErrBufferSize, len(b), w.Size())
	}

	h, err := newGameHeader(w.Created, len(w.Games), w.Year, boardSize10, w.CalculationDepth)
	if err != nil {
		return err
	}

	prefix, rest, _ := splitPrefix(b, HeaderSize)
	h.encode(prefix)

	return encodeGames10(rest, w.Games, int(h.GameCount))
}

// MarshalBinary encodes the file into binary form and returns the result
func (w *Wtb10) MarshalBinary() ([]byte, error) {
	b := make([]byte, w.Size())
	if err := w.MarshalTo(b); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalBinary decodes the file from binary form
func (w *Wtb10) UnmarshalBinary(b []byte) error {
	h, rest, err := decodeGameHeader(b, boardSize10)
	if err != nil {
		return err
	}

	games, err := decodeGames10(rest, int(h.GameCount))
	if err != nil {
		return err
	}

	*w = Wtb10{
		Created:          h.Created,
		Year:             h.Year,
		CalculationDepth: h.Depth,
		Games:            games,
	}

	return nil
}
