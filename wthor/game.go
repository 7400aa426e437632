package wthor

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// MovesLength is the number of move bytes stored for an 8x8 game
	MovesLength int = 60
	// Moves10Length is the number of move bytes stored for a 10x10 game
	Moves10Length int = 96

	gameInfoSize = 8
	gameSize     = gameInfoSize + MovesLength
	game10Size   = gameInfoSize + Moves10Length
)

var (
	// ErrTooManyMoves is returned when a move list is longer than a game can hold
	ErrTooManyMoves = errors.New("wthor: too many moves")
	// ErrInvalidMove is returned when a move list contains the zero byte
	// that marks the end of the moves
	ErrInvalidMove = errors.New("wthor: invalid move")
)

// GameInfo holds the fields common to games on either board size
type GameInfo struct {
	// Tournament is the index of the tournament in the .TRN file
	Tournament uint16
	// BlackPlayer is the index of the black player in the .JOU file
	BlackPlayer uint16
	// WhitePlayer is the index of the white player in the .JOU file
	WhitePlayer uint16
	// Score is the final number of black discs
	Score uint8
	// TheoreticalScore is the number of black discs with perfect play
	// from the calculation depth onwards
	TheoreticalScore uint8
}

func decodeGameInfo(b []byte) GameInfo {
	return GameInfo{
		Tournament:       binary.LittleEndian.Uint16(b[0:]),
		BlackPlayer:      binary.LittleEndian.Uint16(b[2:]),
		WhitePlayer:      binary.LittleEndian.Uint16(b[4:]),
		Score:            b[6],
		TheoreticalScore: b[7],
	}
}

func (g GameInfo) encode(b []byte) {
	binary.LittleEndian.PutUint16(b[0:], g.Tournament)
	binary.LittleEndian.PutUint16(b[2:], g.BlackPlayer)
	binary.LittleEndian.PutUint16(b[4:], g.WhitePlayer)
	b[6] = g.Score
	b[7] = g.TheoreticalScore
}

// Moves is the move list of an 8x8 game. Each byte is an encoded square
// and the list ends at the first zero byte
type Moves [MovesLength]byte

// NewMoves returns Moves holding b followed by zeroes. b must not contain
// a zero byte
func NewMoves(b []byte) (Moves, error) {
	var m Moves
	if err := checkMoves(b, len(m)); err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// Len returns the number of moves before the first zero byte
func (m Moves) Len() int {
	return movesLen(m[:])
}

// List returns a copy of the moves before the first zero byte
func (m Moves) List() []byte {
	return append([]byte(nil), m[:m.Len()]...)
}

// Moves10 is the move list of a 10x10 game
type Moves10 [Moves10Length]byte

// NewMoves10 returns Moves10 holding b followed by zeroes. b must not
// contain a zero byte
func NewMoves10(b []byte) (Moves10, error) {
	var m Moves10
	if err := checkMoves(b, len(m)); err != nil {
		return m, err
	}
	copy(m[:], b)
	return m, nil
}

// Len returns the number of moves before the first zero byte
func (m Moves10) Len() int {
	return movesLen(m[:])
}

// List returns a copy of the moves before the first zero byte
func (m Moves10) List() []byte {
	return append([]byte(nil), m[:m.Len()]...)
}

func checkMoves(b []byte, length int) error {
	if len(b) > length {
		return fmt.Errorf("%w: %d moves, limit is %d", ErrTooManyMoves, len(b), length)
	}
	if i := movesLen(b); i < len(b) {
		return fmt.Errorf("%w: zero byte at move %d", ErrInvalidMove, i)
	}
	return nil
}

func movesLen(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return len(b)
}

// Game is a game played on an 8x8 board. Move bytes after the first zero
// are kept as read but always written as zero
type Game struct {
	GameInfo
	Moves Moves
}

// Game10 is a game played on a 10x10 board
type Game10 struct {
	GameInfo
	Moves Moves10
}

// encodeMoves writes the moves up to the first zero byte, everything after
// that is written as zero
func encodeMoves(b, moves []byte) {
	n := copy(b, moves[:movesLen(moves)])
	for i := n; i < len(b); i++ {
		b[i] = 0
	}
}

func decodeGames(b []byte, count int) ([]Game, error) {
	slots, ok := chunk(b, gameSize, count)
	if !ok {
		return nil, invalid("%d bytes doesn't hold %d games of %d bytes", len(b), count, gameSize)
	}

	if count == 0 {
		return nil, nil
	}

	games := make([]Game, count)
	for i, slot := range slots {
		games[i].GameInfo = decodeGameInfo(slot)
		copy(games[i].Moves[:], slot[gameInfoSize:])
	}

	return games, nil
}

func encodeGames(b []byte, games []Game, count int) error {
	if len(games) != count {
		return fmt.Errorf("%w: %d games, expected %d", ErrCountMismatch, len(games), count)
	}

	slots, ok := chunk(b, gameSize, count)
	if !ok {
		return ErrBufferSize
	}

	for i, slot := range slots {
		games[i].GameInfo.encode(slot)
		encodeMoves(slot[gameInfoSize:], games[i].Moves[:])
	}

	return nil
}

func decodeGames10(b []byte, count int) ([]Game10, error) {
	slots, ok := chunk(b, game10Size, count)
	if !ok {
		return nil, invalid("%d bytes doesn't hold %d games of %d bytes", len(b), count, game10Size)
	}

	if count == 0 {
		return nil, nil
	}

	games := make([]Game10, count)
	for i, slot := range slots {
		games[i].GameInfo = decodeGameInfo(slot)
		copy(games[i].Moves[:], slot[gameInfoSize:])
	}

	return games, nil
}

func encodeGames10(b []byte, games []Game10, count int) error {
	if len(games) != count {
		return fmt.Errorf("%w: %d games, expected %d", ErrCountMismatch, len(games), count)
	}

	slots, ok := chunk(b, game10Size, count)
	if !ok {
		return ErrBufferSize
	}

	for i, slot := range slots {
		games[i].GameInfo.encode(slot)
		encodeMoves(slot[gameInfoSize:], games[i].Moves[:])
	}

	return nil
}
