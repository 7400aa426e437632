/*
Package wthor implements the WTHOR database formats used by the Fédération
Française d'Othello to publish historical game results. .JOU files hold
player names, .TRN files hold tournament names and .wtb files hold the
games played in a given year on either an 8x8 or a 10x10 board.
*/
package wthor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// These are the file names used on the WTHOR download site
const (
	JouFileName = "WTHOR.JOU"
	TrnFileName = "WTHOR.TRN"
)

var (
	// ErrInvalidFormat is returned when a buffer does not hold a valid file
	ErrInvalidFormat = errors.New("wthor: invalid format")
	// ErrBufferSize is returned when a destination buffer is not exactly Size() bytes
	ErrBufferSize = errors.New("wthor: buffer size mismatch")
	// ErrCountMismatch is returned when the number of records can't be stored in the header
	ErrCountMismatch = errors.New("wthor: record count mismatch")
	// ErrUnknownKind is returned when a file name doesn't map to a known file type
	ErrUnknownKind = errors.New("wthor: unknown file type")
)

func invalid(format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidFormat}, a...)...)
}

// WtbFileName returns the name of the game file for the passed year. The
// stem is upper case but the extension is lower case
func WtbFileName(year int) string {
	return fmt.Sprintf("WTH_%d.wtb", year)
}

// File is implemented by each of the WTHOR file types
type File interface {
	Kind() Kind
	// Len returns the number of records
	Len() int
	// Size returns the exact number of bytes needed to encode the file
	Size() int
	// MarshalTo encodes the file into b which must be exactly Size() bytes
	MarshalTo(b []byte) error
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(b []byte) error
}

var (
	_ File = new(Jou)
	_ File = new(Trn)
	_ File = new(Wtb)
	_ File = new(Wtb10)
)

// Decode decodes b as the file type implied by the extension of name. Game
// files for 10x10 boards share the .wtb extension so the board size in the
// header is used to tell them apart
func Decode(name string, b []byte) (File, error) {
	var f File
	switch strings.ToUpper(filepath.Ext(name)) {
	case KindJou.Extension():
		f = new(Jou)
	case KindTrn.Extension():
		f = new(Trn)
	case KindWtb.Extension():
		if len(b) > offsetBoardSize && b[offsetBoardSize] == boardSize10 {
			f = new(Wtb10)
		} else {
			f = new(Wtb)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}

	if err := f.UnmarshalBinary(b); err != nil {
		return nil, err
	}

	return f, nil
}
