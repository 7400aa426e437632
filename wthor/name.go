package wthor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

const (
	// PlayerNameLength is the maximum length of a player name
	PlayerNameLength int = 19
	// TournamentNameLength is the maximum length of a tournament name
	TournamentNameLength int = 25

	playerSlotSize     = PlayerNameLength + 1
	tournamentSlotSize = TournamentNameLength + 1
)

// Names are terminated with an ASCII '0', not a NUL
const terminator byte = '0'

var (
	// ErrNameTooLong is returned when a name exceeds the maximum length
	ErrNameTooLong = errors.New("wthor: name too long")
	// ErrNameTerminator is returned when a name contains the terminator byte
	ErrNameTerminator = errors.New("wthor: name contains terminator")
)

func checkName(s string, length int) error {
	if len(s) > length {
		return fmt.Errorf("%w: %q is %d bytes, limit is %d", ErrNameTooLong, s, len(s), length)
	}
	if i := strings.IndexByte(s, terminator); i >= 0 {
		return fmt.Errorf("%w: %q at offset %d", ErrNameTerminator, s, i)
	}
	return nil
}

// PlayerName is the name of a player, at most PlayerNameLength bytes. The
// bytes are not required to be in any particular character set
type PlayerName struct {
	s string
}

// NewPlayerName returns a PlayerName or an error if s can't be stored
func NewPlayerName(s string) (PlayerName, error) {
	if err := checkName(s, PlayerNameLength); err != nil {
		return PlayerName{}, err
	}
	return PlayerName{s}, nil
}

func (n PlayerName) String() string {
	return n.s
}

// TournamentName is the name of a tournament, at most TournamentNameLength
// bytes
type TournamentName struct {
	s string
}

// NewTournamentName returns a TournamentName or an error if s can't be
// stored
func NewTournamentName(s string) (TournamentName, error) {
	if err := checkName(s, TournamentNameLength); err != nil {
		return TournamentName{}, err
	}
	return TournamentName{s}, nil
}

func (n TournamentName) String() string {
	return n.s
}

// decodeNames returns count names from b, each stored in a slot of width
// bytes. The slot is only read up to the first terminator
func decodeNames(b []byte, width, count int) ([]string, error) {
	slots, ok := chunk(b, width, count)
	if !ok {
		return nil, invalid("%d bytes doesn't hold %d names of %d bytes", len(b), count, width)
	}

	names := make([]string, count)
	for i, slot := range slots {
		n := bytes.IndexByte(slot, terminator)
		if n < 0 {
			return nil, invalid("name %d is not terminated", i)
		}
		names[i] = string(slot[:n])
	}

	return names, nil
}

// encodeNames writes names into b, the unused tail of each slot is zeroed.
// Each name must already fit in width-1 bytes
func encodeNames(b []byte, names []string, width, count int) error {
	if len(names) != count {
		return fmt.Errorf("%w: %d names, expected %d", ErrCountMismatch, len(names), count)
	}

	slots, ok := chunk(b, width, count)
	if !ok {
		return ErrBufferSize
	}

	for i, slot := range slots {
		n := copy(slot, names[i])
		slot[n] = terminator
		for j := n + 1; j < len(slot); j++ {
			slot[j] = 0
		}
	}

	return nil
}
