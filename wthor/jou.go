package wthor

import "fmt"

// Jou is a .JOU file which holds the names of players. A player is
// referenced from a game by their index
type Jou struct {
	Created Date
	// Players is nil when decoded from a file with no players
	Players []PlayerName
}

// Kind returns KindJou
func (j *Jou) Kind() Kind {
	return KindJou
}

// Len returns the number of players
func (j *Jou) Len() int {
	return len(j.Players)
}

// Size returns the size of the encoded file
func (j *Jou) Size() int {
	return HeaderSize + playerSlotSize*len(j.Players)
}

// MarshalTo encodes the file into b
func (j *Jou) MarshalTo(b []byte) error {
	if len(b) != j.Size() {
		return fmt.Errorf("%w: %d bytes, expected %d", ErrBufferSize, len(b), j.Size())
	}

	h, err := newNameHeader(j.Created, len(j.Players))
	if err != nil {
		return err
	}

	names := make([]string, len(j.Players))
	for i, p := range j.Players {
		names[i] = p.s
	}

	prefix, rest, _ := splitPrefix(b, HeaderSize)
	h.encode(prefix)

	return encodeNames(rest, names, playerSlotSize, int(h.NameCount))
}

// MarshalBinary encodes the file into binary form and returns the result
func (j *Jou) MarshalBinary() ([]byte, error) {
	b := make([]byte, j.Size())
	if err := j.MarshalTo(b); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalBinary decodes the file from binary form. j is only modified if
// the whole file is valid
func (j *Jou) UnmarshalBinary(b []byte) error {
	h, rest, err := decodeNameHeader(b)
	if err != nil {
		return err
	}

	names, err := decodeNames(rest, playerSlotSize, int(h.NameCount))
	if err != nil {
		return err
	}

	var players []PlayerName
	if len(names) > 0 {
		players = make([]PlayerName, len(names))
		for i, n := range names {
			players[i] = PlayerName{n}
		}
	}

	*j = Jou{
		Created: h.Created,
		Players: players,
	}

	return nil
}
