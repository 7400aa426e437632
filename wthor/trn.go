package wthor

import "fmt"

// Trn is a .TRN file which holds the names of tournaments. A tournament
// is referenced from a game by its index
type Trn struct {
	Created Date
	// Tournaments is nil when decoded from a file with no tournaments
	Tournaments []TournamentName
}

// Kind returns KindTrn
func (t *Trn) Kind() Kind {
	return KindTrn
}

// Len returns the number of tournaments
func (t *Trn) Len() int {
	return len(t.Tournaments)
}

// Size returns the size of the encoded file
func (t *Trn) Size() int {
	return HeaderSize + tournamentSlotSize*len(t.Tournaments)
}

// MarshalTo encodes the file into b
func (t *Trn) MarshalTo(b []byte) error {
	if len(b) != t.Size() {
		return fmt.Errorf("%w: %d bytes, expected %d", ErrBufferSize, len(b), t.Size())
	}

	h, err := newNameHeader(t.Created, len(t.Tournaments))
	if err != nil {
		return err
	}

	names := make([]string, len(t.Tournaments))
	for i, n := range t.Tournaments {
		names[i] = n.s
	}

	prefix, rest, _ := splitPrefix(b, HeaderSize)
	h.encode(prefix)

	return encodeNames(rest, names, tournamentSlotSize, int(h.NameCount))
}

// MarshalBinary encodes the file into binary form and returns the result
func (t *Trn) MarshalBinary() ([]byte, error) {
	b := make([]byte, t.Size())
	if err := t.MarshalTo(b); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalBinary decodes the file from binary form. t is only modified if
// the whole file is valid
func (t *Trn) UnmarshalBinary(b []byte) error {
	h, rest, err := decodeNameHeader(b)
	if err != nil {
		return err
	}

	names, err := decodeNames(rest, tournamentSlotSize, int(h.NameCount))
	if err != nil {
		return err
	}

	var tournaments []TournamentName
	if len(names) > 0 {
		tournaments = make([]TournamentName, len(names))
		for i, n := range names {
			tournaments[i] = TournamentName{n}
		}
	}

	*t = Trn{
		Created:     h.Created,
		Tournaments: tournaments,
	}

	return nil
}
