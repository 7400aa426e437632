package wthor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playerName(t *testing.T, s string) PlayerName {
	t.Helper()
	n, err := NewPlayerName(s)
	require.NoError(t, err)
	return n
}

func tournamentName(t *testing.T, s string) TournamentName {
	t.Helper()
	n, err := NewTournamentName(s)
	require.NoError(t, err)
	return n
}

func testJouBytes() []byte {
	b := []byte{
		0x14, 0x05, 0x06, 0x15,
		0x00, 0x00, 0x00, 0x00,
		0x02, 0x00,
		0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}

	slot := make([]byte, playerSlotSize)
	copy(slot, "ALICE0")
	b = append(b, slot...)

	slot = make([]byte, playerSlotSize)
	copy(slot, "BOB0")
	return append(b, slot...)
}

func TestJouUnmarshalBinary(t *testing.T) {
	b := testJouBytes()
	require.Len(t, b, 56)

	j := new(Jou)
	require.NoError(t, j.UnmarshalBinary(b))

	assert.Equal(t, Date{Century: 20, Year: 5, Month: 6, Day: 21}, j.Created)
	assert.Equal(t, []PlayerName{playerName(t, "ALICE"), playerName(t, "BOB")}, j.Players)
	assert.Equal(t, KindJou, j.Kind())
	assert.Equal(t, 2, j.Len())
	assert.Equal(t, 56, j.Size())

	out, err := j.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, b, out)
}

func TestJouRoundTrip(t *testing.T) {
	j := &Jou{
		Created: Date{Century: 20, Year: 23, Month: 12, Day: 31},
		Players: []PlayerName{
			playerName(t, strings.Repeat("M", PlayerNameLength)),
			playerName(t, ""),
			playerName(t, "Tastet Marc"),
		},
	}

	b, err := j.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, b, HeaderSize+3*playerSlotSize)

	out := new(Jou)
	require.NoError(t, out.UnmarshalBinary(b))
	assert.Equal(t, j, out)

	empty := new(Jou)
	b, err = empty.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, b, HeaderSize)

	out = new(Jou)
	require.NoError(t, out.UnmarshalBinary(b))
	assert.Equal(t, empty, out)
}

func TestJouMarshalToSize(t *testing.T) {
	j := &Jou{Players: []PlayerName{playerName(t, "ALICE")}}

	for _, n := range []int{j.Size() - 1, j.Size() + 1, 0} {
		err := j.MarshalTo(make([]byte, n))
		assert.ErrorIs(t, err, ErrBufferSize, "size %d", n)
	}

	assert.NoError(t, j.MarshalTo(make([]byte, j.Size())))
}

func TestJouMarshalToReusedBuffer(t *testing.T) {
	j := &Jou{Players: []PlayerName{playerName(t, "BOB")}}

	b := make([]byte, j.Size())
	for i := range b {
		b[i] = 0xff
	}
	require.NoError(t, j.MarshalTo(b))

	expected := make([]byte, j.Size())
	expected[offsetNameCount] = 1
	copy(expected[HeaderSize:], "BOB0")
	assert.Equal(t, expected, b)
}

func TestJouUnmarshalBinaryInvalid(t *testing.T) {
	tables := []struct {
		name   string
		modify func([]byte) []byte
	}{
		{"too short for header", func(b []byte) []byte { return b[:HeaderSize-1] }},
		{"one byte short", func(b []byte) []byte { return b[:len(b)-1] }},
		{"one byte over", func(b []byte) []byte { return append(b, 0) }},
		{"count too high", func(b []byte) []byte { b[offsetNameCount] = 3; return b }},
		{"count too low", func(b []byte) []byte { b[offsetNameCount] = 1; return b }},
		{"game count set", func(b []byte) []byte { b[offsetGameCount] = 1; return b }},
		{"year set", func(b []byte) []byte { b[offsetYear+1] = 1; return b }},
		{"board size set", func(b []byte) []byte { b[offsetBoardSize] = 8; return b }},
		{"game type set", func(b []byte) []byte { b[offsetGameType] = 1; return b }},
		{"unterminated", func(b []byte) []byte {
			for i := HeaderSize + playerSlotSize; i < len(b); i++ {
				b[i] = 'B'
			}
			return b
		}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			j := &Jou{Players: []PlayerName{playerName(t, "UNCHANGED")}}
			err := j.UnmarshalBinary(table.modify(testJouBytes()))
			assert.ErrorIs(t, err, ErrInvalidFormat)
			assert.Equal(t, []PlayerName{playerName(t, "UNCHANGED")}, j.Players)
		})
	}
}

func TestTrnRoundTrip(t *testing.T) {
	tr := &Trn{
		Created: Date{Century: 20, Year: 23, Month: 1, Day: 1},
		Tournaments: []TournamentName{
			tournamentName(t, "Championnat de France"),
			tournamentName(t, strings.Repeat("W", TournamentNameLength)),
		},
	}
	assert.Equal(t, HeaderSize+2*tournamentSlotSize, tr.Size())
	assert.Equal(t, KindTrn, tr.Kind())
	assert.Equal(t, 2, tr.Len())

	b, err := tr.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, byte(2), b[offsetNameCount])
	assert.Equal(t, terminator, b[HeaderSize+2*tournamentSlotSize-1])

	out := new(Trn)
	require.NoError(t, out.UnmarshalBinary(b))
	assert.Equal(t, tr, out)

	// A .TRN file is not a valid .JOU file
	assert.ErrorIs(t, new(Jou).UnmarshalBinary(b), ErrInvalidFormat)
}

func TestTrnMarshalToSize(t *testing.T) {
	tr := &Trn{Tournaments: []TournamentName{tournamentName(t, "Open")}}
	assert.ErrorIs(t, tr.MarshalTo(make([]byte, tr.Size()-1)), ErrBufferSize)
	assert.ErrorIs(t, tr.MarshalTo(make([]byte, tr.Size()+1)), ErrBufferSize)
}

func TestTooManyNames(t *testing.T) {
	j := &Jou{Players: make([]PlayerName, 1<<16)}

	err := j.MarshalTo(make([]byte, j.Size()))
	assert.ErrorIs(t, err, ErrCountMismatch)

	_, err = j.MarshalBinary()
	assert.ErrorIs(t, err, ErrCountMismatch)
}

func TestEmptyFilesDecodeToNil(t *testing.T) {
	j := &Jou{Players: []PlayerName{}}
	b, err := j.MarshalBinary()
	require.NoError(t, err)

	out := &Jou{Players: []PlayerName{playerName(t, "ALICE")}}
	require.NoError(t, out.UnmarshalBinary(b))
	assert.Nil(t, out.Players)

	tr := new(Trn)
	require.NoError(t, tr.UnmarshalBinary(make([]byte, HeaderSize)))
	assert.Nil(t, tr.Tournaments)

	b, err = (&Wtb{Year: 1977, Games: []Game{}}).MarshalBinary()
	require.NoError(t, err)

	w := new(Wtb)
	require.NoError(t, w.UnmarshalBinary(b))
	assert.Nil(t, w.Games)
	assert.Equal(t, uint16(1977), w.Year)
}
