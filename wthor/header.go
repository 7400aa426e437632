package wthor

import "encoding/binary"

// HeaderSize is the size of the header at the start of every file
const HeaderSize = 16

const (
	offsetGameCount = 4
	offsetNameCount = 8
	offsetYear      = 10
	offsetBoardSize = 12
	offsetGameType  = 13
	offsetDepth     = 14
	offsetPadding   = 15
)

const (
	boardSizeLegacy uint8 = 0
	boardSize8      uint8 = 8
	boardSize10     uint8 = 10
)

// Date is the date a file was created. The fields are stored verbatim and
// never checked
type Date struct {
	Century uint8
	Year    uint8
	Month   uint8
	Day     uint8
}

type header struct {
	Created   Date
	GameCount uint32
	NameCount uint16
	Year      uint16
	BoardSize uint8
	GameType  uint8
	Depth     uint8
}

// decodeHeader expects exactly HeaderSize bytes
func decodeHeader(b []byte) header {
	return header{
		Created: Date{
			Century: b[0],
			Year:    b[1],
			Month:   b[2],
			Day:     b[3],
		},
		GameCount: binary.LittleEndian.Uint32(b[offsetGameCount:]),
		NameCount: binary.LittleEndian.Uint16(b[offsetNameCount:]),
		Year:      binary.LittleEndian.Uint16(b[offsetYear:]),
		BoardSize: b[offsetBoardSize],
		GameType:  b[offsetGameType],
		Depth:     b[offsetDepth],
	}
}

func (h header) encode(b []byte) {
	b[0] = h.Created.Century
	b[1] = h.Created.Year
	b[2] = h.Created.Month
	b[3] = h.Created.Day
	binary.LittleEndian.PutUint32(b[offsetGameCount:], h.GameCount)
	binary.LittleEndian.PutUint16(b[offsetNameCount:], h.NameCount)
	binary.LittleEndian.PutUint16(b[offsetYear:], h.Year)
	b[offsetBoardSize] = h.BoardSize
	b[offsetGameType] = h.GameType
	b[offsetDepth] = h.Depth
	b[offsetPadding] = 0
}

func readHeader(b []byte) (header, []byte, error) {
	prefix, rest, ok := splitPrefix(b, HeaderSize)
	if !ok {
		return header{}, nil, invalid("%d bytes is too short for a header", len(b))
	}
	return decodeHeader(prefix), rest, nil
}

// decodeNameHeader reads the header of a .JOU or .TRN file. Byte 14 is
// unused in these files and is ignored
func decodeNameHeader(b []byte) (header, []byte, error) {
	h, rest, err := readHeader(b)
	if err != nil {
		return header{}, nil, err
	}

	if h.GameCount != 0 || h.Year != 0 || h.BoardSize != 0 || h.GameType != 0 {
		return header{}, nil, invalid("reserved name header field is not zero")
	}

	return h, rest, nil
}

// decodeGameHeader reads the header of a .wtb file, the board size must be
// one of the passed values
func decodeGameHeader(b []byte, boardSizes ...uint8) (header, []byte, error) {
	h, rest, err := readHeader(b)
	if err != nil {
		return header{}, nil, err
	}

	if h.NameCount != 0 || h.GameType != 0 {
		return header{}, nil, invalid("reserved game header field is not zero")
	}

	for _, size := range boardSizes {
		if h.BoardSize == size {
			return h, rest, nil
		}
	}

	return header{}, nil, invalid("unexpected board size %d", h.BoardSize)
}

func newNameHeader(created Date, count int) (header, error) {
	h := header{
		Created:   created,
		NameCount: uint16(count),
	}
	if int(h.NameCount) != count {
		return header{}, ErrCountMismatch
	}
	return h, nil
}

func newGameHeader(created Date, count int, year uint16, boardSize, depth uint8) (header, error) {
	h := header{
		Created:   created,
		GameCount: uint32(count),
		Year:      year,
		BoardSize: boardSize,
		Depth:     depth,
	}
	if uint64(h.GameCount) != uint64(count) {
		return header{}, ErrCountMismatch
	}
	return h, nil
}
