package wthor

// Kind is the type of a WTHOR file
type Kind int

// These are the supported file types
const (
	KindUnknown Kind = iota
	KindJou
	KindTrn
	KindWtb
	KindWtb10
)

func (k Kind) String() string {
	strings := map[Kind]string{
		KindUnknown: "Unknown",
		KindJou:     "Players",
		KindTrn:     "Tournaments",
		KindWtb:     "Games (8x8)",
		KindWtb10:   "Games (10x10)",
	}

	return strings[k]
}

// Extension returns the upper case file extension conventionally used
func (k Kind) Extension() string {
	switch k {
	case KindJou:
		return ".JOU"
	case KindTrn:
		return ".TRN"
	case KindWtb, KindWtb10:
		return ".WTB"
	default:
		return ""
	}
}

// RecordSize returns the size in bytes of each record
func (k Kind) RecordSize() int {
	switch k {
	case KindJou:
		return playerSlotSize
	case KindTrn:
		return tournamentSlotSize
	case KindWtb:
		return gameSize
	case KindWtb10:
		return game10Size
	default:
		return 0
	}
}
