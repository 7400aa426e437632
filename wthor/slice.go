package wthor

// splitPrefix returns the first n bytes of b and whatever follows. Both
// share the backing array of b
func splitPrefix(b []byte, n int) ([]byte, []byte, bool) {
	if n < 0 || len(b) < n {
		return nil, nil, false
	}
	return b[:n:n], b[n:], true
}

// chunk divides b into count windows of width bytes each. b must be
// exactly width * count bytes long, any trailing or missing bytes are an
// error. Each window is capped so appending to it can't clobber the next
func chunk(b []byte, width, count int) ([][]byte, bool) {
	if width <= 0 || count < 0 || uint64(len(b)) != uint64(width)*uint64(count) {
		return nil, false
	}

	windows := make([][]byte, count)
	for i := range windows {
		start := i * width
		windows[i] = b[start : start+width : start+width]
	}

	return windows, true
}
