package chunking

// slidingWindows emits windows of size code points over [start, end),
// advancing by size-overlap. An overlap outside [0, size) is treated as 0.
func slidingWindows(seq *sequence, src *source, start, end, size, overlap int) {
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	step := size - overlap
	for pos := start; pos < end; {
		stop := min(pos+size, end)
		seq.emit(pos, stop, src.Slice(pos, stop))
		if overlap == 0 {
			pos = stop
		} else {
			pos += step
		}
	}
}
