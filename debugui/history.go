package debugui

// History is a fixed-size ring of samples, e.g. frame times in milliseconds.
type History struct {
	samples []float32
	offset  int
	filled  int
}

func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{samples: make([]float32, size)}
}

func (h *History) Push(v float32) {
	h.samples[h.offset] = v
	h.offset = (h.offset + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// Len returns the number of samples pushed, capped at the history size.
func (h *History) Len() int {
	return h.filled
}

func (h *History) Size() int {
	return len(h.samples)
}

// Ordered copies the samples oldest first into dst, which is grown to the
// history size. Slots never written are zero and come first.
func (h *History) Ordered(dst []float32) []float32 {
	if cap(dst) < len(h.samples) {
		dst = make([]float32, len(h.samples))
	}
	dst = dst[:len(h.samples)]
	copy(dst, h.samples[h.offset:])
	copy(dst[len(h.samples)-h.offset:], h.samples[:h.offset])
	return dst
}

// Last returns the most recent sample.
func (h *History) Last() float32 {
	if h.filled == 0 {
		return 0
	}
	return h.samples[(h.offset+len(h.samples)-1)%len(h.samples)]
}

func (h *History) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples {
		sum += v
	}
	return sum / float32(h.filled)
}

func (h *History) Max() float32 {
	var peak float32
	for _, v := range h.samples {
		if v > peak {
			peak = v
		}
	}
	return peak
}
