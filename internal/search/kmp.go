package search

// KMP is the automaton strategy. It needs no per-buffer precomputation
// and builds the failure function of each pattern on every call.
type KMP struct{}

func NewKMP() *KMP {
	return &KMP{}
}

func (*KMP) Name() string { return KindKMP.String() }

func (*KMP) Prepare(data []byte) Text {
	return rawText(data)
}

func (*KMP) Contains(t Text, p Pattern) bool {
	return indexKMP(t.Bytes(), p.Bytes()) >= 0
}

// failureFunction returns f where f[i] is the length of the longest
// proper prefix of pattern[:i+1] that is also its suffix.
func failureFunction(pattern []byte) []int {
	f := make([]int, len(pattern))
	for i := 1; i < len(pattern); i++ {
		j := f[i-1]
		for j > 0 && pattern[i] != pattern[j] {
			j = f[j-1]
		}
		if pattern[i] == pattern[j] {
			j++
		}
		f[i] = j
	}
	return f
}

// indexKMP returns the offset of the first occurrence of pattern in
// text, or -1. An empty pattern never matches.
func indexKMP(text, pattern []byte) int {
	m := len(pattern)
	if m == 0 || m > len(text) {
		return -1
	}

	f := failureFunction(pattern)

	j := 0
	for i, c := range text {
		for j > 0 && c != pattern[j] {
			j = f[j-1]
		}
		if c == pattern[j] {
			j++
		}
		if j == m {
			return i - m + 1
		}
	}
	return -1
}
