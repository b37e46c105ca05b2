package scramble

// HintStep is the number of letters revealed per wrong answer: ceil(20% of
// the word length), computed from the full length every time, so it never
// shrinks as letters get revealed.
func HintStep(length int) int {
	if length <= 0 {
		return 0
	}
	return (length + 4) / 5
}

// escalate grants the next batch of hint letters, picked at random from the
// positions still hidden. It reports true once the hints cover the word.
func (r *Round) escalate() bool {
	n := len(r.target)
	total := r.hints + HintStep(n)
	if total >= n {
		r.hints = n
		return true
	}
	hidden := make([]int, 0, n)
	for i, ok := range r.revealed {
		if !ok {
			hidden = append(hidden, i)
		}
	}
	need := total - (n - len(hidden))
	if need > len(hidden) {
		need = len(hidden)
	}
	r.rng.Shuffle(len(hidden), func(i, j int) {
		hidden[i], hidden[j] = hidden[j], hidden[i]
	})
	for _, pos := range hidden[:need] {
		r.revealed[pos] = true
	}
	r.hints = total
	return false
}
