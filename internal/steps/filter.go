package steps

// Attention returns the results that need the user's attention, in order.
func Attention(items []Result) []Result {
	var out []Result
	for _, item := range items {
		if item.NeedsAttention() {
			out = append(out, item)
		}
	}
	return out
}

// Find returns the last result recorded for step.
func Find(items []Result, step string) (Result, bool) {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Step == step {
			return items[i], true
		}
	}
	return Result{}, false
}
