package engine

// splitKey splits an assignment key into its module-path part and its final
// segment at the last dot outside index brackets. Range indexes contain
// dots ("node[2..5]"), so a plain LastIndex would split inside them.
func splitKey(key string) (path, leaf string, ok bool) {
	depth := 0
	last := -1
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth == 0 {
				last = i
			}
		}
	}
	if last <= 0 || last == len(key)-1 {
		return "", "", false
	}
	return key[:last], key[last+1:], true
}
