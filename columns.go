package menufig

// SplitColumns partitions items into at most ncols display columns,
// preserving order. Items flagged KeepWithPrevious are never separated
// from their predecessor, so the split point slides forward past them;
// column balance is best-effort. Concatenating the result always yields
// the input unchanged.
func SplitColumns(items []ParamItem, ncols int) [][]ParamItem {
	if len(items) == 0 {
		return nil
	}
	if len(items) == 1 || ncols <= 1 {
		return [][]ParamItem{items}
	}

	// Find the first index at or past the even-split point where the
	// item may be separated from its predecessor.
	split := -1
	for ix := 1; ix < len(items); ix++ {
		if items[ix].KeepWithPrevious {
			continue
		}
		if float64(ix) >= float64(len(items))/float64(ncols) {
			split = ix
			break
		}
	}
	if split < 0 {
		return [][]ParamItem{items}
	}
	return append(
		[][]ParamItem{items[:split:split]},
		SplitColumns(items[split:], ncols-1)...,
	)
}
