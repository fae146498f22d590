package domain

import "sort"

// MergeCalculators combines cloud and local calculators.
//
// Cloud calculators are kept with their IDs and order. Each local
// calculator whose ID is unknown, or whose content differs from the
// calculator already holding that ID, is appended under a fresh ID one
// above the largest seen so far. The returned count is the number of
// calculators appended.
func MergeCalculators(local, cloud []Calculator) ([]Calculator, int) {
	merged := make([]Calculator, 0, len(cloud)+len(local))
	index := make(map[int]int, len(cloud)+len(local))
	maxID := 0

	for _, c := range cloud {
		if pos, ok := index[c.ID]; ok {
			merged[pos] = c.Clone()
			continue
		}
		index[c.ID] = len(merged)
		merged = append(merged, c.Clone())
		maxID = max(maxID, c.ID)
	}

	appended := 0
	for _, c := range local {
		if pos, ok := index[c.ID]; ok && merged[pos].SameContent(c) {
			continue
		}
		maxID++
		moved := c.Clone()
		moved.ID = maxID
		index[maxID] = len(merged)
		merged = append(merged, moved)
		appended++
	}
	return merged, appended
}

// HasCalculatorChanges reports whether any local calculator lacks an
// identical counterpart in the cloud set, regardless of ID.
func HasCalculatorChanges(local, cloud []Calculator) bool {
	for _, l := range local {
		found := false
		for _, c := range cloud {
			if l.SameContent(c) {
				found = true
				break
			}
		}
		if !found {
			return true
		}
	}
	return false
}

// SameBands reports whether two band lists are equal once both are
// ordered by Min descending.
func SameBands(a, b []GradeBand) bool {
	if len(a) != len(b) {
		return false
	}
	sa := sortedBands(a)
	sb := sortedBands(b)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

func sortedBands(bands []GradeBand) []GradeBand {
	out := make([]GradeBand, len(bands))
	copy(out, bands)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Min > out[j].Min })
	return out
}
