package syllabus

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

var nonWord = regexp.MustCompile(`\W`)

// dedupeKey identifies an assignment by normalised name and weight.
func dedupeKey(name, weight string) string {
	return nonWord.ReplaceAllString(strings.ToLower(name), "") + "\x00" + weight
}

// sortByWeight orders assignments by ascending weight, keeping input order on ties.
func sortByWeight(items []domain.ParsedAssignment) {
	sort.SliceStable(items, func(i, j int) bool {
		wi, _ := strconv.Atoi(items[i].Weight)
		wj, _ := strconv.Atoi(items[j].Weight)
		return wi < wj
	})
}
