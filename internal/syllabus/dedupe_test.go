package syllabus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

func TestDedupeKey(t *testing.T) {
	assert.Equal(t, dedupeKey("Essay!", "20"), dedupeKey("essay", "20"))
	assert.Equal(t, dedupeKey("Lab Report", "10"), dedupeKey("lab-report", "10"))
	assert.NotEqual(t, dedupeKey("essay", "20"), dedupeKey("essay", "25"))
	assert.NotEqual(t, dedupeKey("essay", "20"), dedupeKey("essays", "20"))
}

func TestSortByWeight_Stable(t *testing.T) {
	items := []domain.ParsedAssignment{
		{Name: "A", Weight: "30"},
		{Name: "B", Weight: "10"},
		{Name: "C", Weight: "30"},
		{Name: "D", Weight: "5"},
	}

	sortByWeight(items)

	names := []string{items[0].Name, items[1].Name, items[2].Name, items[3].Name}
	assert.Equal(t, []string{"D", "B", "A", "C"}, names)
}
