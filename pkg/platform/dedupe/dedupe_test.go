package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdered(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, Ordered([]int{3, 1, 3, 2, 1}))
	assert.Empty(t, Ordered([]string{}))
	assert.Nil(t, Ordered[string](nil))
}

func TestTrimmed(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"trims and dedupes", []string{"  UFORE ", "FORMUE", "UFORE", "", "  "}, []string{"UFORE", "FORMUE"}},
		{"keeps case", []string{"Fradrag", "FRADRAG"}, []string{"Fradrag", "FRADRAG"}},
		{"all empty", []string{"", " "}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trimmed(tt.in))
		})
	}
}
