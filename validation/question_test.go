package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     bool
	}{
		{"chinese question", "上個月各門市的營收排名？", true},
		{"english question", "what was last month's revenue?", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"single char", "嗨", false},
		{"repeated char", "aaaaaaaa", false},
		{"symbols only", "!!!???###", false},
		{"mostly digits", "123456 7890", false},
		{"too long", strings.Repeat("營收", 1500), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidQuestion(tt.question))
		})
	}
}
