package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsQuotaExhausted(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"quota substring", errors.New("googleapi: Error 429: Quota exceeded"), true},
		{"bare 429", errors.New("received 429 from upstream"), true},
		{"insufficient", errors.New("insufficient_quota: billing limit reached"), true},
		{"wrapped", fmt.Errorf("generate: %w", errors.New("quota exhausted")), true},
		{"unrelated", errors.New("connection refused"), false},
		{"auth failure", errors.New("API key not valid"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuotaExhausted(tt.err))
		})
	}
}
