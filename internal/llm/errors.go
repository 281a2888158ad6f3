package llm

import "strings"

// quotaSignatures are the substrings provider errors carry when the failure
// is quota or rate-limit exhaustion rather than a hard fault. Workflows that
// support it degrade to a deterministic mock on these.
var quotaSignatures = []string{"quota", "429", "insufficient"}

// IsQuotaExhausted reports whether err looks like a quota/rate-limit failure.
func IsQuotaExhausted(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range quotaSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
