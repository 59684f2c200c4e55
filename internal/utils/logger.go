package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line per domain event, keyed by module and
// action. Payloads are summarized; never log credentials or token material.
func LogEvent(requestID, module, action, message string) {
	log.Printf("[%s] action=%s request_id=%s msg=%s",
		strings.ToUpper(module), action, strings.TrimSpace(requestID), message)
}
