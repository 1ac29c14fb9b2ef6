package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line per domain event (halt decisions, seat
// releases, schema warnings). Keep the message to counters and ids;
// never log payloads or credentials.
func LogEvent(requestID, module, action, message string) {
	rid := strings.TrimSpace(requestID)
	if rid == "" {
		rid = "-"
	}
	log.Printf("event=%s.%s request_id=%s %s", module, action, rid, message)
}
