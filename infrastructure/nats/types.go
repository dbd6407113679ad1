package nats

import (
	"strings"

	"taskboard/domain/ports"
)

const (
	StreamName    = "TASKBOARD_EVENTS"
	SubjectPrefix = "taskboard"
	// SubjectAll matches every domain event subject.
	SubjectAll = SubjectPrefix + ".>"
)

// SubjectFor maps an event type such as "project.task_linked" to
// "taskboard.project.task_linked".
func SubjectFor(eventType ports.EventType) string {
	return SubjectPrefix + "." + string(eventType)
}

// EventTypeFromSubject is the inverse of SubjectFor; ok is false for foreign subjects.
func EventTypeFromSubject(subject string) (ports.EventType, bool) {
	rest, ok := strings.CutPrefix(subject, SubjectPrefix+".")
	if !ok || rest == "" {
		return "", false
	}
	return ports.EventType(rest), true
}
