package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// BlockingTask is one incomplete prerequisite reported by the status gate.
type BlockingTask struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// DependenciesIncompleteError is a denial of a completion request, not a
// system fault. It carries the full blocking list so callers can render the
// exact prerequisites the user has to unblock.
type DependenciesIncompleteError struct {
	TaskName string
	Blocking []BlockingTask
}

func (e *DependenciesIncompleteError) Error() string {
	parts := make([]string, 0, len(e.Blocking))
	for _, b := range e.Blocking {
		parts = append(parts, fmt.Sprintf("%q which is still %s", b.Name, b.Status))
	}
	return fmt.Sprintf("%q depends on %s", e.TaskName, strings.Join(parts, ", "))
}

func (e *DependenciesIncompleteError) HTTPStatusCode() int {
	return http.StatusConflict
}
