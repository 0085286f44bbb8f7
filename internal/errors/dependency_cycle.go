package errors

import "net/http"

var ErrDependencyCycle = &Exception{
	Message:    "dependency would create a cycle",
	StatusCode: http.StatusConflict,
}
