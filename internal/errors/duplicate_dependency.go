package errors

import "net/http"

var ErrDuplicateDependency = &Exception{
	Message:    "dependency already exists",
	StatusCode: http.StatusConflict,
}
