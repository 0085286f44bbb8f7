package errors

import "net/http"

var ErrSelfDependency = &Exception{
	Message:    "a task cannot depend on itself",
	StatusCode: http.StatusBadRequest,
}
