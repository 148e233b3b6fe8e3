// Package apierr define el error con estado HTTP que los servicios devuelven
// para que los handlers mapeen la respuesta sin adivinar el codigo.
package apierr

import "fmt"

// Error lleva el estado HTTP y un codigo estable legible por el cliente; Err
// conserva la causa original para el log.
type Error struct {
	Status int
	Code   string
	Err    error
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return e.Err.Error()
	case e.Code != "":
		return e.Code
	default:
		return fmt.Sprintf("error http %d", e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }
