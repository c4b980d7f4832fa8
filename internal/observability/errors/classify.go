// Package errors turns export failures into low-cardinality metric tags.
package errors

import (
	"context"
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/isre1late/json-samples/internal/errors"
)

// genericErrorTypes only carry a message or wrap another error, so their
// names say nothing about the failure.
var genericErrorTypes = map[string]bool{
	"errors_errorstring": true,
	"errors_joinerror":   true,
	"fmt_wraperror":      true,
	"fmt_wraperrors":     true,
}

// Classify returns a stable error class for tagging metrics and logs.
// Application errors report their code and context errors their cause.
// Anything else reports the innermost typed error in snake_case form, e.g.
// "pgconn_pgerror" or "fs_patherror", or "unknown" when the chain holds only
// plain errors.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}
	switch {
	case goerrors.Is(err, context.Canceled):
		return "context_canceled"
	case goerrors.Is(err, context.DeadlineExceeded):
		return "context_deadline_exceeded"
	}

	class := "unknown"
	for ; err != nil; err = goerrors.Unwrap(err) {
		if name := typeName(err); name != "" && !genericErrorTypes[name] {
			class = name
		}
	}
	return class
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(t.String(), ".", "_"))
}
