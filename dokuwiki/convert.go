package dokuwiki

import (
	"fmt"

	"github.com/wikitools/go-dokuwiki/xmlrpc"
)

// Shape helpers for transport-decoded values. The transport performs no
// schema validation, so wrapper methods assert the result shapes the
// server documents.

func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &Error{Message: fmt.Sprintf("expected string result, got %T", v)}
	}
	return s, nil
}

func toInt(v any) (int, error) {
	n, ok := v.(int)
	if !ok {
		return 0, &Error{Message: fmt.Sprintf("expected integer result, got %T", v)}
	}
	return n, nil
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		return b != 0, nil
	}
	return false, &Error{Message: fmt.Sprintf("expected boolean result, got %T", v)}
}

func toList(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, &Error{Message: fmt.Sprintf("expected list result, got %T", v)}
	}
	return l, nil
}

func toMap(v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &Error{Message: fmt.Sprintf("expected struct result, got %T", v)}
	}
	return m, nil
}

func toBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case xmlrpc.Binary:
		return []byte(b), nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	}
	return nil, &Error{Message: fmt.Sprintf("expected binary result, got %T", v)}
}

func getList(m map[string]any, key string) []any {
	if l, ok := m[key].([]any); ok {
		return l
	}
	return nil
}
