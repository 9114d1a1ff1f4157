package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// State records the active state name under the key "state".
func State(name string) slog.Attr {
	return slog.String("state", name)
}

// FromState records the source state of a move under the key "from".
func FromState(name string) slog.Attr {
	return slog.String("from", name)
}

// ToState records the target state of a move under the key "to".
func ToState(name string) slog.Attr {
	return slog.String("to", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Cursor records the history cursor under the key "cursor".
func Cursor(pos int) slog.Attr {
	return slog.Int("cursor", pos)
}

// HistoryLen records the history length under the key "history_len".
func HistoryLen(n int) slog.Attr {
	return slog.Int("history_len", n)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Path records a file path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}
