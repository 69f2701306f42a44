package runtime

import (
	"context"
	"log/slog"

	"github.com/risor-io/risor/object"
)

// makeNamesFn creates a host function mapping a relative path to one of its
// name sets.
//
// defs(path) → []string
func makeNamesFn(name string, lookup func(relPath string) []string) *object.Builtin {
	return object.NewBuiltin(name, func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError(name, 1, len(args))
		}
		path, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("%s: path must be a string, got %s", name, args[0].Type())
		}
		return stringList(lookup(path.Value()))
	})
}

func stringList(values []string) *object.List {
	items := make([]object.Object, 0, len(values))
	for _, v := range values {
		items = append(items, object.NewString(v))
	}
	return object.NewList(items)
}

// logObject provides log.Info/Warn/Error methods for Risor scripts.
type logObject struct {
	logger *slog.Logger
}

func (l *logObject) Info(msg string) {
	l.logger.Info(msg, "source", "script")
}

func (l *logObject) Warn(msg string) {
	l.logger.Warn(msg, "source", "script")
}

func (l *logObject) Error(msg string) {
	l.logger.Error(msg, "source", "script")
}
