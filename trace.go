package parsec

import "go.uber.org/zap"

// Trace logs every run of p at debug level under name. The result of p is
// returned untouched. A nil logger returns p itself.
func Trace[T any](logger *zap.Logger, name string, p Parser[T]) Parser[T] {
	if logger == nil {
		return p
	}
	return func(input string) Result[T] {
		logger.Debug("parser enter", zap.String("parser", name), zap.String("input", preview(input)))
		res := p(input)
		if res.IsFailure() {
			logger.Debug("parser fail",
				zap.String("parser", name),
				zap.String("expected", res.expected),
				zap.String("got", res.got),
			)
			return res
		}
		logger.Debug("parser match",
			zap.String("parser", name),
			zap.Int("consumed", len(input)-len(res.remaining)),
			zap.Bool("discarded", res.discarded),
		)
		return res
	}
}
