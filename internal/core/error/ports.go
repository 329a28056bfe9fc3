package errx

import "fmt"

// WrapGeneration marks a text-generation backend failure.
func WrapGeneration(err error) *Error {
	if err == nil {
		return nil
	}
	return New(KindGeneration, err, GenerationErrorMessage)
}

// WrapExtraction marks a content-extraction failure with a descriptive message
// wrapping the underlying cause. The message is propagated verbatim into the
// conversation state, so it names the offending source.
func WrapExtraction(err error, path string) *Error {
	if err == nil {
		return nil
	}
	return New(KindExtraction, err, fmt.Sprintf("could not read PDF file at %s", path))
}

// WrapPersistence marks a storage backend failure.
func WrapPersistence(err error) *Error {
	if err == nil {
		return nil
	}
	return New(KindPersistence, err, PersistenceErrorMessage)
}

// Fatal marks a caller contract violation. Fatal errors are never converted to
// turn errors; they abort the invocation.
func Fatal(format string, args ...any) *Error {
	return New(KindFatal, nil, fmt.Sprintf(format, args...))
}
