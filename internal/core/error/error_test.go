package errx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapGeneration(t *testing.T) {
	cause := errors.New("backend down")
	err := WrapGeneration(cause)

	assert.Equal(t, KindGeneration, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), GenerationErrorMessage)

	assert.Nil(t, WrapGeneration(nil))
}

func TestWrapExtractionNamesThePath(t *testing.T) {
	err := WrapExtraction(errors.New("bad xref table"), "mail/report.pdf")

	assert.Equal(t, KindExtraction, KindOf(err))
	assert.Contains(t, err.Error(), "could not read PDF file at mail/report.pdf")
}

func TestKindOfThroughWrapping(t *testing.T) {
	inner := WrapPersistence(errors.New("disk full"))
	outer := fmt.Errorf("save draft: %w", inner)

	assert.Equal(t, KindPersistence, KindOf(outer))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestFatal(t *testing.T) {
	err := Fatal("reset invoked on a state with no session id")

	assert.True(t, IsFatal(err))
	assert.Equal(t, "reset invoked on a state with no session id", err.Error())

	assert.False(t, IsFatal(errors.New("plain")))
	assert.False(t, IsFatal(WrapGeneration(errors.New("x"))))
}

func TestErrorsAs(t *testing.T) {
	cause := errors.New("backend down")
	wrapped := fmt.Errorf("turn failed: %w", WrapGeneration(cause))

	var e *Error
	require.True(t, errors.As(wrapped, &e))
	assert.Equal(t, KindGeneration, e.Kind)
	assert.ErrorIs(t, e, cause)
}
