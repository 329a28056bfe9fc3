package ui

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSayRoutesToContextSink(t *testing.T) {
	sink := &CaptureSink{}
	ctx := WithSink(context.Background(), sink)

	Say(ctx, "hello %s", "world")
	Say(ctx, "second line")

	assert.Equal(t, []string{"hello world", "second line"}, sink.Lines())
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithSink(context.Background(), WriterSink{W: &buf})

	Say(ctx, "one")
	Say(ctx, "two")

	assert.Equal(t, "one\ntwo\n", buf.String())
}

func TestCaptureSinkLinesReturnsCopy(t *testing.T) {
	sink := &CaptureSink{}
	sink.Say("a")

	lines := sink.Lines()
	lines[0] = "mutated"

	assert.Equal(t, []string{"a"}, sink.Lines())
}
