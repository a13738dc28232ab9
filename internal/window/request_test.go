package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatch_FlattensNestedAndDropsNone(t *testing.T) {
	req := Batch(
		Close(1),
		None(),
		Batch(Close(2), Batch(Close(3))),
		Open(4, DefaultSettings()),
	)

	assert.Equal(t, OpBatch, req.Op)
	assert.Equal(t, []Handle{1, 2, 3, 4}, req.Handles())
	for _, child := range req.Batch {
		assert.NotEqual(t, OpBatch, child.Op, "batch children must be leaves")
	}
}

func TestBatch_CollapsesSmallBatches(t *testing.T) {
	assert.Equal(t, OpNone, Batch().Op)
	assert.Equal(t, OpNone, Batch(None(), None()).Op)
	assert.True(t, Batch().IsNone())

	single := Batch(Close(7))
	assert.Equal(t, Close(7), single)
	assert.False(t, single.IsNone())
}

func TestRequest_String(t *testing.T) {
	tests := []struct {
		req  Request
		want string
	}{
		{None(), "none"},
		{Open(3, DefaultSettings()), "open(3)"},
		{Close(9), "close(9)"},
		{Batch(Close(1), Close(2)), "batch[close(1) close(2)]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.req.String())
	}
}

func TestOp_StringUnknown(t *testing.T) {
	assert.Equal(t, "Op(42)", Op(42).String())
}
