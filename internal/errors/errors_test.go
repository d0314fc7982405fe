package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const errTest = Code("test failure")

func TestCodeMatching(t *testing.T) {
	err := New(errTest, "something broke")
	assert.True(t, Is(err, errTest))
	assert.False(t, Is(err, Code("other")))

	wrapped := Wrap(errTest, assert.AnError, "context")
	assert.True(t, Is(wrapped, errTest))
}

func TestDetail(t *testing.T) {
	err := Newf(errTest, "bad value '%s'", "x")

	appErr, ok := As[*Error](err)
	assert.True(t, ok)
	assert.Equal(t, "bad value 'x'", (*appErr).Detail())
	assert.Equal(t, "test failure: bad value 'x'", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(errTest, nil, "context"))
	assert.NoError(t, Wrapf(errTest, nil, "context %d", 1))
}
