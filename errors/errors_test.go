package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Error(t *testing.T) {
	assert.Equal(t, "no errors", Errors{}.Error())
	assert.Equal(t, "a", Errors{New("a")}.Error())
	assert.Equal(t, "multiple errors:\n\ta\n\tb\n\tc", Errors{New("a"), New("b\nc")}.Error())
}

func TestErrors_Return(t *testing.T) {
	var errs Errors
	assert.Nil(t, errs.Return())
	errs = errs.Append(nil, io.EOF, nil)
	assert.Len(t, errs, 1)
	assert.Equal(t, Errors{io.EOF}, errs.Return())
}

func TestUnion(t *testing.T) {
	a, b, c := New("a"), New("b"), New("c")
	assert.Nil(t, Union())
	assert.Nil(t, Union(nil, Errors{}))
	assert.Equal(t, Errors{a, b, c}, Union(a, Errors{b, nil}, nil, c))
}

func TestErrors_Unwrap(t *testing.T) {
	err := Union(New("a"), io.ErrUnexpectedEOF)
	assert.True(t, Is(err, io.ErrUnexpectedEOF))
	assert.False(t, Is(err, io.EOF))
}

func TestList(t *testing.T) {
	assert.Nil(t, List(nil))
	assert.Equal(t, []error{io.EOF}, List(io.EOF))
	assert.Equal(t, []error{io.EOF, io.ErrUnexpectedEOF}, List(Errors{io.EOF, io.ErrUnexpectedEOF}))
}
