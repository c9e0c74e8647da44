package wesber_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/wesber"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := wesber.Errorf(wesber.EINVALID, "%s:%d:%d: missing '}'", "style.css", 3, 1)

	assert.Equal(t, wesber.EINVALID, wesber.ErrorCode(err))
	assert.Equal(t, "style.css:3:1: missing '}'", wesber.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wesber.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wesber.ErrorMessage(nil))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, wesber.EINTERNAL, wesber.ErrorCode(err))
	assert.Equal(t, "Internal error", wesber.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("parse: %w", wesber.Errorf(wesber.EINVALID, "missing"))

	assert.Equal(t, wesber.EINVALID, wesber.ErrorCode(err))
	assert.Equal(t, "missing", wesber.ErrorMessage(err))
}
