package docchunk_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/docchunk"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docchunk.Errorf(docchunk.EINVALID, "invalid URL %q", "::")

	assert.Equal(t, docchunk.EINVALID, docchunk.ErrorCode(err))
	assert.Equal(t, "invalid URL \"::\"", docchunk.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docchunk.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, docchunk.EINTERNAL, docchunk.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docchunk.ErrorMessage(nil))
}
