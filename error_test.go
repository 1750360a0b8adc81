package staffdir_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/staffdir"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := staffdir.Errorf(staffdir.ENOTFOUND, "domain %q not found", "aisd")

	assert.Equal(t, staffdir.ENOTFOUND, staffdir.ErrorCode(err))
	assert.Equal(t, "domain \"aisd\" not found", staffdir.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, staffdir.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, staffdir.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("resolving: %w", staffdir.Errorf(staffdir.EINVALID, "bad url"))

	assert.Equal(t, staffdir.EINVALID, staffdir.ErrorCode(err))
	assert.Equal(t, "bad url", staffdir.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, staffdir.EINTERNAL, staffdir.ErrorCode(err))
	assert.Equal(t, "Internal error.", staffdir.ErrorMessage(err))
}
