package errorutil

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestEarliestStackTrace(t *testing.T) {
	assert.Nil(t, EarliestStackTrace(nil))

	err := errors.Wrap(errors.WithStack(errSentinel), "failed to extract")
	assert.NotEmpty(t, EarliestStackTrace(err))
}
