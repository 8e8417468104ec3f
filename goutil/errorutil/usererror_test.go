package errorutil

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var errSentinel = errors.New("kubeconfig is missing a required field")

func TestHasUserError(t *testing.T) {
	assert.True(t, hasUserError(NewUserError("test")))
	assert.True(t, hasUserError(CombinedError(errors.New("rand"), NewUserError("test"))))
	assert.False(t, hasUserError(errors.New("no user error")))
}

func TestDontRewrapUserError(t *testing.T) {
	err1 := NewUserError("test")
	err2 := NewUserError("test")
	userErr := CombinedError(err1, err2)
	// nolint:errorlint
	if userErr != err1 {
		t.Errorf("got CombinedError(%q, %q) = %q, want %q.", err1, err2, userErr, err1)
	}

	userErr = AddUserMessagef(err1, "test")
	// nolint:errorlint
	if userErr != err1 {
		t.Errorf("got AddUserMessagef(%q) = %q, want %q.", err1, userErr, err1)
	}
}

func TestAddUserMessagef(t *testing.T) {
	err := errors.Wrap(errSentinel, "users")
	userErr := AddUserMessagef(err, "%s has no users list", "kubeconfig.yaml")

	assert.Equal(t, "kubeconfig.yaml has no users list", GetUserErrorMessage(userErr))
	assert.True(t, errors.Is(userErr, errSentinel))
	assert.Contains(t, userErr.Error(), "kubeconfig.yaml has no users list")
	assert.Contains(t, userErr.Error(), "users")
	assert.Equal(t, errSentinel, errors.Cause(userErr))
}

func TestGetUserErrorMessageWithoutUserError(t *testing.T) {
	assert.Empty(t, GetUserErrorMessage(errors.New("plain")))
	assert.Equal(t, "plain user", GetUserErrorMessage(errors.WithStack(NewUserError("plain user"))))
}
