package kubecreds

import "github.com/pkg/errors"

var (
	ErrParse         = errors.New("kubeconfig could not be parsed")
	ErrEmptyDocument = errors.New("kubeconfig is empty")
	ErrMissingField  = errors.New("kubeconfig is missing a required field")
	ErrDecode        = errors.New("credential data could not be decoded")
)

func missingField(format string, args ...any) error {
	return errors.Wrapf(ErrMissingField, format, args...)
}
