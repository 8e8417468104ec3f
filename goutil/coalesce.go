package goutil

import "github.com/samber/lo"

// Coalesce returns the first non-zero value, or the zero value if there is
// none. Used to fill unset options with their defaults.
func Coalesce[T comparable](v ...T) T {
	res, _ := lo.Coalesce(v...)
	return res
}
