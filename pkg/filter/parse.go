package filter

import (
	"strconv"
	"strings"

	"github.com/matzehuels/kintree/pkg/errors"
)

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "generation must be an integer, got %q", s)
	}
	return n, nil
}

func parseBool(s string, def bool) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidInput, err, "expected a boolean, got %q", s)
	}
	return b, nil
}
