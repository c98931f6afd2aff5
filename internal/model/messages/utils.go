package messages

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/spendwise-app/spendwise/internal/model/customerr"
)

func isValidation(err error) bool {
	var verr *customerr.ValidationError
	return errors.As(err, &verr)
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}
