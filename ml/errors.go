package ml

import "errors"

var (
	ErrInvalidBody  = errors.New("request body must be a JSON object")
	ErrMissingField = errors.New("missing required field")
	ErrNotNumeric   = errors.New("could not convert value to float")
	ErrNonFinite    = errors.New("input contains NaN or infinity")
	ErrFeatureCount = errors.New("unexpected number of features")
	ErrInvalidModel = errors.New("invalid model artifact")
)
