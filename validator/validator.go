// Package validator provides input validation functions
package validator

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"git.asdf.cafe/abs3nt/simpledesktop/constants"
	"git.asdf.cafe/abs3nt/simpledesktop/errors"
)

// maxTimeoutMinutes keeps minutes*time.Minute inside time.Duration.
const maxTimeoutMinutes = uint64(math.MaxInt64 / int64(time.Minute))

// Validator provides validation methods
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateTimeout validates a change interval given in minutes
func (v *Validator) ValidateTimeout(value string) error {
	minutes, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return errors.NewValidationError("timeout", value, "must be an unsigned integer number of minutes")
	}
	if minutes > maxTimeoutMinutes {
		return errors.NewValidationError("timeout", value, "must be at most "+strconv.FormatUint(maxTimeoutMinutes, 10)+" minutes")
	}
	return nil
}

// ValidateLogLevel validates log level parameter
func (v *Validator) ValidateLogLevel(value string) error {
	for _, valid := range constants.ValidLogLevels {
		if value == valid {
			return nil
		}
	}
	return errors.NewValidationError("log-level", value, "must be one of: "+strings.Join(constants.ValidLogLevels, ", "))
}

// ValidateHistoryLimit validates the number of history rows to show
func (v *Validator) ValidateHistoryLimit(value int) error {
	if value < 1 || value > constants.MaxHistoryLimit {
		return errors.NewValidationError("limit", strconv.Itoa(value), "must be between 1 and "+strconv.Itoa(constants.MaxHistoryLimit))
	}
	return nil
}

// ValidateScriptPath validates an optional hook script
func (v *Validator) ValidateScriptPath(value string) error {
	if value == "" {
		return nil
	}
	info, err := os.Stat(value)
	if os.IsNotExist(err) {
		return errors.NewValidationError("script", value, "file does not exist")
	}
	if err != nil {
		return errors.NewValidationError("script", value, err.Error())
	}
	if info.IsDir() {
		return errors.NewValidationError("script", value, "is a directory")
	}
	return nil
}
