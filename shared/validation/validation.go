// Package validation checks request parameters and domain values before they reach storage.
// Every failure is a 400 *errors.ErrorWithStatusCode with one readable detail per problem.
package validation

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/meetiosdev/topics-api/shared/errors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	MsgInvalidPage    = "Page must be a positive integer"
	MsgInvalidLimit   = "Limit must be between 1 and 100"
	MsgInvalidTopicId = "Topic ID must be a valid UUID"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// TopicId accepts a canonical lowercase RFC 4122 UUID of versions 1 to 5.
// Uppercase is rejected so that lookups never depend on how a store folds case.
func TopicId(id string) error {
	if err := validate.Var(id, "required,uuid"); err != nil {
		return errors.BadRequest("Validation Error", MsgInvalidTopicId)
	}
	u, err := uuid.Parse(id)
	if err != nil || u.Variant() != uuid.RFC4122 || u.Version() < 1 || u.Version() > 5 {
		return errors.BadRequest("Validation Error", MsgInvalidTopicId)
	}
	return nil
}

func Pagination(page, limit int) error {
	var details []string
	if page < 1 {
		details = append(details, MsgInvalidPage)
	}
	if limit < 1 || limit > MaxLimit {
		details = append(details, MsgInvalidLimit)
	}
	if len(details) > 0 {
		return errors.BadRequest("Validation Error", details...)
	}
	return nil
}

// ParsePagination reads optional page and limit query values, applying defaults for empty ones.
func ParsePagination(pageQuery, limitQuery string) (page, limit int, err error) {
	page, limit = DefaultPage, DefaultLimit
	var details []string

	if pageQuery != "" {
		if page, err = strconv.Atoi(pageQuery); err != nil || page < 1 {
			details = append(details, MsgInvalidPage)
		}
	}
	if limitQuery != "" {
		if limit, err = strconv.Atoi(limitQuery); err != nil || limit < 1 || limit > MaxLimit {
			details = append(details, MsgInvalidLimit)
		}
	}
	if len(details) > 0 {
		return 0, 0, errors.BadRequest("Validation Error", details...)
	}
	return page, limit, nil
}

// Struct runs the validate tags of v and reports every failed field as a readable detail.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return err
	}
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, message(fe))
	}
	return errors.BadRequest("Validation Error", details...)
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s cannot be less than %s", field, fe.Param())
	case "hexcolor", "len":
		return fmt.Sprintf("%s must be a valid hex color like #4A7B9D", field)
	case "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
