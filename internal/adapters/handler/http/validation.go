package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("linkhost", func(fl validator.FieldLevel) bool {
		return domain.ValidHostname(fl.Field().String())
	})
	return v
}

type linkBody struct {
	Hostname string `json:"hostname" validate:"required,linkhost"`
}

// validationMessage turns validator errors into a short client-facing message.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "linkhost":
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), domain.ErrInvalidHostname))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), domain.ErrInvalidVote))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), domain.ErrInvalidLinks))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
