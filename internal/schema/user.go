package schema

import (
	"fmt"

	"github.com/deppfellow/go-schemacheck/internal/errs"
	"github.com/deppfellow/go-schemacheck/internal/validation"
)

// User is a single entry of a users response.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// userInput keeps id behind a pointer so a missing id is told apart from id 0.
type userInput struct {
	ID        *int64 `mapstructure:"id" validate:"required"`
	FirstName string `mapstructure:"first_name" validate:"required,firstname"`
	LastName  string `mapstructure:"last_name" validate:"required,lastname"`
}

func (in *userInput) Validate(v *validation.Validator) error {
	return v.Struct(in)
}

// User builds a User from raw.
//
// id must be an integer (no coercion from strings or fractional numbers);
// first_name and last_name must pass their allow-list rules.
func (p *Parser) User(raw map[string]any) (User, error) {
	var in userInput
	if err := p.validator.DecodeAndValidate(raw, &in); err != nil {
		return User{}, err
	}

	return User{
		ID:        *in.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}, nil
}

// Users builds one User per element of raws, keeping order.
//
// An empty or nil raws yields an empty slice. The first invalid element
// aborts the call; the returned *errs.ValidationError names its index in
// Message and keeps the element's field errors.
func (p *Parser) Users(raws []map[string]any) ([]User, error) {
	users := make([]User, 0, len(raws))
	for i, raw := range raws {
		u, err := p.User(raw)
		if err != nil {
			if ve, ok := errs.AsValidationError(err); ok {
				return nil, ve.WithMessage(fmt.Sprintf("user at index %d: %s", i, ve.Message))
			}
			return nil, fmt.Errorf("user at index %d: %w", i, err)
		}
		users = append(users, u)
	}

	return users, nil
}
