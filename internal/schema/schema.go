// Package schema defines the records this module validates
// and the Parser that builds them from untyped input.
//
// Each record is constructed explicitly: the raw mapping is
// decoded into an input shape, validated field by field, and
// only then copied into the record returned to the caller.
// A record is either fully valid or rejected with an
// *errs.ValidationError; there is no partial result.
package schema

import (
	"fmt"

	"github.com/deppfellow/go-schemacheck/internal/validation"
)

// Kind names a record type a document can be checked against.
type Kind string

const (
	KindAccessTokenRequest Kind = "access_token_request"
	KindUser               Kind = "user"
)

// Kinds lists every supported Kind.
func Kinds() []Kind {
	return []Kind{KindAccessTokenRequest, KindUser}
}

// ParseKind resolves s into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}

	return "", fmt.Errorf("unknown kind %q (must be one of: %s, %s)", s, KindAccessTokenRequest, KindUser)
}

// Parser builds records from untyped mappings.
//
// A Parser holds no mutable state and can be shared between goroutines.
type Parser struct {
	validator *validation.Validator
}

// NewParser returns a Parser validating with v.
func NewParser(v *validation.Validator) *Parser {
	return &Parser{validator: v}
}

// Check validates raw as a record of the given kind and discards the record.
func (p *Parser) Check(kind Kind, raw map[string]any) error {
	switch kind {
	case KindAccessTokenRequest:
		_, err := p.AccessTokenRequest(raw)
		return err
	case KindUser:
		_, err := p.User(raw)
		return err
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
}
