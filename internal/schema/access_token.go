package schema

import "github.com/deppfellow/go-schemacheck/internal/validation"

// AccessTokenRequest carries the access token a client authenticates with.
type AccessTokenRequest struct {
	AccessToken string `json:"access_token"`
}

type accessTokenInput struct {
	AccessToken string `mapstructure:"access_token" validate:"required,accesstoken"`
}

func (in *accessTokenInput) Validate(v *validation.Validator) error {
	return v.Struct(in)
}

// AccessTokenRequest builds an AccessTokenRequest from raw.
//
// It fails when access_token is missing, is not a string, or does not
// match the configured token format.
func (p *Parser) AccessTokenRequest(raw map[string]any) (AccessTokenRequest, error) {
	var in accessTokenInput
	if err := p.validator.DecodeAndValidate(raw, &in); err != nil {
		return AccessTokenRequest{}, err
	}

	return AccessTokenRequest{AccessToken: in.AccessToken}, nil
}
