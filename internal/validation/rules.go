package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/deppfellow/go-schemacheck/internal/config"
)

// ErrEmptyAllowList is returned by NewRules when a name allow-list has no entries.
var ErrEmptyAllowList = errors.New("allow-list must not be empty")

// Rules holds the compiled field rules behind the custom validator tags.
//
// A Rules value is read-only after construction and safe for concurrent use.
type Rules struct {
	accessToken     *regexp.Regexp
	firstNames      map[string]struct{}
	lastNames       map[string]struct{}
	lastNamePattern *regexp.Regexp
}

// NewRules compiles rules from config.
func NewRules(cfg config.RulesConfig) (*Rules, error) {
	accessToken, err := regexp.Compile(cfg.AccessTokenPattern)
	if err != nil {
		return nil, fmt.Errorf("access token pattern: %w", err)
	}

	if len(cfg.FirstNames) == 0 {
		return nil, fmt.Errorf("first names: %w", ErrEmptyAllowList)
	}
	if len(cfg.LastNames) == 0 {
		return nil, fmt.Errorf("last names: %w", ErrEmptyAllowList)
	}

	r := &Rules{
		accessToken: accessToken,
		firstNames:  toSet(cfg.FirstNames),
		lastNames:   toSet(cfg.LastNames),
	}

	if cfg.LastNamePattern != "" {
		r.lastNamePattern, err = regexp.Compile(cfg.LastNamePattern)
		if err != nil {
			return nil, fmt.Errorf("last name pattern: %w", err)
		}
	}

	return r, nil
}

// DefaultRules returns rules built from config.DefaultRulesConfig.
func DefaultRules() *Rules {
	r, err := NewRules(config.DefaultRulesConfig())
	if err != nil {
		panic(err)
	}

	return r
}

// IsAccessToken checks whether s matches the access-token format.
func (r *Rules) IsAccessToken(s string) bool {
	return r.accessToken.MatchString(s)
}

// IsFirstName checks whether s is an accepted first name.
func (r *Rules) IsFirstName(s string) bool {
	_, ok := r.firstNames[s]
	return ok
}

// IsLastName checks whether s is an accepted last name, either listed
// or matching the last-name pattern when one is configured.
func (r *Rules) IsLastName(s string) bool {
	if _, ok := r.lastNames[s]; ok {
		return true
	}

	return r.lastNamePattern != nil && r.lastNamePattern.MatchString(s)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}

	return set
}
