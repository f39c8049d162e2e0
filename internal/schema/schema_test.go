package schema

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/deppfellow/go-schemacheck/internal/config"
	"github.com/deppfellow/go-schemacheck/internal/errs"
	"github.com/deppfellow/go-schemacheck/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()

	v, err := validation.New(validation.DefaultRules())
	require.NoError(t, err)

	return NewParser(v)
}

func requireValidationError(t *testing.T, err error) *errs.ValidationError {
	t.Helper()

	require.Error(t, err)
	require.True(t, errors.Is(err, &errs.ValidationError{}), "expected a validation error, got %v", err)

	ve, ok := errs.AsValidationError(err)
	require.True(t, ok)

	return ve
}

func TestParser_AccessTokenRequest(t *testing.T) {
	p := newTestParser(t)

	t.Run("valid", func(t *testing.T) {
		req, err := p.AccessTokenRequest(map[string]any{"access_token": "test1_token"})
		require.NoError(t, err)
		assert.Equal(t, "test1_token", req.AccessToken)
	})

	t.Run("required", func(t *testing.T) {
		_, err := p.AccessTokenRequest(map[string]any{})
		ve := requireValidationError(t, err)
		assert.Equal(t, []string{"access_token"}, ve.Fields())
	})

	t.Run("nil mapping", func(t *testing.T) {
		_, err := p.AccessTokenRequest(nil)
		requireValidationError(t, err)
	})

	t.Run("format", func(t *testing.T) {
		_, err := p.AccessTokenRequest(map[string]any{"access_token": "invalid_token_format"})
		ve := requireValidationError(t, err)
		assert.Equal(t, errs.CodeValidationFailed, ve.Code)
		assert.Equal(t, []errs.FieldError{{Field: "access_token", Error: "access_token must be a valid access token"}}, ve.Errors)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := p.AccessTokenRequest(map[string]any{"access_token": ""})
		requireValidationError(t, err)
	})

	t.Run("not a string", func(t *testing.T) {
		_, err := p.AccessTokenRequest(map[string]any{"access_token": 42})
		ve := requireValidationError(t, err)
		assert.Equal(t, errs.CodeInvalidType, ve.Code)
	})
}

func TestParser_User(t *testing.T) {
	p := newTestParser(t)

	t.Run("valid", func(t *testing.T) {
		u, err := p.User(map[string]any{"id": 4841511, "first_name": "Vasiliy", "last_name": "Dmitriev"})
		require.NoError(t, err)
		assert.Equal(t, User{ID: 4841511, FirstName: "Vasiliy", LastName: "Dmitriev"}, u)
	})

	tests := []struct {
		name   string
		raw    map[string]any
		code   string
		fields []string
	}{
		{
			name: "id format",
			raw:  map[string]any{"id": "invalid_id_format", "first_name": "Ivan", "last_name": "Vasiliev"},
			code: errs.CodeInvalidType,
		},
		{
			name:   "name format",
			raw:    map[string]any{"id": 1532151, "first_name": "Dmitriy", "last_name": "Sergeev"},
			code:   errs.CodeValidationFailed,
			fields: []string{"first_name", "last_name"},
		},
		{
			name:   "last name format",
			raw:    map[string]any{"id": 1414141, "first_name": "Sergey", "last_name": "Vladimirov"},
			code:   errs.CodeValidationFailed,
			fields: []string{"first_name", "last_name"},
		},
		{
			name:   "only last name rejected",
			raw:    map[string]any{"id": 1, "first_name": "Ivan", "last_name": "Vladimirov"},
			code:   errs.CodeValidationFailed,
			fields: []string{"last_name"},
		},
		{
			name:   "unknown attribute",
			raw:    map[string]any{"invalid_attr": "value"},
			code:   errs.CodeValidationFailed,
			fields: []string{"id", "first_name", "last_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.User(tt.raw)
			ve := requireValidationError(t, err)
			assert.Equal(t, tt.code, ve.Code)
			if tt.fields != nil {
				assert.Equal(t, tt.fields, ve.Fields())
			}
		})
	}
}

func TestParser_Users(t *testing.T) {
	p := newTestParser(t)

	t.Run("success", func(t *testing.T) {
		users, err := p.Users([]map[string]any{
			{"id": 1532151, "first_name": "Ivan", "last_name": "Vasiliev"},
			{"id": 4841511, "first_name": "Vasiliy", "last_name": "Dmitriev"},
		})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, int64(1532151), users[0].ID)
		assert.Equal(t, "Ivan", users[0].FirstName)
		assert.Equal(t, "Vasiliev", users[0].LastName)
		assert.Equal(t, User{ID: 4841511, FirstName: "Vasiliy", LastName: "Dmitriev"}, users[1])
	})

	t.Run("one user", func(t *testing.T) {
		users, err := p.Users([]map[string]any{{"id": 1532151, "first_name": "Ivan", "last_name": "Vasiliev"}})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, User{ID: 1532151, FirstName: "Ivan", LastName: "Vasiliev"}, users[0])
	})

	t.Run("no users", func(t *testing.T) {
		users, err := p.Users([]map[string]any{})
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)

		users, err = p.Users(nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("max users", func(t *testing.T) {
		raws := make([]map[string]any, 0, 1000)
		for i := range 1000 {
			raws = append(raws, map[string]any{"id": i, "first_name": "User", "last_name": strconv.Itoa(i)})
		}

		users, err := p.Users(raws)
		require.NoError(t, err)
		require.Len(t, users, 1000)

		last := users[len(users)-1]
		assert.Equal(t, int64(999), last.ID)
		assert.Equal(t, "User", last.FirstName)
		assert.Equal(t, "999", last.LastName)

		for i, u := range users {
			assert.Equal(t, int64(i), u.ID)
		}
	})

	t.Run("invalid response", func(t *testing.T) {
		users, err := p.Users([]map[string]any{{"invalid_attr": "value"}})
		requireValidationError(t, err)
		assert.Nil(t, users)
	})

	t.Run("error names the index", func(t *testing.T) {
		_, err := p.Users([]map[string]any{
			{"id": 1532151, "first_name": "Ivan", "last_name": "Vasiliev"},
			{"id": 1414141, "first_name": "Sergey", "last_name": "Vladimirov"},
		})
		ve := requireValidationError(t, err)
		assert.Equal(t, "user at index 1: Validation failed", ve.Message)
		assert.Equal(t, errs.CodeValidationFailed, ve.Code)
		assert.Equal(t, []string{"first_name", "last_name"}, ve.Fields())
	})

	t.Run("out of range id", func(t *testing.T) {
		_, err := p.Users([]map[string]any{
			{"id": 1e20, "first_name": "Ivan", "last_name": "Vasiliev"},
		})
		ve := requireValidationError(t, err)
		assert.Equal(t, errs.CodeInvalidType, ve.Code)
		assert.True(t, strings.HasPrefix(ve.Message, "user at index 0: Invalid input"), ve.Message)
	})
}

func TestParser_Check(t *testing.T) {
	p := newTestParser(t)

	assert.NoError(t, p.Check(KindAccessTokenRequest, map[string]any{"access_token": "test1_token"}))
	assert.NoError(t, p.Check(KindUser, map[string]any{"id": 1, "first_name": "User", "last_name": "1"}))
	requireValidationError(t, p.Check(KindUser, map[string]any{"access_token": "test1_token"}))

	err := p.Check(Kind("order"), map[string]any{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, &errs.ValidationError{}))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("user")
	require.NoError(t, err)
	assert.Equal(t, KindUser, k)

	k, err = ParseKind("access_token_request")
	require.NoError(t, err)
	assert.Equal(t, KindAccessTokenRequest, k)

	_, err = ParseKind("users")
	assert.Error(t, err)
}

func TestParser_CustomRules(t *testing.T) {
	rules, err := validation.NewRules(config.RulesConfig{
		AccessTokenPattern: `^tok_[a-f0-9]{8}$`,
		FirstNames:         []string{"Anna"},
		LastNames:          []string{"Ivanova"},
	})
	require.NoError(t, err)

	v, err := validation.New(rules)
	require.NoError(t, err)
	p := NewParser(v)

	_, err = p.AccessTokenRequest(map[string]any{"access_token": "tok_0123abcd"})
	assert.NoError(t, err)
	_, err = p.AccessTokenRequest(map[string]any{"access_token": "test1_token"})
	requireValidationError(t, err)

	_, err = p.User(map[string]any{"id": 1, "first_name": "Anna", "last_name": "Ivanova"})
	assert.NoError(t, err)
	_, err = p.User(map[string]any{"id": 1, "first_name": "User", "last_name": "999"})
	requireValidationError(t, err)
}
