package service

import (
	"github.com/deppfellow/go-schemacheck/internal/schema"
	"github.com/rs/zerolog"
)

// Services is a container that groups all services, so the entry point
// passes one object around instead of many.
type Services struct {
	Check *CheckService
}

// NewServices builds every service from shared dependencies.
func NewServices(parser *schema.Parser, logger *zerolog.Logger) *Services {
	return &Services{
		Check: NewCheckService(parser, logger),
	}
}
