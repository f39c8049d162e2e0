// Package service contains the business logic.
//
// It sits between the entry point (the CLI) and the schema
// layer. It receives decoded documents, runs them through the
// schema Parser, and reports the outcome with structured
// logging
package service
