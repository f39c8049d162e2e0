// Command schemacheck validates access-token requests or user records
// read from JSON, JSONC or YAML files (or stdin).
//
// Usage:
//
//	schemacheck --kind user users.json
//	cat token.yaml | schemacheck --kind access_token_request --format yaml
//
// Exit status is 0 when every document is valid, 1 when any document is
// rejected, and 2 on usage, configuration or input errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/deppfellow/go-schemacheck/internal/config"
	"github.com/deppfellow/go-schemacheck/internal/input"
	"github.com/deppfellow/go-schemacheck/internal/logger"
	"github.com/deppfellow/go-schemacheck/internal/schema"
	"github.com/deppfellow/go-schemacheck/internal/service"
	"github.com/deppfellow/go-schemacheck/internal/validation"
	"github.com/spf13/pflag"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2

	stdinSource = "-"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stderr))
}

func run(args []string, stdin io.Reader, stderr io.Writer) int {
	flagSet := pflag.NewFlagSet("schemacheck", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	kindFlag := flagSet.StringP("kind", "k", string(schema.KindUser), "record kind: access_token_request or user")
	formatFlag := flagSet.StringP("format", "f", "", "input format: json or yaml (default: by file extension, json for stdin)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	kind, err := schema.ParseKind(*kindFlag)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	var format input.Format
	if *formatFlag != "" {
		if format, err = input.ParseFormat(*formatFlag); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	log := logger.WithComponent(logger.New(cfg.Observability, stderr), "schemacheck")

	rules, err := validation.NewRules(cfg.Rules)
	if err != nil {
		log.Error().Err(err).Msg("invalid validation rules")
		return exitUsage
	}

	v, err := validation.New(rules)
	if err != nil {
		log.Error().Err(err).Msg("could not build validator")
		return exitUsage
	}

	services := service.NewServices(schema.NewParser(v), &log)

	sources := flagSet.Args()
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	status := exitOK
	for _, source := range sources {
		docs, err := readSource(source, stdin, format)
		if err != nil {
			log.Error().Err(err).Str("source", source).Msg("could not read documents")
			return exitUsage
		}

		if report := services.Check.Check(source, kind, docs); !report.OK() {
			status = exitInvalid
		}
	}

	return status
}

// readSource reads documents from a file path, or from stdin for "-".
// An empty format is detected from the file extension.
func readSource(source string, stdin io.Reader, format input.Format) ([]map[string]any, error) {
	if format == "" {
		format = input.DetectFormat(source)
	}

	if source == stdinSource {
		return input.Read(stdin, format)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return input.Read(f, format)
}
