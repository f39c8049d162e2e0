package service

import (
	"time"

	"github.com/deppfellow/go-schemacheck/internal/errs"
	"github.com/deppfellow/go-schemacheck/internal/schema"
	"github.com/rs/zerolog"
)

// Failure is one rejected document.
type Failure struct {
	// Index is the position of the document in the batch.
	Index int

	// Err is the rejection, usually a *errs.ValidationError.
	Err error
}

// Report summarizes a checked batch.
type Report struct {
	Kind     schema.Kind
	Total    int
	Valid    int
	Failures []Failure
}

// OK reports whether every document in the batch was valid.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// CheckService validates batches of documents against one record kind.
type CheckService struct {
	parser *schema.Parser
	logger *zerolog.Logger
}

// NewCheckService constructs a CheckService.
func NewCheckService(parser *schema.Parser, logger *zerolog.Logger) *CheckService {
	return &CheckService{
		parser: parser,
		logger: logger,
	}
}

// Check validates each document in docs as a record of kind.
//
// Documents are checked independently: a failure is recorded and logged,
// then checking continues with the next document. source labels the batch
// in logs (a file path, or "-" for stdin).
func (s *CheckService) Check(source string, kind schema.Kind, docs []map[string]any) Report {
	start := time.Now()

	logger := s.logger.With().
		Str("operation", "check").
		Str("source", source).
		Str("kind", string(kind)).
		Logger()

	logger.Debug().Int("documents", len(docs)).Msg("checking documents")

	report := Report{Kind: kind, Total: len(docs)}
	for i, doc := range docs {
		validationStart := time.Now()
		err := s.parser.Check(kind, doc)
		validationDuration := time.Since(validationStart)

		if err != nil {
			report.Failures = append(report.Failures, Failure{Index: i, Err: err})
			logFailure(logger, i, err, validationDuration)
			continue
		}

		report.Valid++
		logger.Debug().
			Int("index", i).
			Dur("validation_duration", validationDuration).
			Msg("document valid")
	}

	event := logger.Info()
	if !report.OK() {
		event = logger.Warn()
	}
	event.
		Int("total", report.Total).
		Int("valid", report.Valid).
		Int("invalid", len(report.Failures)).
		Dur("total_duration", time.Since(start)).
		Msg("check completed")

	return report
}

func logFailure(logger zerolog.Logger, index int, err error, d time.Duration) {
	event := logger.Error().
		Err(err).
		Int("index", index).
		Dur("validation_duration", d)

	if ve, ok := errs.AsValidationError(err); ok {
		event = event.Str("code", ve.Code)

		fields := zerolog.Dict()
		for _, fe := range ve.Errors {
			fields = fields.Str(fe.Field, fe.Error)
		}
		event = event.Dict("fields", fields)
	}

	event.Msg("document validation failed")
}
