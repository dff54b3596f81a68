package cassandra

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocql/gocql"

	"github.com/robotcql/robotcql/internal/errs"
)

// mapError translates gocql native errors into *errs.Error.
// Execution-path failures default to ErrKindStatementFailed; only
// deadline and server-timeout conditions become ErrKindTimeout, and
// credential failures become ErrKindConnectionSetup.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, gocql.ErrTimeoutNoResponse) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	// Server-reported request errors carry a protocol error code.
	var reqErr gocql.RequestError
	if errors.As(err, &reqErr) {
		return errs.Wrap(
			classifyRequestCode(reqErr.Code()),
			fmt.Sprintf("%s: %s", msg, reqErr.Message()),
			err,
		)
	}

	return errs.Wrap(errs.ErrKindStatementFailed, msg, err)
}

// classifyRequestCode maps Cassandra protocol error codes to ErrKind.
func classifyRequestCode(code int) errs.ErrKind {
	switch code {
	case gocql.ErrCodeCredentials, gocql.ErrCodeUnauthorized:
		return errs.ErrKindConnectionSetup
	case gocql.ErrCodeReadTimeout, gocql.ErrCodeWriteTimeout:
		return errs.ErrKindTimeout
	default:
		return errs.ErrKindStatementFailed
	}
}
