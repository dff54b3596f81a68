package cassandra

import (
	"context"
	"errors"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotcql/robotcql/internal/errs"
)

// fakeRequestError stands in for a server-reported request error frame.
type fakeRequestError struct {
	code int
	msg  string
}

func (e fakeRequestError) Code() int       { return e.code }
func (e fakeRequestError) Message() string { return e.msg }
func (e fakeRequestError) Error() string   { return e.msg }

var _ gocql.RequestError = fakeRequestError{}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.ErrKind
	}{
		{
			name: "nil stays nil",
			err:  nil,
			want: errs.ErrKindUnknown,
		},
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: errs.ErrKindTimeout,
		},
		{
			name: "driver timeout",
			err:  gocql.ErrTimeoutNoResponse,
			want: errs.ErrKindTimeout,
		},
		{
			name: "syntax error",
			err:  fakeRequestError{code: gocql.ErrCodeSyntax, msg: "line 1: no viable alternative"},
			want: errs.ErrKindStatementFailed,
		},
		{
			name: "bad credentials",
			err:  fakeRequestError{code: gocql.ErrCodeCredentials, msg: "username or password incorrect"},
			want: errs.ErrKindConnectionSetup,
		},
		{
			name: "read timeout",
			err:  fakeRequestError{code: gocql.ErrCodeReadTimeout, msg: "operation timed out"},
			want: errs.ErrKindTimeout,
		},
		{
			name: "opaque driver error",
			err:  errors.New("connection reset"),
			want: errs.ErrKindStatementFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(tt.err, "statement execution failed")
			if tt.err == nil {
				assert.Nil(t, mapped)
				return
			}
			require.NotNil(t, mapped)
			assert.Equal(t, tt.want, mapped.Kind)
			assert.ErrorIs(t, mapped, tt.err)
		})
	}
}
