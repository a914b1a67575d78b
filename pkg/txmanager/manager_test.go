package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	serialization := &pq.Error{Code: pgSerializationFailure}
	errExec := errors.New("storage: failed to execute query")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain 40001", err: serialization, want: true},
		{
			name: "40001 from commit path",
			err:  fmt.Errorf("%w: commit: %w", ErrTxFailed, serialization),
			want: true,
		},
		{
			name: "40001 from repository wrap",
			err:  fmt.Errorf("%w: Create - execute insert: %w", errExec, serialization),
			want: true,
		},
		{
			name: "unique violation is not retryable",
			err:  fmt.Errorf("%w: commit: %w", ErrTxFailed, &pq.Error{Code: "23505"}),
			want: false,
		},
		{name: "non-pq error", err: errors.New("connection reset"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSerializationFailure(tt.err))
		})
	}
}
