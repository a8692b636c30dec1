package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "connection reset", err: &net.OpError{Op: "read", Err: syscall.ECONNRESET}, want: true},
		{name: "connection refused", err: syscall.ECONNREFUSED, want: true},
		{name: "connection aborted", err: syscall.ECONNABORTED, want: true},
		{name: "broken pipe wrapped", err: fmt.Errorf("send: %w", syscall.EPIPE), want: true},
		{name: "unexpected eof", err: io.ErrUnexpectedEOF, want: true},
		{name: "net timeout", err: timeoutErr{}, want: true},
		{name: "context canceled", err: context.Canceled, want: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: false},
		{name: "http status", err: &StatusError{URL: "https://x", Code: 500}, want: false},
		{name: "plain error", err: errors.New("malformed document"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestExhaustedErrorUnwraps(t *testing.T) {
	t.Parallel()

	cause := syscall.ECONNRESET
	err := &ExhaustedError{URL: "https://x", Attempts: 3, Err: cause}
	require.ErrorIs(t, err, syscall.ECONNRESET)
	require.Contains(t, err.Error(), "https://x")
	require.Contains(t, err.Error(), "3 attempts")
}
