package cli

import (
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"wakedev/internal/errors"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil is success": {
			err:  nil,
			want: ExitSuccess,
		},
		"explicit exit error": {
			err:  NewExitError(ExitAuthFailed, goerrors.New("rejected")),
			want: ExitAuthFailed,
		},
		"validation maps to invalid arguments": {
			err:  errors.NewValidationError("bad flag"),
			want: ExitInvalidArguments,
		},
		"config maps to config error": {
			err:  errors.NewConfigError("broken config"),
			want: ExitConfigError,
		},
		"auth maps to auth failed": {
			err:  errors.NewAuthError("bad token"),
			want: ExitAuthFailed,
		},
		"network maps to delivery failed": {
			err:  errors.NewNetworkError("unreachable"),
			want: ExitDeliveryFailed,
		},
		"plain error is delivery failure": {
			err:  goerrors.New("boom"),
			want: ExitDeliveryFailed,
		},
		"exit error wraps inner cli error": {
			err:  NewExitError(ExitConfigError, errors.NewValidationError("x")),
			want: ExitConfigError,
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, ExitCode(test.err))
		})
	}
}
