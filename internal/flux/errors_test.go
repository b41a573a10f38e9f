package flux_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/cinnamon/internal/flux"
)

func TestUnknownActionSuggestion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want string
	}{
		{tag: "ic", want: "inc"},
		{tag: "ADD", want: "add"},
		{tag: "completely-different", want: ""},
	}
	for _, tc := range tests {
		err := flux.UnknownAction(tc.tag, "inc", "add")
		var uerr *flux.UnknownActionError
		require.True(t, errors.As(err, &uerr))
		require.Equal(t, tc.want, uerr.Suggestion(), tc.tag)
	}
}

func TestUnknownActionMessage(t *testing.T) {
	t.Parallel()

	err := flux.UnknownAction("incc", "inc", "add")
	require.EqualError(t, err, `unknown action "incc", did you mean "inc"?`)
	require.ErrorIs(t, err, flux.ErrUnknownAction)
	require.NotErrorIs(t, err, flux.ErrUnsupportedAction)

	require.EqualError(t, flux.UnknownAction("zzzzzzzz"), `unknown action "zzzzzzzz"`)
}

func TestUnsupportedAction(t *testing.T) {
	t.Parallel()

	err := flux.UnsupportedAction("inc")
	require.EqualError(t, err, `action not supported: "inc"`)
	require.ErrorIs(t, err, flux.ErrUnsupportedAction)
	require.NotErrorIs(t, err, flux.ErrUnknownAction)
}
