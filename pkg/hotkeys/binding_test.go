package hotkeys_test

import (
	"testing"

	"github.com/glotkey/glotkey/pkg/hotkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBinding_Canonical(t *testing.T) {
	b, err := hotkeys.ParseBinding("ctrl+shift+t")
	require.NoError(t, err)

	assert.Equal(t, hotkeys.ModCtrl|hotkeys.ModShift, b.Mods())
	assert.Equal(t, "ctrl+shift+t", b.String())
}

func TestParseBinding_CaseAndSynonyms(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "CTRL+SHIFT+T", want: "ctrl+shift+t"},
		{in: "Control+Shift+t", want: "ctrl+shift+t"},
		{in: "win+space", want: "super+space"},
		{in: "meta+Return", want: "super+enter"},
		{in: "cmd+c", want: "super+c"},
		{in: "option+F5", want: "alt+f5"},
		{in: "ctrl+alt+Del", want: "ctrl+alt+delete"},
		{in: " ctrl + shift + esc ", want: "ctrl+shift+escape"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b, err := hotkeys.ParseBinding(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestParseBinding_RoundTripIdempotent(t *testing.T) {
	for _, in := range []string{"ctrl+shift+t", "alt+f12", "super+up", "ctrl+alt+super+9"} {
		first, err := hotkeys.ParseBinding(in)
		require.NoError(t, err)

		second, err := hotkeys.ParseBinding(first.String())
		require.NoError(t, err)

		assert.Equal(t, first, second)
	}
}

func TestParseBinding_Errors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		token string
	}{
		{name: "empty input", in: ""},
		{name: "blank input", in: "   "},
		{name: "no modifier", in: "t", token: "t"},
		{name: "unknown modifier", in: "hyper+t", token: "hyper"},
		{name: "unknown key", in: "ctrl+beep", token: "beep"},
		{name: "modifier as key", in: "ctrl+shift", token: "shift"},
		{name: "empty token", in: "ctrl++t", token: ""},
		{name: "trailing plus", in: "ctrl+t+", token: "t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hotkeys.ParseBinding(tt.in)

			var parseErr *hotkeys.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.token, parseErr.Token)
		})
	}
}

func TestParseBinding_DuplicateModifiersCollapse(t *testing.T) {
	b, err := hotkeys.ParseBinding("ctrl+control+t")
	require.NoError(t, err)

	assert.Equal(t, hotkeys.ModCtrl, b.Mods())
	assert.Equal(t, "ctrl+t", b.String())
}
