package args

import (
	"testing"

	"github.com/google/shlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagToken(t *testing.T) {
	assert.Equal(t, "-k", FlagToken("k"))
	assert.Equal(t, "--key", FlagToken("key"))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		arg    Argument
		escape bool
		want   []string
	}{
		{
			name: "false bool flag",
			arg:  NewFlag("key", ScalarValue(Bool(false))),
			want: nil,
		},
		{
			name: "true bool flag",
			arg:  NewFlag("key", ScalarValue(Bool(true))),
			want: []string{"--key"},
		},
		{
			name: "true bool single char",
			arg:  NewFlag("k", ScalarValue(Bool(true))),
			want: []string{"-k"},
		},
		{
			name:   "escaped string flag",
			arg:    NewFlag("key", ScalarValue(Str("x"))),
			escape: true,
			want:   []string{"--key", `"x"`},
		},
		{
			name: "unescaped int flag",
			arg:  NewFlag("n", ScalarValue(Int(42))),
			want: []string{"-n", "42"},
		},
		{
			name: "flag list",
			arg:  Argument{Key: "levels", Kind: FlagList, Value: ListValue(Int(1), Int(2), Int(3))},
			want: []string{"--levels", "1", "2", "3"},
		},
		{
			name:   "positional",
			arg:    Argument{Key: "input", Kind: Positional, Value: ScalarValue(Str("graph.metis"))},
			escape: true,
			want:   []string{`"graph.metis"`},
		},
		{
			name: "positional list",
			arg:  Argument{Key: "files", Kind: PositionalList, Value: ListValue(Str("a"), Str("b"))},
			want: []string{"a", "b"},
		},
		{
			name: "float flag",
			arg:  NewFlag("eps", ScalarValue(Float(0.25))),
			want: []string{"--eps", "0.25"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.arg, tt.escape))
		})
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	for _, s := range []string{
		"plain",
		"with space",
		`back\slash`,
		`"quoted"`,
		"$HOME",
		"tick`s",
	} {
		t.Run(s, func(t *testing.T) {
			tokens, err := shlex.Split(Quote(s))
			require.NoError(t, err)
			require.Len(t, tokens, 1)
			assert.Equal(t, s, tokens[0])
		})
	}
}

func TestRenderRecord(t *testing.T) {
	rec := NewRecord(
		NewFlag("verbose", ScalarValue(Bool(true))),
		NewFlag("quiet", ScalarValue(Bool(false))),
		NewFlag("k", ScalarValue(Int(4))),
		Argument{Key: "in", Kind: Positional, Value: ScalarValue(Str("g"))},
	)

	assert.Equal(t, []string{"--verbose", "-k", "4", "g"}, RenderRecord(rec, false))
	assert.Equal(t, []string{"--verbose", "-k", `"4"`, `"g"`}, RenderRecord(rec, true))
}
