package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSplitsLines(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	w := Writer(ctx, "in0_web-r4", zerolog.WarnLevel)
	_, err := w.Write([]byte("first\nsec"))
	require.NoError(t, err)
	_, err = w.Write([]byte("ond\n\n  \nlast"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"message":"first"`)
	assert.Contains(t, lines[0], `"job":"in0_web-r4"`)
	assert.Contains(t, lines[0], `"level":"warn"`)
	assert.Contains(t, lines[1], `"message":"second"`)
	assert.Contains(t, lines[2], `"message":"last"`)
}

func TestInitLogger(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, "warn", true)
	assert.Equal(t, zerolog.WarnLevel, Level)

	SetLevel("")
	assert.Equal(t, zerolog.Disabled, Level)

	SetLevel("debug")
	assert.Equal(t, zerolog.DebugLevel, Level)
}
