package symbols

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNMOutput(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		want     []string
		wantLine int
	}{
		{
			name: "bsd format",
			output: "0000000000004028 B __bss_start\n" +
				"0000000000001139 T foo_init\n" +
				"0000000000001150 W foo_weak\n",
			want: []string{"__bss_start", "foo_init", "foo_weak"},
		},
		{
			name:   "blank lines are ignored",
			output: "\n0000000000001139 T foo_init\n\n",
			want:   []string{"foo_init"},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
		{
			name:     "two fields",
			output:   "0000000000001139 T foo_init\nU bar\n",
			wantLine: 2,
		},
		{
			name:     "four fields",
			output:   "0000000000001139 T foo_init extra\n",
			wantLine: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNMOutput(strings.NewReader(tt.output))
			if tt.wantLine != 0 {
				require.Error(t, err)
				var oe ToolOutputError
				require.ErrorAs(t, err, &oe)
				assert.Equal(t, tt.wantLine, oe.Line)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// writeFakeNM writes a shell script standing in for nm. It fails with exit
// status 3 unless called with the expected arguments.
func writeFakeNM(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake nm is a shell script")
	}
	path := filepath.Join(t.TempDir(), "nm")
	script := `#!/bin/sh
if [ "$1" != "--format=bsd" ] || [ "$2" != "-D" ] || [ "$3" != "--defined-only" ]; then
	exit 3
fi
echo "nm: warning: this goes to stderr" >&2
` + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestNMLister(t *testing.T) {
	ctx := context.Background()
	logger := log.NewNopLogger()

	t.Run("lists the third field", func(t *testing.T) {
		nm := writeFakeNM(t, `echo "0000000000001139 T foo_init"
echo "0000000000004028 B _end"
echo "0000000000001150 T foo_debug"`)

		got, err := NewNMLister(logger, nm).ListSymbols(ctx, "libfoo.so")
		require.NoError(t, err)
		assert.Equal(t, []string{"foo_init", "_end", "foo_debug"}, got)
	})

	t.Run("malformed output", func(t *testing.T) {
		nm := writeFakeNM(t, `echo "0000000000001139 T foo_init"
echo "T foo_debug"`)

		_, err := NewNMLister(logger, nm).ListSymbols(ctx, "libfoo.so")
		require.Error(t, err)
		assert.True(t, IsToolOutputError(err))
		var oe ToolOutputError
		require.ErrorAs(t, err, &oe)
		assert.Equal(t, nm, oe.Tool)
		assert.Equal(t, "libfoo.so", oe.Library)
		assert.Equal(t, 2, oe.Line)
		assert.Equal(t, "T foo_debug", oe.Content)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		nm := writeFakeNM(t, `echo "0000000000001139 T foo_init"
exit 2`)

		_, err := NewNMLister(logger, nm).ListSymbols(ctx, "libfoo.so")
		require.Error(t, err)
		assert.True(t, IsToolInvocationError(err))
		assert.Contains(t, err.Error(), "libfoo.so")
		assert.Contains(t, err.Error(), nm)
	})

	t.Run("tool not found", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "no-such-nm")
		_, err := NewNMLister(logger, missing).ListSymbols(ctx, "libfoo.so")
		require.Error(t, err)
		assert.True(t, IsToolInvocationError(err))
		var ie ToolInvocationError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, missing, ie.Tool)
		assert.Equal(t, "libfoo.so", ie.Library)
	})
}
