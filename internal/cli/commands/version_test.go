package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	info := BuildInfo{Version: "1.2.3", GitCommit: "abc1234", BuildDate: "2026-01-02"}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "full",
			want: "lookup v1.2.3\n  commit: abc1234\n  built:  2026-01-02\n",
		},
		{
			name: "short",
			args: []string{"--short"},
			want: "1.2.3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(info)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(append([]string{}, tt.args...))

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNewVersionCommand_RejectsArgs(t *testing.T) {
	cmd := NewVersionCommand(BuildInfo{Version: "dev"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}
