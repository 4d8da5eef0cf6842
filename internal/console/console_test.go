package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerReader(t *testing.T) {
	out := new(bytes.Buffer)
	r := NewScannerReader(strings.NewReader("vs 42\r\n\nla Ada Lovelace"), out)

	line, err := r.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "vs 42", line)

	line, err = r.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "", line)

	line, err = r.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "la Ada Lovelace", line)

	_, err = r.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> > > \n", out.String())
}
