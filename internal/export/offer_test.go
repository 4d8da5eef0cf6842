package export

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lookup/internal/console"
	"github.com/leapstack-labs/lookup/internal/result"
	"github.com/leapstack-labs/lookup/internal/testutil"
)

func newOffer(t *testing.T, input string) (*Interactive, *bytes.Buffer) {
	t.Helper()
	out := new(bytes.Buffer)
	in := console.NewScannerReader(strings.NewReader(input), out)
	return NewInteractive(in, out, testutil.NewTestLogger(t)), out
}

func TestInteractive_Decline(t *testing.T) {
	o, out := newOffer(t, "N\n")

	res, err := o.Offer(context.Background(), sampleSet())
	require.NoError(t, err)
	assert.Equal(t, Declined, res.Kind)
	assert.False(t, res.Written())
	assert.Equal(t, 1, strings.Count(out.String(), "Would you like to store this result?"))
}

func TestInteractive_InvalidChoiceReprompts(t *testing.T) {
	o, out := newOffer(t, "maybe\n\nyes\nn\n")

	res, err := o.Offer(context.Background(), sampleSet())
	require.NoError(t, err)
	assert.Equal(t, Declined, res.Kind)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid choice"))
	assert.Equal(t, 4, strings.Count(out.String(), "Would you like to store this result?"))
}

func TestInteractive_WriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	o, out := newOffer(t, "y\n  "+path+"  \n")

	res, err := o.Offer(context.Background(), result.New(result.Record{"10 Downing St", "London"}))
	require.NoError(t, err)
	assert.Equal(t, Result{Kind: WrittenJSON, Path: path}, res)
	assert.Contains(t, out.String(), "Result stored in "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[["10 Downing St","London"]]`, string(data))
}

func TestInteractive_WriteXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")
	o, _ := newOffer(t, "Y\n"+path+"\n")

	res, err := o.Offer(context.Background(), result.New(result.Record{"Maths"}))
	require.NoError(t, err)
	assert.Equal(t, WrittenXML, res.Kind)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<data><item><field_0>Maths</field_0></item></data>")
}

func TestInteractive_InvalidExtensionReoffers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	o, out := newOffer(t, "y\n"+filepath.Join(dir, "out.csv")+"\ny\n"+filepath.Join(dir, "out")+"\ny\n"+path+"\n")

	res, err := o.Offer(context.Background(), sampleSet())
	require.NoError(t, err)
	assert.Equal(t, WrittenJSON, res.Kind)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid file extension. Please use .xml or .json"))

	_, err = os.Stat(filepath.Join(dir, "out.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestInteractive_WriteFailureReoffers(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing", "out.json")
	o, out := newOffer(t, "y\n"+bad+"\nn\n")

	res, err := o.Offer(context.Background(), sampleSet())
	require.NoError(t, err)
	assert.Equal(t, Declined, res.Kind)
	assert.Contains(t, out.String(), "Could not store result:")
}

func TestInteractive_EOF(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"at choice", ""},
		{"at filename", "y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := newOffer(t, tt.input)
			res, err := o.Offer(context.Background(), sampleSet())
			assert.ErrorIs(t, err, io.EOF)
			assert.Equal(t, Declined, res.Kind)
		})
	}
}

type interruptReader struct{}

func (interruptReader) ReadLine(string) (string, error) { return "", console.ErrInterrupt }

func TestInteractive_Interrupt(t *testing.T) {
	o := NewInteractive(interruptReader{}, io.Discard, nil)
	res, err := o.Offer(context.Background(), sampleSet())
	require.NoError(t, err)
	assert.Equal(t, Declined, res.Kind)
}

func TestInteractive_CancelledContext(t *testing.T) {
	o, out := newOffer(t, "y\nout.json\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Offer(ctx, sampleSet())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestToFile(t *testing.T) {
	_, err := ToFile("report.txt")
	require.ErrorIs(t, err, ErrInvalidExtension)

	path := filepath.Join(t.TempDir(), "report.xml")
	f, err := ToFile(path)
	require.NoError(t, err)

	res, err := f.Offer(context.Background(), sampleSet())
	require.NoError(t, err)
	assert.Equal(t, Result{Kind: WrittenXML, Path: path}, res)
	assert.FileExists(t, path)
}

func TestNever(t *testing.T) {
	res, err := Never{}.Offer(context.Background(), sampleSet())
	require.NoError(t, err)
	assert.Equal(t, Declined, res.Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "declined", Declined.String())
	assert.Equal(t, "written-json", WrittenJSON.String())
	assert.Equal(t, "written-xml", WrittenXML.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
