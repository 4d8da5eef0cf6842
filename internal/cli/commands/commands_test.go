package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/lookup/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShell_Session(t *testing.T) {
	cfg := testutil.TestConfig(testutil.SetupTestDatabase(t))

	res, err := testutil.ExecuteCommand(t, NewShellCommand(), cfg, "vs SN1001\nn\nxyz\ne\n")
	require.NoError(t, err)

	out := res.Out
	assert.True(t, strings.HasPrefix(out, Banner+"\n"), "banner first, got: %q", out)
	assert.Contains(t, out, "What would you like to do?")
	assert.Contains(t, out, "Subjects for student SN1001 :")
	assert.Contains(t, out, "Maths\n")
	assert.Contains(t, out, "Physics\n")
	assert.Contains(t, out, "Would you like to store this result?")
	assert.Contains(t, out, "Incorrect command: 'xyz'")
	assert.True(t, strings.HasSuffix(out, "Programme exited successfully!\n"), "got: %q", out)
	assert.Equal(t, 3, strings.Count(out, "What would you like to do?"))
	testutil.AssertNoANSI(t, out)
}

func TestShell_ExportsResult(t *testing.T) {
	cfg := testutil.TestConfig(testutil.SetupTestDatabase(t))
	target := filepath.Join(t.TempDir(), "address.json")

	stdin := "la Ada Lovelace\ny\n" + target + "\ne\n"
	res, err := testutil.ExecuteCommand(t, NewShellCommand(), cfg, stdin)
	require.NoError(t, err)
	assert.Contains(t, res.Out, "Address for Ada Lovelace :")
	assert.Contains(t, res.Out, "10 Downing St London\n")
	assert.Contains(t, res.Out, "Result stored in "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `[["10 Downing St","London"]]`, string(data))
}

func TestShell_EndOfInput(t *testing.T) {
	cfg := testutil.TestConfig(testutil.SetupTestDatabase(t))

	res, err := testutil.ExecuteCommand(t, NewShellCommand(), cfg, "d\n")
	require.NoError(t, err)
	assert.Contains(t, res.Out, "Ada Lovelace\n")
	assert.NotContains(t, res.Out, "Incorrect command")
}

func TestShell_MissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HyperionDev.db")
	cfg := testutil.TestConfig(path)

	res, err := testutil.ExecuteCommand(t, NewShellCommand(), cfg, "d\ne\n")
	require.Error(t, err)
	assert.Equal(t, "please store your database as "+path, err.Error())
	assert.NotContains(t, res.Out, Banner)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "a missing database must not be created")
}

func TestExec(t *testing.T) {
	db := testutil.SetupTestDatabase(t)

	tests := []struct {
		name      string
		args      []string
		wantOut   []string
		errSubstr string
	}{
		{
			name:    "demo",
			args:    []string{"d"},
			wantOut: []string{"Ada Lovelace", "Grace Hopper", "Alan Turing"},
		},
		{
			name:    "courses by teacher",
			args:    []string{"lc", "2"},
			wantOut: []string{"Courses taught by teacher 2 :", "Computer Science"},
		},
		{
			name:    "failing students",
			args:    []string{"lf"},
			wantOut: []string{"Student number: SN1002", "Name: Grace Hopper", "Mark: 28"},
		},
		{
			name:    "no results",
			args:    []string{"vs", "42"},
			wantOut: []string{"Subjects for student 42 :", "(no results)"},
		},
		{
			name:      "unknown command",
			args:      []string{"xyz"},
			wantOut:   []string{"Incorrect command: 'xyz'"},
			errSubstr: "unknown-command",
		},
		{
			name:      "wrong arity",
			args:      []string{"lr"},
			wantOut:   []string{"The lr command requires 1 argument."},
			errSubstr: "invalid-arity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := testutil.ExecuteCommand(t, NewExecCommand(), testutil.TestConfig(db), "", tt.args...)
			if tt.errSubstr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, res.Out, want)
			}
			assert.NotContains(t, res.Out, "Would you like to store this result?")
		})
	}
}

func TestExec_Save(t *testing.T) {
	db := testutil.SetupTestDatabase(t)
	target := filepath.Join(t.TempDir(), "address.xml")

	res, err := testutil.ExecuteCommand(t, NewExecCommand(), testutil.TestConfig(db), "",
		"la", "Ada", "Lovelace", "--save", target)
	require.NoError(t, err)
	assert.Contains(t, res.Out, "Result stored in "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "<?xml version='1.0' encoding='utf-8'?>\n"+
		"<data><item><field_0>10 Downing St</field_0><field_1>London</field_1></item></data>", string(data))
}

func TestExec_SaveInvalidExtension(t *testing.T) {
	db := testutil.SetupTestDatabase(t)

	_, err := testutil.ExecuteCommand(t, NewExecCommand(), testutil.TestConfig(db), "",
		"d", "--save", "students.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--save students.csv")
}

func TestExec_RequiresCommand(t *testing.T) {
	_, err := testutil.ExecuteCommand(t, NewExecCommand(), testutil.TestConfig("unused.db"), "")
	require.Error(t, err)
}

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		existing bool
		args     []string
		wantErr  bool
		wantDemo bool
	}{
		{name: "new database", wantDemo: true},
		{name: "schema only", args: []string{"--schema-only"}},
		{name: "existing without force", existing: true, wantErr: true},
		{name: "existing with force", existing: true, args: []string{"--force"}, wantDemo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data", "HyperionDev.db")
			if tt.existing {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
				require.NoError(t, os.WriteFile(path, []byte("existing"), 0600))
			}
			cfg := testutil.TestConfig(path)

			res, err := testutil.ExecuteCommand(t, NewInitCommand(), cfg, "", tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "already exists")
				data, readErr := os.ReadFile(path)
				require.NoError(t, readErr)
				assert.Equal(t, "existing", string(data))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, res.Out, "initialized (schema version")

			res, err = testutil.ExecuteCommand(t, NewExecCommand(), cfg, "", "d")
			require.NoError(t, err)
			if tt.wantDemo {
				assert.Contains(t, res.Out, "Ada Lovelace")
			} else {
				assert.Contains(t, res.Out, "(no results)")
			}
		})
	}
}
