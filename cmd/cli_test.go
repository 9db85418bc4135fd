package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("PARNASO_SECRETS_BACKEND", "file")
	t.Setenv("PARNASO_DATA_DIR", "")
	t.Setenv("PARNASO_STORAGE_DRIVER", "")

	root, app := newRootCmd()
	defer app.close()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func registerAna(t *testing.T, home string, extra ...string) {
	t.Helper()

	args := append([]string{"register", "--email", "ana@example.com", "--password", "secret1", "--name", "Ana"}, extra...)
	stdout, _, err := executeCLI(t, home, args...)
	require.NoError(t, err)
	require.Contains(t, stdout, "signed in as Ana <ana@example.com> (admin)")
}

func TestVersionRunsWithoutConfig(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".parnaso"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".parnaso", "config.toml"), []byte("[storage]\ndriver = \"nope\"\n"), 0o600))

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestRegisterRequiresCredentialFlags(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "register", "--email", "ana@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"password\" not set")
}

func TestRegisterWhoamiLogout(t *testing.T) {
	home := t.TempDir()
	registerAna(t, home)

	stdout, _, err := executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Ana <ana@example.com> (admin)\n", stdout)

	stdout, _, err = executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Equal(t, "signed out\n", stdout)

	_, _, err = executeCLI(t, home, "whoami")
	require.ErrorIs(t, err, errNotSignedIn)

	stdout, _, err = executeCLI(t, home, "login", "--email", "ANA@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "signed in as Ana")
}

func TestRegisterRejectsDuplicateAndWeakPassword(t *testing.T) {
	home := t.TempDir()
	registerAna(t, home)

	_, _, err := executeCLI(t, home, "register", "--email", "ana@example.com", "--password", "another1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already registered")

	_, _, err = executeCLI(t, home, "register", "--email", "bo@example.com", "--password", "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6 characters")
}

func TestLoginWithWrongPassword(t *testing.T) {
	home := t.TempDir()
	registerAna(t, home)

	_, _, err := executeCLI(t, home, "login", "--email", "ana@example.com", "--password", "wrong-password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestDataCommandsRequireSignIn(t *testing.T) {
	home := t.TempDir()

	for _, args := range [][]string{
		{"session", "list"},
		{"session", "add", "--words", "10"},
		{"project", "list"},
		{"settings", "show"},
		{"stats"},
		{"reset", "--yes"},
	} {
		_, _, err := executeCLI(t, home, args...)
		require.ErrorIs(t, err, errNotSignedIn, "%v", args)
	}
}

func TestSessionAddAndList(t *testing.T) {
	for _, driver := range []string{"toml", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			home := t.TempDir()
			registerAna(t, home, "--storage", driver)

			stdout, _, err := executeCLI(t, home, "--storage", driver, "project", "add", "Novel", "--target", "50000")
			require.NoError(t, err)
			assert.Equal(t, "created project Novel\n", stdout)

			_, _, err = executeCLI(t, home, "--storage", driver, "project", "add", "novel")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "already exists")

			stdout, _, err = executeCLI(t, home, "--storage", driver,
				"session", "add",
				"--content", "the sea was calm",
				"--project", "novel",
				"--end", "2026-03-10 09:30",
				"--minutes", "30",
			)
			require.NoError(t, err)
			assert.Equal(t, "saved session: 4 words in 30m0s\n", stdout)

			stdout, _, err = executeCLI(t, home, "--storage", driver, "session", "list", "--json")
			require.NoError(t, err)

			var sessions []sessionJSON
			require.NoError(t, json.Unmarshal([]byte(stdout), &sessions))
			require.Len(t, sessions, 1)
			assert.NotEmpty(t, sessions[0].ID)
			assert.Equal(t, "Novel", sessions[0].Project)
			assert.Equal(t, 4, sessions[0].WordCount)
			assert.Equal(t, "the sea was calm", sessions[0].Content)
			assert.Equal(t, 30*60.0, sessions[0].EndTime.Sub(sessions[0].StartTime).Seconds())

			stdout, _, err = executeCLI(t, home, "--storage", driver, "session", "list")
			require.NoError(t, err)
			assert.Contains(t, stdout, "Sessions")
			assert.Contains(t, stdout, "the sea was calm")

			stdout, _, err = executeCLI(t, home, "--storage", driver, "project", "list")
			require.NoError(t, err)
			assert.Regexp(t, `Novel\s+4\s+50000`, stdout)

			_, dbErr := os.Stat(filepath.Join(home, ".parnaso", "parnaso.db"))
			if driver == "sqlite" {
				assert.NoError(t, dbErr)
			} else {
				assert.True(t, os.IsNotExist(dbErr))
			}
		})
	}
}

func TestDataCommandsFailWhenUserDataCannotLoad(t *testing.T) {
	home := t.TempDir()
	registerAna(t, home)

	_, _, err := executeCLI(t, home, "session", "add", "--words", "120")
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(home, ".parnaso", "users", "*.toml"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.NoError(t, os.WriteFile(files[0], []byte("sessions = ["), 0o600))

	_, _, err = executeCLI(t, home, "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load user data")
}

func TestSessionAddValidation(t *testing.T) {
	home := t.TempDir()
	registerAna(t, home)

	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "bad time", args: []string{"--start", "noon"}, wantErr: "--start: want"},
		{name: "end before start", args: []string{"--start", "2026-03-10 10:00", "--end", "2026-03-10 09:00"}, wantErr: "--end is before --start"},
		{name: "unknown project", args: []string{"--project", "Poems"}, wantErr: "project not found"},
		{name: "negative words", args: []string{"--words", "-1"}, wantErr: "--words must not be negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := executeCLI(t, home, append([]string{"session", "add"}, tc.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestSettingsSetAndShow(t *testing.T) {
	home := t.TempDir()
	registerAna(t, home)

	stdout, _, err := executeCLI(t, home, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "daily goal:   500 words")
	assert.Contains(t, stdout, "focus length: 25m0s")
	assert.Contains(t, stdout, "week starts:  Monday")

	_, _, err = executeCLI(t, home, "settings", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")

	_, _, err = executeCLI(t, home, "settings", "set", "--week-start", "someday")
	require.Error(t, err)

	_, _, err = executeCLI(t, home, "settings", "set", "--daily-goal", "750", "--focus-minutes", "45", "--week-start", "sun")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "daily goal:   750 words")
	assert.Contains(t, stdout, "focus length: 45m0s")
	assert.Contains(t, stdout, "week starts:  Sunday")
}

func TestStatsShowsProgress(t *testing.T) {
	home := t.TempDir()
	registerAna(t, home)

	_, _, err := executeCLI(t, home, "session", "add", "--words", "120")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "stats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Writing progress")
	assert.Contains(t, stdout, "writer: Ana")
	assert.Contains(t, stdout, "120/500 words")
	assert.Contains(t, stdout, "1 day")
}

func TestResetErasesData(t *testing.T) {
	home := t.TempDir()
	registerAna(t, home)

	_, _, err := executeCLI(t, home, "session", "add", "--words", "80")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "settings", "set", "--daily-goal", "900")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without --yes")

	stdout, _, err := executeCLI(t, home, "reset", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "all writing data erased\n", stdout)

	stdout, _, err = executeCLI(t, home, "session", "list", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", stdout)

	stdout, _, err = executeCLI(t, home, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "daily goal:   500 words")
}

func TestUsersCommand(t *testing.T) {
	home := t.TempDir()
	registerAna(t, home)

	stdout, _, err := executeCLI(t, home, "register", "--email", "bo@example.com", "--password", "secret2", "--name", "Bo")
	require.NoError(t, err)
	assert.Equal(t, "signed in as Bo <bo@example.com>\n", stdout)

	stdout, _, err = executeCLI(t, home, "users")
	require.NoError(t, err)
	assert.Equal(t, "Ana\n", stdout)

	_, _, err = executeCLI(t, home, "users", "--all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin role required")

	_, _, err = executeCLI(t, home, "login", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "users", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ana@example.com\tadmin")
	assert.Contains(t, stdout, "bo@example.com\twriter")
}

func TestConfigFileSelectsStorage(t *testing.T) {
	home := t.TempDir()
	dataDir := filepath.Join(home, ".parnaso")
	require.NoError(t, os.MkdirAll(dataDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte("[storage]\ndriver = \"sqlite\"\n"), 0o600))

	registerAna(t, home)
	_, _, err := executeCLI(t, home, "session", "add", "--words", "5")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dataDir, "parnaso.db"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dataDir, "users"))
	assert.True(t, os.IsNotExist(err))
}

func TestUnknownStorageDriver(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "--storage", "mongo", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}

func TestDataDirFlag(t *testing.T) {
	home := t.TempDir()
	dataDir := filepath.Join(t.TempDir(), "journal")

	_, _, err := executeCLI(t, home, "--data-dir", dataDir, "register", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dataDir, "users.toml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, ".parnaso"))
	assert.True(t, os.IsNotExist(err))
}
