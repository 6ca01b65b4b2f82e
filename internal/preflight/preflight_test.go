package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCheckCredentials(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		r := CheckCredentials(filepath.Join(dir, "credentials.json"))
		assert.False(t, r.OK)
		assert.Contains(t, r.Detail, "not found")
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeFile(t, dir, "broken.json", "{not json")
		r := CheckCredentials(path)
		assert.False(t, r.OK)
		assert.Contains(t, r.Detail, "invalid JSON")
	})

	t.Run("wrong shape", func(t *testing.T) {
		path := writeFile(t, dir, "service.json", `{"type":"service_account"}`)
		r := CheckCredentials(path)
		assert.False(t, r.OK)
		assert.Contains(t, r.Detail, "installed")
	})

	t.Run("installed client", func(t *testing.T) {
		path := writeFile(t, dir, "installed.json",
			`{"installed":{"client_id":"x","project_id":"summarizer-123"}}`)
		r := CheckCredentials(path)
		assert.True(t, r.OK)
		assert.Contains(t, r.Detail, "summarizer-123")
	})

	t.Run("web client", func(t *testing.T) {
		path := writeFile(t, dir, "web.json", `{"web":{"client_id":"x"}}`)
		r := CheckCredentials(path)
		assert.True(t, r.OK)
	})
}

func TestCheckEnvFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		r := CheckEnvFile(filepath.Join(dir, ".env"))
		assert.False(t, r.OK)
		assert.Contains(t, r.Detail, "OPENAI_API_KEY")
	})

	t.Run("key absent", func(t *testing.T) {
		path := writeFile(t, dir, "nokey.env", "OTHER=1\n")
		r := CheckEnvFile(path)
		assert.False(t, r.OK)
		assert.Contains(t, r.Detail, "missing or empty")
	})

	t.Run("key empty", func(t *testing.T) {
		path := writeFile(t, dir, "empty.env", "OPENAI_API_KEY=\n")
		r := CheckEnvFile(path)
		assert.False(t, r.OK)
	})

	t.Run("key set", func(t *testing.T) {
		path := writeFile(t, dir, "good.env", "OPENAI_API_KEY=sk-test\n")
		r := CheckEnvFile(path)
		assert.True(t, r.OK)
		assert.Equal(t, "OPENAI_API_KEY set", r.Detail)
	})
}

func TestCheckToken(t *testing.T) {
	dir := t.TempDir()

	r := CheckToken(filepath.Join(dir, "token.json"))
	assert.False(t, r.OK)
	assert.True(t, r.Advisory, "missing token must not fail the run")

	writeFile(t, dir, "token.json", "{}")
	r = CheckToken(filepath.Join(dir, "token.json"))
	assert.True(t, r.OK)
}

func TestCheckScript(t *testing.T) {
	dir := t.TempDir()

	r := CheckScript(filepath.Join(dir, "gmail_ai_summarizer.py"))
	assert.False(t, r.OK)

	writeFile(t, dir, "gmail_ai_summarizer.py", "print('hi')\n")
	r = CheckScript(filepath.Join(dir, "gmail_ai_summarizer.py"))
	assert.True(t, r.OK)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "actually_a_dir"), 0o755))
	r = CheckScript(filepath.Join(dir, "actually_a_dir"))
	assert.False(t, r.OK)
	assert.Contains(t, r.Detail, "directory")
}

func TestCheckRuntime(t *testing.T) {
	// "sh" exists everywhere the test suite runs.
	r := CheckRuntime("sh")
	assert.True(t, r.OK)
	assert.NotEmpty(t, r.Detail)

	r = CheckRuntime("mailbrief-no-such-command")
	assert.False(t, r.OK)
	assert.Contains(t, r.Detail, "not on PATH")
}

func TestRunAndFailed(t *testing.T) {
	if !CheckPython().OK {
		t.Skip("no python interpreter on test host")
	}

	dir := t.TempDir()
	writeFile(t, dir, "gmail_ai_summarizer.py", "")
	writeFile(t, dir, "credentials.json", `{"installed":{"project_id":"p"}}`)
	writeFile(t, dir, ".env", "OPENAI_API_KEY=sk-test\n")

	s := Settings{
		Command:         "sh", // stands in for streamlit on test hosts
		Script:          "gmail_ai_summarizer.py",
		CredentialsFile: "credentials.json",
		EnvFile:         ".env",
		TokenFile:       "token.json",
		Dir:             dir,
	}

	results := Run(s)
	require.Len(t, results, 6)
	assert.False(t, Failed(results), "missing token.json is advisory only")

	require.NoError(t, os.Remove(filepath.Join(dir, ".env")))
	assert.True(t, Failed(Run(s)))
}
