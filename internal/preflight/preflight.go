// Package preflight implements the environment checks behind the doctor
// command: OAuth client credentials, the dotenv API key, the cached token,
// and the front-end runtime. The launcher itself never calls any of this —
// its checklist stays advisory-only.
package preflight

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/viper"
)

// Result is the outcome of a single check.
type Result struct {
	Name   string
	OK     bool
	Detail string
	// Advisory checks warn instead of failing the run (e.g. a missing
	// token.json just means the first launch will open the consent screen).
	Advisory bool
}

// Settings names the files and binaries doctor verifies. Paths are resolved
// relative to Dir.
type Settings struct {
	Command         string // front-end host program, e.g. "streamlit"
	Script          string
	CredentialsFile string
	EnvFile         string
	TokenFile       string
	Dir             string // "" = current directory
}

// Run executes every check in a fixed order and returns their results.
func Run(s Settings) []Result {
	results := []Result{
		CheckRuntime(s.Command),
		CheckPython(),
		CheckScript(filepath.Join(s.Dir, s.Script)),
		CheckCredentials(filepath.Join(s.Dir, s.CredentialsFile)),
		CheckEnvFile(filepath.Join(s.Dir, s.EnvFile)),
		CheckToken(filepath.Join(s.Dir, s.TokenFile)),
	}
	return results
}

// Failed reports whether any non-advisory check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.OK && !r.Advisory {
			return true
		}
	}
	return false
}

// clientSection is the part of an OAuth client secrets file we look at.
type clientSection struct {
	ProjectID string `json:"project_id"`
}

// CheckCredentials verifies that the OAuth client secrets file exists, parses
// as JSON, and carries an "installed" or "web" client section. The project ID
// is surfaced when present so the operator can confirm the right Cloud
// Console project.
func CheckCredentials(path string) Result {
	r := Result{Name: filepath.Base(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.Detail = "not found — download OAuth client credentials from Google Cloud Console"
		} else {
			r.Detail = err.Error()
		}
		return r
	}

	var creds struct {
		Installed *clientSection `json:"installed"`
		Web       *clientSection `json:"web"`
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		r.Detail = "invalid JSON — re-download the credentials file"
		return r
	}

	section := creds.Installed
	if section == nil {
		section = creds.Web
	}
	if section == nil {
		r.Detail = `missing "installed"/"web" section — make sure you exported an OAuth client ID`
		return r
	}

	r.OK = true
	if section.ProjectID != "" {
		r.Detail = fmt.Sprintf("project %s", section.ProjectID)
	}
	return r
}

// CheckEnvFile verifies that the dotenv file exists and defines a non-empty
// OPENAI_API_KEY. Parsing goes through viper so quoting and comments behave
// like the downstream python-dotenv loader.
func CheckEnvFile(path string) Result {
	r := Result{Name: filepath.Base(path)}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			r.Detail = "not found — create it with OPENAI_API_KEY=<your key>"
		} else {
			r.Detail = err.Error()
		}
		return r
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		r.Detail = fmt.Sprintf("unreadable: %v", err)
		return r
	}
	if v.GetString("OPENAI_API_KEY") == "" {
		r.Detail = "OPENAI_API_KEY is missing or empty"
		return r
	}

	r.OK = true
	r.Detail = "OPENAI_API_KEY set"
	return r
}

// CheckToken reports whether the cached Gmail OAuth token exists. Advisory:
// the application creates it on first login.
func CheckToken(path string) Result {
	r := Result{Name: filepath.Base(path), Advisory: true}
	if _, err := os.Stat(path); err != nil {
		r.Detail = "not found — the first launch will open the Google consent screen"
		return r
	}
	r.OK = true
	return r
}

// CheckRuntime resolves the front-end host program on PATH.
func CheckRuntime(command string) Result {
	r := Result{Name: command}
	path, err := exec.LookPath(command)
	if err != nil {
		r.Detail = fmt.Sprintf("not on PATH — install it with: pip install %s", command)
		return r
	}
	r.OK = true
	r.Detail = path
	return r
}

// CheckPython resolves a Python interpreter, preferring python3.
func CheckPython() Result {
	r := Result{Name: "python"}
	for _, candidate := range []string{"python3", "python"} {
		if path, err := exec.LookPath(candidate); err == nil {
			r.OK = true
			r.Detail = path
			return r
		}
	}
	r.Detail = "no python3/python on PATH"
	return r
}

// CheckScript verifies the external application entrypoint is present. The
// file is never opened — it belongs to the downstream application.
func CheckScript(path string) Result {
	r := Result{Name: filepath.Base(path)}
	info, err := os.Stat(path)
	if err != nil {
		r.Detail = "not found in the working directory"
		return r
	}
	if info.IsDir() {
		r.Detail = "is a directory, expected a file"
		return r
	}
	r.OK = true
	return r
}
