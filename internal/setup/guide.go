// Package setup prints the guided Gmail API credential walkthrough. It walks
// the operator through the Google Cloud Console steps that produce
// credentials.json, pausing for Enter between steps, and finishes by
// validating the downloaded file with the preflight checks.
package setup

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mailbrief/mailbrief/internal/preflight"
)

// Step is one numbered stage of the walkthrough.
type Step struct {
	Title string
	Body  string
	// Prompt shown before blocking on Enter. Empty means no pause (used for
	// the last step, which flows straight into validation).
	Prompt string
}

// Steps mirror the Google Cloud Console flow for a Desktop OAuth client.
var Steps = []Step{
	{
		Title: "Access Google Cloud Console",
		Body: "1. Open your web browser\n" +
			"2. Go to: https://console.cloud.google.com/\n" +
			"3. Sign in with your Google account\n" +
			"4. Create a new project or select an existing one",
		Prompt: "Press Enter when you're ready to continue...",
	},
	{
		Title: "Enable Gmail API",
		Body: "1. In the Google Cloud Console, go to 'APIs & Services' > 'Library'\n" +
			"2. Search for 'Gmail API'\n" +
			"3. Click on 'Gmail API'\n" +
			"4. Click the 'Enable' button",
		Prompt: "Press Enter when you've enabled the Gmail API...",
	},
	{
		Title: "Create OAuth 2.0 Credentials",
		Body: "1. Go to 'APIs & Services' > 'Credentials'\n" +
			"2. Click 'Create Credentials' > 'OAuth client ID'\n" +
			"3. If prompted, configure the OAuth consent screen (External user type)\n" +
			"4. Select application type 'Desktop application'\n" +
			"5. Click 'Create'",
		Prompt: "Press Enter when you've created the credentials...",
	},
	{
		Title: "Download Credentials",
		Body: "1. Click 'Download JSON' next to the new client\n" +
			"2. Rename the downloaded file to 'credentials.json'\n" +
			"3. Move it into this project directory",
	},
}

const divider = "============================================================"

// Guide runs the walkthrough against injected streams.
type Guide struct {
	In  io.Reader
	Out io.Writer

	stdin *bufio.Reader
}

// Run prints every step, pausing between them, then validates the
// credentials file the operator should have produced. A failed validation is
// reported but not returned as an error — the operator can rerun `doctor`
// after fixing it.
func (g *Guide) Run(credentialsPath string) error {
	fmt.Fprintln(g.Out, "This guide walks you through creating Gmail API credentials.")
	fmt.Fprintln(g.Out, "Follow each step carefully to produce your credentials.json file.")

	for i, step := range Steps {
		fmt.Fprintf(g.Out, "\n%s\n", divider)
		fmt.Fprintf(g.Out, "STEP %d: %s\n", i+1, step.Title)
		fmt.Fprintf(g.Out, "%s\n", divider)
		fmt.Fprintln(g.Out, step.Body)
		if step.Prompt != "" {
			g.waitEnter(step.Prompt)
		}
	}

	fmt.Fprintln(g.Out)
	r := preflight.CheckCredentials(credentialsPath)
	if r.OK {
		fmt.Fprintf(g.Out, "  ✓ %s looks valid", r.Name)
		if r.Detail != "" {
			fmt.Fprintf(g.Out, " (%s)", r.Detail)
		}
		fmt.Fprintln(g.Out)
		fmt.Fprintln(g.Out, "\nSetup complete! Next steps:")
		fmt.Fprintln(g.Out, "1. Put your OpenAI API key in .env (OPENAI_API_KEY=...)")
		fmt.Fprintln(g.Out, "2. Run: mailbrief launch")
	} else {
		fmt.Fprintf(g.Out, "  ✗ %s: %s\n", r.Name, r.Detail)
		fmt.Fprintln(g.Out, "\nFix the credentials file and run 'mailbrief doctor' to re-check.")
	}

	fmt.Fprintf(g.Out, "\n%s\n", divider)
	fmt.Fprintln(g.Out, "Additional resources:")
	fmt.Fprintln(g.Out, "• Google Cloud Console: https://console.cloud.google.com/")
	fmt.Fprintln(g.Out, "• Gmail API documentation: https://developers.google.com/gmail/api")
	fmt.Fprintln(g.Out, divider)
	return nil
}

// waitEnter blocks until the operator presses Enter (or the stream ends).
func (g *Guide) waitEnter(prompt string) {
	fmt.Fprintf(g.Out, "\n%s", prompt)
	if g.stdin == nil {
		g.stdin = bufio.NewReader(g.In)
	}
	_, _ = g.stdin.ReadString('\n')
	fmt.Fprintln(g.Out)
}
