// mailbrief — console launcher & preflight companion for the Gmail AI Summarizer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailbrief/mailbrief/internal/config"
	"github.com/mailbrief/mailbrief/internal/launcher"
	"github.com/mailbrief/mailbrief/internal/preflight"
	"github.com/mailbrief/mailbrief/internal/setup"
	"github.com/mailbrief/mailbrief/internal/status"
)

const asciiLogo = `
 ███╗   ███╗ █████╗ ██╗██╗     ██████╗ ██████╗ ██╗███████╗███████╗
 ████╗ ████║██╔══██╗██║██║     ██╔══██╗██╔══██╗██║██╔════╝██╔════╝
 ██╔████╔██║███████║██║██║     ██████╔╝██████╔╝██║█████╗  █████╗
 ██║╚██╔╝██║██╔══██║██║██║     ██╔══██╗██╔══██╗██║██╔══╝  ██╔══╝
 ██║ ╚═╝ ██║██║  ██║██║███████╗██████╔╝██║  ██║██║███████╗██║
 ╚═╝     ╚═╝╚═╝  ╚═╝╚═╝╚══════╝╚═════╝ ╚═╝  ╚═╝╚═╝╚══════╝╚═╝
`

const version = "v0.1.0"

func printBanner(mode string) {
	fmt.Printf("%s\n", asciiLogo)
	fmt.Printf("  ► mailbrief %s  |  Mode: %s\n\n", version, mode)
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mailbrief",
		Short: "mailbrief — launcher & preflight companion for the Gmail AI Summarizer",
		Long: `mailbrief wraps the Gmail AI Summarizer's streamlit front-end with a
console launcher, a guided credential setup, environment checks, and a
running-instance status view. The summarizer itself is an external
application; mailbrief only starts and inspects it.`,
		SilenceUsage: true,
	}

	// ── launch subcommand ─────────────────────────────────────────────────────
	// No banner here: the launch sequence is a fixed console script (title,
	// checklist, pause, child process, pause) and nothing else.
	launchCmd := &cobra.Command{
		Use:   "launch",
		Short: "Print the prerequisite checklist and start the web front-end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			l := launcher.New(cfg.Command, append(cfg.CommandArgs, cfg.Script), cfg.WorkDir)
			return l.Run()
		},
	}

	// ── doctor subcommand ─────────────────────────────────────────────────────
	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment the summarizer needs (files, keys, runtime)",
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner("DOCTOR")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			results := preflight.Run(preflight.Settings{
				Command:         cfg.Command,
				Script:          cfg.Script,
				CredentialsFile: cfg.CredentialsFile,
				EnvFile:         cfg.EnvFile,
				TokenFile:       cfg.TokenFile,
				Dir:             cfg.WorkDir,
			})
			for _, r := range results {
				mark := "✓"
				if !r.OK {
					mark = "✗"
					if r.Advisory {
						mark = "!"
					}
				}
				if r.Detail != "" {
					fmt.Printf("  %s %s — %s\n", mark, r.Name, r.Detail)
				} else {
					fmt.Printf("  %s %s\n", mark, r.Name)
				}
			}

			if preflight.Failed(results) {
				return fmt.Errorf("environment is not ready — fix the ✗ items above")
			}
			fmt.Println("\n  Environment looks ready. Run 'mailbrief launch' to start.")
			return nil
		},
	}

	// ── setup subcommand ──────────────────────────────────────────────────────
	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Walk through creating Gmail API credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner("SETUP")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			g := &setup.Guide{In: os.Stdin, Out: os.Stdout}
			return g.Run(cfg.CredentialsFile)
		},
	}

	// ── status subcommand ─────────────────────────────────────────────────────
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the summarizer front-end is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner("STATUS")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			snap, err := status.Collect(cfg.Script, cfg.UIPort)
			if err != nil {
				return fmt.Errorf("collecting status: %w", err)
			}
			status.Render(os.Stdout, snap)
			if !snap.Running() {
				fmt.Println("\n  Front-end is not running. Start it with 'mailbrief launch'.")
			}
			return nil
		},
	}

	// ── version subcommand ────────────────────────────────────────────────────
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print mailbrief version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mailbrief %s\n", version)
		},
	}

	root.AddCommand(launchCmd, doctorCmd, setupCmd, statusCmd, versionCmd)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
