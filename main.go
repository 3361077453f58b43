package main

import (
	"os"

	"github.com/alexflint/go-arg"

	"github.com/mjjbox/checkin-setup/entity"
	"github.com/mjjbox/checkin-setup/internal"
	"github.com/mjjbox/checkin-setup/prompt"
	"github.com/mjjbox/checkin-setup/provision"
)

type installCmd struct {
	Dir    string `arg:"-d,--dir" help:"Install directory"`
	URL    string `arg:"-u,--url" help:"Check-in script URL"`
	Embed  bool   `arg:"--embed" help:"Write the embedded placeholder script instead of fetching"`
	Direct bool   `arg:"--direct" help:"Fetch the script with the built-in HTTP client"`
	NoDeps bool   `arg:"--no-deps" help:"Skip system dependency installation"`
}

type uninstallCmd struct {
	Dir string `arg:"-d,--dir" help:"Install directory"`
	Yes bool   `arg:"-y,--yes" help:"Skip the deletion confirmation"`
}

type args struct {
	Install   *installCmd   `arg:"subcommand:install" help:"Install the check-in bot"`
	Uninstall *uninstallCmd `arg:"subcommand:uninstall" help:"Remove the check-in bot"`
	File      string        `arg:"-f,--file" help:"Answers file with pre-seeded prompt responses"`
	LogLevel  int           `arg:"-l,--loglevel" default:"4"`
}

func (args) Version() string {
	return "checkin-setup 0.1.0"
}

// mergeFlags lets command line flags win over the answers file.
func mergeFlags(opts *entity.InstallOptions, cmd installCmd) {
	if cmd.Dir != "" {
		opts.Dir = cmd.Dir
	}
	if cmd.URL != "" {
		opts.URL = cmd.URL
	}
	if cmd.Embed {
		opts.Embed = true
	}
	if cmd.Direct {
		opts.Direct = true
	}
	if cmd.NoDeps {
		opts.AutoDeps = entity.Bool(false)
	}
}

func fatal(err error) {
	internal.Log.Errorf("%v", err)
	os.Exit(1)
}

func main() {
	var parsed args
	arg.MustParse(&parsed)
	internal.InitLogging(parsed.LogLevel)

	var answers entity.InstallOptions
	if parsed.File != "" {
		var err error
		answers, err = entity.ReadOptions(parsed.File)
		if err != nil {
			fatal(err)
		}
	}

	// One prompter for the menu and the workflows, they share stdin.
	pr := prompt.New()
	p := provision.Provisioner{
		Prompt: pr,
		Runner: internal.Exec,
	}

	switch {
	case parsed.Install != nil:
		mergeFlags(&answers, *parsed.Install)
		p.Opts = answers
		if err := p.Install(); err != nil {
			fatal(err)
		}
	case parsed.Uninstall != nil:
		uninstall := entity.UninstallOptions{Dir: parsed.Uninstall.Dir}
		if uninstall.Dir == "" {
			uninstall.Dir = answers.Dir
		}
		if parsed.Uninstall.Yes {
			uninstall.Confirm = entity.Bool(true)
		}
		if err := p.Uninstall(uninstall); err != nil {
			fatal(err)
		}
	default:
		runMenu(p, pr, answers)
	}
}

// runMenu is the default interactive surface: 1 installs, 2 uninstalls and
// any other input exits cleanly without re-prompting.
func runMenu(p provision.Provisioner, pr *prompt.Prompter, answers entity.InstallOptions) {
	choice, err := pr.Menu("mjjbox check-in bot setup", []string{"Install", "Uninstall", "Exit"})
	if err != nil {
		fatal(err)
	}

	switch choice {
	case "1":
		p.Opts = answers
		if err = p.Install(); err != nil {
			fatal(err)
		}
	case "2":
		if err = p.Uninstall(entity.UninstallOptions{Dir: answers.Dir}); err != nil {
			fatal(err)
		}
	}
}
