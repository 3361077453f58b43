package internal

import (
	"fmt"
	"strings"

	marecmd "github.com/femnad/mare/cmd"
)

// Runner abstracts command execution so provisioning workflows can run against
// a recorded fake instead of the host.
type Runner interface {
	Run(in marecmd.Input) (marecmd.Output, error)
}

type execRunner struct{}

func (execRunner) Run(in marecmd.Input) (marecmd.Output, error) {
	return marecmd.Run(in)
}

// Exec runs commands on the host via mare.
var Exec Runner = execRunner{}

// RunFmtErr converts a non-zero exit into an error carrying the command's
// stderr, matching mare's RunFormatError semantics for any Runner.
func RunFmtErr(r Runner, in marecmd.Input) (marecmd.Output, error) {
	out, err := r.Run(in)
	if err != nil {
		return out, err
	}

	if out.Code != 0 {
		msg := fmt.Sprintf("error running command %s, exit code %d", in.Command, out.Code)
		stderr := strings.TrimSpace(out.Stderr)
		if stderr != "" {
			msg += fmt.Sprintf(", stderr: %s", stderr)
		}
		return out, fmt.Errorf("%s", msg)
	}

	return out, nil
}

func maybeWarnPasswordRequired(r Runner, cmdStr string) {
	out, _ := r.Run(marecmd.Input{Command: "sudo -Nnv"})
	if out.Code == 0 {
		return
	}

	cmdHead := strings.Split(cmdStr, " ")[0]
	Log.Warningf("Sudo authentication required for escalating privileges to run command %s", cmdHead)
}

// MaybeRunWithSudo runs the command with sudo when the current user is not
// root, warning beforehand if sudo will prompt for a password.
func MaybeRunWithSudo(r Runner, cmdStr string) error {
	isRoot, err := IsUserRoot()
	if err != nil {
		return err
	}

	if !isRoot {
		maybeWarnPasswordRequired(r, cmdStr)
	}

	_, err = RunFmtErr(r, marecmd.Input{Command: cmdStr, Sudo: !isRoot})
	return err
}
