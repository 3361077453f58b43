package provision

import (
	"errors"
	"fmt"
	"os"

	marecmd "github.com/femnad/mare/cmd"

	"github.com/mjjbox/checkin-setup/entity"
	"github.com/mjjbox/checkin-setup/internal"
	"github.com/mjjbox/checkin-setup/remote"
)

const payloadFile = "checkin.py"

// ErrNoFetchTool signals that neither fetch tool was found on PATH, distinct
// from a fetch that ran and failed. Both abort the install, before any
// credentials are collected.
var ErrNoFetchTool = errors.New("no fetch tool available, install curl or wget")

var fetchTools = []struct {
	exec string
	args string
}{
	{exec: "curl", args: "curl -fsSL -o %s %s"},
	{exec: "wget", args: "wget -q -O %s %s"},
}

// Acquirer produces an executable payload file at the given path.
type Acquirer interface {
	Acquire(target string) error
}

func markExecutable(target string) error {
	err := os.Chmod(target, 0o755)
	if err != nil {
		return fmt.Errorf("error marking %s executable: %v", target, err)
	}

	return nil
}

// EmbedAcquirer writes a fixed placeholder script. The file is guaranteed to
// exist but performs no check-in until replaced with the real script.
type EmbedAcquirer struct {
}

const placeholderPayload = `#!/usr/bin/env python3
# Placeholder for the mjjbox check-in script. Replace this file with the
# published checkin.py to perform actual check-ins; the systemd units
# installed alongside it will pick the replacement up unchanged.
print("checkin.py placeholder, replace with the real script")
`

func (EmbedAcquirer) Acquire(target string) error {
	internal.Log.Infof("Writing placeholder check-in script to %s", target)

	err := os.WriteFile(target, []byte(placeholderPayload), 0o644)
	if err != nil {
		return fmt.Errorf("error writing placeholder payload %s: %v", target, err)
	}

	return markExecutable(target)
}

// FetchAcquirer downloads the script with the first available fetch tool,
// curl preferred over wget.
type FetchAcquirer struct {
	Runner internal.Runner
	URL    string
}

func (f FetchAcquirer) Acquire(target string) error {
	for _, tool := range fetchTools {
		if _, err := internal.Which(tool.exec); err != nil {
			continue
		}

		internal.Log.Infof("Fetching check-in script from %s with %s", f.URL, tool.exec)
		cmd := fmt.Sprintf(tool.args, target, f.URL)
		if _, err := internal.RunFmtErr(f.Runner, marecmd.Input{Command: cmd}); err != nil {
			return fmt.Errorf("error fetching payload from %s: %v", f.URL, err)
		}

		return markExecutable(target)
	}

	return ErrNoFetchTool
}

// DirectAcquirer downloads the script with the built-in HTTP client, opted
// into via the direct flag or answers file field.
type DirectAcquirer struct {
	Runner internal.Runner
	URL    string
}

func (d DirectAcquirer) Acquire(target string) error {
	internal.Log.Infof("Fetching check-in script from %s", d.URL)

	err := remote.Download(d.Runner, d.URL, target)
	if err != nil {
		return fmt.Errorf("error fetching payload from %s: %v", d.URL, err)
	}

	return markExecutable(target)
}

func acquirer(opts entity.InstallOptions, r internal.Runner) Acquirer {
	if opts.Embed {
		return EmbedAcquirer{}
	}
	if opts.Direct {
		return DirectAcquirer{Runner: r, URL: opts.URL}
	}
	return FetchAcquirer{Runner: r, URL: opts.URL}
}
