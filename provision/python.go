package provision

import (
	"fmt"
	"os/user"
	"path"

	marecmd "github.com/femnad/mare/cmd"

	"github.com/mjjbox/checkin-setup/internal"
)

const venvSubdir = "venv"

// The check-in script imports requests and bs4, nothing else outside the
// standard library.
var venvLibraries = []string{"requests", "beautifulsoup4"}

func pipInstall(r internal.Runner, pipBin, pkg string) error {
	cmd := fmt.Sprintf("%s install %s", pipBin, pkg)
	_, err := internal.RunFmtErr(r, marecmd.Input{Command: cmd})
	if err != nil {
		return fmt.Errorf("error installing pip package %s: %v", pkg, err)
	}

	return nil
}

// provisionEnv creates the install directory owned by the login user and
// builds a virtualenv at <dir>/venv with the check-in script's libraries.
// Any failure is fatal to the install; a partially constructed directory is
// left as is.
func provisionEnv(r internal.Runner, dir, python string, owner *user.User) error {
	if err := internal.EnsureDirExists(r, dir); err != nil {
		return fmt.Errorf("error creating install directory %s: %v", dir, err)
	}

	if err := internal.Chown(r, dir, owner); err != nil {
		return fmt.Errorf("error setting ownership of %s to %s: %v", dir, owner.Username, err)
	}

	venvDir := path.Join(dir, venvSubdir)
	internal.Log.Infof("Creating virtualenv under %s", venvDir)

	cmd := fmt.Sprintf("%s -m venv %s", python, venvDir)
	if _, err := internal.RunFmtErr(r, marecmd.Input{Command: cmd}); err != nil {
		return fmt.Errorf("error creating virtualenv %s: %v", venvDir, err)
	}

	venvPip := path.Join(venvDir, "bin", "pip")
	upgradeCmd := fmt.Sprintf("%s install --upgrade pip", venvPip)
	if _, err := internal.RunFmtErr(r, marecmd.Input{Command: upgradeCmd}); err != nil {
		return fmt.Errorf("error upgrading pip in %s: %v", venvDir, err)
	}

	for _, library := range venvLibraries {
		internal.Log.Infof("Installing Python package %s", library)
		if err := pipInstall(r, venvPip, library); err != nil {
			return err
		}
	}

	return nil
}
