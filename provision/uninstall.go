package provision

import (
	"os"
	"path"

	"github.com/mjjbox/checkin-setup/entity"
	"github.com/mjjbox/checkin-setup/internal"
)

// Uninstall reverses an install: disable and remove the units first, then
// delete the install directory, so no active unit ever references a removed
// script. Unit cleanup is best-effort throughout; only an existing directory
// that cannot be removed is an error. Running against a directory that was
// never installed reports its absence and does nothing.
func (p *Provisioner) Uninstall(opts entity.UninstallOptions) error {
	dir := opts.Dir
	var err error
	if dir == "" {
		if dir, err = p.Prompt.String("Install directory", entity.DefaultDir); err != nil {
			return err
		}
	}

	if _, err = os.Stat(dir); os.IsNotExist(err) {
		internal.Log.Infof("Install directory %s does not exist", dir)
		return nil
	} else if err != nil {
		return err
	}

	confirmed := false
	if opts.Confirm != nil {
		confirmed = *opts.Confirm
	} else {
		confirmed, err = p.Prompt.Confirm("Delete "+dir+" and its systemd units?", false)
		if err != nil {
			return err
		}
	}
	if !confirmed {
		internal.Log.Infof("Leaving %s in place", dir)
		return nil
	}

	// Best-effort display of whose install is going away.
	if creds, credErr := LoadCredentials(path.Join(dir, credentialsFile)); credErr == nil {
		internal.Log.Infof("Removing check-in install for user %s", creds.Username)
	}

	installer := UnitInstaller{Dir: p.unitDir(), Runner: p.Runner}
	installer.Teardown(unitSet(dir, "", false, false))

	if err = internal.EnsureDirAbsent(p.Runner, dir); err != nil {
		return err
	}

	internal.Log.Noticef("Removed %s", dir)
	return nil
}
