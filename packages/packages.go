package packages

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	marecmd "github.com/femnad/mare/cmd"

	"github.com/mjjbox/checkin-setup/internal"
)

// PkgManager maps a system package manager to the fixed dependency set the
// check-in bot needs: a Python interpreter, the venv tooling, pip and curl.
type PkgManager interface {
	Deps() []string
	InstallCmd(pkgs []string) string
	PkgExec() string
}

// PkgLister is implemented by managers whose installed-package listing follows
// the `<exec> list --installed` scheme, letting the installer skip packages
// which are already present.
type PkgLister interface {
	ListPkgsHeader() string
	PkgNameSeparator() string
}

var managers = []PkgManager{Apt{}, Dnf{}, Yum{}, Pacman{}, Apk{}, Zypper{}}

// Detect probes the supported package managers in priority order and returns
// the first whose executable resolves on PATH. No side effects.
func Detect() (PkgManager, bool) {
	for _, manager := range managers {
		if _, err := internal.Which(manager.PkgExec()); err == nil {
			return manager, true
		}
	}

	return nil, false
}

type Installer struct {
	Pkg    PkgManager
	Runner internal.Runner
}

func setToSlice[T comparable](set mapset.Set[T]) []T {
	var items []T
	set.Each(func(t T) bool {
		items = append(items, t)
		return false
	})

	return items
}

func (i Installer) installedPackages(lister PkgLister) (mapset.Set[string], error) {
	listCmd := fmt.Sprintf("%s list --installed", i.Pkg.PkgExec())
	out, err := internal.RunFmtErr(i.Runner, marecmd.Input{Command: listCmd})
	if err != nil {
		return nil, err
	}

	installedPackages := mapset.NewSet[string]()
	for _, line := range strings.Split(out.Stdout, "\n") {
		if line == "" || line == lister.ListPkgsHeader() {
			continue
		}

		fields := strings.Split(line, " ")
		pkgFields := strings.Split(fields[0], lister.PkgNameSeparator())
		installedPackages.Add(pkgFields[0])
	}

	return installedPackages, nil
}

func (i Installer) missingDeps() ([]string, error) {
	desired := mapset.NewSet[string](i.Pkg.Deps()...)

	lister, ok := i.Pkg.(PkgLister)
	if !ok {
		missing := i.Pkg.Deps()
		sort.Strings(missing)
		return missing, nil
	}

	available, err := i.installedPackages(lister)
	if err != nil {
		return nil, err
	}

	missing := setToSlice(desired.Difference(available))
	sort.Strings(missing)
	return missing, nil
}

// InstallDeps installs the manager's dependency set through its
// non-interactive install command, escalating privileges when needed. A
// non-zero exit surfaces as an error for the caller to act on.
func (i Installer) InstallDeps() error {
	missing, err := i.missingDeps()
	if err != nil {
		return err
	}

	if len(missing) == 0 {
		internal.Log.Debugf("No missing packages for %s", i.Pkg.PkgExec())
		return nil
	}

	internal.Log.Infof("Packages to install: %s", strings.Join(missing, " "))
	return internal.MaybeRunWithSudo(i.Runner, i.Pkg.InstallCmd(missing))
}
