package packages

import (
	"fmt"
	"strings"
)

type Dnf struct {
}

func (Dnf) Deps() []string {
	return []string{"python3", "python3-pip", "curl"}
}

func (Dnf) InstallCmd(pkgs []string) string {
	return fmt.Sprintf("dnf install -y %s", strings.Join(pkgs, " "))
}

func (Dnf) ListPkgsHeader() string {
	return "Installed Packages"
}

func (Dnf) PkgExec() string {
	return "dnf"
}

func (Dnf) PkgNameSeparator() string {
	return "."
}
