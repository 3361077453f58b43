package packages

import (
	"fmt"
	"strings"
)

type Apt struct {
}

func (Apt) Deps() []string {
	return []string{"python3", "python3-venv", "python3-pip", "curl"}
}

func (Apt) InstallCmd(pkgs []string) string {
	return fmt.Sprintf("apt-get install -y %s", strings.Join(pkgs, " "))
}

func (Apt) ListPkgsHeader() string {
	return "Listing..."
}

func (Apt) PkgExec() string {
	return "apt"
}

func (Apt) PkgNameSeparator() string {
	return "/"
}
