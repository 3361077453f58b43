package packages

import (
	"fmt"
	"strings"
)

type Zypper struct {
}

func (Zypper) Deps() []string {
	return []string{"python3", "python3-pip", "curl"}
}

func (Zypper) InstallCmd(pkgs []string) string {
	return fmt.Sprintf("zypper install -y %s", strings.Join(pkgs, " "))
}

func (Zypper) PkgExec() string {
	return "zypper"
}
