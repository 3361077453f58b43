package packages

import (
	"fmt"
	"strings"
)

type Yum struct {
}

func (Yum) Deps() []string {
	return []string{"python3", "python3-pip", "curl"}
}

func (Yum) InstallCmd(pkgs []string) string {
	return fmt.Sprintf("yum install -y %s", strings.Join(pkgs, " "))
}

func (Yum) ListPkgsHeader() string {
	return "Installed Packages"
}

func (Yum) PkgExec() string {
	return "yum"
}

func (Yum) PkgNameSeparator() string {
	return "."
}
