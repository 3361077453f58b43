package packages

import (
	"fmt"
	"strings"
)

type Apk struct {
}

func (Apk) Deps() []string {
	return []string{"python3", "py3-pip", "py3-virtualenv", "curl"}
}

func (Apk) InstallCmd(pkgs []string) string {
	return fmt.Sprintf("apk add %s", strings.Join(pkgs, " "))
}

func (Apk) PkgExec() string {
	return "apk"
}
