package packages

import (
	"fmt"
	"strings"
)

type Pacman struct {
}

func (Pacman) Deps() []string {
	return []string{"python", "python-pip", "curl"}
}

func (Pacman) InstallCmd(pkgs []string) string {
	return fmt.Sprintf("pacman -S --noconfirm --needed %s", strings.Join(pkgs, " "))
}

func (Pacman) PkgExec() string {
	return "pacman"
}
