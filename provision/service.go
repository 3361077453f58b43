package provision

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"strings"
	"text/template"

	marecmd "github.com/femnad/mare/cmd"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mjjbox/checkin-setup/entity"
	"github.com/mjjbox/checkin-setup/internal"
)

const (
	// SystemdUnitDir is where the units are installed on a real host.
	SystemdUnitDir = "/etc/systemd/system"

	checkinService = "mjjbox-checkin"
	bootService    = "mjjbox-checkin-boot"

	checkinCalendar = "*-*-* 03:00:00"
	// Bounds the deployed check-in run, not the installer's own steps.
	checkinTimeout = "300"

	tmpDir = "/tmp"
)

var (
	actions = map[string]string{
		"enable": "is-enabled",
		"start":  "is-active",
	}
	gerunds = map[string]string{
		"enable": "enabling",
		"start":  "starting",
	}
)

const svcTmpl = `[Unit]
Description={{ .Unit.Desc }}
{{- if .Unit.After }}
After={{ .Unit.After }}
{{- end }}

[Service]
Type={{ .Unit.Type }}
{{- if .Unit.User }}
User={{ .Unit.User }}
{{- end }}
ExecStart={{ .Unit.Exec }}
{{- range $key, $value := .Unit.Options }}
{{ $key }}={{ $value }}
{{- end }}
{{- if .Unit.WantedBy }}

[Install]
WantedBy={{ .Unit.WantedBy }}
{{- end }}
`

const timerTmpl = `[Unit]
Description={{ .Timer.Desc }}

[Timer]
OnCalendar={{ .Timer.Calendar }}
{{- if .Timer.Persistent }}
Persistent=true
{{- end }}

[Install]
WantedBy=timers.target
`

// unitSet builds the three units of an install: the daily check-in service,
// the calendar timer bound to it and the boot-time service. The timer and
// boot service are only enabled when the operator said so; the boot service
// start doubles as a run-once-now smoke test, so its failure is advisory.
func unitSet(dir, owner string, enableTimer, enableBoot bool) []entity.Service {
	exec := fmt.Sprintf("%s %s --cred %s",
		path.Join(dir, venvSubdir, "bin", "python3"),
		path.Join(dir, payloadFile),
		path.Join(dir, credentialsFile))

	return []entity.Service{
		{
			Name: checkinService,
			Unit: &entity.Unit{
				Desc:    "mjjbox daily check-in",
				Exec:    exec,
				Options: map[string]string{"TimeoutStartSec": checkinTimeout},
				Type:    "oneshot",
				User:    owner,
			},
		},
		{
			Name:   checkinService,
			Enable: enableTimer,
			Start:  enableTimer,
			Timer: &entity.Timer{
				Calendar:   checkinCalendar,
				Desc:       "Daily mjjbox check-in timer",
				Persistent: true,
			},
		},
		{
			Name:          bootService,
			AdvisoryStart: true,
			Enable:        enableBoot,
			Start:         enableBoot,
			Unit: &entity.Unit{
				After:    "network-online.target",
				Desc:     "mjjbox check-in at boot",
				Exec:     exec,
				Options:  map[string]string{"TimeoutStartSec": checkinTimeout},
				Type:     "oneshot",
				User:     owner,
				WantedBy: "multi-user.target",
			},
		},
	}
}

func writeTmpl(s entity.Service) (string, error) {
	name, text := "service", svcTmpl
	if s.Timer != nil {
		name, text = "timer", timerTmpl
	}

	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("error creating %s template: %v", name, err)
	}

	var b strings.Builder
	err = tmpl.Execute(&b, s)
	if err != nil {
		return "", fmt.Errorf("error applying %s template for %s: %v", name, s.Name, err)
	}

	return b.String(), nil
}

func contentSum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

type UnitInstaller struct {
	Dir    string
	Runner internal.Runner
}

func (u UnitInstaller) write(file, content string) error {
	err := os.WriteFile(file, []byte(content), 0o644)
	if err == nil || !os.IsPermission(err) {
		return err
	}

	tmp, err := os.CreateTemp(tmpDir, "checkin-setup-unit")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return internal.MaybeRunWithSudo(u.Runner, fmt.Sprintf("install -m 644 %s %s", tmp.Name(), file))
}

// persist renders the unit and writes it under the unit directory, skipping
// the write when an identical file is already installed. Reports whether the
// file changed.
func (u UnitInstaller) persist(s entity.Service) (bool, error) {
	content, err := writeTmpl(s)
	if err != nil {
		return false, err
	}

	file := path.Join(u.Dir, s.FileName())
	prev, err := os.ReadFile(file)
	if err == nil && contentSum(string(prev)) == contentSum(content) {
		return false, nil
	}

	internal.Log.Infof("Writing unit file %s", file)
	if err = u.write(file, content); err != nil {
		return false, fmt.Errorf("error writing unit file %s: %v", file, err)
	}

	return true, nil
}

func (u UnitInstaller) daemonReload() error {
	internal.Log.Infof("Reloading systemd unit files")
	return internal.MaybeRunWithSudo(u.Runner, "systemctl daemon-reload")
}

func (u UnitInstaller) ensure(s entity.Service, action string) error {
	checkVerb, ok := actions[action]
	if !ok {
		return fmt.Errorf("unknown action: %s", action)
	}

	unit := s.FileName()
	out, _ := u.Runner.Run(marecmd.Input{Command: fmt.Sprintf("systemctl %s %s", checkVerb, unit)})
	if out.Code == 0 {
		return nil
	}

	caser := cases.Title(language.Und)
	internal.Log.Infof("%s unit %s", caser.String(gerunds[action]), unit)
	return internal.MaybeRunWithSudo(u.Runner, fmt.Sprintf("systemctl %s %s", action, unit))
}

// Apply installs the unit set: write changed files, reload once, then enable
// and start per the unit's flags.
func (u UnitInstaller) Apply(services []entity.Service) error {
	var changed bool
	for _, s := range services {
		unitChanged, err := u.persist(s)
		if err != nil {
			return err
		}
		changed = changed || unitChanged
	}

	if changed {
		if err := u.daemonReload(); err != nil {
			return err
		}
	}

	for _, s := range services {
		if s.Enable {
			if err := u.ensure(s, "enable"); err != nil {
				return fmt.Errorf("error enabling unit %s: %v", s.FileName(), err)
			}
		}

		if !s.Start {
			continue
		}
		if err := u.ensure(s, "start"); err != nil {
			if !s.AdvisoryStart {
				return fmt.Errorf("error starting unit %s: %v", s.FileName(), err)
			}
			internal.Log.Warningf("Unable to start unit %s, it will run at next boot: %v", s.FileName(), err)
		}
	}

	return nil
}

// Teardown disables registered units, removes their files and reloads the
// daemon. Every step is best-effort so the uninstall always reaches directory
// removal.
func (u UnitInstaller) Teardown(services []entity.Service) {
	for _, s := range services {
		unit := s.FileName()
		out, _ := u.Runner.Run(marecmd.Input{Command: fmt.Sprintf("systemctl is-enabled %s", unit)})
		if out.Code != 0 {
			continue
		}

		internal.Log.Infof("Disabling unit %s", unit)
		if err := internal.MaybeRunWithSudo(u.Runner, fmt.Sprintf("systemctl disable --now %s", unit)); err != nil {
			internal.Log.Infof("Unable to disable unit %s: %v", unit, err)
		}
	}

	for _, s := range services {
		file := path.Join(u.Dir, s.FileName())
		err := os.Remove(file)
		if os.IsNotExist(err) {
			continue
		} else if err != nil && os.IsPermission(err) {
			err = internal.MaybeRunWithSudo(u.Runner, fmt.Sprintf("rm -f %s", file))
		}
		if err != nil {
			internal.Log.Infof("Unable to remove unit file %s: %v", file, err)
		}
	}

	if err := u.daemonReload(); err != nil {
		internal.Log.Infof("Unable to reload unit files: %v", err)
	}
}
