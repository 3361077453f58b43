package provision

import (
	"fmt"
	"os/user"
	"path"

	"github.com/mjjbox/checkin-setup/entity"
	"github.com/mjjbox/checkin-setup/internal"
	"github.com/mjjbox/checkin-setup/packages"
)

// Prompter is the interactive surface the workflow needs; satisfied by
// prompt.Prompter and by scripted fakes in tests.
type Prompter interface {
	Confirm(label string, def bool) (bool, error)
	Password(label string) (string, error)
	String(label, def string) (string, error)
}

type stepPolicy int

const (
	// policyFatal aborts the install on error.
	policyFatal stepPolicy = iota
	// policyAskContinue reports the error and lets the operator opt into
	// continuing anyway, defaulting to abort.
	policyAskContinue
)

type step struct {
	desc   string
	policy stepPolicy
	run    func() error
}

type Provisioner struct {
	Opts    entity.InstallOptions
	Prompt  Prompter
	Runner  internal.Runner
	UnitDir string

	owner  *user.User
	python string
}

func (p *Provisioner) unitDir() string {
	if p.UnitDir == "" {
		return SystemdUnitDir
	}
	return p.UnitDir
}

// resolveOptions fills non-secret options not already answered by flags or
// the answers file. Credentials are deliberately collected later, after the
// payload is acquired, so a failed acquisition never leaves a credentials
// file behind.
func (p *Provisioner) resolveOptions() error {
	o := &p.Opts
	var err error

	if o.Dir == "" {
		if o.Dir, err = p.Prompt.String("Install directory", entity.DefaultDir); err != nil {
			return err
		}
	}

	if o.AutoDeps == nil {
		autoDeps, err := p.Prompt.Confirm("Install system dependencies automatically?", true)
		if err != nil {
			return err
		}
		o.AutoDeps = &autoDeps
	}

	if !o.Embed && o.URL == "" {
		if o.URL, err = p.Prompt.String("Check-in script URL", entity.DefaultURL); err != nil {
			return err
		}
	}

	if o.Timer == nil {
		timer, err := p.Prompt.Confirm("Enable daily check-in timer?", true)
		if err != nil {
			return err
		}
		o.Timer = &timer
	}

	if o.Boot == nil {
		boot, err := p.Prompt.Confirm("Run check-in at boot?", true)
		if err != nil {
			return err
		}
		o.Boot = &boot
	}

	return nil
}

// preflight checks the environment invariants which nothing later can work
// around: a usable python3 and, for non-root runs, a way to escalate.
func (p *Provisioner) preflight() error {
	python, err := internal.Which("python3")
	if err != nil {
		return fmt.Errorf("python3 interpreter not usable: %v", err)
	}
	p.python = python

	isRoot, err := internal.IsUserRoot()
	if err != nil {
		return err
	}
	if !isRoot {
		if _, err = internal.Which("sudo"); err != nil {
			return fmt.Errorf("not running as root and no privilege escalation tool found: %v", err)
		}
	}

	p.owner, err = internal.LoginUser()
	if err != nil {
		return fmt.Errorf("error determining owning user: %v", err)
	}

	return nil
}

func (p *Provisioner) installDeps() error {
	if p.Opts.AutoDeps != nil && !*p.Opts.AutoDeps {
		internal.Log.Infof("Skipping system dependency installation")
		return nil
	}

	manager, found := packages.Detect()
	if !found {
		return fmt.Errorf("no supported package manager found, dependencies need a manual install")
	}

	internal.Log.Infof("Installing system dependencies with %s", manager.PkgExec())
	installer := packages.Installer{Pkg: manager, Runner: p.Runner}
	return installer.InstallDeps()
}

func (p *Provisioner) acquirePayload() error {
	target := path.Join(p.Opts.Dir, payloadFile)

	if err := acquirer(p.Opts, p.Runner).Acquire(target); err != nil {
		return err
	}

	return internal.Chown(p.Runner, target, p.owner)
}

// collectCredentials resolves the credential fields, prompting for whatever
// the answers file and flags left unset. No format validation, matching what
// the check-in script itself accepts.
func (p *Provisioner) collectCredentials() (entity.Credentials, error) {
	var creds entity.Credentials
	var err error
	o := p.Opts

	creds.Username = o.Username
	if creds.Username == "" {
		if creds.Username, err = p.Prompt.String("Username", ""); err != nil {
			return creds, err
		}
	}

	creds.Password = o.Password
	if creds.Password == "" {
		if creds.Password, err = p.Prompt.Password("Password"); err != nil {
			return creds, err
		}
	}

	notify := true
	if o.Notify != nil {
		notify = *o.Notify
	} else {
		if notify, err = p.Prompt.Confirm("Enable ServerChan notifications?", true); err != nil {
			return creds, err
		}
	}

	if notify {
		creds.ServerChan = o.ServerChan
		if creds.ServerChan == "" {
			if creds.ServerChan, err = p.Prompt.String("ServerChan key", ""); err != nil {
				return creds, err
			}
		}
	}

	creds.Base = o.Base
	return creds, nil
}

func (p *Provisioner) writeCredentials() error {
	creds, err := p.collectCredentials()
	if err != nil {
		return err
	}

	credPath := path.Join(p.Opts.Dir, credentialsFile)
	internal.Log.Infof("Writing credentials to %s", credPath)
	if err = writeCredentials(p.Runner, creds, credPath, p.owner); err != nil {
		return err
	}

	return verifyCredentials(creds, credPath)
}

func (p *Provisioner) installUnits() error {
	units := unitSet(p.Opts.Dir, p.owner.Username, *p.Opts.Timer, *p.Opts.Boot)
	installer := UnitInstaller{Dir: p.unitDir(), Runner: p.Runner}
	return installer.Apply(units)
}

// Install runs the whole workflow as an explicit step table; each step
// carries a policy deciding whether its failure aborts or is offered to the
// operator to skip.
func (p *Provisioner) Install() error {
	if err := p.resolveOptions(); err != nil {
		return err
	}

	if err := p.preflight(); err != nil {
		return err
	}

	steps := []step{
		{desc: "install system dependencies", policy: policyAskContinue, run: p.installDeps},
		{desc: "provision environment", policy: policyFatal, run: func() error {
			return provisionEnv(p.Runner, p.Opts.Dir, p.python, p.owner)
		}},
		{desc: "acquire check-in script", policy: policyFatal, run: p.acquirePayload},
		{desc: "write credentials", policy: policyFatal, run: p.writeCredentials},
		{desc: "install systemd units", policy: policyFatal, run: p.installUnits},
	}

	for _, s := range steps {
		err := s.run()
		if err == nil {
			continue
		}

		if s.policy == policyAskContinue {
			internal.Log.Warningf("Failed to %s: %v", s.desc, err)
			cont, promptErr := p.Prompt.Confirm("Continue anyway?", false)
			if promptErr != nil {
				return promptErr
			}
			if cont {
				continue
			}
		}

		return fmt.Errorf("failed to %s: %v", s.desc, err)
	}

	internal.Log.Noticef("Install complete, daily check-in runs at 03:00 from %s", p.Opts.Dir)
	return nil
}
