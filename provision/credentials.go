package provision

import (
	"fmt"
	"os"
	"os/user"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/mjjbox/checkin-setup/entity"
	"github.com/mjjbox/checkin-setup/internal"
)

const credentialsFile = "credentials.conf"

// renderCredentials produces the key=value file the check-in script reads.
// The base line stays commented out unless a custom base URL was supplied.
func renderCredentials(creds entity.Credentials) string {
	var b strings.Builder

	fmt.Fprintf(&b, "username=%s\n", creds.Username)
	fmt.Fprintf(&b, "password=%s\n", creds.Password)
	fmt.Fprintf(&b, "serverchan=%s\n", creds.ServerChan)
	if creds.Base == "" {
		fmt.Fprintf(&b, "#base=%s\n", entity.DefaultBase)
	} else {
		fmt.Fprintf(&b, "base=%s\n", creds.Base)
	}

	return b.String()
}

// writeCredentials persists the record in plaintext, restricted to the owner
// the moment it is created. Plaintext storage is a deliberate functional
// choice, the script has to read the password back.
func writeCredentials(r internal.Runner, creds entity.Credentials, path string, owner *user.User) error {
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("error opening credentials file %s: %v", path, err)
	}

	_, err = fd.WriteString(renderCredentials(creds))
	if closeErr := fd.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("error writing credentials file %s: %v", path, err)
	}

	if err = os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("error restricting credentials file %s: %v", path, err)
	}

	return internal.Chown(r, path, owner)
}

// verifyCredentials reads the freshly written file back and checks it matches
// the collected record, so a write that silently lost a value fails the
// install instead of the next scheduled check-in.
func verifyCredentials(creds entity.Credentials, path string) error {
	loaded, err := LoadCredentials(path)
	if err != nil {
		return err
	}

	if loaded != creds {
		return fmt.Errorf("credentials at %s did not read back as written", path)
	}

	return nil
}

// LoadCredentials reads a credentials file back, for post-write verification
// and for showing what an uninstall is about to delete.
func LoadCredentials(path string) (entity.Credentials, error) {
	var creds entity.Credentials

	cfg, err := ini.Load(path)
	if err != nil {
		return creds, fmt.Errorf("error loading credentials file %s: %v", path, err)
	}

	section := cfg.Section("")
	creds.Username = section.Key("username").String()
	creds.Password = section.Key("password").String()
	creds.ServerChan = section.Key("serverchan").String()
	creds.Base = section.Key("base").String()

	return creds, nil
}
