package internal

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
)

// EnsureDirExists creates the directory if missing, escalating privileges when
// the native mkdir is not permitted.
func EnsureDirExists(r Runner, dir string) error {
	_, err := os.Stat(dir)
	if err == nil {
		return nil
	}

	if !os.IsNotExist(err) {
		return err
	}

	err = os.MkdirAll(dir, 0o755)
	if err == nil {
		return nil
	} else if !os.IsPermission(err) {
		return err
	}

	return MaybeRunWithSudo(r, fmt.Sprintf("mkdir -p %s", dir))
}

// EnsureDirAbsent removes the directory tree if present, escalating privileges
// when the native removal is not permitted.
func EnsureDirAbsent(r Runner, dir string) error {
	_, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}

	err = os.RemoveAll(dir)
	if err == nil || !os.IsPermission(err) {
		return err
	}

	return MaybeRunWithSudo(r, fmt.Sprintf("rm -rf %s", dir))
}

// Chown gives ownership of path to the given user, no-op when the path is
// already owned by the current user.
func Chown(r Runner, path string, owner *user.User) error {
	currentId, err := GetCurrentUserId()
	if err != nil {
		return err
	}

	ownerId, err := strconv.ParseInt(owner.Uid, 10, 64)
	if err != nil {
		return err
	}

	if ownerId == currentId {
		return nil
	}

	cmd := fmt.Sprintf("chown %s:%s %s", owner.Username, owner.Username, path)
	return MaybeRunWithSudo(r, cmd)
}
