package internal

import (
	"os"
	"os/user"
	"strconv"
)

const rootUid = 0

func GetCurrentUserId() (int64, error) {
	currentUser, err := user.Current()
	if err != nil {
		return 0, err
	}

	return strconv.ParseInt(currentUser.Uid, 10, 64)
}

func IsUserRoot() (bool, error) {
	userId, err := GetCurrentUserId()
	if err != nil {
		return false, err
	}

	return userId == rootUid, nil
}

// LoginUser returns the user who initiated the session: under sudo that is the
// original login user from SUDO_USER, otherwise the current user. Installed
// artifacts are owned by this user.
func LoginUser() (*user.User, error) {
	isRoot, err := IsUserRoot()
	if err != nil {
		return nil, err
	}

	sudoUser := os.Getenv("SUDO_USER")
	if isRoot && sudoUser != "" && sudoUser != "root" {
		return user.Lookup(sudoUser)
	}

	return user.Current()
}
