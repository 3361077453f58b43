package provision

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjjbox/checkin-setup/entity"
)

func TestUninstallMissingDirectory(t *testing.T) {
	runner := &fakeRunner{}
	p := Provisioner{
		Prompt:  &scriptedPrompter{},
		Runner:  runner,
		UnitDir: t.TempDir(),
	}

	dir := path.Join(t.TempDir(), "never-installed")
	require.NoError(t, p.Uninstall(entity.UninstallOptions{Dir: dir}))
	assert.Empty(t, runner.commands)
}

func TestUninstallConfirmed(t *testing.T) {
	dir := t.TempDir()
	unitDir := t.TempDir()
	for _, unit := range []string{"mjjbox-checkin.service", "mjjbox-checkin.timer", "mjjbox-checkin-boot.service"} {
		require.NoError(t, os.WriteFile(path.Join(unitDir, unit), []byte("[Unit]\n"), 0o644))
	}
	creds := "username=alice\npassword=secret\nserverchan=\n#base=https://mjjbox.com\n"
	require.NoError(t, os.WriteFile(path.Join(dir, "credentials.conf"), []byte(creds), 0o600))

	runner := &fakeRunner{}
	p := Provisioner{
		Prompt:  &scriptedPrompter{confirms: map[string]bool{"Delete " + dir + " and its systemd units?": true}},
		Runner:  runner,
		UnitDir: unitDir,
	}

	require.NoError(t, p.Uninstall(entity.UninstallOptions{Dir: dir}))

	assert.True(t, runner.ran("systemctl disable --now mjjbox-checkin.timer"))
	assert.True(t, runner.ran("systemctl disable --now mjjbox-checkin-boot.service"))
	assert.True(t, runner.ran("systemctl daemon-reload"))

	for _, unit := range []string{"mjjbox-checkin.service", "mjjbox-checkin.timer", "mjjbox-checkin-boot.service"} {
		_, err := os.Stat(path.Join(unitDir, unit))
		assert.True(t, os.IsNotExist(err))
	}

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestUninstallDeclinedByDefault(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{}
	p := Provisioner{
		Prompt:  &scriptedPrompter{},
		Runner:  runner,
		UnitDir: t.TempDir(),
	}

	require.NoError(t, p.Uninstall(entity.UninstallOptions{Dir: dir}))

	assert.Empty(t, runner.commands)
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestUninstallIdempotent(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{}
	p := Provisioner{
		Prompt:  &scriptedPrompter{confirms: map[string]bool{"Delete " + dir + " and its systemd units?": true}},
		Runner:  runner,
		UnitDir: t.TempDir(),
	}

	opts := entity.UninstallOptions{Dir: dir}
	require.NoError(t, p.Uninstall(opts))
	require.NoError(t, p.Uninstall(opts))
}
