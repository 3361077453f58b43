package provision

import (
	"os"
	"os/user"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjjbox/checkin-setup/entity"
)

func Test_renderCredentials(t *testing.T) {
	type args struct {
		creds entity.Credentials
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "Default base stays commented",
			args: args{creds: entity.Credentials{Username: "alice", Password: "secret"}},
			want: "username=alice\npassword=secret\nserverchan=\n#base=https://mjjbox.com\n",
		},
		{
			name: "Custom base",
			args: args{creds: entity.Credentials{Username: "alice", Password: "secret", Base: "https://mirror.example.com"}},
			want: "username=alice\npassword=secret\nserverchan=\nbase=https://mirror.example.com\n",
		},
		{
			name: "ServerChan key",
			args: args{creds: entity.Credentials{Username: "bob", Password: "pw", ServerChan: "SCT123"}},
			want: "username=bob\npassword=pw\nserverchan=SCT123\n#base=https://mjjbox.com\n",
		}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderCredentials(tt.args.creds); got != tt.want {
				t.Errorf("renderCredentials() got = \n`%s`, want \n`%s`", got, tt.want)
			}
		})
	}
}

func TestWriteAndLoadCredentials(t *testing.T) {
	owner, err := user.Current()
	require.NoError(t, err)

	credPath := path.Join(t.TempDir(), credentialsFile)
	creds := entity.Credentials{Username: "alice", Password: "secret", ServerChan: "SCT123"}
	require.NoError(t, writeCredentials(&fakeRunner{}, creds, credPath, owner))

	info, err := os.Stat(credPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadCredentials(credPath)
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.Username)
	assert.Equal(t, "secret", loaded.Password)
	assert.Equal(t, "SCT123", loaded.ServerChan)
	// The commented-out default base is not a value.
	assert.Equal(t, "", loaded.Base)
}

func Test_verifyCredentials(t *testing.T) {
	owner, err := user.Current()
	require.NoError(t, err)

	credPath := path.Join(t.TempDir(), credentialsFile)
	creds := entity.Credentials{Username: "alice", Password: "secret"}
	require.NoError(t, writeCredentials(&fakeRunner{}, creds, credPath, owner))

	require.NoError(t, verifyCredentials(creds, credPath))

	// A tampered file no longer reads back as written.
	tampered := "username=mallory\npassword=secret\nserverchan=\n#base=https://mjjbox.com\n"
	require.NoError(t, os.WriteFile(credPath, []byte(tampered), 0o600))
	err = verifyCredentials(creds, credPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not read back as written")

	require.NoError(t, os.Remove(credPath))
	assert.Error(t, verifyCredentials(creds, credPath))
}

func TestWriteCredentialsStepVerifies(t *testing.T) {
	owner, err := user.Current()
	require.NoError(t, err)

	dir := t.TempDir()
	p := Provisioner{
		Opts: entity.InstallOptions{
			Dir:      dir,
			Username: "alice",
			Password: "secret",
			Notify:   entity.Bool(false),
		},
		Prompt: &scriptedPrompter{},
		Runner: &fakeRunner{},
	}
	p.owner = owner

	require.NoError(t, p.writeCredentials())

	loaded, err := LoadCredentials(path.Join(dir, credentialsFile))
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.Username)
	assert.Equal(t, "secret", loaded.Password)
}

func TestLoadCredentialsCustomBase(t *testing.T) {
	credPath := path.Join(t.TempDir(), credentialsFile)
	content := "username=alice\npassword=secret\nserverchan=\nbase=https://mirror.example.com\n"
	require.NoError(t, os.WriteFile(credPath, []byte(content), 0o600))

	loaded, err := LoadCredentials(credPath)
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.com", loaded.Base)
}
