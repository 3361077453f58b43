package internal

import (
	"os"
	"path"
	"testing"
)

func TestWhich(t *testing.T) {
	bin := t.TempDir()
	executable := path.Join(bin, "python3")
	if err := os.WriteFile(executable, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("error writing fake executable: %v", err)
	}
	if err := os.WriteFile(path.Join(bin, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("error writing plain file: %v", err)
	}
	t.Setenv("PATH", bin)

	type args struct {
		exec string
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr bool
	}{
		{
			name: "Executable on PATH",
			args: args{exec: "python3"},
			want: executable,
		},
		{
			name: "Absolute path",
			args: args{exec: executable},
			want: executable,
		},
		{
			name:    "Plain file is not executable",
			args:    args{exec: "notes.txt"},
			wantErr: true,
		},
		{
			name:    "Missing executable",
			args:    args{exec: "no-such-tool"},
			wantErr: true,
		}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Which(tt.args.exec)
			if (err != nil) != tt.wantErr {
				t.Errorf("Which() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Which() got = %v, want %v", got, tt.want)
			}
		})
	}
}
