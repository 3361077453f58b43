package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	color.NoColor = true
	var out bytes.Buffer
	return &Prompter{In: strings.NewReader(input), Out: &out}, &out
}

func TestString(t *testing.T) {
	type args struct {
		input string
		label string
		def   string
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantOut string
	}{
		{
			name:    "Empty input resolves to default",
			args:    args{input: "\n", label: "Install directory", def: "/opt/mjjbox-checkin"},
			want:    "/opt/mjjbox-checkin",
			wantOut: "Install directory [/opt/mjjbox-checkin]: ",
		},
		{
			name: "Input overrides default",
			args: args{input: "/srv/checkin\n", label: "Install directory", def: "/opt/mjjbox-checkin"},
			want: "/srv/checkin",
		},
		{
			name:    "No default",
			args:    args{input: "alice\n", label: "Username", def: ""},
			want:    "alice",
			wantOut: "Username: ",
		},
		{
			name: "Whitespace is trimmed",
			args: args{input: "  alice  \n", label: "Username", def: ""},
			want: "alice",
		}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompter(tt.args.input)
			got, err := p.String(tt.args.label, tt.args.def)
			if err != nil {
				t.Errorf("String() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("String() got = %v, want %v", got, tt.want)
			}
			if tt.wantOut != "" && out.String() != tt.wantOut {
				t.Errorf("String() out = %q, want %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	type args struct {
		input string
		def   bool
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "Empty input honors affirmative default",
			args: args{input: "\n", def: true},
			want: true,
		},
		{
			name: "Empty input honors negative default",
			args: args{input: "\n", def: false},
			want: false,
		},
		{
			name: "Explicit no",
			args: args{input: "n\n", def: true},
			want: false,
		},
		{
			name: "Explicit yes",
			args: args{input: "yes\n", def: false},
			want: true,
		},
		{
			name: "Unrecognized input falls back to default",
			args: args{input: "maybe\n", def: true},
			want: true,
		}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(tt.args.input)
			got, err := p.Confirm("Enable daily check-in timer?", tt.args.def)
			if err != nil {
				t.Errorf("Confirm() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("Confirm() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPasswordFallbackReader(t *testing.T) {
	p, out := newTestPrompter("secret\n")

	got, err := p.Password("Password")
	if err != nil {
		t.Fatalf("Password() error = %v", err)
	}
	if got != "secret" {
		t.Errorf("Password() got = %v, want secret", got)
	}
	if !strings.Contains(out.String(), "Password: ") {
		t.Errorf("Password() out = %q", out.String())
	}
}

func TestPasswordAfterBufferedPrompt(t *testing.T) {
	// Both answers arrive through the same reader; the earlier prompt's
	// buffering must not swallow the password line.
	p, _ := newTestPrompter("alice\nsecret\n")

	username, err := p.String("Username", "")
	if err != nil {
		t.Fatalf("String() error = %v", err)
	}
	if username != "alice" {
		t.Errorf("String() got = %v, want alice", username)
	}

	password, err := p.Password("Password")
	if err != nil {
		t.Fatalf("Password() error = %v", err)
	}
	if password != "secret" {
		t.Errorf("Password() got = %v, want secret", password)
	}
}

func TestMenu(t *testing.T) {
	type args struct {
		input string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "Install choice",
			args: args{input: "1\n"},
			want: "1",
		},
		{
			name: "Malformed input is returned as is",
			args: args{input: "install\n"},
			want: "install",
		},
		{
			name: "Empty input",
			args: args{input: "\n"},
			want: "",
		}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompter(tt.args.input)
			got, err := p.Menu("mjjbox check-in bot setup", []string{"Install", "Uninstall", "Exit"})
			if err != nil {
				t.Errorf("Menu() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("Menu() got = %v, want %v", got, tt.want)
			}
			if !strings.Contains(out.String(), "1) Install") || !strings.Contains(out.String(), "2) Uninstall") {
				t.Errorf("Menu() out = %q", out.String())
			}
		})
	}
}
