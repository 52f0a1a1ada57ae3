package auth

import (
	"testing"
	"testing/fstest"
)

func Test_parseDotEnv(t *testing.T) {
	mkfs := func(contents string) fstest.MapFS {
		return fstest.MapFS{
			"secrets.txt": &fstest.MapFile{Data: []byte(contents)},
		}
	}
	type args struct {
		fsys     fstest.MapFS
		filename string
	}
	tests := []struct {
		name        string
		args        args
		wantToken   string
		wantSession string
		wantErr     bool
	}{
		{
			"no file",
			args{mkfs(""), "no_such_file"},
			"", "", true,
		},
		{
			"no keys",
			args{mkfs("FOO=bar\n"), "secrets.txt"},
			"", "", true,
		},
		{
			"access token",
			args{mkfs("OPENAI_ACCESS_TOKEN=eyJhbGciOiJSUzI1NiJ9.e30.x\n"), "secrets.txt"},
			"eyJhbGciOiJSUzI1NiJ9.e30.x", "", false,
		},
		{
			"access token not a jwt",
			args{mkfs("OPENAI_ACCESS_TOKEN=sk-proj-blah\n"), "secrets.txt"},
			"", "", true,
		},
		{
			"session token only",
			args{mkfs("OPENAI_SESSION_TOKEN=blahblah\n"), "secrets.txt"},
			"", "blahblah", false,
		},
		{
			"both",
			args{mkfs("OPENAI_ACCESS_TOKEN=eyJhbGciOiJSUzI1NiJ9.e30.x\nOPENAI_SESSION_TOKEN=sess\n"), "secrets.txt"},
			"eyJhbGciOiJSUzI1NiJ9.e30.x", "sess", false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotToken, gotSession, err := parseDotEnv(tt.args.fsys, tt.args.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseDotEnv() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if gotToken != tt.wantToken {
				t.Errorf("parseDotEnv() token = %v, want %v", gotToken, tt.wantToken)
			}
			if gotSession != tt.wantSession {
				t.Errorf("parseDotEnv() session = %v, want %v", gotSession, tt.wantSession)
			}
		})
	}
}

func Test_isJWTLike(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want bool
	}{
		{"jwt", "eyJhbGciOiJSUzI1NiJ9.e30.x", true},
		{"no prefix", "abc.def.ghi", false},
		{"one dot", "eyJhbGciOiJSUzI1NiJ9.e30", false},
		{"whitespace", "eyJhbGciOiJSUzI1NiJ9.e 30.x", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isJWTLike(tt.s); got != tt.want {
				t.Errorf("isJWTLike() = %v, want %v", got, tt.want)
			}
		})
	}
}
