package account

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/internal/fixtures"
)

func Test_printBare(t *testing.T) {
	type args struct {
		_        manager
		current  string
		accounts []string
	}
	tests := []struct {
		name    string
		args    args
		wantW   string
		wantErr bool
	}{
		{
			"Test 1",
			args{
				current:  "current",
				accounts: []string{"account1", "account2", "current"},
			},
			"account1\naccount2\n*current\n",
			false,
		},
		{
			"Test 2",
			args{
				current:  "account1",
				accounts: []string{"account1", "account2", "notcurrent"},
			},
			"*account1\naccount2\nnotcurrent\n",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &bytes.Buffer{}
			if err := printBare(w, nil, tt.args.current, tt.args.accounts); (err != nil) != tt.wantErr {
				t.Errorf("printBare() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if gotW := w.String(); gotW != tt.wantW {
				t.Errorf("printBare() = %v, want %v", gotW, tt.wantW)
			}
		})
	}
}

func Test_simpleList(t *testing.T) {
	dir := t.TempDir()
	pth := filepath.Join(dir, "default.bin")
	if err := os.WriteFile(pth, []byte("blah"), 0o600); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(pth)
	if err != nil {
		t.Fatal(err)
	}

	ctrl := gomock.NewController(t)
	m := NewMockmanager(ctrl)
	m.EXPECT().FileInfo("default").Return(fi, nil)
	m.EXPECT().FileInfo("gone").Return(nil, errors.New("no such file"))

	got := simpleList(m, "default", []string{"default", "gone"})
	want := [][]string{
		{"=> default", "default.bin", fi.ModTime().Format(timeLayout)},
		{"   gone", "-", "unknown"},
	}
	assert.Equal(t, want, got)
}

func Test_makeHeader(t *testing.T) {
	got := makeHeader(hdrItem{"C", 1}, hdrItem{"name", 7}, hdrItem{"error", 0})
	want := "C\tname\terror\n-\t-------\t-----"
	assert.Equal(t, want, got)
}

func Test_tokenInfo(t *testing.T) {
	t.Run("user and expiry from claims", func(t *testing.T) {
		prov, err := auth.NewValueAuth(fixtures.ClaimsJWT(t, "me@example.com", time.Now().Add(time.Hour)), "")
		if err != nil {
			t.Fatal(err)
		}
		ctrl := gomock.NewController(t)
		m := NewMockmanager(ctrl)
		m.EXPECT().LoadProvider("default").Return(prov, nil)

		info, err := tokenInfo(m, "default")
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, "me@example.com", info.user)
		assert.NotEqual(t, "unknown", info.expires)
	})
	t.Run("opaque token", func(t *testing.T) {
		prov, err := auth.NewValueAuth("blah.blah.blah", "")
		if err != nil {
			t.Fatal(err)
		}
		ctrl := gomock.NewController(t)
		m := NewMockmanager(ctrl)
		m.EXPECT().LoadProvider("default").Return(prov, nil)

		info, err := tokenInfo(m, "default")
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, "-", info.user)
		assert.Equal(t, "unknown", info.expires)
	})
	t.Run("load fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := NewMockmanager(ctrl)
		m.EXPECT().LoadProvider("default").Return(nil, errors.New("corrupt"))

		_, err := tokenInfo(m, "default")
		assert.Error(t, err)
	})
}
