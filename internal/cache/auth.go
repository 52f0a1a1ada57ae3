package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/trace"

	"github.com/rusq/encio"

	"github.com/rusq/gptok/auth"
)

const ezLogin = "EZ-Login 3000"

//go:generate mockgen -source=auth.go -destination=../mocks/mock_cache/mock_cache.go -package=mock_cache
//go:generate mockgen -destination=../mocks/mock_io/mock_io.go -package=mock_io io ReadCloser,WriteCloser

// isWSL is true if we're running in the WSL environment
var isWSL = os.Getenv("WSL_DISTRO_NAME") != ""

// GPTCreds holds the known credential values.  Cookie is either the raw
// session cookie value, or a path to the cookies.txt file exported from
// the browser.
type GPTCreds struct {
	Token         string
	Cookie        string
	UsePlaywright bool
}

var (
	ErrNotTested   = errors.New("warning, " + ezLogin + " is not tested on this OS, if it doesn't work, use manual login method")
	ErrUnsupported = errors.New(ezLogin + " is not supported on this OS, please use the manual login method")
)

// Type returns the authentication type that should be used for the
// credentials.  If the auth type wasn't tested on the system that gptok is
// being executed on, it will return the valid type and ErrNotTested, so
// that this unfortunate fact could be relayed to the end-user.  If the
// type of the authentication determined is not supported for the current
// system, it will return ErrUnsupported.
func (c GPTCreds) Type(ctx context.Context) (auth.Type, error) {
	if !c.IsEmpty() {
		if isExistingFile(c.Cookie) {
			return auth.TypeCookieFile, nil
		}
		return auth.TypeValue, nil
	}

	if !ezLoginSupported() {
		return auth.TypeInvalid, ErrUnsupported
	}
	if c.UsePlaywright {
		return auth.TypeBrowser, nil
	}
	if !ezLoginTested() {
		return auth.TypeRod, ErrNotTested
	}
	return auth.TypeRod, nil
}

// IsEmpty returns true if both the token and the cookie are empty.  A bare
// token or a bare session cookie is a usable credential.
func (c GPTCreds) IsEmpty() bool {
	return c.Token == "" && c.Cookie == ""
}

// AuthProvider returns the appropriate auth Provider depending on the
// values of the token and cookie.
func (c GPTCreds) AuthProvider(ctx context.Context, opts ...auth.Option) (auth.Provider, error) {
	authType, err := c.Type(ctx)
	if err != nil {
		return nil, err
	}
	switch authType {
	case auth.TypeBrowser:
		return auth.NewBrowserAuth(ctx, opts...)
	case auth.TypeCookieFile:
		return auth.NewCookieFileAuth(c.Token, c.Cookie)
	case auth.TypeValue:
		if c.Token == "" && c.Cookie != "" {
			return auth.NewSessionCookieAuth(ctx, c.Cookie)
		}
		return auth.NewValueAuth(c.Token, c.Cookie)
	case auth.TypeRod:
		return auth.NewRODAuth(ctx, opts...)
	}
	return nil, errors.New("internal error: unsupported auth type")
}

func isExistingFile(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && !fi.IsDir()
}

func ezLoginSupported() bool {
	return runtime.GOARCH != "386" && !isWSL
}

func ezLoginTested() bool {
	switch runtime.GOOS {
	default:
		return false
	case "windows", "linux", "darwin":
		return true
	}
}

// EzLoginFlags is a diagnostic function that returns the map of flags that
// describe the EZ-Login feature.
func EzLoginFlags() map[string]bool {
	return map[string]bool{
		"supported": ezLoginSupported(),
		"tested":    ezLoginTested(),
		"wsl":       isWSL,
	}
}

// Credentials is the interface for the authentication credentials.
type Credentials interface {
	IsEmpty() bool
	AuthProvider(ctx context.Context, opts ...auth.Option) (auth.Provider, error)
}

// authenticator authenticates in the service and saves the credentials in
// the directory.
type authenticator struct {
	dir string
	ct  container
}

func newAuthenticator(dir string, ct container) authenticator {
	return authenticator{
		dir: dir,
		ct:  ct,
	}
}

// initProvider initialises the auth.Provider with the provided
// credentials.
//
// If creds is empty, it attempts to load the stored credentials.  If it
// finds them, and they test valid, it returns an initialised credentials
// provider.  If not, it returns the auth provider according to the type of
// credentials determined by creds.AuthProvider, and saves them to an
// AES-256-CFB encrypted storage.
//
// The storage is encrypted using the hash of the unique machine-ID,
// supplied by the operating system (see package encio), so the stored
// credentials can not be used on another machine (including virtual), or
// another operating system on the same machine, unless it's a clone of the
// source operating system on which the credentials storage was created.
func (a authenticator) initProvider(ctx context.Context, filename string, creds Credentials, opts ...auth.Option) (auth.Provider, error) {
	ctx, task := trace.NewTask(ctx, "initProvider")
	defer task.End()

	credsFile := filename
	if a.dir != "" {
		if err := os.MkdirAll(a.dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create cache directory:  %w", err)
		}
		credsFile = filepath.Join(a.dir, filename)
	}

	// try to load the existing credentials, if saved earlier.
	if creds == nil || creds.IsEmpty() {
		if prov, err := a.tryLoad(ctx, credsFile); err != nil {
			trace.Logf(ctx, "warn", "no saved credentials: %s", err)
		} else {
			trace.Log(ctx, "info", "loaded saved credentials")
			return prov, nil
		}
	}

	// init the authentication provider
	trace.Log(ctx, "info", "getting credentials from the values or the browser")
	provider, err := creds.AuthProvider(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise the auth provider: %w", err)
	}

	if err := saveCreds(a.ct, credsFile, provider); err != nil {
		trace.Logf(ctx, "error", "failed to save credentials to: %s", credsFile)
	}

	return provider, nil
}

// authTester is the function that tests the loaded credentials against the
// live service.
var authTester = auth.Provider.Test

func (a authenticator) tryLoad(ctx context.Context, filename string) (auth.Provider, error) {
	prov, err := loadCreds(a.ct, filename)
	if err != nil {
		return nil, err
	}
	// test the loaded credentials
	if _, err := authTester(prov, ctx); err != nil {
		return nil, err
	}
	return prov, nil
}

// loadCreds loads the encrypted credentials from the file.
func loadCreds(ct container, filename string) (auth.Provider, error) {
	f, err := ct.Open(filename)
	if err != nil {
		return nil, errors.New("failed to load stored credentials")
	}
	defer f.Close()

	return auth.Load(f)
}

// saveCreds encrypts and saves the credentials.
func saveCreds(ct container, filename string, p auth.Provider) error {
	f, err := ct.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return auth.Save(f, p)
}

// AuthReset removes the default cached credentials.
func AuthReset(cacheDir string) error {
	return os.Remove(filepath.Join(cacheDir, defCredsFile))
}

// container is the interface to operate with the credentials container.
type container interface {
	Create(filename string) (io.WriteCloser, error)
	Open(filename string) (io.ReadCloser, error)
}

// encryptedFile is the encrypted file container.
type encryptedFile struct {
	// machineID is the machine ID override.  If empty, the actual machine
	// ID is used.
	machineID string
}

func (f encryptedFile) Open(filename string) (io.ReadCloser, error) {
	var opts []encio.Option
	if f.machineID != "" {
		opts = append(opts, encio.WithID(f.machineID))
	}
	return encio.Open(filename, opts...)
}

func (f encryptedFile) Create(filename string) (io.WriteCloser, error) {
	var opts []encio.Option
	if f.machineID != "" {
		opts = append(opts, encio.WithID(f.machineID))
	}
	return encio.Create(filename, opts...)
}

// plainFile is the unencrypted file container.
type plainFile struct{}

func (plainFile) Open(filename string) (io.ReadCloser, error) {
	return os.Open(filename)
}

func (plainFile) Create(filename string) (io.WriteCloser, error) {
	return os.Create(filename)
}
