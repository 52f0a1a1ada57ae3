package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rusq/gptok/auth"
)

// Manager is the account manager.  Each authenticated account owns one
// credential container file in the cache directory, and at most one
// account is "current".
type Manager struct {
	dir          string
	authOptions  []auth.Option
	machineIDOvr string
	noEncryption bool
}

const (
	accExt         = ".bin"
	defCredsFile   = "provider" + accExt // default creds file
	defName        = "default"           // name that will be shown for "provider.bin"
	currentAccFile = "account.txt"
)

var (
	ErrNoAccounts   = errors.New("no saved accounts")
	ErrNameRequired = errors.New("account name is required")
	ErrNoDefault    = errors.New("default account not set")
)

type Option func(m *Manager)

// WithAuthOpts allows to set the authentication options that are passed
// to the provider on login.
func WithAuthOpts(opts ...auth.Option) Option {
	return func(m *Manager) {
		m.authOptions = opts
	}
}

// WithMachineID overrides the machine ID that encrypts the credential
// containers.
func WithMachineID(id string) Option {
	return func(m *Manager) {
		m.machineIDOvr = id
	}
}

// WithNoEncryption turns off the credential container encryption.  The
// saved credentials become portable between machines, and readable by
// anyone with access to the cache directory.
func WithNoEncryption(b bool) Option {
	return func(m *Manager) {
		m.noEncryption = b
	}
}

// NewManager creates a new account manager over the directory dir.  The
// cache directory is created with rwx------ permissions, if it does not
// exist.
func NewManager(dir string, opts ...Option) (*Manager, error) {
	m := &Manager{dir: dir}
	for _, opt := range opts {
		opt(m)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return m, nil
}

// Auth authenticates the account "name" and saves credentials to the
// relevant container file.  See [authenticator.initProvider] for the
// detailed description of the logic.
func (m *Manager) Auth(ctx context.Context, name string, c Credentials) (auth.Provider, error) {
	a := newAuthenticator(m.dir, m.createOpener())
	return a.initProvider(ctx, m.filename(name), c, m.authOptions...)
}

// LoadProvider loads the saved credentials for the account without
// testing them against the live service.
func (m *Manager) LoadProvider(name string) (auth.Provider, error) {
	return loadCreds(m.createOpener(), m.filepath(name))
}

// SaveProvider saves the provider credentials for the account.
func (m *Manager) SaveProvider(name string, p auth.Provider) error {
	return saveCreds(m.createOpener(), m.filepath(name), p)
}

type ErrAccount struct {
	Account string
	Message string
	Err     error
}

func (ea *ErrAccount) Error() string {
	if ea.Err == nil {
		return fmt.Sprintf("account %q: %s", ea.Account, ea.Message)
	}
	return fmt.Sprintf("account %q: %s (error: %s)", ea.Account, ea.Message, ea.Err)
}

func (ea *ErrAccount) Unwrap() error {
	return ea.Err
}

func newErrNoAccount(name string) *ErrAccount {
	return &ErrAccount{Account: name, Message: "no such account"}
}

// Delete deletes the account file.
func (m *Manager) Delete(name string) error {
	if !m.Exists(name) {
		return newErrNoAccount(name)
	}
	if err := os.Remove(m.filepath(name)); err != nil {
		return &ErrAccount{Account: name, Message: "failed to delete", Err: err}
	}
	return nil
}

// RemoveAll removes the cache directory along with all the saved accounts,
// the current account pointer and all the cached data.
func (m *Manager) RemoveAll() error {
	return os.RemoveAll(m.dir)
}

// List returns the list of saved account names.
func (m *Manager) List() ([]string, error) {
	files, err := m.listFiles()
	if err != nil {
		return nil, err
	}
	var accounts = make([]string, len(files))
	for i := range files {
		name, err := m.name(files[i])
		if err != nil {
			return nil, fmt.Errorf("internal error: %s", err)
		}
		accounts[i] = name
	}
	return accounts, nil
}

// listFiles returns the list of account files with full path.
func (m *Manager) listFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(m.dir, "*"+accExt))
	if err != nil {
		return nil, fmt.Errorf("error listing existing accounts: %w", err)
	}
	if len(files) == 0 {
		return nil, ErrNoAccounts
	}
	sort.Strings(files)
	return files, nil
}

// Current returns the current account name.
func (m *Manager) Current() (string, error) {
	accounts, err := m.List()
	if err != nil {
		return "", err
	}

	f, err := os.Open(filepath.Join(m.dir, currentAccFile))
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		return m.selectDefault()
	}
	defer f.Close()
	name := m.readCurrent(f)

	if !exist(accounts, name) {
		return m.selectDefault()
	}

	return name, nil
}

func (m *Manager) selectDefault() (string, error) {
	if !m.Exists(defName) {
		return "", ErrNoDefault
	}
	if err := m.Select(defName); err != nil {
		return "", err
	}
	return defName, nil
}

// Select selects the existing account with "name".
func (m *Manager) Select(name string) error {
	if !m.Exists(name) {
		return newErrNoAccount(name)
	}

	f, err := os.Create(filepath.Join(m.dir, currentAccFile))
	if err != nil {
		return &ErrAccount{Account: name, Message: "failed to create the current account file", Err: err}
	}
	defer f.Close()
	return m.writeCurrent(f, name)
}

// FileInfo returns the container file information for the account.
func (m *Manager) FileInfo(name string) (fs.FileInfo, error) {
	fi, err := os.Stat(m.filepath(name))
	if err != nil {
		return nil, &ErrAccount{Account: name, Message: "error accessing the account file", Err: err}
	}
	return fi, nil
}

// Exists returns true if the account with name "name" exists in the list
// of authenticated accounts.
func (m *Manager) Exists(name string) bool {
	return m.ExistsErr(name) == nil
}

// ExistsErr returns nil if the account exists, ErrNoAccounts if no
// accounts are saved at all, and ErrAccount if this one is missing.
func (m *Manager) ExistsErr(name string) error {
	existing, err := m.List()
	if err != nil {
		return err
	}
	if !exist(existing, name) {
		return newErrNoAccount(name)
	}
	return nil
}

// CreateAndSelect tests the provider credentials against the live service,
// derives the account name from the session user email, saves the
// credentials and selects the account as current.  It returns the account
// name.
func (m *Manager) CreateAndSelect(ctx context.Context, p auth.Provider) (string, error) {
	si, err := p.Test(ctx)
	if err != nil {
		return "", err
	}
	name := accNameFromEmail(si.User.Email)
	if err := m.SaveProvider(name, p); err != nil {
		return name, err
	}
	if err := m.Select(name); err != nil {
		return name, err
	}
	return name, nil
}

// accNameFromEmail derives the account name from the user email.  An empty
// email maps to the default account.
func accNameFromEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return defName
	}
	return email
}

// createOpener returns the container that the manager uses for the
// account files.
func (m *Manager) createOpener() container {
	if m.noEncryption {
		return plainFile{}
	}
	return encryptedFile{machineID: m.machineIDOvr}
}

// filename returns the filename for the account name.
func (m *Manager) filename(name string) string {
	if name == defName || name == "" {
		name = defCredsFile
	} else {
		name = name + accExt
	}
	return name
}

// filepath returns the full path to the filename of account name.
func (m *Manager) filepath(name string) string {
	return filepath.Join(m.dir, m.filename(name))
}

func (m *Manager) name(filename string) (string, error) {
	if filedir := filepath.Dir(filename); !strings.EqualFold(filedir, m.dir) {
		return "", fmt.Errorf("incorrect directory: %s", filedir)
	}
	if filepath.Ext(filename) != accExt {
		return "", fmt.Errorf("invalid account extension: %s", filepath.Ext(filename))
	}
	return accName(filename), nil
}

func (m *Manager) readCurrent(r io.Reader) string {
	var current string
	if _, err := fmt.Fscanln(r, &current); err != nil {
		return defCredsFile
	}
	return strings.TrimSpace(current)
}

func (*Manager) writeCurrent(w io.Writer, name string) error {
	_, err := fmt.Fprintln(w, name)
	return err
}

// accName returns the account name for the file.
func accName(filename string) string {
	name := filepath.Base(filename)
	if name == defCredsFile {
		name = defName
	} else {
		ext := filepath.Ext(name)
		name = name[:len(name)-len(ext)]
	}
	return name
}

func indexOf[T comparable](ss []T, s T) int {
	for i := range ss {
		if s == ss[i] {
			return i
		}
	}
	return -1
}

func exist[T comparable](ss []T, s T) bool {
	return -1 < indexOf(ss, s)
}
