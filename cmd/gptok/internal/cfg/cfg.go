// Copyright (c) 2023-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cfg contains common configuration variables.
package cfg

import (
	"flag"
	"log/slog"
	"os"

	"github.com/rusq/osenv/v2"

	"github.com/rusq/gptok/internal/network"
)

var (
	TraceFile   string
	LogFile     string
	JsonHandler bool
	Verbose     bool
	AnswerYes   bool

	ConfigFile    string
	Account       string
	LocalCacheDir string
	MachineIDOvr  string
	NoEncryption  bool

	Token         string
	Cookie        string
	APIURL        string
	LegacyBrowser bool

	Limits = network.DefLimits

	// Log is the main logger, reinitialised by the main runner once the
	// log flags are known.
	Log = slog.Default()
)

type FlagMask int

const (
	DefaultFlags  FlagMask = 0
	OmitAuthFlags FlagMask = 1 << iota
	OmitConfigFlag
	OmitCacheDir
	OmitAccountFlag
	OmitYesFlag

	OmitAll = OmitAuthFlags |
		OmitConfigFlag |
		OmitCacheDir |
		OmitAccountFlag |
		OmitYesFlag
)

// SetBaseFlags sets base flags
func SetBaseFlags(fs *flag.FlagSet, mask FlagMask) {
	fs.StringVar(&TraceFile, "trace", os.Getenv("TRACE_FILE"), "trace `filename`")
	fs.StringVar(&LogFile, "log", os.Getenv("LOG_FILE"), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&JsonHandler, "log-json", osenv.Value("JSON_LOG", false), "log in JSON format")
	fs.BoolVar(&Verbose, "v", osenv.Value("DEBUG", false), "verbose messages")

	if mask&OmitAuthFlags == 0 {
		fs.StringVar(&Token, "token", osenv.Secret("OPENAI_TOKEN", ""), "OpenAI access `token`")
		fs.StringVar(&Cookie, "cookie", osenv.Secret("OPENAI_COOKIE", ""), "session cookie `value` or a path to a cookies.txt file\n(environment: OPENAI_COOKIE)")
		fs.StringVar(&APIURL, "api-url", osenv.Value("OPENAI_API_URL", ""), "backend API `url` override, for use with proxy endpoints")
		fs.BoolVar(&LegacyBrowser, "legacy-browser", osenv.Value("LEGACY_BROWSER", false), "use the playwright browser for the interactive login")
	}
	if mask&OmitConfigFlag == 0 {
		fs.StringVar(&ConfigFile, "api-config", "", "configuration `file` with the API limits overrides.\nYou can generate one with default values with 'gptok config new'")
	}
	if mask&OmitCacheDir == 0 {
		fs.StringVar(&LocalCacheDir, "cache-dir", osenv.Value("CACHE_DIR", ""), "cache `directory` location, default is the user cache directory")
		fs.StringVar(&MachineIDOvr, "machine-id", osenv.Value("MACHINE_ID_OVERRIDE", ""), "machine ID `override` for the credential encryption")
		fs.BoolVar(&NoEncryption, "no-encryption", osenv.Value("NO_ENCRYPTION", false), "disable the credential cache encryption")
	}
	if mask&OmitAccountFlag == 0 {
		fs.StringVar(&Account, "account", osenv.Value("GPTOK_ACCOUNT", ""), "authenticated `account` to use, if not the current one")
	}
	if mask&OmitYesFlag == 0 {
		fs.BoolVar(&AnswerYes, "y", false, "answer yes to all questions")
	}
}

// SetDebugLevel sets the level of the default logger to debug.
func SetDebugLevel() {
	slog.SetLogLoggerLevel(slog.LevelDebug)
}
