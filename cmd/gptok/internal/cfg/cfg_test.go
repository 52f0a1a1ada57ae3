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
package cfg

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBaseFlags(t *testing.T) {
	t.Run("all flags are set", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		mask := DefaultFlags

		SetBaseFlags(fs, mask)

		err := fs.Parse([]string{
			"-trace", "trace.log",
			"-log", "log.txt",
			"-log-json",
			"-v",
			"-token", "xtoken",
			"-cookie", "xcookie",
			"-api-url", "http://localhost:8080",
			"-legacy-browser",
			"-api-config", "limits.toml",
			"-cache-dir", "/tmp/cache",
			"-machine-id", "id-override",
			"-no-encryption",
			"-account", "work",
			"-y",
		})
		if err != nil {
			t.Fatalf("Error parsing flags: %v", err)
		}

		assert.Equal(t, "trace.log", TraceFile)
		assert.Equal(t, "log.txt", LogFile)
		assert.True(t, JsonHandler)
		assert.True(t, Verbose)
		assert.Equal(t, "xtoken", Token)
		assert.Equal(t, "xcookie", Cookie)
		assert.Equal(t, "http://localhost:8080", APIURL)
		assert.True(t, LegacyBrowser)
		assert.Equal(t, "limits.toml", ConfigFile)
		assert.Equal(t, "/tmp/cache", LocalCacheDir)
		assert.Equal(t, "id-override", MachineIDOvr)
		assert.True(t, NoEncryption)
		assert.Equal(t, "work", Account)
		assert.True(t, AnswerYes)
	})
	t.Run("omit masks exclude the flags", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		SetBaseFlags(fs, OmitAll)

		for _, name := range []string{"token", "cookie", "api-url", "legacy-browser", "api-config", "cache-dir", "machine-id", "no-encryption", "account", "y"} {
			assert.Nil(t, fs.Lookup(name), "flag %q should not be registered", name)
		}
		for _, name := range []string{"trace", "log", "log-json", "v"} {
			assert.NotNil(t, fs.Lookup(name), "flag %q should be registered", name)
		}
	})
}
