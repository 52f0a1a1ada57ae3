package info

import (
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"

	"github.com/rusq/gptok/auth/browser"
	"github.com/rusq/gptok/auth/browser/pwcompat"
)

type PwInfo struct {
	Path              string   `json:"path"`
	BrowsersPath      string   `json:"browsers_path"`
	InstalledVersions []string `json:"installed_versions"`
	InstalledBrowsers []string `json:"installed_browsers"`
	Script            string   `json:"script"`
	ScriptExists      bool     `json:"script_exists"`
	ScriptPerm        string   `json:"script_perm"`
}

func (inf *PwInfo) collect(replaceFn PathReplFunc) {
	ad, err := pwcompat.NewAdapter(&playwright.RunOptions{
		Browsers:            []string{browser.Bfirefox.String()},
		SkipInstallBrowsers: true,
	})
	if err != nil {
		inf.Path = loser(err)
		return
	}
	inf.Path = replaceFn(ad.DriverDirectory)
	inf.Script = replaceFn(ad.DriverBinaryLocation)
	if inf.Script != "" {
		if stat, err := os.Stat(ad.DriverBinaryLocation); err == nil {
			inf.ScriptPerm = stat.Mode().String()
			inf.ScriptExists = true
		} else {
			inf.ScriptPerm = loser(err)
		}
	}
	if de, err := os.ReadDir(filepath.Join(ad.DriverDirectory, "..")); err == nil {
		inf.InstalledVersions = dirnames(de)
	} else {
		inf.InstalledVersions = []string{loser(err)}
	}

	browsersPath := filepath.Join(ad.DriverDirectory, "..", "..", "ms-playwright")
	inf.BrowsersPath = replaceFn(browsersPath)
	if de, err := os.ReadDir(browsersPath); err == nil {
		inf.InstalledBrowsers = dirnames(de)
	} else {
		inf.InstalledBrowsers = []string{loser(err)}
	}
}
