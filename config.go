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

package gptok

// In this file: session config.

import (
	"github.com/rusq/gptok/internal/network"
)

// config is the option set for the Session.
type config struct {
	limits network.Limits
	model  string // conversation model, empty means the account default
	apiURL string // base URL override, empty means the live service
}

// defConfig is the default config used when initialising the session.
var defConfig = config{
	limits: network.DefLimits,
}
