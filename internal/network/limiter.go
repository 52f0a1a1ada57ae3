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

package network

import (
	"time"

	"golang.org/x/time/rate"
)

// Tier represents the request budget for a class of backend endpoints, in
// events per minute.  The backend does not publish official limits, the
// values are conservative enough not to trip the bot protection.
type Tier int

const (
	// NoTier applies no practical throttling.
	NoTier Tier = 6000

	// TierAsk is the budget for the conversation endpoint.
	TierAsk Tier = 20
	// TierAPI is the budget for the session and metadata endpoints.
	TierAPI Tier = 60
)

// NewLimiter returns a throttler with the tier's rate of requests per
// minute.  Optionally the caller may specify the boost, in additional
// events per minute.
func NewLimiter(t Tier, burst uint, boost int) *rate.Limiter {
	l := rate.NewLimiter(rate.Every(every(t, boost)), int(burst))
	return l
}

func every(t Tier, boost int) time.Duration {
	return time.Minute / time.Duration(int(t)+int(boost))
}
