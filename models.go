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

// In this file: listing the models available to the account.

import (
	"context"
	"runtime/trace"

	"github.com/rusq/gptok/internal/backend"
	"github.com/rusq/gptok/internal/network"
)

// Models returns the list of language models available to the logged in
// account.
func (s *Session) Models(ctx context.Context) ([]backend.Model, error) {
	ctx, task := trace.NewTask(ctx, "Models")
	defer task.End()

	var models []backend.Model
	if err := network.WithRetry(ctx, s.limiter(network.TierAPI), s.cfg.limits.Retries, func() error {
		var err error
		models, err = s.client.Models(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	return models, nil
}
