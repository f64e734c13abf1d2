// common.go
//
// socialdb, a social networking data service for groups, events and their discussions
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of socialdb.
// socialdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// socialdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with socialdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/socialdb/internal/middleware"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/services"
	"github.com/localnerve/socialdb/internal/types"
)

// actor returns the authenticated user, nil for anonymous requests
func actor(c *fiber.Ctx) *models.User {
	return middleware.CurrentUser(c)
}

// paramID parses a positive numeric route parameter
func paramID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, types.BadRequest("Invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// paramIDs parses several route parameters in order
func paramIDs(c *fiber.Ctx, names ...string) ([]uint, error) {
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		id, err := paramID(c, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// queryInt parses an optional integer query parameter
func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, types.BadRequest("%s must be an integer", name)
	}
	return n, nil
}

// queryPage reads limit and offset; range checks are left to the service
func queryPage(c *fiber.Ctx, defaultLimit int) (services.Page, error) {
	limit, err := queryInt(c, "limit", defaultLimit)
	if err != nil {
		return services.Page{}, err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return services.Page{}, err
	}
	return services.Page{Limit: limit, Offset: offset}, nil
}

// parseBody decodes the JSON request body into dest
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return types.BadRequest("Invalid request body: %v", err)
	}
	return nil
}
