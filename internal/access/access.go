// Package access decides what a viewer may see and who may enter at all.
//
// Visibility and blocking are separate concerns: visibility filters
// private items per viewer, while the gate rejects blacklisted visitors
// before any catalog data is served.
package access

import (
	"strconv"
	"strings"

	"github.com/optionshub/mediavault-server/internal/domain"
)

// Visible reports whether the viewer may see the item. Rules are
// evaluated first match wins:
//
//  1. public items are visible to everyone
//  2. operators see everything
//  3. global access opens private items to all visitors
//  4. otherwise the viewer must be whitelisted by numeric id or by
//     lowercased handle
//
// Guests never match the whitelist: they carry no platform identity.
func Visible(item *domain.MediaItem, v domain.Viewer, state domain.AccessState) bool {
	if !item.IsPrivate {
		return true
	}
	if v.IsOperator() {
		return true
	}
	if state.GlobalAccess {
		return true
	}
	if v.Role != domain.RoleUser {
		return false
	}
	idStr := strconv.FormatInt(v.ID, 10)
	handle := strings.ToLower(v.Handle)
	for _, allowed := range state.AllowedUsers {
		if allowed == idStr {
			return true
		}
		if handle != "" && strings.ToLower(allowed) == handle {
			return true
		}
	}
	return false
}

// Blocked reports whether a visitor with the given handle and IP matches
// any blacklist rule. Matching is exact per rule kind; an empty handle or
// IP never matches.
func Blocked(state domain.AccessState, handle, ip string) bool {
	for _, rule := range state.Blacklist {
		if rule.Matches(handle, ip) {
			return true
		}
	}
	return false
}
