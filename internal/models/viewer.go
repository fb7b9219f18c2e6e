// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Viewer is the front-end visitor a listing is rendered for.
// Groups is nil when no memberships are recorded for the visitor, which is
// different from an empty (but known) membership list only in intent; both
// deny access to protected archives.
type Viewer struct {
	LoggedIn bool    `json:"logged_in"`
	MemberID int64   `json:"member_id"`
	Groups   []int64 `json:"groups"`
}

// Anonymous returns a viewer that is not logged in.
func Anonymous() Viewer {
	return Viewer{}
}

// HasGroups returns true if group memberships are recorded for the viewer.
func (v Viewer) HasGroups() bool {
	return v.Groups != nil
}
