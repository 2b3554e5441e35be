package models

import "time"

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validate.Struct(u)
}

// BeforeCreate sets up any necessary fields before creation
func (u *User) BeforeCreate() {
	if u.JoinedAt.IsZero() {
		u.JoinedAt = time.Now()
	}
}

// Name returns the display name, falling back to the username.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Validate checks if the group meets all validation requirements
func (g *Group) Validate() error {
	return validate.Struct(g)
}

// Validate checks if the follow meets all validation requirements
func (f *Follow) Validate() error {
	return validate.Struct(f)
}

// BeforeCreate sets up any necessary fields before creation
func (f *Follow) BeforeCreate() {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
}
