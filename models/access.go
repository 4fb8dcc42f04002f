package models

import "time"

// AccessGrant gives a user access to a test template.
type AccessGrant struct {
	UserID     int64     `json:"userId"`
	TemplateID int64     `json:"templateId"`
	GrantedAt  time.Time `json:"grantedAt,omitzero"`
}

// AccessRequest is the body of the grant and revoke endpoints.
type AccessRequest struct {
	UserID     int64 `json:"userId"`
	TemplateID int64 `json:"templateId"`
}
