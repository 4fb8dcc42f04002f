// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TokenPair is the bearer credential pair issued by the auth endpoints.
// AccessToken authorises API calls; RefreshToken is exchanged for a new pair
// once the access token is rejected.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// VerifyResult is the payload of a successful OTP verification.
type VerifyResult struct {
	TokenPair
	Roles []string `json:"role"`
}

// HasRole reports whether role is among the roles granted by the backend.
func (v VerifyResult) HasRole(role string) bool {
	for _, r := range v.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// LoginRequest asks the backend to send an OTP to PhoneNumber.
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// VerifyRequest exchanges an OTP for a token pair.
type VerifyRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
}

// UploadResult is the payload returned after a file upload.
type UploadResult struct {
	URL string `json:"url"`
}
