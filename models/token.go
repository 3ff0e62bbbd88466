// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CredentialBundle is the in-memory view of everything the client knows about
// the signed-in user. It is owned exclusively by the credential store: no
// other component mutates it, and readers always receive a copy.
//
// Empty string fields and a nil User mean "absent" — the bundle starts empty
// at process start and is wiped on sign-out.
type CredentialBundle struct {
	AccessToken  string
	RefreshToken string
	User         *UserProfile
}

// Empty reports whether the bundle carries no credentials at all.
func (b CredentialBundle) Empty() bool {
	return b.AccessToken == "" && b.RefreshToken == "" && b.User == nil
}

// TokenPair is the access/refresh pair issued by the auth endpoints.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
