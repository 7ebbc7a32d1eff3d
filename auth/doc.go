// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles passwords, access tokens, and id generation.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword("s3cret!")
	err = auth.CheckPassword(hash, "s3cret!") // nil on match

# Access Tokens

TokenIssuer signs HS256 JWTs carrying the user id (subject), username,
name, and roles:

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiration)
	token, err := issuer.Generate(user)
	principal, err := issuer.Parse(token)

Parse rejects expired tokens, tokens signed with another key, and tokens
using a non-HMAC algorithm.

# IDs

GenerateID returns a random UUID string for new rows.
*/
package auth
