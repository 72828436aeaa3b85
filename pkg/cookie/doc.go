// Package cookie reads and writes HTTP cookies with shared defaults.
//
// Plain cookies hold values the client may see and change, such as the
// theme preference. Signed cookies add an HMAC-SHA256 so tampering is
// detected. Flash cookies carry one JSON value, AES-GCM encrypted, across a
// redirect and are deleted when read.
//
//	man, err := cookie.NewFromConfig(cfg)
//	if err != nil {
//		return err
//	}
//
//	man.SetSigned(w, "theme", "light", cookie.WithMaxAge(365*24*3600))
//	v, err := man.GetSigned(r, "theme")
//	if errors.Is(err, cookie.ErrInvalidSignature) {
//		// treat as unset
//	}
//
// Secrets must be at least 32 characters. The first secret writes; all of
// them are tried when reading.
package cookie
