// Package base64 implements Base64 decoding under several dialects
// and a matching canonical encoder.
//
// Decoding is a single buffer-to-buffer transform selected by a Mode,
// which fixes the policy for bytes outside the Base64 alphabet:
//
//	ModeRFC2045    skip the byte and continue
//	ModeStrict     reject the whole input
//	ModeRFC4648    stop, keeping what was decoded so far
//	ModeNoPad      reject the whole input; padding is also rejected
//	ModePadOpt     reject the whole input; padding may be absent
//
// Malformed input never surfaces as an error from Decode. It shows up
// as a short (possibly zero) byte count, which callers compare
// against the count they expected. Protocol fields are frequently
// mangled in transit, and a short count still hands the caller every
// byte that could be recovered.
//
// Encode always uses the canonical alphabet:
//
//	ABCDEFGHIJKLMNOPQRSTUVWXYZ
//	abcdefghijklmnopqrstuvwxyz
//	0123456789
//	+/
//
// and appends a single NUL sentinel after the encoded text for
// consumers that expect C strings.
//
// Every function is pure and re-entrant: per-call state lives on the
// stack and buffer ownership stays with the caller, so concurrent use
// needs no locking.
package base64
