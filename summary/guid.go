package summary

import (
	"crypto/md5"
	"encoding/binary"

	lru "github.com/hashicorp/golang-lru/v2"
)

// GUID is the cross-module identity of a function or virtual-method
// requirement: the 64-bit fingerprint of the symbol's canonical mangled name.
// GUIDs are the only identity the summary machinery trusts; debug names are
// carried purely for diagnostics.
type GUID uint64

// guidCache memoizes name hashing.  The same mangled callee name is hashed
// once per call-graph edge and mangled names repeat heavily across a module.
var guidCache, _ = lru.New[string, GUID](4096)

// GUIDFromName computes the GUID of a canonical symbol name: the little-endian
// interpretation of the first 8 bytes of the name's MD5 digest.  The exact
// function is part of the on-disk contract and must remain stable across
// versions and platforms.
func GUIDFromName(name string) GUID {
	if guid, ok := guidCache.Get(name); ok {
		return guid
	}

	digest := md5.Sum([]byte(name))
	guid := GUID(binary.LittleEndian.Uint64(digest[:8]))

	guidCache.Add(name, guid)
	return guid
}

// The synthetic preservation summaries use GUIDs from an explicitly reserved
// range at the top of the GUID space so that they can never be confused with
// the hash of a real symbol recorded in the same index.
const syntheticGUIDBase GUID = 0xFFFFFFFFFFFFFF00

// Enumeration of the reserved synthetic GUIDs.
const (
	// ExternalWitnessesGUID pins witness implementations of protocols defined
	// outside the analyzed module set.
	ExternalWitnessesGUID = syntheticGUIDBase + iota

	// VTableStructuralGUID pins deallocators, ivar destroyers, and overrides
	// of externally declared class methods.
	VTableStructuralGUID

	// KeyPathGUID pins methods referenced by key-path patterns on stored
	// properties.
	KeyPathGUID
)

// IsSyntheticGUID reports whether the given GUID falls in the reserved
// synthetic preservation range.
func IsSyntheticGUID(guid GUID) bool {
	return guid >= syntheticGUIDBase
}
