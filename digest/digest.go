// Package digest derives content identifiers for relay packet payloads.
//
// Payload digests are CIDv1 with the "raw" multicodec and a sha2-256
// multihash, so the same payload always yields the same identifier and two
// hosts can correlate a packet without exchanging the bytes again.
package digest

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// PayloadCID returns the CIDv1 (raw + sha2-256) of a packet payload.
func PayloadCID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// PayloadCIDString returns the string form of PayloadCID, or "" on error.
// multihash.Sum with SHA2_256 and default length does not fail in practice.
func PayloadCIDString(data []byte) string {
	id, err := PayloadCID(data)
	if err != nil {
		return ""
	}
	return id.String()
}
