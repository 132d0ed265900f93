package wire

import "google.golang.org/protobuf/encoding/protowire"

// EncodePacketData encodes a packet payload.
//
// The exactly-one-variant invariant is enforced here as well as on decode, so
// a round trip through the codec cannot manufacture or lose a variant.
func EncodePacketData(pd *PacketData) ([]byte, error) {
	if pd == nil || (pd.BtcTimestamp == nil && pd.BtcStaking == nil) {
		return nil, newError(KindEmptyPacket, "ZR-WIRE-002", "refusing to encode packet with no variant")
	}
	if pd.BtcTimestamp != nil && pd.BtcStaking != nil {
		return nil, newError(KindDecode, "ZR-WIRE-005", "refusing to encode packet with two variants")
	}
	var b []byte
	if pd.BtcTimestamp != nil {
		b = protowire.AppendTag(b, fieldBtcTimestamp, protowire.BytesType)
		b = protowire.AppendBytes(b, pd.BtcTimestamp.Raw)
	}
	if pd.BtcStaking != nil {
		b = protowire.AppendTag(b, fieldBtcStaking, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeBtcStaking(pd.BtcStaking))
	}
	return b, nil
}

// EncodeAcknowledgement encodes an acknowledgement envelope.
func EncodeAcknowledgement(ack Acknowledgement) ([]byte, error) {
	switch {
	case ack.Result != nil && ack.Error != nil:
		return nil, newError(KindDecode, "ZR-WIRE-004", "acknowledgement carries both result and error")
	case ack.Result != nil:
		var b []byte
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, ack.Result.Data)
		return b, nil
	case ack.Error != nil:
		var b []byte
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, ack.Error.Message)
		return b, nil
	default:
		return nil, newError(KindDecode, "ZR-WIRE-004", "acknowledgement carries neither result nor error")
	}
}

// Zero-valued fields are omitted, matching proto3 presence rules; the decoder
// leaves them at their Go zero values, so encode/decode round trips are exact.

func encodeBtcStaking(st *BtcStaking) []byte {
	var b []byte
	for i := range st.NewFP {
		b = appendMessage(b, 1, encodeNewFinalityProvider(&st.NewFP[i]))
	}
	for i := range st.ActiveDel {
		b = appendMessage(b, 2, encodeActiveDelegation(&st.ActiveDel[i]))
	}
	for i := range st.SlashedDel {
		b = appendMessage(b, 3, encodeSlashedDelegation(&st.SlashedDel[i]))
	}
	for i := range st.UnbondedDel {
		b = appendMessage(b, 4, encodeUnbondedDelegation(&st.UnbondedDel[i]))
	}
	return b
}

func encodeNewFinalityProvider(fp *NewFinalityProvider) []byte {
	var b []byte
	if fp.Description != nil {
		b = appendMessage(b, 1, encodeDescription(fp.Description))
	}
	b = appendString(b, 2, fp.Commission)
	b = appendString(b, 3, fp.Addr)
	b = appendString(b, 4, fp.BtcPkHex)
	if fp.Pop != nil {
		b = appendMessage(b, 5, encodeProofOfPossession(fp.Pop))
	}
	b = appendString(b, 6, fp.ConsumerID)
	return b
}

func encodeDescription(d *FinalityProviderDescription) []byte {
	var b []byte
	b = appendString(b, 1, d.Moniker)
	b = appendString(b, 2, d.Identity)
	b = appendString(b, 3, d.Website)
	b = appendString(b, 4, d.SecurityContact)
	b = appendString(b, 5, d.Details)
	return b
}

func encodeProofOfPossession(p *ProofOfPossessionBtc) []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(uint32(p.BtcSigType)))
	b = appendBytes(b, 2, p.BtcSig)
	return b
}

func encodeActiveDelegation(d *ActiveBtcDelegation) []byte {
	var b []byte
	b = appendString(b, 1, d.StakerAddr)
	b = appendString(b, 2, d.BtcPkHex)
	for _, pk := range d.FpBtcPkList {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendString(b, pk)
	}
	b = appendVarint(b, 4, d.StartHeight)
	b = appendVarint(b, 5, d.EndHeight)
	b = appendVarint(b, 6, d.TotalSat)
	b = appendBytes(b, 7, d.StakingTx)
	b = appendBytes(b, 8, d.SlashingTx)
	b = appendBytes(b, 9, d.DelegatorSlashingSig)
	for i := range d.CovenantSigs {
		b = appendMessage(b, 10, encodeCovenantSigs(&d.CovenantSigs[i]))
	}
	b = appendVarint(b, 11, uint64(d.StakingOutputIdx))
	b = appendVarint(b, 12, uint64(d.UnbondingTime))
	if d.UndelegationInfo != nil {
		b = appendMessage(b, 13, encodeUndelegationInfo(d.UndelegationInfo))
	}
	b = appendVarint(b, 14, uint64(d.ParamsVersion))
	return b
}

func encodeCovenantSigs(cs *CovenantAdaptorSignatures) []byte {
	var b []byte
	b = appendBytes(b, 1, cs.CovPk)
	for _, sig := range cs.AdaptorSigs {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, sig)
	}
	return b
}

func encodeSignatureInfo(si *SignatureInfo) []byte {
	var b []byte
	b = appendBytes(b, 1, si.Pk)
	b = appendBytes(b, 2, si.Sig)
	return b
}

func encodeUndelegationInfo(ui *BtcUndelegationInfo) []byte {
	var b []byte
	b = appendBytes(b, 1, ui.UnbondingTx)
	b = appendBytes(b, 2, ui.DelegatorUnbondingSig)
	for i := range ui.CovenantUnbondingSigList {
		b = appendMessage(b, 3, encodeSignatureInfo(&ui.CovenantUnbondingSigList[i]))
	}
	b = appendBytes(b, 4, ui.SlashingTx)
	b = appendBytes(b, 5, ui.DelegatorSlashingSig)
	for i := range ui.CovenantSlashingSigs {
		b = appendMessage(b, 6, encodeCovenantSigs(&ui.CovenantSlashingSigs[i]))
	}
	return b
}

func encodeSlashedDelegation(d *SlashedBtcDelegation) []byte {
	var b []byte
	b = appendString(b, 1, d.StakingTxHash)
	b = appendString(b, 2, d.RecoveredFpBtcSk)
	return b
}

func encodeUnbondedDelegation(d *UnbondedBtcDelegation) []byte {
	var b []byte
	b = appendString(b, 1, d.StakingTxHash)
	b = appendBytes(b, 2, d.UnbondingTxSig)
	return b
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}
