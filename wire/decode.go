package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the packet union. The set is closed: decoding an unknown
// field number at the union level is an UnsupportedPacket error so that new
// packet kinds fail loudly instead of being dropped.
const (
	fieldBtcTimestamp = protowire.Number(1)
	fieldBtcStaking   = protowire.Number(2)
)

// DecodePacketData decodes a packet payload.
//
// Contract:
//   - Returns a KindDecode error on structurally malformed bytes.
//   - Returns a KindEmptyPacket error when no variant is present.
//   - Returns a KindUnsupportedPacket error on an unknown union field.
//   - On success exactly one variant pointer is non-nil. Repeated variant
//     occurrences follow proto oneof semantics: the last one wins.
//
// Unknown fields inside nested records are skipped, matching standard
// protobuf forward compatibility; strictness applies to the union only.
func DecodePacketData(b []byte) (*PacketData, error) {
	var pd PacketData
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errMalformed("packet data", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case fieldBtcTimestamp:
			v, n, err := consumeBytesField(b, typ, "btc_timestamp")
			if err != nil {
				return nil, err
			}
			b = b[n:]
			pd.BtcTimestamp = &BtcTimestamp{Raw: cloneBytes(v)}
			pd.BtcStaking = nil
		case fieldBtcStaking:
			v, n, err := consumeBytesField(b, typ, "btc_staking")
			if err != nil {
				return nil, err
			}
			b = b[n:]
			st, err := decodeBtcStaking(v)
			if err != nil {
				return nil, err
			}
			pd.BtcStaking = st
			pd.BtcTimestamp = nil
		default:
			return nil, &Error{
				Kind:    KindUnsupportedPacket,
				RuleID:  "ZR-WIRE-003",
				Message: fmt.Sprintf("unsupported packet variant: field %d", num),
			}
		}
	}
	if pd.BtcTimestamp == nil && pd.BtcStaking == nil {
		return nil, newError(KindEmptyPacket, "ZR-WIRE-002", "empty packet: no variant present")
	}
	return &pd, nil
}

// DecodeAcknowledgement decodes an acknowledgement envelope.
func DecodeAcknowledgement(b []byte) (Acknowledgement, error) {
	var ack Acknowledgement
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Acknowledgement{}, errMalformed("acknowledgement", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case 1:
			v, n, err := consumeBytesField(b, typ, "ack result")
			if err != nil {
				return Acknowledgement{}, err
			}
			b = b[n:]
			ack.Result = &AckResult{Data: cloneBytes(v)}
			ack.Error = nil
		case 2:
			v, n, err := consumeBytesField(b, typ, "ack error")
			if err != nil {
				return Acknowledgement{}, err
			}
			b = b[n:]
			ack.Error = &AckError{Message: string(v)}
			ack.Result = nil
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Acknowledgement{}, errMalformed("acknowledgement", protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	if ack.Result == nil && ack.Error == nil {
		return Acknowledgement{}, newError(KindDecode, "ZR-WIRE-004", "acknowledgement carries neither result nor error")
	}
	return ack, nil
}

func decodeBtcStaking(b []byte) (*BtcStaking, error) {
	var st BtcStaking
	err := eachField(b, "btc_staking", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			fp, err := decodeNewFinalityProvider(v)
			if err != nil {
				return err
			}
			st.NewFP = append(st.NewFP, fp)
		case 2:
			d, err := decodeActiveDelegation(v)
			if err != nil {
				return err
			}
			st.ActiveDel = append(st.ActiveDel, d)
		case 3:
			d, err := decodeSlashedDelegation(v)
			if err != nil {
				return err
			}
			st.SlashedDel = append(st.SlashedDel, d)
		case 4:
			d, err := decodeUnbondedDelegation(v)
			if err != nil {
				return err
			}
			st.UnbondedDel = append(st.UnbondedDel, d)
		}
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func decodeNewFinalityProvider(b []byte) (NewFinalityProvider, error) {
	var fp NewFinalityProvider
	err := eachField(b, "new_fp", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			d, err := decodeDescription(v)
			if err != nil {
				return err
			}
			fp.Description = &d
		case 2:
			fp.Commission = string(v)
		case 3:
			fp.Addr = string(v)
		case 4:
			fp.BtcPkHex = string(v)
		case 5:
			p, err := decodeProofOfPossession(v)
			if err != nil {
				return err
			}
			fp.Pop = &p
		case 6:
			fp.ConsumerID = string(v)
		}
		return nil
	}, nil)
	return fp, err
}

func decodeDescription(b []byte) (FinalityProviderDescription, error) {
	var d FinalityProviderDescription
	err := eachField(b, "description", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			d.Moniker = string(v)
		case 2:
			d.Identity = string(v)
		case 3:
			d.Website = string(v)
		case 4:
			d.SecurityContact = string(v)
		case 5:
			d.Details = string(v)
		}
		return nil
	}, nil)
	return d, err
}

func decodeProofOfPossession(b []byte) (ProofOfPossessionBtc, error) {
	var p ProofOfPossessionBtc
	err := eachField(b, "pop", func(num protowire.Number, v []byte) error {
		if num == 2 {
			p.BtcSig = cloneBytes(v)
		}
		return nil
	}, func(num protowire.Number, v uint64) {
		if num == 1 {
			p.BtcSigType = int32(v)
		}
	})
	return p, err
}

func decodeActiveDelegation(b []byte) (ActiveBtcDelegation, error) {
	var d ActiveBtcDelegation
	err := eachField(b, "active_del", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			d.StakerAddr = string(v)
		case 2:
			d.BtcPkHex = string(v)
		case 3:
			d.FpBtcPkList = append(d.FpBtcPkList, string(v))
		case 7:
			d.StakingTx = cloneBytes(v)
		case 8:
			d.SlashingTx = cloneBytes(v)
		case 9:
			d.DelegatorSlashingSig = cloneBytes(v)
		case 10:
			cs, err := decodeCovenantSigs(v)
			if err != nil {
				return err
			}
			d.CovenantSigs = append(d.CovenantSigs, cs)
		case 13:
			ui, err := decodeUndelegationInfo(v)
			if err != nil {
				return err
			}
			d.UndelegationInfo = &ui
		}
		return nil
	}, func(num protowire.Number, v uint64) {
		switch num {
		case 4:
			d.StartHeight = v
		case 5:
			d.EndHeight = v
		case 6:
			d.TotalSat = v
		case 11:
			d.StakingOutputIdx = uint32(v)
		case 12:
			d.UnbondingTime = uint32(v)
		case 14:
			d.ParamsVersion = uint32(v)
		}
	})
	return d, err
}

func decodeCovenantSigs(b []byte) (CovenantAdaptorSignatures, error) {
	var cs CovenantAdaptorSignatures
	err := eachField(b, "covenant_sigs", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			cs.CovPk = cloneBytes(v)
		case 2:
			cs.AdaptorSigs = append(cs.AdaptorSigs, cloneBytes(v))
		}
		return nil
	}, nil)
	return cs, err
}

func decodeSignatureInfo(b []byte) (SignatureInfo, error) {
	var si SignatureInfo
	err := eachField(b, "signature_info", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			si.Pk = cloneBytes(v)
		case 2:
			si.Sig = cloneBytes(v)
		}
		return nil
	}, nil)
	return si, err
}

func decodeUndelegationInfo(b []byte) (BtcUndelegationInfo, error) {
	var ui BtcUndelegationInfo
	err := eachField(b, "undelegation_info", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			ui.UnbondingTx = cloneBytes(v)
		case 2:
			ui.DelegatorUnbondingSig = cloneBytes(v)
		case 3:
			si, err := decodeSignatureInfo(v)
			if err != nil {
				return err
			}
			ui.CovenantUnbondingSigList = append(ui.CovenantUnbondingSigList, si)
		case 4:
			ui.SlashingTx = cloneBytes(v)
		case 5:
			ui.DelegatorSlashingSig = cloneBytes(v)
		case 6:
			cs, err := decodeCovenantSigs(v)
			if err != nil {
				return err
			}
			ui.CovenantSlashingSigs = append(ui.CovenantSlashingSigs, cs)
		}
		return nil
	}, nil)
	return ui, err
}

func decodeSlashedDelegation(b []byte) (SlashedBtcDelegation, error) {
	var d SlashedBtcDelegation
	err := eachField(b, "slashed_del", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			d.StakingTxHash = string(v)
		case 2:
			d.RecoveredFpBtcSk = string(v)
		}
		return nil
	}, nil)
	return d, err
}

func decodeUnbondedDelegation(b []byte) (UnbondedBtcDelegation, error) {
	var d UnbondedBtcDelegation
	err := eachField(b, "unbonded_del", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			d.StakingTxHash = string(v)
		case 2:
			d.UnbondingTxSig = cloneBytes(v)
		}
		return nil
	}, nil)
	return d, err
}

// eachField walks one message, handing length-delimited values to bytesFn and
// varint values to varintFn (when non-nil). Fields of other wire types, and
// fields neither callback recognizes, are skipped.
func eachField(b []byte, ctx string, bytesFn func(protowire.Number, []byte) error, varintFn func(protowire.Number, uint64)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errMalformed(ctx, protowire.ParseError(n))
		}
		b = b[n:]
		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return errMalformed(ctx, protowire.ParseError(n))
			}
			b = b[n:]
			if bytesFn != nil {
				if err := bytesFn(num, v); err != nil {
					return err
				}
			}
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return errMalformed(ctx, protowire.ParseError(n))
			}
			b = b[n:]
			if varintFn != nil {
				varintFn(num, v)
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errMalformed(ctx, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return nil
}

func consumeBytesField(b []byte, typ protowire.Type, ctx string) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, newError(KindDecode, "ZR-WIRE-001", fmt.Sprintf("%s: unexpected wire type %d", ctx, typ))
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, errMalformed(ctx, protowire.ParseError(n))
	}
	return v, n, nil
}

func errMalformed(ctx string, cause error) error {
	return &Error{
		Kind:    KindDecode,
		RuleID:  "ZR-WIRE-001",
		Message: fmt.Sprintf("malformed %s: %v", ctx, cause),
		Cause:   cause,
	}
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
