// Package translate maps wire staking records into the call arguments of the
// downstream staking contract.
//
// The mapping is field for field: byte fields are copied verbatim, numeric
// fields keep their width and signedness, optional sub-structures stay
// optional, and the commission string is parsed into a fixed-point decimal.
// Translation is pure; translating the same record twice yields identical
// call arguments.
package translate

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"xdao.co/zonerelay/wire"
)

// BtcStakingMsgOf translates one staking packet into the downstream execute
// message.
//
// Slashed delegations are decoded by the wire codec but deliberately not
// translated: SlashedDel is always an empty list until downstream routing
// for that category exists. This gap is intentional; do not infer a mapping.
func BtcStakingMsgOf(p *wire.BtcStaking) (*ExecuteMsg, error) {
	out := &BtcStakingMsg{
		NewFP:       make([]NewFinalityProvider, 0, len(p.NewFP)),
		ActiveDel:   make([]ActiveBtcDelegation, 0, len(p.ActiveDel)),
		SlashedDel:  make([]SlashedBtcDelegation, 0),
		UnbondedDel: make([]UnbondedBtcDelegation, 0, len(p.UnbondedDel)),
	}
	for i := range p.NewFP {
		fp, err := newFinalityProvider(&p.NewFP[i])
		if err != nil {
			return nil, err
		}
		out.NewFP = append(out.NewFP, fp)
	}
	for i := range p.ActiveDel {
		out.ActiveDel = append(out.ActiveDel, activeDelegation(&p.ActiveDel[i]))
	}
	for i := range p.UnbondedDel {
		out.UnbondedDel = append(out.UnbondedDel, UnbondedBtcDelegation{
			StakingTxHash:  p.UnbondedDel[i].StakingTxHash,
			UnbondingTxSig: cloneBytes(p.UnbondedDel[i].UnbondingTxSig),
		})
	}
	return &ExecuteMsg{BtcStaking: out}, nil
}

// JSON renders the execute message in the downstream contract's JSON
// encoding. The rendering is deterministic: struct-driven field order,
// base64 bytes, quoted decimal commission.
func (m *ExecuteMsg) JSON() ([]byte, error) {
	return json.Marshal(m)
}

func newFinalityProvider(fp *wire.NewFinalityProvider) (NewFinalityProvider, error) {
	commission, err := decimal.NewFromString(fp.Commission)
	if err != nil {
		return NewFinalityProvider{}, fmt.Errorf("%w: commission %q: %v", ErrInvalidDecimal, fp.Commission, err)
	}
	out := NewFinalityProvider{
		Commission: commission,
		Addr:       fp.Addr,
		BtcPkHex:   fp.BtcPkHex,
		ConsumerID: fp.ConsumerID,
	}
	if d := fp.Description; d != nil {
		out.Description = &FinalityProviderDescription{
			Moniker:         d.Moniker,
			Identity:        d.Identity,
			Website:         d.Website,
			SecurityContact: d.SecurityContact,
			Details:         d.Details,
		}
	}
	if p := fp.Pop; p != nil {
		out.Pop = &ProofOfPossessionBtc{
			BtcSigType: p.BtcSigType,
			BtcSig:     cloneBytes(p.BtcSig),
		}
	}
	return out, nil
}

func activeDelegation(d *wire.ActiveBtcDelegation) ActiveBtcDelegation {
	out := ActiveBtcDelegation{
		StakerAddr:           d.StakerAddr,
		BtcPkHex:             d.BtcPkHex,
		FpBtcPkList:          stringList(d.FpBtcPkList),
		StartHeight:          d.StartHeight,
		EndHeight:            d.EndHeight,
		TotalSat:             d.TotalSat,
		StakingTx:            cloneBytes(d.StakingTx),
		SlashingTx:           cloneBytes(d.SlashingTx),
		DelegatorSlashingSig: cloneBytes(d.DelegatorSlashingSig),
		CovenantSigs:         covenantSigList(d.CovenantSigs),
		StakingOutputIdx:     d.StakingOutputIdx,
		UnbondingTime:        d.UnbondingTime,
		ParamsVersion:        d.ParamsVersion,
	}
	if ui := d.UndelegationInfo; ui != nil {
		out.UndelegationInfo = &BtcUndelegationInfo{
			UnbondingTx:              cloneBytes(ui.UnbondingTx),
			DelegatorUnbondingSig:    cloneBytes(ui.DelegatorUnbondingSig),
			CovenantUnbondingSigList: signatureInfoList(ui.CovenantUnbondingSigList),
			SlashingTx:               cloneBytes(ui.SlashingTx),
			DelegatorSlashingSig:     cloneBytes(ui.DelegatorSlashingSig),
			CovenantSlashingSigs:     covenantSigList(ui.CovenantSlashingSigs),
		}
	}
	return out
}

func covenantSigList(in []wire.CovenantAdaptorSignatures) []CovenantAdaptorSignatures {
	out := make([]CovenantAdaptorSignatures, 0, len(in))
	for i := range in {
		sigs := make([][]byte, 0, len(in[i].AdaptorSigs))
		for _, s := range in[i].AdaptorSigs {
			sigs = append(sigs, cloneBytes(s))
		}
		out = append(out, CovenantAdaptorSignatures{
			CovPk:       cloneBytes(in[i].CovPk),
			AdaptorSigs: sigs,
		})
	}
	return out
}

func signatureInfoList(in []wire.SignatureInfo) []SignatureInfo {
	out := make([]SignatureInfo, 0, len(in))
	for i := range in {
		out = append(out, SignatureInfo{
			Pk:  cloneBytes(in[i].Pk),
			Sig: cloneBytes(in[i].Sig),
		})
	}
	return out
}

func stringList(in []string) []string {
	out := make([]string, 0, len(in))
	return append(out, in...)
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
