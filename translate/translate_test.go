package translate

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"xdao.co/zonerelay/wire"
)

func fullStakingPacket() *wire.BtcStaking {
	return &wire.BtcStaking{
		NewFP: []wire.NewFinalityProvider{{
			Description: &wire.FinalityProviderDescription{
				Moniker:         "fp-one",
				Identity:        "keybase:fp1",
				Website:         "https://fp1.example",
				SecurityContact: "sec@fp1.example",
				Details:         "first provider",
			},
			Commission: "0.05",
			Addr:       "bbn1provider",
			BtcPkHex:   "c3e5f2d8",
			Pop: &wire.ProofOfPossessionBtc{
				BtcSigType: 1,
				BtcSig:     []byte{0xde, 0xad, 0xbe, 0xef},
			},
			ConsumerID: "consumer-7",
		}},
		ActiveDel: []wire.ActiveBtcDelegation{{
			StakerAddr:           "bbn1staker",
			BtcPkHex:             "aa01",
			FpBtcPkList:          []string{"c3e5", "d4f6"},
			StartHeight:          100,
			EndHeight:            10100,
			TotalSat:             1_000_000,
			StakingTx:            []byte{0x02, 0x00, 0x01},
			SlashingTx:           []byte{0x02, 0x00, 0x02},
			DelegatorSlashingSig: []byte{0x30, 0x44},
			CovenantSigs: []wire.CovenantAdaptorSignatures{{
				CovPk:       []byte{0x03, 0xaa},
				AdaptorSigs: [][]byte{{0x01, 0x02}, {0x03, 0x04}},
			}},
			StakingOutputIdx: 1,
			UnbondingTime:    1008,
			UndelegationInfo: &wire.BtcUndelegationInfo{
				UnbondingTx:           []byte{0x02, 0x00, 0x03},
				DelegatorUnbondingSig: []byte{0x30, 0x45},
				CovenantUnbondingSigList: []wire.SignatureInfo{{
					Pk:  []byte{0x03, 0xbb},
					Sig: []byte{0x30, 0x46},
				}},
				SlashingTx:           []byte{0x02, 0x00, 0x04},
				DelegatorSlashingSig: []byte{0x30, 0x47},
				CovenantSlashingSigs: []wire.CovenantAdaptorSignatures{{
					CovPk:       []byte{0x03, 0xcc},
					AdaptorSigs: [][]byte{{0x05, 0x06}},
				}},
			},
			ParamsVersion: 3,
		}},
		SlashedDel: []wire.SlashedBtcDelegation{{
			StakingTxHash:    "9f86d081",
			RecoveredFpBtcSk: "ab12",
		}},
		UnbondedDel: []wire.UnbondedBtcDelegation{{
			StakingTxHash:  "1f86d081",
			UnbondingTxSig: []byte{0x30, 0x48},
		}},
	}
}

func TestBtcStakingMsgOf_FieldFidelity(t *testing.T) {
	in := fullStakingPacket()
	msg, err := BtcStakingMsgOf(in)
	if err != nil {
		t.Fatalf("BtcStakingMsgOf: %v", err)
	}
	out := msg.BtcStaking

	if len(out.NewFP) != 1 || len(out.ActiveDel) != 1 || len(out.UnbondedDel) != 1 {
		t.Fatalf("sequence lengths: %d/%d/%d", len(out.NewFP), len(out.ActiveDel), len(out.UnbondedDel))
	}

	fp := out.NewFP[0]
	if fp.Commission.String() != "0.05" {
		t.Fatalf("commission = %s", fp.Commission)
	}
	if fp.Addr != "bbn1provider" || fp.BtcPkHex != "c3e5f2d8" || fp.ConsumerID != "consumer-7" {
		t.Fatalf("fp scalars diverged: %+v", fp)
	}
	if fp.Description == nil || fp.Description.Moniker != "fp-one" || fp.Description.Details != "first provider" {
		t.Fatalf("description diverged: %+v", fp.Description)
	}
	if fp.Pop == nil || fp.Pop.BtcSigType != 1 || !bytes.Equal(fp.Pop.BtcSig, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("pop diverged: %+v", fp.Pop)
	}

	d := out.ActiveDel[0]
	src := in.ActiveDel[0]
	if d.StartHeight != src.StartHeight || d.EndHeight != src.EndHeight || d.TotalSat != src.TotalSat {
		t.Fatalf("heights/sat diverged: %+v", d)
	}
	if d.StakingOutputIdx != src.StakingOutputIdx || d.UnbondingTime != src.UnbondingTime || d.ParamsVersion != src.ParamsVersion {
		t.Fatalf("u32 fields diverged: %+v", d)
	}
	if !bytes.Equal(d.StakingTx, src.StakingTx) || !bytes.Equal(d.SlashingTx, src.SlashingTx) || !bytes.Equal(d.DelegatorSlashingSig, src.DelegatorSlashingSig) {
		t.Fatalf("tx/sig bytes diverged")
	}
	if len(d.CovenantSigs) != 1 || !bytes.Equal(d.CovenantSigs[0].CovPk, src.CovenantSigs[0].CovPk) {
		t.Fatalf("covenant sigs diverged: %+v", d.CovenantSigs)
	}
	if len(d.CovenantSigs[0].AdaptorSigs) != 2 || !bytes.Equal(d.CovenantSigs[0].AdaptorSigs[1], []byte{0x03, 0x04}) {
		t.Fatalf("adaptor sigs diverged: %+v", d.CovenantSigs[0].AdaptorSigs)
	}
	if d.UndelegationInfo == nil {
		t.Fatalf("undelegation info dropped")
	}
	ui, srcUI := d.UndelegationInfo, src.UndelegationInfo
	if !bytes.Equal(ui.UnbondingTx, srcUI.UnbondingTx) || len(ui.CovenantUnbondingSigList) != 1 || len(ui.CovenantSlashingSigs) != 1 {
		t.Fatalf("undelegation info diverged: %+v", ui)
	}

	u := out.UnbondedDel[0]
	if u.StakingTxHash != "1f86d081" || !bytes.Equal(u.UnbondingTxSig, []byte{0x30, 0x48}) {
		t.Fatalf("unbonded diverged: %+v", u)
	}
}

func TestBtcStakingMsgOf_SlashedStaysUnrouted(t *testing.T) {
	msg, err := BtcStakingMsgOf(fullStakingPacket())
	if err != nil {
		t.Fatalf("BtcStakingMsgOf: %v", err)
	}
	if len(msg.BtcStaking.SlashedDel) != 0 {
		t.Fatalf("slashed delegations must not be routed yet: %+v", msg.BtcStaking.SlashedDel)
	}

	raw, err := msg.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(string(raw), `"slashed_del":[]`) {
		t.Fatalf("slashed_del must be an empty array on the wire: %s", raw)
	}
}

func TestBtcStakingMsgOf_OptionalsStayAbsent(t *testing.T) {
	in := &wire.BtcStaking{
		NewFP: []wire.NewFinalityProvider{{
			Commission: "0.1",
			Addr:       "bbn1bare",
			BtcPkHex:   "aa",
		}},
		ActiveDel: []wire.ActiveBtcDelegation{{
			StakerAddr: "bbn1staker",
			BtcPkHex:   "bb",
		}},
	}
	msg, err := BtcStakingMsgOf(in)
	if err != nil {
		t.Fatalf("BtcStakingMsgOf: %v", err)
	}
	if msg.BtcStaking.NewFP[0].Description != nil || msg.BtcStaking.NewFP[0].Pop != nil {
		t.Fatalf("absent optionals materialized: %+v", msg.BtcStaking.NewFP[0])
	}
	if msg.BtcStaking.ActiveDel[0].UndelegationInfo != nil {
		t.Fatalf("absent undelegation info materialized")
	}
}

func TestBtcStakingMsgOf_InvalidCommission(t *testing.T) {
	for _, bad := range []string{"", "abc", "0..5", "1,5"} {
		in := &wire.BtcStaking{
			NewFP: []wire.NewFinalityProvider{{Commission: bad, Addr: "bbn1x", BtcPkHex: "aa"}},
		}
		_, err := BtcStakingMsgOf(in)
		if !errors.Is(err, ErrInvalidDecimal) {
			t.Fatalf("commission %q: err = %v, want ErrInvalidDecimal", bad, err)
		}
	}
}

func TestTranslation_Idempotent(t *testing.T) {
	in := fullStakingPacket()

	first, err := BtcStakingMsgOf(in)
	if err != nil {
		t.Fatalf("first translation: %v", err)
	}
	second, err := BtcStakingMsgOf(in)
	if err != nil {
		t.Fatalf("second translation: %v", err)
	}

	a, err := first.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	b, err := second.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("translating the same packet twice produced different call arguments")
	}
}

func TestTranslation_RoundTripThroughWire(t *testing.T) {
	in := fullStakingPacket()

	direct, err := BtcStakingMsgOf(in)
	if err != nil {
		t.Fatalf("direct translation: %v", err)
	}
	directJSON, err := direct.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	enc, err := wire.EncodePacketData(&wire.PacketData{BtcStaking: in})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	pd, err := wire.DecodePacketData(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	viaWire, err := BtcStakingMsgOf(pd.BtcStaking)
	if err != nil {
		t.Fatalf("translation after round trip: %v", err)
	}
	viaWireJSON, err := viaWire.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	if !bytes.Equal(directJSON, viaWireJSON) {
		t.Fatalf("wire round trip changed the call arguments:\n direct: %s\nvia wire: %s", directJSON, viaWireJSON)
	}
}

func TestJSON_DownstreamEncoding(t *testing.T) {
	msg, err := BtcStakingMsgOf(fullStakingPacket())
	if err != nil {
		t.Fatalf("BtcStakingMsgOf: %v", err)
	}
	raw, err := msg.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	if !strings.Contains(string(raw), `"commission":"0.05"`) {
		t.Fatalf("commission must stay a quoted decimal string: %s", raw)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["btc_staking"]; !ok {
		t.Fatalf("missing btc_staking envelope: %s", raw)
	}
}
