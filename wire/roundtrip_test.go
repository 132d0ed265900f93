package wire

import (
	"bytes"
	"reflect"
	"testing"
)

// stakingFixture exercises every field of the staking records, including the
// nested optional structures and adaptor-signature bundles.
func stakingFixture() *BtcStaking {
	return &BtcStaking{
		NewFP: []NewFinalityProvider{{
			Description: &FinalityProviderDescription{
				Moniker:         "fp-one",
				Identity:        "keybase:fp1",
				Website:         "https://fp1.example",
				SecurityContact: "sec@fp1.example",
				Details:         "first provider",
			},
			Commission: "0.05",
			Addr:       "bbn1qqwc8p6yk0zjf9nqy4dk2mxkxkz508dqy7y0nd",
			BtcPkHex:   "c3e5f2d8a94b7a31c0e6de4e9d8a1b2c3d4e5f60718293a4b5c6d7e8f9012345",
			Pop: &ProofOfPossessionBtc{
				BtcSigType: 1,
				BtcSig:     []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x11},
			},
			ConsumerID: "consumer-7",
		}},
		ActiveDel: []ActiveBtcDelegation{{
			StakerAddr:           "bbn1staker",
			BtcPkHex:             "aa01",
			FpBtcPkList:          []string{"c3e5", "d4f6"},
			StartHeight:          100,
			EndHeight:            10100,
			TotalSat:             1_000_000,
			StakingTx:            []byte{0x02, 0x00, 0x00, 0x00, 0x01},
			SlashingTx:           []byte{0x02, 0x00, 0x00, 0x00, 0x02},
			DelegatorSlashingSig: []byte{0x30, 0x44, 0x02, 0x20},
			CovenantSigs: []CovenantAdaptorSignatures{{
				CovPk:       []byte{0x03, 0xaa},
				AdaptorSigs: [][]byte{{0x01, 0x02}, {0x03, 0x04}},
			}},
			StakingOutputIdx: 1,
			UnbondingTime:    1008,
			UndelegationInfo: &BtcUndelegationInfo{
				UnbondingTx:           []byte{0x02, 0x00, 0x00, 0x00, 0x03},
				DelegatorUnbondingSig: []byte{0x30, 0x45},
				CovenantUnbondingSigList: []SignatureInfo{{
					Pk:  []byte{0x03, 0xbb},
					Sig: []byte{0x30, 0x46},
				}},
				SlashingTx:           []byte{0x02, 0x00, 0x00, 0x00, 0x04},
				DelegatorSlashingSig: []byte{0x30, 0x47},
				CovenantSlashingSigs: []CovenantAdaptorSignatures{{
					CovPk:       []byte{0x03, 0xcc},
					AdaptorSigs: [][]byte{{0x05, 0x06}},
				}},
			},
			ParamsVersion: 3,
		}},
		SlashedDel: []SlashedBtcDelegation{{
			StakingTxHash:    "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
			RecoveredFpBtcSk: "ab12",
		}},
		UnbondedDel: []UnbondedBtcDelegation{{
			StakingTxHash:  "1f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a09",
			UnbondingTxSig: []byte{0x30, 0x48, 0x02, 0x21},
		}},
	}
}

func TestRoundTrip_BtcStaking(t *testing.T) {
	in := &PacketData{BtcStaking: stakingFixture()}

	enc, err := EncodePacketData(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodePacketData(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip diverged:\n in: %+v\nout: %+v", in, out)
	}
}

func TestRoundTrip_BtcTimestamp(t *testing.T) {
	in := &PacketData{BtcTimestamp: &BtcTimestamp{Raw: []byte{0x0a, 0x03, 0x01, 0x02, 0x03}}}

	enc, err := EncodePacketData(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodePacketData(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip diverged: %+v != %+v", in, out)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	in := &PacketData{BtcStaking: stakingFixture()}
	a, err := EncodePacketData(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	b, err := EncodePacketData(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("two encodings of the same packet differ")
	}
}

func TestDecode_DetachesFromInput(t *testing.T) {
	enc, err := EncodePacketData(&PacketData{BtcStaking: stakingFixture()})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodePacketData(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := append([]byte(nil), out.BtcStaking.ActiveDel[0].StakingTx...)
	for i := range enc {
		enc[i] = 0xFF
	}
	if !bytes.Equal(out.BtcStaking.ActiveDel[0].StakingTx, want) {
		t.Fatalf("decoded bytes alias the input buffer")
	}
}
