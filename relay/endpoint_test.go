package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"xdao.co/zonerelay/wire"
)

func stakingPacketBytes(t *testing.T) []byte {
	t.Helper()
	pd := &wire.PacketData{BtcStaking: &wire.BtcStaking{
		NewFP: []wire.NewFinalityProvider{{
			Commission: "0.07",
			Addr:       "bbn1provider",
			BtcPkHex:   "c3e5",
		}},
		ActiveDel: []wire.ActiveBtcDelegation{{
			StakerAddr: "bbn1staker",
			BtcPkHex:   "aa01",
			StakingTx:  []byte{0x02, 0x00},
		}},
		UnbondedDel: []wire.UnbondedBtcDelegation{{
			StakingTxHash:  "1f86",
			UnbondingTxSig: []byte{0x30, 0x48},
		}},
	}}
	b, err := wire.EncodePacketData(pd)
	if err != nil {
		t.Fatalf("encode staking packet: %v", err)
	}
	return b
}

func timestampPacketBytes(t *testing.T, proof []byte) []byte {
	t.Helper()
	b, err := wire.EncodePacketData(&wire.PacketData{BtcTimestamp: &wire.BtcTimestamp{Raw: proof}})
	if err != nil {
		t.Fatalf("encode timestamp packet: %v", err)
	}
	return b
}

func requireErrorAck(t *testing.T, resp *Response, substr string) {
	t.Helper()
	if resp.Ack.Error == nil {
		t.Fatalf("expected error acknowledgement, got %+v", resp.Ack)
	}
	if !strings.Contains(resp.Ack.Error.Message, substr) {
		t.Fatalf("ack %q does not mention %q", resp.Ack.Error.Message, substr)
	}
	if !strings.Contains(resp.Ack.Error.Message, "invalid packet") {
		t.Fatalf("ack %q missing the invalid-packet prefix", resp.Ack.Error.Message)
	}
}

// requireNoEffects asserts the no-partial-commit contract: an error ack
// keeps nothing from the failed run except the receive event itself.
func requireNoEffects(t *testing.T, resp *Response) {
	t.Helper()
	if len(resp.Messages) != 0 {
		t.Fatalf("error ack retained outbound messages: %+v", resp.Messages)
	}
	if len(resp.Attributes) != 0 {
		t.Fatalf("error ack retained handler attributes: %+v", resp.Attributes)
	}
}

func TestOnPacketReceive_MalformedBytes(t *testing.T) {
	e := New(StaticStore{}, nil)
	resp := e.OnPacketReceive("channel-1", []byte{0xFF, 0xFF})
	requireErrorAck(t, resp, "malformed")
	requireNoEffects(t, resp)
}

func TestOnPacketReceive_EmptyUnion(t *testing.T) {
	e := New(StaticStore{}, nil)
	resp := e.OnPacketReceive("channel-1", nil)
	requireErrorAck(t, resp, "empty")
	requireNoEffects(t, resp)
}

func TestOnPacketReceive_AlwaysEmitsReceiveEvent(t *testing.T) {
	e := New(StaticStore{Cfg: Config{BtcStakingAddr: "bbn1contract"}}, nil)
	for name, data := range map[string][]byte{
		"success": stakingPacketBytes(t),
		"failure": {0xFF},
	} {
		resp := e.OnPacketReceive("channel-9", data)
		found := false
		for _, ev := range resp.Events {
			if ev.Type != "ibc" {
				continue
			}
			for _, a := range ev.Attributes {
				if a.Key == "packet_cid" && a.Value != "" {
					found = true
				}
			}
		}
		if !found {
			t.Fatalf("%s: receive event with packet_cid missing: %+v", name, resp.Events)
		}
	}
}

func TestOnPacketReceive_StakingWithoutRouting(t *testing.T) {
	e := New(StaticStore{}, nil)
	resp := e.OnPacketReceive("channel-1", stakingPacketBytes(t))
	requireErrorAck(t, resp, "btc_staking contract not set")
	requireNoEffects(t, resp)
}

func TestOnPacketReceive_StakingRouted(t *testing.T) {
	e := New(StaticStore{Cfg: Config{BtcStakingAddr: "bbn1contract"}}, nil)
	resp := e.OnPacketReceive("channel-1", stakingPacketBytes(t))

	if !resp.Ack.Success() {
		t.Fatalf("expected success ack, got %+v", resp.Ack)
	}
	if len(resp.Messages) != 1 {
		t.Fatalf("expected exactly one outbound call, got %d", len(resp.Messages))
	}
	call := resp.Messages[0].Execute
	if call == nil || call.ContractAddr != "bbn1contract" {
		t.Fatalf("outbound call = %+v", resp.Messages[0])
	}

	var payload struct {
		BtcStaking struct {
			NewFP       []json.RawMessage `json:"new_fp"`
			ActiveDel   []json.RawMessage `json:"active_del"`
			SlashedDel  []json.RawMessage `json:"slashed_del"`
			UnbondedDel []json.RawMessage `json:"unbonded_del"`
		} `json:"btc_staking"`
	}
	if err := json.Unmarshal(call.Msg, &payload); err != nil {
		t.Fatalf("call payload is not the execute JSON: %v", err)
	}
	if len(payload.BtcStaking.NewFP) != 1 || len(payload.BtcStaking.ActiveDel) != 1 || len(payload.BtcStaking.UnbondedDel) != 1 {
		t.Fatalf("translated sequences missing: %s", call.Msg)
	}
	if len(payload.BtcStaking.SlashedDel) != 0 {
		t.Fatalf("slashed category must stay empty: %s", call.Msg)
	}

	found := false
	for _, a := range resp.Attributes {
		if a.Key == "action" && a.Value == "receive_btc_staking" {
			found = true
		}
	}
	if !found {
		t.Fatalf("action attribute missing: %+v", resp.Attributes)
	}
}

func TestOnPacketReceive_StakingBadCommission(t *testing.T) {
	pd := &wire.PacketData{BtcStaking: &wire.BtcStaking{
		NewFP: []wire.NewFinalityProvider{{Commission: "not-a-decimal", Addr: "bbn1x", BtcPkHex: "aa"}},
	}}
	data, err := wire.EncodePacketData(pd)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	e := New(StaticStore{Cfg: Config{BtcStakingAddr: "bbn1contract"}}, nil)
	resp := e.OnPacketReceive("channel-1", data)
	requireErrorAck(t, resp, "invalid decimal")
	requireNoEffects(t, resp)
}

func TestOnPacketReceive_TimestampNotifyGate(t *testing.T) {
	proof := []byte{0x01, 0x02, 0x03}
	produced := &OutboundMessage{Module: []byte("for-the-zone")}

	cases := []struct {
		name         string
		notify       bool
		wantMessages int
	}{
		{"notify enabled forwards the message", true, 1},
		{"notify disabled drops the message", false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sawPayload []byte
			proc := TimestampProcessorFunc(func(payload []byte) (*OutboundMessage, error) {
				sawPayload = payload
				return produced, nil
			})
			e := New(StaticStore{Cfg: Config{NotifyCosmosZone: tc.notify}}, proc)

			resp := e.OnPacketReceive("channel-1", timestampPacketBytes(t, proof))
			if !resp.Ack.Success() {
				t.Fatalf("expected success ack, got %+v", resp.Ack)
			}
			if string(sawPayload) != string(proof) {
				t.Fatalf("collaborator got %x, want %x", sawPayload, proof)
			}
			if len(resp.Messages) != tc.wantMessages {
				t.Fatalf("messages = %d, want %d", len(resp.Messages), tc.wantMessages)
			}
		})
	}
}

func TestOnPacketReceive_TimestampCollaboratorError(t *testing.T) {
	proc := TimestampProcessorFunc(func([]byte) (*OutboundMessage, error) {
		return nil, fmt.Errorf("header does not connect")
	})
	e := New(StaticStore{Cfg: Config{NotifyCosmosZone: true}}, proc)

	resp := e.OnPacketReceive("channel-1", timestampPacketBytes(t, []byte{0x01}))
	requireErrorAck(t, resp, "header does not connect")
	requireNoEffects(t, resp)
}

func TestOnPacketReceive_ConfigLoadFailure(t *testing.T) {
	e := New(failingStore{}, nil)
	resp := e.OnPacketReceive("channel-1", stakingPacketBytes(t))
	requireErrorAck(t, resp, "store offline")
	requireNoEffects(t, resp)
}

type failingStore struct{}

func (failingStore) Load() (Config, error) { return Config{}, fmt.Errorf("store offline") }

func TestUnsupportedEntryPoints(t *testing.T) {
	e := New(StaticStore{}, nil)
	if err := e.OnAcknowledgePacket(); !errors.Is(err, ErrUnsupportedMethod) {
		t.Fatalf("OnAcknowledgePacket: %v", err)
	}
	if err := e.OnTimeoutPacket(); !errors.Is(err, ErrUnsupportedMethod) {
		t.Fatalf("OnTimeoutPacket: %v", err)
	}
}
