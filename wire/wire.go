// Package wire implements the binary codec for the zoneconcierge relay
// channel: the packet payload tagged union, its nested BTC staking records,
// and the acknowledgement envelope.
//
// The encoding is standard protobuf wire format, written against
// encoding/protowire directly. We intentionally avoid a protoc/codegen
// toolchain; the field layout below is the wire contract.
package wire

// PacketData is the payload of one received packet.
//
// It is a tagged union: exactly one of the variant pointers is non-nil on a
// successfully decoded packet. DecodePacketData enforces this; an input
// carrying no variant at all is an EmptyPacket error, and an unknown union
// field is an UnsupportedPacket error.
type PacketData struct {
	BtcTimestamp *BtcTimestamp // field 1
	BtcStaking   *BtcStaking   // field 2
}

// BtcTimestamp is an opaque proof-carrying timestamp bundle.
//
// Its interpretation belongs to the timestamp-processing collaborator; this
// codec carries the variant's bytes verbatim and never looks inside.
type BtcTimestamp struct {
	Raw []byte
}

// BtcStaking carries staking events relayed from the counterparty chain.
type BtcStaking struct {
	NewFP       []NewFinalityProvider   // field 1
	ActiveDel   []ActiveBtcDelegation   // field 2
	SlashedDel  []SlashedBtcDelegation  // field 3
	UnbondedDel []UnbondedBtcDelegation // field 4
}

// FinalityProviderDescription is the optional descriptive metadata of a
// finality provider. Fields 1..5, all strings.
type FinalityProviderDescription struct {
	Moniker         string
	Identity        string
	Website         string
	SecurityContact string
	Details         string
}

// ProofOfPossessionBtc proves control of the provider's BTC key.
type ProofOfPossessionBtc struct {
	BtcSigType int32  // field 1
	BtcSig     []byte // field 2
}

// NewFinalityProvider registers a finality provider on the consumer side.
type NewFinalityProvider struct {
	Description *FinalityProviderDescription // field 1
	Commission  string                       // field 2, decimal string
	Addr        string                       // field 3
	BtcPkHex    string                       // field 4, hex-encoded BIP340 pk
	Pop         *ProofOfPossessionBtc        // field 5
	ConsumerID  string                       // field 6
}

// CovenantAdaptorSignatures is one covenant member's adaptor signatures over
// a slashing path.
type CovenantAdaptorSignatures struct {
	CovPk       []byte   // field 1
	AdaptorSigs [][]byte // field 2
}

// SignatureInfo pairs a public key with a signature.
type SignatureInfo struct {
	Pk  []byte // field 1
	Sig []byte // field 2
}

// BtcUndelegationInfo describes the unbonding path of a delegation.
type BtcUndelegationInfo struct {
	UnbondingTx              []byte                      // field 1
	DelegatorUnbondingSig    []byte                      // field 2
	CovenantUnbondingSigList []SignatureInfo             // field 3
	SlashingTx               []byte                      // field 4
	DelegatorSlashingSig     []byte                      // field 5
	CovenantSlashingSigs     []CovenantAdaptorSignatures // field 6
}

// ActiveBtcDelegation is a delegation that became active on the provider
// chain. Byte fields are raw transactions and signatures and must survive
// the codec bit-exact.
type ActiveBtcDelegation struct {
	StakerAddr           string                      // field 1
	BtcPkHex             string                      // field 2
	FpBtcPkList          []string                    // field 3
	StartHeight          uint64                      // field 4
	EndHeight            uint64                      // field 5
	TotalSat             uint64                      // field 6
	StakingTx            []byte                      // field 7
	SlashingTx           []byte                      // field 8
	DelegatorSlashingSig []byte                      // field 9
	CovenantSigs         []CovenantAdaptorSignatures // field 10
	StakingOutputIdx     uint32                      // field 11
	UnbondingTime        uint32                      // field 12
	UndelegationInfo     *BtcUndelegationInfo        // field 13
	ParamsVersion        uint32                      // field 14
}

// SlashedBtcDelegation reports a slashed delegation. The wire format carries
// it but no downstream routing exists for it yet; see the translate package.
type SlashedBtcDelegation struct {
	StakingTxHash    string // field 1
	RecoveredFpBtcSk string // field 2, hex
}

// UnbondedBtcDelegation reports an early-unbonded delegation.
type UnbondedBtcDelegation struct {
	StakingTxHash  string // field 1
	UnbondingTxSig []byte // field 2
}

// Acknowledgement is the reply attached to every processed packet.
//
// It is a tagged union: exactly one of Result or Error is non-nil. A success
// with no payload is a non-nil Result with empty Data, which is distinct from
// an error on the wire.
type Acknowledgement struct {
	Result *AckResult // field 1
	Error  *AckError  // field 2
}

// AckResult is the success arm of an acknowledgement.
type AckResult struct {
	Data []byte
}

// AckError is the error arm; Message is a UTF-8 diagnostic for humans.
type AckError struct {
	Message string
}

// NewResultAck returns a success acknowledgement carrying data (may be nil).
func NewResultAck(data []byte) Acknowledgement {
	return Acknowledgement{Result: &AckResult{Data: data}}
}

// NewErrorAck returns an error acknowledgement with the given diagnostic.
func NewErrorAck(msg string) Acknowledgement {
	return Acknowledgement{Error: &AckError{Message: msg}}
}

// Success reports whether a is the success arm.
func (a Acknowledgement) Success() bool { return a.Result != nil }
