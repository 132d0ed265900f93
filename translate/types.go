package translate

import "github.com/shopspring/decimal"

// Call-argument types accepted by the downstream staking contract. They
// mirror its execute API: byte fields marshal to base64, the commission to a
// quoted decimal string, which is what the downstream JSON schema expects.

// ExecuteMsg is the top-level execute payload.
type ExecuteMsg struct {
	BtcStaking *BtcStakingMsg `json:"btc_staking"`
}

// BtcStakingMsg carries the four staking event categories. All four slices
// are always present in JSON (empty array, never null).
type BtcStakingMsg struct {
	NewFP       []NewFinalityProvider   `json:"new_fp"`
	ActiveDel   []ActiveBtcDelegation   `json:"active_del"`
	SlashedDel  []SlashedBtcDelegation  `json:"slashed_del"`
	UnbondedDel []UnbondedBtcDelegation `json:"unbonded_del"`
}

type FinalityProviderDescription struct {
	Moniker         string `json:"moniker"`
	Identity        string `json:"identity"`
	Website         string `json:"website"`
	SecurityContact string `json:"security_contact"`
	Details         string `json:"details"`
}

type ProofOfPossessionBtc struct {
	BtcSigType int32  `json:"btc_sig_type"`
	BtcSig     []byte `json:"btc_sig"`
}

type NewFinalityProvider struct {
	Description *FinalityProviderDescription `json:"description,omitempty"`
	Commission  decimal.Decimal              `json:"commission"`
	Addr        string                       `json:"addr"`
	BtcPkHex    string                       `json:"btc_pk_hex"`
	Pop         *ProofOfPossessionBtc        `json:"pop,omitempty"`
	ConsumerID  string                       `json:"consumer_id"`
}

type CovenantAdaptorSignatures struct {
	CovPk       []byte   `json:"cov_pk"`
	AdaptorSigs [][]byte `json:"adaptor_sigs"`
}

type SignatureInfo struct {
	Pk  []byte `json:"pk"`
	Sig []byte `json:"sig"`
}

type BtcUndelegationInfo struct {
	UnbondingTx              []byte                      `json:"unbonding_tx"`
	DelegatorUnbondingSig    []byte                      `json:"delegator_unbonding_sig"`
	CovenantUnbondingSigList []SignatureInfo             `json:"covenant_unbonding_sig_list"`
	SlashingTx               []byte                      `json:"slashing_tx"`
	DelegatorSlashingSig     []byte                      `json:"delegator_slashing_sig"`
	CovenantSlashingSigs     []CovenantAdaptorSignatures `json:"covenant_slashing_sigs"`
}

type ActiveBtcDelegation struct {
	StakerAddr           string                      `json:"staker_addr"`
	BtcPkHex             string                      `json:"btc_pk_hex"`
	FpBtcPkList          []string                    `json:"fp_btc_pk_list"`
	StartHeight          uint64                      `json:"start_height"`
	EndHeight            uint64                      `json:"end_height"`
	TotalSat             uint64                      `json:"total_sat"`
	StakingTx            []byte                      `json:"staking_tx"`
	SlashingTx           []byte                      `json:"slashing_tx"`
	DelegatorSlashingSig []byte                      `json:"delegator_slashing_sig"`
	CovenantSigs         []CovenantAdaptorSignatures `json:"covenant_sigs"`
	StakingOutputIdx     uint32                      `json:"staking_output_idx"`
	UnbondingTime        uint32                      `json:"unbonding_time"`
	UndelegationInfo     *BtcUndelegationInfo        `json:"undelegation_info,omitempty"`
	ParamsVersion        uint32                      `json:"params_version"`
}

type SlashedBtcDelegation struct {
	StakingTxHash    string `json:"staking_tx_hash"`
	RecoveredFpBtcSk string `json:"recovered_fp_btc_sk"`
}

type UnbondedBtcDelegation struct {
	StakingTxHash  string `json:"staking_tx_hash"`
	UnbondingTxSig []byte `json:"unbonding_tx_sig"`
}
