package relay

// Config is the endpoint's instantiation-time configuration. It is read on
// every packet and written only by an administrative path outside this
// package.
type Config struct {
	// BtcStakingAddr is the downstream staking contract address. Empty means
	// staking packets cannot be routed and fail with ErrRoutingNotConfigured.
	BtcStakingAddr string

	// NotifyCosmosZone gates whether a timestamp handler's optional outbound
	// message is forwarded to the local chain module. When false the message
	// is dropped silently; that is policy, not an error.
	NotifyCosmosZone bool
}

// ConfigStore loads the endpoint configuration.
//
// Contract:
//   - Load MUST be read-only on the packet path.
//   - Load failures are packet-processing errors and surface as error
//     acknowledgements, never as host-level failures.
type ConfigStore interface {
	Load() (Config, error)
}

// StaticStore is a ConfigStore over a fixed Config. The daemon uses it; tests
// do too.
type StaticStore struct {
	Cfg Config
}

func (s StaticStore) Load() (Config, error) { return s.Cfg, nil }
