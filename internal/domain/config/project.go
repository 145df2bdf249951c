package config

// ProjectConfig represents metalinks.toml
type ProjectConfig struct {
	DefaultNetwork       string                   `toml:"default_network"`
	Artifacts            []string                 `toml:"artifacts"`
	ConfirmationsTimeout string                   `toml:"confirmations_timeout"`
	Networks             map[string]NetworkConfig `toml:"networks"`
	Deployer             DeployerConfig           `toml:"deployer"`
}

// NetworkConfig is one [networks.<name>] table
type NetworkConfig struct {
	RPCURL   string `toml:"rpc_url"`
	ChainID  uint64 `toml:"chain_id,omitempty"`
	Explorer string `toml:"explorer,omitempty"`
}

// DeployerConfig is the [deployer] table
type DeployerConfig struct {
	PrivateKey string `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
}

const (
	LocalNetworkName = "localhost"
	LocalRPCURL      = "http://127.0.0.1:8545"
	LocalChainID     = 31337
)

// DefaultArtifactDirs are searched when metalinks.toml doesn't list any
var DefaultArtifactDirs = []string{"artifacts", "out"}

// DefaultProjectConfig is used when the project has no metalinks.toml
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		DefaultNetwork: LocalNetworkName,
		Artifacts:      DefaultArtifactDirs,
		Networks: map[string]NetworkConfig{
			LocalNetworkName: {RPCURL: LocalRPCURL, ChainID: LocalChainID},
		},
	}
}
