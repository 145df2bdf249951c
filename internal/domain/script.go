package domain

import (
	"fmt"
	"sort"
)

// MetaLinksContract is the contract every deploy script instantiates.
const MetaLinksContract = "MetaLinks"

// DeployScript describes one deployment entry point.
type DeployScript struct {
	Name         string // e.g. "deploy-v2"
	Version      string // e.g. "v2"
	ContractName string
	// PreviousAddress is the address recorded for the last deployment made with this script.
	PreviousAddress string
}

var deployScripts = map[string]DeployScript{
	"v2": {
		Name:            "deploy-v2",
		Version:         "v2",
		ContractName:    MetaLinksContract,
		PreviousAddress: "0x16De3943bb2aD61cA1c79cAf672c995fa3Ee0cBC",
	},
	"v3": {
		Name:            "deploy-v3",
		Version:         "v3",
		ContractName:    MetaLinksContract,
		PreviousAddress: "0xbd3fd4aF1E3f12c90118773A6e03054005B14FDE",
	},
}

// DefaultScriptVersion is used by `metalinks deploy` when --script is not given.
const DefaultScriptVersion = "v3"

// LookupDeployScript returns the script for a version ("v2") or a name ("deploy-v2").
func LookupDeployScript(key string) (DeployScript, error) {
	if s, ok := deployScripts[key]; ok {
		return s, nil
	}
	for _, s := range deployScripts {
		if s.Name == key {
			return s, nil
		}
	}
	return DeployScript{}, fmt.Errorf("unknown deploy script %q (valid: %v)", key, ScriptVersions())
}

// MustDeployScript is LookupDeployScript for the built-in entry points.
func MustDeployScript(key string) DeployScript {
	s, err := LookupDeployScript(key)
	if err != nil {
		panic(err)
	}
	return s
}

// ScriptVersions returns the known script versions in order.
func ScriptVersions() []string {
	versions := make([]string, 0, len(deployScripts))
	for v := range deployScripts {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// DeployScripts returns all known scripts ordered by version.
func DeployScripts() []DeployScript {
	scripts := make([]DeployScript, 0, len(deployScripts))
	for _, v := range ScriptVersions() {
		scripts = append(scripts, deployScripts[v])
	}
	return scripts
}
