// Package anvil holds shared metadata for the Anvil template engine.
package anvil

// Version is the current Anvil release. Template manifests can require a
// minimum engine version via min_anvil_version.
const Version = "0.3.0"

// Generator is the tool identifier embedded in rendered output.
const Generator = "Anvil Template Engine"
