package common

// SableVersion is the current Sable toolchain version as a string.
const SableVersion string = "0.1.0"

// SummaryFileExt is the file extension for a serialized module summary.
const SummaryFileExt string = ".sblsum"

// LTOProfileFileName is the default name for LTO profile files.
const LTOProfileFileName string = "sable-lto.toml"

// CombinedModuleName is the default name given to a merged summary index.
const CombinedModuleName string = "combined"
