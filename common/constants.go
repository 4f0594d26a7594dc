package common

const (
	SrcFileExtension  = ".ngs"
	ModuleFileName    = "ngs-mod.toml"
	NgsVersion        = "0.3.0"
	DefaultEntryPoint = "main"
)
