package global

// set by the linker at build time
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	CfgFile string
	Debug   bool
	NoStyle bool
)
