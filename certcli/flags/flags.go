package flags

type RootCmdFlags struct {
	Debug bool
}

// ExtractCmdFlags are the flags of the credential extraction command. Each
// can also be set from a KUBECERT_ prefixed environment variable.
type ExtractCmdFlags struct {
	User      string
	CertFile  string
	KeyFile   string
	OutputDir string
}
