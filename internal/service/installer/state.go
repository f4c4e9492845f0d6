package installer

// InstallState accumulates the env vars the wizard collects. Steps
// write into EnvVars; the persistence step turns the map into .env.
type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}
