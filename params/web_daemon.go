package params

type WebDaemonConfig struct {
	ListenerConfig
	DataDir string
	Map     *MapConfig
	Layers  *LayerConfig

	// Upload stored layers to AWS_BUCKETNAME too.
	UploadS3 bool
}

func DefaultWebListenerConfig() ListenerConfig {
	return ListenerConfig{
		Network: "tcp",
		Address: "localhost:3000",
	}
}

func DefaultWebDaemonConfig() *WebDaemonConfig {
	return &WebDaemonConfig{
		DataDir:        DefaultDatadirRoot,
		ListenerConfig: DefaultWebListenerConfig(),
		Map:            InProcMapConfig,
		Layers:         DefaultLayerConfig(),
	}
}

func DefaultTestWebDaemonConfig() *WebDaemonConfig {
	return &WebDaemonConfig{
		DataDir: "",
		ListenerConfig: ListenerConfig{
			Network: "tcp",
			Address: "localhost:3333",
		},
		Map:    DefaultMapConfig(),
		Layers: DefaultLayerConfig(),
	}
}
