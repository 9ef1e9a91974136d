package config

// DefaultPort is the relay port used when none is configured.
const DefaultPort = 4280

// Defaults returns the built-in configuration values, applied before any
// file or environment layer.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"default_provider":         "",
		"remote.host":              "",
		"remote.port":              DefaultPort,
		"remote.token":             "",
		"remote.timeout_ms":        2000,
		"remote.retries":           2,
		"remote.retry_delay_ms":    200,
		"remote.fallback_to_local": true,
		"listener.bind":            "127.0.0.1",
		"listener.port":            DefaultPort,
		"listener.token":           "",
		"listener.require_token":   true,
		"listener.prefix_hostname": true,
		"listener.on_click":        "",
	}
}

// Template is the config file written by 'wakedev init'. Values mirror the
// defaults so a fresh file is a working no-op.
const Template = `{
  "default_provider": "",
  "remote": {
    "host": "",
    "port": 4280,
    "token": "",
    "timeout_ms": 2000,
    "retries": 2,
    "retry_delay_ms": 200,
    "fallback_to_local": true
  },
  "listener": {
    "bind": "127.0.0.1",
    "port": 4280,
    "token": "",
    "require_token": true,
    "prefix_hostname": true,
    "allow_hosts": [],
    "on_click": ""
  },
  "sources": {
    "claude": { "display_name": "Claude Code" },
    "codex": { "display_name": "Codex" }
  }
}
`
