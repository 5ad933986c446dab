package log

import "sort"

// KV is a map of key-value pairs to be attached to a log entry.
type KV map[string]any

// Namespaces used across nsqlite-mcp.
const (
	NsGateway = "gateway"
	NsTools   = "tools"
	NsServer  = "server"
	NsConsole = "console"
)

// kvToArgs converts the first KV into a flat slice of slog arguments with
// keys sorted alphabetically. Any extra KV is ignored.
func kvToArgs(keyVals ...KV) []any {
	if len(keyVals) == 0 {
		return []any{}
	}

	kv := keyVals[0]
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(kv)*2)
	for _, k := range keys {
		args = append(args, k, kv[k])
	}
	return args
}

// kvToArgsNs works like kvToArgs but prepends the namespace as the "ns" key.
func kvToArgsNs(namespace string, keyVals ...KV) []any {
	return append([]any{"ns", namespace}, kvToArgs(keyVals...)...)
}
