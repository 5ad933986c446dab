package repl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nsqlite/nsqlite-mcp/internal/gateway"
)

// splitCommand splits input into the lowercased dot command, its first
// argument and everything after it.
func splitCommand(input string) (cmd, first, rest string) {
	cmd, args, _ := strings.Cut(strings.TrimSpace(input), " ")
	first, rest, _ = strings.Cut(strings.TrimSpace(args), " ")
	return strings.ToLower(cmd), first, strings.TrimSpace(rest)
}

// decodeArgs decodes every whitespace separated JSON value of s in order.
func decodeArgs(s string) ([]json.RawMessage, error) {
	dec := json.NewDecoder(strings.NewReader(s))

	values := []json.RawMessage{}
	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return values, nil
		}
		if err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		values = append(values, raw)
	}
}

func isObject(raw json.RawMessage) bool {
	return len(raw) > 0 && raw[0] == '{'
}

// parseFields decodes exactly n JSON objects from s.
func parseFields(s string, names ...string) ([]gateway.Fields, error) {
	values, err := decodeArgs(s)
	if err != nil {
		return nil, err
	}
	if len(values) != len(names) {
		return nil, fmt.Errorf("expected %s as JSON objects", strings.Join(names, " and "))
	}

	fields := make([]gateway.Fields, len(values))
	for i, raw := range values {
		if !isObject(raw) {
			return nil, fmt.Errorf("%s must be a JSON object", names[i])
		}
		if err := json.Unmarshal(raw, &fields[i]); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", names[i], err)
		}
	}
	return fields, nil
}

// parseReadOptions decodes "[conditions] [limit] [offset]".
func parseReadOptions(s string) (gateway.ReadOptions, error) {
	opts := gateway.ReadOptions{}

	values, err := decodeArgs(s)
	if err != nil {
		return opts, err
	}

	if len(values) > 0 && isObject(values[0]) {
		if err := json.Unmarshal(values[0], &opts.Conditions); err != nil {
			return opts, fmt.Errorf("invalid conditions: %w", err)
		}
		values = values[1:]
	}

	if len(values) > 2 {
		return opts, errors.New("too many arguments, expected [conditions] [limit] [offset]")
	}

	targets := []struct {
		name string
		dst  **int64
	}{
		{"limit", &opts.Limit},
		{"offset", &opts.Offset},
	}
	for i, raw := range values {
		var n int64
		if err := json.Unmarshal(raw, &n); err != nil {
			return opts, fmt.Errorf("%s must be an integer", targets[i].name)
		}
		*targets[i].dst = &n
	}

	return opts, nil
}
