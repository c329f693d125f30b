package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   bool
	}{
		{name: "list_rules", method: "GET", path: "/api/latest/rules"},
		{name: "list_rule", method: "GET", path: "/api/latest/rules"},
		{name: "get_rule", method: "GET", path: "/api/latest/rules/{id}"},
		{name: "delete_directive", method: "DELETE", path: "/api/latest/directives/{id}"},
		{name: "create_rule", method: "PUT", path: "/api/latest/rules", body: true},
		{name: "update_node", method: "POST", path: "/api/latest/nodes/{id}", body: true},
		{name: "clone_group", method: "PUT", path: "/api/latest/groups/{id}", body: true},
		{name: "list_node", method: "GET", path: "/api/latest/nodes"},
		{name: "list_parameters", method: "GET", path: "/api/latest/parameters"},
		{name: "list_change_requests", method: "GET", path: "/api/latest/changeRequests"},
		{name: "get_change_request", method: "GET", path: "/api/latest/changeRequests/{id}"},
		{name: "reload_group", method: "POST", path: "/api/latest/groups/{id}/reload"},
		{name: "status_node", method: "GET", path: "/api/latest/nodes/{id}/status"},
		{name: "decline_change_request", method: "DELETE", path: "/api/latest/changeRequests/{id}", body: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.method, op.Method)
			assert.Equal(t, tt.path, op.Path)
			assert.Equal(t, tt.body, op.Body)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	names := []string{
		"frob_rules",          // unknown command
		"list_widgets",        // unknown object
		"reload_node",         // reload only exists for groups
		"status_rule",         // status only exists for nodes
		"decline_rule",        // decline only exists for change requests
		"list",                // no object part
		"",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			_, err := Lookup(name)
			var ee *ExitError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, ExitUnknownOperation, ee.Code)
		})
	}
}

func TestBind(t *testing.T) {
	t.Run("id substituted into path", func(t *testing.T) {
		op, err := Lookup("get_rule")
		require.NoError(t, err)

		path, rest, err := op.bind("get_rule", map[string]any{"id": "abc-123"})
		require.NoError(t, err)
		assert.Equal(t, "/api/latest/rules/abc-123", path)
		assert.Empty(t, rest)
	})

	t.Run("missing required id", func(t *testing.T) {
		op, err := Lookup("get_rule")
		require.NoError(t, err)

		_, _, err = op.bind("get_rule", map[string]any{})
		var ee *ExitError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, ExitBadObjectParams, ee.Code)
		assert.Contains(t, ee.Msg, "get_rule")
	})

	t.Run("unexpected id on list", func(t *testing.T) {
		op, err := Lookup("list_rules")
		require.NoError(t, err)

		_, _, err = op.bind("list_rules", map[string]any{"id": "abc"})
		var ee *ExitError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, ExitBadObjectParams, ee.Code)
	})

	t.Run("extra parameters kept for body operations", func(t *testing.T) {
		op, err := Lookup("create_rule")
		require.NoError(t, err)

		path, rest, err := op.bind("create_rule", map[string]any{"displayName": "x", "enabled": true})
		require.NoError(t, err)
		assert.Equal(t, "/api/latest/rules", path)
		assert.Equal(t, map[string]any{"displayName": "x", "enabled": true}, rest)
	})

	t.Run("extra parameters rejected without a body", func(t *testing.T) {
		op, err := Lookup("status_node")
		require.NoError(t, err)

		_, _, err = op.bind("status_node", map[string]any{"id": "n1", "verbose": true})
		var ee *ExitError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, ExitBadObjectParams, ee.Code)
		assert.Contains(t, ee.Msg, "verbose")
	})

	t.Run("id escaped in path", func(t *testing.T) {
		op, err := Lookup("get_node")
		require.NoError(t, err)

		path, _, err := op.bind("get_node", map[string]any{"id": "a/b"})
		require.NoError(t, err)
		assert.Equal(t, "/api/latest/nodes/a%2Fb", path)
	})
}
