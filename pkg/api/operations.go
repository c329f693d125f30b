package api

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// apiPrefix is the versioned base path all operations live under.
const apiPrefix = "/api/latest"

// Operation describes one named API operation: the HTTP method, the path
// template relative to the base URL, and the parameter shape it accepts.
// An operation whose path contains {id} requires the id parameter; one
// whose Body flag is set accepts arbitrary extra parameters, sent as the
// JSON request body.
type Operation struct {
	Method string
	Path   string
	Body   bool
}

// NeedsID reports whether the operation targets a single object.
func (op Operation) NeedsID() bool {
	return strings.Contains(op.Path, "{id}")
}

// collections maps every accepted object spelling to its REST collection.
var collections = map[string]string{
	"rule":            "rules",
	"rules":           "rules",
	"directive":       "directives",
	"directives":      "directives",
	"group":           "groups",
	"groups":          "groups",
	"node":            "nodes",
	"nodes":           "nodes",
	"parameter":       "parameters",
	"parameters":      "parameters",
	"change_request":  "changeRequests",
	"change_requests": "changeRequests",
}

// action describes how a command maps onto a collection endpoint.
type action struct {
	Method  string
	NeedsID bool
	Suffix  string
	Body    bool
}

// commonActions apply to every object type.
var commonActions = map[string]action{
	"list":   {Method: "GET"},
	"get":    {Method: "GET", NeedsID: true},
	"delete": {Method: "DELETE", NeedsID: true},
	"create": {Method: "PUT", Body: true},
	"update": {Method: "POST", NeedsID: true, Body: true},
	"clone":  {Method: "PUT", NeedsID: true, Body: true},
}

// extraActions are object-specific commands beyond the common set.
var extraActions = map[string]map[string]action{
	"groups": {
		"reload": {Method: "POST", NeedsID: true, Suffix: "/reload"},
	},
	"nodes": {
		"status": {Method: "GET", NeedsID: true, Suffix: "/status"},
	},
	"changeRequests": {
		"decline": {Method: "DELETE", NeedsID: true, Body: true},
	},
}

// Lookup resolves an operation name of the form <command>_<object>.
// A miss is reported as an unknown-operation error.
func Lookup(name string) (Operation, error) {
	command, object, ok := strings.Cut(name, "_")
	if !ok {
		return Operation{}, unknownOperation(name)
	}
	collection, ok := collections[object]
	if !ok {
		return Operation{}, unknownOperation(name)
	}

	act, ok := commonActions[command]
	if !ok {
		act, ok = extraActions[collection][command]
	}
	if !ok {
		return Operation{}, unknownOperation(name)
	}

	path := apiPrefix + "/" + collection
	if act.NeedsID {
		path += "/{id}"
	}
	path += act.Suffix

	return Operation{Method: act.Method, Path: path, Body: act.Body}, nil
}

// bind validates params against the operation's declared shape and splits
// them into the request path and the remaining parameters. A mismatch is
// reported as a wrong-parameter error naming the operation.
func (op Operation) bind(name string, params map[string]any) (string, map[string]any, error) {
	id, hasID := params["id"]
	if op.NeedsID() && !hasID {
		return "", nil, wrongParameter(name, "an id is required")
	}
	if !op.NeedsID() && hasID {
		return "", nil, wrongParameter(name, "it does not take an id")
	}

	path := op.Path
	if hasID {
		path = strings.Replace(path, "{id}", url.PathEscape(fmt.Sprint(id)), 1)
	}

	rest := make(map[string]any, len(params))
	for key, value := range params {
		if key != "id" {
			rest[key] = value
		}
	}
	if len(rest) > 0 && !op.Body {
		keys := make([]string, 0, len(rest))
		for key := range rest {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return "", nil, wrongParameter(name, fmt.Sprintf("unexpected parameter %q", keys[0]))
	}

	return path, rest, nil
}
