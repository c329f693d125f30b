// Package dispatcher turns a parsed command line into the single API call
// an invocation performs and renders its result.
package dispatcher

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/normation/rudder-cli/pkg/api"
	"github.com/normation/rudder-cli/pkg/config"
	"github.com/normation/rudder-cli/pkg/output"
)

// Request is the call selected by the command-line grammar: either the
// generic `api <method> <url>` form or the `<object> <command> [id]`
// form. Exactly one of the two is active.
type Request struct {
	Generic bool
	Method  string
	APIURL  string

	Object  string
	Command string
	ID      string
}

// Dispatcher owns the API client for the duration of one invocation.
type Dispatcher struct {
	cfg   *config.Effective
	stdin io.Reader
	out   io.Writer
	log   zerolog.Logger
}

// New builds a dispatcher reading request bodies from stdin and printing
// results to out.
func New(cfg *config.Effective, stdin io.Reader, out io.Writer, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{cfg: cfg, stdin: stdin, out: out, log: log}
}

// Run performs the call described by req and prints the response.
func (d *Dispatcher) Run(req Request) error {
	client := api.New(api.Config{
		BaseURL:    d.cfg.URL,
		Token:      d.cfg.Token,
		Timeout:    d.cfg.Timeout,
		Proxy:      d.cfg.Proxy,
		HasProxy:   d.cfg.HasProxy,
		SkipVerify: !d.cfg.Verify.Enabled,
		CAFile:     d.cfg.Verify.CAFile,
	}, d.log)
	defer client.Close()

	var body string
	var err error
	if req.Generic {
		body, err = d.generic(client, req)
	} else {
		body, err = d.object(client, req)
	}
	if err != nil {
		return err
	}

	return output.Print(d.out, body, d.cfg.Raw)
}

// generic performs the `api <method> <url>` form. POST and PUT mutate
// state: the request body is read from stdin and forwarded verbatim, and
// any configured change-request metadata is attached.
func (d *Dispatcher) generic(client *api.Client, req Request) (string, error) {
	method := strings.ToUpper(req.Method)

	var payload string
	var change api.ChangeInfo
	if method == "POST" || method == "PUT" {
		raw, err := io.ReadAll(d.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read request body from stdin: %w", err)
		}
		payload = string(raw)
		if d.cfg.ChangeInfo() {
			change = api.ChangeInfo{
				Reason:      d.cfg.Reason,
				Name:        d.cfg.CRName,
				Description: d.cfg.CRDescription,
			}
		}
	}

	return client.Generic(method, req.APIURL, payload, change)
}

// object performs the `<object> <command> [id]` form. Commands other than
// list, get and delete take their parameters as a JSON document on stdin,
// merged at the top level into the call's parameter map.
func (d *Dispatcher) object(client *api.Client, req Request) (string, error) {
	name := req.Command + "_" + req.Object

	params := make(map[string]any)
	if req.ID != "" {
		params["id"] = req.ID
	}

	switch req.Command {
	case "list", "get", "delete":
		// no parameters beyond the id
	default:
		raw, err := io.ReadAll(d.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read parameters from stdin: %w", err)
		}
		var extra map[string]any
		if err := json.Unmarshal(raw, &extra); err != nil {
			return "", fmt.Errorf("failed to parse parameters from stdin as JSON: %w", err)
		}
		for key, value := range extra {
			params[key] = value
		}
	}

	return client.Call(name, params)
}
