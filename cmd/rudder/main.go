// Package main implements the rudder command-line client.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/normation/rudder-cli/internal/dispatcher"
	"github.com/normation/rudder-cli/internal/logging"
	"github.com/normation/rudder-cli/pkg/api"
	"github.com/normation/rudder-cli/pkg/config"
)

// version is set at build time.
var version = "dev"

func main() {
	log := logging.New()
	if err := newRootCmd(log).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the documented exit status for its failure
// class.
func exitCode(err error) int {
	var ee *api.ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	switch {
	case errors.Is(err, config.ErrMissingURL):
		return api.ExitMissingURL
	case errors.Is(err, config.ErrMissingToken):
		return api.ExitMissingToken
	}
	return 1
}

func newRootCmd(log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rudder <object> <command> [<id>]",
		Short: "Command-line client for the Rudder REST API",
		Long: `rudder drives a Rudder server through its REST API.

Objects: rule(s), directive(s), group(s), node(s), parameter(s),
change_request(s).

Commands: list, get, create, update, delete, clone. Groups also accept
reload, nodes accept status, and change requests accept decline.

Commands other than list, get and delete read their parameters as a JSON
document on standard input.`,
		Version:       version,
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObject(cmd, args, log)
		},
	}

	addConnectionFlags(cmd)
	cmd.AddCommand(newAPICmd(log))

	return cmd
}

// addConnectionFlags declares the options shared by both grammar forms.
// Defaults stay empty so an unset flag never shadows a config-file value;
// the real defaults live in the config resolver.
func addConnectionFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP(config.KeyConfFile, "f", "", "configuration file (default ~/.rudder)")
	pf.StringP(config.KeyURL, "u", "", "base URL of the API server")
	pf.StringP(config.KeyToken, "t", "", "API token")
	pf.StringP(config.KeyCA, "a", "", "CA certificate bundle used to verify the server")
	pf.Bool(config.KeySkipVerify, false, "disable TLS certificate verification")
	pf.StringP(config.KeyProxy, "p", "", "proxy used to reach the server")
	pf.String(config.KeyTimeout, "", "request timeout in seconds (default 5)")
	pf.BoolP(config.KeyRaw, "r", false, "print the raw response body")
	pf.String(config.KeyReason, "", "audit reason for the change")
	pf.String(config.KeyCRName, "", "change request name")
	pf.String(config.KeyCRDescription, "", "change request description")
}

func newAPICmd(log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "api <method> <api_url>",
		Short: "Call an arbitrary API path directly",
		Long: `api sends a single request to the given API path, bypassing the
object/command mapping. POST and PUT read the request body from standard
input and forward it verbatim. The response is always printed raw.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eff, err := config.Resolve(cmd.Flags(), true)
			if err != nil {
				return err
			}
			req := dispatcher.Request{Generic: true, Method: args[0], APIURL: args[1]}
			return dispatcher.New(eff, os.Stdin, os.Stdout, log).Run(req)
		},
	}
}

func runObject(cmd *cobra.Command, args []string, log zerolog.Logger) error {
	eff, err := config.Resolve(cmd.Flags(), false)
	if err != nil {
		return err
	}
	req := dispatcher.Request{Object: args[0], Command: args[1]}
	if len(args) == 3 {
		req.ID = args[2]
	}
	return dispatcher.New(eff, os.Stdin, os.Stdout, log).Run(req)
}
