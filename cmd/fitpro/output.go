package main

import (
	"encoding/json"
	"fmt"

	"github.com/2beens/fitpro/internal/api"

	"github.com/urfave/cli/v2"
)

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printf(c *cli.Context, format string, args ...any) {
	_, _ = fmt.Fprintf(c.App.Writer, format, args...)
}

// userMessage turns an API error into the text shown to the user.
func userMessage(err error) error {
	if err == nil {
		return nil
	}
	if apiErr, ok := api.AsError(err); ok {
		return cli.Exit(api.MessageOf(apiErr, api.MessageUnknownError), 1)
	}
	return err
}
