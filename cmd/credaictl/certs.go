package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/gagankishoreint-glitch/credai/pkg/tlsutil"
)

const (
	hostFlagName   = "host"
	outDirFlagName = "out"
)

func newDevCertsCmd() *cli.Command {
	return &cli.Command{
		Name:  "dev-certs",
		Usage: "Generate a development CA and server certificate for local TLS",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  hostFlagName,
				Usage: "Host name or IP the certificate is valid for, repeatable",
				Value: []string{"localhost", "127.0.0.1"},
			},
			&cli.StringFlag{
				Name:  outDirFlagName,
				Usage: "Output directory",
				Value: ".",
			},
		},
		Action: cmdDevCerts,
	}
}

func cmdDevCerts(_ context.Context, cmd *cli.Command) error {
	dir := cmd.String(outDirFlagName)
	if err := tlsutil.GenerateSelfSignedCert(cmd.StringSlice(hostFlagName), dir); err != nil {
		return fmt.Errorf("generating certificate: %w", err)
	}
	_, err := fmt.Fprintf(cmd.Root().Writer, "wrote ca.pem, server.pem and server-key.pem to %s\n", dir)
	return err
}
