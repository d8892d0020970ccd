package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/config"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "fcsigner",
		Usage: "Offline Filecoin transaction signer",
		Description: `Derives keys, builds and signs messages and actor calls without talking to a node.

Messages are exchanged as JSON on the command line and as hex encoded CBOR.
Private keys are accepted as hex or base64.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "network",
				Usage:   "Address network: " + config.GetSupportedNetworksString(),
				Value:   config.NetworkName_Testnet.String(),
				EnvVars: []string{config.EnvSignerNetwork},
			},
			&cli.StringFlag{
				Name:    "path",
				Usage:   "BIP44 derivation path (defaults to the network's path)",
				EnvVars: []string{config.EnvSignerDerivationPath},
			},
			&cli.StringFlag{
				Name:    "ledger-addr",
				Usage:   "host:port of a hardware wallet emulator",
				Value:   "127.0.0.1:9999",
				EnvVars: []string{config.EnvSignerLedgerAddr},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				EnvVars: []string{config.EnvSignerDebug},
			},
		},
		Commands: commands(),
	}
}

func commands() []*cli.Command {
	var all []*cli.Command
	all = append(all, keyCommands()...)
	all = append(all, transactionCommands()...)
	all = append(all, actorCommands()...)
	return append(all, ledgerCommands()...)
}

// session bundles what every command needs from the global flags
type session struct {
	cfg     *config.SignerConfig
	network address.Network
	logger  *zap.Logger
}

func loadSession(c *cli.Context) (*session, error) {
	cfg := &config.SignerConfig{
		Network:        config.NetworkName(c.String("network")),
		DerivationPath: c.String("path"),
		LedgerAddress:  c.String("ledger-addr"),
		Debug:          c.Bool("debug"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	network, err := cfg.AddressNetwork()
	if err != nil {
		return nil, err
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &session{cfg: cfg, network: network, logger: l}, nil
}

// printJSON writes v to the app's writer
func printJSON(c *cli.Context, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}
