package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/ledger"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/transport"
)

func ledgerCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "ledger-address",
			Usage: "Read the secp256k1 address at --path from a hardware wallet",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "confirm", Usage: "Show the address on the device and wait for approval"},
			},
			Action: ledgerAddressCommand,
		},
		{
			Name:  "ledger-sign",
			Usage: "Sign an unsigned message on a hardware wallet",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "message",
					Usage:    "Unsigned message JSON",
					Required: true,
				},
			},
			Action: ledgerSignCommand,
		},
	}
}

func openLedger(c *cli.Context) (*ledger.App, ledger.BIP44Path, *session, error) {
	rt, err := loadSession(c)
	if err != nil {
		return nil, ledger.BIP44Path{}, nil, err
	}
	path, err := ledger.ParseBIP44Path(rt.cfg.DerivationPath)
	if err != nil {
		return nil, ledger.BIP44Path{}, nil, err
	}
	exchanger := transport.NewTCPExchanger(rt.cfg.LedgerAddress, transport.DefaultRetryConfig, rt.logger)
	app := ledger.NewApp(exchanger, rt.logger)

	version, err := app.GetVersion(c.Context)
	if err != nil {
		_ = app.Close()
		return nil, ledger.BIP44Path{}, nil, fmt.Errorf("failed to reach the Filecoin app: %w", err)
	}
	rt.logger.Sugar().Infow("Connected to device",
		"addr", rt.cfg.LedgerAddress,
		"version", fmt.Sprintf("%d.%d.%d", version.Major, version.Minor, version.Patch),
	)
	return app, path, rt, nil
}

func ledgerAddressCommand(c *cli.Context) error {
	app, path, rt, err := openLedger(c)
	if err != nil {
		return err
	}
	defer app.Close()

	addr, err := app.GetAddressSecp256k1(c.Context, path, c.Bool("confirm"))
	if err != nil {
		return fmt.Errorf("failed to read address: %w", err)
	}
	return printJSON(c, map[string]string{
		"path":       path.String(),
		"public_key": hexutil.Encode(addr.PublicKey),
		"address":    addr.Address.Encode(rt.network),
	})
}

func ledgerSignCommand(c *cli.Context) error {
	msg, err := parseMessageJSON(c.String("message"))
	if err != nil {
		return err
	}
	app, path, rt, err := openLedger(c)
	if err != nil {
		return err
	}
	defer app.Close()

	signed, err := app.SignMessage(c.Context, path, msg)
	if err != nil {
		return fmt.Errorf("failed to sign on device: %w", err)
	}
	return printSigned(c, signed, rt)
}
