package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/actors"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/actors/multisig"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/actors/paych"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bigint"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/message"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

// envelopeFlags are shared by every command that builds an outer message
func envelopeFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:     "from",
			Usage:    "Sender address",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "nonce",
			Usage: "Sender nonce",
		},
		&cli.Int64Flag{
			Name:  "gas-limit",
			Usage: "Gas limit",
		},
		&cli.StringFlag{
			Name:  "gas-fee-cap",
			Usage: "Gas fee cap in attoFIL",
			Value: "0",
		},
		&cli.StringFlag{
			Name:  "gas-premium",
			Usage: "Gas premium in attoFIL",
			Value: "0",
		},
	}, extra...)
}

func envelopeFromContext(c *cli.Context) (actors.Envelope, error) {
	from, err := parseAddress(c, "from")
	if err != nil {
		return actors.Envelope{}, err
	}
	feeCap, err := parseAmount(c, "gas-fee-cap")
	if err != nil {
		return actors.Envelope{}, err
	}
	premium, err := parseAmount(c, "gas-premium")
	if err != nil {
		return actors.Envelope{}, err
	}
	return actors.Envelope{
		From:       from,
		Nonce:      c.Uint64("nonce"),
		GasLimit:   c.Int64("gas-limit"),
		GasFeeCap:  feeCap,
		GasPremium: premium,
	}, nil
}

func parseAddress(c *cli.Context, flag string) (address.Address, error) {
	addr, _, err := address.DecodeAny(c.String(flag))
	if err != nil {
		return address.Undef, fmt.Errorf("--%s: %w", flag, err)
	}
	return addr, nil
}

func parseAmount(c *cli.Context, flag string) (bigint.BigInt, error) {
	v, err := bigint.FromString(c.String(flag))
	if err != nil {
		return bigint.BigInt{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return v, nil
}

func stringFlag(name, usage string, required bool) *cli.StringFlag {
	return &cli.StringFlag{Name: name, Usage: usage, Required: required}
}

func proposalFlags() []cli.Flag {
	return envelopeFlags(
		stringFlag("multisig", "Multisig wallet address", true),
		&cli.Int64Flag{Name: "txn-id", Usage: "Pending transaction id", Required: true},
		stringFlag("requester", "Address that proposed the transaction", true),
		stringFlag("to", "Proposal recipient", true),
		&cli.StringFlag{Name: "value", Usage: "Proposal value in attoFIL", Value: "0"},
		&cli.Uint64Flag{Name: "method", Usage: "Proposal method number"},
		stringFlag("params", "Base64 proposal params", false),
	)
}

func actorCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "msig-create",
			Usage: "Build the message that creates a multisig wallet",
			Flags: envelopeFlags(
				&cli.StringSliceFlag{Name: "signer", Usage: "Signer address, repeat for each signer", Required: true},
				&cli.StringFlag{Name: "value", Usage: "Initial balance in attoFIL", Value: "0"},
				&cli.Int64Flag{Name: "threshold", Usage: "Approvals required", Value: 1},
				&cli.Int64Flag{Name: "unlock-duration", Usage: "Vesting duration in epochs"},
			),
			Action: msigCreateCommand,
		},
		{
			Name:  "msig-propose",
			Usage: "Build a multisig proposal",
			Flags: envelopeFlags(
				stringFlag("multisig", "Multisig wallet address", true),
				stringFlag("to", "Recipient", true),
				&cli.StringFlag{Name: "value", Usage: "Value in attoFIL", Value: "0"},
				&cli.Uint64Flag{Name: "method", Usage: "Method number to call on the recipient"},
				stringFlag("params", "Base64 params for the call", false),
			),
			Action: msigProposeCommand,
		},
		{
			Name:   "msig-approve",
			Usage:  "Build an approval of a pending multisig transaction",
			Flags:  proposalFlags(),
			Action: msigTxnCommand(multisig.Approve),
		},
		{
			Name:   "msig-cancel",
			Usage:  "Build a cancellation of a pending multisig transaction",
			Flags:  proposalFlags(),
			Action: msigTxnCommand(multisig.Cancel),
		},
		{
			Name:  "paych-create",
			Usage: "Build the message that creates a payment channel",
			Flags: envelopeFlags(
				stringFlag("to", "Channel recipient", true),
				&cli.StringFlag{Name: "value", Usage: "Initial balance in attoFIL", Value: "0"},
			),
			Action: paychCreateCommand,
		},
		{
			Name:  "paych-update",
			Usage: "Build a channel state update from a signed voucher",
			Flags: envelopeFlags(
				stringFlag("channel", "Payment channel address", true),
				stringFlag("voucher", "Base64 signed voucher", true),
			),
			Action: paychUpdateCommand,
		},
		{
			Name:   "paych-settle",
			Usage:  "Build a settle message for a payment channel",
			Flags:  envelopeFlags(stringFlag("channel", "Payment channel address", true)),
			Action: paychChannelCommand(paych.Settle),
		},
		{
			Name:   "paych-collect",
			Usage:  "Build a collect message for a payment channel",
			Flags:  envelopeFlags(stringFlag("channel", "Payment channel address", true)),
			Action: paychChannelCommand(paych.Collect),
		},
		{
			Name:  "voucher-create",
			Usage: "Create an unsigned payment channel voucher",
			Flags: []cli.Flag{
				stringFlag("channel", "Payment channel address", true),
				&cli.StringFlag{Name: "amount", Usage: "Voucher amount in attoFIL", Required: true},
				&cli.Uint64Flag{Name: "lane", Usage: "Lane"},
				&cli.Uint64Flag{Name: "nonce", Usage: "Voucher nonce"},
				&cli.Int64Flag{Name: "time-lock-min", Usage: "Earliest epoch the voucher is valid"},
				&cli.Int64Flag{Name: "time-lock-max", Usage: "Latest epoch the voucher is valid, 0 for none"},
				&cli.Int64Flag{Name: "min-settle-height", Usage: "Minimum settle height"},
			},
			Action: voucherCreateCommand,
		},
		{
			Name:  "voucher-sign",
			Usage: "Sign a voucher",
			Flags: []cli.Flag{
				stringFlag("voucher", "Base64 voucher", true),
				stringFlag("private-key", "Private key as hex or base64", true),
				&cli.BoolFlag{Name: "bls", Usage: "Sign with a BLS key"},
			},
			Action: voucherSignCommand,
		},
		{
			Name:  "voucher-verify",
			Usage: "Verify the signature on a voucher",
			Flags: []cli.Flag{
				stringFlag("voucher", "Base64 signed voucher", true),
				stringFlag("signer", "Address expected to have signed", true),
			},
			Action: voucherVerifyCommand,
		},
	}
}

func printMessage(c *cli.Context, msg *message.UnsignedMessage) error {
	rt, err := loadSession(c)
	if err != nil {
		return err
	}
	return printJSON(c, message.ToAPI(msg, rt.network))
}

func msigCreateCommand(c *cli.Context) error {
	env, err := envelopeFromContext(c)
	if err != nil {
		return err
	}
	var signers []address.Address
	for _, s := range c.StringSlice("signer") {
		addr, _, err := address.DecodeAny(s)
		if err != nil {
			return fmt.Errorf("--signer %s: %w", s, err)
		}
		signers = append(signers, addr)
	}
	value, err := parseAmount(c, "value")
	if err != nil {
		return err
	}
	msg, err := multisig.Create(env, signers, value, c.Int64("threshold"), c.Int64("unlock-duration"))
	if err != nil {
		return fmt.Errorf("failed to build multisig create: %w", err)
	}
	return printMessage(c, msg)
}

func msigProposeCommand(c *cli.Context) error {
	env, err := envelopeFromContext(c)
	if err != nil {
		return err
	}
	msig, err := parseAddress(c, "multisig")
	if err != nil {
		return err
	}
	to, err := parseAddress(c, "to")
	if err != nil {
		return err
	}
	value, err := parseAmount(c, "value")
	if err != nil {
		return err
	}
	params, err := util.DecodeBase64(c.String("params"))
	if err != nil {
		return err
	}
	msg, err := multisig.Propose(env, msig, to, value, c.Uint64("method"), params)
	if err != nil {
		return fmt.Errorf("failed to build multisig proposal: %w", err)
	}
	return printMessage(c, msg)
}

type msigTxnBuilder func(actors.Envelope, address.Address, int64, multisig.Proposal) (*message.UnsignedMessage, error)

func msigTxnCommand(build msigTxnBuilder) cli.ActionFunc {
	return func(c *cli.Context) error {
		env, err := envelopeFromContext(c)
		if err != nil {
			return err
		}
		msig, err := parseAddress(c, "multisig")
		if err != nil {
			return err
		}
		requester, err := parseAddress(c, "requester")
		if err != nil {
			return err
		}
		to, err := parseAddress(c, "to")
		if err != nil {
			return err
		}
		value, err := parseAmount(c, "value")
		if err != nil {
			return err
		}
		params, err := util.DecodeBase64(c.String("params"))
		if err != nil {
			return err
		}
		msg, err := build(env, msig, c.Int64("txn-id"), multisig.Proposal{
			Requester: requester,
			To:        to,
			Value:     value,
			Method:    c.Uint64("method"),
			Params:    params,
		})
		if err != nil {
			return fmt.Errorf("failed to build multisig message: %w", err)
		}
		return printMessage(c, msg)
	}
}

func paychCreateCommand(c *cli.Context) error {
	env, err := envelopeFromContext(c)
	if err != nil {
		return err
	}
	to, err := parseAddress(c, "to")
	if err != nil {
		return err
	}
	value, err := parseAmount(c, "value")
	if err != nil {
		return err
	}
	msg, err := paych.Create(env, to, value)
	if err != nil {
		return fmt.Errorf("failed to build payment channel create: %w", err)
	}
	return printMessage(c, msg)
}

func paychUpdateCommand(c *cli.Context) error {
	env, err := envelopeFromContext(c)
	if err != nil {
		return err
	}
	channel, err := parseAddress(c, "channel")
	if err != nil {
		return err
	}
	msg, err := paych.Update(env, channel, c.String("voucher"))
	if err != nil {
		return fmt.Errorf("failed to build payment channel update: %w", err)
	}
	return printMessage(c, msg)
}

type paychChannelBuilder func(actors.Envelope, address.Address) (*message.UnsignedMessage, error)

func paychChannelCommand(build paychChannelBuilder) cli.ActionFunc {
	return func(c *cli.Context) error {
		env, err := envelopeFromContext(c)
		if err != nil {
			return err
		}
		channel, err := parseAddress(c, "channel")
		if err != nil {
			return err
		}
		msg, err := build(env, channel)
		if err != nil {
			return fmt.Errorf("failed to build payment channel message: %w", err)
		}
		return printMessage(c, msg)
	}
}

func voucherCreateCommand(c *cli.Context) error {
	channel, err := parseAddress(c, "channel")
	if err != nil {
		return err
	}
	amount, err := parseAmount(c, "amount")
	if err != nil {
		return err
	}
	voucher, err := paych.CreateVoucher(paych.VoucherOptions{
		Channel:         channel,
		TimeLockMin:     c.Int64("time-lock-min"),
		TimeLockMax:     c.Int64("time-lock-max"),
		Amount:          amount,
		Lane:            c.Uint64("lane"),
		Nonce:           c.Uint64("nonce"),
		MinSettleHeight: c.Int64("min-settle-height"),
	})
	if err != nil {
		return fmt.Errorf("failed to create voucher: %w", err)
	}
	return printJSON(c, map[string]string{"voucher": voucher})
}

func voucherSignCommand(c *cli.Context) error {
	priv, err := util.DecodePrivateKey(c.String("private-key"))
	if err != nil {
		return err
	}
	protocol := address.SECP256K1
	if c.Bool("bls") {
		protocol = address.BLS
	}
	voucher, err := paych.SignVoucher(c.String("voucher"), priv, protocol)
	if err != nil {
		return fmt.Errorf("failed to sign voucher: %w", err)
	}
	return printJSON(c, map[string]string{"voucher": voucher})
}

func voucherVerifyCommand(c *cli.Context) error {
	signerAddr, err := parseAddress(c, "signer")
	if err != nil {
		return err
	}
	ok, err := paych.VerifyVoucherSignature(c.String("voucher"), signerAddr)
	if err != nil {
		return fmt.Errorf("failed to verify voucher: %w", err)
	}
	return printJSON(c, map[string]bool{"valid": ok})
}
