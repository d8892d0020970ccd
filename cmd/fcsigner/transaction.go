package main

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ipfs/go-cid"
	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/crypto"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/message"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/signer"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

type signedOutput struct {
	Message message.SignedMessageAPI `json:"signed_message"`
	Hex     string                   `json:"hex"`
	Cid     string                   `json:"cid"`
}

func transactionCommands() []*cli.Command {
	messageFlag := &cli.StringFlag{
		Name:     "message",
		Usage:    `Unsigned message JSON: {"to","from","nonce","value","gaslimit","gasfeecap","gaspremium","method","params"}`,
		Required: true,
	}
	hexFlag := &cli.StringFlag{
		Name:     "hex",
		Usage:    "Hex encoded CBOR message",
		Required: true,
	}
	privateKeyFlag := &cli.StringFlag{
		Name:     "private-key",
		Usage:    "Private key as hex or base64",
		Required: true,
	}

	return []*cli.Command{
		{
			Name:   "create",
			Usage:  "Serialize an unsigned message to hex CBOR",
			Flags:  []cli.Flag{messageFlag},
			Action: createCommand,
		},
		{
			Name:   "parse",
			Usage:  "Decode a hex CBOR message, signed or unsigned",
			Flags:  []cli.Flag{hexFlag},
			Action: parseCommand,
		},
		{
			Name:   "sign",
			Usage:  "Sign an unsigned message",
			Flags:  []cli.Flag{messageFlag, privateKeyFlag},
			Action: signCommand,
		},
		{
			Name:  "verify",
			Usage: "Verify a signature over a hex CBOR unsigned message",
			Flags: []cli.Flag{
				hexFlag,
				&cli.StringFlag{
					Name:     "signature",
					Usage:    "Hex encoded signature: type byte followed by the signature data",
					Required: true,
				},
			},
			Action: verifyCommand,
		},
		{
			Name:   "cid",
			Usage:  "Compute the CID of a hex CBOR message",
			Flags:  []cli.Flag{hexFlag},
			Action: cidCommand,
		},
	}
}

func parseMessageJSON(s string) (*message.UnsignedMessage, error) {
	var api message.UnsignedMessageAPI
	if err := json.Unmarshal([]byte(s), &api); err != nil {
		return nil, fmt.Errorf("failed to decode message JSON: %w", err)
	}
	return message.FromAPI(api)
}

func createCommand(c *cli.Context) error {
	msg, err := parseMessageJSON(c.String("message"))
	if err != nil {
		return err
	}
	raw, err := msg.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize message: %w", err)
	}
	return printJSON(c, map[string]string{"hex": hexutil.Encode(raw)})
}

func parseCommand(c *cli.Context) error {
	rt, err := loadSession(c)
	if err != nil {
		return err
	}
	raw, err := util.DecodeHex(c.String("hex"))
	if err != nil {
		return err
	}
	msg, err := message.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse message: %w", err)
	}
	return printJSON(c, message.MessageToAPI(msg, rt.network))
}

func signCommand(c *cli.Context) error {
	rt, err := loadSession(c)
	if err != nil {
		return err
	}
	msg, err := parseMessageJSON(c.String("message"))
	if err != nil {
		return err
	}
	priv, err := util.DecodePrivateKey(c.String("private-key"))
	if err != nil {
		return err
	}
	signed, err := signer.SignTransaction(msg, priv)
	if err != nil {
		return fmt.Errorf("failed to sign message: %w", err)
	}
	return printSigned(c, signed, rt)
}

func printSigned(c *cli.Context, signed *message.SignedMessage, rt *session) error {
	raw, err := signed.Serialize()
	if err != nil {
		return err
	}
	id, err := signed.Cid()
	if err != nil {
		return err
	}
	return printJSON(c, signedOutput{
		Message: message.SignedToAPI(signed, rt.network),
		Hex:     hexutil.Encode(raw),
		Cid:     id.String(),
	})
}

func verifyCommand(c *cli.Context) error {
	raw, err := util.DecodeHex(c.String("hex"))
	if err != nil {
		return err
	}
	sigBytes, err := util.DecodeHex(c.String("signature"))
	if err != nil {
		return err
	}
	sig, err := crypto.SignatureFromBytes(sigBytes)
	if err != nil {
		return err
	}
	ok, err := signer.Verify(sig, raw)
	if err != nil {
		return fmt.Errorf("failed to verify signature: %w", err)
	}
	return printJSON(c, map[string]bool{"valid": ok})
}

func cidCommand(c *cli.Context) error {
	raw, err := util.DecodeHex(c.String("hex"))
	if err != nil {
		return err
	}
	msg, err := message.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse message: %w", err)
	}

	var id cid.Cid
	switch m := msg.(type) {
	case *message.SignedMessage:
		id, err = m.Cid()
	case *message.UnsignedMessage:
		id, err = m.Cid()
	default:
		err = fmt.Errorf("unexpected message type %T", msg)
	}
	if err != nil {
		return err
	}
	return printJSON(c, map[string]string{"cid": id.String()})
}
