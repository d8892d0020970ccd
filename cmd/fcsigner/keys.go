package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/keys"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

type keyOutput struct {
	PrivateKeyBase64       string `json:"private_base64"`
	PrivateKeyHex          string `json:"private_hexstring"`
	PublicKeyHex           string `json:"public_hexstring"`
	PublicKeyCompressedHex string `json:"public_compressed_hexstring,omitempty"`
	Address                string `json:"address"`
}

func newKeyOutput(k *keys.ExtendedKey) (*keyOutput, error) {
	out := &keyOutput{
		PrivateKeyBase64: util.EncodeBase64(k.PrivateKey),
		PrivateKeyHex:    hexutil.Encode(k.PrivateKey),
		PublicKeyHex:     hexutil.Encode(k.PublicKey),
		Address:          k.AddressString(),
	}
	if k.Protocol() == address.SECP256K1 {
		compressed, err := k.PublicKeyCompressed()
		if err != nil {
			return nil, err
		}
		out.PublicKeyCompressedHex = hexutil.Encode(compressed)
	}
	return out, nil
}

func keyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "mnemonic",
			Usage:  "Generate a 24 word mnemonic",
			Action: mnemonicCommand,
		},
		{
			Name:  "derive",
			Usage: "Derive a secp256k1 key from a mnemonic",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "mnemonic",
					Usage:    "BIP39 mnemonic",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "passphrase",
					Usage: "Optional BIP39 passphrase",
				},
			},
			Action: deriveCommand,
		},
		{
			Name:  "recover",
			Usage: "Recover the public key and address of a private key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "private-key",
					Usage:    "Private key as hex or base64",
					Required: true,
				},
				&cli.BoolFlag{
					Name:  "bls",
					Usage: "Treat the key as a BLS key",
				},
			},
			Action: recoverCommand,
		},
		{
			Name:   "generate-bls",
			Usage:  "Generate a random BLS key",
			Action: generateBLSCommand,
		},
	}
}

func mnemonicCommand(c *cli.Context) error {
	mnemonic, err := keys.GenerateMnemonic()
	if err != nil {
		return fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return printJSON(c, map[string]string{"mnemonic": mnemonic})
}

func generateBLSCommand(c *cli.Context) error {
	rt, err := loadSession(c)
	if err != nil {
		return err
	}
	k, err := keys.GenerateBLS(rt.network)
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	out, err := newKeyOutput(k)
	if err != nil {
		return err
	}
	return printJSON(c, out)
}

func deriveCommand(c *cli.Context) error {
	rt, err := loadSession(c)
	if err != nil {
		return err
	}
	k, err := keys.Derive(c.String("mnemonic"), rt.cfg.DerivationPath, c.String("passphrase"))
	if err != nil {
		return fmt.Errorf("failed to derive key: %w", err)
	}
	out, err := newKeyOutput(k)
	if err != nil {
		return err
	}
	return printJSON(c, out)
}

func recoverCommand(c *cli.Context) error {
	rt, err := loadSession(c)
	if err != nil {
		return err
	}
	priv, err := util.DecodePrivateKey(c.String("private-key"))
	if err != nil {
		return err
	}

	var k *keys.ExtendedKey
	if c.Bool("bls") {
		k, err = keys.RecoverBLS(priv, rt.network)
	} else {
		k, err = keys.Recover(priv, rt.network)
	}
	if err != nil {
		return fmt.Errorf("failed to recover key: %w", err)
	}
	out, err := newKeyOutput(k)
	if err != nil {
		return err
	}
	return printJSON(c, out)
}
