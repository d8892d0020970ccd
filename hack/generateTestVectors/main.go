package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bigint"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/keys"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/logger"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/message"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/signer"
)

// recipient of every generated message
const recipient = "t17uoq6tp427uzv7fztkbsnn64iwotfrristwpryy"

type testCase struct {
	PublicKey  string                     `json:"pk"`
	PrivateKey string                     `json:"sk"`
	Signature  string                     `json:"sig"`
	Message    message.UnsignedMessageAPI `json:"message"`
}

func main() {
	app := &cli.App{
		Name:  "generateTestVectors",
		Usage: "Generate BLS signing test cases",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "count",
				Usage: "Number of test cases",
				Value: 10,
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output file",
				Value: "generated_test_cases.json",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("debug")})
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			cases, err := generate(c.Context, c.Int("count"), l)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(cases, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode test cases: %w", err)
			}
			if err := os.WriteFile(c.String("output"), out, 0644); err != nil {
				return fmt.Errorf("failed to write to file: %w", err)
			}
			l.Sugar().Infow("Wrote test cases", "output", c.String("output"), "count", len(cases))
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// generate creates count random BLS keys and signs one message from each
func generate(ctx context.Context, count int, l *zap.Logger) ([]testCase, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	runID := uuid.New().String()
	l = logger.OrNop(l).With(zap.String("runId", runID))
	l.Sugar().Infow("Generating test cases", "count", count)

	to, err := address.Decode(recipient, address.Testnet)
	if err != nil {
		return nil, err
	}

	generated := make([]*keys.ExtendedKey, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range generated {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			k, err := keys.GenerateBLS(address.Testnet)
			if err != nil {
				return err
			}
			generated[i] = k
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to generate keys: %w", err)
	}

	msgs := make([]*message.UnsignedMessage, count)
	privateKeys := make([][]byte, count)
	for i, k := range generated {
		msgs[i] = &message.UnsignedMessage{
			To:         to,
			From:       k.Address,
			Nonce:      1,
			Value:      bigint.FromUint64(100000),
			GasLimit:   25000,
			GasFeeCap:  bigint.FromUint64(2500),
			GasPremium: bigint.FromUint64(2500),
			Method:     0,
		}
		privateKeys[i] = k.PrivateKey
	}

	signed, err := signer.SignBatch(ctx, msgs, privateKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to sign messages: %w", err)
	}

	cases := make([]testCase, count)
	for i, sm := range signed {
		cases[i] = testCase{
			PublicKey:  hexutil.Encode(generated[i].PublicKey),
			PrivateKey: hexutil.Encode(generated[i].PrivateKey),
			Signature:  hexutil.Encode(sm.Signature.Data),
			Message:    message.ToAPI(msgs[i], address.Testnet),
		}
		l.Sugar().Debugw("Generated test case", "index", i, "from", cases[i].Message.From)
	}
	return cases, nil
}
