package signer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/message"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
)

// SignBatch signs msgs[i] with privateKeys[i] concurrently. Results keep the
// input order; the first failure cancels the remaining work and is returned.
func SignBatch(ctx context.Context, msgs []*message.UnsignedMessage, privateKeys [][]byte) ([]*message.SignedMessage, error) {
	if len(msgs) != len(privateKeys) {
		return nil, types.NewError(types.KindMalformedInput, "%d messages but %d private keys", len(msgs), len(privateKeys))
	}

	signed := make([]*message.SignedMessage, len(msgs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range msgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sm, err := SignTransaction(msgs[i], privateKeys[i])
			if err != nil {
				return err
			}
			signed[i] = sm
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return signed, nil
}
