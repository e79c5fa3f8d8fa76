package remind

import (
	"context"

	"github.com/circadianhq/circadian/internal/server"
)

type mockClient struct {
	anchors []server.AnchorView
	err     error
}

func (m *mockClient) ListAnchors(ctx context.Context) ([]server.AnchorView, error) {
	return m.anchors, m.err
}

var _ Querier = (*mockClient)(nil)
