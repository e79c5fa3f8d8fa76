package remind

import (
	"context"

	"github.com/circadianhq/circadian/internal/server"
)

type Querier interface {
	ListAnchors(ctx context.Context) ([]server.AnchorView, error)
}
