package prismic

import (
	"github.com/google/wire"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

// ProviderSet is the wire provider set for the CMS client.
var ProviderSet = wire.NewSet(
	NewClient,
	wire.Bind(new(ports.ContentBackend), new(*Client)),
)
