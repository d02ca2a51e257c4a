package application

import (
	"github.com/google/wire"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

// ProviderSet is the wire provider set for the posts application layer
var ProviderSet = wire.NewSet(
	NewQueryAdjacentFinder,
	wire.Bind(new(ports.AdjacentFinder), new(*QueryAdjacentFinder)),
	NewPostsService,
	NewStaticPages,
)
