package server

import (
	"github.com/philly/spacetraveling/internal/platform/eventbus"
	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/philly/spacetraveling/internal/posts/application"
)

// Tools is the service graph the command line tool works with.
type Tools struct {
	Config Config
	Logger logger.Logger
	Bus    *eventbus.Bus
	Posts  *application.PostsService
	Pages  *application.StaticPages
}
