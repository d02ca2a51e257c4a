package rest

// Server groups the handlers the router mounts.
type Server struct {
	Health  *HealthHandler
	Posts   *PostsHandler
	Preview *PreviewHandler
	Admin   *AdminHandler
}

// NewServer creates a new server
func NewServer(
	health *HealthHandler,
	posts *PostsHandler,
	preview *PreviewHandler,
	admin *AdminHandler,
) *Server {
	return &Server{
		Health:  health,
		Posts:   posts,
		Preview: preview,
		Admin:   admin,
	}
}
