package app

import (
	"fmt"

	"github.com/NoobYoup/amis-nextjs-sub001/pkg/media"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

// Config wires the application core's dependencies. Both are constructed at
// startup and injected; the core holds no process-global state.
type Config struct {
	Store store.Store
	Media media.Host
}

// App is the content service core: listing, category management, and
// media-backed writers for every resource type.
type App struct {
	store store.Store
	media media.Host
}

// New constructs the application core.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	if cfg.Media == nil {
		return nil, fmt.Errorf("media host required")
	}
	return &App{store: cfg.Store, media: cfg.Media}, nil
}
