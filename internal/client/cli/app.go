package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/accion2025/buencuidar/internal/client/careplan"
	"github.com/accion2025/buencuidar/internal/client/config"
	"github.com/accion2025/buencuidar/internal/client/jobs"
	"github.com/accion2025/buencuidar/internal/client/services"
	"github.com/accion2025/buencuidar/internal/client/store"
	"github.com/accion2025/buencuidar/internal/client/uploads"
	"github.com/accion2025/buencuidar/internal/logging"
	"github.com/accion2025/buencuidar/internal/remote"
)

const metaRefreshToken = "refresh_token"

type App struct {
	config  *config.Config
	log     logging.Logger
	remote  *remote.Client
	store   *store.Store
	docs    *services.DocumentService
	profile *services.ProfileService
	appts   *services.AppointmentService
	board   *jobs.Service
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewDefault(cfg.Verbose)

	st, err := store.Open(ctx, cfg.CachePath)
	if err != nil {
		return nil, err
	}

	rc, err := remote.New(ctx, remote.Config{
		StorageEndpoint: cfg.StorageEndpoint,
		StorageRegion:   cfg.StorageRegion,
		StorageKey:      cfg.StorageAccessKey,
		StorageSecret:   cfg.StorageSecretKey,
		DatabaseDSN:     cfg.DatabaseDSN,
	}, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	if token, err := st.GetMeta(ctx, metaRefreshToken); err == nil && token != "" {
		rc.SetRefreshToken(token)
	}

	pipe := uploads.NewPipeline(rc, cfg.StorageBucket, log)

	return &App{
		config:  cfg,
		log:     log,
		remote:  rc,
		store:   st,
		docs:    services.NewDocumentService(pipe, st, log),
		profile: services.NewProfileService(pipe, cfg.ConstrainedDevice, log),
		appts:   services.NewAppointmentService(rc, careplan.DefaultCatalog, log),
		board:   jobs.NewService(rc, st, log),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

func (a *App) Close(ctx context.Context) {
	a.remote.Close()
	if err := a.store.Close(); err != nil {
		a.log.Warn(ctx, "closing cache failed", "error", err)
	}
}
