package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/gumball-machine/internal/config"
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/repository/pgrepo"
	"github.com/fsdevblog/gumball-machine/internal/repository/repoargs"
	"github.com/fsdevblog/gumball-machine/internal/service"
	"github.com/fsdevblog/gumball-machine/internal/transport/api"
	"github.com/fsdevblog/gumball-machine/internal/transport/export"
	"github.com/fsdevblog/gumball-machine/pkg/uow"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout          = 5 * time.Second
	exportWorkers       uint = 5
	exportLimitPerBatch uint = 50
	readHeaderTimeout        = 5 * time.Second
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

// Run поднимает HTTP сервер и, если задан адрес учетной системы, выгрузку журнала. Возвращает
// context.Canceled после SIGINT/SIGTERM.
func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %s", a.Config)

	deployment, deploymentErr := config.LoadDeployment(a.Config.DeploymentFile)
	if deploymentErr != nil {
		return fmt.Errorf("app run: %s", deploymentErr.Error())
	}
	a.Logger.WithFields(logrus.Fields{
		"profile":          deployment.Profile.Name,
		"default_decision": deployment.Profile.DefaultDecision,
		"initial_stock":    deployment.InitialStock,
		"restock_quantity": deployment.RestockQuantity,
	}).Info("Deployment loaded")

	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	services, sErr := service.Factory(unitOfWork, service.Deployment{
		PaymentResource: domain.ResourceID(a.Config.PaymentResource),
		Profile:         deployment.Profile,
		InitialStock:    deployment.InitialStock,
		RestockQuantity: deployment.RestockQuantity,
	}, []byte(a.Config.BadgeSecret))
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:         a.Logger,
		MachineService: services.MachineService,
		BadgeSecret:    []byte(a.Config.BadgeSecret),
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(notifyCtx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if a.Config.ExportAddress != "" {
		processor := export.New(services.JournalService, a.Config.ExportAddress, a.Logger).
			SetExportWorkers(exportWorkers).
			SetLimitPerIteration(exportLimitPerBatch)
		g.Go(func() error {
			return processor.Run(gCtx)
		})
	} else {
		a.Logger.Warn("Export address is not set, journal export disabled")
	}

	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck
	}
	return notifyCtx.Err() //nolint:wrapcheck
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	// изменения одного автомата сериализуются блокировкой строки machines (SELECT ... FOR UPDATE).
	unitOfWork := uow.NewUnitOfWork(conn, uow.WithIsolation(pgx.ReadCommitted))

	repositories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.MachineRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewMachineRepository(dbtx)
		},
		repoargs.JournalRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewJournalRepository(dbtx)
		},
		repoargs.StaffBadgeRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewStaffBadgeRepository(dbtx)
		},
	}
	for name, factory := range repositories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}

	return unitOfWork, nil
}
