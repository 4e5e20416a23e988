package api

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	db "github.com/WalletPulse/WalletPulse-Backend/db/sqlc"
	"github.com/WalletPulse/WalletPulse-Backend/models"
	"github.com/WalletPulse/WalletPulse-Backend/providers/wallet"
	"github.com/WalletPulse/WalletPulse-Backend/services"
	"github.com/WalletPulse/WalletPulse-Backend/services/balance"
	"github.com/WalletPulse/WalletPulse-Backend/services/broadcast"
	"github.com/WalletPulse/WalletPulse-Backend/services/monitoring/logging"
	"github.com/WalletPulse/WalletPulse-Backend/services/poller"
	"github.com/WalletPulse/WalletPulse-Backend/services/reconcile"
	"github.com/WalletPulse/WalletPulse-Backend/services/webhook"
	"github.com/WalletPulse/WalletPulse-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type Server struct {
	router         *gin.Engine
	queries        db.Querier
	config         *utils.Config
	logger         *logging.Logger
	hub            *broadcast.Hub
	balanceService *balance.BalanceService
	ingestService  *webhook.IngestService
	poller         *poller.Poller
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	m, err := migrate.New(
		"file://db/migrations",
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	q := db.New(conn)
	g := gin.Default()
	l := logging.NewLogger()

	l.WithFields(map[string]interface{}{
		"config": c.Redact(),
	}).Info("configuration loaded")

	// Redis is a fast-path hint only; run without it rather than refuse to
	// start when it is down.
	var seen balance.SeenCache
	redisService, err := services.NewRedisService(&services.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
	})
	if err != nil {
		l.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Warn("redis unavailable, duplicate fast path disabled")
	} else {
		seen = redisService
	}

	fetchTimeout := time.Duration(c.FetchTimeoutMillis) * time.Millisecond
	hub := broadcast.NewHub(l)
	balanceService := balance.NewBalanceService(q, reconcile.NewAccountLock(), seen, l)
	walletProvider := wallet.NewWalletProvider(fetchTimeout, l)

	p := poller.NewPoller(q, balanceService, hub, walletProvider, l, poller.Options{
		Interval:     time.Duration(c.PollIntervalMillis) * time.Millisecond,
		BatchSize:    c.PollBatchSize,
		FetchTimeout: fetchTimeout,
	})

	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	return &Server{
		router:         g,
		queries:        q,
		config:         c,
		logger:         l,
		hub:            hub,
		balanceService: balanceService,
		ingestService:  webhook.NewIngestService(q, balanceService, hub, l),
		poller:         p,
	}
}

func (s *Server) Start() {

	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to WalletPulse!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Accounts{}.router(s)
	Webhook{}.router(s)

	if err := s.poller.Seed(context.Background()); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Warn("could not seed last-known balances, first tick may re-report")
	}
	go s.poller.Run(context.Background())

	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}
