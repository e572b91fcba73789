package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"SecretSanta/config"
	"SecretSanta/internal/auth"
	"SecretSanta/internal/group"
	"SecretSanta/internal/middleware"
	"SecretSanta/internal/santa"
	"SecretSanta/internal/storage"
	"SecretSanta/internal/utils"
	"SecretSanta/internal/websocket"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.Load(configPath); err != nil {
		return err
	}
	if err := utils.Init(config.C.Log.Level); err != nil {
		return err
	}

	//-------------------------------------------------------
	// 1. 存储：Redis 可选，默认内存
	//-------------------------------------------------------
	var repo group.Repo
	if config.C.Redis.Enabled {
		rdb, err := storage.NewRedis(cmd.Context(),
			config.C.Redis.Addr,
			config.C.Redis.Password,
			config.C.Redis.DB,
		)
		if err != nil {
			utils.Log.Error("redis init failed", "err", err)
			return err
		}
		defer rdb.Close()
		repo = group.NewRedisRepo(rdb, config.C.Group.TTL)
		utils.Log.Info("using redis store", "addr", config.C.Redis.Addr)
	} else {
		repo = group.NewMemoryRepo()
		utils.Log.Info("using in-memory store")
	}

	//-------------------------------------------------------
	// 2. Hub（先于路由启动）
	//-------------------------------------------------------
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Close()

	//-------------------------------------------------------
	// 3. 抽签服务
	//-------------------------------------------------------
	seed := config.C.Draw.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	matcher := santa.NewMatcher(seed, santa.WithMaxRetry(config.C.Draw.MaxRetry))
	issuer := auth.NewIssuer(config.C.JWT.Secret, config.C.JWT.TTL)
	svc := group.NewService(repo, matcher, hub, issuer)

	//-------------------------------------------------------
	// 4. Gin + CORS + 路由
	//-------------------------------------------------------
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	jwtAuth := middleware.JwtAuthMiddleware(issuer)
	group.NewHandler(svc).Register(r, jwtAuth)
	r.GET("/ws", jwtAuth, websocket.ServeWS(hub))

	//-------------------------------------------------------
	// 5. 启动服务器
	//-------------------------------------------------------
	srv := &http.Server{
		Addr:              config.C.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Log.Info("server running", "addr", config.C.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-cmd.Context().Done():
		utils.Log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
