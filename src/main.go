package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"regexp"
	"syscall"
	"ticketpro/src/boot"
	"ticketpro/src/config"
	"ticketpro/src/controllers"
	"ticketpro/src/middlewares"
	"ticketpro/src/types"
	"ticketpro/src/utils"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const apiPrefix = "/api/v1"

func maintenanceModeMiddleware(g *gin.Engine, enabled bool) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		if enabled {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
	})
	return g
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	if !cfg.IsProd() {
		return cors.Default()
	}
	cc := cors.DefaultConfig()
	cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
	cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
	cc.AllowOriginFunc = func(origin string) bool {
		match, _ := regexp.MatchString(regexp.QuoteMeta(cfg.AppHost)+"$", origin)
		log.Printf("Origin matches %s: %v\n", origin, match)
		return match
	}
	return cors.New(cc)
}

func publicHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/catalogue", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{
				"cities":   utils.Cities(),
				"classes":  utils.TravelClasses(),
				"genders":  []types.Gender{types.GENDER_MALE, types.GENDER_FEMALE, types.GENDER_OTHER},
				"id_types": []types.IDType{types.ID_PASSPORT, types.ID_NATIONAL_ID, types.ID_DRIVING_LICENSE},
			})
		}).
		GET("/fares/quote", func(ctx *gin.Context) {
			var query types.FareQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if query.TripType == "" {
				query.TripType = types.ONE_WAY
			}
			if !query.Class.IsValid() || !query.TripType.IsValid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown travel class or trip type"})
				return
			}
			fare := utils.CalculateFare(query.Class, query.Passengers, query.TripType)
			ctx.JSON(http.StatusOK, gin.H{
				"fare":      fare,
				"formatted": utils.FormatCurrency(fare),
				"class":     query.Class,
				"trip_type": query.TripType,
			})
		})
	return g
}

func guestAuthHandlers(g *gin.RouterGroup, svc *boot.Services) *gin.RouterGroup {
	g.POST("/auth/login", func(ctx *gin.Context) {
		res, status, err := controllers.AuthLogin(ctx, svc.Auth, svc.Sessions, svc.Config.JWTSecret, svc.Config.TokenTTL)
		if err != nil {
			if status == http.StatusUnauthorized {
				ctx.JSON(status, gin.H{"error": "Invalid username or password"})
				return
			}
			ctx.JSON(status, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(status, res)
	})
	return g
}

func authHandlers(g *gin.RouterGroup, svc *boot.Services) *gin.RouterGroup {
	g.
		POST("/auth/logout", func(ctx *gin.Context) {
			status, err := controllers.AuthLogout(ctx, svc.Sessions)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(status)
		}).
		GET("/users/me", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"data": controllers.CurrentUser(ctx)})
		})
	return g
}

func setupRouter(svc *boot.Services) *gin.Engine {
	router := gin.Default()
	router.Use(corsMiddleware(svc.Config))

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterValidations(v)
	}

	router = maintenanceModeMiddleware(router, svc.Config.MaintenanceMode)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})

	public := router.Group(apiPrefix)
	publicHandlers(public)
	guestAuthHandlers(public, svc)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware(svc.Config.JWTSecret, svc.Sessions))
	{
		authHandlers(authorized, svc)
		bookingHandlers(authorized, svc)
		ticketHandlers(authorized, svc)
		scanHandlers(authorized, svc)
	}

	return router
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	if err := os.MkdirAll(path.Dir(apiLogs), 0o755); err != nil {
		log.Printf("Could not create log directory: %s\n", err.Error())
		return
	}
	f, err := os.Create(apiLogs)
	if err == nil {
		gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	if os.Getenv("API_ENV") == string(types.Local) {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			log.Printf("Could not load .env: %s\n", err.Error())
		}
	}
	initLogger()

	cfg := config.Load()
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	svc, err := boot.InitServices(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize services: %s", err)
	}
	defer svc.Close()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: setupRouter(svc),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %s", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %s\n", err.Error())
	}
}
