package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"promptvault-backend-go/internal/api"
	"promptvault-backend-go/internal/config"
	"promptvault-backend-go/internal/core"
	"promptvault-backend-go/internal/db"
	"promptvault-backend-go/internal/identity"
	"promptvault-backend-go/internal/middleware"
	"promptvault-backend-go/internal/rewrite"
	"promptvault-backend-go/internal/session"
)

func main() {
	// --- 1. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize Firebase Admin SDK (Firestore and Auth clients) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firestoreClient == nil || firebaseAuthClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firestore or Firebase Auth client is nil after initialization. Application cannot start.")
	}

	// --- 4. Initialize the session store ---
	// Redis when configured; otherwise an in-process store (sessions then do
	// not survive a restart, acceptable for local development only).
	var sessionStore session.Store
	if appConfig.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(session.NewRedisStoreConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
		})
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to Redis session store", zap.Error(err))
		}
		sessionStore = redisStore
		zapLogger.Info("Redis session store initialized", zap.String("addr", appConfig.RedisAddr))
	} else {
		sessionStore = session.NewMemoryStore()
		zapLogger.Warn("REDIS_ADDR not configured; using in-memory session store. Sessions will not survive restarts.")
	}

	// --- 5. Initialize identity and rewrite clients ---
	identityClient, err := identity.NewClient(initCtx, appConfig.FirebaseWebAPIKey)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize identity client", zap.Error(err))
	}
	rewriter, err := rewrite.NewGeminiRewriter(initCtx, appConfig.GeminiAPIKey, appConfig.GeminiModel)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Gemini rewriter", zap.Error(err))
	}
	zapLogger.Info("Identity and rewrite clients initialized successfully.")

	// --- 6. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	promptRepo := db.NewFirestorePromptRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 7. Initialize Services ---
	userService := core.NewUserService(userRepo)

	sessionService, err := core.NewSessionService(firebaseAuthClient, sessionStore, userService, appConfig.SessionTTL())
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize SessionService", zap.Error(err))
	}
	authService, err := core.NewAuthService(identityClient)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize AuthService", zap.Error(err))
	}
	promptService, err := core.NewPromptService(promptRepo)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize PromptService", zap.Error(err))
	}
	rewriteService, err := core.NewRewriteService(rewriter)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize RewriteService", zap.Error(err))
	}
	zapLogger.Info("Core services initialized successfully.")

	// --- 8. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 9. Apply Global Middleware (Order is important) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))

	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	// --- 10. Setup API Routes ---
	api.SetupRoutes(
		router,
		appConfig,
		zapLogger,
		authService,
		sessionService,
		userService,
		promptService,
		rewriteService,
	)

	// --- 11. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 12. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
