package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/auth"
	"github.com/realtysync/provider-sync/internal/config"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/sanitize"
	"github.com/realtysync/provider-sync/internal/store"
)

const credentialEnv = "PROVIDER_CREDENTIAL"

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	holderID   = flag.String("holder", "", "Account identifier the credential belongs to")
	region     = flag.String("region", "", "Optional provider region")
	appID      = flag.String("app-id", "", "Optional provider application id")
	verify     = flag.Bool("verify", true, "Issue a token for the default locale after storing the session")
)

// The credential is read from PROVIDER_CREDENTIAL or the first line of stdin,
// never from a flag, so it does not end up in shell history or process listings.
func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadSessionConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sanitizer, err := sanitize.New(sanitize.Config{
		Patterns:   cfg.Security.RedactPatterns,
		SecretKeys: cfg.Security.SecretKeys,
		MaxLength:  cfg.Security.MaxMessageLength,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to build sanitizer: %v", err))
	}
	sanitize.SetDefault(sanitizer)

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service":  "session-bootstrap",
			"provider": cfg.Provider.Name,
		},
		Sanitizer: sanitizer,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	credential, err := readCredential()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to read credential", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if cfg.Database.AutoMigrate {
		if err := store.AutoMigrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
		}
	}
	dataStore := store.NewPGStore(db)

	cipher, err := adapter.NewCipher(cfg.Security.CredentialKey)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize credential cipher", zap.Error(err))
	}

	jsonAdapter := adapter.NewJSON()
	issuer := auth.NewHTTPTokenIssuer(adapter.NewHTTPClient(cfg.Provider.TokenTimeout), jsonAdapter, cfg.Provider.BaseURL, cfg.Provider.TokenPath)
	manager := auth.NewManager(auth.ManagerConfig{
		Provider:     cfg.Provider.Name,
		TokenTTL:     cfg.Provider.TokenTTL,
		TokenTimeout: cfg.Provider.TokenTimeout,
	}, dataStore, issuer, cipher, adapter.NewClock())

	session, err := manager.StoreSessionFromCredential(ctx, auth.StoreSessionInput{
		HolderID:   *holderID,
		Credential: credential,
		Region:     optional(*region),
		AppID:      optional(*appID),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to store session", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Session stored", zap.String("sessionID", session.ID))

	if !*verify {
		return
	}

	locale := domain.Locale{City: cfg.Provider.DefaultCity, Lang: cfg.Provider.DefaultLang}
	if _, err := manager.GetAccessToken(ctx, locale); err != nil {
		logger.FatalCtx(ctx, "Stored credential could not issue a token",
			zap.Error(err),
			zap.String("errorCode", domain.ErrorCode(err)),
			zap.String("locale", locale.Key()))
	}
	logger.InfoCtx(ctx, "Credential verified", zap.String("locale", locale.Key()))
}

func readCredential() (string, error) {
	if v := strings.TrimSpace(os.Getenv(credentialEnv)); v != "" {
		return v, nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%w: set %s or pipe the credential on stdin", domain.ErrConfiguration, credentialEnv)
	}
	return strings.TrimSpace(line), nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
