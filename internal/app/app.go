package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/phenrril/lojamobile/internal/adapters/assistant/httpbot"
	"github.com/phenrril/lojamobile/internal/adapters/assistant/openaibot"
	"github.com/phenrril/lojamobile/internal/adapters/backup/mockapi"
	"github.com/phenrril/lojamobile/internal/adapters/catalog/restapi"
	"github.com/phenrril/lojamobile/internal/adapters/cep/viacep"
	"github.com/phenrril/lojamobile/internal/adapters/httpserver"
	"github.com/phenrril/lojamobile/internal/adapters/primary/springapi"
	"github.com/phenrril/lojamobile/internal/adapters/repo/postgres"
	"github.com/phenrril/lojamobile/internal/adapters/storage/localfs"
	"github.com/phenrril/lojamobile/internal/config"
	"github.com/phenrril/lojamobile/internal/domain"
	"github.com/phenrril/lojamobile/internal/usecase"
)

type App struct {
	Config    *config.Config
	DB        *gorm.DB
	Store     domain.KVStore
	AuthUC    *usecase.AuthUC
	ProductUC *usecase.ProductUC
	CartUC    *usecase.CartUC
	Customers *usecase.CustomerUC
	ChatUC    *usecase.ChatUC
}

// NewApp arma los adapters según cfg y carga el estado persistido.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	a.Store = store

	var primary domain.CustomerSource
	if cfg.PrimaryURL != "" {
		primary = springapi.NewClient(springapi.Options{
			BaseURL:      cfg.PrimaryURL,
			Timeout:      cfg.HTTPTimeout,
			TokenURL:     cfg.PrimaryTokenURL,
			ClientID:     cfg.PrimaryClientID,
			ClientSecret: cfg.PrimaryClientSecret,
		})
	}
	backup := mockapi.NewClient(cfg.BackupURL, cfg.HTTPTimeout)
	cep := viacep.NewClient(cfg.ViaCEPURL, cfg.HTTPTimeout)

	assistant, err := newAssistant(cfg)
	if err != nil {
		return nil, err
	}

	a.AuthUC = &usecase.AuthUC{}
	a.ProductUC = &usecase.ProductUC{Products: restapi.NewClient(cfg.CatalogURL, cfg.HTTPTimeout)}
	a.CartUC = usecase.NewCartUC()
	a.Customers = usecase.NewCustomerUC(store, primary, backup, cep)
	a.ChatUC = usecase.NewChatUC(store, assistant)

	if err := a.Customers.Open(ctx); err != nil {
		return nil, err
	}
	if err := a.ChatUC.Open(ctx); err != nil {
		// un historial corrupto no impide arrancar
		log.Warn().Err(err).Msg("no se pudo cargar el historial del chat")
	}

	log.Info().
		Str("store", cfg.StoreDriver).
		Str("backup", cfg.BackupURL).
		Bool("primaria", primary != nil).
		Int("clientes", len(a.Customers.Customers())).
		Msg("app inicializada")
	return a, nil
}

func (a *App) openStore() (domain.KVStore, error) {
	switch a.Config.StoreDriver {
	case "", "localfs":
		return localfs.New(a.Config.StorageDir)
	case "postgres":
		db, err := gorm.Open(gormpg.Open(a.Config.DatabaseDSN), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("conectar a la base: %w", err)
		}
		repo := postgres.NewKVRepo(db)
		if err := repo.Migrate(); err != nil {
			return nil, fmt.Errorf("migrar kv_entries: %w", err)
		}
		a.DB = db
		return repo, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", a.Config.StoreDriver)
}

func newAssistant(cfg *config.Config) (domain.Assistant, error) {
	switch cfg.AssistantDriver {
	case "", "http":
		return httpbot.NewClient(cfg.AssistantURL, cfg.HTTPTimeout), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("ASSISTANT_DRIVER=openai requiere OPENAI_API_KEY")
		}
		return openaibot.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, ""), nil
	}
	return nil, fmt.Errorf("ASSISTANT_DRIVER desconocido: %q", cfg.AssistantDriver)
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.AuthUC, a.ProductUC, a.CartUC, a.Customers, a.ChatUC)
}

// Close espera las copias al backup pendientes y cierra la base si hay una.
func (a *App) Close() error {
	a.Customers.Wait()
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
