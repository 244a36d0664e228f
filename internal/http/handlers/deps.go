package handlers

import (
	"time"

	"isaarte/internal/cart"
	"isaarte/internal/cep"
	"isaarte/internal/config"
	"isaarte/internal/kv"
	"isaarte/internal/repos"
	"isaarte/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	CatalogHandler   *CatalogHandler
	CartHandler      *CartHandler
	FavoritesHandler *FavoritesHandler
	CheckoutHandler  *CheckoutHandler
	AuthHandler      *AuthHandler
	ProfileHandler   *ProfileHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	store := kv.NewSQLStore(db)
	cartStore := cart.NewStore(store)

	auth := &services.AuthService{Users: userRepo}
	// Login pulls the account's favorites into the session; logout drops all
	// session-scoped state.
	auth.OnLogin(func(sid, userID string) { _ = cartStore.HandleLogin(sid, userID) })
	auth.OnLogout(func(sid, userID string) { _ = cartStore.HandleLogout(sid, userID) })

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	gateway := services.SimulatedGateway{Delay: 150 * time.Millisecond}
	checkoutSvc := services.NewCheckoutService(cartStore, prodRepo, orderRepo, gateway)
	profileSvc := services.NewProfileService(store)
	recoverySvc := services.NewRecoveryService(store, userRepo, auth)
	cepClient := cep.NewClient(cfg.CepBaseURL)

	return &Deps{
		Auth:             auth,
		CatalogHandler:   &CatalogHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartStore, Catalog: catalogSvc},
		FavoritesHandler: &FavoritesHandler{Cart: cartStore, Catalog: catalogSvc},
		CheckoutHandler:  &CheckoutHandler{Cart: cartStore, Checkout: checkoutSvc, Orders: orderRepo, Auth: auth},
		AuthHandler:      &AuthHandler{Auth: auth, Recovery: recoverySvc},
		ProfileHandler:   &ProfileHandler{Auth: auth, Profile: profileSvc, Cep: cepClient},
		AdminHandler:     NewAdminHandler(prodRepo, catRepo, orderRepo, userRepo),
	}
}
