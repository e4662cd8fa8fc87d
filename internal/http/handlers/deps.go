package handlers

import (
	"github.com/jmoiron/sqlx"

	"bazar/internal/repos"
	"bazar/internal/services"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	StoreHandler   *StoreHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	UploadHandler  *UploadHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService, host services.ImageHost) *Deps {
	prodRepo := repos.NewProductRepo(db)
	storeRepo := repos.NewStoreRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, storeRepo)
	storeSvc := services.NewStoreService(storeRepo)
	cartSvc := services.NewCartService(cartRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, orderRepo)
	orderSvc := services.NewOrderService(orderRepo, storeRepo)
	uploadSvc := services.NewUploadService(host)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: auth},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		StoreHandler:   &StoreHandler{Stores: storeSvc},
		CartHandler:    &CartHandler{Cart: cartSvc, Catalog: catalogSvc},
		OrderHandler:   &OrderHandler{Checkout: checkoutSvc, Orders: orderSvc},
		UploadHandler:  &UploadHandler{Uploads: uploadSvc, Auth: auth},
	}
}
