package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"giftfall/api/internal/config"
	"giftfall/api/internal/middleware"
	"giftfall/api/internal/payos"
	"giftfall/api/internal/repository"
	"giftfall/api/internal/service"
	"giftfall/api/internal/storage"
)

type HandlerSet struct {
	log     zerolog.Logger
	cfg     *config.AppConfig
	auth    *service.AuthService
	catalog *service.CatalogService
	trades  *service.TradeService
	gateway *payos.Client

	users         *repository.UserRepository
	messages      *repository.MessageRepository
	payments      *repository.PaymentRepository
	packages      *repository.PremiumPackageRepository
	subscriptions *repository.UserPremiumRepository

	db    *pgxpool.Pool
	cache *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, gateway *payos.Client, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	itemRepo := repository.NewItemRepository(db)
	txnRepo := repository.NewTransactionRepository(db)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		auth:          service.NewAuthService(userRepo, tokenRepo, cfg, log),
		catalog:       service.NewCatalogService(itemRepo, store, log),
		trades:        service.NewTradeService(txnRepo, itemRepo, log),
		gateway:       gateway,
		users:         userRepo,
		messages:      repository.NewMessageRepository(db),
		payments:      repository.NewPaymentRepository(db),
		packages:      repository.NewPremiumPackageRepository(db),
		subscriptions: repository.NewUserPremiumRepository(db),
		db:            db,
		cache:         cache,
	}
}

func (h HandlerSet) Register(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/healthz", h.Health)

	v1 := api.Group("/v1")
	{
		v1.POST("/auth", h.Login)
		v1.POST("/users/register", h.RegisterUser)
		v1.POST("/users/token", h.RefreshToken)
		v1.POST("/users/logout", h.Logout)
		v1.PUT("/users/update/:id", h.UpdateUser)
		v1.GET("/users", h.ListUsers)
		v1.GET("/users/me", middleware.Auth(h.cfg, h.users), h.Me)

		v1.POST("/items", h.CreateItem)
		v1.GET("/items", h.ListItems)
		v1.GET("/items/search", h.SearchItems)
		v1.GET("/items/user/:sellerId", h.ListItemsBySeller)
		v1.GET("/items/exchange/:userId/:itemId", h.PreviewExchange)
		v1.GET("/items/:id", h.GetItem)
		v1.PUT("/items/:id", h.UpdateItem)
		v1.DELETE("/items/:id", h.DeleteItem)
		v1.POST("/items/:id/images", middleware.Auth(h.cfg, h.users), h.UploadItemImage)

		v1.POST("/messages", h.CreateMessage)
		v1.GET("/messages", h.ListMessages)
		v1.GET("/messages/:id", h.GetMessage)
		v1.PUT("/messages/:id", h.UpdateMessage)
		v1.DELETE("/messages/:id", h.DeleteMessage)

		v1.POST("/payments", h.CreatePayment)
		v1.GET("/payments", h.ListPayments)
		v1.GET("/payments/:id", h.GetPayment)
		v1.PUT("/payments/:id", h.UpdatePayment)
		v1.DELETE("/payments/:id", h.DeletePayment)

		v1.POST("/premium-packages", h.CreatePremiumPackage)
		v1.GET("/premium-packages", h.ListPremiumPackages)
		v1.GET("/premium-packages/:id", h.GetPremiumPackage)
		v1.PUT("/premium-packages/:id", h.UpdatePremiumPackage)
		v1.DELETE("/premium-packages/:id", h.DeletePremiumPackage)

		v1.POST("/user-premium-packages", h.CreateSubscription)
		v1.GET("/user-premium-packages", h.ListSubscriptions)
		v1.GET("/user-premium-packages/:id", h.GetSubscription)
		v1.PUT("/user-premium-packages/:id", h.UpdateSubscription)
		v1.DELETE("/user-premium-packages/:id", h.DeleteSubscription)

		v1.POST("/transactions", h.CreateTransaction)
		v1.GET("/transactions", h.ListTransactions)
		v1.GET("/transactions/buyer/:id", h.ListTransactionsByBuyer)
		v1.GET("/transactions/seller/:id", h.ListTransactionsBySeller)
		v1.PUT("/transactions/accept/:id", h.AcceptTransaction)
		v1.GET("/transactions/:id", h.GetTransaction)
		v1.PUT("/transactions/:id", h.UpdateTransaction)
		v1.DELETE("/transactions/:id", h.DeleteTransaction)
	}

	gateway := router.Group("/payos")
	{
		gateway.POST("/payment-link", h.CreatePaymentLink)
		gateway.GET("/payment-link/:id", h.GetPaymentLink)
		gateway.DELETE("/payment-link/:id", h.CancelPaymentLink)
	}
}

// TradeService exposes the lifecycle service for the reconciliation job.
func (h HandlerSet) TradeService() *service.TradeService {
	return h.trades
}

// UserRepository exposes the user store for the premium-expiry job.
func (h HandlerSet) UserRepository() *repository.UserRepository {
	return h.users
}
