package router

import (
	"time"

	"maquillarte/internal/config"
	"maquillarte/internal/handler"
	"maquillarte/internal/middleware"
	"maquillarte/internal/repository"
	"maquillarte/internal/service"
	"maquillarte/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	historialPrecioRepo := repository.NewHistorialPrecioRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, movimientoStockRepo, historialPrecioRepo, rdb)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoStockRepo)
	reconciliacionSvc := service.NewReconciliacionService(
		ventaRepo, compraRepo, productoRepo, gastoRepo,
		movimientoStockRepo, historialPrecioRepo, proveedorRepo, dispatcher,
	)
	gastoSvc := service.NewGastoService(gastoRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	reporteSvc := service.NewReporteService(reporteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	ventasH := handler.NewVentasHandler(reconciliacionSvc)
	comprasH := handler.NewComprasHandler(reconciliacionSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/precio/:codigo", consultaH.GetPrecioPorCodigo)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: usuario (read-only), empleado, admin — declared per-endpoint
		lectura := middleware.RequireRole("usuario", "empleado", "admin")
		operacion := middleware.RequireRole("empleado", "admin")
		soloAdmin := middleware.RequireRole("admin")

		v1.POST("/ventas", operacion, ventasH.CrearVenta)
		v1.GET("/ventas", lectura, ventasH.ListarVentas)
		v1.GET("/ventas/:id", lectura, ventasH.ObtenerVenta)
		v1.PUT("/ventas/:id", operacion, ventasH.ActualizarVenta)
		v1.DELETE("/ventas/:id", operacion, ventasH.EliminarVenta)

		v1.POST("/compras", operacion, comprasH.RegistrarCompra)
		v1.GET("/compras", lectura, comprasH.ListarCompras)
		v1.GET("/compras/:id", lectura, comprasH.ObtenerCompra)
		v1.DELETE("/compras/:id", operacion, comprasH.EliminarCompra)

		v1.GET("/productos", lectura, productosH.Listar)
		v1.GET("/productos/:id", lectura, productosH.ObtenerPorID)
		v1.GET("/productos/:id/historial-precios", lectura, productosH.HistorialPrecios)
		// Direct stock override — admin only, always audited
		v1.PATCH("/productos/:id/stock", soloAdmin, inventarioH.AjustarStock)
		prods := v1.Group("/productos", soloAdmin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		inv := v1.Group("/inventario", operacion)
		{
			inv.GET("/alertas", inventarioH.AlertasStockBajo)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
		}

		gastos := v1.Group("/gastos")
		{
			gastos.POST("", operacion, gastosH.Crear)
			gastos.GET("", lectura, gastosH.Listar)
			gastos.GET("/:id", lectura, gastosH.Obtener)
			gastos.DELETE("/:id", soloAdmin, gastosH.Eliminar)
		}

		prov := v1.Group("/proveedores", operacion)
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.Obtener)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Desactivar)
		}

		rep := v1.Group("/reportes", middleware.RequireRole("empleado", "admin"))
		{
			rep.GET("/ventas", reportesH.ResumenVentas)
			rep.GET("/compras", reportesH.ResumenCompras)
			rep.GET("/gastos", reportesH.ResumenGastos)
			rep.GET("/ventas/csv", reportesH.ExportarVentasCSV)
			rep.GET("/ventas/excel", reportesH.ExportarVentasExcel)
		}

		v1.GET("/categorias", lectura, categoriasH.Listar)
		categorias := v1.Group("/categorias", soloAdmin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Desactivar)
		}

		usuarios := v1.Group("/usuarios", soloAdmin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.PATCH("/:id/reactivar", authH.ReactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
