package routes

import (
	"vehicle-forecast-api/handlers"
	"vehicle-forecast-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Records   *services.HistoricalService
	Sources   *services.DataSourceService
	Forecasts *services.ForecastService
	Cache     *services.CacheService
	StaticDir string
}

func SetupRoutes(router *gin.Engine, d Deps) {
	historical := handlers.NewHistoricalHandler(d.Records, d.Sources)
	sources := handlers.NewDataSourceHandler(d.Sources)
	prediction := handlers.NewPredictionHandler(d.Forecasts)

	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/historical-data", historical.List)
		api.GET("/historical-data/live", handlers.LiveWebSocket(d.Cache))
		api.POST("/historical-data", historical.Create)
		api.PUT("/historical-data/:tahun", historical.Update)
		api.DELETE("/historical-data/:tahun", historical.Delete)

		api.GET("/data-sources", sources.List)
		api.POST("/switch-data-source", sources.Switch)

		api.POST("/predict", prediction.Predict)
	}

	router.NoRoute(handlers.NotFoundOrSPA(d.StaticDir))
}
