package internal

import (
	"carhoot/internal/controllers"
	"carhoot/internal/providers"
	"carhoot/internal/services"
	"net/http"
)

func InitRoutes(puzzleController *controllers.PuzzleController, matchController *controllers.MatchController, rankingController *controllers.RankingController, game services.GameServiceInterface, rateLimit providers.Middleware) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	session := controllers.SessionMiddleware(game)
	routers.Use(http.MethodPost, rateLimit)
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		routers.Use(method, providers.ClientMiddleware)
	}
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		routers.Use(method, session)
	}

	routers.Get("/api/puzzle", http.HandlerFunc(puzzleController.Today))
	routers.Post("/api/puzzle/guess", http.HandlerFunc(puzzleController.Guess))
	routers.Post("/api/puzzle/hint", http.HandlerFunc(puzzleController.Hint))
	routers.Post("/api/puzzle/resolve", http.HandlerFunc(puzzleController.Resolve))
	routers.Post("/api/puzzle/reset", http.HandlerFunc(puzzleController.Reset))

	routers.Post("/api/match", http.HandlerFunc(matchController.Start))
	routers.Get("/api/match/{id}", http.HandlerFunc(matchController.Get))
	routers.Post("/api/match/{id}/guess", http.HandlerFunc(matchController.Guess))

	routers.Get("/api/ranking/daily", http.HandlerFunc(rankingController.Daily))
	routers.Get("/api/ranking/monthly", http.HandlerFunc(rankingController.Monthly))
	return routers
}
