package api

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	v1 := s.router.Group("/v1")
	{
		v1.GET("/registries/:registry/exchanges", s.handleGetRegistryExchanges)

		exchanges := v1.Group("/exchanges")
		{
			exchanges.GET("/:exchange", s.handleGetExchange)
			exchanges.GET("/:exchange/price/:kind/:amount", s.handleGetPrice)
		}

		v1.GET("/balances/:owner/:denom", s.handleGetBalance)
	}
}
